package shading

import (
	"errors"
	"fmt"
)

// Mode selects the fragment evaluator.
type Mode int

const (
	ModePhong Mode = iota
	ModeNormal
	ModeTexture
	ModeBump
	ModeDisplacement
	ModeBumpMapped
	ModeDisplacementMapped
)

// ErrUnknownMode is returned for shader names and modes outside the known set.
var ErrUnknownMode = errors.New("unknown shading mode")

var modeNames = [...]string{
	ModePhong:              "phong",
	ModeNormal:             "normal",
	ModeTexture:            "texture",
	ModeBump:               "bump",
	ModeDisplacement:       "displacement",
	ModeBumpMapped:         "bump-mapped",
	ModeDisplacementMapped: "displacement-mapped",
}

func (m Mode) String() string {
	if m.valid() {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

func (m Mode) valid() bool {
	return m >= 0 && int(m) < len(modeNames)
}

// UsesColorTexture reports whether the mode reads its diffuse color from the
// bound texture.
func (m Mode) UsesColorTexture() bool {
	return m == ModeTexture
}

// UsesHeightMap reports whether the mode perturbs geometry with a height map.
func (m Mode) UsesHeightMap() bool {
	return m == ModeBumpMapped || m == ModeDisplacementMapped
}

// Modes lists every mode in declaration order.
func Modes() []Mode {
	out := make([]Mode, len(modeNames))
	for i := range out {
		out[i] = Mode(i)
	}
	return out
}

// ParseMode maps a shader name as given on the command line to a Mode.
func ParseMode(name string) (Mode, error) {
	for i, n := range modeNames {
		if n == name {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, name)
}
