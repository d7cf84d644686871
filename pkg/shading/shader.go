// Package shading evaluates per-fragment color for the rasterizer: a fixed
// Blinn-Phong light model plus debugging and height-map modes.
package shading

import (
	"fmt"

	"github.com/taigrr/blinn/pkg/math3d"
)

// FragmentShader turns one interpolated fragment into an output color in
// channel range. Output is not clamped.
type FragmentShader interface {
	Shade(p FragmentPayload) math3d.Vec3
}

// FragmentFunc adapts a plain function to FragmentShader.
type FragmentFunc func(FragmentPayload) math3d.Vec3

func (f FragmentFunc) Shade(p FragmentPayload) math3d.Vec3 { return f(p) }

// New returns the evaluator for mode. cfg is copied.
func New(mode Mode, cfg Config) (FragmentShader, error) {
	cfg = cfg.clone()
	switch mode {
	case ModeNormal:
		return NormalShader{}, nil
	case ModePhong:
		return &PhongShader{cfg: cfg}, nil
	case ModeTexture:
		return &TextureShader{cfg: cfg}, nil
	case ModeBump:
		return BumpShader{}, nil
	case ModeDisplacement:
		return DisplacementShader{}, nil
	case ModeBumpMapped:
		return &BumpMappedShader{cfg: cfg}, nil
	case ModeDisplacementMapped:
		return &DisplacementMappedShader{cfg: cfg}, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(mode))
}

// NormalShader maps the unit normal to color. Components below zero stay
// negative and are clamped by the frame encoder.
type NormalShader struct{}

func (NormalShader) Shade(p FragmentPayload) math3d.Vec3 {
	return p.Normal.Unit().Scale(255)
}

// PhongShader lights the fragment with its interpolated vertex color as kd.
type PhongShader struct {
	cfg Config
}

func (s *PhongShader) Shade(p FragmentPayload) math3d.Vec3 {
	return s.cfg.blinnPhong(p.ViewPos, p.Normal, p.Color)
}

// TextureShader lights the fragment with the bound texture as kd. Without a
// texture kd is zero and only ambient and specular remain.
type TextureShader struct {
	cfg Config
}

func (s *TextureShader) Shade(p FragmentPayload) math3d.Vec3 {
	var kd math3d.Vec3
	if p.Texture != nil {
		kd = p.Texture.Sample(p.TexCoords.X, p.TexCoords.Y).Div(255)
	}
	return s.cfg.blinnPhong(p.ViewPos, p.Normal, kd)
}

// BumpShader returns the raw interpolated normal scaled to channel range. No
// perturbation or lighting is applied; see BumpMappedShader.
type BumpShader struct{}

func (BumpShader) Shade(p FragmentPayload) math3d.Vec3 {
	return p.Normal.Scale(255)
}

// DisplacementShader always returns black; see DisplacementMappedShader.
type DisplacementShader struct{}

func (DisplacementShader) Shade(FragmentPayload) math3d.Vec3 {
	return math3d.Vec3{}
}
