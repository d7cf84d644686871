package render

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"

	"github.com/taigrr/blinn/pkg/math3d"
)

// WrapMode determines how texture coordinates outside [0,1] are handled.
type WrapMode int

const (
	WrapRepeat WrapMode = iota // Tile the texture
	WrapClamp                  // Clamp to edge
)

// FilterMode determines how texture sampling is performed.
type FilterMode int

const (
	FilterNearest  FilterMode = iota // Nearest-neighbor (pixelated)
	FilterBilinear                   // Bilinear interpolation (smooth)
)

// Texture holds a decoded 2D image for sampling by the fragment stage.
type Texture struct {
	Width      int
	Height     int
	Pixels     []color.RGBA // Row-major, row 0 at the top
	WrapU      WrapMode
	WrapV      WrapMode
	FilterMode FilterMode
}

// NewTexture creates an empty texture with the given dimensions.
func NewTexture(width, height int) *Texture {
	return &Texture{
		Width:      width,
		Height:     height,
		Pixels:     make([]color.RGBA, width*height),
		WrapU:      WrapClamp,
		WrapV:      WrapClamp,
		FilterMode: FilterNearest,
	}
}

// LoadTexture decodes a PNG, JPEG, TGA, BMP or WebP file.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("texture: open %s: %w", path, err)
	}
	defer f.Close()

	img, err := DecodeImage(f)
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", path, err)
	}
	return TextureFromImage(img), nil
}

// TextureFromImage creates a texture from an image.Image.
func TextureFromImage(img image.Image) *Texture {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	tex := NewTexture(width, height)
	for y := range height {
		for x := range width {
			tex.SetPixel(x, y, color.RGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.RGBA))
		}
	}
	return tex
}

// NewCheckerTexture creates a procedural checkerboard texture.
func NewCheckerTexture(width, height, checkSize int, c1, c2 color.RGBA) *Texture {
	tex := NewTexture(width, height)
	for y := range height {
		for x := range width {
			if (x/checkSize+y/checkSize)%2 == 0 {
				tex.SetPixel(x, y, c1)
			} else {
				tex.SetPixel(x, y, c2)
			}
		}
	}
	return tex
}

// SetPixel sets a pixel in the texture.
func (t *Texture) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return
	}
	t.Pixels[y*t.Width+x] = c
}

// GetPixel returns the pixel at (x, y) as channel values in [0,255], or
// black when out of bounds.
func (t *Texture) GetPixel(x, y int) math3d.Vec3 {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return math3d.Vec3{}
	}
	c := t.Pixels[y*t.Width+x]
	return math3d.V3(float64(c.R), float64(c.G), float64(c.B))
}

// Size reports the texel dimensions.
func (t *Texture) Size() (width, height int) {
	return t.Width, t.Height
}

// Sample returns the color at texture coordinates (u, v) in [0,255].
// v = 0 is the bottom row of the image.
func (t *Texture) Sample(u, v float64) math3d.Vec3 {
	if t.Width == 0 || t.Height == 0 {
		return math3d.Vec3{}
	}
	u = wrapCoord(u, t.WrapU)
	v = wrapCoord(v, t.WrapV)

	// Image Y=0 is at the top.
	v = 1.0 - v

	if t.FilterMode == FilterBilinear {
		return t.sampleBilinear(u, v)
	}
	return t.sampleNearest(u, v)
}

func wrapCoord(coord float64, mode WrapMode) float64 {
	switch mode {
	case WrapRepeat:
		coord -= math.Floor(coord)
	case WrapClamp:
		coord = math.Max(0, math.Min(1, coord))
	}
	return coord
}

func (t *Texture) sampleNearest(u, v float64) math3d.Vec3 {
	x := int(u * float64(t.Width))
	y := int(v * float64(t.Height))
	x = min(max(x, 0), t.Width-1)
	y = min(max(y, 0), t.Height-1)
	return t.GetPixel(x, y)
}

func (t *Texture) sampleBilinear(u, v float64) math3d.Vec3 {
	fx := u*float64(t.Width) - 0.5
	fy := v*float64(t.Height) - 0.5

	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	x1 := wrapPixel(x0+1, t.Width, t.WrapU)
	y1 := wrapPixel(y0+1, t.Height, t.WrapV)
	x0 = wrapPixel(x0, t.Width, t.WrapU)
	y0 = wrapPixel(y0, t.Height, t.WrapV)

	top := lerp3(t.GetPixel(x0, y0), t.GetPixel(x1, y0), tx)
	bot := lerp3(t.GetPixel(x0, y1), t.GetPixel(x1, y1), tx)
	return lerp3(top, bot, ty)
}

func wrapPixel(x, size int, mode WrapMode) int {
	if mode == WrapRepeat {
		x %= size
		if x < 0 {
			x += size
		}
		return x
	}
	return min(max(x, 0), size-1)
}

func lerp3(a, b math3d.Vec3, t float64) math3d.Vec3 {
	return a.Add(b.Sub(a).Scale(t))
}
