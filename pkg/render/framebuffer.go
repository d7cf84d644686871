// Package render provides software rasterization for blinn.
package render

import (
	"image"
	"image/color"
	"math"

	"github.com/taigrr/blinn/pkg/math3d"
)

// Framebuffer is a width x height grid of linear RGB triples in channel range
// [0,255]. Values outside that range are kept until the frame is encoded.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []math3d.Vec3 // Row-major, row 0 at the top
}

// NewFramebuffer creates a framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]math3d.Vec3, width*height),
	}
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c math3d.Vec3) {
	n := len(fb.Pixels)
	if n == 0 {
		return
	}
	fb.Pixels[0] = c
	for i := 1; i < n; i *= 2 {
		copy(fb.Pixels[i:], fb.Pixels[:i])
	}
}

// SetPixel sets a pixel at (x, y) to the given color.
// Bounds checking is performed.
func (fb *Framebuffer) SetPixel(x, y int, c math3d.Vec3) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the color at (x, y), or black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) math3d.Vec3 {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return math3d.Vec3{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// RGBA returns the 8-bit encoding of the pixel at (x, y).
func (fb *Framebuffer) RGBA(x, y int) color.RGBA {
	return toRGBA(fb.GetPixel(x, y))
}

// ToImage encodes the framebuffer as 8-bit RGBA. Channels are rounded and
// saturated to [0,255]; NaN becomes 0.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := range fb.Height {
		for x := range fb.Width {
			img.SetRGBA(x, y, toRGBA(fb.Pixels[y*fb.Width+x]))
		}
	}
	return img
}

func toRGBA(c math3d.Vec3) color.RGBA {
	return color.RGBA{R: channel(c.X), G: channel(c.Y), B: channel(c.Z), A: 255}
}

func channel(v float64) uint8 {
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(math.Round(v))
}
