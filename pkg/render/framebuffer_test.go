package render

import (
	"image/color"
	"math"
	"testing"

	"github.com/taigrr/blinn/pkg/math3d"
)

func TestFramebufferSetGet(t *testing.T) {
	fb := NewFramebuffer(4, 3)
	fb.SetPixel(2, 1, math3d.V3(1, 2, 3))
	if got := fb.GetPixel(2, 1); got != math3d.V3(1, 2, 3) {
		t.Errorf("GetPixel = %v", got)
	}

	// Out of bounds is ignored / black.
	fb.SetPixel(-1, 0, white)
	fb.SetPixel(4, 0, white)
	fb.SetPixel(0, 3, white)
	if got := fb.GetPixel(10, 10); got != (math3d.Vec3{}) {
		t.Errorf("out of bounds GetPixel = %v", got)
	}
}

func TestFramebufferClear(t *testing.T) {
	for _, size := range [][2]int{{1, 1}, {3, 3}, {7, 5}, {0, 0}} {
		fb := NewFramebuffer(size[0], size[1])
		c := math3d.V3(9, 8, 7)
		fb.Clear(c)
		for i, px := range fb.Pixels {
			if px != c {
				t.Fatalf("%dx%d pixel %d = %v after Clear", size[0], size[1], i, px)
			}
		}
	}
}

func TestChannelSaturates(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{-12, 0},
		{0, 0},
		{0.4, 0},
		{0.6, 1},
		{127.5, 128},
		{255, 255},
		{1e6, 255},
		{math.NaN(), 0},
		{math.Inf(1), 255},
	}
	for _, tc := range tests {
		if got := channel(tc.in); got != tc.want {
			t.Errorf("channel(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestToImage(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	fb.SetPixel(1, 0, math3d.V3(300, -5, 25.5))
	img := fb.ToImage()

	if b := img.Bounds(); b.Dx() != 2 || b.Dy() != 2 {
		t.Fatalf("bounds = %v", b)
	}
	want := color.RGBA{R: 255, G: 0, B: 26, A: 255}
	if got := img.RGBAAt(1, 0); got != want {
		t.Errorf("pixel = %v, want %v", got, want)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{A: 255}) {
		t.Errorf("background = %v, want opaque black", got)
	}
}
