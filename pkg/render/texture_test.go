package render

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/bmp"

	"github.com/taigrr/blinn/pkg/math3d"
)

// stripes is a 2x2 texture: top row red/green, bottom row blue/white.
func stripes() *Texture {
	tex := NewTexture(2, 2)
	tex.SetPixel(0, 0, color.RGBA{R: 255, A: 255})
	tex.SetPixel(1, 0, color.RGBA{G: 255, A: 255})
	tex.SetPixel(0, 1, color.RGBA{B: 255, A: 255})
	tex.SetPixel(1, 1, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	return tex
}

func TestTextureSampleFlipsV(t *testing.T) {
	tex := stripes()
	tests := []struct {
		name string
		u, v float64
		want math3d.Vec3
	}{
		{"bottom left", 0.25, 0.25, math3d.V3(0, 0, 255)},
		{"bottom right", 0.75, 0.25, math3d.V3(255, 255, 255)},
		{"top left", 0.25, 0.75, math3d.V3(255, 0, 0)},
		{"top right", 0.75, 0.75, math3d.V3(0, 255, 0)},
		{"clamped past edge", 1.5, -0.5, math3d.V3(255, 255, 255)},
		{"v of exactly 0", 0, 0, math3d.V3(0, 0, 255)},
		{"u and v of exactly 1", 1, 1, math3d.V3(0, 255, 0)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tex.Sample(tc.u, tc.v); got != tc.want {
				t.Errorf("Sample(%v, %v) = %v, want %v", tc.u, tc.v, got, tc.want)
			}
		})
	}
}

func TestTextureWrapRepeat(t *testing.T) {
	tex := stripes()
	tex.WrapU, tex.WrapV = WrapRepeat, WrapRepeat
	if got, want := tex.Sample(1.25, 0.25), tex.Sample(0.25, 0.25); got != want {
		t.Errorf("repeat u: %v != %v", got, want)
	}
	if got, want := tex.Sample(0.75, -0.75), tex.Sample(0.75, 0.25); got != want {
		t.Errorf("repeat v: %v != %v", got, want)
	}
}

func TestTextureBilinear(t *testing.T) {
	tex := stripes()
	tex.FilterMode = FilterBilinear
	// The exact center averages all four texels.
	got := tex.Sample(0.5, 0.5)
	want := math3d.V3(127.5, 127.5, 127.5)
	if got != want {
		t.Errorf("center = %v, want %v", got, want)
	}
}

func TestTextureSize(t *testing.T) {
	w, h := NewTexture(7, 3).Size()
	if w != 7 || h != 3 {
		t.Errorf("Size = %d, %d", w, h)
	}
	if got := NewTexture(0, 0).Sample(0.5, 0.5); got != (math3d.Vec3{}) {
		t.Errorf("empty texture sample = %v", got)
	}
}

func TestLoadTexture(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.SetRGBA(2, 1, color.RGBA{R: 40, G: 50, B: 60, A: 255})

	path := filepath.Join(t.TempDir(), "tex.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	tex, err := LoadTexture(path)
	if err != nil {
		t.Fatalf("LoadTexture: %v", err)
	}
	if tex.Width != 3 || tex.Height != 2 {
		t.Fatalf("size = %dx%d", tex.Width, tex.Height)
	}
	if got := tex.GetPixel(2, 1); got != math3d.V3(40, 50, 60) {
		t.Errorf("pixel = %v", got)
	}
}

// encodeTGA writes an uncompressed 24-bit true-color TGA, top row first.
func encodeTGA(w io.Writer, img image.Image) error {
	b := img.Bounds()
	header := make([]byte, 18)
	header[2] = 2 // Uncompressed true-color
	binary.LittleEndian.PutUint16(header[12:], uint16(b.Dx()))
	binary.LittleEndian.PutUint16(header[14:], uint16(b.Dy()))
	header[16] = 24
	header[17] = 0x20 // Top-left origin
	var buf bytes.Buffer
	buf.Write(header)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			buf.Write([]byte{byte(bl >> 8), byte(g >> 8), byte(r >> 8)})
		}
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func TestLoadTextureFormats(t *testing.T) {
	fill := color.RGBA{R: 120, G: 80, B: 40, A: 255}
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for y := range 2 {
		for x := range 4 {
			img.SetRGBA(x, y, fill)
		}
	}

	tests := []struct {
		name   string
		file   string
		encode func(io.Writer, image.Image) error
		delta  float64
	}{
		{"png", "tex.png", png.Encode, 0},
		{"jpeg", "tex.jpg", func(w io.Writer, m image.Image) error {
			return jpeg.Encode(w, m, &jpeg.Options{Quality: 100})
		}, 3},
		{"bmp", "tex.bmp", bmp.Encode, 0},
		{"webp", "tex.webp", func(w io.Writer, m image.Image) error {
			return nativewebp.Encode(w, m, nil)
		}, 0},
		{"tga", "tex.tga", encodeTGA, 0},
	}
	dir := t.TempDir()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := tc.encode(&buf, img); err != nil {
				t.Fatalf("encode: %v", err)
			}
			path := filepath.Join(dir, tc.file)
			if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
				t.Fatal(err)
			}

			tex, err := LoadTexture(path)
			if err != nil {
				t.Fatalf("LoadTexture: %v", err)
			}
			if tex.Width != 4 || tex.Height != 2 {
				t.Fatalf("size = %dx%d", tex.Width, tex.Height)
			}
			got := tex.GetPixel(1, 1)
			want := math3d.V3(120, 80, 40)
			if math.Abs(got.X-want.X) > tc.delta || math.Abs(got.Y-want.Y) > tc.delta || math.Abs(got.Z-want.Z) > tc.delta {
				t.Errorf("pixel = %v, want %v", got, want)
			}
		})
	}
}

func TestLoadTextureErrors(t *testing.T) {
	if _, err := LoadTexture(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "junk.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTexture(path); err == nil {
		t.Error("expected decode error")
	}
}
