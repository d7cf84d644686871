package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/blinn/pkg/math3d"
	"github.com/taigrr/blinn/pkg/shading"
	"github.com/taigrr/blinn/pkg/transform"
)

func TestDefaultMatchesReferenceScene(t *testing.T) {
	s := Default()
	require.NoError(t, s.Validate())

	assert.Equal(t, 700, s.Width)
	assert.Equal(t, 700, s.Height)
	assert.Equal(t, transform.DefaultParams(), s.CameraParams())
	assert.Equal(t, shading.DefaultConfig(), s.ShadingConfig())
	assert.Equal(t, math3d.Vec3{}, s.BackgroundColor())
}

func TestParsePartialKeepsDefaults(t *testing.T) {
	s, err := Parse([]byte(`
width: 320
camera:
  angle: 90
lights:
  - position: [1, 2, 3]
    intensity: [10, 10, 10]
shininess: 32
`))
	require.NoError(t, err)

	assert.Equal(t, 320, s.Width)
	assert.Equal(t, 700, s.Height)
	assert.Equal(t, 90.0, s.Camera.Angle)
	assert.Equal(t, 45.0, s.Camera.FOV)
	assert.Equal(t, Vec{0, 0, 10}, s.Camera.Eye)

	cfg := s.ShadingConfig()
	require.Len(t, cfg.Lights, 1)
	assert.Equal(t, math3d.V3(1, 2, 3), cfg.Lights[0].Position)
	assert.Equal(t, 32.0, cfg.Shininess)
	assert.Equal(t, math3d.Splat3(0.005), cfg.Ka)
}

func TestCameraParamsDerivesAspect(t *testing.T) {
	s, err := Parse([]byte("width: 800\nheight: 400\ncamera:\n  aspect: 0\n"))
	require.NoError(t, err)
	assert.Equal(t, 2.0, s.CameraParams().Aspect)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero width", "width: 0"},
		{"negative near", "camera: {near: -1}"},
		{"far before near", "camera: {near: 5, far: 1}"},
		{"wide fov", "camera: {fov: 180}"},
		{"negative shininess", "shininess: -1"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}

	_, err := Parse([]byte("width: [1, 2"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte("height: 200\nbackground: [10, 20, 30]\n"), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 200, s.Height)
	assert.Equal(t, math3d.V3(10, 20, 30), s.BackgroundColor())

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.ErrorContains(t, err, "config: read")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("width: -4\n"), 0o644))
	_, err = Load(bad)
	assert.ErrorIs(t, err, ErrInvalid)
	assert.ErrorContains(t, err, "config: parse")
}

func TestResolve(t *testing.T) {
	s := Default()
	angle := 12.5
	s.Resolve(Overrides{Width: 100, Angle: &angle})

	assert.Equal(t, 100, s.Width)
	assert.Equal(t, 700, s.Height)
	assert.Equal(t, 12.5, s.Camera.Angle)

	s.Resolve(Overrides{})
	assert.Equal(t, 100, s.Width)
}
