// Package config loads the optional YAML scene description. Every key is
// optional; missing keys keep the reference scene values.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/taigrr/blinn/pkg/math3d"
	"github.com/taigrr/blinn/pkg/shading"
	"github.com/taigrr/blinn/pkg/transform"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid scene")

// Vec is an [x, y, z] triple in YAML.
type Vec [3]float64

func (v Vec) vec3() math3d.Vec3 { return math3d.V3(v[0], v[1], v[2]) }

func fromVec3(v math3d.Vec3) Vec { return Vec{v.X, v.Y, v.Z} }

// Scene holds the frame size, camera pose and lighting constants.
type Scene struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Background Vec     `yaml:"background"`
	Camera     Camera  `yaml:"camera"`
	Lights     []Light `yaml:"lights"`

	Ka        Vec     `yaml:"ka"`
	Ks        Vec     `yaml:"ks"`
	Ambient   Vec     `yaml:"ambient"`
	Shininess float64 `yaml:"shininess"`
	Kh        float64 `yaml:"kh"`
	Kn        float64 `yaml:"kn"`
}

// Camera is the eye position and lens. Angles are in degrees. An aspect of
// zero means width/height.
type Camera struct {
	Eye    Vec     `yaml:"eye"`
	Angle  float64 `yaml:"angle"`
	FOV    float64 `yaml:"fov"`
	Aspect float64 `yaml:"aspect"`
	Near   float64 `yaml:"near"`
	Far    float64 `yaml:"far"`
}

// Light is a point light in view space.
type Light struct {
	Position  Vec `yaml:"position"`
	Intensity Vec `yaml:"intensity"`
}

// Overrides are command-line values that take priority over the file when
// non-zero.
type Overrides struct {
	Width  int
	Height int
	Angle  *float64
}

// Default returns the reference scene: a 700x700 frame, the camera at
// (0,0,10) and the two fixed lights.
func Default() Scene {
	p := transform.DefaultParams()
	c := shading.DefaultConfig()

	s := Scene{
		Width:  700,
		Height: 700,
		Camera: Camera{
			Eye:    fromVec3(p.Eye),
			Angle:  p.Angle,
			FOV:    p.FOV,
			Aspect: 0, // width/height
			Near:   p.Near,
			Far:    p.Far,
		},
		Ka:        fromVec3(c.Ka),
		Ks:        fromVec3(c.Ks),
		Ambient:   fromVec3(c.AmbientIntensity),
		Shininess: c.Shininess,
		Kh:        c.Kh,
		Kn:        c.Kn,
	}
	for _, l := range c.Lights {
		s.Lights = append(s.Lights, Light{Position: fromVec3(l.Position), Intensity: fromVec3(l.Intensity)})
	}
	return s
}

// Load reads a YAML scene file on top of Default and validates it.
func Load(path string) (Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scene{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return Scene{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes YAML on top of Default and validates the result.
func Parse(data []byte) (Scene, error) {
	s := Default()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Scene{}, err
	}
	if err := s.Validate(); err != nil {
		return Scene{}, err
	}
	return s, nil
}

// Resolve applies command-line overrides.
func (s *Scene) Resolve(o Overrides) {
	if o.Width > 0 {
		s.Width = o.Width
	}
	if o.Height > 0 {
		s.Height = o.Height
	}
	if o.Angle != nil {
		s.Camera.Angle = *o.Angle
	}
}

// Validate rejects values the renderer cannot work with.
func (s Scene) Validate() error {
	switch {
	case s.Width <= 0 || s.Height <= 0:
		return fmt.Errorf("%w: frame size %dx%d", ErrInvalid, s.Width, s.Height)
	case s.Camera.Near <= 0:
		return fmt.Errorf("%w: near plane %v must be positive", ErrInvalid, s.Camera.Near)
	case s.Camera.Far <= s.Camera.Near:
		return fmt.Errorf("%w: far plane %v must be beyond near %v", ErrInvalid, s.Camera.Far, s.Camera.Near)
	case s.Camera.FOV <= 0 || s.Camera.FOV >= 180:
		return fmt.Errorf("%w: fov %v out of (0, 180)", ErrInvalid, s.Camera.FOV)
	case s.Camera.Aspect < 0:
		return fmt.Errorf("%w: negative aspect %v", ErrInvalid, s.Camera.Aspect)
	case s.Shininess < 0:
		return fmt.Errorf("%w: negative shininess %v", ErrInvalid, s.Shininess)
	}
	return nil
}

// ShadingConfig converts the lighting section for the shading package.
func (s Scene) ShadingConfig() shading.Config {
	c := shading.Config{
		Ka:               s.Ka.vec3(),
		Ks:               s.Ks.vec3(),
		AmbientIntensity: s.Ambient.vec3(),
		Eye:              s.Camera.Eye.vec3(),
		Shininess:        s.Shininess,
		Kh:               s.Kh,
		Kn:               s.Kn,
	}
	for _, l := range s.Lights {
		c.Lights = append(c.Lights, shading.PointLight{Position: l.Position.vec3(), Intensity: l.Intensity.vec3()})
	}
	return c
}

// CameraParams converts the camera section for the transform package.
func (s Scene) CameraParams() transform.Params {
	aspect := s.Camera.Aspect
	if aspect == 0 {
		aspect = float64(s.Width) / float64(s.Height)
	}
	return transform.Params{
		Eye:    s.Camera.Eye.vec3(),
		Angle:  s.Camera.Angle,
		FOV:    s.Camera.FOV,
		Aspect: aspect,
		Near:   s.Camera.Near,
		Far:    s.Camera.Far,
	}
}

// BackgroundColor returns the clear color in channel range.
func (s Scene) BackgroundColor() math3d.Vec3 {
	return s.Background.vec3()
}
