package shading

import (
	"slices"

	"github.com/taigrr/blinn/pkg/math3d"
)

// PointLight is an omnidirectional light whose intensity falls off with the
// squared distance to the lit point.
type PointLight struct {
	Position  math3d.Vec3 // View-space position
	Intensity math3d.Vec3 // Per-channel radiometric intensity
}

// Config holds the fixed lighting setup shared by every fragment.
type Config struct {
	Lights           []PointLight
	Ka               math3d.Vec3 // Ambient coefficient
	Ks               math3d.Vec3 // Specular coefficient
	AmbientIntensity math3d.Vec3 // Ambient light intensity
	Eye              math3d.Vec3 // Eye position, view space
	Shininess        float64     // Specular exponent

	// Height-map coefficients for the bump and displacement modes.
	Kh float64
	Kn float64
}

// DefaultLights returns the two fixed point lights of the reference scene.
func DefaultLights() []PointLight {
	return []PointLight{
		{Position: math3d.V3(20, 20, 20), Intensity: math3d.Splat3(500)},
		{Position: math3d.V3(-20, 20, 0), Intensity: math3d.Splat3(500)},
	}
}

// DefaultConfig returns the reference lighting constants.
func DefaultConfig() Config {
	return Config{
		Lights:           DefaultLights(),
		Ka:               math3d.Splat3(0.005),
		Ks:               math3d.Splat3(0.7937),
		AmbientIntensity: math3d.Splat3(10),
		Eye:              math3d.V3(0, 0, 10),
		Shininess:        150,
		Kh:               0.2,
		Kn:               0.1,
	}
}

// clone returns a copy that does not share the light slice with c.
func (c Config) clone() Config {
	c.Lights = slices.Clone(c.Lights)
	return c
}
