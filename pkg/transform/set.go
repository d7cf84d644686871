package transform

import "github.com/taigrr/blinn/pkg/math3d"

// Params holds the camera and object parameters a frame is rendered with.
type Params struct {
	Eye    math3d.Vec3 // Camera position in world space
	Angle  float64     // Object rotation about Y, degrees
	FOV    float64     // Vertical field of view, degrees
	Aspect float64     // Width / Height
	Near   float64     // Near plane distance (> 0)
	Far    float64     // Far plane distance (> Near)
}

// DefaultParams returns the reference pose: the camera ten units up the Z
// axis looking at a mesh turned 140 degrees.
func DefaultParams() Params {
	return Params{
		Eye:    math3d.V3(0, 0, 10),
		Angle:  140,
		FOV:    45,
		Aspect: 1,
		Near:   0.1,
		Far:    50,
	}
}

// Set is the transform triple handed to the rasterizer each frame.
type Set struct {
	View       math3d.Mat4
	Model      math3d.Mat4
	Projection math3d.Mat4
}

// Build computes all three matrices from p.
func Build(p Params) Set {
	return Set{
		View:       View(p.Eye),
		Model:      Model(p.Angle),
		Projection: Projection(p.FOV, p.Aspect, p.Near, p.Far),
	}
}

// MVP returns projection * view * model for the set.
func (s Set) MVP() math3d.Mat4 {
	return MVP(s.View, s.Model, s.Projection)
}

// ModelView returns view * model, the transform into view space where
// lighting is evaluated.
func (s Set) ModelView() math3d.Mat4 {
	return s.View.Mul(s.Model)
}
