// Package transform builds the view, model and projection matrices that move
// mesh vertices from object space into the canonical clip cube.
//
// The builders are pure functions: every frame the renderer rebuilds the
// whole Set from the current Params, nothing is cached.
package transform

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/taigrr/blinn/pkg/math3d"
)

// ModelScale is the uniform scale applied to the mesh by Model.
const ModelScale = 2.5

// View returns the camera transform for an eye at the given world position.
// The camera never rotates: it always looks down -Z, so the view matrix is a
// pure translation by -eye.
func View(eye math3d.Vec3) math3d.Mat4 {
	return math3d.Translate(eye.Negate())
}

// Model returns the object transform for a rotation of angleDegrees about the
// vertical axis: translate * rotateY * scale. The translation is the identity
// for now, the single mesh sits at the world origin.
func Model(angleDegrees float64) math3d.Mat4 {
	rotation := math3d.RotateY(mgl64.DegToRad(angleDegrees))
	scale := math3d.ScaleUniform(ModelScale)
	translate := math3d.Translate(math3d.Zero3())

	return translate.Mul(rotation).Mul(scale)
}

// Projection returns the perspective transform for a vertical field of view
// in degrees, a width/height aspect ratio and positive near/far distances.
//
// The frustum is first squished into a box (perspective to orthographic),
// then the box is translated and scaled onto [-1,1]^3. Points on the near
// plane (z = -near) land on z = +1 and points on the far plane land on
// z = -1. The frustum top is taken as -near*tan(fov/2), which mirrors clip
// space X and Y; the rasterizer viewport mirrors them back.
//
// near <= 0 or near == far yields a degenerate matrix. The result is
// undefined and no attempt is made to detect it.
func Projection(fovDegrees, aspect, near, far float64) math3d.Mat4 {
	angle := mgl64.DegToRad(fovDegrees)

	top := -near * math.Tan(angle/2)
	bottom := -top
	right := top * aspect
	left := -right

	// Signed depths of the clipping planes along the view direction.
	n, f := -near, -far

	squish := math3d.FromRows([16]float64{
		n, 0, 0, 0,
		0, n, 0, 0,
		0, 0, n + f, -n * f,
		0, 0, 1, 0,
	})

	scale := math3d.Scale(math3d.V3(
		2/(right-left),
		2/(top-bottom),
		2/(n-f),
	))

	translate := math3d.Translate(math3d.V3(
		-(right+left)/2,
		-(top+bottom)/2,
		-(n+f)/2,
	))

	return scale.Mul(translate).Mul(squish)
}

// MVP composes the three transforms in application order:
// projection * view * model.
func MVP(view, model, projection math3d.Mat4) math3d.Mat4 {
	return projection.Mul(view).Mul(model)
}
