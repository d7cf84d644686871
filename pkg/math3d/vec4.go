package math3d

// Vec4 is a homogeneous point, usually in clip space after the projection.
// W carries the view-space depth, negative in front of the camera.
type Vec4 struct {
	X, Y, Z, W float64
}

func V4(x, y, z, w float64) Vec4 { return Vec4{X: x, Y: y, Z: z, W: w} }

// V4FromV3 lifts p to homogeneous coordinates: w=1 for points, 0 for
// directions.
func V4FromV3(p Vec3, w float64) Vec4 { return Vec4{X: p.X, Y: p.Y, Z: p.Z, W: w} }

// PerspectiveDivide maps a clip-space point to normalized device
// coordinates. A point in the eye plane (W == 0) has no projection and is
// returned undivided.
func (c Vec4) PerspectiveDivide() Vec3 {
	xyz := Vec3{c.X, c.Y, c.Z}
	if c.W == 0 {
		return xyz
	}
	return xyz.Div(c.W)
}
