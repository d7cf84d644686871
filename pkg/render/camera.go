package render

import (
	"github.com/taigrr/blinn/pkg/math3d"
	"github.com/taigrr/blinn/pkg/transform"
)

// Camera holds the pose and lens parameters of the fixed scene camera.
// Matrices are rebuilt on every call; nothing is cached between frames.
type Camera struct {
	Params transform.Params
}

// NewCamera creates a camera at the reference pose.
func NewCamera() *Camera {
	return &Camera{Params: transform.DefaultParams()}
}

// SetPosition sets the eye position.
func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.Params.Eye = pos
}

// SetAngle sets the model rotation about Y, in degrees.
func (c *Camera) SetAngle(deg float64) {
	c.Params.Angle = deg
}

// Rotate adds delta degrees to the model rotation.
func (c *Camera) Rotate(delta float64) {
	c.Params.Angle += delta
}

// SetFOV sets the vertical field of view, in degrees.
func (c *Camera) SetFOV(deg float64) {
	c.Params.FOV = deg
}

// SetAspectRatio sets the aspect ratio.
func (c *Camera) SetAspectRatio(aspect float64) {
	c.Params.Aspect = aspect
}

// SetClipPlanes sets the near and far clip distances. Both are positive.
func (c *Camera) SetClipPlanes(near, far float64) {
	c.Params.Near = near
	c.Params.Far = far
}

// Transforms rebuilds the view, model and projection matrices.
func (c *Camera) Transforms() transform.Set {
	return transform.Build(c.Params)
}

// Apply rebuilds the transforms and installs them on r.
func (c *Camera) Apply(r *Rasterizer) {
	s := c.Transforms()
	r.SetModel(s.Model)
	r.SetView(s.View)
	r.SetProjection(s.Projection)
}
