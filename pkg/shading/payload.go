package shading

import "github.com/taigrr/blinn/pkg/math3d"

// Sampler looks up a texture color at normalized coordinates.
// Channels are in [0,255].
type Sampler interface {
	Sample(u, v float64) math3d.Vec3
}

// Sized is implemented by samplers that know their texel dimensions.
// The height-mapped modes use it to step one texel in u and v.
type Sized interface {
	Size() (width, height int)
}

// FragmentPayload carries the interpolated attributes of one fragment.
// Normal is not guaranteed to be unit length. Texture is nil when no texture
// is bound; it must be a true nil interface, not a typed nil pointer.
type FragmentPayload struct {
	ViewPos   math3d.Vec3
	Normal    math3d.Vec3
	Color     math3d.Vec3
	TexCoords math3d.Vec2
	Texture   Sampler
}

// VertexPayload is the input of the vertex stage.
type VertexPayload struct {
	Position math3d.Vec3
}

// VertexShader transforms a vertex before rasterization.
type VertexShader func(VertexPayload) math3d.Vec3

// PassThrough is the identity vertex stage: every bit of shading happens per
// fragment, projection is done by the rasterizer.
func PassThrough(p VertexPayload) math3d.Vec3 {
	return p.Position
}
