package shading

import (
	"math"

	"github.com/taigrr/blinn/pkg/math3d"
)

// defaultTexelStep is the finite-difference step for samplers that do not
// report their size.
const defaultTexelStep = 1.0 / 1024

// height is the scalar height of the map at (u,v): the length of the sampled
// color.
func height(tex Sampler, u, v float64) float64 {
	return tex.Sample(u, v).Len()
}

func texelSteps(tex Sampler) (du, dv float64) {
	if s, ok := tex.(Sized); ok {
		w, h := s.Size()
		if w > 0 && h > 0 {
			return 1 / float64(w), 1 / float64(h)
		}
	}
	return defaultTexelStep, defaultTexelStep
}

// tangentFrame builds the tangent and bitangent for unit normal n.
// The tangent is undefined (NaN) when n is parallel to Y.
func tangentFrame(n math3d.Vec3) (t, b math3d.Vec3) {
	r := math.Sqrt(n.X*n.X + n.Z*n.Z)
	t = math3d.V3(n.X*n.Y/r, r, n.Z*n.Y/r)
	b = n.Cross(t)
	return t, b
}

// perturb returns the height-mapped normal and the height at the fragment.
// ok is false when no texture is bound; n is then the unit input normal.
func (c *Config) perturb(p FragmentPayload) (n math3d.Vec3, h float64, ok bool) {
	n = p.Normal.Unit()
	if p.Texture == nil {
		return n, 0, false
	}
	u, v := p.TexCoords.X, p.TexCoords.Y
	stepU, stepV := texelSteps(p.Texture)

	h = height(p.Texture, u, v)
	dU := c.Kh * c.Kn * (height(p.Texture, u+stepU, v) - h)
	dV := c.Kh * c.Kn * (height(p.Texture, u, v+stepV) - h)

	t, b := tangentFrame(n)
	// TBN * (-dU, -dV, 1)
	perturbed := t.Scale(-dU).Add(b.Scale(-dV)).Add(n).Unit()
	return perturbed, h, true
}

// BumpMappedShader visualizes the normal after perturbation by the bound
// height map.
type BumpMappedShader struct {
	cfg Config
}

func (s *BumpMappedShader) Shade(p FragmentPayload) math3d.Vec3 {
	n, _, _ := s.cfg.perturb(p)
	return n.Scale(255)
}

// DisplacementMappedShader offsets the fragment along its normal by the
// sampled height, then lights it with the perturbed normal.
type DisplacementMappedShader struct {
	cfg Config
}

func (s *DisplacementMappedShader) Shade(p FragmentPayload) math3d.Vec3 {
	n, h, ok := s.cfg.perturb(p)
	point := p.ViewPos
	if ok {
		point = point.Add(p.Normal.Unit().Scale(s.cfg.Kn * h))
	}
	return s.cfg.blinnPhong(point, n, p.Color)
}
