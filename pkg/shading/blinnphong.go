package shading

import (
	"math"

	"github.com/taigrr/blinn/pkg/math3d"
)

// Terms is the contribution of one light to a lit fragment, before the
// final scale to channel range.
type Terms struct {
	Ambient  math3d.Vec3
	Diffuse  math3d.Vec3
	Specular math3d.Vec3
}

// Sum returns ambient + diffuse + specular.
func (t Terms) Sum() math3d.Vec3 {
	return t.Ambient.Add(t.Diffuse).Add(t.Specular)
}

// LightTerms evaluates Blinn-Phong for a single light. normal must already be
// unit length; a NaN normal propagates to every term but ambient.
func (c *Config) LightTerms(light PointLight, point, normal, kd math3d.Vec3) Terms {
	toLight := light.Position.Sub(point)
	toEye := c.Eye.Sub(point)
	falloff := light.Intensity.Div(toLight.LenSq())

	// math.Max keeps NaN, so a degenerate normal is not silently clamped.
	diff := math.Max(0, normal.Dot(toLight.Unit()))
	// The half vector bisects the raw vectors, not their unit versions.
	half := toLight.Add(toEye).Unit()
	spec := math.Pow(math.Max(0, normal.Dot(half)), c.Shininess)

	return Terms{
		Ambient:  c.Ka.Mul(c.AmbientIntensity),
		Diffuse:  kd.Mul(falloff).Scale(diff),
		Specular: c.Ks.Mul(falloff).Scale(spec),
	}
}

// blinnPhong sums every light's terms and scales to [0,255]. Ambient is added
// once per light. The result is not clamped.
func (c *Config) blinnPhong(point, normal, kd math3d.Vec3) math3d.Vec3 {
	n := normal.Unit()
	var sum math3d.Vec3
	for _, l := range c.Lights {
		sum = sum.Add(c.LightTerms(l, point, n, kd).Sum())
	}
	return sum.Scale(255)
}
