package transform

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/taigrr/blinn/pkg/math3d"
)

const eps = 1e-9

func assertVec3(t *testing.T, want, got math3d.Vec3, delta float64, msgAndArgs ...any) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, delta, msgAndArgs...)
	assert.InDelta(t, want.Y, got.Y, delta, msgAndArgs...)
	assert.InDelta(t, want.Z, got.Z, delta, msgAndArgs...)
}

func TestViewMovesEyeToOrigin(t *testing.T) {
	eyes := []math3d.Vec3{
		math3d.V3(0, 0, 10),
		math3d.V3(-3, 7.5, 2),
		math3d.V3(1e3, -1e3, 0.25),
		math3d.Zero3(),
	}

	for _, eye := range eyes {
		got := View(eye).MulVec3(eye)
		assertVec3(t, math3d.Zero3(), got, eps, "eye %v", eye)
	}
}

func TestViewIsPureTranslation(t *testing.T) {
	v := View(math3d.V3(1, 2, 3))
	dir := v.MulVec3Dir(math3d.V3(0.2, -0.4, 0.9))
	assertVec3(t, math3d.V3(0.2, -0.4, 0.9), dir, eps)
}

func TestModelInverseAngleCancelsRotation(t *testing.T) {
	for _, a := range []float64{0, 15, 90, 140, -270, 359.5} {
		m := Model(a).Mul(Model(-a))
		want := math3d.ScaleUniform(ModelScale * ModelScale)
		for i := range m {
			assert.InDelta(t, want[i], m[i], 1e-9, "angle %v element %d", a, i)
		}
	}
}

func TestModelMatchesMathGL(t *testing.T) {
	for _, a := range []float64{0, 30, 140, -45} {
		ref := mgl64.HomogRotate3DY(mgl64.DegToRad(a)).
			Mul4(mgl64.Scale3D(ModelScale, ModelScale, ModelScale))
		got := Model(a)
		for i := range got {
			assert.InDelta(t, ref[i], got[i], 1e-12, "angle %v element %d", a, i)
		}
	}
}

func TestModelKeepsOriginAndScales(t *testing.T) {
	m := Model(140)
	assertVec3(t, math3d.Zero3(), m.MulVec3(math3d.Zero3()), eps)
	assert.InDelta(t, ModelScale, m.MulVec3(math3d.V3(0, 1, 0)).Y, eps)
}

func TestProjectionMapsClipPlanes(t *testing.T) {
	tests := []struct {
		name                   string
		fov, aspect, near, far float64
	}{
		{"reference", 45, 1, 0.1, 50},
		{"wide", 90, 16.0 / 9.0, 1, 100},
		{"narrow", 20, 0.5, 2, 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := Projection(tc.fov, tc.aspect, tc.near, tc.far)

			nearCenter := p.MulVec4(math3d.V4(0, 0, -tc.near, 1)).PerspectiveDivide()
			farCenter := p.MulVec4(math3d.V4(0, 0, -tc.far, 1)).PerspectiveDivide()

			assert.InDelta(t, 1, nearCenter.Z, 1e-9)
			assert.InDelta(t, -1, farCenter.Z, 1e-9)
			assert.InDelta(t, 0, nearCenter.X, 1e-9)
			assert.InDelta(t, 0, nearCenter.Y, 1e-9)
		})
	}
}

func TestProjectionFrustumEdges(t *testing.T) {
	const fov, aspect, near, far = 60.0, 2.0, 0.5, 20.0
	p := Projection(fov, aspect, near, far)

	halfH := near * math.Tan(mgl64.DegToRad(fov)/2)
	halfW := halfH * aspect

	// Frustum corners land on the cube faces with X and Y mirrored.
	topRight := p.MulVec4(math3d.V4(halfW, halfH, -near, 1)).PerspectiveDivide()
	assertVec3(t, math3d.V3(-1, -1, 1), topRight, 1e-9)

	// Same ray on the far plane.
	s := far / near
	farCorner := p.MulVec4(math3d.V4(halfW*s, halfH*s, -far, 1)).PerspectiveDivide()
	assertVec3(t, math3d.V3(-1, -1, -1), farCorner, 1e-9)
}

func TestProjectionDepthIsMonotonic(t *testing.T) {
	p := Projection(45, 1, 0.1, 50)
	prev := math.Inf(1)
	for z := -0.1; z >= -50; z -= 0.5 {
		d := p.MulVec4(math3d.V4(0, 0, z, 1)).PerspectiveDivide().Z
		assert.Less(t, d, prev, "depth at z=%v", z)
		prev = d
	}
}

func TestBuildRebuildsEverything(t *testing.T) {
	params := DefaultParams()
	s := Build(params)

	assert.Equal(t, View(params.Eye), s.View)
	assert.Equal(t, Model(params.Angle), s.Model)
	assert.Equal(t, Projection(params.FOV, params.Aspect, params.Near, params.Far), s.Projection)
	assert.Equal(t, MVP(s.View, s.Model, s.Projection), s.MVP())

	params.Angle = 10
	assert.NotEqual(t, s.Model, Build(params).Model)
}

func TestMVPOrder(t *testing.T) {
	s := Build(DefaultParams())
	p := math3d.V3(0.1, 0.2, 0.3)

	stepwise := s.Projection.MulVec4(math3d.V4FromV3(s.View.MulVec3(s.Model.MulVec3(p)), 1))
	combined := s.MVP().MulVec4(math3d.V4FromV3(p, 1))
	assertVec3(t, stepwise.PerspectiveDivide(), combined.PerspectiveDivide(), 1e-9)
}

func BenchmarkBuild(b *testing.B) {
	params := DefaultParams()
	for b.Loop() {
		_ = Build(params).MVP()
	}
}
