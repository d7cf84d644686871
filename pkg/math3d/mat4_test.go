package math3d

import (
	"math"
	"testing"
)

func approxVec3(a, b Vec3, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps && math.Abs(a.Z-b.Z) <= eps
}

func TestFromRowsMatchesColumnMajor(t *testing.T) {
	m := FromRows([16]float64{
		1, 0, 0, 7,
		0, 1, 0, 8,
		0, 0, 1, 9,
		0, 0, 0, 1,
	})
	if m != Translate(V3(7, 8, 9)) {
		t.Errorf("FromRows translation = %v, want %v", m, Translate(V3(7, 8, 9)))
	}
	if m.Get(0, 3) != 7 || m.Get(2, 3) != 9 {
		t.Errorf("Get(row, col) did not read the translation column: %v", m)
	}
}

func TestRotateY(t *testing.T) {
	tests := []struct {
		name  string
		angle float64
		in    Vec3
		want  Vec3
	}{
		{"zero", 0, V3(1, 2, 3), V3(1, 2, 3)},
		{"quarter turn x", math.Pi / 2, V3(1, 0, 0), V3(0, 0, -1)},
		{"quarter turn z", math.Pi / 2, V3(0, 0, 1), V3(1, 0, 0)},
		{"half turn", math.Pi, V3(1, 5, 0), V3(-1, 5, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := RotateY(tc.angle).MulVec3(tc.in)
			if !approxVec3(got, tc.want, 1e-9) {
				t.Errorf("RotateY(%v) * %v = %v, want %v", tc.angle, tc.in, got, tc.want)
			}
		})
	}
}

func TestInverse(t *testing.T) {
	m := Translate(V3(1, -2, 3)).Mul(RotateY(0.7)).Mul(ScaleUniform(2.5))
	p := V3(0.3, -4, 9)

	back := m.Inverse().MulVec3(m.MulVec3(p))
	if !approxVec3(back, p, 1e-9) {
		t.Errorf("inverse round trip = %v, want %v", back, p)
	}

	// Singular matrices fall back to identity
	if got := ScaleUniform(0).Inverse(); got != Identity() {
		t.Errorf("singular inverse = %v, want identity", got)
	}
}

func TestNegateKeepsProjectiveMapping(t *testing.T) {
	m := FromRows([16]float64{
		2, 0, 0, 1,
		0, 3, 0, 0,
		0, 0, 4, 0,
		0, 0, 1, 0,
	})
	v := V4(1, 2, 3, 1)

	a := m.MulVec4(v)
	b := m.Negate().MulVec4(v)
	if b.W != -a.W {
		t.Errorf("negated W = %v, want %v", b.W, -a.W)
	}
	if !approxVec3(a.PerspectiveDivide(), b.PerspectiveDivide(), 1e-12) {
		t.Errorf("negated matrix moved the point: %v vs %v", a.PerspectiveDivide(), b.PerspectiveDivide())
	}
}

func TestUnitOfZeroIsNaN(t *testing.T) {
	if !Zero3().Unit().IsNaN() {
		t.Error("Unit() of the zero vector should be NaN")
	}
	if Zero3().Normalize().IsNaN() {
		t.Error("Normalize() of the zero vector should stay zero")
	}
	u := V3(3, 0, 4).Unit()
	if math.Abs(u.Len()-1) > 1e-12 {
		t.Errorf("Unit() length = %v, want 1", u.Len())
	}
}

func TestPerspectiveDivide(t *testing.T) {
	tests := []struct {
		name string
		in   Vec4
		want Vec3
	}{
		{"point", V4FromV3(V3(2, 4, 6), 1), V3(2, 4, 6)},
		{"negative w", V4(2, -4, 6, -2), V3(-1, 2, -3)},
		{"eye plane", V4(1, 2, 3, 0), V3(1, 2, 3)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.PerspectiveDivide(); !approxVec3(got, tc.want, 1e-12) {
				t.Errorf("PerspectiveDivide(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}
