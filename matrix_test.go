package flipdisc

import (
	"math"
	"testing"
)

func matrixNear(a, b Matrix, eps float64) bool {
	return math.Abs(a.A-b.A) < eps && math.Abs(a.B-b.B) < eps &&
		math.Abs(a.C-b.C) < eps && math.Abs(a.D-b.D) < eps &&
		math.Abs(a.E-b.E) < eps && math.Abs(a.F-b.F) < eps
}

func TestMatrixTransformPoint(t *testing.T) {
	const eps = 1e-9

	tests := []struct {
		name string
		m    Matrix
		in   Point
		want Point
	}{
		{"identity", Identity(), Pt(3, 4), Pt(3, 4)},
		{"translate", Identity().Translated(10, -2), Pt(1, 1), Pt(11, -1)},
		{"scale", Identity().Scaled(2, 3), Pt(1, 1), Pt(2, 3)},
		{"rotate 90", Identity().Rotated(math.Pi / 2), Pt(1, 0), Pt(0, 1)},
		{"translate then scale keeps offset", Identity().Translated(5, 5).Scaled(2, 2), Pt(1, 1), Pt(7, 7)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.TransformPoint(tt.in)
			if math.Abs(got.X-tt.want.X) > eps || math.Abs(got.Y-tt.want.Y) > eps {
				t.Errorf("TransformPoint(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMatrixRotatedFormula(t *testing.T) {
	m := Matrix{A: 1, B: 2, C: 3, D: 4, E: 5, F: 6}
	theta := 0.3
	cos, sin := math.Cos(theta), math.Sin(theta)
	want := Matrix{
		A: 1*cos + 3*sin,
		B: 2*cos + 4*sin,
		C: -1*sin + 3*cos,
		D: -2*sin + 4*cos,
		E: 5, F: 6,
	}
	if got := m.Rotated(theta); !matrixNear(got, want, 1e-12) {
		t.Errorf("Rotated = %+v, want %+v", got, want)
	}
}

func TestTransformStackSaveRestore(t *testing.T) {
	s := NewTransformStack()
	if s.Depth() != 1 {
		t.Fatalf("Depth() = %d, want 1", s.Depth())
	}

	s.Translate(10, 20)
	s.Save()
	s.Scale(2, 2)
	if s.Depth() != 2 {
		t.Fatalf("Depth() after Save = %d, want 2", s.Depth())
	}
	if x, y := s.TransformPoint(1, 1); x != 12 || y != 22 {
		t.Errorf("TransformPoint = (%v, %v), want (12, 22)", x, y)
	}

	s.Restore()
	if x, y := s.TransformPoint(1, 1); x != 11 || y != 21 {
		t.Errorf("TransformPoint after Restore = (%v, %v), want (11, 21)", x, y)
	}

	// Restoring the last matrix is a no-op.
	s.Restore()
	s.Restore()
	if s.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1", s.Depth())
	}
	if got := s.Current(); got != Identity().Translated(10, 20) {
		t.Errorf("Current() = %+v, want translation (10, 20)", got)
	}
}

func TestTransformStackZeroValue(t *testing.T) {
	var s TransformStack
	if s.Depth() != 1 {
		t.Errorf("zero value Depth() = %d, want 1", s.Depth())
	}
	if !s.Current().IsIdentity() {
		t.Error("zero value Current() is not identity")
	}
	s.Translate(1, 1)
	s.ResetTransform()
	if !s.Current().IsIdentity() || s.Depth() != 1 {
		t.Error("ResetTransform did not restore a single identity")
	}
}

func TestTransformStackOrderMatters(t *testing.T) {
	a := NewTransformStack()
	a.Rotate(math.Pi / 2)
	a.Scale(2, 1)

	b := NewTransformStack()
	b.Scale(2, 1)
	b.Rotate(math.Pi / 2)

	ax, ay := a.TransformPoint(1, 0)
	bx, by := b.TransformPoint(1, 0)
	if math.Abs(ax-bx) < 1e-9 && math.Abs(ay-by) < 1e-9 {
		t.Errorf("rotate/scale order should matter, both gave (%v, %v)", ax, ay)
	}
}

func TestMatrixInvert(t *testing.T) {
	m := Identity().Translated(3, -2).Rotated(0.7).Scaled(2, 0.5)
	inv, ok := m.Invert()
	if !ok {
		t.Fatal("Invert reported a regular matrix as singular")
	}
	for _, p := range []Point{{0, 0}, {1, 2}, {-7.5, 3.25}} {
		got := inv.TransformPoint(m.TransformPoint(p))
		if math.Abs(got.X-p.X) > 1e-9 || math.Abs(got.Y-p.Y) > 1e-9 {
			t.Errorf("inverse round trip of %v = %v", p, got)
		}
	}

	singular := []Matrix{
		Identity().Scaled(0, 1),
		{A: math.NaN(), D: 1},
	}
	for _, s := range singular {
		if _, ok := s.Invert(); ok {
			t.Errorf("Invert(%+v) ok, want false", s)
		}
	}
}
