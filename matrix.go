package flipdisc

import "math"

// Matrix represents a 2D affine transformation in canvas order:
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
//
// A, B, C, D form the linear part and E, F the translation.
type Matrix struct {
	A, B, C, D float64
	E, F       float64
}

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{A: 1, D: 1}
}

// TransformPoint applies the transformation to a point.
func (m Matrix) TransformPoint(p Point) Point {
	return Point{
		X: m.A*p.X + m.C*p.Y + m.E,
		Y: m.B*p.X + m.D*p.Y + m.F,
	}
}

// Translated returns m with (dx, dy) added to its translation.
// The linear part is not applied to the offset.
func (m Matrix) Translated(dx, dy float64) Matrix {
	m.E += dx
	m.F += dy
	return m
}

// Rotated returns m with its linear part composed with a rotation by angle
// radians. The translation is left untouched.
func (m Matrix) Rotated(angle float64) Matrix {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	a, b, c, d := m.A, m.B, m.C, m.D
	m.A = a*cos + c*sin
	m.B = b*cos + d*sin
	m.C = -a*sin + c*cos
	m.D = -b*sin + d*cos
	return m
}

// Scaled returns m with the x basis scaled by sx and the y basis by sy.
func (m Matrix) Scaled(sx, sy float64) Matrix {
	m.A *= sx
	m.B *= sx
	m.C *= sy
	m.D *= sy
	return m
}

// Invert returns the inverse of m. ok is false when m is singular or not
// finite.
func (m Matrix) Invert() (inv Matrix, ok bool) {
	det := m.A*m.D - m.B*m.C
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return Matrix{}, false
	}
	k := 1 / det
	return Matrix{
		A: m.D * k,
		B: -m.B * k,
		C: -m.C * k,
		D: m.A * k,
		E: (m.C*m.F - m.D*m.E) * k,
		F: (m.B*m.E - m.A*m.F) * k,
	}, true
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// TransformStack is a non-empty stack of affine matrices. The top matrix is
// the active transform and the bottom is always the identity.
//
// The zero value is ready to use and behaves as a single identity matrix.
type TransformStack struct {
	stack []Matrix
}

// NewTransformStack returns a stack holding only the identity.
func NewTransformStack() TransformStack {
	s := TransformStack{stack: make([]Matrix, 1, 8)}
	s.stack[0] = Identity()
	return s
}

func (s *TransformStack) top() *Matrix {
	if len(s.stack) == 0 {
		s.stack = append(s.stack, Identity())
	}
	return &s.stack[len(s.stack)-1]
}

// Save pushes a copy of the active matrix.
func (s *TransformStack) Save() {
	m := *s.top()
	s.stack = append(s.stack, m)
}

// Restore pops the active matrix. The bottom identity is never popped.
func (s *TransformStack) Restore() {
	if len(s.stack) > 1 {
		s.stack = s.stack[:len(s.stack)-1]
	}
}

// Translate moves the origin of the active matrix by (dx, dy).
func (s *TransformStack) Translate(dx, dy float64) {
	m := s.top()
	*m = m.Translated(dx, dy)
}

// Rotate composes a rotation by angle radians into the active matrix.
func (s *TransformStack) Rotate(angle float64) {
	m := s.top()
	*m = m.Rotated(angle)
}

// Scale scales the active matrix by (sx, sy).
func (s *TransformStack) Scale(sx, sy float64) {
	m := s.top()
	*m = m.Scaled(sx, sy)
}

// TransformPoint maps (x, y) through the active matrix.
func (s *TransformStack) TransformPoint(x, y float64) (float64, float64) {
	p := s.top().TransformPoint(Pt(x, y))
	return p.X, p.Y
}

// ResetTransform discards every saved matrix and restores the identity.
func (s *TransformStack) ResetTransform() {
	s.stack = append(s.stack[:0], Identity())
}

// Current returns the active matrix.
func (s *TransformStack) Current() Matrix {
	return *s.top()
}

// Depth returns the number of matrices on the stack (always at least 1).
func (s *TransformStack) Depth() int {
	if len(s.stack) == 0 {
		return 1
	}
	return len(s.stack)
}
