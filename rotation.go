package flipdisc

import (
	"fmt"
	"math"
)

// Vec3 is a point or vector in 3D space.
type Vec3 struct {
	X, Y, Z float64
}

// V3 is a convenience function to create a Vec3.
func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Mat3 is a 3×3 matrix in row-major order.
type Mat3 [3][3]float64

// Identity3 returns the 3×3 identity matrix.
func Identity3() Mat3 {
	return Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// Mul returns m·n.
func (m Mat3) Mul(n Mat3) Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				r[i][j] += m[i][k] * n[k][j]
			}
		}
	}
	return r
}

// Apply returns m·v.
func (m Mat3) Apply(v Vec3) Vec3 {
	return Vec3{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// RotationX returns the rotation about the x axis by angle radians.
func RotationX(angle float64) Mat3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat3{{1, 0, 0}, {0, c, -s}, {0, s, c}}
}

// RotationY returns the rotation about the y axis by angle radians.
func RotationY(angle float64) Mat3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat3{{c, 0, s}, {0, 1, 0}, {-s, 0, c}}
}

// RotationZ returns the rotation about the z axis by angle radians.
func RotationZ(angle float64) Mat3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat3{{c, -s, 0}, {s, c, 0}, {0, 0, 1}}
}

// Preset matrices.
var (
	RotationX45 = RotationX(math.Pi / 4)
	RotationY45 = RotationY(math.Pi / 4)
	RotationZ45 = RotationZ(math.Pi / 4)

	// Isometric is a fixed isometric-style view matrix.
	Isometric = Mat3{
		{math.Sqrt(3) / 2, 0, -math.Sqrt(3) / 2},
		{0.5, 1, 0.5},
		{math.Sqrt(3) / 2, 0, math.Sqrt(3) / 2},
	}
)

// Angles are rotations in radians about each axis.
type Angles struct {
	X, Y, Z float64
}

func (a Angles) finite() bool {
	for _, v := range [3]float64{a.X, a.Y, a.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Rotation holds the current 3D rotation. The zero value has no matrix
// set and Apply fails until Set or SetMatrix is called.
type Rotation struct {
	m   Mat3
	set bool
}

// IdentityRotation returns a rotation set to the identity.
func IdentityRotation() Rotation {
	return Rotation{m: Identity3(), set: true}
}

// Set replaces the rotation with Rz·Ry·Rx for the given angles. Non-finite
// angles are rejected and leave the rotation unchanged.
func (r *Rotation) Set(a Angles) (Mat3, error) {
	if !a.finite() {
		return r.m, fmt.Errorf("%w: got (%v, %v, %v)", ErrInvalidAngles, a.X, a.Y, a.Z)
	}
	r.m = RotationZ(a.Z).Mul(RotationY(a.Y)).Mul(RotationX(a.X))
	r.set = true
	return r.m, nil
}

// SetMatrix replaces the rotation with m.
func (r *Rotation) SetMatrix(m Mat3) {
	r.m = m
	r.set = true
}

// Matrix returns the current matrix and whether one is set.
func (r *Rotation) Matrix() (Mat3, bool) {
	return r.m, r.set
}

// Apply rotates v by the current matrix.
func (r *Rotation) Apply(v Vec3) (Vec3, error) {
	if !r.set {
		return Vec3{}, ErrRotationNotSet
	}
	return r.m.Apply(v), nil
}
