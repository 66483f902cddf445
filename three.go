package flipdisc

import "math"

// DefaultCameraDistance is the perspective distance DrawLine3D uses when
// Line3DOptions.Distance is zero.
const DefaultCameraDistance = 30

// Line3DOptions configures DrawLine3D.
type Line3DOptions struct {
	// Distance is the camera distance d of the perspective divide.
	// Zero means DefaultCameraDistance.
	Distance float64

	// Width is the line width. Zero means 1.
	Width int

	// SkipRotation draws the endpoints as given instead of rotating them by
	// the canvas rotation first.
	SkipRotation bool
}

// SetRotationMatrix sets the canvas rotation to Rz·Ry·Rx for the given
// angles and returns it. Non-finite angles return ErrInvalidAngles and
// leave the rotation unchanged.
func (c *Canvas) SetRotationMatrix(a Angles) (Mat3, error) {
	return c.rotation.Set(a)
}

// RotationMatrix returns the current canvas rotation.
func (c *Canvas) RotationMatrix() Mat3 {
	m, _ := c.rotation.Matrix()
	return m
}

// ApplyRotationMatrix rotates p by the canvas rotation.
func (c *Canvas) ApplyRotationMatrix(p Vec3) (Vec3, error) {
	return c.rotation.Apply(p)
}

// DrawLine3D draws the segment p0–p1 after optional rotation and a simple
// perspective divide centred on the canvas:
//
//	screen_x = x·d/(d−z) + W/2
//	screen_y = y·d/(d−z) + H/2
//
// Depth is not clipped. Endpoints that project to non-finite coordinates
// (z == d) are dropped.
func (c *Canvas) DrawLine3D(p0, p1 Vec3, opts Line3DOptions) error {
	if !opts.SkipRotation {
		var err error
		if p0, err = c.rotation.Apply(p0); err != nil {
			return err
		}
		if p1, err = c.rotation.Apply(p1); err != nil {
			return err
		}
	}

	d := opts.Distance
	if d == 0 {
		d = DefaultCameraDistance
	}
	width := opts.Width
	if width == 0 {
		width = 1
	}

	s0 := c.perspective(p0, d)
	s1 := c.perspective(p1, d)
	c.DrawLine(s0.X, s0.Y, s1.X, s1.Y, width)
	return nil
}

func (c *Canvas) perspective(p Vec3, d float64) Point {
	k := d / (d - p.Z)
	return Point{
		X: p.X*k + float64(c.width)/2,
		Y: p.Y*k + float64(c.height)/2,
	}
}

// Project3DTo2D projects p with a field-of-view perspective. fov is in
// radians; aspect is accepted for API symmetry and does not affect the
// result. ok is false when p.Z lies outside [near, far].
func (c *Canvas) Project3DTo2D(p Vec3, fov, aspect, near, far float64) (Vec3, bool) {
	if p.Z < near || p.Z > far || math.IsNaN(p.Z) {
		return Vec3{X: math.NaN(), Y: math.NaN(), Z: math.NaN()}, false
	}
	scale := 1 / math.Tan(fov/2)
	px := p.X * scale / p.Z
	py := p.Y * scale / p.Z
	w, h := float64(c.width), float64(c.height)
	return Vec3{
		X: px*w/2 + w/2,
		Y: py*h/2 + h/2,
		Z: p.Z,
	}, true
}
