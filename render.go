package flipdisc

import "github.com/gogpu/flipdisc/effect"

// Render runs one render pass: every registered effect is applied once, the
// effect layer is composited onto copies of both grids, and the result is
// dispatched to the transport if any cell differs from the last dispatched
// frame. It reports whether a dispatch happened.
//
// The drawing grids themselves are never modified by a render pass.
func (c *Canvas) Render() bool {
	return c.renderFrom(c.vertical, c.horizontal)
}

// renderFrom runs a render pass with the given grids as the base frame.
func (c *Canvas) renderFrom(vertical, horizontal *Grid) bool {
	if c.compositor == nil {
		return c.present(vertical, horizontal)
	}
	if c.effects.Len() > 0 {
		c.effects.Apply(effect.Tick{T: c.elapsed(), Rand: c.rng})
	}
	v, h := vertical.Clone(), horizontal.Clone()
	c.compositor.Composite(v, vertical)
	c.compositor.Composite(h, horizontal)
	return c.present(v, h)
}

// present dispatches the frame pair when it differs from the previous
// snapshot and records it as the new snapshot.
func (c *Canvas) present(vertical, horizontal *Grid) bool {
	if vertical.Equal(c.prevVertical) && horizontal.Equal(c.prevHorizontal) {
		return false
	}
	c.prevVertical = vertical.Clone()
	c.prevHorizontal = horizontal.Clone()
	c.transport.Dispatch(vertical.Clone(), horizontal.Clone())
	Logger().Debug("flipdisc: dispatched frame",
		"vertical", vertical.Count(), "horizontal", horizontal.Count())
	return true
}

// elapsed returns the seconds since the canvas was created, as read from
// the configured clock.
func (c *Canvas) elapsed() float64 {
	return c.now().Sub(c.epoch).Seconds()
}
