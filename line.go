package flipdisc

import (
	"math"

	"github.com/gogpu/flipdisc/internal/raster"
)

// maxCoord bounds rounded device coordinates. Segments reaching further are
// outside any realistic panel and are dropped instead of walked.
const maxCoord = 1 << 24

// DrawLine draws a line of the given width from (x0, y0) to (x1, y1) in
// logical coordinates, after applying the active transform.
//
// Each step of the walk is routed to one grid only: horizontal-dominant steps
// to the horizontal grid and vertical-dominant steps to the vertical grid.
// Width widens the line across the perpendicular axis; cells outside a grid
// are clipped.
func (c *Canvas) DrawLine(x0, y0, x1, y1 float64, width int) {
	x0, y0 = c.TransformPoint(x0, y0)
	x1, y1 = c.TransformPoint(x1, y1)
	c.drawDeviceLine(x0, y0, x1, y1, width)
}

// drawDeviceLine rasterizes a segment whose endpoints are already
// transformed.
func (c *Canvas) drawDeviceLine(x0, y0, x1, y1 float64, width int) {
	ix0, ok0 := roundCoord(x0)
	iy0, ok1 := roundCoord(y0)
	ix1, ok2 := roundCoord(x1)
	iy1, ok3 := roundCoord(y1)
	if !ok0 || !ok1 || !ok2 || !ok3 {
		return
	}

	lo, hi := raster.Offsets(width)
	raster.Walk(ix0, iy0, ix1, iy1, func(s raster.Step) {
		switch s.Axis {
		case raster.Horizontal:
			hx, hy := c.toHorizontal(float64(min(s.PrevX, s.X)), float64(s.PrevY))
			for off := lo; off <= hi; off++ {
				c.horizontal.Set(hx, hy+off)
			}
		case raster.Vertical:
			vx, vy := c.toVertical(float64(s.PrevX), float64(min(s.PrevY, s.Y)))
			for off := lo; off <= hi; off++ {
				c.vertical.Set(vx+off, vy)
			}
		}
	})
}

// roundCoord rounds half up, like the canvas APIs this mirrors, and rejects
// values that are not finite or lie far outside any grid.
func roundCoord(v float64) (int, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	r := math.Floor(v + 0.5)
	if r < -maxCoord || r > maxCoord {
		return 0, false
	}
	return int(r), true
}
