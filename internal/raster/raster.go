// Package raster provides the integer stepping and scanline primitives
// used to rasterize logical geometry onto binary grids.
package raster

// Point represents a 2D point (internal copy to avoid import cycle).
type Point struct {
	X, Y float64
}

// Axis identifies which grid orientation a step is routed to.
type Axis uint8

const (
	// Horizontal marks a step that advanced along x (or a diagonal step of
	// an x-major segment).
	Horizontal Axis = iota
	// Vertical marks a step that advanced along y (or a diagonal step of
	// a y-major segment).
	Vertical
)

// String returns the axis name.
func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "Horizontal"
	case Vertical:
		return "Vertical"
	default:
		return "Unknown"
	}
}

// Step is one advance of the Bresenham walk from (PrevX, PrevY) to (X, Y).
type Step struct {
	PrevX, PrevY int
	X, Y         int
	Axis         Axis
}

// Walk steps from (x0, y0) to (x1, y1) with the integer Bresenham algorithm
// and calls fn once per step. The start point itself is not a step, so a
// zero-length segment produces no calls.
//
// A step that moves only along x is Horizontal and one that moves only
// along y is Vertical. A diagonal step takes the axis with the larger total
// delta of the whole segment, with ties going to Horizontal.
func Walk(x0, y0, x1, y1 int, fn func(Step)) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	major := Vertical
	if dx >= dy {
		major = Horizontal
	}

	err := dx - dy
	x, y := x0, y0
	for x != x1 || y != y1 {
		px, py := x, y
		e2 := 2 * err
		movedX, movedY := false, false
		if e2 > -dy {
			err -= dy
			x += sx
			movedX = true
		}
		if e2 < dx {
			err += dx
			y += sy
			movedY = true
		}

		axis := major
		switch {
		case movedX && !movedY:
			axis = Horizontal
		case movedY && !movedX:
			axis = Vertical
		}
		fn(Step{PrevX: px, PrevY: py, X: x, Y: y, Axis: axis})
	}
}

// Offsets returns the inclusive perpendicular offset range for a line of
// the given width: [-floor(w/2), floor(w/2)]. A negative width yields an
// empty range (lo > hi).
func Offsets(width int) (lo, hi int) {
	half := floorDiv2(width)
	return -half, half
}

func floorDiv2(v int) int {
	if v >= 0 {
		return v / 2
	}
	return -((-v + 1) / 2)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
