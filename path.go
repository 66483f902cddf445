package flipdisc

// PathElement represents a single recorded path command. Coordinates are
// stored already transformed by the transform active when the command was
// issued.
type PathElement interface {
	isPathElement()
	end() Point
}

// MoveTo starts a new subpath without drawing.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathElement() {}
func (e MoveTo) end() Point   { return e.Point }

// LineTo draws a straight line to a point.
type LineTo struct {
	Point Point
}

func (LineTo) isPathElement() {}
func (e LineTo) end() Point   { return e.Point }

// QuadTo records a quadratic Bezier curve. It is stroked as a chord.
type QuadTo struct {
	Control Point
	Point   Point
}

func (QuadTo) isPathElement() {}
func (e QuadTo) end() Point   { return e.Point }

// CubicTo records a cubic Bezier curve. It is stroked as a chord.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

func (CubicTo) isPathElement() {}
func (e CubicTo) end() Point   { return e.Point }

// Path is an ordered list of recorded commands.
type Path struct {
	elements []PathElement
}

// Elements returns the recorded commands.
func (p *Path) Elements() []PathElement {
	return p.elements
}

// Len returns the number of recorded commands.
func (p *Path) Len() int {
	return len(p.elements)
}

func (p *Path) add(e PathElement) {
	p.elements = append(p.elements, e)
}

func (p *Path) clear() {
	p.elements = p.elements[:0]
}

// Path returns the path being built between BeginPath and Stroke.
func (c *Canvas) Path() *Path {
	return &c.path
}

// BeginPath discards any recorded commands.
func (c *Canvas) BeginPath() {
	c.path.clear()
}

func (c *Canvas) transformed(x, y float64) Point {
	tx, ty := c.TransformPoint(x, y)
	return Pt(tx, ty)
}

// MoveTo starts a new subpath at (x, y).
func (c *Canvas) MoveTo(x, y float64) {
	c.path.add(MoveTo{Point: c.transformed(x, y)})
}

// LineTo adds a line to (x, y).
func (c *Canvas) LineTo(x, y float64) {
	c.path.add(LineTo{Point: c.transformed(x, y)})
}

// QuadraticCurveTo adds a quadratic curve with control point (cpx, cpy)
// ending at (x, y).
func (c *Canvas) QuadraticCurveTo(cpx, cpy, x, y float64) {
	c.path.add(QuadTo{
		Control: c.transformed(cpx, cpy),
		Point:   c.transformed(x, y),
	})
}

// BezierCurveTo adds a cubic curve with control points (cp1x, cp1y) and
// (cp2x, cp2y) ending at (x, y).
func (c *Canvas) BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64) {
	c.path.add(CubicTo{
		Control1: c.transformed(cp1x, cp1y),
		Control2: c.transformed(cp2x, cp2y),
		Point:    c.transformed(x, y),
	})
}

// ClosePath adds a line back to the first move or line point of the path.
// It does nothing on a path without one.
func (c *Canvas) ClosePath() {
	for _, e := range c.path.elements {
		switch e := e.(type) {
		case MoveTo:
			c.path.add(LineTo{Point: e.Point})
			return
		case LineTo:
			c.path.add(LineTo{Point: e.Point})
			return
		}
	}
}

// Stroke draws the recorded path with the given line width and clears it.
//
// Lines and curves are drawn as straight segments from the previous point
// to the command's end point; curve control points are not used. A curve
// with no current point is ignored entirely.
func (c *Canvas) Stroke(width int) {
	var prev Point
	havePrev := false
	for _, e := range c.path.elements {
		p := e.end()
		switch e.(type) {
		case MoveTo:
			prev, havePrev = p, true
		case LineTo:
			if havePrev {
				c.drawDeviceLine(prev.X, prev.Y, p.X, p.Y, width)
			}
			prev, havePrev = p, true
		default:
			if havePrev {
				c.drawDeviceLine(prev.X, prev.Y, p.X, p.Y, width)
				prev = p
			}
		}
	}
	c.path.clear()
}
