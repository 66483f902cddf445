package raster

// Edge is a polygon edge as used by the even-odd scanline test.
type Edge struct {
	x0, y0 float64
	x1, y1 float64
}

// NewEdge creates an edge from p0 to p1. The direction is kept because the
// crossing test treats the two endpoints asymmetrically.
func NewEdge(p0, p1 Point) Edge {
	return Edge{x0: p0.X, y0: p0.Y, x1: p1.X, y1: p1.Y}
}

// Crosses reports whether the scanline at y crosses the edge. The lower
// endpoint is included and the upper excluded, so a vertex shared by two
// edges is counted once and horizontal edges never cross.
func (e Edge) Crosses(y float64) bool {
	return (e.y0 <= y && e.y1 > y) || (e.y1 <= y && e.y0 > y)
}

// XAt returns the x coordinate where the scanline at y meets the edge.
// Only meaningful when Crosses(y) is true.
func (e Edge) XAt(y float64) float64 {
	return e.x0 + (y-e.y0)*(e.x1-e.x0)/(e.y1-e.y0)
}
