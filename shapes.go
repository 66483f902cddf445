package flipdisc

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/flipdisc/internal/raster"
)

// rectFillLimit caps the interior points DrawRect visits one by one. Beyond
// it the transformed interior is scanline-filled instead.
const rectFillLimit = 1 << 16

// DrawRect draws the outline of a rectangle and optionally fills the cells
// strictly inside the outline on the grids selected by fill.
//
// The fill visits the logical points (x+1+i, y+1+j) inside the outline and
// transforms each one. Points that cannot land on the canvas are skipped.
// When the transform packs more than rectFillLimit points onto the canvas,
// the transformed interior quadrilateral is scanline-filled instead.
func (c *Canvas) DrawRect(x, y, w, h float64, fill FillTarget, width int) {
	c.DrawLine(x, y, x+w, y, width)
	c.DrawLine(x+w, y, x+w, y+h, width)
	c.DrawLine(x+w, y+h, x, y+h, width)
	c.DrawLine(x, y+h, x, y, width)

	if fill != FillNone {
		c.fillRect(x, y, w, h, fill)
	}
}

func (c *Canvas) fillRect(x, y, w, h float64, fill FillTarget) {
	for _, v := range [...]float64{x, y, w, h} {
		if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > maxCoord {
			return
		}
	}
	// Interior points run from x+1 while below x+w-1.
	nx, ny := stepCount(w-2), stepCount(h-2)
	if nx == 0 || ny == 0 {
		return
	}
	x0, y0 := x+1, y+1

	inv, ok := c.Current().Invert()
	if ok {
		bx0, by0, bx1, by1 := c.reachableBounds(inv)
		iLo, iHi := indexSpan(bx0-x0, bx1-x0, nx)
		jLo, jHi := indexSpan(by0-y0, by1-y0, ny)
		if iLo > iHi || jLo > jHi {
			return
		}
		if int64(iHi-iLo+1)*int64(jHi-jLo+1) <= rectFillLimit {
			for j := jLo; j <= jHi; j++ {
				for i := iLo; i <= iHi; i++ {
					tx, ty := c.TransformPoint(x0+float64(i), y0+float64(j))
					c.fillPixel(tx, ty, fill)
				}
			}
			return
		}
	}

	x1, y1 := x+w-2, y+h-2
	pts := []raster.Point{
		c.devicePoint(x0, y0), c.devicePoint(x1, y0),
		c.devicePoint(x1, y1), c.devicePoint(x0, y1),
	}
	raster.FillPolygon(pts, raster.Clip{Width: c.width, Height: c.height}, func(px, py int) {
		c.fillPixel(float64(px), float64(py), fill)
	})
}

// reachableBounds returns the logical bounding box of the points that inv
// maps back from the canvas, padded by one unit.
func (c *Canvas) reachableBounds(inv Matrix) (x0, y0, x1, y1 float64) {
	w, h := float64(c.width)+1, float64(c.height)+1
	x0, y0 = math.Inf(1), math.Inf(1)
	x1, y1 = math.Inf(-1), math.Inf(-1)
	for _, p := range [...]Point{{-1, -1}, {w, -1}, {w, h}, {-1, h}} {
		q := inv.TransformPoint(p)
		x0, x1 = math.Min(x0, q.X), math.Max(x1, q.X)
		y0, y1 = math.Min(y0, q.Y), math.Max(y1, q.Y)
	}
	return x0, y0, x1, y1
}

func (c *Canvas) devicePoint(x, y float64) raster.Point {
	tx, ty := c.TransformPoint(x, y)
	return raster.Point{X: tx, Y: ty}
}

// indexSpan intersects the offsets [lo, hi] with the indices [0, n-1]. The
// result is empty (lo > hi) when they do not overlap.
func indexSpan(lo, hi float64, n int) (int, int) {
	a := math.Max(math.Ceil(lo), 0)
	b := math.Min(math.Floor(hi), float64(n-1))
	if !(a <= b) {
		return 0, -1
	}
	return int(a), int(b)
}

// DrawCircle draws a circle as a polyline of ceil(2πr) segments around the
// transformed centre. With a fill target every cell whose centre lies within
// radius is filled too.
func (c *Canvas) DrawCircle(cx, cy, radius float64, fill FillTarget, width int) {
	c.DrawEllipse(cx, cy, radius, radius, fill, width)
}

// DrawEllipse draws an axis-aligned ellipse as a polyline of
// ceil(2π·max(rx, ry)) segments around the transformed centre.
func (c *Canvas) DrawEllipse(cx, cy, rx, ry float64, fill FillTarget, width int) {
	cx, cy = c.TransformPoint(cx, cy)
	steps := stepCount(2 * math.Pi * math.Max(rx, ry))

	prevX, prevY := cx+rx, cy
	for i := 1; i <= steps; i++ {
		theta := float64(i) / float64(steps) * 2 * math.Pi
		x := cx + rx*math.Cos(theta)
		y := cy + ry*math.Sin(theta)
		c.drawDeviceLine(prevX, prevY, x, y, width)
		prevX, prevY = x, y
	}

	if fill == FillNone || rx <= 0 || ry <= 0 {
		return
	}
	minX, maxX := clampSpan(math.Floor(cx-rx), math.Floor(cx+rx), c.width)
	minY, maxY := clampSpan(math.Floor(cy-ry), math.Floor(cy+ry), c.height)
	for py := minY; py <= maxY; py++ {
		for px := minX; px <= maxX; px++ {
			dx := (px - cx) / rx
			dy := (py - cy) / ry
			if dx*dx+dy*dy <= 1 {
				c.fillPixel(px, py, fill)
			}
		}
	}
}

// DrawArc draws the arc of a circle from startAngle to endAngle (radians)
// with ceil(r·|end−start|) segments.
func (c *Canvas) DrawArc(cx, cy, radius, startAngle, endAngle float64, width int) {
	cx, cy = c.TransformPoint(cx, cy)
	diff := endAngle - startAngle
	steps := stepCount(radius * math.Abs(diff))

	prevX := cx + radius*math.Cos(startAngle)
	prevY := cy + radius*math.Sin(startAngle)
	for i := 1; i <= steps; i++ {
		angle := startAngle + float64(i)/float64(steps)*diff
		x := cx + radius*math.Cos(angle)
		y := cy + radius*math.Sin(angle)
		c.drawDeviceLine(prevX, prevY, x, y, width)
		prevX, prevY = x, y
	}
}

// DrawPolyline draws lines between consecutive points. With a fill target
// the polyline is closed and its interior scanline-filled.
func (c *Canvas) DrawPolyline(points []Point, fill FillTarget, width int) {
	if len(points) == 0 {
		return
	}

	pts := make([]raster.Point, len(points))
	for i, p := range points {
		pts[i] = c.devicePoint(p.X, p.Y)
	}
	for i := 1; i < len(pts); i++ {
		c.drawDeviceLine(pts[i-1].X, pts[i-1].Y, pts[i].X, pts[i].Y, width)
	}

	if fill == FillNone {
		return
	}
	last, first := pts[len(pts)-1], pts[0]
	c.drawDeviceLine(last.X, last.Y, first.X, first.Y, width)
	raster.FillPolygon(pts, raster.Clip{Width: c.width, Height: c.height}, func(x, y int) {
		c.fillPixel(float64(x), float64(y), fill)
	})
}

// DrawSVGPolyline draws a polyline given in the SVG points syntax,
// "x,y x,y ...". Nothing is drawn if any pair fails to parse.
func (c *Canvas) DrawSVGPolyline(points string, fill FillTarget, width int) error {
	pts, err := ParsePoints(points)
	if err != nil {
		return err
	}
	c.DrawPolyline(pts, fill, width)
	return nil
}

// ParsePoints parses whitespace-separated "x,y" pairs.
func ParsePoints(s string) ([]Point, error) {
	fields := strings.Fields(s)
	pts := make([]Point, 0, len(fields))
	for _, pair := range fields {
		xs, ys, ok := strings.Cut(pair, ",")
		if !ok {
			return nil, fmt.Errorf("%w: %q is not an x,y pair", ErrInvalidPoints, pair)
		}
		x, err := strconv.ParseFloat(xs, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidPoints, pair, err)
		}
		y, err := strconv.ParseFloat(ys, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidPoints, pair, err)
		}
		pts = append(pts, Pt(x, y))
	}
	return pts, nil
}

// DrawStar draws a closed star with the given number of points alternating
// between outer and inner radius, starting on the outer radius at angle 0.
func (c *Canvas) DrawStar(cx, cy, innerRadius, outerRadius float64, points, width int) {
	if points <= 0 {
		return
	}
	c.BeginPath()
	step := 2 * math.Pi / float64(points)
	c.MoveTo(cx+outerRadius, cy)
	for i := 1; i <= points*2; i++ {
		r := innerRadius
		if i%2 == 0 {
			r = outerRadius
		}
		angle := float64(i) * step / 2
		c.LineTo(cx+r*math.Cos(angle), cy+r*math.Sin(angle))
	}
	c.ClosePath()
	c.Stroke(width)
}

// DrawPolygon draws the closed outline through vertices.
func (c *Canvas) DrawPolygon(vertices []Point, width int) {
	if len(vertices) == 0 {
		return
	}
	c.BeginPath()
	c.MoveTo(vertices[0].X, vertices[0].Y)
	for _, v := range vertices[1:] {
		c.LineTo(v.X, v.Y)
	}
	c.ClosePath()
	c.Stroke(width)
}

// ClearRect turns off every cell of both grids covered by the logical
// rectangle, edges included. The transform is not applied.
func (c *Canvas) ClearRect(x, y, w, h float64) {
	vx0, vy0 := c.toVertical(x, y)
	vx1, vy1 := c.toVertical(x+w, y+h)
	clearCells(c.vertical, vx0, vy0, vx1, vy1)

	hx0, hy0 := c.toHorizontal(x, y)
	hx1, hy1 := c.toHorizontal(x+w, y+h)
	clearCells(c.horizontal, hx0, hy0, hx1, hy1)
}

func clearCells(g *Grid, x0, y0, x1, y1 int) {
	for y := max(0, y0); y <= min(g.height-1, y1); y++ {
		for x := max(0, x0); x <= min(g.width-1, x1); x++ {
			g.Unset(x, y)
		}
	}
}

// stepCount returns ceil(v) as a loop bound, or 0 for values that are not
// positive and finite.
func stepCount(v float64) int {
	if math.IsNaN(v) || v <= 0 || math.IsInf(v, 0) {
		return 0
	}
	return int(math.Ceil(math.Min(v, maxCoord)))
}

// clampSpan limits an integer-valued float range to [-1, limit].
func clampSpan(lo, hi float64, limit int) (float64, float64) {
	return math.Max(lo, -1), math.Min(hi, float64(limit))
}
