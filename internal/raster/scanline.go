package raster

import (
	"math"
	"slices"
)

// Clip bounds the cells a fill may visit: x in [0, Width], y in [0, Height].
type Clip struct {
	Width, Height int
}

// FillPolygon fills the closed polygon through pts with the even-odd rule.
// For every integer scanline y between the rounded extremes of the polygon
// it collects edge crossings, sorts them and calls fn for each integer x in
// [ceil(x_i), floor(x_i+1)] of every crossing pair. An unpaired trailing
// crossing is ignored. Cells outside clip are never visited.
func FillPolygon(pts []Point, clip Clip, fn func(x, y int)) {
	if len(pts) < 3 {
		return
	}

	yMin, yMax := math.Inf(1), math.Inf(-1)
	edges := make([]Edge, len(pts))
	for i, p := range pts {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return
		}
		edges[i] = NewEdge(p, pts[(i+1)%len(pts)])
		yMin = math.Min(yMin, p.Y)
		yMax = math.Max(yMax, p.Y)
	}

	lo := math.Max(math.Floor(yMin), 0)
	hi := math.Min(math.Ceil(yMax), float64(clip.Height))

	xs := make([]float64, 0, len(edges))
	for y := lo; y <= hi; y++ {
		xs = xs[:0]
		for _, e := range edges {
			if e.Crosses(y) {
				xs = append(xs, e.XAt(y))
			}
		}
		slices.Sort(xs)

		for i := 0; i+1 < len(xs); i += 2 {
			start := math.Max(math.Ceil(xs[i]), 0)
			end := math.Min(math.Floor(xs[i+1]), float64(clip.Width))
			for x := start; x <= end; x++ {
				fn(int(x), int(y))
			}
		}
	}
}
