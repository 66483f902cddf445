// Package flipdisc draws vector and raster graphics onto flip-disc panels
// built from two binary grids.
//
// # Overview
//
// A flip-disc display is wired as two physically separate panel sets: a
// "vertical" one driven by vertical strokes and a "horizontal" one driven by
// horizontal strokes, text and images. The two sets usually differ in
// resolution and cell shape. A Canvas exposes one logical drawing surface
// and rasterizes every drawing call onto the appropriate grid so both stay
// visually coherent.
//
// # Quick Start
//
//	canvas, err := flipdisc.New(flipdisc.Config{
//	    Width: 28, Height: 14,
//	    Vertical:   flipdisc.Size{Width: 28, Height: 14},
//	    Horizontal: flipdisc.Size{Width: 28, Height: 14},
//	}, flipdisc.WithTransport(panel))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	canvas.DrawCircle(14, 7, 5, flipdisc.FillNone, 1)
//	canvas.DrawText("HI", 1, 1, 1)
//	canvas.Render()
//
// # Routing
//
// Lines are stepped with Bresenham's algorithm in logical coordinates.
// A step that advances along x lands on the horizontal grid and a step that
// advances along y lands on the vertical grid; diagonal steps follow the
// major axis of the whole line. Fills may target either grid or both.
// Text and raw bitmaps always go to the horizontal grid.
//
// # Rendering
//
// Render runs the registered effects (see package effect), composites the
// effect layer onto copies of both grids and hands the result to the
// Transport only if some cell changed since the last dispatch. Animate,
// StartRenderLoop and PlayAnimation call it on a timer.
//
// # Coordinate System
//
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Angles in radians
package flipdisc

// Version is the current version of the library.
const Version = "0.1.0"
