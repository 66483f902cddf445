package flipdisc

import (
	"errors"
	"math"
	"testing"
	"time"
)

// returnsWithin fails the test if fn has not returned after d.
func returnsWithin(t *testing.T, d time.Duration, fn func()) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		fn()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(d):
		t.Fatalf("did not return within %v", d)
	}
}

func TestDrawRectFillTargets(t *testing.T) {
	tests := []struct {
		name      string
		fill      FillTarget
		wantHoriz uint8
		wantVert  uint8
	}{
		{"none", FillNone, 0, 0},
		{"both", FillBoth, 1, 1},
		{"horizontal", FillHorizontal, 1, 0},
		{"vertical", FillVertical, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCanvas(t)
			c.DrawRect(2, 2, 8, 6, tt.fill, 1)
			if got := c.Horizontal().Get(5, 4); got != tt.wantHoriz {
				t.Errorf("horizontal interior = %d, want %d", got, tt.wantHoriz)
			}
			if got := c.Vertical().Get(5, 4); got != tt.wantVert {
				t.Errorf("vertical interior = %d, want %d", got, tt.wantVert)
			}
			// Outline: top edge on horizontal grid, left edge on vertical grid.
			if c.Horizontal().Get(4, 2) != 1 {
				t.Error("top edge missing")
			}
			if c.Vertical().Get(2, 4) != 1 {
				t.Error("left edge missing")
			}
		})
	}
}

func TestDrawRectLargeAndOffCanvas(t *testing.T) {
	const all = 28 * 14
	tests := []struct {
		name       string
		setup      func(c *Canvas)
		x, y, w, h float64
		wantLit    int
	}{
		{name: "covers canvas", x: -10, y: -10, w: 1e6, h: 1e6, wantLit: all},
		{name: "far off canvas", x: 1e17, y: 0, w: 10, h: 3},
		{name: "huge size", x: 0, y: 0, w: 1e17, h: 1e17},
		{name: "beside canvas", x: 1000, y: 1000, w: 50, h: 50},
		{name: "not finite", x: math.NaN(), y: 0, w: 5, h: 5},
		{name: "infinite size", x: 0, y: 0, w: math.Inf(1), h: math.Inf(1)},
		{
			name:    "scaled down",
			setup:   func(c *Canvas) { c.Translate(-5, -5); c.Scale(1e-3, 1e-3) },
			x:       0,
			y:       0,
			w:       1e6,
			h:       1e6,
			wantLit: all,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCanvas(t)
			if tt.setup != nil {
				tt.setup(c)
			}
			returnsWithin(t, 5*time.Second, func() {
				c.DrawRect(tt.x, tt.y, tt.w, tt.h, FillBoth, 1)
			})
			if n := c.Horizontal().Count(); n != tt.wantLit {
				t.Errorf("horizontal lit %d cells, want %d", n, tt.wantLit)
			}
			if n := c.Vertical().Count(); n != tt.wantLit {
				t.Errorf("vertical lit %d cells, want %d", n, tt.wantLit)
			}
		})
	}
}

func TestDrawRectRotatedFill(t *testing.T) {
	c := newTestCanvas(t)
	c.Translate(14, 7)
	c.Rotate(math.Pi / 2)
	c.DrawRect(-3, -3, 6, 6, FillHorizontal, 1)
	// Interior points (-2..1, -2..1) land on x in 13..16, y in 5..8.
	for _, p := range [][2]int{{13, 5}, {16, 8}, {14, 7}} {
		if c.Horizontal().Get(p[0], p[1]) != 1 {
			t.Errorf("horizontal (%d, %d) not filled", p[0], p[1])
		}
	}
	if c.Vertical().Get(14, 7) != 0 {
		t.Error("horizontal-only fill reached the vertical grid")
	}
}

func TestSquareScanlineFill(t *testing.T) {
	c := newTestCanvas(t)
	c.DrawPolyline([]Point{{2, 2}, {6, 2}, {6, 6}, {2, 6}}, FillBoth, 1)
	for y := 2; y <= 5; y++ {
		for x := 2; x <= 6; x++ {
			if c.Horizontal().Get(x, y) != 1 {
				t.Errorf("horizontal (%d, %d) not filled", x, y)
			}
			if c.Vertical().Get(x, y) != 1 {
				t.Errorf("vertical (%d, %d) not filled", x, y)
			}
		}
	}
	if c.Horizontal().Get(8, 4) != 0 || c.Vertical().Get(4, 8) != 0 {
		t.Error("fill leaked outside the square")
	}
}

func TestPolylineOpen(t *testing.T) {
	c := newTestCanvas(t)
	c.DrawPolyline([]Point{{0, 0}, {5, 0}, {5, 5}}, FillNone, 1)
	if c.Horizontal().Count() != 5 || c.Vertical().Count() != 5 {
		t.Errorf("open polyline lit %d/%d cells, want 5/5",
			c.Horizontal().Count(), c.Vertical().Count())
	}
	c.DrawPolyline(nil, FillBoth, 1)
}

func TestDrawSVGPolyline(t *testing.T) {
	c := newTestCanvas(t)
	if err := c.DrawSVGPolyline("0,0 5,0 5,5", FillNone, 1); err != nil {
		t.Fatalf("DrawSVGPolyline: %v", err)
	}
	if c.Horizontal().Count() != 5 {
		t.Errorf("lit %d horizontal cells, want 5", c.Horizontal().Count())
	}

	c.Clear()
	err := c.DrawSVGPolyline("0,0 5,x 5,5", FillNone, 1)
	if !errors.Is(err, ErrInvalidPoints) {
		t.Fatalf("error = %v, want ErrInvalidPoints", err)
	}
	if c.Horizontal().Count()+c.Vertical().Count() != 0 {
		t.Error("malformed point list drew cells")
	}
}

func TestParsePoints(t *testing.T) {
	tests := []struct {
		in      string
		want    []Point
		wantErr bool
	}{
		{"1,2 3.5,-4", []Point{{1, 2}, {3.5, -4}}, false},
		{"  1,2\n3,4  ", []Point{{1, 2}, {3, 4}}, false},
		{"", []Point{}, false},
		{"1,2 3", nil, true},
		{"a,2", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePoints(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePoints(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParsePoints(%q) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("point %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDrawCircle(t *testing.T) {
	c := newTestCanvas(t)
	c.DrawCircle(14, 7, 5, FillNone, 1)
	if c.Horizontal().Count() == 0 || c.Vertical().Count() == 0 {
		t.Fatal("circle outline missing on a grid")
	}
	if c.Horizontal().Get(14, 7) != 0 {
		t.Error("unfilled circle lit its centre")
	}

	c.DrawCircle(14, 7, 5, FillBoth, 1)
	if c.Horizontal().Get(14, 7) != 1 || c.Vertical().Get(14, 7) != 1 {
		t.Error("filled circle did not light its centre")
	}
	if c.Horizontal().Get(14, 0) != 0 {
		t.Error("fill leaked outside the radius")
	}
}

func TestDrawArc(t *testing.T) {
	c := newTestCanvas(t)
	c.DrawArc(14, 7, 5, 0, 0, 1)
	if c.Horizontal().Count()+c.Vertical().Count() != 0 {
		t.Error("empty arc drew cells")
	}
	c.DrawArc(14, 7, 5, 0, 3.14159, 1)
	if c.Horizontal().Count()+c.Vertical().Count() == 0 {
		t.Error("half arc drew nothing")
	}
	// The arc sweeps through positive y only.
	for y := 0; y < 6; y++ {
		for x := 0; x < 28; x++ {
			if c.Horizontal().Get(x, y)+c.Vertical().Get(x, y) != 0 {
				t.Fatalf("arc lit (%d, %d) above its centre", x, y)
			}
		}
	}
}

func TestDrawPolygonClosed(t *testing.T) {
	c := newTestCanvas(t)
	c.DrawPolygon([]Point{{2, 2}, {10, 2}, {10, 8}}, 1)
	// Only the closing edge from (10, 8) back to (2, 2) is x-major and
	// crosses rows 3..7.
	lit := 0
	for y := 3; y <= 7; y++ {
		for x := 3; x <= 9; x++ {
			lit += int(c.Horizontal().Get(x, y))
		}
	}
	if lit == 0 {
		t.Error("closing edge missing")
	}
	if c.Path().Len() != 0 {
		t.Error("path not cleared after DrawPolygon")
	}
}

func TestDrawStar(t *testing.T) {
	c := newTestCanvas(t)
	c.DrawStar(14, 7, 3, 6, 5, 1)
	if c.Horizontal().Count()+c.Vertical().Count() == 0 {
		t.Error("star drew nothing")
	}
	if c.Horizontal().Get(14, 7)+c.Vertical().Get(14, 7) != 0 {
		t.Error("star outline crossed its centre")
	}

	empty := newTestCanvas(t)
	empty.DrawStar(14, 7, 3, 6, 0, 1)
	if empty.Horizontal().Count()+empty.Vertical().Count() != 0 {
		t.Error("zero-point star drew cells")
	}
}

func TestClearRect(t *testing.T) {
	c := newTestCanvas(t)
	c.DrawRect(0, 0, 27, 13, FillBoth, 1)
	c.ClearRect(4, 4, 4, 4)
	for y := 4; y <= 8; y++ {
		for x := 4; x <= 8; x++ {
			if c.Horizontal().Get(x, y) != 0 || c.Vertical().Get(x, y) != 0 {
				t.Fatalf("cell (%d, %d) not cleared", x, y)
			}
		}
	}
	if c.Horizontal().Get(3, 4) != 1 {
		t.Error("ClearRect cleared outside its range")
	}
}
