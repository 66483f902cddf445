package flipdisc

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/gogpu/flipdisc/effect"
)

// dispatchRecorder records dispatched frame pairs.
type dispatchRecorder struct {
	mu         sync.Mutex
	vertical   []*Grid
	horizontal []*Grid
}

func (r *dispatchRecorder) Dispatch(v, h *Grid) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vertical = append(r.vertical, v)
	r.horizontal = append(r.horizontal, h)
}

func (r *dispatchRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.vertical)
}

func (r *dispatchRecorder) last() (*Grid, *Grid) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.vertical) == 0 {
		return nil, nil
	}
	return r.vertical[len(r.vertical)-1], r.horizontal[len(r.horizontal)-1]
}

var testConfig = Config{
	Width: 28, Height: 14,
	Vertical:   Size{Width: 28, Height: 14},
	Horizontal: Size{Width: 28, Height: 14},
}

func newTestCanvas(t *testing.T, opts ...Option) *Canvas {
	t.Helper()
	c, err := New(testConfig, append([]Option{WithSeed(1)}, opts...)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

func TestNewValidatesSizes(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero width", Config{Width: 0, Height: 14, Vertical: Size{28, 14}, Horizontal: Size{28, 14}}},
		{"negative height", Config{Width: 28, Height: -1, Vertical: Size{28, 14}, Horizontal: Size{28, 14}}},
		{"empty vertical grid", Config{Width: 28, Height: 14, Vertical: Size{0, 14}, Horizontal: Size{28, 14}}},
		{"empty horizontal grid", Config{Width: 28, Height: 14, Vertical: Size{28, 14}, Horizontal: Size{28, 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.cfg)
			if !errors.Is(err, ErrInvalidSize) {
				t.Errorf("New error = %v, want ErrInvalidSize", err)
			}
			if c != nil {
				t.Error("New returned a canvas on error")
			}
		})
	}
}

func TestNewDimensions(t *testing.T) {
	c, err := New(Config{
		Width: 28, Height: 14,
		Vertical:   Size{Width: 14, Height: 7},
		Horizontal: Size{Width: 28, Height: 7},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.Width() != 28 || c.Height() != 14 {
		t.Errorf("logical size = %dx%d, want 28x14", c.Width(), c.Height())
	}
	if got := c.Vertical().Size(); got != (Size{14, 7}) {
		t.Errorf("vertical grid = %v, want 14x7", got)
	}
	if got := c.HorizontalSize(); got != (Size{28, 7}) {
		t.Errorf("horizontal size = %v, want 28x7", got)
	}
}

func TestHorizontalLineRouting(t *testing.T) {
	c := newTestCanvas(t)
	c.DrawLine(0, 5, 10, 5, 1)

	if n := c.Vertical().Count(); n != 0 {
		t.Errorf("horizontal line lit %d vertical cells, want 0", n)
	}
	for x := 0; x < 10; x++ {
		if c.Horizontal().Get(x, 5) != 1 {
			t.Errorf("horizontal cell (%d, 5) not lit", x)
		}
	}
	if n := c.Horizontal().Count(); n != 10 {
		t.Errorf("horizontal grid has %d lit cells, want 10", n)
	}
}

func TestVerticalLineRouting(t *testing.T) {
	c := newTestCanvas(t)
	c.DrawLine(3, 6, 3, 0, 1)

	if n := c.Horizontal().Count(); n != 0 {
		t.Errorf("vertical line lit %d horizontal cells, want 0", n)
	}
	for y := 0; y < 6; y++ {
		if c.Vertical().Get(3, y) != 1 {
			t.Errorf("vertical cell (3, %d) not lit", y)
		}
	}
}

func TestDiagonalFollowsMajorAxis(t *testing.T) {
	tests := []struct {
		name                 string
		x1, y1               float64
		wantHoriz, wantVerts int
	}{
		{"tie goes horizontal", 4, 4, 4, 0},
		{"x major", 6, 3, 6, 0},
		{"y major", 3, 6, 0, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCanvas(t)
			c.DrawLine(0, 0, tt.x1, tt.y1, 1)
			if got := c.Horizontal().Count(); got != tt.wantHoriz {
				t.Errorf("horizontal cells = %d, want %d", got, tt.wantHoriz)
			}
			if got := c.Vertical().Count(); got != tt.wantVerts {
				t.Errorf("vertical cells = %d, want %d", got, tt.wantVerts)
			}
		})
	}
}

func TestLineWidth(t *testing.T) {
	c := newTestCanvas(t)
	c.DrawLine(2, 5, 6, 5, 3)
	for y := 4; y <= 6; y++ {
		for x := 2; x < 6; x++ {
			if c.Horizontal().Get(x, y) != 1 {
				t.Errorf("cell (%d, %d) not lit by width-3 line", x, y)
			}
		}
	}
	if n := c.Horizontal().Count(); n != 12 {
		t.Errorf("width-3 line lit %d cells, want 12", n)
	}
}

func TestLineClippedAndNonFinite(t *testing.T) {
	c := newTestCanvas(t)
	c.DrawLine(-10, 2, 40, 2, 1)
	if n := c.Horizontal().Count(); n != 28 {
		t.Errorf("clipped line lit %d cells, want 28", n)
	}

	c.Clear()
	c.DrawLine(0, 0, math.NaN(), 3, 1)
	c.DrawLine(0, 0, 1e30, 3, 1)
	if c.Horizontal().Count()+c.Vertical().Count() != 0 {
		t.Error("non-finite or huge endpoint drew cells")
	}
}

func TestLineMapsToSmallerGrid(t *testing.T) {
	c, err := New(Config{
		Width: 28, Height: 14,
		Vertical:   Size{Width: 14, Height: 7},
		Horizontal: Size{Width: 14, Height: 7},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c.DrawLine(0, 4, 8, 4, 1)
	// Logical x 0..7 maps to cells 0..3, y 4 to row 2.
	for x := 0; x < 4; x++ {
		if c.Horizontal().Get(x, 2) != 1 {
			t.Errorf("cell (%d, 2) not lit", x)
		}
	}
	if n := c.Horizontal().Count(); n != 4 {
		t.Errorf("lit %d cells, want 4", n)
	}
}

func TestClear(t *testing.T) {
	c := newTestCanvas(t)
	c.Save()
	c.Translate(3, 3)
	c.Save()
	c.DrawLine(0, 0, 10, 0, 1)
	c.DrawLine(0, 0, 0, 8, 1)

	c.Clear()
	if c.Vertical().Count() != 0 || c.Horizontal().Count() != 0 {
		t.Error("Clear left lit cells")
	}
	if got := c.Vertical().Size(); got != c.VerticalSize() {
		t.Errorf("vertical size after Clear = %v, want %v", got, c.VerticalSize())
	}
	if got := c.Horizontal().Size(); got != c.HorizontalSize() {
		t.Errorf("horizontal size after Clear = %v, want %v", got, c.HorizontalSize())
	}
	if c.Depth() != 1 || !c.Current().IsIdentity() {
		t.Errorf("transform stack after Clear: depth %d, top %v", c.Depth(), c.Current())
	}
}

func TestClearKeepsEffects(t *testing.T) {
	c := newTestCanvas(t)
	if err := c.AddEffect(func(effect.Layer, effect.Tick) {}); err != nil {
		t.Fatalf("AddEffect: %v", err)
	}
	c.EffectLayer().Set(1, 1, 0.7)
	c.Clear()
	if c.EffectCount() != 1 {
		t.Errorf("Clear dropped effects: %d left", c.EffectCount())
	}
	if c.EffectLayer().At(1, 1) != 0.7 {
		t.Error("Clear reset the effect layer")
	}
}

func TestTransformedLine(t *testing.T) {
	c := newTestCanvas(t)
	c.Translate(5, 2)
	c.DrawLine(0, 0, 4, 0, 1)
	for x := 5; x < 9; x++ {
		if c.Horizontal().Get(x, 2) != 1 {
			t.Errorf("translated cell (%d, 2) not lit", x)
		}
	}
}

func TestDo(t *testing.T) {
	c := newTestCanvas(t)
	ran := false
	c.Do(func() { ran = true })
	if !ran {
		t.Error("Do did not run fn")
	}
}
