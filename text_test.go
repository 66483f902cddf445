package flipdisc

import (
	"testing"

	"golang.org/x/image/font/basicfont"

	"github.com/gogpu/flipdisc/glyph"
)

func TestDrawTextHorizontalOnly(t *testing.T) {
	c := newTestCanvas(t)
	c.Translate(10, 10)
	c.DrawText("T", 1, 1, 1)

	if c.Vertical().Count() != 0 {
		t.Error("text lit vertical cells")
	}
	// "T" is a 3-wide top bar and a 4-cell stem, drawn without the transform.
	want := []struct{ x, y int }{{1, 1}, {2, 1}, {3, 1}, {2, 2}, {2, 5}}
	for _, p := range want {
		if c.Horizontal().Get(p.x, p.y) != 1 {
			t.Errorf("cell (%d, %d) not lit", p.x, p.y)
		}
	}
	if n := c.Horizontal().Count(); n != 7 {
		t.Errorf("T lit %d cells, want 7", n)
	}
}

func TestDrawTextScaleAndAdvance(t *testing.T) {
	c := newTestCanvas(t)
	c.DrawText("II", 0, 0, 2)
	// Advance is 3·scale + scale = 8 at scale 2.
	if c.Horizontal().Get(8, 0) != 1 || c.Horizontal().Get(13, 1) != 1 {
		t.Error("second glyph not at x = 8 with scale 2")
	}
	if c.Horizontal().Get(6, 0) != 0 {
		t.Error("gap between glyphs is lit")
	}
	if got := c.MeasureText("II", 2); got != 16 {
		t.Errorf("MeasureText = %v, want 16", got)
	}
}

func TestDrawTextCaseInsensitive(t *testing.T) {
	upper, lower := newTestCanvas(t), newTestCanvas(t)
	upper.DrawText("L", 0, 0, 1)
	lower.DrawText("l", 0, 0, 1)
	if !upper.Horizontal().Equal(lower.Horizontal()) {
		t.Error("lower-case text differs from upper-case")
	}
}

func TestDrawTextNonPositiveScale(t *testing.T) {
	c := newTestCanvas(t)
	c.DrawText("HELLO", 0, 0, 0)
	c.DrawText("HELLO", 0, 0, -2)
	if c.Horizontal().Count() != 0 {
		t.Error("non-positive scale drew cells")
	}
}

func TestSetFont(t *testing.T) {
	c := newTestCanvas(t)
	c.SetFont(glyph.FromFace(basicfont.Face7x13))
	if c.Font().Advance() != 7 {
		t.Errorf("face advance = %d, want 7", c.Font().Advance())
	}
	c.DrawText("A", 0, 0, 1)
	if c.Horizontal().Count() == 0 {
		t.Error("face glyph drew nothing")
	}
	c.SetFont(nil)
	if c.Font().Advance() != 4 {
		t.Errorf("SetFont(nil) advance = %d, want built-in 4", c.Font().Advance())
	}
}

func TestDrawBitmap(t *testing.T) {
	c := newTestCanvas(t)
	c.Horizontal().Set(5, 4)
	c.DrawBitmap([][]uint8{
		{1, 0, 1},
		{0, 1, 0},
	}, 4, 4)
	if c.Horizontal().Count() != 4 {
		t.Errorf("bitmap lit %d cells, want 4", c.Horizontal().Count())
	}
	if c.Horizontal().Get(5, 5) != 1 || c.Horizontal().Get(6, 4) != 1 {
		t.Error("bitmap cells misplaced")
	}
	if c.Horizontal().Get(5, 4) != 1 {
		t.Error("zero bitmap cell cleared an existing cell")
	}
	if c.Vertical().Count() != 0 {
		t.Error("bitmap lit vertical cells")
	}
}
