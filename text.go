package flipdisc

import "github.com/gogpu/flipdisc/glyph"

// SetFont sets the glyph source used by DrawText.
// A nil font restores the built-in 3×5 table.
func (c *Canvas) SetFont(f glyph.Font) {
	if f == nil {
		f = glyph.Tiny()
	}
	c.font = f
}

// Font returns the glyph source used by DrawText.
func (c *Canvas) Font() glyph.Font {
	return c.font
}

// DrawText draws s with its top-left corner at logical (x, y). Each set
// glyph bit becomes a scale×scale block of logical cells written to the
// horizontal grid only. The transform stack is not applied. Characters the
// font lacks are skipped but still advance the pen.
func (c *Canvas) DrawText(s string, x, y float64, scale int) {
	if scale <= 0 {
		return
	}
	advance := float64(c.font.Advance() * scale)
	for _, r := range glyph.Clusters(s) {
		if b, ok := c.font.Glyph(r); ok {
			c.drawGlyph(b, x, y, scale)
		}
		x += advance
	}
}

// MeasureText returns the logical width DrawText advances for s.
func (c *Canvas) MeasureText(s string, scale int) float64 {
	return float64(len(glyph.Clusters(s)) * c.font.Advance() * max(scale, 0))
}

func (c *Canvas) drawGlyph(b glyph.Bitmap, x, y float64, scale int) {
	for row := 0; row < b.Height(); row++ {
		for col := 0; col < b.Width(); col++ {
			if !b.At(col, row) {
				continue
			}
			for sy := 0; sy < scale; sy++ {
				for sx := 0; sx < scale; sx++ {
					px := x + float64(col*scale+sx)
					py := y + float64(row*scale+sy)
					c.horizontal.Set(c.toHorizontal(px, py))
				}
			}
		}
	}
}

// DrawBitmap blits a row-major matrix of cells with its top-left corner at
// logical (x, y). Non-zero cells are turned on in the horizontal grid; zero
// cells leave the grid untouched.
func (c *Canvas) DrawBitmap(rows [][]uint8, x, y float64) {
	for row, cells := range rows {
		for col, v := range cells {
			if v == 0 {
				continue
			}
			c.horizontal.Set(c.toHorizontal(x+float64(col), y+float64(row)))
		}
	}
}
