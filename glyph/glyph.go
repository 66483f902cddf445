// Package glyph provides monochrome bitmap glyphs for drawing text onto
// binary grids.
//
// Two sources are available: Table, a fixed bitmap table (Tiny is the
// built-in 3×5 uppercase font), and FromFace, which rasterizes glyphs from
// any golang.org/x/image/font.Face and thresholds them to single bits.
package glyph

import (
	"errors"
	"fmt"
)

// ErrRaggedGlyph is returned by NewTable when a glyph's rows differ in length.
var ErrRaggedGlyph = errors.New("glyph: rows of a glyph must have equal length")

// Bitmap is a monochrome glyph image.
type Bitmap struct {
	width  int
	height int
	bits   []bool
}

// NewBitmap creates an empty bitmap.
func NewBitmap(width, height int) Bitmap {
	return Bitmap{width: width, height: height, bits: make([]bool, width*height)}
}

// ParseBitmap builds a bitmap from rows where '#' is a set bit and any other
// byte is clear.
func ParseBitmap(rows ...string) (Bitmap, error) {
	if len(rows) == 0 {
		return Bitmap{}, nil
	}
	w := len(rows[0])
	b := NewBitmap(w, len(rows))
	for y, row := range rows {
		if len(row) != w {
			return Bitmap{}, fmt.Errorf("%w: row %d has %d columns, want %d", ErrRaggedGlyph, y, len(row), w)
		}
		for x := 0; x < w; x++ {
			b.bits[y*w+x] = row[x] == '#'
		}
	}
	return b, nil
}

// Width returns the bitmap width.
func (b Bitmap) Width() int { return b.width }

// Height returns the bitmap height.
func (b Bitmap) Height() int { return b.height }

// At reports whether the bit at (x, y) is set. Outside the bitmap it is clear.
func (b Bitmap) At(x, y int) bool {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return false
	}
	return b.bits[y*b.width+x]
}

func (b *Bitmap) set(x, y int) {
	b.bits[y*b.width+x] = true
}

// Font supplies glyph bitmaps.
type Font interface {
	// Glyph returns the bitmap for r and whether the font has one.
	Glyph(r rune) (Bitmap, bool)

	// Advance is the distance between glyph origins at scale 1.
	Advance() int
}
