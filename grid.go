package flipdisc

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"strings"
)

// Size is the width and height of a grid in cells.
type Size struct {
	Width, Height int
}

func (s Size) valid() bool {
	return s.Width > 0 && s.Height > 0
}

// Grid is a binary cell buffer for one physical panel orientation.
// Every cell is exactly 0 or 1. Writes outside the grid are ignored.
type Grid struct {
	width  int
	height int
	cells  []uint8
}

// NewGrid creates an all-zero grid with the given dimensions.
func NewGrid(width, height int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]uint8, width*height),
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// Size returns the grid dimensions.
func (g *Grid) Size() Size {
	return Size{Width: g.width, Height: g.height}
}

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Get returns the cell at (x, y), or 0 outside the grid.
func (g *Grid) Get(x, y int) uint8 {
	if !g.inBounds(x, y) {
		return 0
	}
	return g.cells[y*g.width+x]
}

// Set turns the cell at (x, y) on.
func (g *Grid) Set(x, y int) {
	if g.inBounds(x, y) {
		g.cells[y*g.width+x] = 1
	}
}

// Put stores v at (x, y); any non-zero v is stored as 1.
func (g *Grid) Put(x, y int, v uint8) {
	if !g.inBounds(x, y) {
		return
	}
	if v != 0 {
		v = 1
	}
	g.cells[y*g.width+x] = v
}

// Unset turns the cell at (x, y) off.
func (g *Grid) Unset(x, y int) {
	if g.inBounds(x, y) {
		g.cells[y*g.width+x] = 0
	}
}

// Clear turns every cell off.
func (g *Grid) Clear() {
	clear(g.cells)
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{width: g.width, height: g.height, cells: make([]uint8, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

// CopyFrom overwrites g with the cells of src. Both grids must have the
// same dimensions; mismatched grids are left untouched.
func (g *Grid) CopyFrom(src *Grid) {
	if src.width != g.width || src.height != g.height {
		return
	}
	copy(g.cells, src.cells)
}

// Equal reports whether both grids have the same size and cells.
func (g *Grid) Equal(o *Grid) bool {
	if g.width != o.width || g.height != o.height {
		return false
	}
	for i, v := range g.cells {
		if o.cells[i] != v {
			return false
		}
	}
	return true
}

// Count returns the number of cells that are on.
func (g *Grid) Count() int {
	n := 0
	for _, v := range g.cells {
		n += int(v)
	}
	return n
}

// Row returns a copy of row y.
func (g *Grid) Row(y int) []uint8 {
	row := make([]uint8, g.width)
	if y >= 0 && y < g.height {
		copy(row, g.cells[y*g.width:(y+1)*g.width])
	}
	return row
}

// Rows returns the grid as a freshly allocated row-major matrix.
func (g *Grid) Rows() [][]uint8 {
	rows := make([][]uint8, g.height)
	for y := range rows {
		rows[y] = g.Row(y)
	}
	return rows
}

// String renders the grid with '#' for on cells and '.' for off cells,
// one line per row.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow((g.width + 1) * g.height)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.cells[y*g.width+x] != 0 {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// At implements the image.Image interface. On cells are white.
func (g *Grid) At(x, y int) color.Color {
	if g.Get(x, y) != 0 {
		return color.Gray{Y: 0xff}
	}
	return color.Gray{}
}

// Bounds implements the image.Image interface.
func (g *Grid) Bounds() image.Rectangle {
	return image.Rect(0, 0, g.width, g.height)
}

// ColorModel implements the image.Image interface.
func (g *Grid) ColorModel() color.Model {
	return color.GrayModel
}

// SavePNG saves the grid as a black and white PNG file.
func (g *Grid) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return png.Encode(f, g)
}
