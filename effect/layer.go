package effect

// Layer is a row-major matrix of intensities, indexed as l[y][x].
// Values are nominally in [0, 1]; some effects leave values outside that
// range and the compositor saturates them.
type Layer [][]float64

// NewLayer creates a zeroed layer with the given dimensions.
func NewLayer(width, height int) Layer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	cells := make([]float64, width*height)
	l := make(Layer, height)
	for y := range l {
		l[y] = cells[y*width : (y+1)*width : (y+1)*width]
	}
	return l
}

// Width returns the number of columns.
func (l Layer) Width() int {
	if len(l) == 0 {
		return 0
	}
	return len(l[0])
}

// Height returns the number of rows.
func (l Layer) Height() int {
	return len(l)
}

// At returns the value at (x, y), or 0 outside the layer.
func (l Layer) At(x, y int) float64 {
	if y < 0 || y >= len(l) || x < 0 || x >= len(l[y]) {
		return 0
	}
	return l[y][x]
}

// Set stores v at (x, y). Writes outside the layer are ignored.
func (l Layer) Set(x, y int, v float64) {
	if y < 0 || y >= len(l) || x < 0 || x >= len(l[y]) {
		return
	}
	l[y][x] = v
}

// Zero resets every value to 0 in place.
func (l Layer) Zero() {
	for _, row := range l {
		clear(row)
	}
}

// Clone returns a deep copy of the layer.
func (l Layer) Clone() Layer {
	c := NewLayer(l.Width(), l.Height())
	for y, row := range l {
		copy(c[y], row)
	}
	return c
}

// copyFrom overwrites l with src, which must have the same shape.
func (l Layer) copyFrom(src Layer) {
	for y, row := range src {
		copy(l[y], row)
	}
}
