package core

// Grid stores an n-dimensional grid of byte-sized cell values in row-major
// order. The last axis varies fastest.
type Grid struct {
	shape   []int
	strides []int
	data    []uint8
}

// NewGrid allocates a grid with the given shape. Non-positive extents are
// clamped to one.
func NewGrid(shape ...int) *Grid {
	if len(shape) == 0 {
		shape = []int{1}
	}
	s := make([]int, len(shape))
	for i, n := range shape {
		if n <= 0 {
			n = 1
		}
		s[i] = n
	}
	strides := make([]int, len(s))
	total := 1
	for i := len(s) - 1; i >= 0; i-- {
		strides[i] = total
		total *= s[i]
	}
	return &Grid{shape: s, strides: strides, data: make([]uint8, total)}
}

// NewByteGrid allocates a two-dimensional grid w cells wide and h tall.
func NewByteGrid(w, h int) *Grid { return NewGrid(h, w) }

// Shape returns a copy of the grid extents.
func (g *Grid) Shape() []int { return append([]int(nil), g.shape...) }

// Extent returns the size of one axis.
func (g *Grid) Extent(axis int) int { return g.shape[axis] }

// Dims reports the number of axes.
func (g *Grid) Dims() int { return len(g.shape) }

// Len reports the total number of cells.
func (g *Grid) Len() int { return len(g.data) }

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Grid) Cells() []uint8 { return g.data }

// Index returns the linear slice index for an in-range coordinate.
func (g *Grid) Index(coord []int) int {
	idx := 0
	for i, c := range coord {
		idx += c * g.strides[i]
	}
	return idx
}

// Coord writes the coordinate of linear index idx into dst and returns it.
func (g *Grid) Coord(idx int, dst []int) []int {
	dst = dst[:0]
	for i := range g.shape {
		dst = append(dst, idx/g.strides[i])
		idx %= g.strides[i]
	}
	return dst
}

// Wrap applies toroidal wrapping to a single axis coordinate.
func (g *Grid) Wrap(axis, c int) int {
	n := g.shape[axis]
	return (c%n + n) % n
}

// Contains reports whether c lies inside the extent of axis.
func (g *Grid) Contains(axis, c int) bool {
	return c >= 0 && c < g.shape[axis]
}

// SameShape reports whether o has exactly the same extents as g.
func (g *Grid) SameShape(o *Grid) bool {
	if len(g.shape) != len(o.shape) {
		return false
	}
	for i := range g.shape {
		if g.shape[i] != o.shape[i] {
			return false
		}
	}
	return true
}

// Clear fills the grid with zeros.
func (g *Grid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}
