package automaton

import (
	"fmt"

	"rulelab/internal/core"
	"rulelab/internal/rule"
)

// BallSize returns the number of cells in a neighborhood of the given reach
// on a grid with dims axes.
func BallSize(dims, reach int) int {
	n := 1
	for i := 0; i < dims; i++ {
		n *= 2*reach + 1
	}
	return n
}

// Ball appends the neighborhood of coord to buf[:0] and returns it. Offsets
// run over [-reach, reach] on every axis in row-major order, so the first
// axis varies slowest.
func Ball(g *core.Grid, coord []int, reach int, b Boundary, buf []uint8) []uint8 {
	dims := g.Dims()
	buf = buf[:0]
	offset := make([]int, dims)
	for i := range offset {
		offset[i] = -reach
	}
	cells := g.Cells()
	total := BallSize(dims, reach)
	for k := 0; k < total; k++ {
		idx := 0
		inside := true
		for axis := 0; axis < dims; axis++ {
			c := coord[axis] + offset[axis]
			if !g.Contains(axis, c) {
				if b.Mode == Pad {
					inside = false
					break
				}
				c = g.Wrap(axis, c)
			}
			idx = idx*g.Extent(axis) + c
		}
		if inside {
			buf = append(buf, cells[idx])
		} else {
			buf = append(buf, b.Fill)
		}
		for axis := dims - 1; axis >= 0; axis-- {
			offset[axis]++
			if offset[axis] <= reach {
				break
			}
			offset[axis] = -reach
		}
	}
	return buf
}

// StepGrid writes the successor of src into dst. The table width must equal
// the ball size (2*reach+1)^dims.
func StepGrid(dst, src *core.Grid, t *rule.Table, reach int, b Boundary) error {
	if !dst.SameShape(src) {
		return fmt.Errorf("dst shape %v, src shape %v: %w", dst.Shape(), src.Shape(), ErrLength)
	}
	if want := BallSize(src.Dims(), reach); t.Width() != want {
		return fmt.Errorf("table width %d, %d-d ball of reach %d has %d cells: %w",
			t.Width(), src.Dims(), reach, want, rule.ErrOutOfDomain)
	}
	if err := checkState(src.Cells(), t, b); err != nil {
		return err
	}
	stepGrid(dst, src, t, reach, b)
	return nil
}

func stepGrid(dst, src *core.Grid, t *rule.Table, reach int, b Boundary) {
	base := t.Base()
	coord := make([]int, 0, src.Dims())
	ball := make([]uint8, 0, t.Width())
	out := dst.Cells()
	for idx := range out {
		coord = src.Coord(idx, coord)
		ball = Ball(src, coord, reach, b, ball)
		code := 0
		for _, s := range ball {
			code = code*base + int(s)
		}
		out[idx] = t.OutputAt(code)
	}
}
