// Package automaton evolves cellular automata states under a rule.Table.
package automaton

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strconv"
	"strings"
	"sync"

	"rulelab/internal/rule"
)

// BoundaryMode selects how neighborhoods are completed past the edges.
type BoundaryMode int

const (
	// Wrap treats the state as periodic.
	Wrap BoundaryMode = iota
	// Pad reads a constant fill symbol outside the state.
	Pad
)

var (
	// ErrLength reports mismatched buffer sizes.
	ErrLength = errors.New("state length mismatch")
	// ErrBoundary reports an unrecognised boundary description.
	ErrBoundary = errors.New("unknown boundary")
)

// Boundary describes the boundary policy of a state.
type Boundary struct {
	Mode BoundaryMode
	Fill uint8
}

// WrapBoundary returns the periodic boundary.
func WrapBoundary() Boundary { return Boundary{Mode: Wrap} }

// PadBoundary returns a constant boundary reading fill past the edges.
func PadBoundary(fill uint8) Boundary { return Boundary{Mode: Pad, Fill: fill} }

// ParseBoundary accepts "wrap", "pad" or "pad:N".
func ParseBoundary(s string) (Boundary, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "wrap":
		return WrapBoundary(), nil
	case s == "pad":
		return PadBoundary(0), nil
	case strings.HasPrefix(s, "pad:"):
		fill, err := strconv.ParseUint(strings.TrimPrefix(s, "pad:"), 10, 8)
		if err != nil {
			return Boundary{}, fmt.Errorf("%q: %w", s, ErrBoundary)
		}
		return PadBoundary(uint8(fill)), nil
	default:
		return Boundary{}, fmt.Errorf("%q: %w", s, ErrBoundary)
	}
}

func (b Boundary) String() string {
	if b.Mode == Pad {
		return "pad:" + strconv.Itoa(int(b.Fill))
	}
	return "wrap"
}

// Step writes the successor of src into dst. dst and src must have the same
// length and must not overlap.
func Step(dst, src []uint8, t *rule.Table, b Boundary) error {
	if err := check(dst, src, t, b); err != nil {
		return err
	}
	stepRange(dst, src, t, b, 0, len(src))
	return nil
}

// Next returns the successor of src in a new slice.
func Next(src []uint8, t *rule.Table, b Boundary) ([]uint8, error) {
	dst := make([]uint8, len(src))
	if err := Step(dst, src, t, b); err != nil {
		return nil, err
	}
	return dst, nil
}

// StepParallel is Step with the cells split into contiguous bands, one
// goroutine per band. The result is identical to Step.
func StepParallel(dst, src []uint8, t *rule.Table, b Boundary, workers int) error {
	if err := check(dst, src, t, b); err != nil {
		return err
	}
	n := len(src)
	if workers <= 1 || n < 2*workers {
		stepRange(dst, src, t, b, 0, n)
		return nil
	}
	band := n / workers
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		lo := i * band
		hi := lo + band
		if i == workers-1 {
			hi = n
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			stepRange(dst, src, t, b, lo, hi)
		}()
	}
	wg.Wait()
	return nil
}

// Evolve returns the lazy sequence of the n states following init, numbered
// from 1. Each yielded state is a fresh slice. Ranging over the sequence a
// second time starts again from init.
func Evolve(init []uint8, t *rule.Table, b Boundary, n int) (iter.Seq2[int, []uint8], error) {
	if err := checkState(init, t, b); err != nil {
		return nil, err
	}
	start := slices.Clone(init)
	return func(yield func(int, []uint8) bool) {
		cur := start
		for i := 1; i <= n; i++ {
			next := make([]uint8, len(cur))
			stepRange(next, cur, t, b, 0, len(cur))
			if !yield(i, next) {
				return
			}
			cur = next
		}
	}, nil
}

// SpaceTime returns init followed by its n successors.
func SpaceTime(init []uint8, t *rule.Table, b Boundary, n int) ([][]uint8, error) {
	seq, err := Evolve(init, t, b, n)
	if err != nil {
		return nil, err
	}
	rows := make([][]uint8, 0, max(n, 0)+1)
	rows = append(rows, slices.Clone(init))
	for _, row := range seq {
		rows = append(rows, row)
	}
	return rows, nil
}

// CenterSeed returns n zero cells with a single one in the middle cell n/2.
func CenterSeed(n int) []uint8 {
	if n <= 0 {
		return nil
	}
	cells := make([]uint8, n)
	cells[n/2] = 1
	return cells
}

// ParseState reads a row written one digit per cell, e.g. "0001000".
// Digits above 9 use the letters a to z.
func ParseState(s string, base int) ([]uint8, error) {
	s = strings.TrimSpace(s)
	cells := make([]uint8, 0, len(s))
	for i, c := range strings.ToLower(s) {
		var v int
		switch {
		case c >= '0' && c <= '9':
			v = int(c - '0')
		case c >= 'a' && c <= 'z':
			v = int(c-'a') + 10
		default:
			return nil, fmt.Errorf("cell %d is %q: %w", i, c, rule.ErrOutOfDomain)
		}
		if v >= base {
			return nil, fmt.Errorf("cell %d is %d, base %d: %w", i, v, base, rule.ErrOutOfDomain)
		}
		cells = append(cells, uint8(v))
	}
	return cells, nil
}

func check(dst, src []uint8, t *rule.Table, b Boundary) error {
	if len(dst) != len(src) {
		return fmt.Errorf("dst has %d cells, src %d: %w", len(dst), len(src), ErrLength)
	}
	return checkState(src, t, b)
}

func checkState(cells []uint8, t *rule.Table, b Boundary) error {
	base := t.Base()
	if b.Mode == Pad && int(b.Fill) >= base {
		return fmt.Errorf("pad fill %d, base %d: %w", b.Fill, base, rule.ErrOutOfDomain)
	}
	for i, c := range cells {
		if int(c) >= base {
			return fmt.Errorf("cell %d is %d, base %d: %w", i, c, base, rule.ErrOutOfDomain)
		}
	}
	return nil
}

// stepRange updates dst[lo:hi]. The neighborhood code slides along the row:
// dropping the leading digit is a reduction modulo base^width.
func stepRange(dst, src []uint8, t *rule.Table, b Boundary, lo, hi int) {
	if lo >= hi {
		return
	}
	base, size := t.Base(), t.Size()
	r := t.Width() / 2
	code := 0
	for j := lo - r; j <= lo+r; j++ {
		code = code*base + int(cellAt(src, j, b))
	}
	dst[lo] = t.OutputAt(code)
	for i := lo + 1; i < hi; i++ {
		code = (code*base)%size + int(cellAt(src, i+r, b))
		dst[i] = t.OutputAt(code)
	}
}

func cellAt(cells []uint8, i int, b Boundary) uint8 {
	n := len(cells)
	if i >= 0 && i < n {
		return cells[i]
	}
	if b.Mode == Pad {
		return b.Fill
	}
	return cells[(i%n+n)%n]
}
