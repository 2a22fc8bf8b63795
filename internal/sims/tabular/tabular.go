// Package tabular runs 2-D automata whose update is a rule table over the
// 3x3 neighborhood.
package tabular

import (
	"image/color"
	"math/rand/v2"

	"rulelab/internal/automaton"
	"rulelab/internal/core"
	"rulelab/internal/rule"
)

const (
	// Reach is the neighborhood radius on each axis.
	Reach = 1
	// Width is the table width a 3x3 neighborhood needs.
	Width = (2*Reach + 1) * (2*Reach + 1)
	// Center is the position of the cell itself within a neighborhood.
	Center = Width / 2
)

// Count returns how many neighbors of the center hold state.
func Count(n []uint8, state uint8) int {
	c := 0
	for i, s := range n {
		if i != Center && s == state {
			c++
		}
	}
	return c
}

// Seeder fills the initial grid.
type Seeder func(rng *rand.Rand, cells []uint8)

// Sim steps a 2-D grid through a rule table.
type Sim struct {
	name     string
	w, h     int
	table    *rule.Table
	boundary automaton.Boundary
	cur, nxt *core.Grid
	seed     Seeder
	palette  []color.RGBA
	err      error
}

// New creates a w x h sim. The table must be Width wide.
func New(name string, w, h int, t *rule.Table, b automaton.Boundary, seed Seeder) *Sim {
	return &Sim{
		name:     name,
		w:        w,
		h:        h,
		table:    t,
		boundary: b,
		cur:      core.NewByteGrid(w, h),
		nxt:      core.NewByteGrid(w, h),
		seed:     seed,
	}
}

// WithPalette sets the colors reported by Palette.
func (s *Sim) WithPalette(p []color.RGBA) *Sim {
	s.palette = p
	return s
}

// Name returns the simulation identifier.
func (s *Sim) Name() string { return s.name }

// Size returns the grid dimensions.
func (s *Sim) Size() core.Size { return core.Size{W: s.w, H: s.h} }

// Cells exposes the current grid values.
func (s *Sim) Cells() []uint8 { return s.cur.Cells() }

// Grid exposes the current grid.
func (s *Sim) Grid() *core.Grid { return s.cur }

// Table returns the active rule table.
func (s *Sim) Table() *rule.Table { return s.table }

// SetTable swaps the rule table. Tables of the wrong width are rejected.
func (s *Sim) SetTable(t *rule.Table) bool {
	if t == nil || t.Width() != Width {
		return false
	}
	s.table = t
	s.err = nil
	return true
}

// Palette returns the colors for each symbol, or nil for the default pair.
func (s *Sim) Palette() []color.RGBA { return s.palette }

// Err reports why the last Step did nothing.
func (s *Sim) Err() error { return s.err }

// Reset clears the grid and reseeds it.
func (s *Sim) Reset(seed int64) {
	s.cur.Clear()
	s.err = nil
	if s.seed != nil {
		s.seed(core.NewRNG(seed).Source(), s.cur.Cells())
	}
}

// Step advances the grid by one generation. A grid holding symbols the
// table cannot read is left unchanged and the error kept for Err.
func (s *Sim) Step() {
	if err := automaton.StepGrid(s.nxt, s.cur, s.table, Reach, s.boundary); err != nil {
		s.err = err
		return
	}
	s.cur, s.nxt = s.nxt, s.cur
}

// RandomSeeder sets roughly one cell in every `every` to state.
func RandomSeeder(state uint8, every int) Seeder {
	return func(rng *rand.Rand, cells []uint8) {
		for i := range cells {
			if rng.IntN(max(every, 1)) == 0 {
				cells[i] = state
			}
		}
	}
}

// SymbolSeeder fills every cell with a uniform symbol in [0, base).
func SymbolSeeder(base int) Seeder {
	return func(rng *rand.Rand, cells []uint8) {
		core.FillSymbols(rng, cells, base)
	}
}
