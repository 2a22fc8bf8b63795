package life

import (
	"image/color"
	"strconv"

	"rulelab/internal/automaton"
	"rulelab/internal/core"
	"rulelab/internal/rule"
	"rulelab/internal/sims/tabular"
)

// Config holds parameters for Conway's Game of Life.
type Config struct {
	Width  int
	Height int
	// Density is the inverse chance of a cell starting alive.
	Density int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Width: 256, Height: 256, Density: 2}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["density"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Density = parsed
		}
	}
	return c
}

// Table is B3/S23 written out as a base-2 rule over the 3x3 neighborhood.
func Table() *rule.Table {
	t, err := rule.FromFunc(2, tabular.Width, func(n []uint8) uint8 {
		live := tabular.Count(n, 1)
		if live == 3 || (live == 2 && n[tabular.Center] == 1) {
			return 1
		}
		return 0
	})
	if err != nil {
		panic(err)
	}
	return t
}

var palette = []color.RGBA{
	{R: 0x00, G: 0x00, B: 0x00, A: 0xff},
	{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
}

// New returns a Life simulation on a wrapped w x h board.
func New(w, h int) *tabular.Sim {
	return NewWithConfig(Config{Width: w, Height: h, Density: DefaultConfig().Density})
}

// NewWithConfig returns a Life simulation for cfg.
func NewWithConfig(cfg Config) *tabular.Sim {
	s := tabular.New("life", cfg.Width, cfg.Height, Table(), automaton.WrapBoundary(),
		tabular.RandomSeeder(1, cfg.Density))
	return s.WithPalette(palette)
}

func init() {
	core.Register("life", func(cfg map[string]string) core.Sim {
		return NewWithConfig(FromMap(cfg))
	})
}
