package briansbrain

import (
	"image/color"
	"strconv"

	"rulelab/internal/automaton"
	"rulelab/internal/core"
	"rulelab/internal/rule"
	"rulelab/internal/sims/tabular"
)

const (
	stateDead  = 0
	stateOn    = 1
	stateDying = 2
)

// Config holds parameters for Brian's Brain.
type Config struct {
	Width  int
	Height int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Width: 256, Height: 256}
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
	return c
}

// Table is Brian's Brain as a base-3 rule over the 3x3 neighborhood: firing
// cells start dying, dying cells die, and dead cells fire with exactly two
// firing neighbors.
func Table() *rule.Table {
	t, err := rule.FromFunc(3, tabular.Width, func(n []uint8) uint8 {
		switch n[tabular.Center] {
		case stateOn:
			return stateDying
		case stateDying:
			return stateDead
		}
		if tabular.Count(n, stateOn) == 2 {
			return stateOn
		}
		return stateDead
	})
	if err != nil {
		panic(err)
	}
	return t
}

var palette = []color.RGBA{
	stateDead:  {R: 0x00, G: 0x00, B: 0x00, A: 0xff},
	stateOn:    {R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	stateDying: {R: 0x30, G: 0x60, B: 0xd0, A: 0xff},
}

// New creates a Brain simulation with the provided dimensions.
func New(w, h int) *tabular.Sim {
	s := tabular.New("briansbrain", w, h, Table(), automaton.WrapBoundary(),
		tabular.RandomSeeder(stateOn, 8))
	return s.WithPalette(palette)
}

func init() {
	core.Register("briansbrain", func(cfg map[string]string) core.Sim {
		c := FromMap(cfg)
		return New(c.Width, c.Height)
	})
}
