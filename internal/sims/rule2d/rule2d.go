// Package rule2d animates an arbitrary rule table on a 2-D grid, usually a
// randomly drawn one.
package rule2d

import (
	"strconv"

	"rulelab/internal/automaton"
	"rulelab/internal/core"
	"rulelab/internal/render"
	"rulelab/internal/rule"
	"rulelab/internal/sims/tabular"
)

// Config holds parameters for the 2-D rule explorer.
type Config struct {
	Width    int
	Height   int
	Base     int
	Rule     string
	Boundary automaton.Boundary
	Seed     int64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Width: 128, Height: 128, Base: 2, Rule: rule.RandomKeyword, Boundary: automaton.WrapBoundary(), Seed: 1}
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
	if v, ok := cfg["base"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 2 && parsed <= 4 {
			c.Base = parsed
		}
	}
	if v, ok := cfg["rule"]; ok && v != "" {
		c.Rule = v
	}
	if v, ok := cfg["boundary"]; ok {
		if parsed, err := automaton.ParseBoundary(v); err == nil {
			c.Boundary = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	return c
}

// Explorer is a tabular sim that also publishes its rule.
type Explorer struct {
	*tabular.Sim
	cfg Config
}

// New builds the explorer. A rule that does not parse falls back to a
// random one drawn from cfg.Seed.
func New(cfg Config) *Explorer {
	rng := core.NewRNG(cfg.Seed).Source()
	t, err := rule.Parse(cfg.Base, tabular.Width, cfg.Rule, rng)
	if err != nil {
		t, _ = rule.Random(cfg.Base, tabular.Width, rng)
	}
	sim := tabular.New("rule2d", cfg.Width, cfg.Height, t, cfg.Boundary, tabular.SymbolSeeder(cfg.Base))
	return &Explorer{Sim: sim.WithPalette(render.GreyPalette(cfg.Base)), cfg: cfg}
}

// Parameters reports the grid and the active rule index.
func (e *Explorer) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Grid",
			Params: []core.Parameter{
				{Key: "w", Label: "Width", Type: core.ParamTypeInt, Value: strconv.Itoa(e.cfg.Width)},
				{Key: "h", Label: "Height", Type: core.ParamTypeInt, Value: strconv.Itoa(e.cfg.Height)},
				{Key: "boundary", Label: "Boundary", Type: core.ParamTypeString, Value: e.cfg.Boundary.String()},
			},
		},
		{
			Name: "Rule",
			Params: []core.Parameter{
				{Key: "base", Label: "Base", Type: core.ParamTypeInt, Value: strconv.Itoa(e.Table().Base())},
				{Key: "rule", Label: "Index", Type: core.ParamTypeString, Value: e.Table().String()},
			},
		},
	}}
}

func init() {
	core.Register("rule2d", func(cfg map[string]string) core.Sim {
		return New(FromMap(cfg))
	})
}
