package elementary

import (
	"image/color"
	"math/big"
	"math/rand/v2"
	"strconv"
	"strings"

	"rulelab/internal/automaton"
	"rulelab/internal/core"
	"rulelab/internal/render"
	"rulelab/internal/rule"
)

// Config holds parameters for a one-dimensional rule table automaton.
type Config struct {
	Width    int
	Height   int
	Base     int
	Span     int
	Rule     string
	Boundary automaton.Boundary
	// Init is "center", "random" or a row of digits repeated to fill the
	// width.
	Init string
	Seed int64
}

// DefaultConfig returns the default configuration: rule 110 from a single
// live cell.
func DefaultConfig() Config {
	return Config{
		Width:    256,
		Height:   256,
		Base:     2,
		Span:     3,
		Rule:     "110",
		Boundary: automaton.WrapBoundary(),
		Init:     "center",
		Seed:     1,
	}
}

// FromMap populates a Config from a string map. The neighborhood width is
// read from the "width" key; "w" is the grid width.
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
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 2 && parsed <= rule.MaxBase {
			c.Base = parsed
		}
	}
	if v, ok := cfg["width"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed%2 == 1 {
			c.Span = parsed
		}
	}
	if v, ok := cfg["rule"]; ok && strings.TrimSpace(v) != "" {
		c.Rule = v
	}
	if v, ok := cfg["boundary"]; ok {
		if parsed, err := automaton.ParseBoundary(v); err == nil {
			c.Boundary = parsed
		}
	}
	if v, ok := cfg["init"]; ok && v != "" {
		c.Init = v
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	return c
}

// Elementary runs a one-dimensional rule table and scrolls its history
// downwards, newest row on top.
type Elementary struct {
	w, h  int
	cfg   Config
	table *rule.Table
	cur   []uint8
	row   []uint8
	tmp   []uint8
	err   error
}

// New creates an automaton for cfg. Invalid rule settings fall back to
// rule 110 on two symbols.
func New(cfg Config) *Elementary {
	t, err := rule.Parse(cfg.Base, cfg.Span, cfg.Rule, rand.New(rand.NewPCG(uint64(cfg.Seed), 0)))
	if err != nil {
		cfg.Base, cfg.Span, cfg.Rule = 2, 3, "110"
		t, _ = rule.NewUint(2, 3, 110)
	}
	total := cfg.Width * cfg.Height
	return &Elementary{
		w:     cfg.Width,
		h:     cfg.Height,
		cfg:   cfg,
		table: t,
		cur:   make([]uint8, total),
		row:   make([]uint8, cfg.Width),
		tmp:   make([]uint8, cfg.Width),
	}
}

// Name returns the simulation identifier.
func (e *Elementary) Name() string { return "elementary" }

// Size returns the simulation grid dimensions.
func (e *Elementary) Size() core.Size { return core.Size{W: e.w, H: e.h} }

// Cells exposes the render buffer.
func (e *Elementary) Cells() []uint8 { return e.cur }

// Table returns the active rule.
func (e *Elementary) Table() *rule.Table { return e.table }

// Err reports why the last Step did nothing.
func (e *Elementary) Err() error { return e.err }

// Palette shades symbols from white (0) to black (base-1).
func (e *Elementary) Palette() []color.RGBA { return render.GreyPalette(e.table.Base()) }

// Reset clears the history and writes the initial row.
func (e *Elementary) Reset(seed int64) {
	for i := range e.cur {
		e.cur[i] = 0
	}
	e.err = nil
	e.seedRow(seed)
	copy(e.cur[:e.w], e.row)
}

func (e *Elementary) seedRow(seed int64) {
	for i := range e.row {
		e.row[i] = 0
	}
	if e.w == 0 {
		return
	}
	switch strings.ToLower(e.cfg.Init) {
	case "", "center":
		e.row[e.w/2] = 1
	case "random":
		core.FillSymbols(core.NewRNG(seed).Source(), e.row, e.table.Base())
	default:
		pattern, err := automaton.ParseState(e.cfg.Init, e.table.Base())
		if err != nil || len(pattern) == 0 {
			e.row[e.w/2] = 1
			return
		}
		for i := range e.row {
			e.row[i] = pattern[i%len(pattern)]
		}
	}
}

// Step computes the next generation and scrolls history downwards.
func (e *Elementary) Step() {
	if e.w == 0 || e.h == 0 {
		return
	}
	if err := automaton.Step(e.tmp, e.cur[:e.w], e.table, e.cfg.Boundary); err != nil {
		e.err = err
		return
	}
	copy(e.cur[e.w:], e.cur[:e.w*(e.h-1)])
	copy(e.cur[:e.w], e.tmp)
}

// Parameters publishes the rule settings.
func (e *Elementary) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Grid",
			Params: []core.Parameter{
				intParam("w", "Width", e.w),
				intParam("h", "Height", e.h),
				{Key: "boundary", Label: "Boundary", Type: core.ParamTypeString, Value: e.cfg.Boundary.String()},
				{Key: "init", Label: "Initial row", Type: core.ParamTypeString, Value: e.cfg.Init},
			},
		},
		{
			Name: "Rule",
			Params: []core.Parameter{
				intParam("base", "Base", e.table.Base()),
				intParam("width", "Neighborhood", e.table.Width()),
				{Key: "rule", Label: "Index", Type: core.ParamTypeString, Value: e.table.String()},
			},
		},
	}}
}

// ParameterControls exposes the rule index while it fits in an int.
func (e *Elementary) ParameterControls() []core.ParameterControl {
	last := e.maxIndex()
	if !last.IsInt64() || last.Int64() > int64(^uint(0)>>1) {
		return nil
	}
	return []core.ParameterControl{{
		Key:    "rule",
		Label:  "Rule",
		Step:   1,
		Min:    0,
		Max:    int(last.Int64()),
		HasMin: true,
		HasMax: true,
	}}
}

// SetIntParameter switches to another rule index of the same shape.
func (e *Elementary) SetIntParameter(key string, value int) bool {
	if key != "rule" || value < 0 {
		return false
	}
	t, err := rule.NewUint(e.table.Base(), e.table.Width(), uint64(value))
	if err != nil {
		return false
	}
	e.table = t
	e.cfg.Rule = t.String()
	e.err = nil
	return true
}

func (e *Elementary) maxIndex() *big.Int {
	base := big.NewInt(int64(e.table.Base()))
	limit := new(big.Int).Exp(base, big.NewInt(int64(e.table.Size())), nil)
	return limit.Sub(limit, big.NewInt(1))
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func init() {
	core.Register("elementary", func(cfg map[string]string) core.Sim {
		return New(FromMap(cfg))
	})
}
