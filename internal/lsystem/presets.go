package lsystem

import (
	"math"
	"math/rand/v2"
	"sort"
)

// Preset bundles a grammar with the draw rules and defaults it is meant to
// be drawn with.
type Preset struct {
	Name       string
	Axiom      string
	Grammar    Grammar
	Rules      DrawRules
	Iterations int
	Heading    float64
}

// Generate expands the preset n times and replays it. n <= 0 uses the
// preset default.
func (p Preset) Generate(n int, rng *rand.Rand) (string, Drawing, error) {
	if n <= 0 {
		n = p.Iterations
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(1, 1))
	}
	seq, err := Expand(p.Axiom, p.Grammar, n, rng)
	if err != nil {
		return "", Drawing{}, err
	}
	opts := DefaultOptions()
	opts.Heading = p.Heading
	opts.Rand = rng
	d, err := Replay(seq, p.Rules, opts)
	if err != nil {
		return "", Drawing{}, err
	}
	return seq, d, nil
}

func normal(rng *rand.Rand, mean, stddev float64) float64 {
	return mean + stddev*rng.NormFloat64()
}

var presets = map[string]Preset{
	"plant": {
		Name:  "plant",
		Axiom: "X",
		Grammar: Grammar{
			'X': Literal("F-[[X]+X]+F[+FX]-X"),
			'F': Literal("FF"),
		},
		Rules: DrawRules{
			'F': Commands(Draw(1)),
			'-': Commands(Left(25)),
			'+': Commands(Right(25)),
		},
		Iterations: 3,
		Heading:    90,
	},
	"pythag": {
		Name:  "pythag",
		Axiom: "0",
		Grammar: Grammar{
			'1': Literal("11"),
			'0': Literal("1[0]0"),
		},
		Rules: DrawRules{
			'1': Commands(Draw(1)),
			'[': Commands(Left(45)),
			']': Commands(Right(45)),
			'0': Commands(Draw(0.5)),
		},
		Iterations: 5,
		Heading:    90,
	},
	"koch": {
		Name:    "koch",
		Axiom:   "F",
		Grammar: Grammar{'F': Literal("F+F-F-F+F")},
		Rules: DrawRules{
			'F': Commands(Draw(1)),
			'-': Commands(Right(90)),
			'+': Commands(Left(90)),
		},
		Iterations: 3,
		Heading:    0,
	},
	"dragon": {
		Name:  "dragon",
		Axiom: "FX",
		Grammar: Grammar{
			'X': Literal("X+YF+"),
			'Y': Literal("-FX-Y"),
		},
		Rules: DrawRules{
			'F': Commands(Draw(1)),
			'+': Commands(Right(90)),
			'-': Commands(Left(90)),
			'X': Commands(),
			'Y': Commands(),
		},
		Iterations: 6,
		Heading:    90,
	},
	"sierp": {
		Name:  "sierp",
		Axiom: "A",
		Grammar: Grammar{
			'A': Literal("B-A-B"),
			'B': Literal("A+B+A"),
		},
		Rules: DrawRules{
			'A': Commands(Draw(1)),
			'B': Commands(Draw(1)),
			'+': Commands(Left(60)),
			'-': Commands(Right(60)),
		},
		Iterations: 4,
		Heading:    0,
	},
	"bush": {
		Name:  "bush",
		Axiom: "0",
		Grammar: Grammar{
			'1': Literal("11"),
			'0': Literal("1[0][0[0]]0"),
		},
		Rules: DrawRules{
			'1': ActionFunc(func(ctx DrawContext) []Command {
				return []Command{Draw(1 / normal(ctx.Rand, 3, 0.1))}
			}),
			'[': ActionFunc(func(ctx DrawContext) []Command {
				return []Command{Left(normal(ctx.Rand, 45, 15))}
			}),
			']': ActionFunc(func(ctx DrawContext) []Command {
				return []Command{Right(normal(ctx.Rand, 45, 15))}
			}),
			'0': ActionFunc(func(ctx DrawContext) []Command {
				return []Command{Draw(1 / normal(ctx.Rand, 5, 0.1))}
			}),
		},
		Iterations: 4,
		Heading:    90,
	},
	"willow": {
		Name:  "willow",
		Axiom: "0",
		Grammar: Grammar{
			'1': Literal("11"),
			'0': Literal("1[0[0]]0"),
		},
		Rules: DrawRules{
			'1': Commands(Draw(1)),
			'[': ActionFunc(func(ctx DrawContext) []Command {
				return []Command{Left(normal(ctx.Rand, float64(ctx.Depth)*0.1, 20))}
			}),
			']': ActionFunc(func(ctx DrawContext) []Command {
				return []Command{Right(normal(ctx.Rand, float64(ctx.Depth)*0.1, 20))}
			}),
			'0': ActionFunc(func(ctx DrawContext) []Command {
				return []Command{Draw(1 / math.Max(1, normal(ctx.Rand, float64(ctx.Depth), 0.1)))}
			}),
		},
		Iterations: 4,
		Heading:    90,
	},
	"weed": {
		Name:  "weed",
		Axiom: "X",
		Grammar: Grammar{
			'X': Choice("F-[[X]+X]+F[+FX]-X", "F+[[X]-X]-F[-FX]+X", "F[+X]F[-X]X"),
			'F': Literal("FF"),
		},
		Rules: DrawRules{
			'F': Commands(Draw(1)),
			'-': Commands(Left(25)),
			'+': Commands(Right(25)),
		},
		Iterations: 4,
		Heading:    90,
	},
}

// Lookup returns the named preset.
func Lookup(name string) (Preset, bool) {
	p, ok := presets[name]
	return p, ok
}

// Names lists the presets in sorted order.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
