// Package lsystem expands Lindenmayer systems and replays the resulting
// strings as turtle drawings.
package lsystem

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
)

// MaxLength bounds the size of an expanded string in bytes.
const MaxLength = 1 << 24

// ErrTooLong reports an expansion that would exceed MaxLength.
var ErrTooLong = errors.New("expansion too long")

// Context is what a functional production sees when it is applied.
type Context struct {
	Symbol    rune
	Iteration int
	Rand      *rand.Rand
}

// Production is either a literal replacement or a function of Context.
type Production struct {
	literal string
	fn      func(Context) string
}

// Literal returns a production that always yields s.
func Literal(s string) Production { return Production{literal: s} }

// Func returns a production computed per application.
func Func(f func(Context) string) Production { return Production{fn: f} }

// Choice returns a production picking one of options uniformly.
func Choice(options ...string) Production {
	opts := append([]string(nil), options...)
	return Func(func(ctx Context) string {
		if len(opts) == 0 {
			return string(ctx.Symbol)
		}
		return opts[ctx.Rand.IntN(len(opts))]
	})
}

// Apply yields the replacement for ctx.Symbol.
func (p Production) Apply(ctx Context) string {
	if p.fn != nil {
		return p.fn(ctx)
	}
	return p.literal
}

// Grammar maps symbols to productions. Symbols without an entry are copied
// unchanged.
type Grammar map[rune]Production

// Expand rewrites axiom n times. A nil rng is replaced by a fixed seed so
// stochastic grammars stay reproducible.
func Expand(axiom string, g Grammar, n int, rng *rand.Rand) (string, error) {
	if rng == nil {
		rng = rand.New(rand.NewPCG(1, 1))
	}
	seq := axiom
	for i := 0; i < n; i++ {
		var b strings.Builder
		b.Grow(len(seq))
		length := 0
		for _, c := range seq {
			var out string
			if p, ok := g[c]; ok {
				out = p.Apply(Context{Symbol: c, Iteration: i, Rand: rng})
			} else {
				out = string(c)
			}
			length += len(out)
			if length > MaxLength {
				return "", fmt.Errorf("iteration %d passed %d bytes: %w", i+1, MaxLength, ErrTooLong)
			}
			b.WriteString(out)
		}
		seq = b.String()
	}
	return seq, nil
}
