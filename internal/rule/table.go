// Package rule implements rule tables for cellular automata: total maps from
// a fixed-width neighborhood of symbols to a single output symbol, numbered
// by a canonical integer index.
//
// A neighborhood (n_0, ..., n_{w-1}) has code n_0*base^(w-1) + ... + n_{w-1},
// so the leftmost cell is the most significant digit. The output for code k
// is digit k of the index written in base base, digit 0 being the least
// significant. For base 2 and width 3 this is the usual Wolfram numbering.
package rule

import (
	"errors"
	"fmt"
	"math/big"
	"math/rand/v2"
	"strings"
	"sync"
)

const (
	// MaxBase is the largest alphabet a table supports; symbols are bytes.
	MaxBase = 256
	// MaxEntries bounds base^width, the number of neighborhoods in a table.
	MaxEntries = 1 << 20
	// RandomKeyword asks Parse for a uniformly drawn table.
	RandomKeyword = "random"
)

var (
	// ErrInvalidIndex reports an index outside [0, base^(base^width)).
	ErrInvalidIndex = errors.New("rule index out of range")
	// ErrOutOfDomain reports a malformed neighborhood or a symbol outside
	// [0, base).
	ErrOutOfDomain = errors.New("symbol out of domain")
	// ErrInvalidShape reports an unusable base/width pair.
	ErrInvalidShape = errors.New("invalid rule shape")
)

// Table is an immutable rule table. The zero value is not usable; build one
// with New, NewUint, Random, FromFunc or Parse.
type Table struct {
	base    int
	width   int
	outputs []uint8

	indexOnce sync.Once
	index     *big.Int
}

// New builds the table identified by index.
func New(base, width int, index *big.Int) (*Table, error) {
	size, err := entries(base, width)
	if err != nil {
		return nil, err
	}
	if index == nil || index.Sign() < 0 {
		return nil, fmt.Errorf("index %v: %w", index, ErrInvalidIndex)
	}
	limit := new(big.Int).Exp(big.NewInt(int64(base)), big.NewInt(int64(size)), nil)
	if index.Cmp(limit) >= 0 {
		return nil, fmt.Errorf("index %s >= %d^%d: %w", index.String(), base, size, ErrInvalidIndex)
	}
	t := &Table{base: base, width: width, outputs: make([]uint8, size)}
	expandDigits(t.outputs, index, base)
	t.index = new(big.Int).Set(index)
	t.indexOnce.Do(func() {})
	return t, nil
}

// NewUint is New for indices that fit in a uint64.
func NewUint(base, width int, index uint64) (*Table, error) {
	return New(base, width, new(big.Int).SetUint64(index))
}

// Random samples a table with a uniformly chosen output for every
// neighborhood. Index reports the canonical index of the sample, so New
// reproduces it exactly. A nil rng uses the global source.
func Random(base, width int, rng *rand.Rand) (*Table, error) {
	size, err := entries(base, width)
	if err != nil {
		return nil, err
	}
	t := &Table{base: base, width: width, outputs: make([]uint8, size)}
	for i := range t.outputs {
		if rng != nil {
			t.outputs[i] = uint8(rng.IntN(base))
		} else {
			t.outputs[i] = uint8(rand.IntN(base))
		}
	}
	return t, nil
}

// FromFunc tabulates a local rule. f receives each neighborhood in code
// order and must not retain the slice.
func FromFunc(base, width int, f func(n []uint8) uint8) (*Table, error) {
	size, err := entries(base, width)
	if err != nil {
		return nil, err
	}
	t := &Table{base: base, width: width, outputs: make([]uint8, size)}
	n := make([]uint8, width)
	for code := range t.outputs {
		decode(n, code, base)
		out := f(n)
		if int(out) >= base {
			return nil, fmt.Errorf("output %d for neighborhood %v: %w", out, n, ErrOutOfDomain)
		}
		t.outputs[code] = out
	}
	return t, nil
}

// Parse builds a table from a decimal index or the literal "random".
func Parse(base, width int, s string, rng *rand.Rand) (*Table, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, RandomKeyword) {
		return Random(base, width, rng)
	}
	index, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("parse index %q: %w", s, ErrInvalidIndex)
	}
	return New(base, width, index)
}

// Base reports the alphabet size.
func (t *Table) Base() int { return t.base }

// Width reports the neighborhood size.
func (t *Table) Width() int { return t.width }

// Size reports the number of neighborhoods, base^width.
func (t *Table) Size() int { return len(t.outputs) }

// Index returns a copy of the canonical index of the table.
func (t *Table) Index() *big.Int {
	t.indexOnce.Do(func() {
		t.index = collapseDigits(t.outputs, t.base)
	})
	return new(big.Int).Set(t.index)
}

// String returns the decimal index.
func (t *Table) String() string { return t.Index().String() }

// Code returns the code of neighborhood n.
func (t *Table) Code(n []uint8) (int, error) {
	if len(n) != t.width {
		return 0, fmt.Errorf("neighborhood has %d cells, want %d: %w", len(n), t.width, ErrOutOfDomain)
	}
	code := 0
	for _, s := range n {
		if int(s) >= t.base {
			return 0, fmt.Errorf("symbol %d not below base %d: %w", s, t.base, ErrOutOfDomain)
		}
		code = code*t.base + int(s)
	}
	return code, nil
}

// Lookup returns the output symbol for neighborhood n.
func (t *Table) Lookup(n []uint8) (uint8, error) {
	code, err := t.Code(n)
	if err != nil {
		return 0, err
	}
	return t.outputs[code], nil
}

// OutputAt returns the output for a neighborhood code in [0, Size()). It does
// no validation and is meant for evaluators that compute codes themselves.
func (t *Table) OutputAt(code int) uint8 { return t.outputs[code] }

// Outputs returns a copy of the outputs in code order.
func (t *Table) Outputs() []uint8 { return append([]uint8(nil), t.outputs...) }

// Equal reports whether o defines the same map as t.
func (t *Table) Equal(o *Table) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.base != o.base || t.width != o.width || len(t.outputs) != len(o.outputs) {
		return false
	}
	for i := range t.outputs {
		if t.outputs[i] != o.outputs[i] {
			return false
		}
	}
	return true
}

// Neighborhood decodes code into a fresh neighborhood slice.
func (t *Table) Neighborhood(code int) []uint8 {
	n := make([]uint8, t.width)
	decode(n, code, t.base)
	return n
}

func entries(base, width int) (int, error) {
	if base < 2 || base > MaxBase {
		return 0, fmt.Errorf("base %d not in [2, %d]: %w", base, MaxBase, ErrInvalidShape)
	}
	if width < 1 || width%2 == 0 {
		return 0, fmt.Errorf("width %d must be odd and positive: %w", width, ErrInvalidShape)
	}
	size := 1
	for i := 0; i < width; i++ {
		size *= base
		if size > MaxEntries {
			return 0, fmt.Errorf("%d^%d neighborhoods exceed %d: %w", base, width, MaxEntries, ErrInvalidShape)
		}
	}
	return size, nil
}

func decode(dst []uint8, code, base int) {
	for i := len(dst) - 1; i >= 0; i-- {
		dst[i] = uint8(code % base)
		code /= base
	}
}
