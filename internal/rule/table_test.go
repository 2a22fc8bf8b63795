package rule

import (
	"errors"
	"math/big"
	"math/rand/v2"
	"slices"
	"testing"
)

func pow(base, exp int) *big.Int {
	return new(big.Int).Exp(big.NewInt(int64(base)), big.NewInt(int64(exp)), nil)
}

func maxIndex(base, width int) *big.Int {
	size := 1
	for i := 0; i < width; i++ {
		size *= base
	}
	return new(big.Int).Sub(pow(base, size), big.NewInt(1))
}

func TestLookupIsTotal(t *testing.T) {
	for index := uint64(0); index < 256; index++ {
		table, err := NewUint(2, 3, index)
		if err != nil {
			t.Fatalf("rule %d: %v", index, err)
		}
		seen := 0
		for code := 0; code < table.Size(); code++ {
			out, err := table.Lookup(table.Neighborhood(code))
			if err != nil {
				t.Fatalf("rule %d code %d: %v", index, code, err)
			}
			if out > 1 {
				t.Fatalf("rule %d code %d: output %d outside alphabet", index, code, out)
			}
			seen++
		}
		if seen != 8 {
			t.Fatalf("rule %d covered %d neighborhoods, want 8", index, seen)
		}
	}
}

func TestElementaryNumbering(t *testing.T) {
	cases := []struct {
		rule uint64
		want map[[3]uint8]uint8
	}{
		{rule: 0, want: map[[3]uint8]uint8{{0, 0, 0}: 0, {1, 1, 1}: 0, {0, 1, 0}: 0}},
		{rule: 255, want: map[[3]uint8]uint8{{0, 0, 0}: 1, {1, 1, 1}: 1, {1, 0, 1}: 1}},
		{rule: 30, want: map[[3]uint8]uint8{{1, 1, 1}: 0, {1, 0, 0}: 1, {0, 0, 1}: 1, {0, 0, 0}: 0}},
		{rule: 110, want: map[[3]uint8]uint8{
			{1, 1, 1}: 0, {1, 1, 0}: 1, {1, 0, 1}: 1, {1, 0, 0}: 0,
			{0, 1, 1}: 1, {0, 1, 0}: 1, {0, 0, 1}: 1, {0, 0, 0}: 0,
		}},
	}
	for _, tc := range cases {
		table, err := NewUint(2, 3, tc.rule)
		if err != nil {
			t.Fatalf("rule %d: %v", tc.rule, err)
		}
		for n, want := range tc.want {
			got, err := table.Lookup(n[:])
			if err != nil {
				t.Fatalf("rule %d lookup %v: %v", tc.rule, n, err)
			}
			if got != want {
				t.Fatalf("rule %d lookup %v = %d, want %d", tc.rule, n, got, want)
			}
		}
	}
}

func TestBoundaryIndices(t *testing.T) {
	shapes := [][2]int{{2, 1}, {2, 3}, {3, 1}, {3, 3}, {4, 3}, {2, 5}}
	for _, s := range shapes {
		base, width := s[0], s[1]
		zero, err := New(base, width, big.NewInt(0))
		if err != nil {
			t.Fatalf("base %d width %d index 0: %v", base, width, err)
		}
		top, err := New(base, width, maxIndex(base, width))
		if err != nil {
			t.Fatalf("base %d width %d max index: %v", base, width, err)
		}
		for code := 0; code < zero.Size(); code++ {
			if got := zero.OutputAt(code); got != 0 {
				t.Fatalf("base %d width %d index 0 code %d = %d, want 0", base, width, code, got)
			}
			if got := top.OutputAt(code); int(got) != base-1 {
				t.Fatalf("base %d width %d max index code %d = %d, want %d", base, width, code, got, base-1)
			}
		}

		past := new(big.Int).Add(maxIndex(base, width), big.NewInt(1))
		if _, err := New(base, width, past); !errors.Is(err, ErrInvalidIndex) {
			t.Fatalf("base %d width %d one past max: got %v, want ErrInvalidIndex", base, width, err)
		}
	}
}

func TestNegativeIndexRejected(t *testing.T) {
	if _, err := New(2, 3, big.NewInt(-1)); !errors.Is(err, ErrInvalidIndex) {
		t.Fatalf("expected ErrInvalidIndex, got %v", err)
	}
	if _, err := New(2, 3, nil); !errors.Is(err, ErrInvalidIndex) {
		t.Fatalf("expected ErrInvalidIndex for nil index, got %v", err)
	}
	if _, err := NewUint(2, 3, 256); !errors.Is(err, ErrInvalidIndex) {
		t.Fatalf("expected ErrInvalidIndex for rule 256, got %v", err)
	}
}

func TestInvalidShape(t *testing.T) {
	cases := [][2]int{{1, 3}, {0, 3}, {257, 1}, {2, 0}, {2, 2}, {2, -1}, {2, 21}}
	for _, c := range cases {
		if _, err := NewUint(c[0], c[1], 0); !errors.Is(err, ErrInvalidShape) {
			t.Fatalf("base %d width %d: got %v, want ErrInvalidShape", c[0], c[1], err)
		}
	}
}

func TestLookupOutOfDomain(t *testing.T) {
	table, err := NewUint(3, 3, 438)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	bad := [][]uint8{{0, 1}, {0, 1, 2, 0}, {0, 3, 0}, {}, nil}
	for _, n := range bad {
		if _, err := table.Lookup(n); !errors.Is(err, ErrOutOfDomain) {
			t.Fatalf("lookup %v: got %v, want ErrOutOfDomain", n, err)
		}
	}
}

func TestDigitsAssignedLeastSignificantFirst(t *testing.T) {
	// 5 is "12" in base 3: code 0 gets 2, code 1 gets 1, code 2 gets 0.
	table, err := NewUint(3, 1, 5)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if got := table.Outputs(); !slices.Equal(got, []uint8{2, 1, 0}) {
		t.Fatalf("outputs = %v, want [2 1 0]", got)
	}

	// Bases above 62 take the division path.
	table, err = NewUint(100, 1, 42+7*100)
	if err != nil {
		t.Fatalf("new base 100: %v", err)
	}
	out := table.Outputs()
	if out[0] != 42 || out[1] != 7 || out[2] != 0 {
		t.Fatalf("base 100 outputs start %v, want [42 7 0 ...]", out[:3])
	}
	if got := table.Index().Int64(); got != 742 {
		t.Fatalf("base 100 index = %d, want 742", got)
	}
}

func TestRandomRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	shapes := [][2]int{{2, 3}, {3, 3}, {2, 9}, {5, 3}, {70, 1}, {3, 5}}
	for _, s := range shapes {
		for trial := 0; trial < 5; trial++ {
			sampled, err := Random(s[0], s[1], rng)
			if err != nil {
				t.Fatalf("random base %d width %d: %v", s[0], s[1], err)
			}
			rebuilt, err := New(s[0], s[1], sampled.Index())
			if err != nil {
				t.Fatalf("rebuild base %d width %d index %s: %v", s[0], s[1], sampled.Index(), err)
			}
			if !sampled.Equal(rebuilt) {
				t.Fatalf("base %d width %d: rebuilt table differs from sample", s[0], s[1])
			}
			if sampled.Index().Cmp(rebuilt.Index()) != 0 {
				t.Fatalf("base %d width %d: index changed on rebuild", s[0], s[1])
			}
		}
	}
}

func TestIndexReturnsCopy(t *testing.T) {
	table, err := NewUint(2, 3, 90)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	idx := table.Index()
	idx.SetInt64(0)
	if table.String() != "90" {
		t.Fatalf("mutating Index result changed table to %s", table.String())
	}
}

func TestFromFuncIdentityIsRule204(t *testing.T) {
	table, err := FromFunc(2, 3, func(n []uint8) uint8 { return n[1] })
	if err != nil {
		t.Fatalf("from func: %v", err)
	}
	if table.String() != "204" {
		t.Fatalf("identity rule index = %s, want 204", table.String())
	}

	if _, err := FromFunc(2, 3, func(n []uint8) uint8 { return 2 }); !errors.Is(err, ErrOutOfDomain) {
		t.Fatalf("expected ErrOutOfDomain for output outside alphabet, got %v", err)
	}
}

func TestParse(t *testing.T) {
	table, err := Parse(3, 3, " 438 ", nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if table.String() != "438" || table.Base() != 3 || table.Width() != 3 {
		t.Fatalf("unexpected table base=%d width=%d index=%s", table.Base(), table.Width(), table)
	}

	rng := rand.New(rand.NewPCG(1, 2))
	sampled, err := Parse(2, 3, "random", rng)
	if err != nil {
		t.Fatalf("parse random: %v", err)
	}
	again, err := Parse(2, 3, sampled.String(), nil)
	if err != nil {
		t.Fatalf("parse canonical index: %v", err)
	}
	if !sampled.Equal(again) {
		t.Fatal("canonical index of random table did not reproduce it")
	}

	for _, bad := range []string{"", "abc", "1.5", "-3"} {
		if _, err := Parse(2, 3, bad, nil); !errors.Is(err, ErrInvalidIndex) {
			t.Fatalf("parse %q: got %v, want ErrInvalidIndex", bad, err)
		}
	}
}

func TestParseSelection(t *testing.T) {
	got, err := ParseSelection([]string{"100 102", "120-124", "random", "18446744073709551616"})
	if err != nil {
		t.Fatalf("parse selection: %v", err)
	}
	want := []string{"100", "102", "120", "121", "122", "123", "random", "18446744073709551616"}
	if !slices.Equal(got, want) {
		t.Fatalf("selection = %v, want %v", got, want)
	}

	empty, err := ParseSelection([]string{"5-5 9-3"})
	if err != nil || len(empty) != 0 {
		t.Fatalf("empty ranges: got %v, %v", empty, err)
	}

	for _, bad := range []string{"a-b", "1-", "x", "0-100000"} {
		if _, err := ParseSelection([]string{bad}); !errors.Is(err, ErrInvalidIndex) {
			t.Fatalf("selection %q: got %v, want ErrInvalidIndex", bad, err)
		}
	}
}
