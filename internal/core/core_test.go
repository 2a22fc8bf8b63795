package core

import (
	"math/rand/v2"
	"slices"
	"testing"
	"time"
)

func TestGridIndexCoordRoundTrip(t *testing.T) {
	g := NewGrid(3, 4, 5)
	if g.Len() != 60 || g.Dims() != 3 {
		t.Fatalf("len=%d dims=%d, want 60 and 3", g.Len(), g.Dims())
	}
	var coord []int
	for idx := 0; idx < g.Len(); idx++ {
		coord = g.Coord(idx, coord)
		if got := g.Index(coord); got != idx {
			t.Fatalf("index(coord(%d)) = %d via %v", idx, got, coord)
		}
	}
	if got := g.Index([]int{1, 2, 3}); got != 1*20+2*5+3 {
		t.Fatalf("row-major index = %d", got)
	}
}

func TestGridWrapAndClamp(t *testing.T) {
	g := NewByteGrid(4, 3)
	if !slices.Equal(g.Shape(), []int{3, 4}) {
		t.Fatalf("shape = %v, want [3 4]", g.Shape())
	}
	if got := g.Wrap(1, -1); got != 3 {
		t.Fatalf("wrap(-1) = %d, want 3", got)
	}
	if got := g.Wrap(0, 7); got != 1 {
		t.Fatalf("wrap(7) = %d, want 1", got)
	}
	if g.Contains(1, 4) || !g.Contains(1, 0) {
		t.Fatal("contains reports wrong extent")
	}
	if z := NewGrid(0, -2); z.Len() != 1 {
		t.Fatalf("degenerate grid len = %d, want 1", z.Len())
	}
	g.Cells()[5] = 1
	g.Clear()
	if slices.Contains(g.Cells(), 1) {
		t.Fatal("clear left non-zero cells")
	}
}

func TestFillSymbolsStaysInAlphabet(t *testing.T) {
	rng := NewRNG(9).Source()
	buf := make([]uint8, 500)
	FillSymbols(rng, buf, 3)
	for i, v := range buf {
		if v > 2 {
			t.Fatalf("cell %d = %d outside base 3", i, v)
		}
	}
	FillSymbols(rand.New(rand.NewPCG(1, 1)), buf, 1)
	if slices.ContainsFunc(buf, func(v uint8) bool { return v != 0 }) {
		t.Fatal("base 1 fill must be all zero")
	}
}

func TestFixedStepDue(t *testing.T) {
	fs := NewFixedStep(10)
	start := time.Unix(100, 0)
	if got := fs.Due(start); got != 1 {
		t.Fatalf("first call = %d, want the primed step", got)
	}
	if got := fs.Due(start.Add(50 * time.Millisecond)); got != 0 {
		t.Fatalf("half a step later = %d, want 0", got)
	}
	if got := fs.Due(start.Add(250 * time.Millisecond)); got != 2 {
		t.Fatalf("two and a half steps later = %d, want 2", got)
	}
	if got := fs.Due(start.Add(time.Hour)); got != maxCatchUp {
		t.Fatalf("after a stall = %d, want %d", got, maxCatchUp)
	}
	if got := fs.Due(start.Add(time.Hour + time.Millisecond)); got != 0 {
		t.Fatalf("stall backlog should be dropped, got %d", got)
	}
}

func TestRegistryNamesSorted(t *testing.T) {
	Register("zeta", func(map[string]string) Sim { return nil })
	Register("alpha", func(map[string]string) Sim { return nil })
	Register("", func(map[string]string) Sim { return nil })
	names := Names()
	if !slices.IsSorted(names) {
		t.Fatalf("names not sorted: %v", names)
	}
	if !slices.Contains(names, "alpha") || slices.Contains(names, "") {
		t.Fatalf("unexpected names %v", names)
	}
}
