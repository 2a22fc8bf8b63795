package lsystem

import (
	"errors"
	"math"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"
)

const eps = 1e-9

func near(a, b Point) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps
}

func TestExpandLiteralGrammar(t *testing.T) {
	koch := Grammar{'F': Literal("F+F-F-F+F")}
	got, err := Expand("F", koch, 1, nil)
	if err != nil || got != "F+F-F-F+F" {
		t.Fatalf("koch 1 = %q, %v", got, err)
	}
	got, err = Expand("F", koch, 2, nil)
	if err != nil {
		t.Fatalf("koch 2: %v", err)
	}
	if len(got) != 49 || strings.Count(got, "F") != 25 {
		t.Fatalf("koch 2 has %d symbols and %d Fs, want 49 and 25", len(got), strings.Count(got, "F"))
	}

	algae := Grammar{'A': Literal("AB"), 'B': Literal("A")}
	lengths := []int{1, 2, 3, 5, 8, 13}
	for n, want := range lengths {
		got, err := Expand("A", algae, n, nil)
		if err != nil || len(got) != want {
			t.Fatalf("algae %d has length %d (%v), want %d", n, len(got), err, want)
		}
	}

	if got, _ := Expand("A+B", Grammar{'A': Literal("C")}, 1, nil); got != "C+B" {
		t.Fatalf("symbols without productions must copy through, got %q", got)
	}
	if got, _ := Expand("AB", algae, 0, nil); got != "AB" {
		t.Fatalf("zero iterations must return the axiom, got %q", got)
	}
}

func TestExpandFuncSeesContext(t *testing.T) {
	g := Grammar{'A': Func(func(ctx Context) string {
		return strings.Repeat(string(ctx.Symbol), ctx.Iteration+1)
	})}
	got, err := Expand("A", g, 3, nil)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	// 1 -> 2 copies -> each becomes 3 copies.
	if got != strings.Repeat("A", 6) {
		t.Fatalf("got %q, want six As", got)
	}
}

func TestStochasticExpansionIsSeeded(t *testing.T) {
	p, ok := Lookup("weed")
	if !ok {
		t.Fatal("weed preset missing")
	}
	a, _, err := p.Generate(3, rand.New(rand.NewPCG(42, 0)))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	b, _, err := p.Generate(3, rand.New(rand.NewPCG(42, 0)))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if a != b {
		t.Fatal("same seed produced different strings")
	}
}

func TestExpandTooLong(t *testing.T) {
	_, err := Expand("A", Grammar{'A': Literal("AA")}, 25, nil)
	if !errors.Is(err, ErrTooLong) {
		t.Fatalf("got %v, want ErrTooLong", err)
	}
}

func TestReplayKochPath(t *testing.T) {
	rules := DrawRules{
		'F': Commands(Draw(1)),
		'-': Commands(Right(90)),
		'+': Commands(Left(90)),
	}
	opts := DefaultOptions()
	opts.Step = 1
	opts.Heading = 0
	d, err := Replay("F+F-F-F+F", rules, opts)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	want := []Point{{0, 0}, {1, 0}, {1, 1}, {2, 1}, {2, 0}, {3, 0}}
	if len(d.Segments) != 5 {
		t.Fatalf("got %d segments, want 5", len(d.Segments))
	}
	for i, seg := range d.Segments {
		if !near(seg.From, want[i]) || !near(seg.To, want[i+1]) {
			t.Fatalf("segment %d = %v -> %v, want %v -> %v", i, seg.From, seg.To, want[i], want[i+1])
		}
	}
	if !near(d.Bounds.Min, Point{0, 0}) || !near(d.Bounds.Max, Point{3, 1}) {
		t.Fatalf("bounds = %+v", d.Bounds)
	}
	if d.Length != 9 {
		t.Fatalf("length = %d, want 9", d.Length)
	}
	for i := 1; i < len(d.Segments); i++ {
		if d.Segments[i].Index <= d.Segments[i-1].Index {
			t.Fatal("segment indices must follow sequence order")
		}
	}
}

func TestReplayPushPopRestoresPose(t *testing.T) {
	rules := DrawRules{'F': Commands(Draw(1)), '+': Commands(Left(90))}
	opts := DefaultOptions()
	opts.Step = 1
	opts.Heading = 0
	d, err := Replay("F[+F]F", rules, opts)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if len(d.Segments) != 3 {
		t.Fatalf("got %d segments, want 3", len(d.Segments))
	}
	branch := d.Segments[1]
	if !near(branch.From, Point{1, 0}) || !near(branch.To, Point{1, 1}) || branch.Depth != 1 {
		t.Fatalf("branch = %+v", branch)
	}
	trunk := d.Segments[2]
	if !near(trunk.From, Point{1, 0}) || !near(trunk.To, Point{2, 0}) || trunk.Depth != 0 {
		t.Fatalf("trunk after pop = %+v", trunk)
	}

	if _, err := Replay("F]", rules, opts); !errors.Is(err, ErrUnbalanced) {
		t.Fatalf("got %v, want ErrUnbalanced", err)
	}
}

func TestReplayBracketRulesRunAfterStackChange(t *testing.T) {
	// pythag: '[' pushes and turns left, ']' pops and turns right.
	p, _ := Lookup("pythag")
	opts := DefaultOptions()
	opts.Step = 1
	d, err := Replay("1[0]0", p.Rules, opts)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if len(d.Segments) != 3 {
		t.Fatalf("got %d segments, want 3", len(d.Segments))
	}
	h := 0.5 * math.Sqrt2 / 2
	if got := d.Segments[1].To; !near(got, Point{-h, 1 + h}) {
		t.Fatalf("left branch ends at %v", got)
	}
	if got := d.Segments[2]; !near(got.From, Point{0, 1}) || !near(got.To, Point{h, 1 + h}) {
		t.Fatalf("right branch = %v -> %v", got.From, got.To)
	}

	var depths []int
	record := ActionFunc(func(ctx DrawContext) []Command {
		depths = append(depths, ctx.Depth)
		return nil
	})
	if _, err := Replay("[[]]", DrawRules{'[': record, ']': record}, DefaultOptions()); err != nil {
		t.Fatalf("replay: %v", err)
	}
	if !slices.Equal(depths, []int{1, 2, 1, 0}) {
		t.Fatalf("depths = %v, want [1 2 1 0]", depths)
	}
}

func TestTurtleStack(t *testing.T) {
	tu := NewTurtle(90)
	tu.Push()
	tu.Turn(30)
	tu.Move(2)
	if tu.Depth() != 1 {
		t.Fatalf("depth = %d, want 1", tu.Depth())
	}
	if err := tu.Pop(); err != nil {
		t.Fatalf("pop: %v", err)
	}
	if got := tu.Pose(); got.Heading != 90 || !near(got.Pos, Point{}) {
		t.Fatalf("pose after pop = %+v", got)
	}
	if err := tu.Pop(); !errors.Is(err, ErrUnbalanced) {
		t.Fatalf("second pop: got %v", err)
	}
	if len(tu.Drawing().Segments) != 0 {
		t.Fatal("move must not draw")
	}
}

func TestPresetsGenerate(t *testing.T) {
	names := Names()
	want := []string{"bush", "dragon", "koch", "plant", "pythag", "sierp", "weed", "willow"}
	if !slices.Equal(names, want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for _, name := range names {
		p, _ := Lookup(name)
		seq, d, err := p.Generate(0, rand.New(rand.NewPCG(1, 2)))
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if seq == "" || len(d.Segments) == 0 {
			t.Fatalf("%s produced %d symbols and %d segments", name, len(seq), len(d.Segments))
		}
		if d.Bounds.Dx() <= 0 && d.Bounds.Dy() <= 0 {
			t.Fatalf("%s has an empty bounding box", name)
		}
	}
	if _, ok := Lookup("nope"); ok {
		t.Fatal("unknown preset must not resolve")
	}
}
