package lsystem

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
)

// ErrUnbalanced reports a pop with nothing saved.
var ErrUnbalanced = errors.New("pop without matching push")

// Op enumerates turtle commands.
type Op int

const (
	// Nop does nothing; symbols like X and Y in the dragon curve use it.
	Nop Op = iota
	// Forward moves Arg step lengths with the pen down.
	Forward
	// Move moves Arg step lengths with the pen up.
	Move
	// Turn rotates by Arg degrees, counter-clockwise positive.
	Turn
)

// Command is a single turtle instruction.
type Command struct {
	Op  Op
	Arg float64
}

// Draw moves forward scale steps drawing a line.
func Draw(scale float64) Command { return Command{Op: Forward, Arg: scale} }

// Skip moves forward scale steps without drawing.
func Skip(scale float64) Command { return Command{Op: Move, Arg: scale} }

// Left turns counter-clockwise.
func Left(deg float64) Command { return Command{Op: Turn, Arg: deg} }

// Right turns clockwise.
func Right(deg float64) Command { return Command{Op: Turn, Arg: -deg} }

// DrawContext is what a functional draw action sees.
type DrawContext struct {
	Symbol rune
	Step   float64
	Depth  int
	Rand   *rand.Rand
}

// Action is either a fixed command list or a function of DrawContext.
type Action struct {
	cmds []Command
	fn   func(DrawContext) []Command
}

// Commands returns an action that always runs cmds.
func Commands(cmds ...Command) Action { return Action{cmds: append([]Command(nil), cmds...)} }

// ActionFunc returns an action computed per symbol.
func ActionFunc(f func(DrawContext) []Command) Action { return Action{fn: f} }

func (a Action) resolve(ctx DrawContext) []Command {
	if a.fn != nil {
		return a.fn(ctx)
	}
	return a.cmds
}

// DrawRules maps symbols to actions. Symbols without an entry draw nothing.
type DrawRules map[rune]Action

// Point is a position in turtle space.
type Point struct {
	X, Y float64
}

// Pose is a turtle position and heading in degrees.
type Pose struct {
	Pos     Point
	Heading float64
}

// Segment is one drawn line. Index is the position of the producing symbol
// in the replayed sequence.
type Segment struct {
	From, To Point
	Index    int
	Depth    int
}

// Bounds is the axis-aligned box of every position the turtle visited.
type Bounds struct {
	Min, Max Point
}

// Dx returns the width of the box.
func (b Bounds) Dx() float64 { return b.Max.X - b.Min.X }

// Dy returns the height of the box.
func (b Bounds) Dy() float64 { return b.Max.Y - b.Min.Y }

func (b *Bounds) extend(p Point) {
	b.Min.X = math.Min(b.Min.X, p.X)
	b.Min.Y = math.Min(b.Min.Y, p.Y)
	b.Max.X = math.Max(b.Max.X, p.X)
	b.Max.Y = math.Max(b.Max.Y, p.Y)
}

// Drawing is the geometry produced by a replay.
type Drawing struct {
	Segments []Segment
	Bounds   Bounds
	// Length is the number of symbols replayed.
	Length int
}

// Turtle is a drawing cursor with a stack of saved poses.
type Turtle struct {
	pose     Pose
	stack    []Pose
	segments []Segment
	bounds   Bounds
}

// NewTurtle starts at the origin facing heading degrees.
func NewTurtle(heading float64) *Turtle {
	return &Turtle{pose: Pose{Heading: heading}}
}

// Pose returns the current pose.
func (t *Turtle) Pose() Pose { return t.pose }

// Depth reports how many poses are saved.
func (t *Turtle) Depth() int { return len(t.stack) }

// Push saves the current pose.
func (t *Turtle) Push() { t.stack = append(t.stack, t.pose) }

// Pop restores the most recently saved pose.
func (t *Turtle) Pop() error {
	if len(t.stack) == 0 {
		return ErrUnbalanced
	}
	last := len(t.stack) - 1
	t.pose = t.stack[last]
	t.stack = t.stack[:last]
	return nil
}

// Forward moves dist along the heading and records a segment.
func (t *Turtle) Forward(dist float64, index int) {
	from := t.pose.Pos
	t.advance(dist)
	t.segments = append(t.segments, Segment{From: from, To: t.pose.Pos, Index: index, Depth: len(t.stack)})
}

// Move moves dist along the heading without drawing.
func (t *Turtle) Move(dist float64) { t.advance(dist) }

// Turn rotates counter-clockwise by deg.
func (t *Turtle) Turn(deg float64) { t.pose.Heading += deg }

func (t *Turtle) advance(dist float64) {
	sin, cos := math.Sincos(t.pose.Heading * math.Pi / 180)
	t.pose.Pos.X += dist * cos
	t.pose.Pos.Y += dist * sin
	t.bounds.extend(t.pose.Pos)
}

// Drawing returns the segments drawn so far.
func (t *Turtle) Drawing() Drawing {
	return Drawing{Segments: append([]Segment(nil), t.segments...), Bounds: t.bounds}
}

// Options configures a replay.
type Options struct {
	Step    float64
	Heading float64
	Push    rune
	Pop     rune
	Rand    *rand.Rand
}

// DefaultOptions returns a unit-tenth step, an upward heading and the usual
// bracket symbols.
func DefaultOptions() Options {
	return Options{Step: 0.1, Heading: 90, Push: '[', Pop: ']'}
}

// Replay walks seq. Push and pop symbols save and restore the pose first;
// the symbol's draw rule, if any, runs afterwards with the updated depth.
func Replay(seq string, rules DrawRules, opts Options) (Drawing, error) {
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(1, 1))
	}
	t := NewTurtle(opts.Heading)
	length := 0
	for i, c := range []rune(seq) {
		length++
		switch c {
		case opts.Push:
			t.Push()
		case opts.Pop:
			if err := t.Pop(); err != nil {
				return Drawing{}, fmt.Errorf("symbol %d: %w", i, err)
			}
		}
		action, ok := rules[c]
		if !ok {
			continue
		}
		ctx := DrawContext{Symbol: c, Step: opts.Step, Depth: t.Depth(), Rand: opts.Rand}
		for _, cmd := range action.resolve(ctx) {
			switch cmd.Op {
			case Forward:
				t.Forward(cmd.Arg*opts.Step, i)
			case Move:
				t.Move(cmd.Arg * opts.Step)
			case Turn:
				t.Turn(cmd.Arg)
			}
		}
	}
	d := t.Drawing()
	d.Length = length
	return d, nil
}
