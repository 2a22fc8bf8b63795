// Command lsys expands an L-system preset, replays it with a turtle and
// writes the drawing as a PNG.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"rulelab/internal/core"
	"rulelab/internal/lsystem"
	"rulelab/internal/render"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(_ context.Context, args []string, stdout, stderr io.Writer) error {
	style := render.DefaultTurtleStyle()
	fs := flag.NewFlagSet("lsys", flag.ContinueOnError)
	fs.SetOutput(stderr)
	preset := fs.String("preset", "plant", "preset to draw: "+strings.Join(lsystem.Names(), ", "))
	iterations := fs.Int("n", 0, "rewriting iterations (0 uses the preset default)")
	seed := fs.Int64("seed", 1, "seed for stochastic productions and draw rules")
	list := fs.Bool("list", false, "list presets and exit")
	printSeq := fs.Bool("print", false, "print the expanded string to stdout")
	out := fs.String("out", "lsys.png", "output PNG path")
	fs.IntVar(&style.Size, "size", style.Size, "image side in pixels")
	fs.IntVar(&style.Pen, "pen", style.Pen, "pen size in pixels")
	fs.Float64Var(&style.Margin, "margin", style.Margin, "blank margin as a fraction of the drawing extent")
	verbose := fs.Bool("v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if *list {
		for _, name := range lsystem.Names() {
			p, _ := lsystem.Lookup(name)
			fmt.Fprintf(stdout, "%s\taxiom=%s\titerations=%d\n", name, p.Axiom, p.Iterations)
		}
		return nil
	}

	p, ok := lsystem.Lookup(*preset)
	if !ok {
		return fmt.Errorf("unknown preset %q (have %s)", *preset, strings.Join(lsystem.Names(), ", "))
	}
	seq, drawing, err := p.Generate(*iterations, core.NewRNG(*seed).Source())
	if err != nil {
		return fmt.Errorf("%s: %w", p.Name, err)
	}
	logger.Debug("expanded", slog.String("preset", p.Name), slog.Int("symbols", len(seq)))
	if *printSeq {
		fmt.Fprintln(stdout, seq)
	}

	img := render.DrawTurtle(drawing, style)
	if err := render.WritePNG(*out, img); err != nil {
		return err
	}
	logger.Info("wrote drawing", slog.String("path", *out), slog.String("preset", p.Name),
		slog.Int("segments", len(drawing.Segments)))
	return nil
}
