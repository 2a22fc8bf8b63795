// Command spacetime renders space-time diagrams for a selection of rule
// tables into a single labelled PNG sheet.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"rulelab/internal/automaton"
	"rulelab/internal/core"
	"rulelab/internal/render"
	"rulelab/internal/rule"
	"rulelab/internal/storage"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type options struct {
	rules    string
	load     string
	list     bool
	niter    int
	cells    int
	init     string
	base     int
	width    int
	boundary string
	workers  int
	scale    int
	seed     int64
	out      string
	store    string
	dbPath   string
	verbose  bool
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var opts options
	fs := flag.NewFlagSet("spacetime", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.rules, "rules", "30 90 110 random", "rule selection: indices, lo-hi ranges (hi excluded) or random")
	fs.StringVar(&opts.load, "load", "", "comma separated catalog IDs to render")
	fs.BoolVar(&opts.list, "list", false, "list catalogued rules and exit")
	fs.IntVar(&opts.niter, "niter", 30, "number of steps")
	fs.IntVar(&opts.cells, "cells", 0, "row length for the default seed (0 means 2*niter)")
	fs.StringVar(&opts.init, "init", "", "initial row as digits, e.g. 0001000 (default: single centred 1)")
	fs.IntVar(&opts.base, "base", 2, "number of symbols")
	fs.IntVar(&opts.width, "width", 3, "neighborhood width (odd)")
	fs.StringVar(&opts.boundary, "boundary", "pad", "boundary: pad (zero fill), pad:N or wrap")
	fs.IntVar(&opts.workers, "workers", 0, "rules evolved concurrently (0 means no limit)")
	fs.IntVar(&opts.scale, "scale", 2, "pixels per cell")
	fs.Int64Var(&opts.seed, "seed", 1, "seed for random rules")
	fs.StringVar(&opts.out, "out", "spacetime.png", "output PNG path")
	fs.StringVar(&opts.store, "store", "", "catalog backend for sampled rules: sqlite (empty disables)")
	fs.StringVar(&opts.dbPath, "db-path", "rules.db", "sqlite database path")
	fs.BoolVar(&opts.verbose, "v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	var store storage.Store
	if opts.store != "" || opts.list || opts.load != "" {
		kind := opts.store
		if kind == "" {
			kind = storage.DefaultStoreKind()
		}
		if !storage.Persistent(kind) {
			return fmt.Errorf("%s catalog is discarded on exit, use -store sqlite", kind)
		}
		s, err := storage.NewStore(kind, opts.dbPath)
		if err != nil {
			return err
		}
		defer func() {
			_ = storage.CloseIfSupported(s)
		}()
		if err := s.Init(ctx); err != nil {
			return fmt.Errorf("init %s store: %w", kind, err)
		}
		store = s
	}

	if opts.list {
		return listRules(ctx, store, stdout)
	}

	tables, err := selectTables(ctx, opts, fs.Args(), store, logger)
	if err != nil {
		return err
	}
	if len(tables) == 0 {
		return errors.New("no rules selected")
	}

	b, err := automaton.ParseBoundary(opts.boundary)
	if err != nil {
		return err
	}
	row, err := initialRow(opts)
	if err != nil {
		return err
	}

	logger.Info("evolving", slog.Int("rules", len(tables)), slog.Int("cells", len(row)),
		slog.Int("steps", opts.niter), slog.String("boundary", b.String()))
	runs, err := automaton.RunBatch(ctx, row, tables, b, opts.niter, opts.workers)
	if err != nil {
		return err
	}

	panels := make([]render.Panel, len(runs))
	for i, r := range runs {
		palette := render.GreyPalette(r.Table.Base())
		panels[i] = render.Panel{
			Title: "Rule: " + r.Table.String(),
			Image: render.SpaceTimeImage(r.Rows, palette, opts.scale),
		}
		logger.Debug("rendered", slog.String("rule", r.Table.String()), slog.Int("rows", len(r.Rows)))
	}
	if err := render.WritePNG(opts.out, render.Sheet(panels)); err != nil {
		return err
	}
	logger.Info("wrote sheet", slog.String("path", opts.out), slog.Int("panels", len(panels)))
	return nil
}

// selectTables builds the tables named by the rule selection and the
// catalog IDs. Sampled tables are catalogued when a store is open.
func selectTables(ctx context.Context, opts options, extra []string, store storage.Store, logger *slog.Logger) ([]*rule.Table, error) {
	var tables []*rule.Table
	for _, id := range splitIDs(opts.load) {
		rec, ok, err := store.GetRule(ctx, id)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("rule %s not in catalog", id)
		}
		t, err := rec.Table()
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}

	fields := extra
	if len(fields) == 0 && opts.load == "" {
		fields = []string{opts.rules}
	}
	items, err := rule.ParseSelection(fields)
	if err != nil {
		return nil, err
	}
	rng := core.NewRNG(opts.seed).Source()
	for _, item := range items {
		t, err := rule.Parse(opts.base, opts.width, item, rng)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
		if item != rule.RandomKeyword {
			continue
		}
		logger.Info("sampled rule", slog.String("rule", t.String()))
		if store == nil {
			continue
		}
		rec := storage.NewRuleRecord(t, "spacetime", opts.seed)
		if err := store.SaveRule(ctx, rec); err != nil {
			return nil, fmt.Errorf("catalog rule: %w", err)
		}
		logger.Info("catalogued rule", slog.String("id", rec.ID))
	}
	return tables, nil
}

func initialRow(opts options) ([]uint8, error) {
	if opts.init != "" {
		return automaton.ParseState(opts.init, opts.base)
	}
	n := opts.cells
	if n <= 0 {
		n = 2 * opts.niter
	}
	if n <= 0 {
		return nil, fmt.Errorf("row length %d: %w", n, automaton.ErrLength)
	}
	return automaton.CenterSeed(n), nil
}

func listRules(ctx context.Context, store storage.Store, w io.Writer) error {
	recs, err := store.ListRules(ctx)
	if err != nil {
		return err
	}
	for _, r := range recs {
		fmt.Fprintf(w, "%s\t%s\tbase=%d\twidth=%d\t%s\t%s\n",
			r.ID, r.CreatedAt.Format("2006-01-02T15:04:05Z07:00"), r.Base, r.Width, r.Label, r.Index)
	}
	return nil
}

func splitIDs(s string) []string {
	var ids []string
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
