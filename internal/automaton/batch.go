package automaton

import (
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"rulelab/internal/rule"
)

// Run is the space-time history of one rule started from a shared initial
// state.
type Run struct {
	Table *rule.Table
	Rows  [][]uint8
}

// RunBatch evolves init under every table for n steps, at most workers rules
// at a time (unbounded when workers <= 0). Runs share no mutable state;
// results keep the order of tables. The first failure or a cancelled ctx
// stops the batch.
func RunBatch(ctx context.Context, init []uint8, tables []*rule.Table, b Boundary, n, workers int) ([]Run, error) {
	runs := make([]Run, len(tables))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, t := range tables {
		g.Go(func() error {
			seq, err := Evolve(init, t, b, n)
			if err != nil {
				return fmt.Errorf("rule %s: %w", t, err)
			}
			rows := make([][]uint8, 0, max(n, 0)+1)
			rows = append(rows, slices.Clone(init))
			for _, row := range seq {
				if err := ctx.Err(); err != nil {
					return err
				}
				rows = append(rows, row)
			}
			runs[i] = Run{Table: t, Rows: rows}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return runs, nil
}
