//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"strings"

	"rulelab/internal/app"
	"rulelab/internal/core"
	_ "rulelab/internal/sims/briansbrain"
	_ "rulelab/internal/sims/elementary"
	_ "rulelab/internal/sims/life"
	_ "rulelab/internal/sims/rule2d"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		log.Fatalf("unknown sim %q (have %s)", cfg.Sim, strings.Join(core.Names(), ", "))
	}

	sim := factory(cfg.Options)
	sim.Reset(cfg.Seed)

	game := app.New(sim, cfg)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("rulelab: " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
