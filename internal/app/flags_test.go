package app

import (
	"flag"
	"io"
	"testing"
)

func TestBindParsesOptions(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("ca", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg.Bind(fs)
	err := fs.Parse([]string{
		"-sim", "rule2d", "-sps", "12", "-hud", "0",
		"-set", "rule=random", "-set", "w = 64", "-set", "init=0110",
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Sim != "rule2d" || cfg.SPS != 12 || cfg.HUDWidth != 0 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	want := map[string]string{"rule": "random", "w": "64", "init": "0110"}
	if len(cfg.Options) != len(want) {
		t.Fatalf("options = %v", cfg.Options)
	}
	for k, v := range want {
		if cfg.Options[k] != v {
			t.Fatalf("option %s = %q, want %q", k, cfg.Options[k], v)
		}
	}
}

func TestBindRejectsBadOption(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("ca", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg.Bind(fs)
	if err := fs.Parse([]string{"-set", "novalue"}); err == nil {
		t.Fatal("expected an error for an option without '='")
	}
}

func TestKVListString(t *testing.T) {
	l := kvList{"b": "2", "a": "1"}
	if got := l.String(); got != "a=1,b=2" {
		t.Fatalf("String() = %q", got)
	}
}
