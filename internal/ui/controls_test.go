package ui

import (
	"testing"

	"rulelab/internal/core"
)

func TestNextValueClamps(t *testing.T) {
	ctrl := core.ParameterControl{Key: "rule", Step: 1, Min: 0, Max: 255, HasMin: true, HasMax: true}
	if v, ok := nextValue(ctrl, 30, 1); !ok || v != 31 {
		t.Fatalf("up from 30 = %d, %v", v, ok)
	}
	if _, ok := nextValue(ctrl, 255, 1); ok {
		t.Fatal("should not move past max")
	}
	if _, ok := nextValue(ctrl, 0, -1); ok {
		t.Fatal("should not move below min")
	}
	ctrl.Step = 10
	if v, ok := nextValue(ctrl, 250, 1); !ok || v != 255 {
		t.Fatalf("large step should clamp to max, got %d, %v", v, ok)
	}
}

func TestNextValueDefaultStep(t *testing.T) {
	if v, ok := nextValue(core.ParameterControl{}, 5, -1); !ok || v != 4 {
		t.Fatalf("down from 5 = %d, %v", v, ok)
	}
	if _, ok := nextValue(core.ParameterControl{}, 5, 0); ok {
		t.Fatal("zero direction should not move")
	}
}

func TestClip(t *testing.T) {
	cases := []struct {
		in   string
		n    int
		want string
	}{
		{"rule", 10, "rule"},
		{"123456789", 6, "123..."},
		{"abcdef", 2, "ab"},
		{"abc", 0, ""},
	}
	for _, tc := range cases {
		if got := clip(tc.in, tc.n); got != tc.want {
			t.Errorf("clip(%q, %d) = %q, want %q", tc.in, tc.n, got, tc.want)
		}
	}
}
