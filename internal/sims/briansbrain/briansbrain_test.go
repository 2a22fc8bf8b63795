package briansbrain

import "testing"

func TestFiringCellsDecay(t *testing.T) {
	b := New(6, 6)
	w := b.Size().W
	b.Cells()[2*w+2] = stateOn
	b.Step()
	if got := b.Cells()[2*w+2]; got != stateDying {
		t.Fatalf("firing cell became %d, want dying", got)
	}
	b.Step()
	if got := b.Cells()[2*w+2]; got != stateDead {
		t.Fatalf("dying cell became %d, want dead", got)
	}
}

func TestTwoFiringNeighborsIgnite(t *testing.T) {
	b := New(6, 6)
	w := b.Size().W
	b.Cells()[2*w+2] = stateOn
	b.Cells()[2*w+3] = stateOn
	b.Step()
	cells := b.Cells()
	// Cells directly above and below the pair see both.
	for _, idx := range []int{1*w + 2, 1*w + 3, 3*w + 2, 3*w + 3} {
		if cells[idx] != stateOn {
			t.Fatalf("cell %d = %d, want firing", idx, cells[idx])
		}
	}
	if cells[2*w+2] != stateDying || cells[2*w+3] != stateDying {
		t.Fatal("the firing pair should be dying")
	}
	if b.Err() != nil {
		t.Fatalf("unexpected error %v", b.Err())
	}
}

func TestPaletteCoversStates(t *testing.T) {
	if got := len(New(2, 2).Palette()); got != 3 {
		t.Fatalf("palette has %d entries, want 3", got)
	}
}
