package core_test

import (
	"sort"
	"testing"

	"github.com/lausiv7/candysoda-sub005/internal/games/match3/core"
)

const mixedBoard = `
RGBYPO
GB#OPR
BYPORG
YP*RGB
PORG#Y
ORGBYP`

func shufflableKinds(b *core.Board) []core.Kind {
	var kinds []core.Kind
	for _, k := range b.Cells {
		if k.Swappable() {
			kinds = append(kinds, k)
		}
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

func TestDetectDeadlock(t *testing.T) {
	if got := core.DetectDeadlock(core.MustParseBoard(stripedBoard)); got != core.StateDeadlocked {
		t.Errorf("striped board: expected deadlocked, got %s", got)
	}
	if got := core.DetectDeadlock(core.MustParseBoard(singleMoveBoard)); got != core.StateStable {
		t.Errorf("single move board: expected stable, got %s", got)
	}
}

func TestShufflePreservesMultiset(t *testing.T) {
	b := core.MustParseBoard(mixedBoard)
	want := shufflableKinds(b)

	clean := 0
	for seed := int64(1); seed <= 20; seed++ {
		res := core.Shuffle(b, 10, core.NewRand(seed))
		if !res.Success {
			continue
		}

		// Obstacles and empties never move, whatever the method.
		for i, k := range b.Cells {
			if !k.Swappable() && res.Board.Cells[i] != k {
				t.Errorf("seed %d: fixed cell %d changed from %s to %s", seed, i, k, res.Board.Cells[i])
			}
		}
		if !core.HasLegalMove(res.Board) {
			t.Errorf("seed %d: shuffled board has no legal move", seed)
		}

		if res.Method != core.RepairShuffle {
			continue
		}
		clean++
		got := shufflableKinds(res.Board)
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("seed %d: multiset changed at %d: %s != %s", seed, i, got[i], want[i])
			}
		}
		if core.HasMatch(res.Board) {
			t.Errorf("seed %d: clean shuffle left a match", seed)
		}
	}
	if clean == 0 {
		t.Error("expected at least one clean shuffle")
	}
	if core.FormatBoard(b) != core.FormatBoard(core.MustParseBoard(mixedBoard)) {
		t.Error("Shuffle modified its input")
	}
}

func TestRepairStableBoard(t *testing.T) {
	res := core.Repair(core.MustParseBoard(singleMoveBoard), 10, core.NewRand(1))
	if !res.Success || res.Method != core.RepairNone {
		t.Errorf("expected no-op repair, got success=%v method=%s", res.Success, res.Method)
	}
}

func TestRepairDeadlockedBoard(t *testing.T) {
	repaired := 0
	for seed := int64(1); seed <= 5; seed++ {
		res := core.Repair(core.MustParseBoard(stripedBoard), 10, core.NewRand(seed))
		if !res.Success {
			continue
		}
		repaired++
		if res.Method == core.RepairNone {
			t.Errorf("seed %d: deadlocked board reported as already playable", seed)
		}
		if !core.HasLegalMove(res.Board) {
			t.Errorf("seed %d: repaired board has no legal move", seed)
		}
	}
	if repaired == 0 {
		t.Error("expected at least one successful repair")
	}
}

func TestRepairReportsContinuedDeadlock(t *testing.T) {
	b := core.MustParseBoard(`
		RG#
		###
		###`)

	res := core.Repair(b, 10, core.NewRand(3))
	if res.Success {
		t.Fatal("two tiles can never be repaired")
	}
	if res.Message != "still deadlocked" {
		t.Errorf("unexpected message %q", res.Message)
	}
	if core.DetectDeadlock(res.Board) != core.StateDeadlocked {
		t.Error("result board should still be deadlocked")
	}
}

func TestStrategicReplaceKeepsInterior(t *testing.T) {
	b := core.MustParseBoard(mixedBoard)
	out := core.StrategicReplace(b, core.NewRand(11))

	for _, c := range b.AllCoords() {
		if b.IsBorder(c) && b.Get(c).IsNormal() {
			if !out.Get(c).IsNormal() {
				t.Errorf("border tile %v became %s", c, out.Get(c))
			}
			continue
		}
		if out.Get(c) != b.Get(c) {
			t.Errorf("non-border cell %v changed from %s to %s", c, b.Get(c), out.Get(c))
		}
	}
}
