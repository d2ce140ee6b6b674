package core_test

import (
	"testing"

	"github.com/lausiv7/candysoda-sub005/internal/games/match3/core"
)

// singleMoveBoard is an 8x8 board whose only legal swap is (3,3)-(3,4).
const singleMoveBoard = `
########
########
########
###R####
#RRG####
########
########
########`

// stripedBoard is colors[(x+y) % 3]; no swap on it creates a match.
const stripedBoard = `
RGBR
GBRG
BRGB
RGBR`

func TestFindMovesSingleLegalSwap(t *testing.T) {
	b := core.MustParseBoard(singleMoveBoard)

	moves := core.FindMoves(b, core.DefaultScoring())
	if len(moves) != 1 {
		t.Fatalf("expected totalMoves=1, got %d", len(moves))
	}

	m := moves[0]
	if m.From != core.C(3, 3) || m.To != core.C(3, 4) {
		t.Errorf("expected swap (3,3)-(3,4), got %v-%v", m.From, m.To)
	}
	if m.MatchCount != 1 || m.MatchedTiles != 3 {
		t.Errorf("expected 1 match of 3 tiles, got %d matches, %d tiles", m.MatchCount, m.MatchedTiles)
	}
	if m.Score != 30 {
		t.Errorf("expected score 30, got %d", m.Score)
	}
	if m.SpecialsCreated != 0 || m.ChainPotential != 0 {
		t.Errorf("unexpected specials=%d chain=%d", m.SpecialsCreated, m.ChainPotential)
	}
}

func TestEvaluateSwapScoring(t *testing.T) {
	tests := []struct {
		name      string
		layout    string
		from, to  core.Coord
		score     int
		matches   int
		specials  int
		potential int
	}{
		{
			name:     "four in a row",
			layout:   "RRGR\nBYRY\nYBYB",
			from:     core.C(2, 0),
			to:       core.C(2, 1),
			score:    10*4 + 50,
			matches:  1,
			specials: 1,
		},
		{
			name:      "two matches",
			layout:    "RRGBB\nGGBYP\nYPYGR",
			from:      core.C(2, 0),
			to:        core.C(2, 1),
			score:     10*6 + 20,
			matches:   2,
			potential: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := core.MustParseBoard(tt.layout)
			before := core.FormatBoard(b)

			m, ok := core.EvaluateSwap(b, tt.from, tt.to, core.DefaultScoring())
			if !ok {
				t.Fatal("expected a legal swap")
			}
			if m.Score != tt.score {
				t.Errorf("score: expected %d, got %d", tt.score, m.Score)
			}
			if m.MatchCount != tt.matches {
				t.Errorf("matches: expected %d, got %d", tt.matches, m.MatchCount)
			}
			if m.SpecialsCreated != tt.specials {
				t.Errorf("specials: expected %d, got %d", tt.specials, m.SpecialsCreated)
			}
			if m.ChainPotential != tt.potential {
				t.Errorf("chain potential: expected %d, got %d", tt.potential, m.ChainPotential)
			}
			if core.FormatBoard(b) != before {
				t.Error("EvaluateSwap modified the board")
			}
		})
	}
}

func TestEvaluateSwapRejects(t *testing.T) {
	b := core.MustParseBoard("RR#\nGGR\nRBB")
	sc := core.DefaultScoring()

	if _, ok := core.EvaluateSwap(b, core.C(0, 0), core.C(2, 0), sc); ok {
		t.Error("non-adjacent swap should be rejected")
	}
	if _, ok := core.EvaluateSwap(b, core.C(1, 0), core.C(2, 0), sc); ok {
		t.Error("swap with an obstacle should be rejected")
	}
	if _, ok := core.EvaluateSwap(b, core.C(0, 0), core.C(1, 0), sc); ok {
		t.Error("swap of identical tiles should be rejected")
	}
}

func TestStripedBoardHasNoMoves(t *testing.T) {
	b := core.MustParseBoard(stripedBoard)
	if core.HasMatch(b) {
		t.Fatal("striped board should have no matches")
	}
	if core.HasLegalMove(b) {
		t.Error("striped board should have no legal move")
	}
	if got := core.FindMoves(b, core.DefaultScoring()); len(got) != 0 {
		t.Errorf("expected 0 moves, got %d", len(got))
	}
}
