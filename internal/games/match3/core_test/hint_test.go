package core_test

import (
	"testing"
	"time"

	"github.com/lausiv7/candysoda-sub005/internal/games/match3/core"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestSelectHintTopFraction(t *testing.T) {
	var moves []core.Move
	for i := 1; i <= 10; i++ {
		moves = append(moves, core.Move{From: core.C(i, 0), To: core.C(i, 1), Score: i * 10})
	}

	for seed := int64(1); seed <= 50; seed++ {
		m, ok := core.SelectHint(moves, 0.3, core.NewRand(seed))
		if !ok {
			t.Fatal("expected a hint")
		}
		// Top 30% of ten moves is the three best: 100, 90, 80.
		if m.Score < 80 {
			t.Errorf("seed %d: hint score %d outside the top fraction", seed, m.Score)
		}
	}
}

func TestSelectHintEdgeCases(t *testing.T) {
	rng := core.NewRand(7)

	if _, ok := core.SelectHint(nil, 0.3, rng); ok {
		t.Error("no moves should give no hint")
	}

	only := core.Move{From: core.C(0, 0), To: core.C(1, 0), Score: 30}
	m, ok := core.SelectHint([]core.Move{only}, 0.3, rng)
	if !ok || m != only {
		t.Errorf("single move should always be the hint, got %+v", m)
	}
}

func TestHintCooldown(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	h := core.NewHintSelector(3*time.Second, 0.3, clock.Now)
	b := core.MustParseBoard(singleMoveBoard)
	sc := core.DefaultScoring()
	rng := core.NewRand(1)

	m, ok := h.Hint(b, sc, rng)
	if !ok {
		t.Fatal("first hint should be given")
	}
	if m.From != core.C(3, 3) || m.To != core.C(3, 4) {
		t.Errorf("unexpected hint %v-%v", m.From, m.To)
	}

	clock.Advance(time.Second)
	if _, ok := h.Hint(b, sc, rng); ok {
		t.Error("hint inside cooldown should be refused")
	}
	if h.Ready() {
		t.Error("selector should not be ready inside cooldown")
	}

	clock.Advance(2 * time.Second)
	if _, ok := h.Hint(b, sc, rng); !ok {
		t.Error("hint after cooldown should be given")
	}

	h.Reset()
	if !h.Ready() {
		t.Error("selector should be ready after reset")
	}
}

func TestHintDeadlockedBoardKeepsCooldownOpen(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	h := core.NewHintSelector(time.Minute, 0.3, clock.Now)

	if _, ok := h.Hint(core.MustParseBoard(stripedBoard), core.DefaultScoring(), core.NewRand(1)); ok {
		t.Fatal("deadlocked board should give no hint")
	}
	if !h.Ready() {
		t.Error("a refused hint should not start the cooldown")
	}
}
