package core

import (
	"math"
	"sort"
	"time"
)

// HintSelector surfaces a near-optimal move, rate limited by a cooldown.
// It is not safe for concurrent use; one selector belongs to one table.
type HintSelector struct {
	cooldown    time.Duration
	topFraction float64
	now         func() time.Time

	last  time.Time
	given bool
}

// NewHintSelector creates a selector. A nil clock uses time.Now.
func NewHintSelector(cooldown time.Duration, topFraction float64, now func() time.Time) *HintSelector {
	if now == nil {
		now = time.Now
	}
	return &HintSelector{
		cooldown:    cooldown,
		topFraction: topFraction,
		now:         now,
	}
}

// Ready reports whether the cooldown has elapsed since the last hint.
func (h *HintSelector) Ready() bool {
	return !h.given || h.now().Sub(h.last) >= h.cooldown
}

// Hint returns a move drawn from the best moves on the board.
// Requests inside the cooldown return false without evaluating the board.
func (h *HintSelector) Hint(b *Board, sc ScoringParams, rng Rand) (Move, bool) {
	if !h.Ready() {
		return Move{}, false
	}
	move, ok := SelectHint(FindMoves(b, sc), h.topFraction, rng)
	if ok {
		h.last = h.now()
		h.given = true
	}
	return move, ok
}

// Reset clears the cooldown, e.g. after a new board is dealt.
func (h *HintSelector) Reset() {
	h.given = false
	h.last = time.Time{}
}

// SelectHint sorts moves by score (descending, stable) and picks uniformly
// from the top fraction, never fewer than one. It deliberately does not
// always return the global optimum.
func SelectHint(moves []Move, topFraction float64, rng Rand) (Move, bool) {
	if len(moves) == 0 {
		return Move{}, false
	}
	ranked := make([]Move, len(moves))
	copy(ranked, moves)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	n := int(math.Floor(float64(len(ranked)) * topFraction))
	if n < 1 {
		n = 1
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[rng.Intn(n)], true
}
