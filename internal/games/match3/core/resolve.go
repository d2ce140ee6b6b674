package core

import (
	"errors"
	"fmt"
)

var (
	// ErrNotSwappable is returned when a swap involves an obstacle or empty cell.
	ErrNotSwappable = errors.New("cell cannot be swapped")
	// ErrNoMatch is returned when a swap of two plain tiles creates no match.
	ErrNoMatch = errors.New("swap creates no match")
)

// CascadeStep records one clear/gravity/refill round of a resolution.
type CascadeStep struct {
	Matches []Match
	Created []SpawnedSpecial
	Cleared int
	Score   int
}

// SwapResult is the outcome of resolving a player swap.
type SwapResult struct {
	Legal  bool
	Reason string

	Board       *Board
	Score       int
	Cascades    int
	Steps       []CascadeStep
	Activations []ActivationResult
	Repair      *ShuffleResult // Set when the resolved board was deadlocked
	State       DeadlockState
}

// resolveSwap validates and resolves a swap on a copy of b.
// Invalid swaps return Legal=false with the board left untouched.
func (e *Engine) resolveSwap(b *Board, from, to Coord) (SwapResult, error) {
	reject := func(err error) (SwapResult, error) {
		return SwapResult{Reason: err.Error(), Board: b, State: DetectDeadlock(b)}, err
	}

	if !b.InBounds(from) || !b.InBounds(to) {
		return reject(fmt.Errorf("%w: %v, %v", ErrOutOfBounds, from, to))
	}
	if !from.Adjacent(to) {
		return reject(fmt.Errorf("%w: %v, %v", ErrNotAdjacent, from, to))
	}
	ka, kb := b.Get(from), b.Get(to)
	if !ka.Swappable() || !kb.Swappable() {
		return reject(fmt.Errorf("%w: %s at %v, %s at %v", ErrNotSwappable, ka, from, kb, to))
	}

	work := b.Clone()
	res := SwapResult{Legal: true}

	switch {
	case ka.IsSpecial() && kb.IsSpecial():
		act, err := Combine(work, from, to, e.rng)
		if err != nil {
			return reject(err)
		}
		res.Score += e.fire(work, act, &res)
	case ka == KindRainbow || kb == KindRainbow:
		rainbow, other := from, to
		if kb == KindRainbow {
			rainbow, other = to, from
		}
		act, err := Activate(work, ActivationRequest{Cell: rainbow, Target: &other, Power: e.params.Power}, e.params.Scoring)
		if err != nil {
			return reject(err)
		}
		res.Score += e.fire(work, act, &res)
	default:
		work.Swap(from, to)
		if len(matchesTouching(FindMatches(work), from, to)) == 0 {
			return reject(fmt.Errorf("%w: %v, %v", ErrNoMatch, from, to))
		}
	}

	e.settle(work, &res, from, to)
	return res, nil
}

// resolveTrigger fires the special at cell on a copy of b and settles the
// board the same way a swap does.
func (e *Engine) resolveTrigger(b *Board, cell Coord, target *Coord) (SwapResult, error) {
	reject := func(err error) (SwapResult, error) {
		return SwapResult{Reason: err.Error(), Board: b, State: DetectDeadlock(b)}, err
	}

	work := b.Clone()
	act, err := Activate(work, ActivationRequest{Cell: cell, Target: target, Power: e.params.Power}, e.params.Scoring)
	if err != nil {
		return reject(err)
	}

	res := SwapResult{Legal: true}
	res.Score += e.fire(work, act, &res)
	e.settle(work, &res, cell, cell)
	return res, nil
}

// settle runs the cascades and repairs the board when it ends deadlocked.
func (e *Engine) settle(work *Board, res *SwapResult, from, to Coord) {
	e.cascade(work, res, from, to)

	res.Board = work
	res.State = DetectDeadlock(work)
	if res.State == StateDeadlocked {
		repair := Repair(work, e.params.ShuffleAttempts, e.rng)
		res.Repair = &repair
		if repair.Success {
			res.Board = repair.Board
			res.State = StateStable
			e.logger.Debug("board repaired", "method", repair.Method, "attempts", repair.Attempts)
		} else {
			e.logger.Warn("board still deadlocked after repair", "message", repair.Message)
		}
	}
}

// fire folds chain reactions into act, clears the affected cells and
// collapses the board. It returns the score earned.
func (e *Engine) fire(b *Board, act ActivationResult, res *SwapResult) int {
	total := Propagate(b, act, e.params.MaxChainDepth, e.params.Power, e.params.Scoring)
	for _, c := range total.Sources {
		b.Set(c, KindEmpty)
	}
	for _, c := range total.Affected {
		if b.Get(c) != KindObstacle {
			b.Set(c, KindEmpty)
		}
	}
	res.Activations = append(res.Activations, total)
	collapse(b, e.rng)
	return total.Score
}

// cascade clears matches, creates specials, applies gravity and refills until
// the board settles or MaxCascades rounds have run. On the first round a
// special is created at the swapped cell when it belongs to the match.
func (e *Engine) cascade(b *Board, res *SwapResult, from, to Coord) {
	for round := 0; ; round++ {
		matches := FindMatches(b)
		if len(matches) == 0 {
			return
		}
		if round >= e.params.MaxCascades {
			e.logger.Warn("cascade limit reached", "limit", e.params.MaxCascades, "pending", len(matches))
			return
		}

		step := CascadeStep{Matches: matches}
		var m Move
		scoreMove(&m, matches, e.params.Scoring)
		step.Score = m.Score

		for _, match := range matches {
			for _, c := range match.Tiles {
				if b.Get(c) != KindEmpty {
					b.Set(c, KindEmpty)
					step.Cleared++
				}
			}
		}
		for _, match := range matches {
			kind := SpecialForMatch(match.Size, match.Shape)
			if kind == KindEmpty {
				continue
			}
			at := match.Pivot
			if round == 0 && !match.Shape.IsCompound() {
				switch {
				case match.Contains(to):
					at = to
				case match.Contains(from):
					at = from
				}
			}
			b.Set(at, kind)
			step.Created = append(step.Created, SpawnedSpecial{Pos: at, Kind: kind})
		}

		collapse(b, e.rng)
		res.Steps = append(res.Steps, step)
		res.Score += step.Score
		res.Cascades = round + 1
	}
}

// collapse lets tiles fall inside each column segment bounded by obstacles
// and refills the emptied top of every segment with random colors.
func collapse(b *Board, rng Rand) {
	for x := 0; x < b.W; x++ {
		bottom := b.H - 1
		for bottom >= 0 {
			top := bottom
			for top >= 0 && b.Get(C(x, top)) != KindObstacle {
				top--
			}
			collapseSegment(b, x, top+1, bottom, rng)
			bottom = top - 1
		}
	}
}

// collapseSegment compacts rows [top, bottom] of column x downwards.
func collapseSegment(b *Board, x, top, bottom int, rng Rand) {
	write := bottom
	for y := bottom; y >= top; y-- {
		if k := b.Get(C(x, y)); k != KindEmpty {
			b.Set(C(x, write), k)
			write--
		}
	}
	for y := write; y >= top; y-- {
		b.Set(C(x, y), randomColor(b, rng))
	}
}
