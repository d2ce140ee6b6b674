package core

// Move describes one candidate swap and its projected outcome.
// Moves are recomputed on demand and never cached across board mutations.
type Move struct {
	From            Coord
	To              Coord
	Score           int
	MatchCount      int // Matches created by the swap
	MatchedTiles    int // Distinct tiles cleared by those matches
	SpecialsCreated int // Matches that would create a special tile
	ChainPotential  int // Extra matches beyond the first, a cascade proxy
}

// swappable reports whether both cells may take part in a swap.
func swappable(b *Board, a, c Coord) bool {
	return b.InBounds(a) && b.InBounds(c) && b.Get(a).Swappable() && b.Get(c).Swappable()
}

// EvaluateSwap scores swapping from and to on a scratch copy of the board.
// The second return value is false when the swap produces no match.
func EvaluateSwap(b *Board, from, to Coord, sc ScoringParams) (Move, bool) {
	move := Move{From: from, To: to}
	if !from.Adjacent(to) || !swappable(b, from, to) || b.Get(from) == b.Get(to) {
		return move, false
	}

	scratch := b.Clone()
	scratch.Swap(from, to)
	matches := matchesTouching(FindMatches(scratch), from, to)
	if len(matches) == 0 {
		return move, false
	}

	scoreMove(&move, matches, sc)
	return move, true
}

// scoreMove fills in the projected outcome of a swap from its matches.
func scoreMove(move *Move, matches []Match, sc ScoringParams) {
	tiles := newCellSet()
	bonus := 0
	for _, m := range matches {
		for _, t := range m.Tiles {
			tiles.add(t)
		}
		if m.Size >= 4 {
			bonus += sc.FourBonus
		}
		if m.Size >= 5 {
			bonus += sc.FiveBonus
		}
		if SpecialForMatch(m.Size, m.Shape) != KindEmpty {
			move.SpecialsCreated++
		}
	}

	move.MatchCount = len(matches)
	move.MatchedTiles = tiles.len()
	if len(matches) > 1 {
		move.ChainPotential = len(matches) - 1
	}
	move.Score = sc.MatchTile*move.MatchedTiles + bonus + sc.ChainPotential*move.ChainPotential
}

// FindMoves enumerates every legal swap on the board.
// Pairs are visited row-major, right neighbour before down neighbour, so the
// order of the result is reproducible.
func FindMoves(b *Board, sc ScoringParams) []Move {
	var moves []Move
	forEachPair(b, func(from, to Coord) bool {
		if m, ok := EvaluateSwap(b, from, to, sc); ok {
			moves = append(moves, m)
		}
		return true
	})
	return moves
}

// HasLegalMove reports whether at least one swap produces a match.
// It stops at the first one found.
func HasLegalMove(b *Board) bool {
	found := false
	forEachPair(b, func(from, to Coord) bool {
		if _, ok := EvaluateSwap(b, from, to, ScoringParams{}); ok {
			found = true
			return false
		}
		return true
	})
	return found
}

// forEachPair visits adjacent swappable pairs until fn returns false.
func forEachPair(b *Board, fn func(from, to Coord) bool) {
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			from := C(x, y)
			for _, to := range []Coord{from.Add(1, 0), from.Add(0, 1)} {
				if !swappable(b, from, to) {
					continue
				}
				if !fn(from, to) {
					return
				}
			}
		}
	}
}
