package core

// Propagate folds chain reactions into an activation result.
//
// Special tiles inside the affected cells that have not fired yet are
// activated in turn, breadth-first, until no new specials are hit or maxDepth
// levels have been processed. Specials spawned by the first activation are
// placed on a scratch copy before scanning, so they fire too. Reaching
// maxDepth simply stops propagation. With maxDepth <= 0 only the spawned
// specials fire, once each, since they belong to the first activation.
// The board is not modified.
func Propagate(b *Board, first ActivationResult, maxDepth, power int, sc ScoringParams) ActivationResult {
	total := first
	if !first.TriggersChain || (maxDepth <= 0 && len(first.Spawned) == 0) {
		return total
	}

	work := b.Clone()
	for _, s := range first.Spawned {
		work.Set(s.Pos, s.Kind)
	}

	fired := newCellSet(first.Sources...)
	affected := newCellSet(first.Affected...)

	activate := func(cell Coord, depth int) ActivationResult {
		fired.add(cell)
		sub := activateKind(work, work.Get(cell), ActivationRequest{Cell: cell, Power: power}, sc)
		for _, c := range sub.Affected {
			affected.add(c)
		}
		total.Score += sub.Score
		total.Chained++
		total.Depth = depth
		return sub
	}

	if maxDepth <= 0 {
		for _, s := range first.Spawned {
			if !fired.has(s.Pos) {
				activate(s.Pos, 1)
			}
		}
	}

	frontier := []ActivationResult{first}
	for depth := 1; depth <= maxDepth && len(frontier) > 0; depth++ {
		var next []ActivationResult
		for _, r := range frontier {
			if !r.TriggersChain {
				continue
			}
			for _, cell := range r.Affected {
				if !work.Get(cell).IsSpecial() || fired.has(cell) {
					continue
				}
				next = append(next, activate(cell, depth))
			}
		}
		frontier = next
	}

	total.Affected = affected.sorted()
	total.Sources = fired.sorted()
	return total
}
