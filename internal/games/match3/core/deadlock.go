package core

// DeadlockState is the solvability state of a board.
type DeadlockState uint8

const (
	StateStable     DeadlockState = iota // At least one legal move exists
	StateDeadlocked                      // No swap produces a match
)

// String returns the string representation of a deadlock state.
func (s DeadlockState) String() string {
	if s == StateDeadlocked {
		return "deadlocked"
	}
	return "stable"
}

// RepairMethod names how a deadlocked board was repaired.
type RepairMethod string

const (
	RepairNone          RepairMethod = "none"
	RepairShuffle       RepairMethod = "shuffle"
	RepairShuffleRefill RepairMethod = "shuffle-refill"
	RepairReplacement   RepairMethod = "replacement"
)

// ShuffleResult is the outcome of a deadlock repair.
type ShuffleResult struct {
	Success  bool
	Board    *Board
	Message  string
	Method   RepairMethod
	Attempts int // Shuffle attempts used
	Refilled int // Tiles replaced while stripping shuffle-made matches
}

// DetectDeadlock classifies the board.
func DetectDeadlock(b *Board) DeadlockState {
	if HasLegalMove(b) {
		return StateStable
	}
	return StateDeadlocked
}

// Shuffle permutes the board's normal and special tiles among their own
// positions until a permutation with a legal move is found. Obstacles and
// empty cells keep their content.
//
// A permutation that is match-free and solvable is accepted as is, so the
// multiset of tiles is preserved. Matches a permutation creates by accident
// are stripped and refilled with fresh random colors; the first such refilled
// board with a legal move is kept as a fallback and returned only when no
// clean permutation succeeds within the attempt budget.
func Shuffle(b *Board, attempts int, rng Rand) ShuffleResult {
	positions := b.CoordsWhere(Kind.Swappable)
	kinds := make([]Kind, len(positions))
	for i, c := range positions {
		kinds[i] = b.Get(c)
	}

	var fallback *Board
	fallbackRefilled := 0
	for attempt := 1; attempt <= attempts; attempt++ {
		shuffleKinds(kinds, rng)
		candidate := b.Clone()
		for i, c := range positions {
			candidate.Set(c, kinds[i])
		}

		if !HasMatch(candidate) {
			if HasLegalMove(candidate) {
				return ShuffleResult{
					Success:  true,
					Board:    candidate,
					Message:  "board shuffled",
					Method:   RepairShuffle,
					Attempts: attempt,
				}
			}
			continue
		}

		if fallback == nil {
			refilled := stripMatches(candidate, rng)
			if HasLegalMove(candidate) {
				fallback = candidate
				fallbackRefilled = refilled
			}
		}
	}

	if fallback != nil {
		return ShuffleResult{
			Success:  true,
			Board:    fallback,
			Message:  "board shuffled, accidental matches refilled",
			Method:   RepairShuffleRefill,
			Attempts: attempts,
			Refilled: fallbackRefilled,
		}
	}
	return ShuffleResult{
		Board:    b.Clone(),
		Message:  "no shuffle produced a legal move",
		Method:   RepairShuffle,
		Attempts: attempts,
	}
}

// StrategicReplace returns a copy of the board where every normal tile on the
// border is replaced by a color absent from its 4-neighbours, when one exists.
// This is best effort and does not guarantee a legal move.
func StrategicReplace(b *Board, rng Rand) *Board {
	out := b.Clone()
	for _, c := range out.AllCoords() {
		if !out.IsBorder(c) || !out.Get(c).IsNormal() {
			continue
		}
		present := make(map[Kind]bool, 4)
		for _, d := range neighbors4 {
			present[out.Get(c.Add(d[0], d[1]))] = true
		}
		var candidates []Kind
		for _, k := range out.Palette() {
			if !present[k] {
				candidates = append(candidates, k)
			}
		}
		if len(candidates) > 0 {
			out.Set(c, candidates[rng.Intn(len(candidates))])
		}
	}
	return out
}

// Repair brings a deadlocked board back to a playable state: bounded shuffles
// first, strategic replacement second. When both fail the result reports
// Success=false so the caller can regenerate the whole board.
func Repair(b *Board, attempts int, rng Rand) ShuffleResult {
	if DetectDeadlock(b) == StateStable {
		return ShuffleResult{
			Success: true,
			Board:   b.Clone(),
			Message: "board already has legal moves",
			Method:  RepairNone,
		}
	}

	res := Shuffle(b, attempts, rng)
	if res.Success {
		return res
	}

	replaced := StrategicReplace(b, rng)
	if HasLegalMove(replaced) {
		return ShuffleResult{
			Success:  true,
			Board:    replaced,
			Message:  "border tiles replaced",
			Method:   RepairReplacement,
			Attempts: res.Attempts,
		}
	}
	return ShuffleResult{
		Board:    replaced,
		Message:  "still deadlocked",
		Method:   RepairReplacement,
		Attempts: res.Attempts,
	}
}

// stripMatches replaces every matched tile with a random color, once, and
// returns how many tiles were replaced.
func stripMatches(b *Board, rng Rand) int {
	n := 0
	for _, m := range FindMatches(b) {
		for _, c := range m.Tiles {
			b.Set(c, randomColor(b, rng))
			n++
		}
	}
	return n
}
