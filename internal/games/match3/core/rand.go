package core

import (
	"math/rand"
	"time"
)

// Rand is the random source threaded through generation, shuffles, refills
// and tie-breaks. *rand.Rand satisfies it; tests inject a seeded instance.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// NewRand returns a seeded random source.
// A zero seed means "use the current time", which callers should only do at
// the edge of the program (CLI, TUI), never inside the engine.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// randomColor picks a uniformly random color from the board's palette.
func randomColor(b *Board, rng Rand) Kind {
	return ColorKind(rng.Intn(b.Colors))
}

// shuffleKinds performs an in-place Fisher-Yates shuffle.
func shuffleKinds(kinds []Kind, rng Rand) {
	for i := len(kinds) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		kinds[i], kinds[j] = kinds[j], kinds[i]
	}
}
