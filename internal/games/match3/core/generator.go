package core

import "fmt"

// Generation defaults.
const (
	DefaultWidth         = 8
	DefaultHeight        = 8
	DefaultColors        = 5
	DefaultMaxAttempts   = 20
	DefaultColorRetries  = 10
	DefaultMinColorShare = 0.10
	MinBoardSide         = 3
)

// GenerationSettings describes the board a generator should produce.
type GenerationSettings struct {
	Width         int
	Height        int
	Colors        int
	ObstacleRatio float64 // Chance that a cell becomes an obstacle
	SpecialRatio  float64 // Chance that a non-obstacle cell becomes a special

	PreventInitialMatches bool
	EnsureSolvability     bool

	MinColorShare float64 // Minimum share of normal tiles per color, negative disables
	MaxAttempts   int     // Full generation attempts before the safe board
	ColorRetries  int     // Re-rolls per cell to avoid completing a run

	Pattern  Pattern
	Symmetry Symmetry
}

// DefaultSettings returns the settings of a plain 8x8 five color board.
func DefaultSettings() GenerationSettings {
	return GenerationSettings{
		Width:                 DefaultWidth,
		Height:                DefaultHeight,
		Colors:                DefaultColors,
		PreventInitialMatches: true,
		EnsureSolvability:     true,
		MinColorShare:         DefaultMinColorShare,
		MaxAttempts:           DefaultMaxAttempts,
		ColorRetries:          DefaultColorRetries,
	}
}

// normalized clamps the settings into the supported range.
func (s GenerationSettings) normalized() GenerationSettings {
	if s.Width == 0 {
		s.Width = DefaultWidth
	}
	if s.Height == 0 {
		s.Height = DefaultHeight
	}
	s.Width = max(s.Width, MinBoardSide)
	s.Height = max(s.Height, MinBoardSide)
	if s.Colors == 0 {
		s.Colors = DefaultColors
	}
	s.Colors = clampColors(s.Colors)
	s.ObstacleRatio = clampRatio(s.ObstacleRatio)
	s.SpecialRatio = clampRatio(s.SpecialRatio)
	if s.MinColorShare == 0 {
		s.MinColorShare = DefaultMinColorShare
	}
	if s.MaxAttempts <= 0 {
		s.MaxAttempts = DefaultMaxAttempts
	}
	if s.ColorRetries <= 0 {
		s.ColorRetries = DefaultColorRetries
	}
	return s
}

func clampRatio(r float64) float64 {
	switch {
	case r < 0:
		return 0
	case r > 1:
		return 1
	default:
		return r
	}
}

// Placement pins a kind to a cell.
type Placement struct {
	Pos  Coord
	Kind Kind
}

// Constraints are explicit per-cell requirements for generation.
// A non-empty Obstacles or Specials list replaces the matching ratio.
type Constraints struct {
	Obstacles []Coord
	Specials  []Placement
	Fixed     []Placement // Fixed normal colors
}

// IsZero reports whether no constraint is set.
func (c Constraints) IsZero() bool {
	return len(c.Obstacles) == 0 && len(c.Specials) == 0 && len(c.Fixed) == 0
}

// GenerationResult is the outcome of Generate.
type GenerationResult struct {
	Board     *Board
	Attempts  int   // Full generation attempts used
	Fallback  bool  // The safe board was returned
	LastError error // Last validation failure, if any
}

// Generate builds a board for the settings. Each attempt fills the board in
// row-major order and validates it; after MaxAttempts failures the safe
// striped board is returned, so a playable board always comes back.
func Generate(s GenerationSettings, cons Constraints, rng Rand) GenerationResult {
	s = s.normalized()

	var lastErr error
	for attempt := 1; attempt <= s.MaxAttempts; attempt++ {
		b := fill(s, cons, rng)
		if s.Symmetry != SymmetryNone {
			b = ApplySymmetry(b, s.Symmetry)
		}
		if s.Pattern != PatternNone || s.Symmetry != SymmetryNone {
			if s.PreventInitialMatches {
				rerollMatches(b, s.Symmetry, rng)
			}
			// Closed-form layouts are often deadlocked, e.g. the checkerboard.
			if s.EnsureSolvability && !HasLegalMove(b) {
				plantMove(b, s.Symmetry, rng)
			}
		}

		if err := ValidateBoard(b, s); err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt, err)
			continue
		}
		return GenerationResult{Board: b, Attempts: attempt}
	}

	return GenerationResult{
		Board:     SafeBoard(s.Width, s.Height, s.Colors),
		Attempts:  s.MaxAttempts,
		Fallback:  true,
		LastError: lastErr,
	}
}

// fill runs one generation pass.
func fill(s GenerationSettings, cons Constraints, rng Rand) *Board {
	b := NewBoard(s.Width, s.Height, s.Colors)

	obstacles := make(map[Coord]bool, len(cons.Obstacles))
	for _, c := range cons.Obstacles {
		obstacles[c] = true
	}
	specials := make(map[Coord]Kind, len(cons.Specials))
	for _, p := range cons.Specials {
		if p.Kind.IsSpecial() {
			specials[p.Pos] = p.Kind
		}
	}
	fixed := make(map[Coord]Kind, len(cons.Fixed))
	for _, p := range cons.Fixed {
		if p.Kind.IsNormal() && p.Kind.ColorIndex() < b.Colors {
			fixed[p.Pos] = p.Kind
		}
	}
	specialKinds := SpecialKinds()

	for _, c := range b.AllCoords() {
		switch {
		case len(cons.Obstacles) > 0 && obstacles[c]:
			b.Set(c, KindObstacle)
		case len(cons.Obstacles) == 0 && s.ObstacleRatio > 0 && rng.Float64() < s.ObstacleRatio:
			b.Set(c, KindObstacle)
		case len(cons.Specials) > 0 && specials[c] != KindEmpty:
			b.Set(c, specials[c])
		case len(cons.Specials) == 0 && s.SpecialRatio > 0 && rng.Float64() < s.SpecialRatio:
			b.Set(c, specialKinds[rng.Intn(len(specialKinds))])
		case fixed[c] != KindEmpty:
			b.Set(c, fixed[c])
		case s.Pattern != PatternNone:
			b.Set(c, ColorKind(s.Pattern.colorIndex(b, c)))
		default:
			b.Set(c, pickColor(b, c, s, rng))
		}
	}
	return b
}

// pickColor draws a random color, re-rolling while it would complete a run.
func pickColor(b *Board, c Coord, s GenerationSettings, rng Rand) Kind {
	k := randomColor(b, rng)
	if !s.PreventInitialMatches {
		return k
	}
	for i := 0; i < s.ColorRetries && wouldCompleteRun(b, c, k); i++ {
		k = randomColor(b, rng)
	}
	return k
}

// SafeBoard returns the striped fallback board colors[(row+col) % n].
// It is match-free for three or more colors. Two tiles are then recolored to
// plant one legal move: swapping (2,0) with (2,1) completes row 0.
func SafeBoard(w, h, colors int) *Board {
	w = max(w, MinBoardSide)
	h = max(h, MinBoardSide)
	b := NewBoard(w, h, colors)
	for _, c := range b.AllCoords() {
		b.Set(c, ColorKind((c.X+c.Y)%b.Colors))
	}
	first := ColorKind(0)
	b.Set(C(1, 0), first)
	b.Set(C(2, 1), first)
	return b
}
