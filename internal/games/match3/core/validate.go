package core

import (
	"fmt"
	"sort"
)

// ValidationError contains details about a board validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validation error codes.
const (
	CodeNoNormalTiles  = "NO_NORMAL_TILES"
	CodeInitialMatches = "INITIAL_MATCHES"
	CodeNoLegalMoves   = "NO_LEGAL_MOVES"
	CodeColorImbalance = "COLOR_IMBALANCE"
)

// ValidateBoard checks a generated board against the settings.
// Checks:
//   - the board holds at least one normal tile
//   - no pre-existing matches (when PreventInitialMatches is set)
//   - at least one legal move (when EnsureSolvability is set)
//   - every color of the palette covers MinColorShare of the normal tiles
func ValidateBoard(b *Board, s GenerationSettings) error {
	normal := b.NormalCount()
	if normal == 0 {
		return ValidationError{
			Code:    CodeNoNormalTiles,
			Message: fmt.Sprintf("%dx%d board has no normal tiles", b.W, b.H),
		}
	}

	if s.PreventInitialMatches {
		if matches := FindMatches(b); len(matches) > 0 {
			return ValidationError{
				Code:    CodeInitialMatches,
				Message: fmt.Sprintf("%d pre-existing matches, first at %v", len(matches), matches[0].Tiles[0]),
			}
		}
	}

	if s.EnsureSolvability && !HasLegalMove(b) {
		return ValidationError{
			Code:    CodeNoLegalMoves,
			Message: "no swap produces a match",
		}
	}

	if err := validateColorBalance(b, normal, s.MinColorShare); err != nil {
		return err
	}

	return nil
}

// validateColorBalance checks that every palette color has its minimum share.
func validateColorBalance(b *Board, normal int, minShare float64) error {
	if minShare <= 0 {
		return nil
	}
	counts := b.ColorCounts()
	colors := make([]Kind, 0, len(counts))
	for k := range counts {
		colors = append(colors, k)
	}
	sort.Slice(colors, func(i, j int) bool { return colors[i] < colors[j] })

	for _, k := range colors {
		share := float64(counts[k]) / float64(normal)
		if share < minShare {
			return ValidationError{
				Code: CodeColorImbalance,
				Message: fmt.Sprintf("color %s covers %.1f%% of normal tiles, want at least %.1f%%",
					k, share*100, minShare*100),
			}
		}
	}
	return nil
}
