// Package core provides the rules engine for the match-3 puzzle.
// This package is UI-agnostic and deterministic: every operation is a pure
// computation over an explicitly passed board plus an injected random source.
package core

import "strings"

// Kind is the content of a single board cell.
// A cell is empty, an obstacle, one normal color, or one special kind.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindObstacle

	KindRed
	KindGreen
	KindBlue
	KindYellow
	KindPurple
	KindOrange

	KindRowClear
	KindColumnClear
	KindBomb
	KindRainbow
)

// MaxColors is the number of normal colors the engine knows about.
const MaxColors = int(KindOrange-KindRed) + 1

// MinColors is the smallest palette the generator accepts.
const MinColors = 3

// ColorKind returns the i-th normal color (0-based).
func ColorKind(i int) Kind {
	return KindRed + Kind(i)
}

// Palette returns the first n normal colors.
func Palette(n int) []Kind {
	if n > MaxColors {
		n = MaxColors
	}
	out := make([]Kind, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, ColorKind(i))
	}
	return out
}

// SpecialKinds returns all special kinds in declaration order.
func SpecialKinds() []Kind {
	return []Kind{KindRowClear, KindColumnClear, KindBomb, KindRainbow}
}

// IsNormal reports whether the kind is a normal color.
func (k Kind) IsNormal() bool {
	return k >= KindRed && k <= KindOrange
}

// IsSpecial reports whether the kind is one of the four special tiles.
func (k Kind) IsSpecial() bool {
	return k >= KindRowClear && k <= KindRainbow
}

// IsLine reports whether the kind is a row or column clear.
func (k Kind) IsLine() bool {
	return k == KindRowClear || k == KindColumnClear
}

// Swappable reports whether a tile of this kind may take part in a swap.
func (k Kind) Swappable() bool {
	return k.IsNormal() || k.IsSpecial()
}

// ColorIndex returns the 0-based palette index of a normal color, or -1.
func (k Kind) ColorIndex() int {
	if !k.IsNormal() {
		return -1
	}
	return int(k - KindRed)
}

// String returns the string representation of a kind.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindObstacle:
		return "obstacle"
	case KindRed:
		return "red"
	case KindGreen:
		return "green"
	case KindBlue:
		return "blue"
	case KindYellow:
		return "yellow"
	case KindPurple:
		return "purple"
	case KindOrange:
		return "orange"
	case KindRowClear:
		return "row-clear"
	case KindColumnClear:
		return "column-clear"
	case KindBomb:
		return "bomb"
	case KindRainbow:
		return "rainbow"
	default:
		return "unknown"
	}
}

// Char returns a single character representation used by the ASCII codec.
func (k Kind) Char() rune {
	switch k {
	case KindEmpty:
		return '.'
	case KindObstacle:
		return '#'
	case KindRed:
		return 'R'
	case KindGreen:
		return 'G'
	case KindBlue:
		return 'B'
	case KindYellow:
		return 'Y'
	case KindPurple:
		return 'P'
	case KindOrange:
		return 'O'
	case KindRowClear:
		return '-'
	case KindColumnClear:
		return '|'
	case KindBomb:
		return '*'
	case KindRainbow:
		return '@'
	default:
		return '?'
	}
}

// KindFromChar is the inverse of Char.
func KindFromChar(r rune) (Kind, bool) {
	for k := KindEmpty; k <= KindRainbow; k++ {
		if k.Char() == r {
			return k, true
		}
	}
	return KindEmpty, false
}

// ParseKind converts a name (or its single-letter form) to a Kind.
func ParseKind(s string) (Kind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k := KindEmpty; k <= KindRainbow; k++ {
		if k.String() == s {
			return k, true
		}
	}
	switch s {
	case "r":
		return KindRed, true
	case "g":
		return KindGreen, true
	case "b":
		return KindBlue, true
	case "y":
		return KindYellow, true
	case "p":
		return KindPurple, true
	case "o":
		return KindOrange, true
	case "row", "horizontal-clear":
		return KindRowClear, true
	case "column", "col", "vertical-clear":
		return KindColumnClear, true
	case "area-bomb":
		return KindBomb, true
	case "color-clear":
		return KindRainbow, true
	}
	return KindEmpty, false
}

// Tile is a cell's content together with its position.
type Tile struct {
	Kind Kind
	Pos  Coord
}
