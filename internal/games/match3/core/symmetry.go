package core

import "strings"

// Symmetry selects a mirroring post-process for generated boards.
type Symmetry string

const (
	SymmetryNone       Symmetry = ""
	SymmetryHorizontal Symmetry = "horizontal" // Bottom half mirrors the top half
	SymmetryVertical   Symmetry = "vertical"   // Right half mirrors the left half
	SymmetryRotational Symmetry = "rotational" // 180 degree rotation
)

// ParseSymmetry converts a name to a Symmetry.
func ParseSymmetry(s string) (Symmetry, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return SymmetryNone, true
	case "horizontal", "h":
		return SymmetryHorizontal, true
	case "vertical", "v":
		return SymmetryVertical, true
	case "rotational", "rotate", "180":
		return SymmetryRotational, true
	default:
		return SymmetryNone, false
	}
}

// mirror returns the cell that c is copied from or to under the symmetry.
func (s Symmetry) mirror(b *Board, c Coord) Coord {
	switch s {
	case SymmetryHorizontal:
		return C(c.X, b.H-1-c.Y)
	case SymmetryVertical:
		return C(b.W-1-c.X, c.Y)
	case SymmetryRotational:
		return C(b.W-1-c.X, b.H-1-c.Y)
	default:
		return c
	}
}

// ApplySymmetry returns a copy of the board where one half is overwritten by
// the mirror image of the other. The first half in row-major order wins.
func ApplySymmetry(b *Board, s Symmetry) *Board {
	out := b.Clone()
	if s == SymmetryNone {
		return out
	}
	for _, c := range out.AllCoords() {
		m := s.mirror(out, c)
		if c.Less(m) {
			out.Set(m, out.Get(c))
		}
	}
	return out
}

// IsSymmetric reports whether the board is invariant under the symmetry.
func IsSymmetric(b *Board, s Symmetry) bool {
	for _, c := range b.AllCoords() {
		if b.Get(c) != b.Get(s.mirror(b, c)) {
			return false
		}
	}
	return true
}
