package core

import "strings"

// Pattern selects a closed-form color layout for patterned generation.
type Pattern string

const (
	PatternNone         Pattern = ""
	PatternCheckerboard Pattern = "checkerboard" // (row+col) mod colors
	PatternSpiral       Pattern = "spiral"       // Manhattan distance from center
	PatternDiamond      Pattern = "diamond"      // Chebyshev distance from center
	PatternCross        Pattern = "cross"        // Distance to the center row/column
)

// Patterns returns all named patterns.
func Patterns() []Pattern {
	return []Pattern{PatternCheckerboard, PatternSpiral, PatternDiamond, PatternCross}
}

// ParsePattern converts a name to a Pattern.
func ParsePattern(s string) (Pattern, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "none" || s == "random" {
		return PatternNone, true
	}
	for _, p := range Patterns() {
		if string(p) == s {
			return p, true
		}
	}
	return PatternNone, false
}

// colorIndex maps a cell to a palette index for the pattern.
func (p Pattern) colorIndex(b *Board, c Coord) int {
	center := C(b.W/2, b.H/2)
	var v int
	switch p {
	case PatternSpiral:
		v = c.Manhattan(center)
	case PatternDiamond:
		v = c.Chebyshev(center)
	case PatternCross:
		v = min(abs(c.X-center.X), abs(c.Y-center.Y))
	default:
		v = c.X + c.Y
	}
	return v % b.Colors
}

// maxRerollPasses bounds the match stripping loop.
const maxRerollPasses = 10

// rerollMatches re-rolls matched cells until the board is match-free or the
// pass budget runs out. Under a symmetry the mirror cell receives the same
// color so the layout stays symmetric. Reports whether the board is clean.
func rerollMatches(b *Board, sym Symmetry, rng Rand) bool {
	for pass := 0; pass < maxRerollPasses; pass++ {
		matches := FindMatches(b)
		if len(matches) == 0 {
			return true
		}
		for _, m := range matches {
			for _, c := range m.Tiles {
				k := randomColor(b, rng)
				b.Set(c, k)
				if mc := sym.mirror(b, c); b.Get(mc).IsNormal() {
					b.Set(mc, k)
				}
			}
		}
	}
	return !HasMatch(b)
}

// plantMove recolors two tiles so that one swap completes a row:
// for a start cell s, (s+1,0) and (s+2,1) take the color of s, and swapping
// (s+2,0) with (s+2,1) then matches. Candidates are tried from a random
// offset; one that creates a match is reverted. Mirror cells follow the
// symmetry. Reports whether a move was planted.
func plantMove(b *Board, sym Symmetry, rng Rand) bool {
	coords := b.AllCoords()
	offset := rng.Intn(len(coords))
	for i := range coords {
		s := coords[(offset+i)%len(coords)]
		cells := []Coord{s.Add(1, 0), s.Add(2, 0), s.Add(2, 1)}
		k := b.Get(s)
		if !k.IsNormal() || !allNormal(b, cells) {
			continue
		}

		saved := b.Clone()
		for _, c := range []Coord{cells[0], cells[2]} {
			b.Set(c, k)
			if m := sym.mirror(b, c); b.Get(m).IsNormal() {
				b.Set(m, k)
			}
		}
		if b.Get(cells[1]) != k && !HasMatch(b) && HasLegalMove(b) {
			return true
		}
		copy(b.Cells, saved.Cells)
	}
	return false
}

func allNormal(b *Board, cells []Coord) bool {
	for _, c := range cells {
		if !b.Get(c).IsNormal() {
			return false
		}
	}
	return true
}
