package core

import "sort"

// Shape classifies a match by its geometry.
type Shape uint8

const (
	ShapeHorizontal Shape = iota
	ShapeVertical
	ShapeL
	ShapeT
	ShapeCross
)

// String returns the string representation of a shape.
func (s Shape) String() string {
	switch s {
	case ShapeHorizontal:
		return "horizontal"
	case ShapeVertical:
		return "vertical"
	case ShapeL:
		return "L"
	case ShapeT:
		return "T"
	case ShapeCross:
		return "cross"
	default:
		return "unknown"
	}
}

// IsCompound reports whether the shape is made of crossing runs.
func (s Shape) IsCompound() bool {
	return s == ShapeL || s == ShapeT || s == ShapeCross
}

// MinRun is the shortest run of same-colored tiles that counts as a match.
const MinRun = 3

// Match is a maximal run or compound shape of same-colored normal tiles.
type Match struct {
	Shape Shape
	Color Kind
	Tiles []Coord // Member tiles in row-major order
	Size  int     // Number of distinct tiles
	Pivot Coord   // Intersection cell for compound shapes, middle tile for lines
}

// Contains reports whether the match includes the given cell.
func (m Match) Contains(c Coord) bool {
	for _, t := range m.Tiles {
		if t == c {
			return true
		}
	}
	return false
}

// run is a maximal straight line of same-colored tiles.
type run struct {
	color      Kind
	start      Coord
	length     int
	horizontal bool
}

func (r run) cell(i int) Coord {
	if r.horizontal {
		return r.start.Add(i, 0)
	}
	return r.start.Add(0, i)
}

// interior reports whether c lies strictly between the run's endpoints.
func (r run) interior(c Coord) bool {
	var pos int
	if r.horizontal {
		pos = c.X - r.start.X
	} else {
		pos = c.Y - r.start.Y
	}
	return pos > 0 && pos < r.length-1
}

// FindMatches returns every match on the board.
// Horizontal and vertical runs sharing a cell are merged into a single L, T or
// cross match. Matches are ordered by their first tile in row-major order, so
// downstream tie-breaking is reproducible.
func FindMatches(b *Board) []Match {
	runs := findRuns(b)
	if len(runs) == 0 {
		return nil
	}

	// Union runs that share a cell.
	parent := make([]int, len(runs))
	for i := range parent {
		parent[i] = i
	}
	find := func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}

	owner := make(map[Coord]int, len(runs)*MinRun)
	for i, r := range runs {
		for j := 0; j < r.length; j++ {
			c := r.cell(j)
			if other, ok := owner[c]; ok {
				parent[find(i)] = find(other)
				continue
			}
			owner[c] = i
		}
	}

	groups := make(map[int][]int)
	roots := make([]int, 0)
	for i := range runs {
		root := find(i)
		if _, seen := groups[root]; !seen {
			roots = append(roots, root)
		}
		groups[root] = append(groups[root], i)
	}

	matches := make([]Match, 0, len(roots))
	for _, root := range roots {
		matches = append(matches, buildMatch(runs, groups[root]))
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Tiles[0].Less(matches[j].Tiles[0])
	})
	return matches
}

// findRuns collects horizontal runs row-major, then vertical runs column-major.
func findRuns(b *Board) []run {
	var runs []run

	for y := 0; y < b.H; y++ {
		x := 0
		for x < b.W {
			k := b.Get(C(x, y))
			n := 1
			for x+n < b.W && k.IsNormal() && b.Get(C(x+n, y)) == k {
				n++
			}
			if k.IsNormal() && n >= MinRun {
				runs = append(runs, run{color: k, start: C(x, y), length: n, horizontal: true})
			}
			x += n
		}
	}

	for x := 0; x < b.W; x++ {
		y := 0
		for y < b.H {
			k := b.Get(C(x, y))
			n := 1
			for y+n < b.H && k.IsNormal() && b.Get(C(x, y+n)) == k {
				n++
			}
			if k.IsNormal() && n >= MinRun {
				runs = append(runs, run{color: k, start: C(x, y), length: n, horizontal: false})
			}
			y += n
		}
	}

	return runs
}

// buildMatch merges a group of connected runs into one Match.
func buildMatch(runs []run, members []int) Match {
	seen := make(map[Coord]bool)
	tiles := make([]Coord, 0)
	horizontal := make(map[Coord]run)
	vertical := make(map[Coord]run)

	for _, i := range members {
		r := runs[i]
		for j := 0; j < r.length; j++ {
			c := r.cell(j)
			if r.horizontal {
				horizontal[c] = r
			} else {
				vertical[c] = r
			}
			if !seen[c] {
				seen[c] = true
				tiles = append(tiles, c)
			}
		}
	}
	sort.Slice(tiles, func(i, j int) bool { return tiles[i].Less(tiles[j]) })

	m := Match{
		Color: runs[members[0]].color,
		Tiles: tiles,
		Size:  len(tiles),
	}

	if len(members) == 1 {
		if runs[members[0]].horizontal {
			m.Shape = ShapeHorizontal
		} else {
			m.Shape = ShapeVertical
		}
		m.Pivot = tiles[(len(tiles)-1)/2]
		return m
	}

	// Compound: rank every intersection, keep the strongest (first on ties).
	bestRank := 0
	for _, c := range tiles {
		h, okH := horizontal[c]
		v, okV := vertical[c]
		if !okH || !okV {
			continue
		}
		rank := 1
		if h.interior(c) {
			rank++
		}
		if v.interior(c) {
			rank++
		}
		if rank > bestRank {
			bestRank = rank
			m.Pivot = c
		}
	}
	switch bestRank {
	case 3:
		m.Shape = ShapeCross
	case 2:
		m.Shape = ShapeT
	default:
		m.Shape = ShapeL
	}
	return m
}

// HasMatch reports whether the board contains at least one match.
func HasMatch(b *Board) bool {
	return len(findRuns(b)) > 0
}

// matchesTouching filters matches to those containing any of the given cells.
func matchesTouching(matches []Match, cells ...Coord) []Match {
	out := make([]Match, 0, len(matches))
	for _, m := range matches {
		for _, c := range cells {
			if m.Contains(c) {
				out = append(out, m)
				break
			}
		}
	}
	return out
}

// wouldCompleteRun reports whether placing k at c completes a run of three
// with tiles already placed to its left or above (row-major generation order).
func wouldCompleteRun(b *Board, c Coord, k Kind) bool {
	if !k.IsNormal() {
		return false
	}
	if b.Get(c.Add(-1, 0)) == k && b.Get(c.Add(-2, 0)) == k {
		return true
	}
	if b.Get(c.Add(0, -1)) == k && b.Get(c.Add(0, -2)) == k {
		return true
	}
	return false
}

// formsRunAt reports whether the tile at c is part of a run of three in any
// direction, looking both ways.
func formsRunAt(b *Board, c Coord) bool {
	k := b.Get(c)
	if !k.IsNormal() {
		return false
	}
	count := func(dx, dy int) int {
		n := 0
		for p := c.Add(dx, dy); b.InBounds(p) && b.Get(p) == k; p = p.Add(dx, dy) {
			n++
		}
		return n
	}
	return count(-1, 0)+count(1, 0)+1 >= MinRun || count(0, -1)+count(0, 1)+1 >= MinRun
}
