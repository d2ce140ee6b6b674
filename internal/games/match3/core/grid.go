package core

// Board represents the game board as a rectangular grid of tiles.
// Cells are stored in row-major order: index = y*W + x.
type Board struct {
	W      int    // Width of the board (columns)
	H      int    // Height of the board (rows)
	Colors int    // Number of normal colors in play
	Cells  []Kind // Flat array of cells, length W*H
}

// NewBoard creates an empty board with the given dimensions and palette size.
func NewBoard(w, h, colors int) *Board {
	return &Board{
		W:      w,
		H:      h,
		Colors: clampColors(colors),
		Cells:  make([]Kind, w*h),
	}
}

func clampColors(n int) int {
	if n < MinColors {
		return MinColors
	}
	if n > MaxColors {
		return MaxColors
	}
	return n
}

// index converts a coordinate to a flat array index.
func (b *Board) index(c Coord) int {
	return c.Y*b.W + c.X
}

// InBounds returns true if the coordinate is within the board boundaries.
func (b *Board) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < b.W && c.Y >= 0 && c.Y < b.H
}

// Get returns the kind at the given coordinate.
// Returns KindEmpty if out of bounds.
func (b *Board) Get(c Coord) Kind {
	if !b.InBounds(c) {
		return KindEmpty
	}
	return b.Cells[b.index(c)]
}

// Set sets the kind at the given coordinate. Out-of-bounds writes are ignored.
func (b *Board) Set(c Coord, k Kind) {
	if b.InBounds(c) {
		b.Cells[b.index(c)] = k
	}
}

// Tile returns the tile at the given coordinate.
func (b *Board) Tile(c Coord) Tile {
	return Tile{Kind: b.Get(c), Pos: c}
}

// Swap exchanges the contents of two cells.
func (b *Board) Swap(a, c Coord) {
	ia, ic := b.index(a), b.index(c)
	b.Cells[ia], b.Cells[ic] = b.Cells[ic], b.Cells[ia]
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	cells := make([]Kind, len(b.Cells))
	copy(cells, b.Cells)
	return &Board{
		W:      b.W,
		H:      b.H,
		Colors: b.Colors,
		Cells:  cells,
	}
}

// Palette returns the normal colors in play on this board.
func (b *Board) Palette() []Kind {
	return Palette(b.Colors)
}

// AllCoords returns all coordinates of the board in row-major order.
func (b *Board) AllCoords() []Coord {
	coords := make([]Coord, 0, b.W*b.H)
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			coords = append(coords, C(x, y))
		}
	}
	return coords
}

// CoordsWhere returns all coordinates whose kind satisfies pred, row-major.
func (b *Board) CoordsWhere(pred func(Kind) bool) []Coord {
	coords := make([]Coord, 0)
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			if pred(b.Cells[y*b.W+x]) {
				coords = append(coords, C(x, y))
			}
		}
	}
	return coords
}

// CountByKind returns how many cells hold each kind.
func (b *Board) CountByKind() map[Kind]int {
	counts := make(map[Kind]int)
	for _, k := range b.Cells {
		counts[k]++
	}
	return counts
}

// ColorCounts returns the number of tiles per normal color.
// Colors of the palette that are absent are reported with a zero count.
func (b *Board) ColorCounts() map[Kind]int {
	counts := make(map[Kind]int, b.Colors)
	for _, k := range b.Palette() {
		counts[k] = 0
	}
	for _, k := range b.Cells {
		if k.IsNormal() {
			counts[k]++
		}
	}
	return counts
}

// NormalCount returns the number of normal-colored tiles.
func (b *Board) NormalCount() int {
	n := 0
	for _, k := range b.Cells {
		if k.IsNormal() {
			n++
		}
	}
	return n
}

// MostFrequentColor returns the most common normal color on the board.
// Ties resolve to the lowest color. Returns false if there are no normal tiles.
func (b *Board) MostFrequentColor() (Kind, bool) {
	var counts [MaxColors]int
	for _, k := range b.Cells {
		if k.IsNormal() {
			counts[k.ColorIndex()]++
		}
	}
	best, bestCount := -1, 0
	for i, n := range counts {
		if n > bestCount {
			best, bestCount = i, n
		}
	}
	if best < 0 {
		return KindEmpty, false
	}
	return ColorKind(best), true
}

// IsBorder reports whether the coordinate lies on the outer ring of the board.
func (b *Board) IsBorder(c Coord) bool {
	return c.X == 0 || c.Y == 0 || c.X == b.W-1 || c.Y == b.H-1
}

// Equal returns true if two boards have the same dimensions and contents.
func (b *Board) Equal(other *Board) bool {
	if other == nil || b.W != other.W || b.H != other.H {
		return false
	}
	for i, k := range b.Cells {
		if k != other.Cells[i] {
			return false
		}
	}
	return true
}
