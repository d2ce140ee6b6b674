package core

import (
	"errors"
	"fmt"
)

// ErrNotAdjacent is returned when two cells of a swap do not share an edge.
var ErrNotAdjacent = errors.New("cells are not adjacent")

// Combination base scores and per-cell weights.
const (
	crossBase, crossPerCell             = 1000, 50
	lineBombBase, lineBombPerCell       = 1500, 75
	megaBombBase, megaBombPerCell       = 2000, 100
	rainbowLineBase, rainbowLinePerCell = 3000, 100
	rainbowBombBase, rainbowBombPerCell = 5000, 150
	boardClearBase, boardClearPerCell   = 10000, 200
	blockBase, blockPerCell             = 500, 25

	megaBombRadius = 3
)

// Combine computes the effect of swapping two adjacent special tiles.
// The effect is centered on their midpoint and does not depend on argument
// order: Combine(b, a, c) equals Combine(b, c, a) for the same random state.
// The board is not modified; converted tiles are reported in Spawned.
func Combine(b *Board, a, c Coord, rng Rand) (ActivationResult, error) {
	if !b.InBounds(a) || !b.InBounds(c) {
		return ActivationResult{}, fmt.Errorf("%w: %v, %v", ErrOutOfBounds, a, c)
	}
	if !a.Adjacent(c) {
		return ActivationResult{}, fmt.Errorf("%w: %v, %v", ErrNotAdjacent, a, c)
	}
	ka, kc := b.Get(a), b.Get(c)
	if !ka.IsSpecial() || !kc.IsSpecial() {
		return ActivationResult{}, fmt.Errorf("%w: combining %s with %s", ErrNotSpecial, ka, kc)
	}

	// Canonical order so the result never depends on which tile moved.
	if c.Less(a) {
		a, c = c, a
		ka, kc = kc, ka
	}

	mid := Midpoint(a, c)
	res := ActivationResult{
		Origin:        mid,
		Sources:       []Coord{a, c},
		TriggersChain: true,
	}

	var cells cellSet
	var base, perCell int

	switch {
	case isPair(ka, kc, KindRowClear, KindColumnClear):
		cells = rowCells(b, mid.Y)
		for _, cell := range columnCells(b, mid.X).sorted() {
			cells.add(cell)
		}
		base, perCell = crossBase, crossPerCell
		res.Effect = EffectCross

	case ka.IsLine() && kc == KindBomb, kc.IsLine() && ka == KindBomb:
		line := ka
		if !line.IsLine() {
			line = kc
		}
		var lineCells cellSet
		if line == KindRowClear {
			lineCells = rowCells(b, mid.Y)
		} else {
			lineCells = columnCells(b, mid.X)
		}
		cells = newCellSet()
		for _, cell := range lineCells.sorted() {
			addBlast(b, cells, cell, 1)
		}
		base, perCell = lineBombBase, lineBombPerCell
		res.Effect = EffectLineBomb

	case ka == KindBomb && kc == KindBomb:
		cells = blastCells(b, mid, megaBombRadius)
		base, perCell = megaBombBase, megaBombPerCell
		res.Effect = EffectMegaBomb

	case ka == KindRainbow && kc == KindRainbow:
		cells = newCellSet()
		for _, cell := range b.CoordsWhere(func(k Kind) bool { return k != KindEmpty && k != KindObstacle }) {
			cells.add(cell)
		}
		base, perCell = boardClearBase, boardClearPerCell
		res.Effect = EffectBoardClear
		res.TriggersChain = false

	case ka == KindRainbow && kc.IsLine(), kc == KindRainbow && ka.IsLine():
		cells = newCellSet()
		for _, cell := range targetColorCells(b, a, c) {
			cells.add(cell)
			kind := KindRowClear
			if rng.Intn(2) == 1 {
				kind = KindColumnClear
			}
			res.Spawned = append(res.Spawned, SpawnedSpecial{Pos: cell, Kind: kind})
		}
		base, perCell = rainbowLineBase, rainbowLinePerCell
		res.Effect = EffectRainbowLine

	case ka == KindRainbow && kc == KindBomb, kc == KindRainbow && ka == KindBomb:
		cells = newCellSet()
		for _, cell := range targetColorCells(b, a, c) {
			cells.add(cell)
			res.Spawned = append(res.Spawned, SpawnedSpecial{Pos: cell, Kind: KindBomb})
		}
		base, perCell = rainbowBombBase, rainbowBombPerCell
		res.Effect = EffectRainbowBomb

	default:
		cells = blastCells(b, mid, 1)
		base, perCell = blockBase, blockPerCell
		res.Effect = EffectBlock
	}

	res.Affected = cells.sorted()
	res.Score = base + len(res.Affected)*perCell
	return res, nil
}

// isPair reports whether {a, b} equals {x, y} in either order.
func isPair(a, b, x, y Kind) bool {
	return (a == x && b == y) || (a == y && b == x)
}

// targetColorCells returns the cells of the most common normal color around
// the two swapped tiles, falling back to the most frequent color on the board.
func targetColorCells(b *Board, a, c Coord) []Coord {
	var counts [MaxColors]int
	for _, origin := range []Coord{a, c} {
		for _, d := range neighbors4 {
			n := origin.Add(d[0], d[1])
			if n == a || n == c {
				continue
			}
			if k := b.Get(n); k.IsNormal() {
				counts[k.ColorIndex()]++
			}
		}
	}

	color, found := KindEmpty, false
	best := 0
	for i, n := range counts {
		if n > best {
			best = n
			color, found = ColorKind(i), true
		}
	}
	if !found {
		color, found = b.MostFrequentColor()
	}
	if !found {
		return nil
	}
	return b.CoordsWhere(func(k Kind) bool { return k == color })
}
