package core

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is returned for coordinates outside the board.
	ErrOutOfBounds = errors.New("cell out of bounds")
	// ErrNotSpecial is returned when activating a cell that holds no special tile.
	ErrNotSpecial = errors.New("cell is not a special tile")
)

// Effect names the visual/semantic effect of an activation, for presentation.
type Effect string

const (
	EffectRowClear    Effect = "row-clear"
	EffectColumnClear Effect = "column-clear"
	EffectBomb        Effect = "bomb"
	EffectRainbow     Effect = "rainbow"
	EffectCross       Effect = "cross"        // row-clear + column-clear
	EffectLineBomb    Effect = "line-bomb"    // line clear + bomb
	EffectMegaBomb    Effect = "mega-bomb"    // bomb + bomb
	EffectRainbowLine Effect = "rainbow-line" // rainbow + line clear
	EffectRainbowBomb Effect = "rainbow-bomb" // rainbow + bomb
	EffectBoardClear  Effect = "board-clear"  // rainbow + rainbow
	EffectBlock       Effect = "block"        // any other pairing
	EffectChain       Effect = "chain"        // accumulated chain reaction
)

// SpawnedSpecial is a special tile created by an activation.
type SpawnedSpecial struct {
	Pos  Coord
	Kind Kind
}

// ActivationResult is the outcome of activating or combining special tiles.
type ActivationResult struct {
	Origin        Coord   // Cell the effect is centered on
	Sources       []Coord // Special tiles consumed by this activation
	Affected      []Coord // Distinct cells, row-major
	Score         int
	Effect        Effect
	TriggersChain bool
	Spawned       []SpawnedSpecial
	Chained       int // Number of secondary activations folded in
	Depth         int // Deepest chain level reached
}

// ActivationRequest describes a single special-tile activation.
type ActivationRequest struct {
	Cell   Coord
	Target *Coord // Optional cell used to pick the rainbow's color
	Power  int    // Activation power, defaults to 1
}

// SpecialForMatch maps a match's size and shape to the special tile it creates.
// Returns KindEmpty when the match creates nothing. Four-in-a-row creates a
// clear oriented opposite to the match.
func SpecialForMatch(size int, shape Shape) Kind {
	if shape.IsCompound() {
		return KindBomb
	}
	switch {
	case size >= 6:
		return KindRainbow
	case size == 5:
		return KindBomb
	case size == 4:
		if shape == ShapeHorizontal {
			return KindColumnClear
		}
		return KindRowClear
	default:
		return KindEmpty
	}
}

// CanActivate reports whether the cell holds a special tile that can fire.
func CanActivate(b *Board, at Coord) bool {
	return b.InBounds(at) && b.Get(at).IsSpecial()
}

// Activate computes the effect of firing the special tile at req.Cell.
// The board is not modified.
func Activate(b *Board, req ActivationRequest, sc ScoringParams) (ActivationResult, error) {
	if !b.InBounds(req.Cell) {
		return ActivationResult{}, fmt.Errorf("%w: %v", ErrOutOfBounds, req.Cell)
	}
	kind := b.Get(req.Cell)
	if !kind.IsSpecial() {
		return ActivationResult{}, fmt.Errorf("%w: %v holds %s", ErrNotSpecial, req.Cell, kind)
	}
	return activateKind(b, kind, req, sc), nil
}

// Preview returns the cells the special tile at cell would affect.
func Preview(b *Board, cell Coord, power int) ([]Coord, error) {
	res, err := Activate(b, ActivationRequest{Cell: cell, Power: power}, ScoringParams{})
	if err != nil {
		return nil, err
	}
	return res.Affected, nil
}

// activateKind is the single dispatch over the special kinds.
func activateKind(b *Board, kind Kind, req ActivationRequest, sc ScoringParams) ActivationResult {
	power := req.Power
	if power <= 0 {
		power = 1
	}
	at := req.Cell
	res := ActivationResult{Origin: at, Sources: []Coord{at}, TriggersChain: true}

	var cells cellSet
	var weight int
	switch kind {
	case KindRowClear:
		cells = rowCells(b, at.Y)
		weight = sc.LineWeight
		res.Effect = EffectRowClear
	case KindColumnClear:
		cells = columnCells(b, at.X)
		weight = sc.LineWeight
		res.Effect = EffectColumnClear
	case KindBomb:
		cells = blastCells(b, at, 1+power/2)
		weight = sc.BombWeight
		res.Effect = EffectBomb
	case KindRainbow:
		cells = newCellSet()
		if color, ok := rainbowTarget(b, at, req.Target); ok {
			for _, c := range b.CoordsWhere(func(k Kind) bool { return k == color }) {
				cells.add(c)
			}
		}
		weight = sc.RainbowWeight
		res.Effect = EffectRainbow
	}

	res.Affected = cells.sorted()
	res.Score = power * len(res.Affected) * weight
	return res
}

// rainbowTarget resolves the color a rainbow clears: an explicit target cell,
// else the first normal 4-neighbour (up, right, down, left), else the most
// frequent color on the board.
func rainbowTarget(b *Board, at Coord, target *Coord) (Kind, bool) {
	if target != nil && b.Get(*target).IsNormal() {
		return b.Get(*target), true
	}
	for _, d := range neighbors4 {
		if k := b.Get(at.Add(d[0], d[1])); k.IsNormal() {
			return k, true
		}
	}
	return b.MostFrequentColor()
}

// rowCells returns every non-obstacle cell in row y.
func rowCells(b *Board, y int) cellSet {
	cs := newCellSet()
	for x := 0; x < b.W; x++ {
		if c := C(x, y); b.Get(c) != KindObstacle {
			cs.add(c)
		}
	}
	return cs
}

// columnCells returns every non-obstacle cell in column x.
func columnCells(b *Board, x int) cellSet {
	cs := newCellSet()
	for y := 0; y < b.H; y++ {
		if c := C(x, y); b.Get(c) != KindObstacle {
			cs.add(c)
		}
	}
	return cs
}

// blastCells returns non-obstacle cells within Chebyshev radius r of center.
func blastCells(b *Board, center Coord, r int) cellSet {
	cs := newCellSet()
	addBlast(b, cs, center, r)
	return cs
}

func addBlast(b *Board, cs cellSet, center Coord, r int) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			c := center.Add(dx, dy)
			if b.InBounds(c) && b.Get(c) != KindObstacle {
				cs.add(c)
			}
		}
	}
}
