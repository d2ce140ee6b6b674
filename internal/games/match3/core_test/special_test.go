package core_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/lausiv7/candysoda-sub005/internal/games/match3/core"
)

func coordsOf(b *core.Board, pred func(core.Coord) bool) []core.Coord {
	var out []core.Coord
	for _, c := range b.AllCoords() {
		if pred(c) {
			out = append(out, c)
		}
	}
	return out
}

func TestActivateSingleSpecials(t *testing.T) {
	sc := core.DefaultScoring()
	tests := []struct {
		name     string
		layout   string
		cell     core.Coord
		target   *core.Coord
		power    int
		affected int
		score    int
		effect   core.Effect
	}{
		{
			name:     "row clear skips obstacles",
			layout:   "RGBY\nG-B#\nBRYG",
			cell:     core.C(1, 1),
			affected: 3,
			score:    3 * 50,
			effect:   core.EffectRowClear,
		},
		{
			name:     "column clear",
			layout:   "RGBY\nG|B#\nBRYG",
			cell:     core.C(1, 1),
			affected: 3,
			score:    3 * 50,
			effect:   core.EffectColumnClear,
		},
		{
			name:     "bomb radius 1",
			layout:   "RGBYR\nGBYRG\nBY*GB\nYRGBY\nRGBYR",
			cell:     core.C(2, 2),
			affected: 9,
			score:    9 * 75,
			effect:   core.EffectBomb,
		},
		{
			name:     "bomb power 2",
			layout:   "RGBYR\nGBYRG\nBY*GB\nYRGBY\nRGBYR",
			cell:     core.C(2, 2),
			power:    2,
			affected: 25,
			score:    2 * 25 * 75,
			effect:   core.EffectBomb,
		},
		{
			name:     "bomb in corner",
			layout:   "*GB\nGBR\nBRG",
			cell:     core.C(0, 0),
			affected: 4,
			score:    4 * 75,
			effect:   core.EffectBomb,
		},
		{
			name:     "rainbow explicit target",
			layout:   "RGR\nB@R\nGRB",
			cell:     core.C(1, 1),
			target:   &core.Coord{X: 0, Y: 1},
			affected: 2,
			score:    2 * 100,
			effect:   core.EffectRainbow,
		},
		{
			name:     "rainbow takes upper neighbour",
			layout:   "RGR\nB@R\nGRB",
			cell:     core.C(1, 1),
			affected: 2,
			score:    2 * 100,
			effect:   core.EffectRainbow,
		},
		{
			name:     "rainbow falls through to right neighbour",
			layout:   "R#R\nB@R\nGRB",
			cell:     core.C(1, 1),
			affected: 4,
			score:    4 * 100,
			effect:   core.EffectRainbow,
		},
		{
			name:     "rainbow clears only target color",
			layout:   "RGBR\nB@RG\nGBRB\nRBGR",
			cell:     core.C(1, 1),
			affected: 4,
			score:    4 * 100,
			effect:   core.EffectRainbow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := core.MustParseBoard(tt.layout)
			res, err := core.Activate(b, core.ActivationRequest{Cell: tt.cell, Target: tt.target, Power: tt.power}, sc)
			if err != nil {
				t.Fatalf("Activate failed: %v", err)
			}
			if len(res.Affected) != tt.affected {
				t.Errorf("affected: expected %d, got %d (%v)", tt.affected, len(res.Affected), res.Affected)
			}
			if res.Score != tt.score {
				t.Errorf("score: expected %d, got %d", tt.score, res.Score)
			}
			if res.Effect != tt.effect {
				t.Errorf("effect: expected %s, got %s", tt.effect, res.Effect)
			}
			if !res.TriggersChain {
				t.Error("single activations should trigger chains")
			}
			for _, c := range res.Affected {
				if b.Get(c) == core.KindObstacle {
					t.Errorf("obstacle %v in affected set", c)
				}
				if tt.effect == core.EffectRainbow && c == tt.cell {
					t.Errorf("rainbow %v in its own affected set", c)
				}
			}
			if !reflect.DeepEqual(res.Sources, []core.Coord{tt.cell}) {
				t.Errorf("sources: expected [%v], got %v", tt.cell, res.Sources)
			}
		})
	}
}

func TestActivateRejectsInvalidCells(t *testing.T) {
	b := core.MustParseBoard("RGB\nG-B\nBRG")
	sc := core.DefaultScoring()

	if _, err := core.Activate(b, core.ActivationRequest{Cell: core.C(0, 0)}, sc); !errors.Is(err, core.ErrNotSpecial) {
		t.Errorf("expected ErrNotSpecial, got %v", err)
	}
	if _, err := core.Activate(b, core.ActivationRequest{Cell: core.C(5, 5)}, sc); !errors.Is(err, core.ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
	if core.CanActivate(b, core.C(0, 0)) || !core.CanActivate(b, core.C(1, 1)) {
		t.Error("CanActivate disagrees with the board")
	}

	cells, err := core.Preview(b, core.C(1, 1), 1)
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	want := []core.Coord{core.C(0, 1), core.C(1, 1), core.C(2, 1)}
	if !reflect.DeepEqual(cells, want) {
		t.Errorf("Preview: expected %v, got %v", want, cells)
	}
}

const comboBoard = `
RGBYR
GBYRG
BY-|B
YRGBY
RGBYR`

func TestCombineRowAndColumnClear(t *testing.T) {
	b := core.MustParseBoard(comboBoard)

	res, err := core.Combine(b, core.C(2, 2), core.C(3, 2), core.NewRand(1))
	if err != nil {
		t.Fatalf("Combine failed: %v", err)
	}

	// Union of row 2 and column 2 through the midpoint (2,2).
	want := coordsOf(b, func(c core.Coord) bool { return c.Y == 2 || c.X == 2 })
	if !reflect.DeepEqual(res.Affected, want) {
		t.Errorf("affected: expected %v, got %v", want, res.Affected)
	}
	if res.Origin != core.C(2, 2) {
		t.Errorf("origin: expected (2,2), got %v", res.Origin)
	}
	if res.Score != 1000+9*50 {
		t.Errorf("score: expected %d, got %d", 1000+9*50, res.Score)
	}
	if res.Effect != core.EffectCross {
		t.Errorf("effect: expected cross, got %s", res.Effect)
	}
}

func TestCombineTwoRainbowsClearsBoard(t *testing.T) {
	b := core.MustParseBoard(`
		R#G.
		@@BY
		.G#R`)

	res, err := core.Combine(b, core.C(1, 1), core.C(0, 1), core.NewRand(1))
	if err != nil {
		t.Fatalf("Combine failed: %v", err)
	}
	if res.TriggersChain {
		t.Error("rainbow+rainbow must not trigger chains")
	}

	want := coordsOf(b, func(c core.Coord) bool {
		k := b.Get(c)
		return k != core.KindObstacle && k != core.KindEmpty
	})
	if !reflect.DeepEqual(res.Affected, want) {
		t.Errorf("affected: expected %v, got %v", want, res.Affected)
	}
	if res.Score != 10000+len(want)*200 {
		t.Errorf("score: expected %d, got %d", 10000+len(want)*200, res.Score)
	}
}

func TestCombineMatrix(t *testing.T) {
	tests := []struct {
		a, c     core.Kind
		effect   core.Effect
		affected int
		score    int
	}{
		{core.KindRowClear, core.KindColumnClear, core.EffectCross, 9, 1000 + 9*50},
		{core.KindRowClear, core.KindBomb, core.EffectLineBomb, 15, 1500 + 15*75},
		{core.KindBomb, core.KindBomb, core.EffectMegaBomb, 25, 2000 + 25*100},
		{core.KindRowClear, core.KindRowClear, core.EffectBlock, 9, 500 + 9*25},
		{core.KindColumnClear, core.KindBomb, core.EffectLineBomb, 15, 1500 + 15*75},
		// Blue and yellow tie on the neighbours of both cells; blue wins with six tiles.
		{core.KindRainbow, core.KindRowClear, core.EffectRainbowLine, 6, 3000 + 6*100},
		{core.KindRainbow, core.KindColumnClear, core.EffectRainbowLine, 6, 3000 + 6*100},
		{core.KindRainbow, core.KindBomb, core.EffectRainbowBomb, 6, 5000 + 6*150},
	}

	for _, tt := range tests {
		t.Run(tt.a.String()+"+"+tt.c.String(), func(t *testing.T) {
			b := core.MustParseBoard(comboBoard)
			b.Set(core.C(2, 2), tt.a)
			b.Set(core.C(3, 2), tt.c)

			res, err := core.Combine(b, core.C(2, 2), core.C(3, 2), core.NewRand(1))
			if err != nil {
				t.Fatalf("Combine failed: %v", err)
			}
			if res.Effect != tt.effect {
				t.Errorf("effect: expected %s, got %s", tt.effect, res.Effect)
			}
			if len(res.Affected) != tt.affected {
				t.Errorf("affected: expected %d, got %d", tt.affected, len(res.Affected))
			}
			if res.Score != tt.score {
				t.Errorf("score: expected %d, got %d", tt.score, res.Score)
			}
			sources := []core.Coord{core.C(2, 2), core.C(3, 2)}
			if !reflect.DeepEqual(res.Sources, sources) {
				t.Errorf("sources: expected %v, got %v", sources, res.Sources)
			}
			if tt.a == core.KindRainbow {
				for _, c := range res.Affected {
					if b.Get(c) != core.KindBlue {
						t.Errorf("non-target cell %v (%s) in affected set", c, b.Get(c))
					}
				}
			}
		})
	}
}

func TestCombineIsSymmetric(t *testing.T) {
	specials := core.SpecialKinds()
	pairs := [][2]core.Coord{
		{core.C(2, 2), core.C(3, 2)},
		{core.C(1, 1), core.C(1, 2)},
	}

	for _, ka := range specials {
		for _, kc := range specials {
			for _, p := range pairs {
				b := core.MustParseBoard(comboBoard)
				b.Set(p[0], ka)
				b.Set(p[1], kc)

				ab, err := core.Combine(b, p[0], p[1], core.NewRand(99))
				if err != nil {
					t.Fatalf("Combine(%s,%s) failed: %v", ka, kc, err)
				}
				ba, err := core.Combine(b, p[1], p[0], core.NewRand(99))
				if err != nil {
					t.Fatalf("Combine(%s,%s) failed: %v", kc, ka, err)
				}
				if !reflect.DeepEqual(ab, ba) {
					t.Errorf("%s+%s at %v: combine(A,B) != combine(B,A)\n%+v\n%+v", ka, kc, p, ab, ba)
				}
			}
		}
	}
}

func TestCombineRejects(t *testing.T) {
	b := core.MustParseBoard(comboBoard)
	rng := core.NewRand(1)

	if _, err := core.Combine(b, core.C(2, 2), core.C(4, 2), rng); !errors.Is(err, core.ErrNotAdjacent) {
		t.Errorf("expected ErrNotAdjacent, got %v", err)
	}
	if _, err := core.Combine(b, core.C(0, 0), core.C(1, 0), rng); !errors.Is(err, core.ErrNotSpecial) {
		t.Errorf("expected ErrNotSpecial, got %v", err)
	}
	if _, err := core.Combine(b, core.C(4, 4), core.C(5, 4), rng); !errors.Is(err, core.ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
}

const chainBoard = `
-RGB|
RGBRG
|BRG-`

func TestPropagateChain(t *testing.T) {
	sc := core.DefaultScoring()
	tests := []struct {
		name     string
		maxDepth int
		chained  int
		depth    int
		affected int
		score    int
	}{
		{"disabled", 0, 0, 0, 5, 250},
		{"depth one", 1, 1, 1, 7, 250 + 150},
		{"full chain", 5, 3, 3, 12, 250 + 150 + 250 + 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := core.MustParseBoard(chainBoard)
			first, err := core.Activate(b, core.ActivationRequest{Cell: core.C(0, 0)}, sc)
			if err != nil {
				t.Fatalf("Activate failed: %v", err)
			}

			res := core.Propagate(b, first, tt.maxDepth, 1, sc)
			if res.Chained != tt.chained {
				t.Errorf("chained: expected %d, got %d", tt.chained, res.Chained)
			}
			if res.Depth != tt.depth {
				t.Errorf("depth: expected %d, got %d", tt.depth, res.Depth)
			}
			if len(res.Affected) != tt.affected {
				t.Errorf("affected: expected %d, got %d", tt.affected, len(res.Affected))
			}
			if res.Score != tt.score {
				t.Errorf("score: expected %d, got %d", tt.score, res.Score)
			}
			if core.FormatBoard(b) != core.FormatBoard(core.MustParseBoard(chainBoard)) {
				t.Error("Propagate modified the board")
			}
		})
	}
}

func TestRainbowLineSpawnsFire(t *testing.T) {
	tests := []struct {
		name     string
		maxDepth int
	}{
		{"chains enabled", 5},
		{"chains disabled", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := core.MustParseBoard(comboBoard)
			b.Set(core.C(2, 2), core.KindRainbow)
			b.Set(core.C(3, 2), core.KindRowClear)

			params := core.DefaultParams()
			params.MaxChainDepth = tt.maxDepth
			e := core.NewEngine(params, core.WithSeed(5))
			res, err := e.Combine(b, core.C(2, 2), core.C(3, 2))
			if err != nil {
				t.Fatalf("Combine failed: %v", err)
			}
			if res.Effect != core.EffectRainbowLine {
				t.Fatalf("effect: expected rainbow-line, got %s", res.Effect)
			}
			if len(res.Spawned) == 0 {
				t.Fatal("expected converted tiles")
			}
			if res.Chained != len(res.Spawned) {
				t.Errorf("every converted tile should fire once: chained=%d spawned=%d", res.Chained, len(res.Spawned))
			}
			if res.Depth != 1 {
				t.Errorf("depth: expected 1, got %d", res.Depth)
			}
			for _, s := range res.Spawned {
				if !s.Kind.IsLine() {
					t.Errorf("spawned %s at %v, want a line clear", s.Kind, s.Pos)
				}
			}
		})
	}
}
