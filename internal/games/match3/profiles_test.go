package match3

import (
	"testing"

	"github.com/lausiv7/candysoda-sub005/internal/games/match3/core"
	"github.com/lausiv7/candysoda-sub005/internal/registry"
)

func TestProfilesRegistered(t *testing.T) {
	want := []string{
		"checkerboard", "classic", "cross", "diamond", "fortress",
		"kaleidoscope", "mini", "mirror", "obstacles", "specials", "spiral",
	}
	for _, id := range want {
		if !registry.Exists(id) {
			t.Errorf("profile %q not registered", id)
		}
	}
	if !registry.Exists(DefaultProfile) {
		t.Errorf("default profile %q not registered", DefaultProfile)
	}
}

func TestProfilesGenerateValidBoards(t *testing.T) {
	for _, info := range registry.List() {
		t.Run(info.ID, func(t *testing.T) {
			p, err := registry.Create(info.ID)
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			if p.ID != info.ID {
				t.Errorf("ID = %q, want %q", p.ID, info.ID)
			}

			e := core.NewEngine(core.DefaultParams(), core.WithSeed(11))
			res := e.Generate(p.Settings, p.Constraints)
			if res.Board == nil {
				t.Fatal("nil board")
			}
			if core.DetectDeadlock(res.Board) != core.StateStable {
				t.Errorf("board is deadlocked:\n%s", core.FormatBoard(res.Board))
			}
			if core.HasMatch(res.Board) {
				t.Errorf("board has pre-existing matches:\n%s", core.FormatBoard(res.Board))
			}
		})
	}
}

func TestFortressConstraints(t *testing.T) {
	p := NewFortress()
	e := core.NewEngine(core.DefaultParams(), core.WithSeed(3))
	res := e.Generate(p.Settings, p.Constraints)
	if res.Fallback {
		t.Skipf("generation fell back: %v", res.LastError)
	}

	for _, c := range p.Constraints.Obstacles {
		if got := res.Board.Get(c); got != core.KindObstacle {
			t.Errorf("cell %v = %v, want obstacle", c, got)
		}
	}
	if got := res.Board.Get(core.C(4, 4)); got != core.KindBomb {
		t.Errorf("center = %v, want bomb", got)
	}
}
