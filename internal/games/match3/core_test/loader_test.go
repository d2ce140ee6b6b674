package core_test

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/lausiv7/candysoda-sub005/internal/games/match3/core"
	"github.com/lausiv7/candysoda-sub005/internal/games/match3/levels"
)

// getTestdataPath returns path to testdata/levels.
func getTestdataPath() string {
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Dir(filename)
	return filepath.Join(dir, "..", "testdata", "levels")
}

func TestLoaderLoadAll(t *testing.T) {
	loader := levels.NewLoader(getTestdataPath())

	lvls, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	// broken.yaml and notes.txt are skipped.
	if len(lvls) != 4 {
		t.Errorf("expected 4 levels, got %d", len(lvls))
	}
	if len(loader.Invalid) != 1 {
		t.Errorf("expected broken.yaml reported invalid, got %v", loader.Invalid)
	}
	if _, ok := loader.Invalid[filepath.Join(getTestdataPath(), "broken.yaml")]; !ok {
		t.Errorf("broken.yaml missing from %v", loader.Invalid)
	}

	for i := 1; i < len(lvls); i++ {
		if lvls[i-1].ID >= lvls[i].ID {
			t.Errorf("levels not sorted: %s >= %s", lvls[i-1].ID, lvls[i].ID)
		}
	}
}

func TestLoaderLoadGeneratedLevel(t *testing.T) {
	loader := levels.NewLoader(getTestdataPath())

	lvl, err := loader.LoadByID("01-meadow")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}
	if lvl.Name != "Meadow" || lvl.Metadata["author"] != "candysoda" {
		t.Errorf("unexpected level header %q %v", lvl.Name, lvl.Metadata)
	}
	if lvl.Settings.Width != 7 || lvl.Settings.Height != 7 || lvl.Settings.Colors != 4 {
		t.Errorf("unexpected settings %+v", lvl.Settings)
	}
	if lvl.Layout != nil {
		t.Error("generated level should have no layout")
	}

	e := core.NewEngine(core.DefaultParams(), core.WithSeed(1))
	res := lvl.Board(e)
	if res.Board.W != 7 || res.Board.H != 7 {
		t.Errorf("expected 7x7 board, got %dx%d", res.Board.W, res.Board.H)
	}
	if !core.HasLegalMove(res.Board) {
		t.Error("level board should be solvable")
	}
}

func TestLoaderConstraints(t *testing.T) {
	loader := levels.NewLoader(getTestdataPath())

	lvl, err := loader.LoadByID("02-walls")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}
	cons := lvl.Constraints
	if len(cons.Obstacles) != 4 {
		t.Errorf("expected 4 obstacles, got %d", len(cons.Obstacles))
	}
	if len(cons.Specials) != 1 || cons.Specials[0].Kind != core.KindBomb {
		t.Errorf("expected one bomb, got %+v", cons.Specials)
	}
	if len(cons.Fixed) != 1 || cons.Fixed[0].Kind != core.KindRed || cons.Fixed[0].Pos != core.C(1, 1) {
		t.Errorf("expected red at (1,1), got %+v", cons.Fixed)
	}

	res := lvl.Board(core.NewEngine(core.DefaultParams(), core.WithSeed(2)))
	if res.Fallback {
		t.Fatalf("unexpected fallback: %v", res.LastError)
	}
	if got := res.Board.CoordsWhere(func(k core.Kind) bool { return k == core.KindObstacle }); len(got) != 4 {
		t.Errorf("expected the 4 listed obstacles only, got %v", got)
	}
}

func TestLoaderPatternAndSymmetry(t *testing.T) {
	loader := levels.NewLoader(getTestdataPath())

	lvl, err := loader.LoadByID("03-mirror")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}
	if lvl.Settings.Pattern != core.PatternDiamond || lvl.Settings.Symmetry != core.SymmetryVertical {
		t.Errorf("unexpected pattern/symmetry %q/%q", lvl.Settings.Pattern, lvl.Settings.Symmetry)
	}
}

func TestLoaderHandmadeLayout(t *testing.T) {
	loader := levels.NewLoader(getTestdataPath())

	lvl, err := loader.LoadByID("04-handmade")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}
	if lvl.Layout == nil {
		t.Fatal("expected a layout")
	}
	if lvl.Layout.Get(core.C(2, 1)) != core.KindObstacle || lvl.Layout.Get(core.C(2, 2)) != core.KindRowClear {
		t.Errorf("layout not parsed:\n%s", core.FormatBoard(lvl.Layout))
	}

	res := lvl.Board(core.NewEngine(core.DefaultParams(), core.WithSeed(1)))
	res.Board.Set(core.C(0, 0), core.KindEmpty)
	if lvl.Layout.Get(core.C(0, 0)) != core.KindRed {
		t.Error("level board should be a copy of the layout")
	}
}

func TestLoaderMissingLevel(t *testing.T) {
	loader := levels.NewLoader(getTestdataPath())
	if _, err := loader.LoadByID("nope"); !errors.Is(err, levels.ErrLevelNotFound) {
		t.Errorf("expected ErrLevelNotFound, got %v", err)
	}
}

func TestLoaderDuplicateIDs(t *testing.T) {
	dir := t.TempDir()
	level := []byte("id: twin\nsize:\n  w: 5\n  h: 5\n")
	for _, name := range []string{"a.yaml", "b.yml"} {
		if err := os.WriteFile(filepath.Join(dir, name), level, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := levels.NewLoader(dir).LoadAll(); err == nil {
		t.Error("expected an error for duplicate level ids")
	}
}

func TestLoaderMissingDirectory(t *testing.T) {
	_, err := levels.NewLoader(filepath.Join(t.TempDir(), "none")).ListIDs()
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected a not-exist error, got %v", err)
	}
}
