package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lausiv7/candysoda-sub005/internal/config"
	"github.com/lausiv7/candysoda-sub005/internal/games/match3"
	"github.com/lausiv7/candysoda-sub005/internal/games/match3/core"
	"github.com/lausiv7/candysoda-sub005/internal/games/match3/levels"
	"github.com/lausiv7/candysoda-sub005/internal/platform/tui"
	"github.com/lausiv7/candysoda-sub005/internal/registry"
	"github.com/lausiv7/candysoda-sub005/internal/storage"
)

// configProfileID names the profile built from the engine config's board
// section.
const configProfileID = "config"

// Board source flags, shared by generate and play.
var (
	flagProfile   string
	flagLevel     string
	flagLevelsDir string
)

func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagProfile, "profile", configProfileID,
		fmt.Sprintf("Board profile (%q uses the engine config, see 'candysoda list')", configProfileID))
	cmd.Flags().StringVar(&flagLevel, "level", "", "Level ID to load from --levels-dir")
	cmd.Flags().StringVar(&flagLevelsDir, "levels-dir", "~/.candysoda/levels", "Directory holding level files")
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// expandHome expands a leading ~ to the home directory.
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// loadConfig loads the engine config and applies --difficulty.
func loadConfig() config.EngineConfig {
	cfg, err := config.LoadEngine(flagConfig)
	if err != nil {
		fail("%v", err)
	}
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			fail("%v", err)
		}
		config.ApplyPreset(&cfg, preset)
	}
	return cfg
}

// seedOrNow returns --seed, or a clock-based seed when it is 0.
func seedOrNow() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

func newEngine(cfg config.EngineConfig, seed int64) *core.Engine {
	return core.NewEngine(cfg.Params(), core.WithSeed(seed), core.WithLogger(logger))
}

// boardSource is where boards come from: a profile, and for hand-made
// levels a fixed first layout.
type boardSource struct {
	profile registry.Profile
	layout  *core.Board
}

// resolveSource turns --profile and --level into a board source.
func resolveSource(cfg config.EngineConfig) boardSource {
	if flagLevel != "" {
		loader := levels.NewLoader(expandHome(flagLevelsDir))
		lvl, err := loader.LoadByID(flagLevel)
		if err != nil {
			fail("%v", err)
		}
		return boardSource{
			profile: registry.Profile{
				ID:          "level:" + lvl.ID,
				Title:       lvl.Name,
				Settings:    lvl.Settings,
				Constraints: lvl.Constraints,
			},
			layout: lvl.Layout,
		}
	}

	if flagProfile == "" || flagProfile == configProfileID {
		return boardSource{profile: registry.Profile{
			ID:       configProfileID,
			Title:    "Engine configuration",
			Settings: cfg.Settings(),
		}}
	}

	profile, err := registry.Create(flagProfile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: unknown profile %q\n", flagProfile)
		fmt.Fprintf(os.Stderr, "Run 'candysoda list' to see available profiles (default %q).\n", match3.DefaultProfile)
		os.Exit(1)
	}
	return boardSource{profile: profile}
}

// openStore opens the database, or returns nil with a warning.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// colorEnabled reports whether boards are drawn with colors.
func colorEnabled() bool {
	return !flagNoColor && term.IsTerminal(int(os.Stdout.Fd()))
}

// renderBoard draws a board for stdout: colored on a terminal, otherwise
// the plain layout that analyze and hint read back.
func renderBoard(b *core.Board, marks tui.Marks) string {
	if colorEnabled() {
		return tui.RenderBoard(b, tui.DefaultTheme(), marks)
	}
	return core.FormatBoard(b)
}

// readBoard reads a layout from the named file, or stdin for "" and "-".
func readBoard(path string, colors int) *core.Board {
	var data []byte
	var err error
	if path == "" || path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		fail("cannot read board: %v", err)
	}

	b, err := core.ParseBoard(string(data), colors)
	if err != nil {
		fail("%v", err)
	}
	return b
}

// parseCoord parses "x,y".
func parseCoord(s string) (core.Coord, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return core.Coord{}, fmt.Errorf("want x,y, got %q", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return core.Coord{}, fmt.Errorf("bad column in %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return core.Coord{}, fmt.Errorf("bad row in %q: %w", s, err)
	}
	return core.C(x, y), nil
}

// printAnalysis writes a board analysis as text.
func printAnalysis(w io.Writer, a core.BoardAnalysis) {
	fmt.Fprintf(w, "Moves:        %d (%d create specials)\n", a.TotalMoves, a.SpecialMoves)
	fmt.Fprintf(w, "Move score:   avg %.1f, best %d\n", a.AverageScore, a.BestScore)
	fmt.Fprintf(w, "Difficulty:   %d/100\n", a.Difficulty)
	fmt.Fprintf(w, "Solvability:  %d/100\n", a.Solvability)

	var colors []string
	for _, k := range core.Palette(core.MaxColors) {
		if n, ok := a.ColorCounts[k]; ok {
			colors = append(colors, fmt.Sprintf("%s %d", k, n))
		}
	}
	fmt.Fprintf(w, "Colors:       %s\n", strings.Join(colors, ", "))

	for _, r := range a.Recommendations {
		fmt.Fprintf(w, "  - %s\n", r)
	}
}
