package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lausiv7/candysoda-sub005/internal/config"
	"github.com/lausiv7/candysoda-sub005/internal/platform/tui"
	"github.com/lausiv7/candysoda-sub005/internal/storage"
	"github.com/lausiv7/candysoda-sub005/internal/tables"
)

var (
	flagMoveLimit   int
	flagTargetScore int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a table interactively",
	Long: `Open a table and play it in the terminal. The table ends when you quit,
when --moves swaps have been made or when --target points are reached.
The result is recorded on the profile's scoreboard.`,
	Run: func(cmd *cobra.Command, args []string) {
		if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
			fail("play needs an interactive terminal")
		}

		cfg := loadConfig()
		src := resolveSource(cfg)

		tcfg := tables.DefaultConfig()
		tcfg.MoveLimit = flagMoveLimit
		tcfg.TargetScore = flagTargetScore

		// The alternate screen owns the terminal while playing
		mgr := tables.NewManager(tcfg, cfg.Params(), log.New(io.Discard))
		store := openStore()
		if store != nil {
			defer store.Close()
			mgr.SetResultSaver(store)
		}

		opts := tables.OpenOptions{
			Profile: src.profile,
			Seed:    flagSeed,
			Board:   src.layout,
		}
		if cfg.Difficulty.Enabled && src.layout == nil {
			opts.Scaler = config.NewDifficultyManager(cfg.Difficulty, src.profile.Settings)
		}

		t := mgr.Open(opts)
		if store != nil {
			rec := storage.NewBoardRecord(src.profile.ID, t.Seed(), t.LastDeal())
			if id, err := store.SaveBoard(rec); err != nil {
				logger.Warn("could not save board", "error", err)
			} else if err := store.SaveAnalysis(id, t.Analyze()); err != nil {
				logger.Warn("could not save analysis", "board", id, "error", err)
			}
		}

		theme := tui.DefaultTheme()
		if flagNoColor {
			theme = tui.MonochromeTheme()
		}
		if err := tui.Run(t, theme); err != nil {
			fail("%v", err)
		}

		if _, err := t.Close(); err != nil && !errors.Is(err, tables.ErrTableClosed) {
			fail("%v", err)
		}

		stats := t.Stats()
		fmt.Printf("Table %s (%s, seed %d) ended: %s\n", t.ID().Short(), t.Profile(), t.Seed(), t.EndReason())
		fmt.Printf("Score %d in %d moves, %d cascades", stats.Score, stats.Moves, stats.Cascades)
		if stats.Shuffles > 0 {
			fmt.Printf(", %d shuffles", stats.Shuffles)
		}
		if stats.Regenerations > 0 {
			fmt.Printf(", %d new boards", stats.Regenerations)
		}
		fmt.Println()

		if store != nil && stats.Moves > 0 {
			if high, err := store.HighScore(t.Profile()); err == nil && high == stats.Score {
				fmt.Println("New high score!")
			}
		}
	},
}

func init() {
	addSourceFlags(playCmd)
	playCmd.Flags().IntVarP(&flagMoveLimit, "moves", "m", 0, "End the table after N swaps (0 = unlimited)")
	playCmd.Flags().IntVarP(&flagTargetScore, "target", "t", 0, "End the table at this score (0 = unlimited)")
}
