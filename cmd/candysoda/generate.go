package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lausiv7/candysoda-sub005/internal/config"
	"github.com/lausiv7/candysoda-sub005/internal/games/match3/core"
	"github.com/lausiv7/candysoda-sub005/internal/platform/tui"
	"github.com/lausiv7/candysoda-sub005/internal/storage"
)

var (
	flagCount   int
	flagNoSave  bool
	flagAtScore int
	flagAnalyze bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate boards from a profile or level",
	Long: `Generate one or more boards. With --count N the boards use seeds
seed, seed+1, ... so a batch can be reproduced. Boards are recorded in the
database together with their analysis unless --no-save is given.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		src := resolveSource(cfg)
		settings := src.profile.Settings
		if flagAtScore > 0 {
			dm := config.NewDifficultyManager(cfg.Difficulty, settings)
			dm.SetEnabled(true)
			settings = dm.Settings(flagAtScore)
		}

		var store *storage.Store
		if !flagNoSave {
			if store = openStore(); store != nil {
				defer store.Close()
			}
		}

		seed := seedOrNow()
		for i, n := 0, max(flagCount, 1); i < n; i++ {
			s := seed + int64(i)
			e := newEngine(cfg, s)

			var res core.GenerationResult
			if src.layout != nil {
				res = core.GenerationResult{Board: src.layout.Clone()}
			} else {
				res = e.Generate(settings, src.profile.Constraints)
			}

			if i > 0 {
				fmt.Println()
			}
			fmt.Printf("# profile=%s seed=%d attempts=%d", src.profile.ID, s, res.Attempts)
			if res.Fallback {
				fmt.Printf(" fallback (%v)", res.LastError)
			}
			fmt.Println()
			fmt.Println(renderBoard(res.Board, tui.Marks{}))

			analysis := e.Analyze(res.Board)
			if flagAnalyze {
				fmt.Println()
				printAnalysis(cmd.OutOrStdout(), analysis)
			}

			if store == nil {
				continue
			}
			id, err := store.SaveBoard(storage.NewBoardRecord(src.profile.ID, s, res))
			if err != nil {
				logger.Warn("could not save board", "error", err)
				continue
			}
			if err := store.SaveAnalysis(id, analysis); err != nil {
				logger.Warn("could not save analysis", "board", id, "error", err)
			}
			logger.Debug("board saved", "id", id)
		}
	},
}

func init() {
	addSourceFlags(generateCmd)
	generateCmd.Flags().IntVarP(&flagCount, "count", "n", 1, "Number of boards to generate")
	generateCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record boards in the database")
	generateCmd.Flags().IntVar(&flagAtScore, "at-score", 0, "Scale difficulty as if the player had reached this score")
	generateCmd.Flags().BoolVarP(&flagAnalyze, "analyze", "a", false, "Print an analysis after each board")
}
