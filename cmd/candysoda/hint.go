package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lausiv7/candysoda-sub005/internal/games/match3/core"
	"github.com/lausiv7/candysoda-sub005/internal/platform/tui"
)

var flagRepair bool

var hintCmd = &cobra.Command{
	Use:   "hint [file]",
	Short: "Suggest a move for a board layout",
	Long: `Suggest a move for a board read from a file or stdin. The hint is drawn
from the best-scoring moves, so different seeds may suggest different moves.
A deadlocked board has no hint; pass --repair to shuffle it first.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		cfg := loadConfig()
		cfg.Hints.Cooldown = 0
		b := readBoard(path, flagColors)
		e := newEngine(cfg, seedOrNow())

		if core.DetectDeadlock(b) == core.StateDeadlocked {
			if !flagRepair {
				fail("board is deadlocked, no move available (try --repair)")
			}
			rep := e.Repair(b)
			fmt.Printf("Repaired by %s after %d attempts: %s\n", rep.Method, rep.Attempts, rep.Message)
			if !rep.Success {
				fail("board could not be repaired")
			}
			b = rep.Board
		}

		m, ok := e.Hint(b)
		if !ok {
			fail("no move available")
		}
		fmt.Println(renderBoard(b, tui.Marks{Hint: []core.Coord{m.From, m.To}}))
		fmt.Printf("Swap %v with %v\n", m.From, m.To)
		printMove(m)
	},
}

func init() {
	hintCmd.Flags().IntVar(&flagColors, "colors", 0, "Color count of the layout (0 infers it)")
	hintCmd.Flags().BoolVar(&flagRepair, "repair", false, "Shuffle a deadlocked board before hinting")
}
