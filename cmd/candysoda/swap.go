package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lausiv7/candysoda-sub005/internal/games/match3/core"
	"github.com/lausiv7/candysoda-sub005/internal/platform/tui"
)

var flagSteps bool

var swapCmd = &cobra.Command{
	Use:   "swap <x,y> <x,y>",
	Short: "Resolve one swap on a board layout",
	Long: `Swap two adjacent cells of a board read from --board (stdin by default)
and resolve every cascade. The resulting layout is printed last, so the
output can be piped into another swap.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		from, err := parseCoord(args[0])
		if err != nil {
			fail("%v", err)
		}
		to, err := parseCoord(args[1])
		if err != nil {
			fail("%v", err)
		}

		cfg := loadConfig()
		b := readBoard(flagBoard, flagColors)
		res, err := newEngine(cfg, seedOrNow()).Swap(b, from, to)
		if err != nil {
			fail("swap %v -> %v rejected: %v", from, to, err)
		}
		printResolution(res)
	},
}

var fireCmd = &cobra.Command{
	Use:   "fire <x,y> [x,y]",
	Short: "Fire a special tile on a board layout",
	Long: `Activate the special tile at the first cell of a board read from --board
(stdin by default) and resolve the cascades that follow. A rainbow takes the
color of the tile at the optional second cell.`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		cell, err := parseCoord(args[0])
		if err != nil {
			fail("%v", err)
		}
		var target *core.Coord
		if len(args) == 2 {
			t, err := parseCoord(args[1])
			if err != nil {
				fail("%v", err)
			}
			target = &t
		}

		cfg := loadConfig()
		b := readBoard(flagBoard, flagColors)
		res, err := newEngine(cfg, seedOrNow()).Trigger(b, cell, target)
		if err != nil {
			fail("cannot fire %v: %v", cell, err)
		}
		printResolution(res)
	},
}

// printResolution reports a resolved move and prints the final board.
func printResolution(res core.SwapResult) {
	for _, a := range res.Activations {
		fmt.Printf("Activated %s at %v: %d cells, %d points", a.Effect, a.Origin, len(a.Affected), a.Score)
		if a.Chained > 0 {
			fmt.Printf(", %d chained", a.Chained)
		}
		fmt.Println()
	}
	if flagSteps {
		for i, step := range res.Steps {
			fmt.Printf("Cascade %d: %d matches, %d cleared, %d points", i+1, len(step.Matches), step.Cleared, step.Score)
			for _, sp := range step.Created {
				fmt.Printf(", created %s", sp.Kind)
			}
			fmt.Println()
		}
	}
	fmt.Printf("Score %d, %d cascades, board %s\n", res.Score, res.Cascades, res.State)
	if res.Repair != nil {
		fmt.Printf("Board was deadlocked; repaired by %s: %s\n", res.Repair.Method, res.Repair.Message)
	}
	fmt.Println(renderBoard(res.Board, tui.Marks{}))
}

func init() {
	for _, c := range []*cobra.Command{swapCmd, fireCmd} {
		c.Flags().StringVarP(&flagBoard, "board", "b", "", "Board layout file (default stdin)")
		c.Flags().IntVar(&flagColors, "colors", 0, "Color count of the layout (0 infers it)")
		c.Flags().BoolVar(&flagSteps, "steps", false, "Print every cascade step")
	}
}
