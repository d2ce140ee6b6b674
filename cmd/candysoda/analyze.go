package main

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/lausiv7/candysoda-sub005/internal/games/match3/core"
)

var (
	flagBoard    string
	flagColors   int
	flagShowMove int
	flagValidate bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Analyze a board layout",
	Long: `Analyze a board read from a file, or from stdin when no file is given.
The layout uses one letter per cell as printed by 'candysoda generate'.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		cfg := loadConfig()
		b := readBoard(path, flagColors)
		e := newEngine(cfg, seedOrNow())

		fmt.Printf("Board %dx%d, %d colors, %s\n", b.W, b.H, b.Colors, core.DetectDeadlock(b))
		if core.HasMatch(b) {
			fmt.Println("Warning: board holds unresolved matches")
		}
		printAnalysis(cmd.OutOrStdout(), e.Analyze(b))

		if flagShowMove > 0 {
			moves := e.FindMoves(b)
			slices.SortStableFunc(moves, func(a, b core.Move) int { return cmp.Compare(b.Score, a.Score) })
			fmt.Printf("\nTop %d of %d moves:\n", min(flagShowMove, len(moves)), len(moves))
			for _, m := range moves[:min(flagShowMove, len(moves))] {
				printMove(m)
			}
		}

		if flagValidate {
			settings := cfg.Settings()
			settings.Width, settings.Height, settings.Colors = b.W, b.H, b.Colors
			if err := e.Validate(b, settings); err != nil {
				fail("board is not valid: %v", err)
			}
			fmt.Println("\nBoard is valid.")
		}
	},
}

func printMove(m core.Move) {
	fmt.Printf("  %v -> %v  score %d", m.From, m.To, m.Score)
	if m.SpecialsCreated > 0 {
		fmt.Printf("  +%d special", m.SpecialsCreated)
	}
	if m.ChainPotential > 0 {
		fmt.Printf("  chain %d", m.ChainPotential)
	}
	fmt.Println()
}

func init() {
	analyzeCmd.Flags().IntVar(&flagColors, "colors", 0, "Color count of the layout (0 infers it)")
	analyzeCmd.Flags().IntVarP(&flagShowMove, "moves", "m", 0, "List the N best moves")
	analyzeCmd.Flags().BoolVar(&flagValidate, "validate", false, "Check the board against the configured generation rules")
}
