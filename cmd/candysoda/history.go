package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lausiv7/candysoda-sub005/internal/games/match3/core"
	"github.com/lausiv7/candysoda-sub005/internal/platform/tui"
	"github.com/lausiv7/candysoda-sub005/internal/storage"
)

var (
	flagLimit         int
	flagHistoryFilter string
	flagShowBoard     string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show dealt boards and played tables",
	Run: func(cmd *cobra.Command, args []string) {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			fail("%v", err)
		}
		defer store.Close()

		if flagShowBoard != "" {
			showBoard(store, flagShowBoard)
			return
		}

		boards, err := store.RecentBoards(flagHistoryFilter, flagLimit)
		if err != nil {
			fail("%v", err)
		}
		if len(boards) == 0 {
			fmt.Println("No boards dealt yet.")
		} else {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tPROFILE\tSEED\tSIZE\tMOVES\tDIFFICULTY\tDEALT")
			for _, rec := range boards {
				moves, difficulty := "-", "-"
				if a, err := store.AnalysisFor(rec.ID); err == nil && a != nil {
					moves = fmt.Sprint(a.TotalMoves)
					difficulty = fmt.Sprint(a.Difficulty)
				}
				size := fmt.Sprintf("%dx%d/%d", rec.Width, rec.Height, rec.Colors)
				if rec.Fallback {
					size += " (fallback)"
				}
				fmt.Fprintf(w, "%.8s\t%s\t%d\t%s\t%s\t%s\t%s\n",
					rec.ID, rec.Profile, rec.Seed, size, moves, difficulty,
					rec.CreatedAt.Local().Format("2006-01-02 15:04"))
			}
			w.Flush()
		}

		results, err := store.RecentTableResults(flagLimit)
		if err != nil {
			fail("%v", err)
		}
		if len(results) == 0 {
			return
		}
		fmt.Println()
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TABLE\tPROFILE\tSCORE\tMOVES\tCASCADES\tSHUFFLES\tENDED\tTIME")
		for _, r := range results {
			if flagHistoryFilter != "" && r.Profile != flagHistoryFilter {
				continue
			}
			fmt.Fprintf(w, "%.8s\t%s\t%d\t%d\t%d\t%d\t%s\t%ds\n",
				r.TableID, r.Profile, r.Score, r.Moves, r.Cascades, r.Shuffles, r.EndReason, r.Duration)
		}
		w.Flush()
	},
}

// showBoard prints one stored board, found by ID or ID prefix.
func showBoard(store *storage.Store, id string) {
	rec, err := store.BoardByPrefix(id)
	if err != nil {
		fail("%v", err)
	}
	if rec == nil {
		fail("no board %q", id)
	}

	b, err := rec.Board()
	if err != nil {
		fail("%v", err)
	}
	fmt.Printf("# %s profile=%s seed=%d attempts=%d\n", rec.ID, rec.Profile, rec.Seed, rec.Attempts)
	fmt.Println(renderBoard(b, tui.Marks{}))

	a, err := store.AnalysisFor(rec.ID)
	if err != nil {
		fail("%v", err)
	}
	if a == nil {
		return
	}
	fmt.Println()
	printAnalysis(os.Stdout, core.BoardAnalysis{
		TotalMoves:      a.TotalMoves,
		AverageScore:    a.AverageScore,
		SpecialMoves:    a.SpecialMoves,
		BestScore:       a.BestScore,
		ColorCounts:     b.ColorCounts(),
		Difficulty:      a.Difficulty,
		Solvability:     a.Solvability,
		Recommendations: a.Recommendations,
	})
}

func init() {
	historyCmd.Flags().IntVarP(&flagLimit, "limit", "n", 10, "Number of entries to show")
	historyCmd.Flags().StringVarP(&flagHistoryFilter, "profile", "p", "", "Only show this profile")
	historyCmd.Flags().StringVar(&flagShowBoard, "show", "", "Print the stored board with this ID (or ID prefix)")
}
