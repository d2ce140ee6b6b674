package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lausiv7/candysoda-sub005/internal/platform/tui"
	"github.com/lausiv7/candysoda-sub005/internal/storage"
)

var flagClearScores bool

var scoresCmd = &cobra.Command{
	Use:   "scores [profile]",
	Short: "Show high scores for a profile",
	Long: `Display the top 10 scores for a profile. Without a profile the
interactive scoreboard opens, or a per-profile summary is printed when
output is not a terminal.

Examples:
  candysoda scores classic
  candysoda scores level:tutorial
  candysoda scores mini --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete the scores of the profile")
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 0 {
		if flagClearScores {
			fail("--clear needs a profile")
		}
		if term.IsTerminal(int(os.Stdout.Fd())) {
			width, height := 80, 24
			if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
				width, height = w, h
			}
			theme := tui.DefaultTheme()
			if flagNoColor {
				theme = tui.MonochromeTheme()
			}
			if err := tui.RunScoreboard(store, theme, width, height); err != nil {
				fail("%v", err)
			}
			return
		}
		printAllStats(store)
		return
	}

	profile := args[0]
	if flagClearScores {
		if err := store.ClearScores(profile); err != nil {
			fail("%v", err)
		}
		fmt.Printf("Scores for %s cleared.\n", profile)
		return
	}

	scores, err := store.TopScores(profile, 10)
	if err != nil {
		fail("retrieving scores: %v", err)
	}

	fmt.Printf("High Scores - %s\n", profile)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'candysoda play --profile %s' to set the first high score!\n", profile)
		return
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, err := store.GetProfileStats(profile); err == nil {
		fmt.Printf("Best: %d  Games: %d  Average: %.0f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
	}
}

func printAllStats(store *storage.Store) {
	all, err := store.GetAllProfileStats()
	if err != nil {
		fail("%v", err)
	}
	if len(all) == 0 {
		fmt.Println("No scores recorded yet.")
		return
	}

	profiles := make([]string, 0, len(all))
	for p := range all {
		profiles = append(profiles, p)
	}
	sort.Strings(profiles)

	fmt.Printf("  %-16s  %-6s  %-10s  %s\n", "Profile", "Games", "Best", "Average")
	for _, p := range profiles {
		s := all[p]
		fmt.Printf("  %-16s  %-6d  %-10d  %.0f\n", p, s.GamesCount, s.HighScore, s.AvgScore)
	}
}
