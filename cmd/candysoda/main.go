// candysoda deals, analyzes and plays match-3 tile puzzle boards in the
// terminal.
//
// Usage:
//
//	candysoda list                  - List board profiles and level files
//	candysoda generate              - Deal boards and store them with their analysis
//	candysoda analyze [file]        - Analyze a board layout
//	candysoda hint [file]           - Suggest a move for a board layout
//	candysoda swap <x,y> <x,y>      - Resolve one swap on a board layout
//	candysoda fire <x,y> [x,y]      - Fire a special tile on a board layout
//	candysoda play                  - Play a table interactively
//	candysoda history               - Show dealt boards and played tables
//	candysoda scores [profile]      - Show high scores
//	candysoda config                - Print the engine configuration
//
// Global flags:
//
//	--seed <value>        - Set RNG seed for reproducible boards
//	--config <path>       - Engine config YAML
//	--difficulty <preset> - easy, normal or hard
//	--db <path>           - Set database path (default: ~/.candysoda/candysoda.db)
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Register the built-in board profiles
	_ "github.com/lausiv7/candysoda-sub005/internal/games/match3"
)

var (
	// Global flags
	flagSeed       int64
	flagConfig     string
	flagDifficulty string
	flagDBPath     string
	flagLogLevel   string
	flagNoColor    bool
)

// logger is configured by the root command before any subcommand runs.
var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "candysoda"})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "candysoda",
	Short: "candysoda - match-3 boards in your terminal",
	Long: `candysoda deals, analyzes and plays match-3 tile puzzle boards.

Available commands:
  list      - Show board profiles and level files
  generate  - Deal boards and store them with their analysis
  analyze   - Analyze a board layout
  hint      - Suggest a move for a board layout
  swap      - Resolve one swap on a board layout
  fire      - Fire a special tile on a board layout
  play      - Play a table interactively
  history   - Show dealt boards and played tables
  scores    - View high scores
  config    - Print the engine configuration

Examples:
  candysoda list
  candysoda generate --profile spiral --count 3
  candysoda generate --seed 42 | candysoda analyze
  candysoda play --profile mini --moves 20
  candysoda scores classic`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogger,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to engine config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.candysoda/candysoda.db", "Path to database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored board output")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(hintCmd)
	rootCmd.AddCommand(swapCmd)
	rootCmd.AddCommand(fireCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// setupLogger applies --log-level to the shared logger.
func setupLogger(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger.SetLevel(level)
	logger.SetReportTimestamp(level <= log.DebugLevel)
	return nil
}
