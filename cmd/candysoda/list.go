package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/lausiv7/candysoda-sub005/internal/games/match3"
	"github.com/lausiv7/candysoda-sub005/internal/games/match3/levels"
	"github.com/lausiv7/candysoda-sub005/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List board profiles and levels",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Profiles:")
		fmt.Printf("  %-14s %s\n", configProfileID, "Engine configuration (default)")
		for _, p := range registry.List() {
			marker := ""
			if p.ID == match3.DefaultProfile {
				marker = " *"
			}
			fmt.Printf("  %-14s %s%s\n", p.ID, p.Title, marker)
		}

		dir := expandHome(flagLevelsDir)
		ids, err := levels.NewLoader(dir).ListIDs()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return
			}
			fail("%v", err)
		}
		if len(ids) == 0 {
			return
		}
		fmt.Printf("\nLevels in %s:\n", dir)
		for _, id := range ids {
			fmt.Printf("  %s\n", id)
		}
	},
}

func init() {
	listCmd.Flags().StringVar(&flagLevelsDir, "levels-dir", "~/.candysoda/levels", "Directory holding level files")
}
