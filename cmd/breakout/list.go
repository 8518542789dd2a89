package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List gameplay modes and levels",
	Long:  `Shows the registered gameplay modes and the built-in brick layouts.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	modes := registry.List()

	fmt.Println("Modes:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, m := range modes {
		if len(m.ID) > maxIDLen {
			maxIDLen = len(m.ID)
		}
	}

	fmt.Printf("  %-*s  %-14s  %s\n", maxIDLen, "ID", "Title", "Description")
	fmt.Printf("  %-*s  %-14s  %s\n", maxIDLen, "--", "-----", "-----------")
	for _, m := range modes {
		fmt.Printf("  %-*s  %-14s  %s\n", maxIDLen, m.ID, m.Title, m.Description)
	}

	fmt.Println()
	fmt.Printf("Levels: %s\n", strings.Join(breakout.LevelIDs(), ", "))
	fmt.Println()
	fmt.Println("Run 'breakout play --mode <id> --level <level>' to play.")
}
