package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/registry"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history [mode]",
	Short: "Show recorded sessions",
	Long: `Without a mode, list the most recent rounds of every mode.
With a mode, list that mode's best rounds and its totals.

Examples:
  breakout history
  breakout history classic
  breakout history duo --limit 5`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Rows to show")
}

func runHistory(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if len(args) == 0 {
		records, err := store.RecentSessions(flagHistoryLimit)
		if err != nil {
			return err
		}
		fmt.Println("Recent sessions")
		fmt.Println()
		printRecords(records)
		return nil
	}

	mode, err := registry.Get(args[0])
	if err != nil {
		return err
	}

	records, err := store.TopSessions(mode.ID, flagHistoryLimit)
	if err != nil {
		return err
	}
	fmt.Printf("Best sessions - %s\n", mode.Title)
	fmt.Println()
	printRecords(records)

	stats, err := store.GetModeStats(mode.ID)
	if err != nil {
		return err
	}
	if stats.Rounds > 0 {
		fmt.Println()
		fmt.Printf("Rounds: %d  Wins: %d  Best: %d  Average: %.0f  Played: %s\n",
			stats.Rounds, stats.Wins, stats.BestScore, stats.AvgScore, stats.PlayTime.Round(time.Second))
		fmt.Printf("Last played: %s\n", stats.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

func printRecords(records []storage.SessionRecord) {
	if len(records) == 0 {
		fmt.Println("No sessions recorded yet.")
		return
	}

	fmt.Printf("  %-16s  %-8s  %-9s  %-7s  %-7s  %-12s  %s\n", "Date", "Mode", "Level", "Result", "Score", "Player", "Time")
	fmt.Printf("  %-16s  %-8s  %-9s  %-7s  %-7s  %-12s  %s\n", "----", "----", "-----", "------", "-----", "------", "----")
	for _, r := range records {
		fmt.Printf("  %-16s  %-8s  %-9s  %-7s  %-7d  %-12s  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Mode, r.Level, r.Outcome, r.Score, r.Player, r.Duration.Round(time.Second))
	}
}
