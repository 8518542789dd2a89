package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/highscore"
	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var flagScoresTUI bool

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the highscore table",
	Long: `Display the top 10 highscore table.

With --tui an interactive scoreboard opens instead, with the highscore
table and the best recorded session of every mode.

Examples:
  breakout scores
  breakout scores --tui
  breakout scores --scores-file ./highscores.txt`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Open the interactive scoreboard")
}

func runScores(_ *cobra.Command, _ []string) error {
	scores, err := highscore.Open(flagScoresFile)
	if err != nil {
		return err
	}

	if flagScoresTUI {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			fmt.Printf("Warning: could not open history database: %v\n", err)
		} else {
			defer store.Close()
		}
		rc := runtimeConfig()
		return tui.RunScoreboard(scores, store, rc.ScreenW, rc.ScreenH)
	}

	entries := scores.Entries()
	fmt.Println("High Scores")
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'breakout play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-9s  %-12s  %s\n", "#", "Score", "Date", "Name")
	fmt.Printf("  %-4s  %-9s  %-12s  %s\n", "-", "-----", "----", "----")
	for i, e := range entries {
		fmt.Printf("  %-4d  %-9d  %-12s  %s\n", i+1, e.Score, e.Date, e.Name)
	}
	return nil
}
