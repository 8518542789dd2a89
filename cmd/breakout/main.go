// breakout is a terminal Breakout clone.
//
// Usage:
//
//	breakout                 - Main menu: play, instructions, high scores
//	breakout play            - Play one game directly
//	breakout scores          - Show the highscore table
//	breakout history [mode]  - Show recorded sessions
//	breakout list            - List modes and levels
//	breakout serve           - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Frame rate (overrides gameplay.tick_ms)
//	--tick-ms <ms>        - Frame interval in milliseconds
//	--seed <value>        - RNG seed for reproducible launches
//	--db <path>           - Session history database (default: ~/.breakout/history.db)
//	--scores-file <path>  - Highscore table (default: ~/.breakout/highscores.txt)
//	--config <path>       - Custom config YAML
//	--difficulty <preset> - easy, normal, hard, fixed
//	--level <id>          - Brick layout
//	--log-file <path>     - Write logs here
//	--debug               - Debug logging
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
)

var (
	// Global flags
	flagFPS        int
	flagTickMS     int
	flagSeed       int64
	flagDBPath     string
	flagScoresFile string
	flagConfig     string
	flagDifficulty string
	flagLevel      string
	flagLogFile    string
	flagDebug      bool
	flagSound      bool
	flagName       string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "breakout",
	Short: "Breakout in your terminal",
	Long: `A terminal Breakout clone.

Without a subcommand the main menu opens: play, read the instructions or
browse the high scores.

Available commands:
  play     - Play one game directly
  scores   - Show the highscore table
  history  - Show recorded sessions
  list     - Show modes and levels
  serve    - Start SSH server for remote play

Examples:
  breakout
  breakout play --mode duo
  breakout play --backend tcell --level pyramid
  breakout serve --ssh :2222
  breakout history classic`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runMenu,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 0, "Frame rate (0 = use config tick)")
	pf.IntVar(&flagTickMS, "tick-ms", 0, "Frame interval in milliseconds (0 = use config)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.breakout/history.db", "Path to session history database")
	pf.StringVar(&flagScoresFile, "scores-file", "~/.breakout/highscores.txt", "Path to highscore table")
	pf.StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLevel, "level", "", "Brick layout (see 'breakout list')")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	pf.BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	pf.BoolVar(&flagSound, "sound", false, "Play sound effects")
	pf.StringVar(&flagName, "name", "", "Player name (default: $USER)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(serveCmd)
}

func runMenu(cmd *cobra.Command, _ []string) error {
	rc := runtimeConfig()
	logger, logFile := fileLogger()
	defer logFile.Close()

	svc, cleanup, err := setup(logger)
	if err != nil {
		return err
	}
	defer cleanup()

	return tui.RunApp(cmd.Context(), svc, playerName(), rc.ScreenW, rc.ScreenH)
}
