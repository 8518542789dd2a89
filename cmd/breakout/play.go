package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/app"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/platform/cell"
	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
	"github.com/vovakirdan/tui-breakout/internal/registry"
)

var (
	flagMode    string
	flagBackend string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play one game",
	Long: `Start playing right away, skipping the menu.

Controls:
  Left/Right, A/D  - Move paddle
  Down, S          - Stop paddle
  Space, W, Up     - Launch ball
  P                - Pause
  R                - Restart level
  Q, Esc, Ctrl+C   - Quit

In duo mode player one uses A/D/S and player two the arrows.

Backends:
  tea    - Bubble Tea program (default)
  tcell  - direct tcell cell canvas

Difficulty options:
  easy   - More lives, wider paddle, slower frames
  normal - Config values as loaded
  hard   - Fewer lives, narrower paddle, faster frames
  fixed  - No ball speed ramp

Examples:
  breakout play
  breakout play --mode duo
  breakout play --level fortress --difficulty hard
  breakout play --backend tcell --sound
  breakout play --config ./my-breakout.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMode, "mode", breakout.ModeClassic, "Gameplay mode (see 'breakout list')")
	playCmd.Flags().StringVar(&flagBackend, "backend", "tea", "Terminal backend: tea or tcell")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	if !registry.Exists(flagMode) {
		return fmt.Errorf("unknown mode %q (run 'breakout list')", flagMode)
	}

	rc := runtimeConfig()
	logger, logFile := fileLogger()
	defer logFile.Close()

	svc, cleanup, err := setup(logger)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	player := playerName()

	var res breakout.Result
	switch flagBackend {
	case "tea":
		res, err = tui.RunGame(ctx, rc.ScreenW, rc.ScreenH, func(ctx context.Context, term breakout.Terminal) (breakout.Result, error) {
			return svc.Play(ctx, term, flagMode, player)
		})
	case "tcell":
		res, err = playCell(ctx, svc, player)
	default:
		return fmt.Errorf("unknown backend %q (tea or tcell)", flagBackend)
	}
	if err != nil {
		return err
	}

	printResult(res)
	if svc.AddHighscore(res.Score, player) {
		fmt.Printf("New high score for %s!\n", player)
	}
	return nil
}

func playCell(ctx context.Context, svc *app.Services, player string) (breakout.Result, error) {
	term, err := cell.New()
	if err != nil {
		return breakout.Result{}, err
	}
	defer term.Close()
	return svc.Play(ctx, term, flagMode, player)
}

func printResult(res breakout.Result) {
	fmt.Printf("%s on %s: %s\n", res.Mode, res.Level, res.Outcome)
	fmt.Printf("  Score:  %d\n", res.Score)
	fmt.Printf("  Lives:  %d\n", res.Lives)
	fmt.Printf("  Frames: %d (%s)\n", res.Frames, res.Duration.Round(100*time.Millisecond))
}
