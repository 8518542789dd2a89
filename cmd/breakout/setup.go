package main

import (
	"fmt"
	"io"
	"os"
	"os/user"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-breakout/internal/app"
	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/highscore"
	"github.com/vovakirdan/tui-breakout/internal/platform/sound"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

// runtimeConfig detects the terminal size and folds in the global flags.
func runtimeConfig() core.RuntimeConfig {
	rc := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rc.ScreenW, rc.ScreenH = w, h
	}
	rc.TickRate = flagFPS
	rc.Seed = flagSeed
	return rc
}

// newLogger builds the charmbracelet logger used everywhere.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "breakout",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// fileLogger logs to --log-file; the terminal belongs to the game.
// The closer releases the file and is never nil.
func fileLogger() (*log.Logger, io.Closer) {
	if flagLogFile == "" {
		return newLogger(io.Discard), io.NopCloser(nil)
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		return newLogger(io.Discard), io.NopCloser(nil)
	}
	return newLogger(f), f
}

// loadConfig loads the config and applies preset and tick overrides.
func loadConfig() (config.BreakoutConfig, error) {
	cfg, err := config.LoadBreakout(flagConfig)
	if err != nil {
		return cfg, err
	}

	if flagDifficulty != "" {
		preset := config.ParsePreset(flagDifficulty)
		if preset == "" {
			return cfg, fmt.Errorf("unknown difficulty %q (easy, normal, hard, fixed)", flagDifficulty)
		}
		config.ApplyBreakoutPreset(&cfg, preset)
	}

	switch {
	case flagTickMS > 0:
		cfg.Gameplay.TickMS = flagTickMS
	case runtimeConfig().TickMS() > 0:
		cfg.Gameplay.TickMS = runtimeConfig().TickMS()
	}
	cfg.Validate()
	return cfg, nil
}

// setup builds the services. History, highscores and sound are optional:
// failures become warnings and play continues without them.
func setup(logger *log.Logger) (*app.Services, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	if flagLevel != "" {
		if _, ok := breakout.GetLevelByID(flagLevel, cfg.Layout.Cols); !ok {
			return nil, nil, fmt.Errorf("unknown level %q (run 'breakout list')", flagLevel)
		}
	}

	svc := &app.Services{
		Config: cfg,
		Level:  flagLevel,
		Seed:   flagSeed,
		Logger: logger,
	}

	if store, err := storage.Open(flagDBPath); err != nil {
		logger.Warn("could not open history database", "error", err)
	} else {
		svc.Store = store
	}

	if scores, err := highscore.Open(flagScoresFile); err != nil {
		logger.Warn("could not open highscore table", "error", err)
	} else {
		svc.Scores = scores
	}

	var player *sound.Player
	if flagSound {
		player = sound.New(0.5)
		if err := player.Init(); err != nil {
			// Non-fatal, game can run without sound
			logger.Warn("audio initialization failed", "error", err)
		} else {
			svc.OnEvent = player.Handle
		}
	}

	cleanup := func() {
		if player != nil {
			player.Close()
		}
		svc.Close()
	}
	return svc, cleanup, nil
}

// playerName returns --name, or the login name.
func playerName() string {
	if flagName != "" {
		return flagName
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "PLAYER"
}
