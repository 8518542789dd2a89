// Package app wires the optional collaborators around gameplay sessions:
// the session history, the highscore table, sound and logging. Every
// collaborator may be nil; failures are logged and play goes on.
package app

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/highscore"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

// Services bundles what a front end needs to start and record sessions.
type Services struct {
	Config  config.BreakoutConfig
	Level   string // Overrides Config.Level when set
	Seed    int64
	Store   *storage.Store
	Scores  *highscore.Manager
	Logger  *log.Logger
	OnEvent func(breakout.Event)
}

func (s *Services) logger() *log.Logger {
	if s.Logger == nil {
		return log.New(io.Discard)
	}
	return s.Logger
}

// Options builds session options for player.
func (s *Services) Options(player string) breakout.Options {
	return breakout.Options{
		Config:   s.Config,
		Level:    s.Level,
		Seed:     s.Seed,
		Player:   player,
		Logger:   s.Logger,
		OnEvent:  s.OnEvent,
		OnResult: s.Record,
	}
}

// Play runs one gameplay session for player on term.
func (s *Services) Play(ctx context.Context, term breakout.Terminal, mode, player string) (breakout.Result, error) {
	return breakout.RunGameplay(ctx, term, mode, s.Options(player))
}

// Record saves a finished round to the history.
func (s *Services) Record(res breakout.Result) {
	if s.Store == nil {
		return
	}
	if _, err := s.Store.SaveSession(ToRecord(res)); err != nil {
		s.logger().Warn("could not save session", "error", err)
	}
}

// ToRecord converts a round result to a history record.
func ToRecord(res breakout.Result) storage.SessionRecord {
	return storage.SessionRecord{
		SessionID: res.SessionID,
		Mode:      res.Mode,
		Level:     res.Level,
		Player:    res.Player,
		Outcome:   string(res.Outcome),
		Score:     res.Score,
		Lives:     res.Lives,
		Frames:    int64(res.Frames),
		Duration:  res.Duration,
	}
}

// Qualifies reports whether score earns a place in the highscore table.
func (s *Services) Qualifies(score int) bool {
	return s.Scores != nil && score > 0 && s.Scores.IsHighscore(score)
}

// AddHighscore enters score under name. Returns whether it was added.
func (s *Services) AddHighscore(score int, name string) bool {
	if !s.Qualifies(score) {
		return false
	}
	added, err := s.Scores.Add(score, name)
	if err != nil {
		s.logger().Warn("could not save highscore", "error", err)
	}
	return added
}

// Close releases the history database.
func (s *Services) Close() error {
	if s.Store == nil {
		return nil
	}
	return s.Store.Close()
}
