package breakout

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/registry"
)

// Built-in modes.
const (
	ModeClassic = "classic"
	ModeDuo     = "duo"
)

func init() {
	registry.Register(registry.Mode{
		ID:          ModeClassic,
		Title:       "Breakout",
		Description: "one paddle, arrows or A/D",
		Paddles:     1,
	})
	registry.Register(registry.Mode{
		ID:          ModeDuo,
		Title:       "Breakout Duo",
		Description: "two paddles on one keyboard, A/D and arrows",
		Paddles:     2,
	})
}

// Outcome is how a round ended.
type Outcome string

const (
	OutcomeWon  Outcome = "won"
	OutcomeLost Outcome = "lost"
	OutcomeQuit Outcome = "quit"
)

// Result summarizes one completed round.
type Result struct {
	SessionID string
	Mode      string
	Level     string
	Player    string
	Outcome   Outcome
	Score     int
	Lives     int
	Frames    uint64
	Duration  time.Duration
}

// Options configures a session. The zero value plays the default level with
// the default config and a clock seed.
type Options struct {
	Config   config.BreakoutConfig
	Level    string // Overrides Config.Level when set
	Seed     int64  // 0 seeds from the clock
	Player   string
	Logger   *log.Logger
	OnEvent  func(Event)  // Called outside the lock, from worker goroutines
	OnResult func(Result) // Called from Run after each finished round
}

// Session owns one game: its state, its workers and its terminal.
type Session struct {
	ID string

	mode  registry.Mode
	cfg   config.BreakoutConfig
	level *Level
	term  Terminal
	log   *log.Logger
	rng   *rand.Rand

	player   string
	onEvent  func(Event)
	onResult func(Result)

	ph *phaser
	st *GameState
	wg sync.WaitGroup

	score      atomic.Int64
	roundStart time.Time
	roundFrame uint64
}

// NewSession builds a session for the given mode on term. The playfield is
// sized from the terminal once, here.
func NewSession(term Terminal, modeID string, opts Options) (*Session, error) {
	mode, err := registry.Get(modeID)
	if err != nil {
		return nil, fmt.Errorf("breakout: %w", err)
	}

	cfg := opts.Config
	if cfg.Gameplay.TickMS == 0 && cfg.Layout.FieldW == 0 {
		cfg = config.DefaultBreakoutConfig()
	}
	cfg.Validate()

	levelID := cfg.Level
	if opts.Level != "" {
		levelID = opts.Level
	}
	level, ok := GetLevelByID(levelID, cfg.Layout.Cols)
	if !ok {
		return nil, fmt.Errorf("breakout: unknown level %q", levelID)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	w, h := term.Size()
	field := NewField(w, h, cfg.Layout.FieldW, cfg.Layout.FieldH)
	st := newGameState(field, mode.Paddles, level, cfg)

	s := &Session{
		ID:       uuid.NewString(),
		mode:     mode,
		cfg:      cfg,
		level:    level,
		term:     term,
		rng:      rand.New(rand.NewPCG(uint64(seed), uint64(seed>>1))), //#nosec G115 -- seed bits
		player:   opts.Player,
		onEvent:  opts.OnEvent,
		onResult: opts.OnResult,
		st:       st,
		ph:       newPhaser(st),
	}
	s.log = logger.With("session", s.ID[:8])
	return s, nil
}

// RunGameplay plays one session to completion on term. It blocks until the
// player quits, leaves the end screen, or ctx is cancelled.
func RunGameplay(ctx context.Context, term Terminal, mode string, opts Options) (Result, error) {
	s, err := NewSession(term, mode, opts)
	if err != nil {
		return Result{}, err
	}
	return s.Run(ctx), nil
}

// Score returns the score of the most recently completed round.
func (s *Session) Score() int {
	return int(s.score.Load())
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.ph.mu.Lock()
	defer s.ph.mu.Unlock()
	return s.st.Snapshot()
}

// Run is the control loop. It spawns the workers, sleeps until a restart
// request or a terminal condition, and tears the workers down again.
// It returns the result of the last round played.
func (s *Session) Run(ctx context.Context) Result {
	stopOnCancel := context.AfterFunc(ctx, func() {
		s.ph.mu.Lock()
		s.st.Quit = true
		s.st.Running = false
		s.ph.stopLocked()
		s.ph.mu.Unlock()
	})
	defer stopOnCancel()

	s.log.Info("session started", "mode", s.mode.ID, "level", s.level.ID, "field", fmt.Sprintf("%dx%d", s.st.Field.W, s.st.Field.H))

	for {
		s.beginRound()
		s.spawn()
		outcome := s.supervise()

		s.ph.Stop()
		s.wg.Wait()

		res := s.finishRound(outcome)
		if outcome == OutcomeQuit || ctx.Err() != nil || !s.cfg.Gameplay.EndScreen {
			return res
		}
		if !s.endScreen(ctx, res) {
			return res
		}

		s.ph.mu.Lock()
		s.st.ResetLevel(s.level, s.cfg)
		s.ph.mu.Unlock()
		s.ph.rearm()
		if ctx.Err() != nil {
			return res
		}
		s.log.Info("new round from end screen")
	}
}

func (s *Session) beginRound() {
	s.ph.mu.Lock()
	defer s.ph.mu.Unlock()
	s.roundStart = time.Now()
	s.roundFrame = s.st.Frame
}

// supervise waits on the control condition. Restarts are handled in place
// with the workers still running; anything else ends the round.
func (s *Session) supervise() Outcome {
	s.ph.mu.Lock()
	defer s.ph.mu.Unlock()

	for {
		alive := s.ph.WaitControl(func(st *GameState) bool {
			return st.RestartRequested || st.Won || st.Lost || st.Quit
		})
		st := s.st
		switch {
		case !alive || st.Quit:
			return OutcomeQuit
		case st.RestartRequested:
			st.ResetLevel(s.level, s.cfg)
			s.roundStart = time.Now()
			s.roundFrame = st.Frame
			s.ph.tick.Broadcast()
			s.log.Info("level restarted")
		case st.Won:
			return OutcomeWon
		case st.Lost:
			return OutcomeLost
		}
	}
}

// finishRound records the score and reports the round.
func (s *Session) finishRound(outcome Outcome) Result {
	s.ph.mu.Lock()
	res := Result{
		SessionID: s.ID,
		Mode:      s.mode.ID,
		Level:     s.st.Level,
		Player:    s.player,
		Outcome:   outcome,
		Score:     s.st.Score,
		Lives:     s.st.Lives,
		Frames:    s.st.Frame - s.roundFrame,
		Duration:  time.Since(s.roundStart),
	}
	s.ph.mu.Unlock()

	s.score.Store(int64(res.Score))
	s.log.Info("round finished", "outcome", res.Outcome, "score", res.Score, "lives", res.Lives, "frames", res.Frames)
	if s.onResult != nil {
		s.onResult(res)
	}
	return res
}

// endScreen shows the result and waits for a decision. Reports whether the
// player asked for another round.
func (s *Session) endScreen(ctx context.Context, res Result) bool {
	drawEndScreen(s.term, res)

	poll := time.NewTicker(s.pollInterval())
	defer poll.Stop()
	for {
		if ev, ok := s.term.PollAction(); ok {
			switch ev.Action {
			case core.ActionRestart:
				return true
			case core.ActionQuit, core.ActionConfirm:
				return false
			}
			continue
		}
		select {
		case <-ctx.Done():
			return false
		case <-poll.C:
		}
	}
}

func (s *Session) tickInterval() time.Duration {
	return time.Duration(s.cfg.Gameplay.TickMS) * time.Millisecond
}

func (s *Session) pollInterval() time.Duration {
	return time.Duration(s.cfg.Gameplay.InputPollMS) * time.Millisecond
}

func (s *Session) graceInterval() time.Duration {
	return time.Duration(s.cfg.Gameplay.InputGraceMS) * time.Millisecond
}

// dispatch delivers events. Never called with the lock held.
func (s *Session) dispatch(evs []Event) {
	if s.onEvent == nil {
		return
	}
	for _, ev := range evs {
		s.onEvent(ev)
	}
}
