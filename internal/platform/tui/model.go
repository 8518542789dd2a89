package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
)

// PlayFunc runs one gameplay session on term until it ends.
type PlayFunc func(ctx context.Context, term breakout.Terminal) (breakout.Result, error)

// frameMsg carries a rendered frame from a game terminal to the program.
type frameMsg struct {
	term  *Terminal
	frame string
}

// GameDoneMsg is sent when the gameplay session returns.
type GameDoneMsg struct {
	Result breakout.Result
	Err    error
}

// waitForFrame blocks until the next frame or until the game is done.
func waitForFrame(term *Terminal, done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case f := <-term.Frames():
			return frameMsg{term: term, frame: f}
		case <-done:
			return nil
		}
	}
}

// GameModel hosts one gameplay session inside a Bubble Tea program.
// The session runs as a command; its frames arrive as messages.
type GameModel struct {
	term   *Terminal
	keys   KeyMap
	play   PlayFunc
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	frame      string
	result     breakout.Result
	err        error
	finished   bool
	quitOnDone bool
}

// NewGameModel creates a model that runs play on a terminal of the given size.
// Cancelling ctx ends the session.
func NewGameModel(ctx context.Context, width, height int, play PlayFunc) GameModel {
	ctx, cancel := context.WithCancel(ctx)
	return GameModel{
		term:   NewTerminal(width, height),
		keys:   DefaultKeyMap(),
		play:   play,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

// Init starts the session and the frame pump.
func (m GameModel) Init() tea.Cmd {
	return tea.Batch(m.run(), waitForFrame(m.term, m.done))
}

func (m GameModel) run() tea.Cmd {
	return func() tea.Msg {
		res, err := m.play(m.ctx, m.term)
		close(m.done)
		return GameDoneMsg{Result: res, Err: err}
	}
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if ev, ok := m.keys.Translate(msg); ok {
			m.term.Push(ev)
		}
		return m, nil

	case frameMsg:
		if msg.term != m.term {
			return m, nil // left over from an earlier game
		}
		m.frame = msg.frame
		return m, waitForFrame(m.term, m.done)

	case GameDoneMsg:
		m.finished = true
		m.result = msg.Result
		m.err = msg.Err
		m.cancel()
		if m.quitOnDone {
			return m, tea.Quit
		}
		return m, nil
	}

	// The playfield is sized once per session; resizes are ignored.
	return m, nil
}

// View renders the latest frame.
func (m GameModel) View() string {
	return m.frame
}

// Finished reports whether the session has returned.
func (m GameModel) Finished() bool { return m.finished }

// Result returns the session result and error once Finished.
func (m GameModel) Result() (breakout.Result, error) { return m.result, m.err }

// Stop ends the session early.
func (m GameModel) Stop() { m.cancel() }

// RunGame plays one session in its own Bubble Tea program on the alternate
// screen and returns when the session ends.
func RunGame(ctx context.Context, width, height int, play PlayFunc) (breakout.Result, error) {
	model := NewGameModel(ctx, width, height, play)
	model.quitOnDone = true
	defer model.Stop()

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return breakout.Result{}, err
	}

	m, ok := final.(GameModel)
	if !ok || !m.Finished() {
		// The program went away first; let the session wind down.
		model.Stop()
		select {
		case <-model.done:
		case <-time.After(time.Second):
		}
		return breakout.Result{}, context.Canceled
	}
	return m.Result()
}
