package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-breakout/internal/app"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
)

type appState int

const (
	stateMenu appState = iota
	stateGame
	stateName
	stateScores
	stateInstructions
)

// AppModel runs the whole flow: menu, gameplay, highscore name entry,
// scoreboard and instructions. It is the top-level model for local play
// and for SSH sessions.
type AppModel struct {
	svc    *app.Services
	ctx    context.Context
	player string
	width  int
	height int
	state  appState

	menu   MenuModel
	game   GameModel
	name   NameEntryModel
	scores ScoreboardModel

	last     breakout.Result
	quitting bool
}

// NewAppModel creates the app for player on a terminal of the given size.
// Cancelling ctx ends any running game.
func NewAppModel(ctx context.Context, svc *app.Services, player string, width, height int) AppModel {
	return AppModel{
		svc:    svc,
		ctx:    ctx,
		player: player,
		width:  width,
		height: height,
		menu:   NewMenuModel(svc.Store, width, height),
	}
}

// Init initializes the app.
func (m AppModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	switch m.state {
	case stateGame:
		return m.updateGame(msg)
	case stateName:
		return m.updateName(msg)
	case stateScores:
		return m.updateScores(msg)
	case stateInstructions:
		if km, ok := msg.(tea.KeyMsg); ok {
			switch MapKeyToMenuAction(km) {
			case MenuActionSelect, MenuActionBack, MenuActionQuit:
				return m.toMenu()
			}
		}
		return m, nil
	}
	return m.updateMenu(msg)
}

func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	selected := m.menu.Selected()
	if selected == nil {
		return m, cmd
	}

	switch selected.Choice {
	case ChoicePlay:
		return m.startGame(selected.Mode)
	case ChoiceScores:
		m.scores = NewScoreboardModel(m.svc.Scores, m.svc.Store, m.width, m.height)
		m.state = stateScores
		return m, m.scores.Init()
	case ChoiceInstructions:
		m.state = stateInstructions
		return m, nil
	}
	return m, cmd
}

// startGame begins a session on a terminal the size of the window.
func (m AppModel) startGame(mode string) (tea.Model, tea.Cmd) {
	svc, player := m.svc, m.player
	play := func(ctx context.Context, term breakout.Terminal) (breakout.Result, error) {
		return svc.Play(ctx, term, mode, player)
	}
	m.game = NewGameModel(m.ctx, m.width, m.height, play)
	m.state = stateGame
	return m, m.game.Init()
}

func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	m.game = next.(GameModel)

	if !m.game.Finished() {
		return m, cmd
	}

	res, err := m.game.Result()
	m.last = res
	if err == nil && m.svc.Qualifies(res.Score) {
		m.name = NewNameEntryModel(res.Score, m.player, m.width)
		m.state = stateName
		return m, nil
	}
	return m.toMenu()
}

func (m AppModel) updateName(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.name.Update(msg)
	m.name = next.(NameEntryModel)

	switch {
	case m.name.Done():
		m.svc.AddHighscore(m.last.Score, m.name.Name())
		return m.toMenu()
	case m.name.Cancelled():
		return m.toMenu()
	}
	return m, cmd
}

func (m AppModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	m.scores = next.(ScoreboardModel)

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		return m.toMenu()
	}
	return m, cmd
}

func (m AppModel) toMenu() (tea.Model, tea.Cmd) {
	m.menu = NewMenuModel(m.svc.Store, m.width, m.height)
	m.state = stateMenu
	return m, m.menu.Init()
}

// View renders the active screen.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case stateGame:
		return m.game.View()
	case stateName:
		return m.name.View()
	case stateScores:
		return m.scores.View()
	case stateInstructions:
		return instructionsView(m.width)
	}
	return m.menu.View()
}

// Last returns the result of the most recent game.
func (m AppModel) Last() breakout.Result {
	return m.last
}

// RunApp runs the app on the local terminal.
func RunApp(ctx context.Context, svc *app.Services, player string, width, height int) error {
	model := NewAppModel(ctx, svc, player, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if m, ok := final.(AppModel); ok && m.state == stateGame {
		m.game.Stop()
	}
	return err
}
