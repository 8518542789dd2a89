package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// KeyMap holds the gameplay key bindings. Player 1 steers with A/D/S,
// player 2 with the arrows; in single paddle modes both drive the same
// paddle.
type KeyMap struct {
	P1Left  key.Binding
	P1Right key.Binding
	P1Stop  key.Binding
	P2Left  key.Binding
	P2Right key.Binding
	P2Stop  key.Binding
	Launch  key.Binding
	Pause   key.Binding
	Restart key.Binding
	Confirm key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.P1Left, k.P1Right, k.Launch, k.Pause, k.Restart, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.P1Left, k.P1Right, k.P1Stop},
		{k.P2Left, k.P2Right, k.P2Stop},
		{k.Launch, k.Pause, k.Restart},
		{k.Confirm, k.Quit},
	}
}

// DefaultKeyMap returns the default gameplay bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		P1Left: key.NewBinding(
			key.WithKeys("a", "A"),
			key.WithHelp("a", "left"),
		),
		P1Right: key.NewBinding(
			key.WithKeys("d", "D"),
			key.WithHelp("d", "right"),
		),
		P1Stop: key.NewBinding(
			key.WithKeys("s", "S"),
			key.WithHelp("s", "stop"),
		),
		P2Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "left"),
		),
		P2Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "right"),
		),
		P2Stop: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "stop"),
		),
		Launch: key.NewBinding(
			key.WithKeys(" ", "w", "W", "up"),
			key.WithHelp("space/w", "launch"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "P"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r", "R"),
			key.WithHelp("r", "restart"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "Q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "quit"),
		),
	}
}

// Translate maps a key message to a gameplay key event.
// Returns false for keys with no binding.
func (k KeyMap) Translate(msg tea.KeyMsg) (core.KeyEvent, bool) {
	p1 := func(a core.Action) (core.KeyEvent, bool) {
		return core.KeyEvent{Player: core.Player1, Action: a}, true
	}
	p2 := func(a core.Action) (core.KeyEvent, bool) {
		return core.KeyEvent{Player: core.Player2, Action: a}, true
	}

	switch {
	case key.Matches(msg, k.P1Left):
		return p1(core.ActionLeft)
	case key.Matches(msg, k.P1Right):
		return p1(core.ActionRight)
	case key.Matches(msg, k.P1Stop):
		return p1(core.ActionStop)
	case key.Matches(msg, k.P2Left):
		return p2(core.ActionLeft)
	case key.Matches(msg, k.P2Right):
		return p2(core.ActionRight)
	case key.Matches(msg, k.P2Stop):
		return p2(core.ActionStop)
	case key.Matches(msg, k.Launch):
		return p1(core.ActionLaunch)
	case key.Matches(msg, k.Pause):
		return p1(core.ActionPause)
	case key.Matches(msg, k.Restart):
		return p1(core.ActionRestart)
	case key.Matches(msg, k.Confirm):
		return p1(core.ActionConfirm)
	case key.Matches(msg, k.Quit):
		return p1(core.ActionQuit)
	}
	return core.KeyEvent{}, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	}
	return MenuActionNone
}
