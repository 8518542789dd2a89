package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-breakout/internal/registry"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

// MenuChoice is what a menu entry leads to.
type MenuChoice int

const (
	ChoicePlay MenuChoice = iota
	ChoiceInstructions
	ChoiceScores
	ChoiceQuit
)

// MenuItem represents a selectable menu entry.
type MenuItem struct {
	Title  string
	Choice MenuChoice
	Mode   string // Gameplay mode for ChoicePlay
}

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	items    []MenuItem
	cursor   int
	width    int
	height   int
	store    *storage.Store
	quitting bool
	selected *MenuItem // Set when user picks an entry
}

// NewMenuModel creates the main menu: one play entry per registered mode,
// then instructions, scores and quit.
func NewMenuModel(store *storage.Store, width, height int) MenuModel {
	modes := registry.List()
	items := make([]MenuItem, 0, len(modes)+3)
	for _, mode := range modes {
		items = append(items, MenuItem{Title: "Play " + mode.Title, Choice: ChoicePlay, Mode: mode.ID})
	}
	items = append(items,
		MenuItem{Title: "Instructions", Choice: ChoiceInstructions},
		MenuItem{Title: "High Scores", Choice: ChoiceScores},
		MenuItem{Title: "Quit", Choice: ChoiceQuit},
	)

	return MenuModel{
		items:  items,
		width:  width,
		height: height,
		store:  store,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation. The cursor wraps.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.items)

	switch MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true

	case MenuActionUp:
		m.cursor = (m.cursor - 1 + n) % n

	case MenuActionDown:
		m.cursor = (m.cursor + 1) % n

	case MenuActionSelect:
		selected := m.items[m.cursor]
		if selected.Choice == ChoiceQuit {
			m.quitting = true
			break
		}
		m.selected = &selected
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	selectedStyle := lipgloss.NewStyle().Reverse(true)
	hintStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("  B R E A K O U T  "), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := item.Title
		if item.Choice == ChoicePlay && m.store != nil {
			if best, err := m.store.BestScore(item.Mode); err == nil && best > 0 {
				line = fmt.Sprintf("%s  (best %d)", line, best)
			}
		}
		if i == m.cursor {
			line = selectedStyle.Render(">> " + line + " <<")
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n\n")
	}

	b.WriteString(centerText(hintStyle.Render("Up/Down (W/S): Navigate  |  Enter: Select  |  Esc/Q: Quit"), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the picked entry, or nil.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// instructions is the text of the instructions screen.
var instructions = []string{
	"Goal: break every brick with the ball",
	"without letting it fall past your paddle.",
	"",
	"Move paddle: ← / →  (A / D), stop: ↓ / S",
	"Launch ball: Space / W",
	"Pause: P",
	"Restart level: R",
	"Quit: Esc / Q",
	"",
	"In Duo, player one uses A/D/S and player two the arrows.",
	"",
	"Paddle (=) steered by the player",
	"Ball (o) bounces and breaks bricks",
	"Bricks (#, %, @) take 1, 2 and 3 hits",
	"",
	"[ Enter / Esc to go back ]",
}

// instructionsView renders the instructions screen.
func instructionsView(width int) string {
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(1, 3)
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Render("INSTRUCTIONS")

	body := lipgloss.JoinVertical(lipgloss.Center, append([]string{title, ""}, instructions...)...)
	return "\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, frame.Render(body))
}
