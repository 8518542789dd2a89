package tui

import (
	"fmt"
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-breakout/internal/highscore"
)

// NameEntryModel asks for a name after a qualifying score.
// Letters only, upper-cased, at most highscore.MaxNameLen of them.
type NameEntryModel struct {
	score     int
	name      []rune
	width     int
	done      bool
	cancelled bool
}

// NewNameEntryModel creates a name prompt for score, prefilled with name.
func NewNameEntryModel(score int, name string, width int) NameEntryModel {
	return NameEntryModel{
		score: score,
		name:  []rune(highscore.SanitizeName(name)),
		width: width,
	}
}

// Init initializes the model.
func (m NameEntryModel) Init() tea.Cmd {
	return nil
}

// Update handles typing, backspace, enter and esc.
func (m NameEntryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			if len(m.name) > 0 {
				m.done = true
			}
		case tea.KeyEsc, tea.KeyCtrlC:
			m.cancelled = true
		case tea.KeyBackspace:
			if len(m.name) > 0 {
				m.name = m.name[:len(m.name)-1]
			}
		case tea.KeyRunes:
			for _, r := range msg.Runes {
				if unicode.IsLetter(r) && len(m.name) < highscore.MaxNameLen {
					m.name = append(m.name, unicode.ToUpper(r))
				}
			}
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

// View renders the prompt.
func (m NameEntryModel) View() string {
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(1, 4)
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Render("NEW HIGH SCORE")

	input := string(m.name) + "_" + strings.Repeat(" ", highscore.MaxNameLen-len(m.name))
	body := lipgloss.JoinVertical(lipgloss.Center,
		title,
		"",
		"CONGRATULATIONS!",
		fmt.Sprintf("Your score: %d", m.score),
		"",
		fmt.Sprintf("Enter your name (max %d letters):", highscore.MaxNameLen),
		"(letters only, Enter to confirm, Esc to skip)",
		"",
		input,
	)
	return "\n" + lipgloss.PlaceHorizontal(m.width, lipgloss.Center, frame.Render(body))
}

// Name returns the entered name.
func (m NameEntryModel) Name() string { return string(m.name) }

// Done reports whether the name was confirmed.
func (m NameEntryModel) Done() bool { return m.done }

// Cancelled reports whether the prompt was skipped.
func (m NameEntryModel) Cancelled() bool { return m.cancelled }
