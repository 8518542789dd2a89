package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-breakout/internal/app"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/highscore"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

func testServices(t *testing.T) *app.Services {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.Open(filepath.Join(dir, "history.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	scores, err := highscore.Open(filepath.Join(dir, "highscores.txt"))
	if err != nil {
		t.Fatalf("highscore.Open() failed: %v", err)
	}
	svc := &app.Services{Store: store, Scores: scores}
	t.Cleanup(func() { svc.Close() })
	return svc
}

func update(t *testing.T, m tea.Model, msg tea.Msg) AppModel {
	t.Helper()
	next, _ := m.Update(msg)
	am, ok := next.(AppModel)
	if !ok {
		t.Fatalf("Update() returned %T, expected AppModel", next)
	}
	return am
}

func TestMenuNavigation(t *testing.T) {
	m := NewMenuModel(nil, 80, 24)
	n := len(m.items)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(MenuModel)
	if m.cursor != n-1 {
		t.Errorf("cursor after up from top = %d, expected %d", m.cursor, n-1)
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(MenuModel)
	if m.cursor != 0 {
		t.Errorf("cursor after wrap down = %d, expected 0", m.cursor)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)
	sel := m.Selected()
	if sel == nil || sel.Choice != ChoicePlay || sel.Mode != breakout.ModeClassic {
		t.Errorf("Selected() = %+v, expected classic play", sel)
	}

	if !strings.Contains(m.View(), "B R E A K O U T") {
		t.Error("View() missing title")
	}
}

func TestMenuQuitEntry(t *testing.T) {
	m := NewMenuModel(nil, 80, 24)
	m.cursor = len(m.items) - 1

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)
	if !m.IsQuitting() || m.Selected() != nil {
		t.Errorf("Quit entry: IsQuitting() = %v, Selected() = %v", m.IsQuitting(), m.Selected())
	}
}

func TestAppInstructionsAndBack(t *testing.T) {
	svc := testServices(t)
	m := NewAppModel(context.Background(), svc, "tester", 80, 24)

	for i, item := range m.menu.items {
		if item.Choice == ChoiceInstructions {
			m.menu.cursor = i
		}
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != stateInstructions {
		t.Fatalf("state = %v, expected instructions", m.state)
	}
	if !strings.Contains(m.View(), "INSTRUCTIONS") {
		t.Error("instructions view missing title")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != stateMenu {
		t.Errorf("state after esc = %v, expected menu", m.state)
	}
}

func TestAppScoreboard(t *testing.T) {
	svc := testServices(t)
	m := NewAppModel(context.Background(), svc, "tester", 100, 30)

	for i, item := range m.menu.items {
		if item.Choice == ChoiceScores {
			m.menu.cursor = i
		}
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != stateScores {
		t.Fatalf("state = %v, expected scores", m.state)
	}
	// Seeded highscore table is the first board.
	if !strings.Contains(m.View(), "CLAUDIA") {
		t.Error("scoreboard missing seeded highscores")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != stateMenu {
		t.Errorf("state after esc = %v, expected menu", m.state)
	}
}

func TestAppNameEntryAfterHighscore(t *testing.T) {
	svc := testServices(t)
	m := NewAppModel(context.Background(), svc, "tester", 80, 24)

	m.state = stateGame
	m.game = NewGameModel(context.Background(), 80, 24, nil)
	defer m.game.Stop()

	m = update(t, m, GameDoneMsg{Result: breakout.Result{Score: 7000}})
	if m.state != stateName {
		t.Fatalf("state after qualifying game = %v, expected name entry", m.state)
	}
	if m.name.Name() != "TESTER" {
		t.Errorf("prefilled name = %q, expected TESTER", m.name.Name())
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s9!")})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != stateMenu {
		t.Fatalf("state after enter = %v, expected menu", m.state)
	}

	top := svc.Scores.Entries()[0]
	if top.Score != 7000 || top.Name != "TESTES" {
		t.Errorf("top highscore = %+v, expected TESTES 7000", top)
	}
}

func TestAppLowScoreSkipsNameEntry(t *testing.T) {
	svc := testServices(t)
	m := NewAppModel(context.Background(), svc, "tester", 80, 24)

	m.state = stateGame
	m.game = NewGameModel(context.Background(), 80, 24, nil)
	defer m.game.Stop()

	m = update(t, m, GameDoneMsg{Result: breakout.Result{Score: 0}})
	if m.state != stateMenu {
		t.Errorf("state after zero score = %v, expected menu", m.state)
	}
}

func TestScoreboardBoards(t *testing.T) {
	svc := testServices(t)
	svc.Record(breakout.Result{SessionID: "x", Mode: breakout.ModeClassic, Level: "classic", Player: "ana", Outcome: breakout.OutcomeWon, Score: 1234})

	sb := NewScoreboardModel(svc.Scores, svc.Store, 100, 30)
	if len(sb.boards) != 3 {
		t.Fatalf("boards = %d, expected hall of fame plus two modes", len(sb.boards))
	}

	next, _ := sb.Update(tea.KeyMsg{Type: tea.KeyTab})
	sb = next.(ScoreboardModel)
	if sb.boards[sb.cursor].Mode != breakout.ModeClassic {
		t.Fatalf("board after tab = %+v, expected classic", sb.boards[sb.cursor])
	}
	if len(sb.rows) != 1 || sb.rows[0].Score != 1234 || sb.rows[0].Player != "ana" {
		t.Errorf("classic rows = %+v", sb.rows)
	}

	next, _ = sb.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	sb = next.(ScoreboardModel)
	if sb.cursor != 0 {
		t.Errorf("cursor after shift+tab = %d, expected 0", sb.cursor)
	}
}

func TestScoreboardWithoutSources(t *testing.T) {
	sb := NewScoreboardModel(nil, nil, 60, 20)
	if !strings.Contains(sb.View(), "No scores recorded yet") {
		t.Error("empty scoreboard should say so")
	}
}
