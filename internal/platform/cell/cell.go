// Package cell is a tcell terminal backend for gameplay sessions. It draws
// straight into the terminal cell grid, with no frame string in between.
package cell

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// keyBuffer is how many key presses may queue between input polls.
const keyBuffer = 64

var (
	p1 = func(a core.Action) core.KeyEvent { return core.KeyEvent{Player: core.Player1, Action: a} }
	p2 = func(a core.Action) core.KeyEvent { return core.KeyEvent{Player: core.Player2, Action: a} }
)

// runeKeys maps printable keys. Player 1 steers with A/D/S.
var runeKeys = map[rune]core.KeyEvent{
	'a': p1(core.ActionLeft), 'A': p1(core.ActionLeft),
	'd': p1(core.ActionRight), 'D': p1(core.ActionRight),
	's': p1(core.ActionStop), 'S': p1(core.ActionStop),
	' ': p1(core.ActionLaunch), 'w': p1(core.ActionLaunch), 'W': p1(core.ActionLaunch),
	'p': p1(core.ActionPause), 'P': p1(core.ActionPause),
	'r': p1(core.ActionRestart), 'R': p1(core.ActionRestart),
	'q': p1(core.ActionQuit), 'Q': p1(core.ActionQuit),
}

// specialKeys maps named keys. Player 2 steers with the arrows.
var specialKeys = map[tcell.Key]core.KeyEvent{
	tcell.KeyLeft:   p2(core.ActionLeft),
	tcell.KeyRight:  p2(core.ActionRight),
	tcell.KeyDown:   p2(core.ActionStop),
	tcell.KeyUp:     p1(core.ActionLaunch),
	tcell.KeyEnter:  p1(core.ActionConfirm),
	tcell.KeyEscape: p1(core.ActionQuit),
	tcell.KeyCtrlC:  p1(core.ActionQuit),
}

// Translate maps a tcell key event to a gameplay key event.
func Translate(ev *tcell.EventKey) (core.KeyEvent, bool) {
	if ev.Key() == tcell.KeyRune {
		k, ok := runeKeys[ev.Rune()]
		return k, ok
	}
	k, ok := specialKeys[ev.Key()]
	return k, ok
}

// colors uses the same palette indices as the Bubble Tea backend.
var colors = map[core.Color]tcell.Color{
	core.ColorDefault:      tcell.ColorDefault,
	core.ColorRed:          tcell.PaletteColor(1),
	core.ColorGreen:        tcell.PaletteColor(2),
	core.ColorYellow:       tcell.PaletteColor(3),
	core.ColorBlue:         tcell.PaletteColor(4),
	core.ColorMagenta:      tcell.PaletteColor(5),
	core.ColorCyan:         tcell.PaletteColor(6),
	core.ColorWhite:        tcell.PaletteColor(7),
	core.ColorBrightRed:    tcell.PaletteColor(9),
	core.ColorBrightYellow: tcell.PaletteColor(11),
	core.ColorBrightCyan:   tcell.PaletteColor(14),
	core.ColorOrange:       tcell.PaletteColor(208),
	core.ColorGray:         tcell.PaletteColor(245),
}

// Style returns the tcell style for a cell color.
func Style(c core.Color) tcell.Style {
	fg, ok := colors[c]
	if !ok {
		fg = tcell.ColorDefault
	}
	return tcell.StyleDefault.Foreground(fg)
}

// Terminal adapts a tcell.Screen to the gameplay terminal. A goroutine
// polls tcell events and queues translated keys for PollAction.
type Terminal struct {
	screen tcell.Screen
	keys   chan core.KeyEvent
	done   chan struct{}
	once   sync.Once

	// resized asks the next Flush for a full redraw. Only the drawing
	// goroutine touches the screen's cells.
	resized atomic.Bool
}

// New opens the real terminal.
func New() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("cell: cannot create screen: %w", err)
	}
	return NewWithScreen(screen)
}

// NewWithScreen initializes screen and starts the event poller.
func NewWithScreen(screen tcell.Screen) (*Terminal, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("cell: cannot init screen: %w", err)
	}
	screen.HideCursor()
	screen.Clear()

	t := &Terminal{
		screen: screen,
		keys:   make(chan core.KeyEvent, keyBuffer),
		done:   make(chan struct{}),
	}
	go t.poll()
	return t, nil
}

// poll runs until Fini makes PollEvent return nil.
func (t *Terminal) poll() {
	defer close(t.done)
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			k, ok := Translate(ev)
			if !ok {
				continue
			}
			select {
			case t.keys <- k:
			default: // drop when nobody is polling
			}
		case *tcell.EventResize:
			t.resized.Store(true)
		}
	}
}

// Size returns the screen size in characters.
func (t *Terminal) Size() (int, int) { return t.screen.Size() }

// Clear blanks the screen.
func (t *Terminal) Clear() { t.screen.Clear() }

// SetCell draws one cell.
func (t *Terminal) SetCell(x, y int, r rune, c core.Color) {
	t.screen.SetContent(x, y, r, nil, Style(c))
}

// DrawText draws a string starting at (x, y).
func (t *Terminal) DrawText(x, y int, s string, c core.Color) {
	style := Style(c)
	i := 0
	for _, r := range s {
		t.screen.SetContent(x+i, y, r, nil, style)
		i++
	}
}

// Flush shows the drawn frame, fully redrawn after a resize.
func (t *Terminal) Flush() {
	if t.resized.CompareAndSwap(true, false) {
		t.screen.Sync()
		return
	}
	t.screen.Show()
}

// PollAction pops the next queued key event without blocking.
func (t *Terminal) PollAction() (core.KeyEvent, bool) {
	select {
	case ev := <-t.keys:
		return ev, true
	default:
		return core.KeyEvent{}, false
	}
}

// Close restores the terminal and waits for the poller to exit.
func (t *Terminal) Close() {
	t.once.Do(func() {
		t.screen.Fini()
		<-t.done
	})
}
