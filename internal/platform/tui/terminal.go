// Package tui provides the Bubble Tea integration for Breakout.
// It hosts gameplay sessions inside a tea.Program, maps keys, and serves
// the menu and scoreboard, locally or over SSH.
package tui

import (
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// keyBuffer is how many key presses may queue between input polls.
const keyBuffer = 64

// Terminal is the Bubble Tea side of the gameplay terminal. The game draws
// into a back buffer; Flush renders it and hands the frame to the program,
// which picks it up with waitForFrame. Keys flow the other way through Push.
type Terminal struct {
	screen *core.Screen
	frames chan string
	keys   chan core.KeyEvent
}

// NewTerminal creates a terminal of the given size.
func NewTerminal(width, height int) *Terminal {
	return &Terminal{
		screen: core.NewScreen(width, height),
		frames: make(chan string, 1),
		keys:   make(chan core.KeyEvent, keyBuffer),
	}
}

// Size returns the playable size in characters.
func (t *Terminal) Size() (int, int) { return t.screen.Size() }

// Clear blanks the back buffer.
func (t *Terminal) Clear() { t.screen.Clear() }

// SetCell draws one cell into the back buffer.
func (t *Terminal) SetCell(x, y int, r rune, c core.Color) { t.screen.SetCell(x, y, r, c) }

// DrawText draws a string into the back buffer.
func (t *Terminal) DrawText(x, y int, s string, c core.Color) { t.screen.DrawText(x, y, s, c) }

// Flush publishes the back buffer. An unread older frame is replaced.
func (t *Terminal) Flush() {
	frame := RenderScreen(t.screen)
	for {
		select {
		case t.frames <- frame:
			return
		default:
		}
		select {
		case <-t.frames:
		default:
		}
	}
}

// Frames returns the channel of rendered frames.
func (t *Terminal) Frames() <-chan string { return t.frames }

// Push queues a key event. Returns false if the queue is full.
func (t *Terminal) Push(ev core.KeyEvent) bool {
	select {
	case t.keys <- ev:
		return true
	default:
		return false
	}
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
