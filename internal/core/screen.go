package core

import (
	"strings"
	"sync"
)

// Screen is a 2D cell buffer for rendering.
// It decouples drawing from the terminal: the renderer writes runes and
// colors, a platform backend turns the buffer into output.
//
// Screen also satisfies the drawing half of the gameplay Terminal contract,
// and with a key queue attached (see Keys) it is a complete headless
// terminal for tests and replays.
type Screen struct {
	mu     sync.Mutex
	width  int
	height int
	cells  [][]Cell

	flushes int
	keys    []KeyEvent
}

// NewScreen creates a new screen buffer with the given dimensions.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  width,
		height: height,
	}
	s.allocate()
	s.clear()
	return s
}

// allocate creates the underlying cell storage.
func (s *Screen) allocate() {
	s.cells = make([][]Cell, s.height)
	for y := range s.cells {
		s.cells[y] = make([]Cell, s.width)
	}
}

// Size returns the screen dimensions in characters.
func (s *Screen) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// Clear fills the entire screen with blank cells.
func (s *Screen) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clear()
}

func (s *Screen) clear() {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = blank
		}
	}
}

// SetCell places a colored rune at the given position.
// Out-of-bounds coordinates are silently clipped.
func (s *Screen) SetCell(x, y int, r rune, c Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set(x, y, Cell{Rune: r, Color: c})
}

func (s *Screen) set(x, y int, c Cell) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.cells[y][x] = c
}

// Get returns the rune at the given position.
// Returns space for out-of-bounds coordinates.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

// GetCell returns the cell at the given position.
func (s *Screen) GetCell(x, y int) Cell {
	s.mu.Lock()
	defer s.mu.Unlock()
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return blank
	}
	return s.cells[y][x]
}

// DrawText writes a string horizontally starting at (x, y).
// Characters that extend beyond screen bounds are clipped.
func (s *Screen) DrawText(x, y int, text string, c Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := 0
	for _, r := range text {
		s.set(x+i, y, Cell{Rune: r, Color: c})
		i++
	}
}

// Flush records that a complete frame was handed over. A bare Screen has no
// output device, so it only counts frames.
func (s *Screen) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushes++
}

// Flushes returns how many frames have been flushed.
func (s *Screen) Flushes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushes
}

// Keys queues key events to be returned by PollAction.
func (s *Screen) Keys(events ...KeyEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys = append(s.keys, events...)
}

// PollAction pops the next queued key event without blocking.
func (s *Screen) PollAction() (KeyEvent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.keys) == 0 {
		return KeyEvent{}, false
	}
	ev := s.keys[0]
	s.keys = s.keys[1:]
	return ev, true
}

// String converts the screen buffer to plain text, rows joined with newlines.
func (s *Screen) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < s.width; x++ {
			sb.WriteRune(s.cells[y][x].Rune)
		}
	}
	return sb.String()
}

// Row returns the specified row as a string.
func (s *Screen) Row(y int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	for _, c := range s.cells[y] {
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}
