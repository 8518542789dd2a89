// Package breakout implements the gameplay core of a terminal Breakout:
// a shared GameState driven by per-phase worker goroutines that are
// sequenced by a frame clock and an in-frame step counter.
package breakout

import "strings"

// Brick represents a single brick in the grid.
// A brick is alive while HP > 0; HP only ever decreases.
type Brick struct {
	HP     int  // Hit points remaining
	Glyph  rune // Display character
	Points int  // Awarded once, when HP reaches 0
}

// Alive reports whether the brick still blocks the ball.
func (b Brick) Alive() bool {
	return b.HP > 0
}

// Level is a named brick layout. Rows are the template the grid is
// rebuilt from on every reset.
type Level struct {
	ID    string
	Name  string
	Cols  int       // Number of brick columns
	Rows  int       // Number of brick rows
	Cells [][]Brick // Template bricks [row][col]
}

// Grid returns a fresh copy of the level's bricks.
func (l *Level) Grid() [][]Brick {
	grid := make([][]Brick, len(l.Cells))
	for i, row := range l.Cells {
		grid[i] = make([]Brick, len(row))
		copy(grid[i], row)
	}
	return grid
}

// CountAlive returns the number of bricks with HP > 0 in a grid.
func CountAlive(grid [][]Brick) int {
	count := 0
	for _, row := range grid {
		for _, b := range row {
			if b.Alive() {
				count++
			}
		}
	}
	return count
}

// brickFor maps a level glyph to a brick.
//
//	'@' = armored brick (3 HP, 50 points)
//	'%' = hard brick (2 HP, 30 points)
//	'#' = normal brick (1 HP, 10 points)
//	'1'-'9' = normal brick with custom points (10 * digit)
//	anything else = empty
func brickFor(ch byte) Brick {
	switch {
	case ch == '@':
		return Brick{HP: 3, Glyph: '@', Points: 50}
	case ch == '%':
		return Brick{HP: 2, Glyph: '%', Points: 30}
	case ch == '#':
		return Brick{HP: 1, Glyph: '#', Points: 10}
	case ch >= '1' && ch <= '9':
		return Brick{HP: 1, Glyph: '#', Points: int(ch-'0') * 10}
	default:
		return Brick{}
	}
}

// ParseLevel creates a Level from an ASCII map. Short lines are padded
// with empty cells to the widest line.
func ParseLevel(id, name string, lines []string) *Level {
	if len(lines) == 0 {
		return &Level{ID: id, Name: name}
	}

	// Find max width
	maxWidth := 0
	for _, line := range lines {
		if len(line) > maxWidth {
			maxWidth = len(line)
		}
	}

	level := &Level{
		ID:    id,
		Name:  name,
		Cols:  maxWidth,
		Rows:  len(lines),
		Cells: make([][]Brick, len(lines)),
	}

	for row, line := range lines {
		level.Cells[row] = make([]Brick, maxWidth)
		for col := range maxWidth {
			var ch byte = '.'
			if col < len(line) {
				ch = line[col]
			}
			level.Cells[row][col] = brickFor(ch)
		}
	}

	return level
}

// ClassicLevel builds the default wall: one armored row, two hard rows and
// normal rows below, rows x cols bricks.
func ClassicLevel(rows, cols int) *Level {
	lines := make([]string, rows)
	for r := range rows {
		switch {
		case r == 0:
			lines[r] = strings.Repeat("@", cols)
		case r <= 2:
			lines[r] = strings.Repeat("%", cols)
		default:
			lines[r] = strings.Repeat("#", cols)
		}
	}
	return ParseLevel("classic", "Classic", lines)
}

// BuiltinLevels returns all built-in levels. cols sizes the classic wall;
// the ASCII levels carry their own width.
func BuiltinLevels(cols int) []*Level {
	return []*Level{
		ClassicLevel(5, cols),

		ParseLevel("pyramid", "Pyramid", []string{
			"......@@......",
			"....%%%%%%....",
			"..##########..",
			"##############",
		}),

		ParseLevel("checker", "Checkerboard", []string{
			"#.#.#.#.#.#.#.",
			".%.%.%.%.%.%.%",
			"#.#.#.#.#.#.#.",
			".%.%.%.%.%.%.%",
			"#.#.#.#.#.#.#.",
		}),

		ParseLevel("fortress", "Fortress", []string{
			"@@@@@@@@@@@@@@",
			"@............@",
			"@.##########.@",
			"@.#55555555#.@",
			"@.##########.@",
			"@............@",
			"%%%%%%%%%%%%%%",
		}),
	}
}

// GetLevelByID returns a built-in level by its ID.
func GetLevelByID(id string, cols int) (*Level, bool) {
	for _, level := range BuiltinLevels(cols) {
		if level.ID == id {
			return level, true
		}
	}
	return nil, false
}

// LevelIDs returns the IDs of the built-in levels in display order.
func LevelIDs() []string {
	levels := BuiltinLevels(1)
	ids := make([]string, len(levels))
	for i, l := range levels {
		ids[i] = l.ID
	}
	return ids
}
