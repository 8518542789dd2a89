package breakout

import (
	"fmt"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Visual characters for rendering
const (
	PaddleChar  = '='
	BallChar    = 'o'
	BorderVert  = '│'
	BorderHoriz = '─'
	BorderTL    = '┌'
	BorderTR    = '┐'
	BorderBL    = '└'
	BorderBR    = '┘'
)

// Terminal is the character-cell surface a session draws on and reads keys
// from. PollAction must not block.
type Terminal interface {
	Size() (w, h int)
	Clear()
	SetCell(x, y int, r rune, c core.Color)
	DrawText(x, y int, s string, c core.Color)
	Flush()
	PollAction() (core.KeyEvent, bool)
}

// layerCell is one cached cell of a prebuilt layer.
type layerCell struct {
	x, y int
	r    rune
	c    core.Color
}

// renderer draws snapshots. Static decoration and the brick grid are built
// into cached layers and replayed every frame, since the whole canvas is
// cleared before each draw.
type renderer struct {
	term    Terminal
	legend  string
	static  []layerCell
	bricks  []layerCell
	gridGen uint64
}

// drawResult tells the session which flags to clear after a draw.
type drawResult struct {
	builtStatic bool
	builtBricks bool
	gridGen     uint64
}

func newRenderer(term Terminal, paddles int) *renderer {
	legend := "←→/A-D: move | SPACE: launch | S: stop | P: pause | R: restart | Q/ESC: quit"
	if paddles > 1 {
		legend = "P1 A-D | P2 ←→ | SPACE: launch | P: pause | R: restart | Q/ESC: quit"
	}
	return &renderer{term: term, legend: legend}
}

// Draw renders one frame from a snapshot. It never touches the shared state.
func (r *renderer) Draw(snap Snapshot) drawResult {
	var res drawResult

	if !snap.FrameDrawn || r.static == nil {
		r.static = buildStatic(snap.Field, r.legend)
		res.builtStatic = true
	}
	if snap.GridDirty || r.bricks == nil || snap.GridGen != r.gridGen {
		r.bricks = buildBricks(snap.Grid, snap.Layout)
		r.gridGen = snap.GridGen
		res.builtBricks = true
		res.gridGen = snap.GridGen
	}

	r.term.Clear()
	replay(r.term, r.static)
	r.drawHUD(snap)
	replay(r.term, r.bricks)
	r.drawPaddles(snap)
	r.drawBall(snap)
	r.drawMessage(snap)
	r.term.Flush()

	return res
}

func replay(term Terminal, layer []layerCell) {
	for _, c := range layer {
		term.SetCell(c.x, c.y, c.r, c.c)
	}
}

// buildStatic lays out the border, title and controls legend.
func buildStatic(f Field, legend string) []layerCell {
	o := f.Outer
	cells := make([]layerCell, 0, 2*(o.W+o.H)+len(legend)+16)
	put := func(x, y int, r rune, c core.Color) {
		cells = append(cells, layerCell{x: x, y: y, r: r, c: c})
	}

	for x := o.X; x <= o.Right(); x++ {
		put(x, o.Y, BorderHoriz, core.ColorBlue)
		put(x, o.Bottom(), BorderHoriz, core.ColorBlue)
	}
	for y := o.Y; y <= o.Bottom(); y++ {
		put(o.X, y, BorderVert, core.ColorBlue)
		put(o.Right(), y, BorderVert, core.ColorBlue)
	}
	put(o.X, o.Y, BorderTL, core.ColorBlue)
	put(o.Right(), o.Y, BorderTR, core.ColorBlue)
	put(o.X, o.Bottom(), BorderBL, core.ColorBlue)
	put(o.Right(), o.Bottom(), BorderBR, core.ColorBlue)

	title := []rune(" BREAKOUT ")
	tx := o.X + (o.W-len(title))/2
	for i, ch := range title {
		put(tx+i, o.Y, ch, core.ColorBrightYellow)
	}

	text := []rune(legend)
	if maxW := f.W - 2; len(text) > maxW {
		text = text[:core.Max(0, maxW)]
	}
	for i, ch := range text {
		put(f.X0+1+i, f.Y1, ch, core.ColorGray)
	}

	return cells
}

// buildBricks lays out every alive brick, colored by remaining HP.
func buildBricks(grid [][]Brick, bl BrickLayout) []layerCell {
	var cells []layerCell
	for r, row := range grid {
		for c, b := range row {
			if !b.Alive() {
				continue
			}
			rect := bl.BrickRect(r, c)
			color := brickColor(b.HP)
			for y := rect.Y; y <= rect.Bottom(); y++ {
				for x := rect.X; x <= rect.Right(); x++ {
					cells = append(cells, layerCell{x: x, y: y, r: b.Glyph, c: color})
				}
			}
		}
	}
	return cells
}

func brickColor(hp int) core.Color {
	switch {
	case hp >= 3:
		return core.ColorRed
	case hp == 2:
		return core.ColorOrange
	default:
		return core.ColorGreen
	}
}

// HUDLine formats the dynamic status line.
func HUDLine(snap Snapshot) string {
	status := "PLAYING"
	if snap.Paused {
		status = "PAUSED"
	}
	return fmt.Sprintf(" Score: %d | Lives: %d | Level: %s | %s ", snap.Score, snap.Lives, snap.Level, status)
}

func (r *renderer) drawHUD(snap Snapshot) {
	r.term.DrawText(snap.Field.X0+1, snap.Field.Y0, HUDLine(snap), core.ColorBrightYellow)
}

func (r *renderer) drawPaddles(snap Snapshot) {
	colors := []core.Color{core.ColorCyan, core.ColorMagenta}
	for i, p := range snap.Paddles {
		c := colors[i%len(colors)]
		for dx := range p.Width {
			r.term.SetCell(p.X+dx, p.Y, PaddleChar, c)
		}
	}
}

func (r *renderer) drawBall(snap Snapshot) {
	r.term.SetCell(core.Round(snap.Ball.X), core.Round(snap.Ball.Y), BallChar, core.ColorWhite)
}

// Message returns the contextual prompt for a snapshot, or "".
func Message(snap Snapshot) string {
	switch {
	case snap.Won:
		return fmt.Sprintf("YOU WIN! Score: %d", snap.Score)
	case snap.Lost:
		return fmt.Sprintf("GAME OVER - Score: %d", snap.Score)
	case snap.Paused:
		return "PAUSED - press P to resume"
	case snap.Ball.JustReset:
		return "Ball lost! Press SPACE to relaunch"
	case !snap.Ball.Launched:
		return "Press SPACE to launch the ball"
	default:
		return ""
	}
}

func (r *renderer) drawMessage(snap Snapshot) {
	msg := Message(snap)
	if msg == "" {
		return
	}
	f := snap.Field
	x := f.X0 + (f.W-len([]rune(msg)))/2
	r.term.DrawText(x, f.Y0+f.H*2/3, msg, core.ColorBrightCyan)
}

// drawEndScreen shows the final result box over a cleared canvas.
func drawEndScreen(term Terminal, res Result) {
	w, h := term.Size()
	title := "GAME OVER"
	color := core.ColorBrightRed
	if res.Outcome == OutcomeWon {
		title = "YOU WIN!"
		color = core.ColorBrightYellow
	}
	score := fmt.Sprintf("Final Score: %d", res.Score)
	hint := "R: play again  |  Q/ENTER: back"

	boxW := core.Max(len(hint), len(score)) + 4
	box := core.CenteredRect(w, h, boxW, 7)

	term.Clear()
	for x := box.X; x <= box.Right(); x++ {
		term.SetCell(x, box.Y, BorderHoriz, color)
		term.SetCell(x, box.Bottom(), BorderHoriz, color)
	}
	for y := box.Y; y <= box.Bottom(); y++ {
		term.SetCell(box.X, y, BorderVert, color)
		term.SetCell(box.Right(), y, BorderVert, color)
	}
	term.SetCell(box.X, box.Y, BorderTL, color)
	term.SetCell(box.Right(), box.Y, BorderTR, color)
	term.SetCell(box.X, box.Bottom(), BorderBL, color)
	term.SetCell(box.Right(), box.Bottom(), BorderBR, color)

	center := func(y int, s string, c core.Color) {
		term.DrawText(box.X+(box.W-len(s))/2, y, s, c)
	}
	center(box.Y+1, title, color)
	center(box.Y+3, score, core.ColorWhite)
	center(box.Y+5, hint, core.ColorGray)
	term.Flush()
}
