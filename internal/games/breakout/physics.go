package breakout

import (
	"math"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// EnsureInterestingAngle enforces minimum magnitudes on both velocity
// components so the ball never travels perfectly flat or vertical.
// Signs are preserved; a zero component becomes positive.
func EnsureInterestingAngle(vx, vy, minX, minY float64) (float64, float64) {
	return floorMagnitude(vx, minX), floorMagnitude(vy, minY)
}

func floorMagnitude(v, floor float64) float64 {
	if math.Abs(v) >= floor {
		return v
	}
	if v < 0 {
		return -floor
	}
	return floor
}

// BrickLayout is the screen geometry of the brick grid.
type BrickLayout struct {
	Left      int // First column x
	Top       int // First row y
	Cols      int
	Rows      int
	BrickW    int // Base brick width
	BrickH    int
	GapX      int
	GapY      int
	Remainder int // The first Remainder columns are one cell wider
}

// NewBrickLayout spreads cols bricks across the play area, two cells narrower
// than the field. Gaps are dropped when they would eat the whole width.
func NewBrickLayout(f Field, cols, rows int, l config.BreakoutLayout) BrickLayout {
	cols = core.Max(1, cols)
	usable := f.W - 2
	gapX := l.GapX
	gaps := (cols - 1) * gapX
	if gaps >= usable {
		gapX, gaps = 0, 0
	}

	brickW := core.Max(1, (usable-gaps)/cols)
	remainder := core.Max(0, (usable-gaps)-brickW*cols)

	return BrickLayout{
		Left:      f.X0 + 1,
		Top:       f.Y0 + 2,
		Cols:      cols,
		Rows:      rows,
		BrickW:    brickW,
		BrickH:    core.Max(1, l.BrickH),
		GapX:      gapX,
		GapY:      core.Max(0, l.GapY),
		Remainder: remainder,
	}
}

// ColX returns the x of column c and its width.
func (bl BrickLayout) ColX(c int) (x, w int) {
	x = bl.Left + c*(bl.BrickW+bl.GapX) + min(c, bl.Remainder)
	w = bl.BrickW
	if c < bl.Remainder {
		w++
	}
	return x, w
}

// RowY returns the y of row r.
func (bl BrickLayout) RowY(r int) int {
	return bl.Top + r*(bl.BrickH+bl.GapY)
}

// BrickRect returns the screen rectangle of brick (r, c).
func (bl BrickLayout) BrickRect(r, c int) core.Rect {
	x, w := bl.ColX(c)
	return core.NewRect(x, bl.RowY(r), w, bl.BrickH)
}

// active reports whether simulation phases should do anything this frame.
func (st *GameState) active() bool {
	return st.Running && !st.Paused
}

// MovePaddles applies each paddle's intent, clamped to the play area, and
// keeps an unlaunched ball riding the serving paddle.
func (st *GameState) MovePaddles(speed int) {
	if !st.active() {
		return
	}
	for i := range st.Paddles {
		p := &st.Paddles[i]
		p.X = core.Clamp(p.X+p.Intent*speed, st.Field.X0, st.Field.X1-p.Width+1)
	}
	if !st.Ball.Launched {
		st.anchorBall()
	}
}

// MoveBall advances the ball by velocity times speed. Bounds are left to
// the resolvers.
func (st *GameState) MoveBall() {
	if !st.active() || !st.Ball.Launched {
		return
	}
	st.Ball.X += st.Ball.VX * st.Ball.Speed
	st.Ball.Y += st.Ball.VY * st.Ball.Speed
}

// Launch puts a resting ball in flight. sign picks the horizontal direction.
// Returns false if the ball was already moving or the game is not running.
func (st *GameState) Launch(sign float64, p config.BreakoutPhysics) bool {
	if st.Ball.Launched || !st.active() {
		return false
	}
	vx := math.Abs(p.LaunchVX)
	if sign < 0 {
		vx = -vx
	}
	st.Ball.VX, st.Ball.VY = EnsureInterestingAngle(vx, -math.Abs(p.LaunchVY), p.MinVX, p.MinVY)
	st.Ball.Launched = true
	st.Ball.JustReset = false
	st.Version++
	st.emit(Event{Kind: EventLaunch})
	return true
}

// ResolveWalls bounces the ball off the side walls, the ceiling and the
// paddles, and takes a life when the ball falls past the paddle row.
// Reports whether the game was lost this call.
func (st *GameState) ResolveWalls(p config.BreakoutPhysics) bool {
	if !st.active() || !st.Ball.Launched {
		return false
	}
	f := st.Field
	b := &st.Ball
	shape := func() { b.VX, b.VY = EnsureInterestingAngle(b.VX, b.VY, p.MinVX, p.MinVY) }

	switch {
	case b.X <= float64(f.X0+1):
		b.X = float64(f.X0 + 2)
		b.VX = math.Abs(b.VX)
		shape()
		st.emit(Event{Kind: EventWallHit})
	case b.X >= float64(f.X1-1):
		b.X = float64(f.X1 - 2)
		b.VX = -math.Abs(b.VX)
		shape()
		st.emit(Event{Kind: EventWallHit})
	}

	if b.Y <= float64(f.Y0+1) {
		b.Y = float64(f.Y0 + 2)
		b.VY = math.Abs(b.VY)
		shape()
		st.emit(Event{Kind: EventWallHit})
	}

	if b.VY > 0 {
		bx, by := core.Round(b.X), core.Round(b.Y)
		for i, pd := range st.Paddles {
			if by != pd.Y-1 || bx < pd.X || bx > pd.X+pd.Width-1 {
				continue
			}
			half := math.Max(1, float64(pd.Width)/2)
			b.Y = float64(pd.Y - 2)
			b.VY = -math.Abs(b.VY)
			b.VX = ((b.X - pd.Center()) / half) * p.PaddleGain
			shape()
			st.emit(Event{Kind: EventPaddleHit, Paddle: i})
			break
		}
	}

	if b.Y > float64(f.Y1-1) {
		return st.loseLife()
	}
	return false
}

// loseLife rests the ball on the serving paddle and takes a life.
func (st *GameState) loseLife() bool {
	st.Lives--
	st.Ball.Launched = false
	st.Ball.JustReset = true
	st.Ball.VX, st.Ball.VY = 0, 0
	st.anchorBall()
	st.Version++

	if st.Lives <= 0 {
		st.Lives = 0
		st.Lost = true
		st.Running = false
		st.emit(Event{Kind: EventLost, Score: st.Score})
		return true
	}
	st.emit(Event{Kind: EventLifeLost})
	return false
}

// ResolveBricks damages at most one brick under the ball, scanning rows
// then columns in ascending order. Reports whether a brick was hit.
func (st *GameState) ResolveBricks(p config.BreakoutPhysics) bool {
	if !st.active() || !st.Ball.Launched {
		return false
	}
	b := &st.Ball
	bx, by := core.Round(b.X), core.Round(b.Y)
	bl := st.Layout

	for r := range st.Grid {
		y := bl.RowY(r)
		if by < y || by > y+bl.BrickH-1 {
			continue
		}
		for c := range st.Grid[r] {
			x, w := bl.ColX(c)
			if bx < x || bx > x+w-1 {
				continue
			}
			brick := &st.Grid[r][c]
			if !brick.Alive() {
				continue
			}

			relX := bx - x
			if relX == 0 || relX == w-1 {
				b.VX = -b.VX
			} else {
				b.VY = -b.VY
			}
			b.VX, b.VY = EnsureInterestingAngle(b.VX, b.VY, p.MinVX, p.MinVY)

			brick.HP--
			st.GridDirty = true
			st.GridGen++
			if brick.HP == 0 {
				st.Score += brick.Points
				st.emit(Event{Kind: EventBrickDestroyed, Row: r, Col: c, Points: brick.Points, Score: st.Score})
			} else {
				st.emit(Event{Kind: EventBrickHit, Row: r, Col: c})
			}
			return true
		}
	}
	return false
}

// Evaluate flags a win once no brick is alive. Reports whether the control
// loop should wake: on a win, or on a loss flagged earlier in the frame.
func (st *GameState) Evaluate() bool {
	if st.Running && CountAlive(st.Grid) == 0 {
		st.Won = true
		st.Running = false
		st.Version++
		st.emit(Event{Kind: EventWon, Score: st.Score})
		return true
	}
	return st.Lost
}

// RunFrame runs one frame's phases in order on the calling goroutine.
// Replays and tests use it; the session drives the same phases from
// separate workers.
func (st *GameState) RunFrame(cfg config.BreakoutConfig) {
	if !st.active() {
		return
	}
	st.Frame++
	st.MovePaddles(cfg.Gameplay.PaddleSpeed)
	st.MoveBall()
	st.ResolveWalls(cfg.Physics)
	st.ResolveBricks(cfg.Physics)
	st.Evaluate()
	st.Step = stepPaddle
}
