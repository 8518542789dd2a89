package breakout

import (
	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Step values order the phases inside one frame.
const (
	stepPaddle = iota // paddle mover runs, then 1
	stepBall          // ball integrator runs, then 2
	stepWalls         // wall/paddle resolver runs, then 3
	stepBricks        // brick resolver runs, then 4
	stepState         // state evaluator runs, then back to 0
)

// Field is the playfield geometry, derived once per session from the
// terminal size.
type Field struct {
	Outer core.Rect // Border rectangle

	// Inner play area, inclusive bounds.
	X0, Y0, X1, Y1 int
	W, H           int

	PaddleY int // Row the paddles ride on
}

// NewField centers a fieldW x fieldH frame inside a termW x termH terminal.
// The frame is clipped to the terminal; drawing past the edges is left to
// the terminal.
func NewField(termW, termH, fieldW, fieldH int) Field {
	outer := core.CenteredRect(termW, termH, fieldW, fieldH)
	f := Field{
		Outer: outer,
		X0:    outer.X + 1,
		Y0:    outer.Y + 1,
		X1:    outer.Right() - 1,
		Y1:    outer.Bottom() - 1,
	}
	f.W = f.X1 - f.X0 + 1
	f.H = f.Y1 - f.Y0 + 1
	f.PaddleY = f.Y1 - 1
	return f
}

// Paddle is one player's paddle. X is the left edge.
type Paddle struct {
	X, Y   int
	Width  int
	Intent int // -1, 0 or +1
}

// Center returns the horizontal center of the paddle.
func (p Paddle) Center() float64 {
	return float64(p.X) + float64(p.Width)/2
}

// Ball is the single ball in play.
type Ball struct {
	X, Y      float64
	VX, VY    float64
	Speed     float64 // Velocity multiplier
	Launched  bool
	JustReset bool // Set on a floor miss, cleared on launch
}

// GameState is the shared record every worker mutates. It is guarded by the
// session mutex; nothing reads or writes it outside that lock except through
// a Snapshot.
type GameState struct {
	Field   Field
	Layout  BrickLayout
	Paddles []Paddle
	Ball    Ball
	Grid    [][]Brick

	Score int
	Lives int
	Level string

	Running          bool
	Paused           bool
	Won              bool
	Lost             bool
	RestartRequested bool
	Quit             bool

	GridDirty  bool   // Brick layer must be rebuilt
	GridGen    uint64 // Bumped on every grid change
	FrameDrawn bool   // Static border layer has been built

	Frame   uint64 // Monotonic frame counter
	Step    int    // Phase within the current frame
	Version uint64 // Bumped on changes the renderer must show while paused

	pending []Event
}

// newGameState builds a state for the given field, paddle count and level,
// already reset and running.
func newGameState(field Field, paddles int, level *Level, cfg config.BreakoutConfig) *GameState {
	st := &GameState{
		Field:   field,
		Paddles: make([]Paddle, paddles),
		Level:   level.ID,
	}
	st.Layout = NewBrickLayout(field, level.Cols, level.Rows, cfg.Layout)
	st.ResetLevel(level, cfg)
	return st
}

// ResetLevel restores a fresh session in place: score 0, full lives, a new
// grid from the level template, paddles centered, ball resting on paddle 0.
// Frame is left untouched so it never decreases.
func (st *GameState) ResetLevel(level *Level, cfg config.BreakoutConfig) {
	st.Score = 0
	st.Lives = cfg.Gameplay.Lives
	st.Level = level.ID
	st.Grid = level.Grid()

	st.Running = true
	st.Paused = false
	st.Won = false
	st.Lost = false
	st.RestartRequested = false
	st.Quit = false

	st.GridDirty = true
	st.GridGen++
	st.FrameDrawn = false
	st.Step = stepPaddle
	st.Version++

	width := core.Clamp(cfg.Paddle.Width, 1, core.Max(1, st.Field.W))
	n := len(st.Paddles)
	for i := range st.Paddles {
		// Spread paddles evenly: one sits centered, two split the field in thirds.
		center := st.Field.X0 + st.Field.W*(i+1)/(n+1)
		st.Paddles[i] = Paddle{
			X:     core.Clamp(center-width/2, st.Field.X0, st.Field.X1-width+1),
			Y:     st.Field.PaddleY,
			Width: width,
		}
	}

	st.Ball = Ball{Speed: 1.0}
	st.anchorBall()
}

// anchorBall parks an unlaunched ball on the serving paddle, one row above.
func (st *GameState) anchorBall() {
	p := st.Paddles[0]
	st.Ball.X = p.Center()
	st.Ball.Y = float64(p.Y - 1)
}

// emit queues an event for delivery once the lock is released.
func (st *GameState) emit(ev Event) {
	st.pending = append(st.pending, ev)
}

// drainEvents takes the queued events.
func (st *GameState) drainEvents() []Event {
	if len(st.pending) == 0 {
		return nil
	}
	evs := st.pending
	st.pending = nil
	return evs
}

// Snapshot is a self-consistent copy of GameState for drawing and tests.
type Snapshot struct {
	Field   Field
	Layout  BrickLayout
	Paddles []Paddle
	Ball    Ball
	Grid    [][]Brick

	Score int
	Lives int
	Level string

	Running    bool
	Paused     bool
	Won        bool
	Lost       bool
	GridDirty  bool
	GridGen    uint64
	FrameDrawn bool

	Frame   uint64
	Step    int
	Version uint64
}

// Snapshot copies the state. Must be called with the session lock held.
func (st *GameState) Snapshot() Snapshot {
	grid := make([][]Brick, len(st.Grid))
	for i, row := range st.Grid {
		grid[i] = append([]Brick(nil), row...)
	}

	return Snapshot{
		Field:   st.Field,
		Layout:  st.Layout,
		Paddles: append([]Paddle(nil), st.Paddles...),
		Ball:    st.Ball,
		Grid:    grid,

		Score: st.Score,
		Lives: st.Lives,
		Level: st.Level,

		Running:    st.Running,
		Paused:     st.Paused,
		Won:        st.Won,
		Lost:       st.Lost,
		GridDirty:  st.GridDirty,
		GridGen:    st.GridGen,
		FrameDrawn: st.FrameDrawn,

		Frame:   st.Frame,
		Step:    st.Step,
		Version: st.Version,
	}
}

// BricksRemaining counts alive bricks in the snapshot.
func (snap *Snapshot) BricksRemaining() int {
	return CountAlive(snap.Grid)
}

// Hash returns a simple hash of the snapshot for determinism testing.
// Ball coordinates are hashed at 1/1000 cell precision.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Frame
	h = h*31 + uint64(snap.Score)               //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lives)               //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BricksRemaining())   //#nosec G115 -- hash computation
	h = h*31 + uint64(int64(snap.Ball.X*1000))  //#nosec G115 -- hash computation
	h = h*31 + uint64(int64(snap.Ball.Y*1000))  //#nosec G115 -- hash computation
	h = h*31 + uint64(int64(snap.Ball.VX*1000)) //#nosec G115 -- hash computation
	h = h*31 + uint64(int64(snap.Ball.VY*1000)) //#nosec G115 -- hash computation

	for _, p := range snap.Paddles {
		h = h*31 + uint64(p.X) //#nosec G115 -- hash computation
	}

	for _, row := range snap.Grid {
		for _, b := range row {
			h = h*31 + uint64(b.HP) //#nosec G115 -- hash computation
		}
	}

	return h
}
