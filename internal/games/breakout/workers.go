package breakout

import (
	"time"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// speedEvery is how many observed frames pass between speed adjustments.
const speedEvery = 6

// spawn starts one goroutine per worker. Every worker treats frames up to
// the current one as already handled.
func (s *Session) spawn() {
	s.ph.mu.Lock()
	start := s.st.Frame
	version := s.st.Version
	done := s.ph.done
	s.ph.mu.Unlock()

	phys := s.cfg.Physics
	workers := []func(){
		func() { s.clock(done) },
		func() { s.input(done) },
		func() {
			s.phase(stepPaddle, stepBall, start, func(st *GameState) bool {
				st.MovePaddles(s.cfg.Gameplay.PaddleSpeed)
				return false
			})
		},
		func() {
			s.phase(stepBall, stepWalls, start, func(st *GameState) bool {
				st.MoveBall()
				return false
			})
		},
		func() {
			s.phase(stepWalls, stepBricks, start, func(st *GameState) bool {
				return st.ResolveWalls(phys)
			})
		},
		func() {
			s.phase(stepBricks, stepState, start, func(st *GameState) bool {
				st.ResolveBricks(phys)
				return false
			})
		},
		func() {
			s.phase(stepState, stepPaddle, start, func(st *GameState) bool {
				return st.Evaluate()
			})
		},
		func() { s.render(start, version-1) },
		func() { s.speed(start) },
	}

	s.wg.Add(len(workers))
	for _, w := range workers {
		go func() {
			defer s.wg.Done()
			w()
		}()
	}
}

// clock starts a new frame every tick until stopped.
func (s *Session) clock(done <-chan struct{}) {
	ticker := time.NewTicker(s.tickInterval())
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
		}
		if _, busy := s.ph.Tick(); busy {
			s.log.Debug("tick dropped, frame still in flight")
		}
	}
}

// phase runs one strict step per frame: wait for its turn, apply, hand the
// frame to the next step. apply reports whether the control loop must wake.
func (s *Session) phase(step, next int, last uint64, apply func(*GameState) bool) {
	for !s.ph.Stopped() {
		s.ph.mu.Lock()
		frame, ok := s.ph.WaitStep(step, last)
		if !ok {
			s.ph.mu.Unlock()
			return
		}
		last = frame

		if apply(s.st) {
			s.ph.signalControl()
		}
		s.ph.Advance(next)
		evs := s.st.drainEvents()
		s.ph.mu.Unlock()

		s.dispatch(evs)
	}
}

// input samples the keyboard without blocking. A paddle whose movement keys
// go quiet for the grace window stops.
func (s *Session) input(done <-chan struct{}) {
	grace := s.graceInterval()
	poll := time.NewTicker(s.pollInterval())
	defer poll.Stop()

	lastMove := make([]time.Time, len(s.st.Paddles))

	for !s.ph.Stopped() {
		if ev, ok := s.term.PollAction(); ok {
			s.handleKey(ev, lastMove)
			continue
		}

		now := time.Now()
		for i, t := range lastMove {
			if t.IsZero() || now.Sub(t) <= grace {
				continue
			}
			lastMove[i] = time.Time{}
			s.ph.mu.Lock()
			s.st.Paddles[i].Intent = 0
			s.ph.mu.Unlock()
		}

		select {
		case <-done:
			return
		case <-poll.C:
		}
	}
}

// paddleFor maps a player to the paddle their keys drive.
// With a single paddle every key set drives it.
func (s *Session) paddleFor(p core.PlayerID) int {
	n := len(s.st.Paddles)
	if n == 1 {
		return 0
	}
	return core.Clamp(int(p), 0, n-1)
}

// handleKey applies one key event to the shared state.
func (s *Session) handleKey(ev core.KeyEvent, lastMove []time.Time) {
	s.ph.mu.Lock()
	st := s.st

	switch ev.Action {
	case core.ActionLeft, core.ActionRight:
		i := s.paddleFor(ev.Player)
		st.Paddles[i].Intent = -1
		if ev.Action == core.ActionRight {
			st.Paddles[i].Intent = 1
		}
		lastMove[i] = time.Now()

	case core.ActionStop:
		i := s.paddleFor(ev.Player)
		st.Paddles[i].Intent = 0
		lastMove[i] = time.Time{}

	case core.ActionLaunch:
		sign := 1.0
		if s.rng.IntN(2) == 0 {
			sign = -1
		}
		st.Launch(sign, s.cfg.Physics)

	case core.ActionPause:
		if st.Running {
			st.Paused = !st.Paused
			st.Version++
		}

	case core.ActionRestart:
		st.RestartRequested = true
		s.ph.signalControl()

	case core.ActionQuit:
		st.Running = false
		st.Quit = true
		s.ph.stopLocked()
	}

	s.ph.tick.Broadcast()
	evs := st.drainEvents()
	s.ph.mu.Unlock()

	s.dispatch(evs)
}

// render draws whenever a frame passes or the state changes while paused.
func (s *Session) render(lastFrame, lastVersion uint64) {
	r := newRenderer(s.term, len(s.st.Paddles))

	for {
		s.ph.mu.Lock()
		frame, version, ok := s.ph.WaitRedraw(lastFrame, lastVersion)
		if !ok {
			s.ph.mu.Unlock()
			return
		}
		lastFrame, lastVersion = frame, version
		snap := s.st.Snapshot()
		s.ph.mu.Unlock()

		res := r.Draw(snap)

		if res.builtStatic || res.builtBricks {
			s.ph.mu.Lock()
			if res.builtStatic {
				s.st.FrameDrawn = true
			}
			if res.builtBricks && s.st.GridGen == res.gridGen {
				s.st.GridDirty = false
			}
			s.ph.mu.Unlock()
		}
	}
}

// speed eases the ball speed toward the score target every few frames.
func (s *Session) speed(last uint64) {
	ramp := config.NewSpeedRamp(s.cfg.Physics)
	seen := 0

	for {
		s.ph.mu.Lock()
		frame, ok := s.ph.WaitFrame(last)
		if !ok {
			s.ph.mu.Unlock()
			return
		}
		last = frame
		seen++
		if seen%speedEvery == 0 {
			s.st.Ball.Speed = ramp.Next(s.st.Score, s.st.Ball.Speed)
		}
		s.ph.mu.Unlock()
	}
}
