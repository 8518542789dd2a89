package breakout

import (
	"sync"
	"sync/atomic"
)

// phaser sequences the workers of one session. It owns the session mutex,
// the tick condition every worker parks on, the control condition the
// control loop parks on, and the stop flag.
//
// Wait methods must be called with mu held and return with mu held.
type phaser struct {
	mu   sync.Mutex
	tick *sync.Cond
	ctrl *sync.Cond
	st   *GameState

	stop atomic.Bool
	done chan struct{} // Closed on stop, for sleepers outside the cond
}

func newPhaser(st *GameState) *phaser {
	p := &phaser{st: st, done: make(chan struct{})}
	p.tick = sync.NewCond(&p.mu)
	p.ctrl = sync.NewCond(&p.mu)
	return p
}

// Stopped reports whether shutdown was requested. Safe without the lock.
func (p *phaser) Stopped() bool {
	return p.stop.Load()
}

// Stop requests shutdown and wakes every waiter.
func (p *phaser) Stop() {
	p.mu.Lock()
	p.stopLocked()
	p.mu.Unlock()
}

// stopLocked is Stop for callers already holding mu.
func (p *phaser) stopLocked() {
	if !p.stop.Swap(true) {
		close(p.done)
	}
	p.tick.Broadcast()
	p.ctrl.Broadcast()
}

// rearm clears the stop flag so a new set of workers can run.
// Only valid once every worker of the previous set has returned.
func (p *phaser) rearm() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stop.Store(false)
	p.done = make(chan struct{})
}

// Done returns a channel closed when the current worker set is stopped.
func (p *phaser) Done() <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}

// WaitFrame is the loose barrier: it blocks until the game is running and
// unpaused with a frame newer than last, or until stop. Returns the current
// frame and false if stopped.
func (p *phaser) WaitFrame(last uint64) (uint64, bool) {
	for !p.stop.Load() && !(p.st.Running && !p.st.Paused && p.st.Frame > last) {
		p.tick.Wait()
	}
	return p.st.Frame, !p.stop.Load()
}

// WaitStep is the strict barrier: it blocks until the in-frame step equals
// step for a frame newer than last, or until stop. It does not look at
// Running or Paused, so a frame already in flight always drains.
func (p *phaser) WaitStep(step int, last uint64) (uint64, bool) {
	for !p.stop.Load() && !(p.st.Step == step && p.st.Frame > last) {
		p.tick.Wait()
	}
	return p.st.Frame, !p.stop.Load()
}

// WaitRedraw blocks until a new frame arrives or the state version moves,
// paused or not, or until stop.
func (p *phaser) WaitRedraw(lastFrame, lastVersion uint64) (uint64, uint64, bool) {
	for !p.stop.Load() && p.st.Frame <= lastFrame && p.st.Version <= lastVersion {
		p.tick.Wait()
	}
	return p.st.Frame, p.st.Version, !p.stop.Load()
}

// Advance hands the frame to the next phase.
func (p *phaser) Advance(next int) {
	p.st.Step = next
	p.tick.Broadcast()
}

// Tick starts a new frame if the game is live and the previous frame has
// drained. busy reports a live game whose pipeline had not finished, in
// which case the tick is dropped.
func (p *phaser) Tick() (advanced, busy bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.st.Running || p.st.Paused {
		return false, false
	}
	if p.st.Step != stepPaddle {
		return false, true
	}
	p.st.Frame++
	p.tick.Broadcast()
	return true, false
}

// signalControl wakes the control loop. Caller holds mu.
func (p *phaser) signalControl() {
	p.ctrl.Signal()
}

// WaitControl parks the control loop until pred holds or stop.
func (p *phaser) WaitControl(pred func(*GameState) bool) bool {
	for !p.stop.Load() && !pred(p.st) {
		p.ctrl.Wait()
	}
	return !p.stop.Load()
}
