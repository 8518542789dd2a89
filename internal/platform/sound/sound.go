// Package sound plays short blips for gameplay events. Audio is optional:
// when the speaker cannot be opened the player stays silent.
package sound

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
)

const sampleRate = beep.SampleRate(44100)

// tone is one blip: a sine at freq for dur.
type tone struct {
	freq float64
	dur  time.Duration
}

var tones = map[breakout.EventKind]tone{
	breakout.EventLaunch:         {520, 30 * time.Millisecond},
	breakout.EventWallHit:        {330, 20 * time.Millisecond},
	breakout.EventPaddleHit:      {440, 40 * time.Millisecond},
	breakout.EventBrickHit:       {660, 40 * time.Millisecond},
	breakout.EventBrickDestroyed: {880, 60 * time.Millisecond},
	breakout.EventLifeLost:       {110, 300 * time.Millisecond},
	breakout.EventWon:            {1320, 400 * time.Millisecond},
	breakout.EventLost:           {90, 500 * time.Millisecond},
}

// Blip builds the streamer for an event kind at the given volume (0..1].
// Returns false for kinds that make no sound.
func Blip(kind breakout.EventKind, volume float64) (beep.Streamer, bool) {
	t, ok := tones[kind]
	if !ok || volume <= 0 {
		return nil, false
	}
	sine, err := generators.SineTone(sampleRate, t.freq)
	if err != nil {
		return nil, false
	}
	return &effects.Volume{
		Streamer: beep.Take(sampleRate.N(t.dur), sine),
		Base:     2,
		Volume:   math.Log2(math.Min(volume, 1)),
	}, true
}

// Player mixes blips into the speaker.
type Player struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	volume float64
	ready  bool
}

// New creates a silent player. Call Init to open the speaker.
func New(volume float64) *Player {
	return &Player{
		mixer:  &beep.Mixer{},
		volume: volume,
	}
}

// Init opens the speaker. Errors are non-fatal; the player stays silent.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ready {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.ready = true
	return nil
}

// Handle plays the blip for ev. It is safe to call from any goroutine and
// fits breakout.Options.OnEvent.
func (p *Player) Handle(ev breakout.Event) {
	p.mu.Lock()
	ready := p.ready
	p.mu.Unlock()
	if !ready {
		return
	}

	s, ok := Blip(ev.Kind, p.volume)
	if !ok {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close drops queued blips.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.ready = false
}
