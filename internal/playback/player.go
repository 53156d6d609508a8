package playback

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/abhisek/listlab/internal/lesson"
)

// DefaultInterval is the delay between automatic steps.
const DefaultInterval = 2 * time.Second

// Player drives an Engine from a ticker. At most one ticker is alive per
// player: every transition cancels the running ticker before it may start
// a new one.
type Player struct {
	mu       sync.Mutex
	engine   *Engine
	clock    clock.Clock
	interval time.Duration
	cancel   chan struct{} // non-nil while a ticker goroutine owns playback
	frames   chan Frame
	closed   bool
}

// Option configures a Player.
type Option func(*Player)

// WithClock injects the clock used for the step ticker.
func WithClock(c clock.Clock) Option {
	return func(p *Player) { p.clock = c }
}

// WithInterval overrides DefaultInterval.
func WithInterval(d time.Duration) Option {
	return func(p *Player) {
		if d > 0 {
			p.interval = d
		}
	}
}

// NewPlayer wraps an engine. The player owns the engine from now on.
func NewPlayer(e *Engine, opts ...Option) *Player {
	p := &Player{
		engine:   e,
		clock:    clock.New(),
		interval: DefaultInterval,
		frames:   make(chan Frame, 1),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Frames delivers a frame after every state change. Slow readers only see
// the latest frame.
func (p *Player) Frames() <-chan Frame {
	return p.frames
}

// Frame returns the current frame.
func (p *Player) Frame() Frame {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.engine.Frame()
}

// State returns a copy of the engine state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.engine.State()
}

// TogglePlay starts or pauses automatic stepping.
func (p *Player) TogglePlay() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	if p.engine.TogglePlay() {
		p.startLocked()
	}
	p.publishLocked()
}

// Play starts automatic stepping. Calling it while playing keeps the
// running ticker.
func (p *Player) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}
	if p.engine.Play() {
		p.startLocked()
	}
	p.publishLocked()
}

// Pause stops automatic stepping.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	p.engine.Pause()
	p.publishLocked()
}

// Step advances one step by hand.
func (p *Player) Step() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.engine.Step() {
		p.publishLocked()
	}
}

// Reset stops playback and rewinds.
func (p *Player) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	p.engine.Reset()
	p.publishLocked()
}

// Load replaces the step sequence, for example when the learner switches
// lessons. Any running ticker is cancelled first.
func (p *Player) Load(steps []lesson.ExecutionStep, base *lesson.Visualization, code []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	p.engine.Load(steps, base, code)
	p.publishLocked()
}

// Close stops the ticker. The player must not be used afterwards.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	p.engine.Pause()
	p.closed = true
}

func (p *Player) startLocked() {
	if p.closed {
		p.engine.Pause()
		return
	}
	cancel := make(chan struct{})
	p.cancel = cancel
	t := p.clock.Ticker(p.interval)
	go p.run(t, cancel)
}

func (p *Player) stopLocked() {
	if p.cancel != nil {
		close(p.cancel)
		p.cancel = nil
	}
}

func (p *Player) run(t *clock.Ticker, cancel chan struct{}) {
	defer t.Stop()
	for {
		select {
		case <-cancel:
			return
		case <-t.C:
		}

		p.mu.Lock()
		if p.cancel != cancel {
			p.mu.Unlock()
			return
		}
		p.engine.Tick()
		playing := p.engine.state.Playing
		if !playing {
			p.cancel = nil
		}
		p.publishLocked()
		p.mu.Unlock()

		if !playing {
			return
		}
	}
}

// publishLocked replaces any unread frame with the current one.
func (p *Player) publishLocked() {
	f := p.engine.Frame()
	select {
	case p.frames <- f:
		return
	default:
	}
	select {
	case <-p.frames:
	default:
	}
	select {
	case p.frames <- f:
	default:
	}
}
