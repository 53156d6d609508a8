package playback

import (
	"github.com/abhisek/listlab/internal/lesson"
)

// Engine walks an immutable sequence of execution steps. It is not safe for
// concurrent use; Player adds locking and the timer.
type Engine struct {
	steps []lesson.ExecutionStep
	base  *lesson.Visualization
	code  []string
	state State
}

// NewEngine creates an engine positioned on the first step.
func NewEngine(steps []lesson.ExecutionStep, base *lesson.Visualization, code []string) *Engine {
	e := &Engine{}
	e.Load(steps, base, code)
	return e
}

// ForStep creates an engine for a lesson visualization step.
func ForStep(s lesson.Step) *Engine {
	return NewEngine(s.ExecutionSteps, s.Visualization, s.Code)
}

// Load swaps in a new step sequence. State is reset and the first step is
// entered, so a first step that prints contributes to the output.
func (e *Engine) Load(steps []lesson.ExecutionStep, base *lesson.Visualization, code []string) {
	e.steps = steps
	e.base = base
	e.code = code
	e.state = ResetState()
	if len(e.steps) > 0 {
		e.state = ApplyStep(e.state, e.steps[0])
	}
}

// Len returns the number of execution steps.
func (e *Engine) Len() int { return len(e.steps) }

// State returns a copy of the current state.
func (e *Engine) State() State { return e.state.clone() }

// AtEnd reports whether the last step is current. An empty engine is always
// at its end.
func (e *Engine) AtEnd() bool {
	return e.state.Index >= len(e.steps)-1
}

// TogglePlay flips between playing and paused. It does nothing when there
// are no steps. It returns the new playing flag.
func (e *Engine) TogglePlay() bool {
	if len(e.steps) == 0 {
		return false
	}
	e.state.Playing = !e.state.Playing
	return e.state.Playing
}

// Play starts playback if there is anything to play.
func (e *Engine) Play() bool {
	if len(e.steps) == 0 {
		return false
	}
	e.state.Playing = true
	return true
}

// Pause stops playback.
func (e *Engine) Pause() {
	e.state.Playing = false
}

// Step advances one step. It is a no-op on the last step and returns
// whether the index moved.
func (e *Engine) Step() bool {
	if e.AtEnd() {
		return false
	}
	e.state.Index++
	e.state = ApplyStep(e.state, e.steps[e.state.Index])
	return true
}

// Reset stops playback, rewinds to the first step and clears the output.
func (e *Engine) Reset() {
	e.state = ResetState()
}

// Tick is the timer callback. While playing it advances one step, and on
// the last step it stops playback instead of wrapping.
func (e *Engine) Tick() bool {
	if !e.state.Playing {
		return false
	}
	if e.AtEnd() {
		e.state.Playing = false
		return false
	}
	return e.Step()
}

// Frame derives what should be displayed for the current state.
func (e *Engine) Frame() Frame {
	return buildFrame(e.steps, e.base, e.code, e.state.clone())
}

// Timeline rewinds the engine and returns the frame of every step from the
// first to the last. The engine is left paused on the last step. An engine
// without steps yields its single static frame.
func (e *Engine) Timeline() []Frame {
	e.Load(e.steps, e.base, e.code)
	frames := []Frame{e.Frame()}
	for e.Step() {
		frames = append(frames, e.Frame())
	}
	return frames
}
