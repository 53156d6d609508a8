package playback

import (
	"slices"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/abhisek/listlab/internal/lesson"
)

// opsEngine replays an operation script against a fresh engine.
// 0 = step, 1 = toggle, 2 = tick, 3 = reset.
func opsEngine(n int, ops []int) *Engine {
	steps := make([]lesson.ExecutionStep, n)
	for i := range steps {
		if i%2 == 0 {
			steps[i] = lesson.ExecutionStep{Action: lesson.ActionPrint, OutputText: string(rune('a' + i%3))}
		}
	}
	e := NewEngine(steps, nil, nil)
	for _, op := range ops {
		switch op {
		case 0:
			e.Step()
		case 1:
			e.TogglePlay()
		case 2:
			e.Tick()
		case 3:
			e.Reset()
		}
	}
	return e
}

func TestEngineInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("N-1 steps reach the last index and one more is a no-op", prop.ForAll(
		func(n int) bool {
			e := NewEngine(plainSteps(n), nil, nil)
			for i := 0; i < n-1; i++ {
				e.Step()
			}
			if e.State().Index != n-1 {
				return false
			}
			moved := e.Step()
			return !moved && e.State().Index == n-1
		},
		gen.IntRange(1, 64),
	))

	properties.Property("reset always yields the initial state", prop.ForAll(
		func(n int, ops []int) bool {
			e := opsEngine(n, ops)
			e.Reset()
			s := e.State()
			return !s.Playing && s.Index == 0 && len(s.Output) == 0
		},
		gen.IntRange(0, 20),
		gen.SliceOf(gen.IntRange(0, 3)),
	))

	properties.Property("index stays within bounds", prop.ForAll(
		func(n int, ops []int) bool {
			e := opsEngine(n, ops)
			idx := e.State().Index
			if n == 0 {
				return idx == 0
			}
			return idx >= 0 && idx < n
		},
		gen.IntRange(0, 20),
		gen.SliceOf(gen.IntRange(0, 3)),
	))

	properties.Property("output never has adjacent duplicates", prop.ForAll(
		func(outs []string) bool {
			s := ResetState()
			for _, o := range outs {
				s = ApplyStep(s, lesson.ExecutionStep{Action: lesson.ActionPrint, OutputText: o})
			}
			for i := 1; i < len(s.Output); i++ {
				if s.Output[i] == s.Output[i-1] {
					return false
				}
			}
			return len(s.Output) <= len(outs)
		},
		gen.SliceOf(gen.OneConstOf("5", "10", "15")),
	))

	properties.Property("dedup matches compacting the print sequence", prop.ForAll(
		func(outs []string) bool {
			s := ResetState()
			for _, o := range outs {
				s = ApplyStep(s, lesson.ExecutionStep{Action: lesson.ActionPrint, OutputText: o})
			}
			return slices.Equal(s.Output, slices.Compact(slices.Clone(outs)))
		},
		gen.SliceOf(gen.OneConstOf("x", "y")),
	))

	properties.TestingRun(t)
}
