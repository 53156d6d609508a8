package playback

import (
	"slices"

	"github.com/abhisek/listlab/internal/lesson"
)

// State is the mutable part of a playback instance.
type State struct {
	Playing bool
	Index   int
	Output  []string
}

// ResetState is the state every instance starts from and returns to on reset.
func ResetState() State {
	return State{Output: []string{}}
}

// ApplyStep folds one step into the output history. Only print steps with
// output text contribute, and a print identical to the most recent entry is dropped so
// that re-applying the same step never duplicates output. Earlier, non
// adjacent repeats are kept.
func ApplyStep(s State, step lesson.ExecutionStep) State {
	if step.Action != lesson.ActionPrint || step.OutputText == "" {
		return s
	}
	if n := len(s.Output); n > 0 && s.Output[n-1] == step.OutputText {
		return s
	}
	out := make([]string, len(s.Output), len(s.Output)+1)
	copy(out, s.Output)
	s.Output = append(out, step.OutputText)
	return s
}

func (s State) clone() State {
	s.Output = slices.Clone(s.Output)
	if s.Output == nil {
		s.Output = []string{}
	}
	return s
}
