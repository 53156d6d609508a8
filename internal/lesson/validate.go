package lesson

import (
	"fmt"
	"strings"
)

// Issue is a structural problem found in authored lesson data. Issues do
// not stop playback; the engine skips whatever it cannot resolve.
type Issue struct {
	LessonID  int
	StepID    string
	StepIndex int // execution step index, or -1 for the lesson step itself
	Msg       string
}

func (i Issue) String() string {
	if i.StepIndex >= 0 {
		return fmt.Sprintf("lesson %d step %q execution step %d: %s", i.LessonID, i.StepID, i.StepIndex, i.Msg)
	}
	return fmt.Sprintf("lesson %d step %q: %s", i.LessonID, i.StepID, i.Msg)
}

// Validate checks every lesson in the catalog and returns all issues found.
func Validate(c *Catalog) []Issue {
	var issues []Issue
	for _, l := range c.lessons {
		issues = append(issues, validateLesson(l)...)
	}
	return issues
}

// IssuesError folds issues into a single error, or nil when there are none.
func IssuesError(issues []Issue) error {
	if len(issues) == 0 {
		return nil
	}
	lines := make([]string, len(issues))
	for i, is := range issues {
		lines[i] = is.String()
	}
	return fmt.Errorf("lesson validation failed:\n  %s", strings.Join(lines, "\n  "))
}

func validateLesson(l Lesson) []Issue {
	var issues []Issue
	add := func(stepID string, idx int, format string, args ...any) {
		issues = append(issues, Issue{LessonID: l.ID, StepID: stepID, StepIndex: idx, Msg: fmt.Sprintf(format, args...)})
	}

	seen := make(map[string]bool, len(l.Steps))
	for _, s := range l.Steps {
		if seen[s.ID] {
			add(s.ID, -1, "duplicate step id")
		}
		seen[s.ID] = true

		switch s.Kind {
		case KindVisualization:
			if s.Visualization == nil {
				add(s.ID, -1, "visualization step has no base visualization")
			} else {
				for _, msg := range checkGraph(s.Visualization.Nodes, s.Visualization.Pointers) {
					add(s.ID, -1, "%s", msg)
				}
				if ali := s.Visualization.ActiveLineIndex; ali != nil && !lineInRange(*ali, s.Code) {
					add(s.ID, -1, "activeLineIndex %d outside code (%d lines)", *ali, len(s.Code))
				}
			}
			if len(s.ExecutionSteps) > 0 && len(s.Code) == 0 {
				add(s.ID, -1, "execution steps without code")
			}
			for i, es := range s.ExecutionSteps {
				for _, msg := range checkGraph(es.Nodes, es.Pointers) {
					add(s.ID, i, "%s", msg)
				}
				if len(s.Code) > 0 && !lineInRange(es.LineIndex, s.Code) {
					add(s.ID, i, "lineIndex %d outside code (%d lines)", es.LineIndex, len(s.Code))
				}
				if es.Action == ActionPrint && es.OutputText == "" {
					add(s.ID, i, "print step without outputText")
				}
			}
		case KindMCQ:
			if s.MCQ == nil {
				add(s.ID, -1, "mcq step has no question")
				continue
			}
			correct := 0
			for _, o := range s.MCQ.Options {
				if o.IsCorrect {
					correct++
				}
			}
			if correct != 1 {
				add(s.ID, -1, "mcq %s has %d correct options, want 1", s.MCQ.ID, correct)
			}
		case KindContent:
			for i, q := range s.Chatbot {
				if strings.TrimSpace(q.Question) == "" {
					add(s.ID, -1, "chatbot question %d is empty", i)
				}
			}
		}
	}
	return issues
}

// checkGraph reports references that do not resolve within the node set.
func checkGraph(nodes []Node, pointers []Pointer) []string {
	var msgs []string
	ids := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		if ids[n.ID] {
			msgs = append(msgs, fmt.Sprintf("duplicate node id %q", n.ID))
		}
		ids[n.ID] = true
	}
	for _, n := range nodes {
		if id, ok := n.Next.Target(); ok && !ids[id] {
			msgs = append(msgs, fmt.Sprintf("node %q next references missing node %q", n.ID, id))
		}
		if id, ok := n.Prev.Target(); ok && !ids[id] {
			msgs = append(msgs, fmt.Sprintf("node %q prev references missing node %q", n.ID, id))
		}
	}
	for _, p := range pointers {
		if p.TargetNodeID != nil && !ids[*p.TargetNodeID] {
			msgs = append(msgs, fmt.Sprintf("pointer %q targets missing node %q", p.Label, *p.TargetNodeID))
		}
	}
	return msgs
}

func lineInRange(i int, code []string) bool {
	return i >= 0 && i < len(code)
}
