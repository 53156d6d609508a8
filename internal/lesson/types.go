package lesson

import (
	"fmt"
	"strings"
)

// Node is one element of a linked structure at a single instant of an
// algorithm run. Next and Prev reference other nodes of the same step by id.
type Node struct {
	ID       string  `json:"id" yaml:"id"`
	Data     int     `json:"data" yaml:"data"`
	Next     Link    `json:"next,omitzero" yaml:"next"`
	Prev     Link    `json:"prev,omitzero" yaml:"prev"`
	X        float64 `json:"x" yaml:"x"`
	Y        float64 `json:"y" yaml:"y"`
	IsActive bool    `json:"isActive,omitempty" yaml:"isActive"`
	IsTarget bool    `json:"isTarget,omitempty" yaml:"isTarget"`
}

// Doubly reports whether the node belongs to a list variant with a
// previous pointer.
func (n Node) Doubly() bool {
	return !n.Prev.IsAbsent()
}

// Pointer is an external reference into the structure such as HEAD or
// CURRENT. A nil TargetNodeID points at NULL.
type Pointer struct {
	ID           string  `json:"id" yaml:"id"`
	Label        string  `json:"label" yaml:"label"`
	TargetNodeID *string `json:"targetNodeId" yaml:"targetNodeId"`
	Color        string  `json:"color" yaml:"color"`
}

// Action classifies what an execution step does.
type Action string

const (
	ActionNone     Action = ""
	ActionTraverse Action = "traverse"
	ActionInsert   Action = "insert"
	ActionDelete   Action = "delete"
	ActionAssign   Action = "assign"
	ActionPrint    Action = "print"
	ActionCheck    Action = "check"
)

// Valid reports whether a is one of the known actions or unset.
func (a Action) Valid() bool {
	switch a {
	case ActionNone, ActionTraverse, ActionInsert, ActionDelete, ActionAssign, ActionPrint, ActionCheck:
		return true
	}
	return false
}

// ExecutionStep is a complete snapshot of one moment of an algorithm run.
type ExecutionStep struct {
	LineIndex  int       `json:"lineIndex" yaml:"lineIndex"`
	Nodes      []Node    `json:"nodes" yaml:"nodes"`
	Pointers   []Pointer `json:"pointers" yaml:"pointers"`
	Message    string    `json:"message,omitempty" yaml:"message"`
	OutputText string    `json:"outputText,omitempty" yaml:"outputText"`
	Condition  *bool     `json:"condition,omitempty" yaml:"condition"`
	Action     Action    `json:"action,omitempty" yaml:"action"`
}

// Visualization is the static picture shown for a visualization step when
// there is no execution sequence, or before playback starts.
type Visualization struct {
	Nodes           []Node    `json:"nodes" yaml:"nodes"`
	Pointers        []Pointer `json:"pointers" yaml:"pointers"`
	ActiveLineIndex *int      `json:"activeLineIndex,omitempty" yaml:"activeLineIndex"`
	Message         string    `json:"message,omitempty" yaml:"message"`
	OutputText      string    `json:"outputText,omitempty" yaml:"outputText"`
}

// StepKind is the kind of a lesson step.
type StepKind string

const (
	KindContent       StepKind = "content"
	KindMCQ           StepKind = "mcq"
	KindVisualization StepKind = "visualization"
)

// MCQOption is one answer choice of a quiz.
type MCQOption struct {
	ID        string `json:"id" yaml:"id"`
	Text      string `json:"text" yaml:"text"`
	IsCorrect bool   `json:"isCorrect" yaml:"isCorrect"`
}

// MCQ is a single-select quiz with an explanation.
type MCQ struct {
	ID          string      `json:"id" yaml:"id"`
	Question    string      `json:"question" yaml:"question"`
	Options     []MCQOption `json:"options" yaml:"options"`
	Explanation string      `json:"explanation" yaml:"explanation"`
}

// Check grades the chosen option. It returns an error for an unknown option.
func (q MCQ) Check(optionID string) (bool, error) {
	for _, o := range q.Options {
		if o.ID == optionID {
			return o.IsCorrect, nil
		}
	}
	return false, fmt.Errorf("unknown option %q for question %s", optionID, q.ID)
}

// ChatbotQuestion is a free-text question attached to a content step.
type ChatbotQuestion struct {
	Question string `json:"question" yaml:"question"`
	Hint     string `json:"hint,omitempty" yaml:"hint"`
	Context  string `json:"context,omitempty" yaml:"context"`
}

// EvaluationContext returns the context sent along with a student's answer.
// Questions without an authored context fall back to the lesson title and hint.
func (c ChatbotQuestion) EvaluationContext(lessonTitle string) string {
	if strings.TrimSpace(c.Context) != "" {
		return c.Context
	}
	return fmt.Sprintf("Lesson: %s. Hint provided: %s", lessonTitle, c.Hint)
}

// Step is one page of a lesson.
type Step struct {
	ID             string            `json:"id" yaml:"id"`
	Kind           StepKind          `json:"type" yaml:"type"`
	Title          string            `json:"title" yaml:"title"`
	Content        string            `json:"content,omitempty" yaml:"content"`
	Code           []string          `json:"code,omitempty" yaml:"code"`
	Visualization  *Visualization    `json:"visualization,omitempty" yaml:"visualization"`
	ExecutionSteps []ExecutionStep   `json:"executionSteps,omitempty" yaml:"executionSteps"`
	MCQ            *MCQ              `json:"mcq,omitempty" yaml:"mcq"`
	Chatbot        []ChatbotQuestion `json:"chatbot,omitempty" yaml:"chatbot"`
}

// Lesson is an ordered collection of steps.
type Lesson struct {
	ID          int    `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Steps       []Step `json:"steps" yaml:"steps"`
}

// Step returns the step with the given id.
func (l Lesson) Step(id string) (Step, bool) {
	for _, s := range l.Steps {
		if s.ID == id {
			return s, true
		}
	}
	return Step{}, false
}
