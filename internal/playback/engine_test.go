package playback

import (
	"fmt"
	"slices"
	"testing"

	"github.com/abhisek/listlab/internal/lesson"
)

func printStep(out string) lesson.ExecutionStep {
	return lesson.ExecutionStep{Action: lesson.ActionPrint, OutputText: out}
}

func plainSteps(n int) []lesson.ExecutionStep {
	steps := make([]lesson.ExecutionStep, n)
	for i := range steps {
		steps[i] = lesson.ExecutionStep{LineIndex: i % 3, Message: fmt.Sprintf("step %d", i)}
	}
	return steps
}

func TestApplyStep_Dedup(t *testing.T) {
	tests := []struct {
		name   string
		prints []string
		want   []string
	}{
		{"consecutive duplicates collapse", []string{"5", "5", "10"}, []string{"5", "10"}},
		{"non-adjacent repeats kept", []string{"5", "10", "5"}, []string{"5", "10", "5"}},
		{"cumulative traversal output", []string{"5", "5, 10", "5, 10, 15"}, []string{"5", "5, 10", "5, 10, 15"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ResetState()
			for _, p := range tt.prints {
				s = ApplyStep(s, printStep(p))
			}
			if !slices.Equal(s.Output, tt.want) {
				t.Errorf("output = %q, want %q", s.Output, tt.want)
			}
		})
	}
}

func TestApplyStep_IgnoresNonPrint(t *testing.T) {
	s := ResetState()
	s = ApplyStep(s, lesson.ExecutionStep{Action: lesson.ActionTraverse, OutputText: "x"})
	s = ApplyStep(s, lesson.ExecutionStep{OutputText: "y"})
	if len(s.Output) != 0 {
		t.Fatalf("expected no output, got %q", s.Output)
	}
}

func TestApplyStep_SkipsPrintWithoutText(t *testing.T) {
	s := ResetState()
	s = ApplyStep(s, printStep(""))
	s = ApplyStep(s, printStep("5"))
	s = ApplyStep(s, printStep(""))
	if !slices.Equal(s.Output, []string{"5"}) {
		t.Fatalf("output = %q, want [5]", s.Output)
	}
}

func TestEngine_PrintWithoutTextAddsNothing(t *testing.T) {
	e := NewEngine([]lesson.ExecutionStep{
		{Action: lesson.ActionTraverse},
		{Action: lesson.ActionPrint},
		printStep("5"),
	}, nil, nil)
	e.Step()
	e.Step()
	if got := e.State().Output; !slices.Equal(got, []string{"5"}) {
		t.Fatalf("output = %q, want [5]", got)
	}
}

func TestApplyStep_DoesNotAliasInput(t *testing.T) {
	prev := State{Output: make([]string, 1, 8)}
	prev.Output[0] = "a"
	next := ApplyStep(prev, printStep("b"))
	_ = ApplyStep(prev, printStep("c"))
	if next.Output[1] != "b" {
		t.Fatalf("reducer shared backing array: %q", next.Output)
	}
}

func TestEngine_StepThroughEngine(t *testing.T) {
	tests := []struct {
		prints []string
		want   []string
	}{
		{[]string{"5", "5", "10"}, []string{"5", "10"}},
		{[]string{"5", "10", "5"}, []string{"5", "10", "5"}},
	}
	for _, tt := range tests {
		steps := make([]lesson.ExecutionStep, len(tt.prints))
		for i, p := range tt.prints {
			steps[i] = printStep(p)
		}
		e := NewEngine(steps, nil, nil)
		for e.Step() {
		}
		if got := e.State().Output; !slices.Equal(got, tt.want) {
			t.Errorf("prints %q: output = %q, want %q", tt.prints, got, tt.want)
		}
	}
}

func TestEngine_StepClampsAtEnd(t *testing.T) {
	e := NewEngine(plainSteps(4), nil, nil)
	for i := 0; i < 3; i++ {
		if !e.Step() {
			t.Fatalf("step %d should advance", i)
		}
	}
	if e.State().Index != 3 {
		t.Fatalf("index = %d, want 3", e.State().Index)
	}
	if e.Step() {
		t.Fatal("step at the last index should be a no-op")
	}
	if e.State().Index != 3 {
		t.Fatalf("index moved past the end: %d", e.State().Index)
	}
}

func TestEngine_Reset(t *testing.T) {
	steps := []lesson.ExecutionStep{printStep("1"), printStep("2"), printStep("3")}
	e := NewEngine(steps, nil, nil)
	e.Step()
	e.Play()
	e.Reset()

	s := e.State()
	if s.Playing || s.Index != 0 || len(s.Output) != 0 || s.Output == nil {
		t.Fatalf("reset state = %+v", s)
	}
}

func TestEngine_EmptyCannotPlay(t *testing.T) {
	e := NewEngine(nil, &lesson.Visualization{}, nil)
	if e.TogglePlay() {
		t.Fatal("toggle should not start an empty engine")
	}
	if e.Play() {
		t.Fatal("play should not start an empty engine")
	}
	if e.State().Playing {
		t.Fatal("empty engine is playing")
	}
	if e.Step() || e.Tick() {
		t.Fatal("empty engine should not move")
	}
}

func TestEngine_TickStopsAtLastStep(t *testing.T) {
	e := NewEngine(plainSteps(3), nil, nil)

	if e.Tick() {
		t.Fatal("tick while paused should do nothing")
	}

	e.TogglePlay()
	if !e.Tick() || !e.Tick() {
		t.Fatal("ticks should advance while steps remain")
	}
	if s := e.State(); s.Index != 2 || !s.Playing {
		t.Fatalf("state after two ticks = %+v", s)
	}
	if e.Tick() {
		t.Fatal("tick at the end should not advance")
	}
	if s := e.State(); s.Index != 2 || s.Playing {
		t.Fatalf("expected stop at last step, got %+v", s)
	}
}

func TestEngine_TogglePlay(t *testing.T) {
	e := NewEngine(plainSteps(2), nil, nil)
	if !e.TogglePlay() {
		t.Fatal("first toggle should play")
	}
	if e.TogglePlay() {
		t.Fatal("second toggle should pause")
	}
}

func TestEngine_LoadResets(t *testing.T) {
	e := NewEngine(plainSteps(5), nil, nil)
	e.Step()
	e.Step()
	e.Play()

	e.Load([]lesson.ExecutionStep{printStep("first"), printStep("second")}, nil, nil)
	s := e.State()
	if s.Playing || s.Index != 0 {
		t.Fatalf("load did not reset: %+v", s)
	}
	if !slices.Equal(s.Output, []string{"first"}) {
		t.Fatalf("entering the first step should apply it, got %q", s.Output)
	}
}

func TestEngine_StateIsCopy(t *testing.T) {
	e := NewEngine([]lesson.ExecutionStep{printStep("a")}, nil, nil)
	s := e.State()
	s.Output[0] = "mutated"
	if e.State().Output[0] != "a" {
		t.Fatal("State exposed internal output slice")
	}
}

func TestEngine_Timeline(t *testing.T) {
	e := NewEngine([]lesson.ExecutionStep{printStep("5"), printStep("5, 10"), printStep("5, 10")}, nil, nil)
	e.Step()
	e.Play()

	frames := e.Timeline()
	if len(frames) != 3 {
		t.Fatalf("frames = %d, want 3", len(frames))
	}
	for i, f := range frames {
		if f.Index != i {
			t.Errorf("frame %d has index %d", i, f.Index)
		}
		if f.Playing {
			t.Errorf("frame %d should not be playing", i)
		}
	}
	if !slices.Equal(frames[0].Output, []string{"5"}) {
		t.Errorf("first output = %q", frames[0].Output)
	}
	if !slices.Equal(frames[2].Output, []string{"5", "5, 10"}) {
		t.Errorf("last output = %q", frames[2].Output)
	}
	if !e.AtEnd() {
		t.Error("engine should be left on the last step")
	}
}

func TestEngine_TimelineEmpty(t *testing.T) {
	e := NewEngine(nil, &lesson.Visualization{Message: "Static view"}, nil)
	frames := e.Timeline()
	if len(frames) != 1 {
		t.Fatalf("frames = %d, want 1", len(frames))
	}
	if frames[0].Message != "Static view" {
		t.Errorf("message = %q", frames[0].Message)
	}
}
