package playback

import (
	"testing"

	"github.com/abhisek/listlab/internal/lesson"
)

func strp(s string) *string { return &s }
func boolp(b bool) *bool    { return &b }
func intp(i int) *int       { return &i }

func findEdge(edges []Edge, from string, kind EdgeKind) (Edge, bool) {
	for _, e := range edges {
		if e.From == from && e.Kind == kind {
			return e, true
		}
	}
	return Edge{}, false
}

func TestFrame_FallsBackToBaseVisualization(t *testing.T) {
	base := &lesson.Visualization{
		Nodes:           []lesson.Node{{ID: "a", Next: lesson.NullLink()}},
		Pointers:        []lesson.Pointer{{Label: "HEAD", TargetNodeID: strp("a")}},
		ActiveLineIndex: intp(1),
		Message:         "static",
	}
	e := NewEngine(nil, base, []string{"l0", "l1"})
	f := e.Frame()

	if f.Total != 0 || f.Status() != "Static view" {
		t.Errorf("unexpected position: total=%d status=%q", f.Total, f.Status())
	}
	if f.ActiveLine != 1 || !f.Code[1].Active || f.Code[0].Active {
		t.Errorf("active line = %d, code = %+v", f.ActiveLine, f.Code)
	}
	if f.Message != "static" {
		t.Errorf("message = %q", f.Message)
	}
	if len(f.Marks) != 1 || f.Marks[0].Target != "a" {
		t.Errorf("marks = %+v", f.Marks)
	}
}

func TestFrame_NoBaseNoSteps(t *testing.T) {
	f := NewEngine(nil, nil, nil).Frame()
	if f.ActiveLine != -1 || len(f.Nodes) != 0 || len(f.Edges) != 0 {
		t.Fatalf("unexpected frame %+v", f)
	}
}

func TestFrame_UsesCurrentStep(t *testing.T) {
	steps := []lesson.ExecutionStep{
		{LineIndex: 0, Message: "first"},
		{LineIndex: 2, Message: "second", Condition: boolp(false), Action: lesson.ActionCheck},
	}
	base := &lesson.Visualization{ActiveLineIndex: intp(1), Message: "base"}
	e := NewEngine(steps, base, []string{"a", "b", "c"})
	e.Step()
	f := e.Frame()

	if f.Message != "second" || f.ActiveLine != 2 || f.Action != lesson.ActionCheck {
		t.Fatalf("frame = %+v", f)
	}
	if f.Code[2].Condition == nil || *f.Code[2].Condition {
		t.Error("active line should carry the false condition")
	}
	if f.Code[0].Condition != nil {
		t.Error("inactive line should have no condition")
	}
	if f.Status() != "Step 2 of 2" {
		t.Errorf("status = %q", f.Status())
	}
}

func TestFrame_Edges(t *testing.T) {
	nodes := []lesson.Node{
		{ID: "a", Next: lesson.LinkTo("b"), Prev: lesson.NullLink()},
		{ID: "b", Next: lesson.LinkTo("ghost"), Prev: lesson.LinkTo("a")},
		{ID: "c", Next: lesson.LinkTo("a"), Prev: lesson.LinkTo("missing")},
		{ID: "d", Next: lesson.NullLink()},
		{ID: "e"},
	}
	f := NewEngine([]lesson.ExecutionStep{{Nodes: nodes}}, nil, nil).Frame()

	if e, ok := findEdge(f.Edges, "a", EdgeNext); !ok || e.To != "b" {
		t.Errorf("a -> b missing: %+v", f.Edges)
	}
	if _, ok := findEdge(f.Edges, "b", EdgeNext); ok {
		t.Error("dangling next should be skipped")
	}
	if e, ok := findEdge(f.Edges, "b", EdgePrev); !ok || e.To != "a" {
		t.Error("b prev a missing")
	}
	if e, ok := findEdge(f.Edges, "c", EdgeCircular); !ok || e.To != "a" {
		t.Error("c -> a should be drawn as circular")
	}
	if _, ok := findEdge(f.Edges, "c", EdgePrev); ok {
		t.Error("dangling prev should be skipped")
	}
	if _, ok := findEdge(f.Edges, "d", EdgeNull); !ok {
		t.Error("explicit null next should produce a terminator")
	}
	for _, e := range f.Edges {
		if e.From == "e" {
			t.Errorf("absent links should produce no edge: %+v", e)
		}
		if e.From == "a" && e.Kind == EdgePrev {
			t.Errorf("null prev should produce no edge: %+v", e)
		}
	}
}

func TestFrame_SingleNodeSelfLinkIsNotCircular(t *testing.T) {
	nodes := []lesson.Node{{ID: "solo", Next: lesson.LinkTo("solo")}}
	f := NewEngine([]lesson.ExecutionStep{{Nodes: nodes}}, nil, nil).Frame()
	if _, ok := findEdge(f.Edges, "solo", EdgeNext); !ok {
		t.Fatalf("expected plain self edge, got %+v", f.Edges)
	}
}

func TestFrame_Marks(t *testing.T) {
	steps := []lesson.ExecutionStep{{
		Nodes: []lesson.Node{{ID: "n1"}},
		Pointers: []lesson.Pointer{
			{Label: "HEAD", TargetNodeID: strp("n1"), Color: "#2563eb"},
			{Label: "CURRENT", TargetNodeID: nil},
			{Label: "LOST", TargetNodeID: strp("gone")},
		},
	}}
	f := NewEngine(steps, nil, nil).Frame()

	if len(f.Marks) != 2 {
		t.Fatalf("expected 2 marks, got %+v", f.Marks)
	}
	if f.Marks[0].Label != "HEAD" || f.Marks[0].Target != "n1" || f.Marks[0].Null {
		t.Errorf("HEAD mark = %+v", f.Marks[0])
	}
	if f.Marks[1].Label != "CURRENT" || !f.Marks[1].Null {
		t.Errorf("CURRENT mark = %+v", f.Marks[1])
	}
}

func TestFrame_TraversalLesson(t *testing.T) {
	c, err := lesson.Default()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	_, step, err := c.Step(2, "singly-2")
	if err != nil {
		t.Fatalf("step: %v", err)
	}

	e := ForStep(step)
	for e.Step() {
	}
	f := e.Frame()
	want := []string{"5", "5, 10", "5, 10, 15"}
	if len(f.Output) != len(want) {
		t.Fatalf("output = %q, want %q", f.Output, want)
	}
	for i := range want {
		if f.Output[i] != want[i] {
			t.Fatalf("output = %q, want %q", f.Output, want)
		}
	}
	if len(f.Marks) != 2 || !f.Marks[1].Null {
		t.Errorf("CURRENT should point at NULL at the end: %+v", f.Marks)
	}
}
