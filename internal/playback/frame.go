package playback

import (
	"fmt"

	"github.com/abhisek/listlab/internal/lesson"
)

// EdgeKind says how a link between two nodes should be drawn.
type EdgeKind string

const (
	EdgeNext     EdgeKind = "next"
	EdgePrev     EdgeKind = "prev"
	EdgeCircular EdgeKind = "circular" // tail back to the first node
	EdgeNull     EdgeKind = "null"     // explicit null terminator, To is empty
)

// Edge is a resolved link between two nodes of the current step.
type Edge struct {
	From string   `json:"from"`
	To   string   `json:"to,omitempty"`
	Kind EdgeKind `json:"kind"`
}

// Mark is a resolved external pointer. Null marks point at NULL.
type Mark struct {
	Label  string `json:"label"`
	Target string `json:"target,omitempty"`
	Color  string `json:"color"`
	Null   bool   `json:"null,omitempty"`
}

// CodeLine is one source line with its highlight state. Condition is only
// set on the active line of a step that evaluated one.
type CodeLine struct {
	Text      string `json:"text"`
	Active    bool   `json:"active"`
	Condition *bool  `json:"condition,omitempty"`
}

// Frame is the derived, render-ready view of a playback instance.
type Frame struct {
	Index      int           `json:"index"`
	Total      int           `json:"total"`
	Playing    bool          `json:"playing"`
	Nodes      []lesson.Node `json:"nodes"`
	Edges      []Edge        `json:"edges"`
	Marks      []Mark        `json:"marks"`
	ActiveLine int           `json:"activeLine"`
	Condition  *bool         `json:"condition,omitempty"`
	Message    string        `json:"message,omitempty"`
	Action     lesson.Action `json:"action,omitempty"`
	Code       []CodeLine    `json:"code,omitempty"`
	Output     []string      `json:"output"`
}

// Status renders the position line shown under a visualization.
func (f Frame) Status() string {
	if f.Total == 0 {
		return "Static view"
	}
	return fmt.Sprintf("Step %d of %d", f.Index+1, f.Total)
}

func buildFrame(steps []lesson.ExecutionStep, base *lesson.Visualization, code []string, st State) Frame {
	f := Frame{
		Index:      st.Index,
		Total:      len(steps),
		Playing:    st.Playing,
		ActiveLine: -1,
		Output:     st.Output,
	}

	var pointers []lesson.Pointer
	switch {
	case len(steps) > 0:
		cur := steps[st.Index]
		f.Nodes = cur.Nodes
		pointers = cur.Pointers
		f.ActiveLine = cur.LineIndex
		f.Condition = cur.Condition
		f.Message = cur.Message
		f.Action = cur.Action
	case base != nil:
		f.Nodes = base.Nodes
		pointers = base.Pointers
		if base.ActiveLineIndex != nil {
			f.ActiveLine = *base.ActiveLineIndex
		}
		f.Message = base.Message
	}

	f.Edges = resolveEdges(f.Nodes)
	f.Marks = resolveMarks(f.Nodes, pointers)

	if len(code) > 0 {
		f.Code = make([]CodeLine, len(code))
		for i, text := range code {
			f.Code[i] = CodeLine{Text: text, Active: i == f.ActiveLine}
			if i == f.ActiveLine {
				f.Code[i].Condition = f.Condition
			}
		}
	}
	return f
}

// resolveEdges turns node links into drawable edges. References to ids that
// are not in the node set are skipped.
func resolveEdges(nodes []lesson.Node) []Edge {
	ids := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		ids[n.ID] = true
	}

	edges := []Edge{}
	for _, n := range nodes {
		switch {
		case n.Next.IsNull():
			edges = append(edges, Edge{From: n.ID, Kind: EdgeNull})
		case !n.Next.IsAbsent():
			to, _ := n.Next.Target()
			if !ids[to] {
				break
			}
			kind := EdgeNext
			if to == nodes[0].ID && len(nodes) > 1 {
				kind = EdgeCircular
			}
			edges = append(edges, Edge{From: n.ID, To: to, Kind: kind})
		}

		if to, ok := n.Prev.Target(); ok && ids[to] {
			edges = append(edges, Edge{From: n.ID, To: to, Kind: EdgePrev})
		}
	}
	return edges
}

func resolveMarks(nodes []lesson.Node, pointers []lesson.Pointer) []Mark {
	ids := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		ids[n.ID] = true
	}

	marks := []Mark{}
	for _, p := range pointers {
		if p.TargetNodeID == nil {
			marks = append(marks, Mark{Label: p.Label, Color: p.Color, Null: true})
			continue
		}
		if !ids[*p.TargetNodeID] {
			continue
		}
		marks = append(marks, Mark{Label: p.Label, Target: *p.TargetNodeID, Color: p.Color})
	}
	return marks
}
