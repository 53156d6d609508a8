package components

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/listlab/internal/lesson"
	"github.com/abhisek/listlab/internal/playback"
	"github.com/abhisek/listlab/internal/ui/theme"
)

// ListView draws a playback frame: the nodes with their links and pointer
// labels, the code listing with the active line, and the output history.
type ListView struct {
	Frame playback.Frame
	Width int
}

// View renders all panels stacked vertically.
func (v ListView) View() string {
	parts := []string{v.Diagram()}
	if msg := v.Frame.Message; msg != "" {
		style := theme.Hint
		if v.Width > 0 {
			style = style.Width(v.Width)
		}
		parts = append(parts, style.Render(msg))
	}
	parts = append(parts, v.StatusLine())
	if len(v.Frame.Code) > 0 {
		parts = append(parts, v.CodePanel())
	}
	parts = append(parts, v.OutputPanel())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// StatusLine shows the position and whether playback is running.
func (v ListView) StatusLine() string {
	state := "❚❚ Paused"
	if v.Frame.Playing {
		state = "▶ Playing"
	}
	if v.Frame.Total == 0 {
		return theme.Subtitle.Render(v.Frame.Status())
	}
	return theme.Subtitle.Render(v.Frame.Status() + "   " + state)
}

// Diagram renders every row of nodes. Rows are grouped by the authored Y
// coordinate and ordered by X, so side-by-side variants (singly, doubly,
// circular) are drawn as separate chains.
func (v ListView) Diagram() string {
	if len(v.Frame.Nodes) == 0 {
		return theme.Null.Render("(empty list)") + v.nullMarks()
	}

	links := make(map[link]bool)
	tails := make(map[string]playback.Edge)
	for _, e := range v.Frame.Edges {
		switch e.Kind {
		case playback.EdgeNull, playback.EdgeCircular:
			tails[e.From] = e
		}
		if e.To != "" {
			links[link{e.From, e.To, e.Kind == playback.EdgePrev}] = true
		}
	}

	labels := make(map[string][]playback.Mark)
	for _, m := range v.Frame.Marks {
		if !m.Null {
			labels[m.Target] = append(labels[m.Target], m)
		}
	}

	data := make(map[string]int, len(v.Frame.Nodes))
	for _, n := range v.Frame.Nodes {
		data[n.ID] = n.Data
	}

	var rows []string
	for _, row := range groupRows(v.Frame.Nodes) {
		var cells []string
		for i, n := range row {
			if i > 0 {
				cells = append(cells, connector(row[i-1].ID, n.ID, links))
			}
			cells = append(cells, nodeCell(n, labels[n.ID]))
		}
		if tail, ok := tails[row[len(row)-1].ID]; ok {
			cells = append(cells, tailCell(tail, data))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...) + v.nullMarks()
}

func (v ListView) nullMarks() string {
	var b strings.Builder
	for _, m := range v.Frame.Marks {
		if m.Null {
			b.WriteString("\n")
			b.WriteString(theme.PointerColor(m.Color).Render(m.Label))
			b.WriteString(theme.Null.Render(" → NULL"))
		}
	}
	return b.String()
}

// CodePanel renders the pseudo-code listing. The active line is marked and
// carries the evaluated condition when there is one.
func (v ListView) CodePanel() string {
	var b strings.Builder
	for i, line := range v.Frame.Code {
		if i > 0 {
			b.WriteString("\n")
		}
		num := fmt.Sprintf("%2d ", i+1)
		if !line.Active {
			b.WriteString(theme.CodeLine.Render("  " + num + line.Text))
			continue
		}
		b.WriteString(theme.CodeActive.Render("▶ " + num + line.Text))
		if line.Condition != nil {
			if *line.Condition {
				b.WriteString(theme.Correct.Render("  ✓ true"))
			} else {
				b.WriteString(theme.Incorrect.Render("  ✗ false"))
			}
		}
	}
	return theme.Card.Render(b.String())
}

// OutputPanel renders the console output accumulated so far.
func (v ListView) OutputPanel() string {
	if len(v.Frame.Output) == 0 {
		return theme.Hint.Render("Output: (none yet)")
	}
	return theme.Subtitle.Render("Output: ") + theme.Output.Render(strings.Join(v.Frame.Output, " "))
}

func groupRows(nodes []lesson.Node) [][]lesson.Node {
	sorted := slices.Clone(nodes)
	slices.SortStableFunc(sorted, func(a, b lesson.Node) int {
		if c := cmp.Compare(a.Y, b.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.X, b.X)
	})

	var rows [][]lesson.Node
	for i, n := range sorted {
		if i == 0 || n.Y != sorted[i-1].Y {
			rows = append(rows, nil)
		}
		rows[len(rows)-1] = append(rows[len(rows)-1], n)
	}
	return rows
}

func nodeCell(n lesson.Node, marks []playback.Mark) string {
	style := theme.NodeBox
	switch {
	case n.IsActive:
		style = theme.NodeActive
	case n.IsTarget:
		style = theme.NodeTarget
	}
	box := style.Render(strconv.Itoa(n.Data))

	lines := []string{box}
	for _, m := range marks {
		lines = append(lines, theme.PointerColor(m.Color).Render("↑"+m.Label))
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

type link struct {
	from, to string
	prev     bool
}

// connector draws the link between adjacent nodes, vertically centred on
// the three-line node box.
func connector(from, to string, links map[link]bool) string {
	fwd := links[link{from, to, false}]
	back := links[link{to, from, true}]

	arrow := "   "
	switch {
	case fwd && back:
		arrow = " ⇄ "
	case fwd:
		arrow = " → "
	case back:
		arrow = " ← "
	}
	return "\n" + theme.Edge.Render(arrow) + "\n"
}

func tailCell(e playback.Edge, data map[string]int) string {
	if e.Kind == playback.EdgeNull {
		return "\n" + theme.Edge.Render(" → ") + theme.Null.Render("NULL") + "\n"
	}
	return "\n" + theme.EdgeBack.Render(fmt.Sprintf(" ↺ %d", data[e.To])) + "\n"
}
