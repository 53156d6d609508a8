package components

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/listlab/internal/lesson"
	"github.com/abhisek/listlab/internal/ui/theme"
)

// MultiChoice presents a lesson quiz and grades the chosen option.
type MultiChoice struct {
	Quiz      lesson.MCQ
	Selected  int
	Submitted bool
	Correct   bool
	Keys      MenuKeys
}

// NewMultiChoice creates a selector for q.
func NewMultiChoice(q lesson.MCQ) MultiChoice {
	keys := DefaultMenuKeys
	keys.Select = key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Answer"))
	return MultiChoice{Quiz: q, Keys: keys}
}

// Update handles keyboard navigation and selection. Once an option is
// submitted further keys are ignored until Retry.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || m.Submitted || len(m.Quiz.Options) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(kmsg, m.Keys.Up):
		if m.Selected > 0 {
			m.Selected--
		}
	case key.Matches(kmsg, m.Keys.Down):
		if m.Selected < len(m.Quiz.Options)-1 {
			m.Selected++
		}
	case key.Matches(kmsg, m.Keys.Select):
		correct, err := m.Quiz.Check(m.Quiz.Options[m.Selected].ID)
		if err != nil {
			return m, nil
		}
		m.Submitted = true
		m.Correct = correct
	}
	return m, nil
}

// Retry clears the submission.
func (m *MultiChoice) Retry() {
	m.Submitted = false
	m.Correct = false
}

// View renders the question, its options and, once answered, the
// explanation.
func (m MultiChoice) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Quiz.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Quiz.Options {
		prefix := "  "
		if i == m.Selected {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, strings.ToUpper(opt.ID), opt.Text)

		var style lipgloss.Style
		switch {
		case m.Submitted && opt.IsCorrect:
			style = theme.Correct
		case m.Submitted && i == m.Selected:
			style = theme.Incorrect
		case m.Submitted:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Selected:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	if m.Submitted {
		b.WriteString("\n")
		if m.Correct {
			b.WriteString(theme.Correct.Render("✓ Correct!"))
		} else {
			b.WriteString(theme.Incorrect.Render("✗ Not quite."))
		}
		if m.Quiz.Explanation != "" {
			b.WriteString(" ")
			b.WriteString(theme.Body.Render(m.Quiz.Explanation))
		}
		b.WriteString("\n")
	}
	return b.String()
}
