package player

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/listlab/internal/lesson"
	"github.com/abhisek/listlab/internal/ui/components"
	"github.com/abhisek/listlab/internal/ui/theme"
)

func (s *Screen) View(width, height int) string {
	if len(s.lesson.Steps) == 0 {
		return theme.Hint.Render("  This lesson has no pages.")
	}

	inner := max(width-4, 20)
	step := s.Step()

	parts := []string{
		components.ProgressBar{Label: "Progress", Current: s.page + 1, Total: len(s.lesson.Steps), Width: inner}.View(),
		"",
		theme.Title.Render(step.Title),
		"",
	}

	if text := strings.TrimSpace(step.Content); text != "" {
		parts = append(parts, theme.Body.Width(inner).Render(text), "")
	}

	switch step.Kind {
	case lesson.KindVisualization:
		parts = append(parts, components.ListView{Frame: s.frame, Width: inner}.View())
	case lesson.KindMCQ:
		if step.MCQ != nil {
			parts = append(parts, s.quiz.View())
		}
	}

	if len(step.Chatbot) > 0 {
		parts = append(parts, "", s.renderChatbot(step, inner))
	}

	return lipgloss.NewStyle().Padding(0, 2).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (s *Screen) renderChatbot(step lesson.Step, width int) string {
	q := step.Chatbot[s.question]

	var b strings.Builder
	header := "💬 Check your understanding"
	if len(step.Chatbot) > 1 {
		header += fmt.Sprintf(" (%d/%d)", s.question+1, len(step.Chatbot))
	}
	b.WriteString(theme.Subtitle.Render(header))
	b.WriteString("\n")
	b.WriteString(theme.Body.Bold(true).Width(width).Render(q.Question))
	b.WriteString("\n")
	if q.Hint != "" {
		b.WriteString(theme.Hint.Width(width).Render("Hint: " + q.Hint))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case s.input.Focused():
		b.WriteString(s.input.View())
		b.WriteString("\n")
	case !s.solved:
		b.WriteString(theme.Hint.Render("Press A to answer"))
		b.WriteString("\n")
	}

	switch {
	case s.checking:
		b.WriteString(theme.Hint.Render("Checking your answer..."))
	case s.feedback != nil:
		style := theme.Body
		if s.solved {
			style = theme.Correct
		}
		line := s.feedback.Feedback
		if s.feedback.Reaction != "" {
			line = s.feedback.Reaction + "  " + line
		}
		b.WriteString(style.Width(width).Render(line))
		if !s.solved && s.attempt > 1 {
			b.WriteString("\n")
			b.WriteString(theme.Hint.Render(fmt.Sprintf("Attempt %d", s.attempt)))
		}
	}
	return theme.Card.Width(width).Render(b.String())
}
