package layout

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/listlab/internal/ui/theme"
)

// The list diagram, code panel and chatbot card need this much room.
const (
	MinWidth  = 80
	MinHeight = 24
)

// IsTooSmall reports whether the terminal is below the minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to resize the terminal.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Terminal too small!\n\nPlease resize to at\nleast %d x %d\n\nCurrent: %d x %d",
			MinWidth, MinHeight, width, height,
		))
}

// bar is the bordered strip used above and below the content.
func bar(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}

// innerWidth is the text width inside a bar.
func innerWidth(width int) int {
	return max(width-4, 0)
}

// RenderHeader shows the app name, the screen title centred, and the
// learner's position (for example "Page 2 of 6") on the right. position
// may be empty.
func RenderHeader(title, position string, width int) string {
	brand := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  ListLab")
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(position)

	inner := innerWidth(width)
	bw, cw, rw := lipgloss.Width(brand), lipgloss.Width(center), lipgloss.Width(right)

	leftGap := max((inner-cw)/2-bw, 1)
	rightGap := max(inner-bw-leftGap-cw-rw, 1)

	return bar(width).Render(brand + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right)
}

// RenderFooter lists the enabled bindings. When key and description do
// not fit on one line only the keys are shown.
func RenderFooter(bindings []key.Binding, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var full, short []string
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		full = append(full, keyStyle.Render(h.Key)+" "+descStyle.Render(h.Desc))
		short = append(short, keyStyle.Render(h.Key))
	}

	content := "  " + strings.Join(full, "   ")
	if lipgloss.Width(content) > innerWidth(width) {
		content = "  " + strings.Join(short, "  ")
	}
	return bar(width).Render(content)
}

// RenderFrame stacks header, content and footer. The content is clipped
// to whatever height the bars leave.
func RenderFrame(header, content, footer string, width, height int) string {
	h := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(h).MaxHeight(h).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
