package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette, matching the web visualizer.
var (
	Primary   = lipgloss.Color("#2563EB") // Blue (HEAD)
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Active    = lipgloss.Color("#DC2626") // Red (CURRENT)
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
)

// Visualization
var (
	NodeBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Secondary).
		Foreground(Text).
		Padding(0, 1)

	NodeActive = NodeBox.
			BorderForeground(Active).
			Bold(true)

	NodeTarget = NodeBox.
			BorderForeground(Accent).
			Bold(true)

	Edge = lipgloss.NewStyle().
		Foreground(TextDim)

	EdgeBack = lipgloss.NewStyle().
			Foreground(Accent)

	Null = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	CodeLine = lipgloss.NewStyle().
			Foreground(TextDim)

	CodeActive = lipgloss.NewStyle().
			Foreground(Text).
			Background(Border).
			Bold(true)

	Output = lipgloss.NewStyle().
		Foreground(Success)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)
)

// PointerColor returns the lesson-authored pointer color, or Primary when
// none is set.
func PointerColor(hex string) lipgloss.Style {
	if hex == "" {
		return lipgloss.NewStyle().Foreground(Primary).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Bold(true)
}
