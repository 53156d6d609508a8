package app

import (
	"fmt"
	"os"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/listlab/internal/router"
	"github.com/abhisek/listlab/internal/screen"
	"github.com/abhisek/listlab/internal/ui/layout"
)

var (
	keyQuit = key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("Q", "Quit"))
	keyBack = key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "Back"))
	keyKill = key.NewBinding(key.WithKeys("ctrl+c"))
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	initial []screen.Screen
	width   int
	height  int
}

// New creates the root model. The first screen is the bottom of the stack
// and the rest are pushed on top in order, so the app can open directly on
// a lesson while keeping the lesson list one Esc away.
func New(root screen.Screen, pushed ...screen.Screen) AppModel {
	return AppModel{
		router:  router.New(root),
		initial: pushed,
	}
}

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.router.Active().Init()}
	for _, s := range m.initial {
		cmds = append(cmds, m.router.Push(s))
	}
	return tea.Batch(cmds...)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if key.Matches(msg, keyKill) {
			return m, tea.Quit
		}
		if !m.capturing() {
			switch {
			case key.Matches(msg, keyQuit):
				return m, tea.Quit
			case key.Matches(msg, keyBack):
				if m.router.Depth() > 1 {
					return m, router.Pop
				}
				return m, nil
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) capturing() bool {
	c, ok := m.router.Active().(screen.Capturer)
	return ok && c.Capturing()
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if content := m.render(); content != "" {
		v.SetContent(content)
	}
	return v
}

// render draws the full screen. It is empty until the terminal size is known.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	var position string
	if p, ok := active.(screen.Positioned); ok {
		position = p.Position()
	}
	header := layout.RenderHeader(active.Title(), position, m.width)
	footer := layout.RenderFooter(m.bindings(), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) bindings() []key.Binding {
	var b []key.Binding
	if p, ok := m.router.Active().(screen.BindingProvider); ok {
		b = append(b, p.Bindings()...)
	}
	if m.capturing() {
		return b
	}
	if m.router.Depth() > 1 {
		b = append(b, keyBack)
	}
	return append(b, keyQuit)
}

// Run starts the Bubble Tea program and closes every screen when it ends.
func Run(root screen.Screen, pushed ...screen.Screen) error {
	m := New(root, pushed...)
	defer m.router.Close()

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
