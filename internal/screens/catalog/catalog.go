package catalog

import (
	"fmt"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/listlab/internal/lesson"
	"github.com/abhisek/listlab/internal/router"
	"github.com/abhisek/listlab/internal/screen"
	"github.com/abhisek/listlab/internal/screens/player"
	"github.com/abhisek/listlab/internal/ui/components"
	"github.com/abhisek/listlab/internal/ui/theme"
)

// Screen lists the lessons of a catalog. Selecting one opens it in a
// player screen.
type Screen struct {
	catalog  *lesson.Catalog
	menu     components.Menu
	finished map[int]bool // lessons played to their last page
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.BindingProvider = (*Screen)(nil)
	_ screen.Resumer         = (*Screen)(nil)
)

// New creates the lesson list.
func New(c *lesson.Catalog, deps player.Deps) *Screen {
	var items []components.MenuItem
	for _, l := range c.Lessons() {
		items = append(items, components.MenuItem{
			Label:  fmt.Sprintf("%d. %s", l.ID, l.Title),
			Detail: l.Description,
			Action: func() tea.Cmd {
				return router.Push(player.New(l, "", deps))
			},
		})
	}
	return &Screen{catalog: c, menu: components.NewMenu(items), finished: map[int]bool{}}
}

// Resume implements screen.Resumer. A lesson closed on its last page is
// ticked off and the cursor moves on to the lesson after it.
func (s *Screen) Resume(from screen.Screen) tea.Cmd {
	p, ok := from.(*player.Screen)
	if !ok || !p.Finished() {
		return nil
	}
	id := p.Lesson().ID
	s.finished[id] = true
	for i, l := range s.catalog.Lessons() {
		if l.ID != id {
			continue
		}
		s.menu.Items[i].Label = fmt.Sprintf("%d. %s  ✓", l.ID, l.Title)
		if i+1 < len(s.menu.Items) {
			s.menu.Selected = i + 1
		}
	}
	return nil
}

func (s *Screen) Init() tea.Cmd { return nil }

func (s *Screen) Title() string { return "Lessons" }

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *Screen) View(width, height int) string {
	heading := theme.Title.Render("Linked Lists, Step by Step")
	subtitle := fmt.Sprintf("%d lessons", s.catalog.Len())
	if n := len(s.finished); n > 0 {
		subtitle += fmt.Sprintf(", %d finished", n)
	}
	sub := theme.Subtitle.Render(subtitle)
	return lipgloss.NewStyle().Padding(1, 2).Render(
		lipgloss.JoinVertical(lipgloss.Left, heading, sub, "", s.menu.View()),
	)
}

// Bindings implements screen.BindingProvider.
func (s *Screen) Bindings() []key.Binding {
	return s.menu.Bindings()
}
