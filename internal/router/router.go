package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/listlab/internal/screen"
)

// PushScreenMsg asks the router to open Screen on top of the active one.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg asks the router to leave the active screen.
type PopScreenMsg struct{}

// Push returns a command that opens s.
func Push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return PushScreenMsg{Screen: s} }
}

// Pop is a tea.Cmd that leaves the active screen.
func Pop() tea.Msg { return PopScreenMsg{} }

// Router keeps the screens the learner has opened. The root screen, the
// lesson list in the app, stays at the bottom for the whole session.
type Router struct {
	root  screen.Screen
	above []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{root: root}
}

// Push opens s and returns its Init command.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.above = append(r.above, s)
	return s.Init()
}

// Pop closes the active screen and resumes the one below it. It does
// nothing on the root screen.
func (r *Router) Pop() tea.Cmd {
	n := len(r.above)
	if n == 0 {
		return nil
	}
	left := r.above[n-1]
	r.above[n-1] = nil
	r.above = r.above[:n-1]
	closeScreen(left)

	if res, ok := r.Active().(screen.Resumer); ok {
		return res.Resume(left)
	}
	return nil
}

// Close releases every open screen, most recent first.
func (r *Router) Close() {
	for i := len(r.above) - 1; i >= 0; i-- {
		closeScreen(r.above[i])
	}
	closeScreen(r.root)
}

func closeScreen(s screen.Screen) {
	if c, ok := s.(screen.Closer); ok {
		c.Close()
	}
}

// Active returns the screen receiving input.
func (r *Router) Active() screen.Screen {
	if n := len(r.above); n > 0 {
		return r.above[n-1]
	}
	return r.root
}

// Depth counts the open screens, root included.
func (r *Router) Depth() int {
	return len(r.above) + 1
}

// Update handles navigation messages and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	}

	updated, cmd := r.Active().Update(msg)
	if n := len(r.above); n > 0 {
		r.above[n-1] = updated
	} else {
		r.root = updated
	}
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
