package catalog

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/benbjohnson/clock"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/listlab/internal/lesson"
	"github.com/abhisek/listlab/internal/router"
	"github.com/abhisek/listlab/internal/screens/player"
)

func TestCatalogScreen_OpensLesson(t *testing.T) {
	c, err := lesson.Default()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	s := New(c, player.Deps{Clock: clock.NewMock()})

	view := ansi.Strip(s.View(100, 30))
	if !strings.Contains(view, "1. Introduction & Basics") || !strings.Contains(view, "6 lessons") {
		t.Errorf("unexpected view:\n%s", view)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	p, ok := push.Screen.(*player.Screen)
	if !ok {
		t.Fatalf("expected a player screen, got %T", push.Screen)
	}
	defer p.Close()
	if p.Title() != "Singly Linked List" {
		t.Errorf("expected second lesson, got %q", p.Title())
	}
}

func TestCatalogScreen_ResumeAfterFinishedLesson(t *testing.T) {
	c, err := lesson.Default()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	deps := player.Deps{Clock: clock.NewMock()}
	s := New(c, deps)

	first := c.Lessons()[0]
	unfinished := player.New(first, "", deps)
	defer unfinished.Close()
	s.Resume(unfinished)
	if s.menu.Selected != 0 || len(s.finished) != 0 {
		t.Fatalf("an unfinished lesson must not be ticked off")
	}

	last := first.Steps[len(first.Steps)-1].ID
	done := player.New(first, last, deps)
	defer done.Close()
	if !done.Finished() {
		t.Fatal("opening on the last page should count as finished")
	}
	s.Resume(done)

	if s.menu.Selected != 1 {
		t.Errorf("expected the next lesson to be selected, got %d", s.menu.Selected)
	}
	view := ansi.Strip(s.View(100, 30))
	if !strings.Contains(view, "1. Introduction & Basics  ✓") || !strings.Contains(view, "6 lessons, 1 finished") {
		t.Errorf("unexpected view:\n%s", view)
	}
}
