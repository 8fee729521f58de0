package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/pal/internal/screen"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title   string
	initRan bool
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

func TestPushAndPop(t *testing.T) {
	home := &stubScreen{title: "home"}
	r := New(home)

	learn := &stubScreen{title: "learn"}
	r.Update(PushScreenMsg{Screen: learn})

	if r.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", r.Depth())
	}
	if r.Active().Title() != "learn" {
		t.Errorf("active = %q, want learn", r.Active().Title())
	}
	if !learn.initRan {
		t.Error("Init() did not run on pushed screen")
	}

	r.Update(PopScreenMsg{})
	if r.Active().Title() != "home" {
		t.Errorf("active after pop = %q, want home", r.Active().Title())
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	r := New(&stubScreen{title: "home"})

	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("depth after pop at bottom = %d, want 1", r.Depth())
	}
}

func TestReplaceKeepsDepth(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	r.Push(&stubScreen{title: "topic"})

	learn := &stubScreen{title: "learn"}
	r.Update(ReplaceScreenMsg{Screen: learn})

	if r.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", r.Depth())
	}
	if r.Active().Title() != "learn" {
		t.Errorf("active = %q, want learn", r.Active().Title())
	}
	if !learn.initRan {
		t.Error("Init() did not run on replacement screen")
	}

	r.Update(PopScreenMsg{})
	if r.Active().Title() != "home" {
		t.Errorf("active after pop = %q, want home", r.Active().Title())
	}
}

func TestUpdateForwardsToActiveScreen(t *testing.T) {
	home := &stubScreen{title: "home"}
	r := New(home)

	if cmd := r.Update(tea.WindowSizeMsg{Width: 80, Height: 24}); cmd != nil {
		t.Error("stub screen should not produce a command")
	}
	if r.Active() != screen.Screen(home) {
		t.Error("active screen changed unexpectedly")
	}
}
