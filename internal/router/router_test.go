package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wisein/internal/ui/layout"
)

type stubScreen struct {
	title   string
	initRan bool
	got     []tea.Msg
}

type pingMsg struct{}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	s.got = append(s.got, msg)
	return s, nil
}
func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }

type hintedScreen struct{ stubScreen }

func (h *hintedScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Enter", Description: "Send"}}
}

func TestPushAndPop(t *testing.T) {
	chat := &stubScreen{title: "chat"}
	r := New(chat)

	stats := &stubScreen{title: "stats"}
	r.Update(PushScreenMsg{Screen: stats})

	if r.Depth() != 2 || r.Active().Title() != "stats" {
		t.Fatalf("depth %d, active %q", r.Depth(), r.Active().Title())
	}
	if !stats.initRan {
		t.Error("expected Init() on pushed screen")
	}

	r.Update(PopScreenMsg{})
	if r.Depth() != 1 || r.Active().Title() != "chat" {
		t.Fatalf("depth %d, active %q", r.Depth(), r.Active().Title())
	}
}

func TestPopKeepsLastScreen(t *testing.T) {
	r := New(&stubScreen{title: "chat"})
	r.Pop()
	r.Pop()
	if r.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", r.Depth())
	}
}

func TestUpdateForwardsToActive(t *testing.T) {
	chat := &stubScreen{title: "chat"}
	stats := &stubScreen{title: "stats"}
	r := New(chat)
	r.Push(stats)

	r.Update(pingMsg{})
	if len(stats.got) != 1 || len(chat.got) != 0 {
		t.Errorf("stats got %d, chat got %d", len(stats.got), len(chat.got))
	}
	if r.View(80, 24) != "stats" {
		t.Errorf("view = %q", r.View(80, 24))
	}
}

func TestKeyHints(t *testing.T) {
	r := New(&stubScreen{title: "plain"})
	if r.KeyHints() != nil {
		t.Error("expected no hints from a plain screen")
	}
	r.Push(&hintedScreen{stubScreen{title: "hinted"}})
	if hints := r.KeyHints(); len(hints) != 1 || hints[0].Key != "Enter" {
		t.Errorf("hints = %v", hints)
	}
}
