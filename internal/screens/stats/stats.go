// Package stats shows recent search runs and sessions from the event log.
package stats

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wisein/internal/router"
	"github.com/abhisek/wisein/internal/store"
	"github.com/abhisek/wisein/internal/ui/layout"
	"github.com/abhisek/wisein/internal/ui/theme"
)

// EventSource is the part of store.EventRepo the screen reads.
type EventSource interface {
	QuerySearchEvents(ctx context.Context, opts store.QueryOpts) ([]store.SearchEventRecord, error)
	QuerySessionEvents(ctx context.Context, opts store.QueryOpts) ([]store.SessionEventRecord, error)
}

const (
	searchLimit  = 50
	sessionLimit = 20
)

type statsLoadedMsg struct {
	Searches []store.SearchEventRecord
	Sessions []store.SessionEventRecord
	Err      error
}

// StatsScreen lists recent search and session events, newest first.
type StatsScreen struct {
	events   EventSource
	searches []store.SearchEventRecord
	sessions []store.SessionEventRecord
	offset   int
	loaded   bool
	errMsg   string
}

var _ router.Screen = (*StatsScreen)(nil)
var _ router.KeyHintProvider = (*StatsScreen)(nil)

// New creates a StatsScreen.
func New(events EventSource) *StatsScreen {
	return &StatsScreen{events: events}
}

func (s *StatsScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		searches, err := s.events.QuerySearchEvents(ctx, store.QueryOpts{Limit: searchLimit})
		if err != nil {
			return statsLoadedMsg{Err: err}
		}
		sessions, err := s.events.QuerySessionEvents(ctx, store.QueryOpts{Limit: sessionLimit})
		if err != nil {
			return statsLoadedMsg{Err: err}
		}
		return statsLoadedMsg{Searches: searches, Sessions: sessions}
	}
}

func (s *StatsScreen) Title() string {
	return "Search Log"
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StatsScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.searches = msg.Searches
			s.sessions = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			s.offset = max(s.offset-1, 0)
		case "down", "j":
			s.offset++
		}
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading...")
	}

	lines := s.lines()
	if len(lines) > height {
		s.offset = min(s.offset, len(lines)-height)
		lines = lines[s.offset : s.offset+height]
	} else {
		s.offset = 0
	}
	return strings.Join(lines, "\n")
}

func (s *StatsScreen) lines() []string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)

	out := []string{"", "  " + theme.Title.Render("Searches")}
	if len(s.searches) == 0 {
		out = append(out, "  "+dim.Render("No searches yet."))
	}
	for _, e := range s.searches {
		mark := theme.Correct.Render("✓")
		if !e.Success {
			mark = theme.Incorrect.Render("✗")
		}
		unit := "steps"
		if e.Engine == "adversarial" {
			unit = "nodes"
		}
		out = append(out, fmt.Sprintf("  %s %s  %-11s %-10s %4d %s  %.4fs  %s",
			mark, e.Timestamp.Format("Jan 02 15:04"), e.Engine, e.Topic,
			e.Steps, unit, e.Elapsed.Seconds(), dim.Render(e.Detail)))
	}

	out = append(out, "", "  "+theme.Title.Render("Sessions"))
	if len(s.sessions) == 0 {
		out = append(out, "  "+dim.Render("No sessions yet."))
	}
	for _, e := range s.sessions {
		line := fmt.Sprintf("  %s  %-5s %-9s %-10s", e.Timestamp.Format("Jan 02 15:04"), e.Action, e.Mode, e.Topic)
		if e.Action == "end" {
			line += fmt.Sprintf(" %d/%d correct  %d:%02d", e.CorrectAnswers, e.QuestionsServed,
				e.DurationSecs/60, e.DurationSecs%60)
		}
		out = append(out, line)
	}
	return out
}
