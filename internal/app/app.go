// Package app is the root Bubble Tea model of the chat TUI.
package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wisein/internal/router"
	"github.com/abhisek/wisein/internal/screens/chat"
	"github.com/abhisek/wisein/internal/screens/stats"
	"github.com/abhisek/wisein/internal/tutor"
	"github.com/abhisek/wisein/internal/ui/layout"
)

// Options configures the TUI.
type Options struct {
	Service *tutor.Service

	// Events backs the search log screen. Nil hides it.
	Events stats.EventSource

	// Status is shown on the right of the header, e.g. the LLM model.
	Status string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	status string
	width  int
	height int
}

func newAppModel(opts Options) AppModel {
	var newStats func() router.Screen
	if opts.Events != nil {
		newStats = func() router.Screen { return stats.New(opts.Events) }
	}
	return AppModel{
		router: router.New(chat.New(opts.Service, newStats)),
		status: opts.Status,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.frame())
	v.AltScreen = true
	return v
}

// frame renders the whole window for the current size.
func (m AppModel) frame() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	header := layout.RenderHeader(m.router.Active().Title(), m.status, m.width)

	hints := m.router.KeyHints()
	if hints == nil {
		hints = []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	}
	footer := layout.RenderFooter(hints, m.width)

	content := m.router.View(m.width, layout.ContentHeight(header, footer, m.height))
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the TUI and blocks until the user quits.
func Run(opts Options) error {
	_, err := tea.NewProgram(newAppModel(opts)).Run()
	return err
}
