// Package router keeps the stack of TUI screens.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wisein/internal/ui/layout"
)

// Screen is one full-window view of the TUI.
type Screen interface {
	// Init returns an initial command when the screen is first shown.
	Init() tea.Cmd

	// Update handles messages and returns the updated screen and command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is implemented by screens that supply their own footer
// key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// PushScreenMsg requests the router to push a new screen onto the stack.
type PushScreenMsg struct {
	Screen Screen
}

// PopScreenMsg requests the router to pop the current screen off the stack.
type PopScreenMsg struct{}

// Router manages a stack of screens. The bottom screen is never popped.
type Router struct {
	stack []Screen
}

// New creates a Router with the given initial screen.
func New(initial Screen) *Router {
	return &Router{stack: []Screen{initial}}
}

// Push adds a screen on top of the stack and returns its Init command.
func (r *Router) Push(s Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop removes the top screen. It is a no-op on the last screen.
func (r *Router) Pop() {
	if len(r.stack) > 1 {
		r.stack = r.stack[:len(r.stack)-1]
	}
}

// Active returns the top screen.
func (r *Router) Active() Screen {
	return r.stack[len(r.stack)-1]
}

// Depth returns the number of screens on the stack.
func (r *Router) Depth() int {
	return len(r.stack)
}

// KeyHints returns the active screen's hints, or nil when it has none.
func (r *Router) KeyHints() []layout.KeyHint {
	if p, ok := r.Active().(KeyHintProvider); ok {
		return p.KeyHints()
	}
	return nil
}

// Update handles navigation messages and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		r.Pop()
		return nil
	}

	updated, cmd := r.Active().Update(msg)
	r.stack[len(r.stack)-1] = updated
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
