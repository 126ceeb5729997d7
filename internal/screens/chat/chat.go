// Package chat is the conversational screen: the user asks for a quiz or
// an interview in plain words and answers questions inline.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wisein/internal/metrics"
	"github.com/abhisek/wisein/internal/router"
	"github.com/abhisek/wisein/internal/tutor"
	"github.com/abhisek/wisein/internal/ui/components"
	"github.com/abhisek/wisein/internal/ui/layout"
)

const welcome = `Hi! I can build a quiz or run a mock interview.
Try "quiz about python" or "quero uma entrevista de AWS".
Type "reset" to start over.`

type role int

const (
	roleBot role = iota
	roleUser
	roleQuestion
	roleCorrect
	roleIncorrect
)

type message struct {
	role role
	text string
	tag  string
}

// ChatScreen implements router.Screen.
type ChatScreen struct {
	svc      *tutor.Service
	newStats func() router.Screen

	input    components.TextInput
	messages []message
	session  *tutor.Session
	busy     bool
}

var _ router.Screen = (*ChatScreen)(nil)
var _ router.KeyHintProvider = (*ChatScreen)(nil)

// New creates a chat screen. newStats builds the screen opened by the
// "stats" command; nil disables the command.
func New(svc *tutor.Service, newStats func() router.Screen) *ChatScreen {
	s := &ChatScreen{
		svc:      svc,
		newStats: newStats,
		input:    components.NewTextInput("Ask for a quiz or an interview...", 200),
	}
	s.reset()
	return s
}

func (s *ChatScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *ChatScreen) Title() string {
	if s.session == nil {
		return "Chat"
	}
	return fmt.Sprintf("%s: %s", s.session.Mode, s.session.Topic)
}

func (s *ChatScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Enter", Description: "Send"}}
	if s.newStats != nil {
		hints = append(hints, layout.KeyHint{Key: "stats", Description: "Search log"})
	}
	return append(hints,
		layout.KeyHint{Key: "reset", Description: "Start over"},
		layout.KeyHint{Key: "Ctrl+C", Description: "Quit"},
	)
}

func (s *ChatScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionStartedMsg:
		s.handleStarted(msg)
		return s, nil

	case answeredMsg:
		s.handleAnswered(msg)
		return s, nil

	case tea.KeyMsg:
		if msg.String() == "enter" {
			return s, s.submit()
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// submit handles the text in the input box.
func (s *ChatScreen) submit() tea.Cmd {
	if s.busy {
		return nil
	}
	text := s.input.Take()
	if text == "" {
		return nil
	}

	switch strings.ToLower(text) {
	case "reset":
		s.reset()
		return nil
	case "stats":
		if s.newStats != nil {
			return func() tea.Msg { return router.PushScreenMsg{Screen: s.newStats()} }
		}
	}

	s.messages = append(s.messages, message{role: roleUser, text: text})
	s.busy = true

	if sess := s.session; sess != nil && !sess.Done() {
		return func() tea.Msg {
			fb, err := sess.Answer(context.Background(), text)
			return answeredMsg{Feedback: fb, Err: err}
		}
	}

	svc := s.svc
	return func() tea.Msg {
		sess, err := svc.Start(context.Background(), text)
		return sessionStartedMsg{Session: sess, Err: err}
	}
}

func (s *ChatScreen) handleStarted(msg sessionStartedMsg) {
	s.busy = false
	switch {
	case errors.Is(msg.Err, tutor.ErrUnknownIntent):
		s.say(`I did not catch that. Ask for a "quiz" or an "interview" on a topic.`)
		return
	case errors.Is(msg.Err, tutor.ErrNoQuestions):
		s.say("I could not find any questions for that topic.")
		return
	case msg.Err != nil:
		s.say("Something went wrong: " + msg.Err.Error())
		return
	}

	s.session = msg.Session
	sess := msg.Session
	switch sess.Mode {
	case tutor.ModeQuiz:
		intro := fmt.Sprintf("Quiz on %s: %d question(s).", sess.Topic, sess.Total())
		if sess.Plan.Requested != "" && !strings.EqualFold(sess.Plan.Requested, sess.Topic) {
			intro = fmt.Sprintf("No questions on %s yet, so here is a quiz on %s: %d question(s).",
				sess.Plan.Requested, sess.Topic, sess.Total())
		}
		if sess.Plan.Fallback {
			intro += " The full quiz rules could not be met, so it is a short one."
		}
		s.say(intro)
	case tutor.ModeInterview:
		s.say(fmt.Sprintf("Interview on %s. I will pick the hardest questions I think you will miss.", sess.Topic))
	}
	s.askCurrent()
}

func (s *ChatScreen) handleAnswered(msg answeredMsg) {
	s.busy = false
	if msg.Err != nil {
		s.say("Something went wrong: " + msg.Err.Error())
		return
	}

	fb := msg.Feedback
	if fb.Correct {
		s.messages = append(s.messages, message{role: roleCorrect, text: fb.Message})
	} else {
		s.messages = append(s.messages, message{role: roleIncorrect,
			text: fmt.Sprintf("%s (answer: %s)", fb.Message, fb.Expected)})
	}

	if fb.Done {
		served, correct := s.session.Score()
		s.say(fmt.Sprintf("Done! You got %d of %d right. Ask for another quiz or interview.", correct, served))
		s.session = nil
		return
	}
	s.askCurrent()
}

// askCurrent posts the session's current question. Interview questions
// carry the tag of the search that picked them; quiz questions share the
// tag of the planning search, shown on the first one.
func (s *ChatScreen) askCurrent() {
	_, card, ok := s.session.Current()
	if !ok {
		return
	}
	served, _ := s.session.Score()
	tag := ""
	if s.session.Mode == tutor.ModeInterview || served == 0 {
		tag = metrics.Describe(s.session.LastSearch())
	}
	s.messages = append(s.messages, message{role: roleQuestion, text: card.Prompt, tag: tag})
}

func (s *ChatScreen) say(text string) {
	s.messages = append(s.messages, message{role: roleBot, text: text})
}

func (s *ChatScreen) reset() {
	s.session = nil
	s.busy = false
	s.messages = []message{{role: roleBot, text: welcome}}
}
