package tutor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/wisein/internal/adversarial"
	"github.com/abhisek/wisein/internal/intent"
	"github.com/abhisek/wisein/internal/metrics"
	"github.com/abhisek/wisein/internal/question"
	"github.com/abhisek/wisein/internal/search"
	"github.com/abhisek/wisein/internal/store"
)

// Mode is the kind of session.
type Mode string

const (
	ModeQuiz      Mode = "quiz"
	ModeInterview Mode = "interview"
)

// Feedback is the outcome of answering the current question.
type Feedback struct {
	Correct  bool
	Message  string
	Expected string
	// Done is true when this answer finished the session.
	Done bool
}

// Session is one quiz or interview in progress. A Session is not safe
// for concurrent use.
type Session struct {
	ID    string
	Mode  Mode
	Topic string

	// Plan is the assembled quiz; nil for interviews.
	Plan *Plan

	svc     *Service
	queue   []question.Item
	current *question.Item
	history adversarial.History

	engine string
	stats  search.Stats

	served  int
	correct int
	started time.Time
	done    bool
}

// Start parses a chat message and starts the session it asks for.
func (s *Service) Start(ctx context.Context, text string) (*Session, error) {
	in := intent.Parse(text)
	switch in.Kind {
	case intent.KindQuiz:
		return s.StartQuiz(ctx, in.Topic)
	case intent.KindInterview:
		return s.StartInterview(ctx, in.Topic)
	}
	return nil, ErrUnknownIntent
}

// StartQuiz plans a quiz on topic and returns a session serving it.
func (s *Service) StartQuiz(ctx context.Context, topic string) (*Session, error) {
	plan, err := s.PlanQuiz(ctx, topic)
	if err != nil {
		return nil, err
	}

	sess := s.newSession(ModeQuiz, plan.Topic)
	sess.Plan = plan
	sess.queue = plan.Items
	sess.engine, sess.stats = metrics.EngineCSP, plan.Stats
	sess.advanceQueue()
	s.recordSession(ctx, sess, "start")
	if sess.current == nil {
		sess.finish(ctx)
	}
	return sess, nil
}

// StartInterview picks the first interview question on topic and returns
// a session that keeps picking until the configured length is reached or
// the pool runs out.
func (s *Service) StartInterview(ctx context.Context, topic string) (*Session, error) {
	sess := s.newSession(ModeInterview, topic)
	step, err := s.NextInterviewQuestion(ctx, topic, sess.history)
	if err != nil {
		return nil, err
	}
	sess.setStep(step)
	s.recordSession(ctx, sess, "start")
	return sess, nil
}

func (s *Service) newSession(mode Mode, topic string) *Session {
	return &Session{
		ID:      uuid.NewString(),
		Mode:    mode,
		Topic:   topic,
		svc:     s,
		started: time.Now(),
	}
}

// Current returns the question awaiting an answer. ok is false once the
// session is done.
func (sess *Session) Current() (item question.Item, card question.Card, ok bool) {
	if sess.done || sess.current == nil {
		return question.Item{}, question.Card{}, false
	}
	card, _ = sess.svc.Card(sess.current.ID)
	return *sess.current, card, true
}

// LastSearch returns the engine and statistics of the search that
// produced the current question.
func (sess *Session) LastSearch() (engine string, stats search.Stats) {
	return sess.engine, sess.stats
}

// Done reports whether the session has finished.
func (sess *Session) Done() bool {
	return sess.done
}

// Score returns the number of questions answered and answered correctly.
func (sess *Session) Score() (served, correct int) {
	return sess.served, sess.correct
}

// Total returns the number of questions the session plans to ask. An
// interview may end earlier when its pool runs out.
func (sess *Session) Total() int {
	if sess.Mode == ModeQuiz {
		return len(sess.Plan.Items)
	}
	return sess.svc.cfg.Interview.Length
}

// Answer checks response against the current question and moves on to
// the next one.
func (sess *Session) Answer(ctx context.Context, response string) (Feedback, error) {
	item, card, ok := sess.Current()
	if !ok {
		return Feedback{}, ErrSessionDone
	}

	fb := Feedback{Correct: card.Check(response), Expected: card.Answer}
	if fb.Correct {
		fb.Message = card.CorrectFeedback
		sess.correct++
	} else {
		fb.Message = card.IncorrectFeedback
	}
	sess.served++
	sess.history.Add(item.ID)

	if err := sess.advance(ctx); err != nil {
		return fb, err
	}
	fb.Done = sess.done
	return fb, nil
}

func (sess *Session) advance(ctx context.Context) error {
	switch sess.Mode {
	case ModeQuiz:
		sess.advanceQueue()
	case ModeInterview:
		if sess.history.Len() >= sess.svc.cfg.Interview.Length {
			sess.current = nil
			break
		}
		step, err := sess.svc.NextInterviewQuestion(ctx, sess.Topic, sess.history)
		if errors.Is(err, ErrNoQuestions) {
			sess.current = nil
			break
		}
		if err != nil {
			return fmt.Errorf("next interview question: %w", err)
		}
		sess.setStep(step)
	}

	if sess.current == nil {
		sess.finish(ctx)
	}
	return nil
}

func (sess *Session) advanceQueue() {
	if len(sess.queue) == 0 {
		sess.current = nil
		return
	}
	next := sess.queue[0]
	sess.queue = sess.queue[1:]
	sess.current = &next
}

func (sess *Session) setStep(step *Step) {
	item := step.Item
	sess.current = &item
	sess.engine, sess.stats = metrics.EngineAdversarial, step.Stats
}

func (sess *Session) finish(ctx context.Context) {
	if sess.done {
		return
	}
	sess.done = true
	sess.svc.recordSession(ctx, sess, "end")
}

func (s *Service) recordSession(ctx context.Context, sess *Session, action string) {
	s.logger.InfoContext(ctx, "session "+action,
		"session", sess.ID, "mode", sess.Mode, "topic", sess.Topic,
		"served", sess.served, "correct", sess.correct)
	if s.sessions == nil {
		return
	}
	data := store.SessionEventData{
		SessionID:       sess.ID,
		Mode:            string(sess.Mode),
		Action:          action,
		Topic:           sess.Topic,
		QuestionsServed: sess.served,
		CorrectAnswers:  sess.correct,
	}
	if action == "end" {
		data.DurationSecs = int(time.Since(sess.started).Seconds())
	}
	if err := s.sessions.AppendSessionEvent(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "failed to store session event", "session", sess.ID, "err", err)
	}
}
