// Package tutor drives quiz and interview sessions. It owns the question
// catalog, hands snapshots of it to the search engines and records every
// search.
package tutor

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/abhisek/wisein/internal/config"
	"github.com/abhisek/wisein/internal/metrics"
	"github.com/abhisek/wisein/internal/poolgen"
	"github.com/abhisek/wisein/internal/question"
	"github.com/abhisek/wisein/internal/store"
)

var (
	// ErrNoQuestions is returned when no question can be served for a
	// topic, even after falling back.
	ErrNoQuestions = errors.New("no questions available")

	// ErrUnknownIntent is returned by Start when the message asks for
	// neither a quiz nor an interview.
	ErrUnknownIntent = errors.New("could not tell whether a quiz or an interview was requested")

	// ErrSessionDone is returned when answering a finished session.
	ErrSessionDone = errors.New("session is finished")

	// ErrGenerationDisabled is returned by Generate when no generator is
	// configured.
	ErrGenerationDisabled = errors.New("question generation is not configured")
)

// QuestionSink persists generated questions. store.QuestionRepo satisfies it.
type QuestionSink interface {
	Upsert(ctx context.Context, rec store.QuestionRecord) error
}

// SessionSink persists session start and end events. store.EventRepo
// satisfies it.
type SessionSink interface {
	AppendSessionEvent(ctx context.Context, data store.SessionEventData) error
}

// Deps are the optional collaborators of a Service. Nil fields disable
// the matching feature.
type Deps struct {
	Generator poolgen.Generator
	Questions QuestionSink
	Sessions  SessionSink
	Recorder  *metrics.Recorder
	Logger    *slog.Logger
}

// Service plans quizzes and picks interview questions over a catalog.
// It is safe for concurrent use; Sessions it creates are not.
type Service struct {
	catalog   *question.Catalog
	cfg       config.Config
	generator poolgen.Generator
	questions QuestionSink
	sessions  SessionSink
	recorder  *metrics.Recorder
	logger    *slog.Logger

	// genMu serializes generation so concurrent batches never share IDs.
	genMu sync.Mutex
}

// New creates a Service over catalog.
func New(catalog *question.Catalog, cfg config.Config, deps Deps) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	recorder := deps.Recorder
	if recorder == nil {
		recorder = metrics.NewRecorder(logger, nil)
	}
	return &Service{
		catalog:   catalog,
		cfg:       cfg,
		generator: deps.Generator,
		questions: deps.Questions,
		sessions:  deps.Sessions,
		recorder:  recorder,
		logger:    logger,
	}
}

// Catalog returns the service's question bank.
func (s *Service) Catalog() *question.Catalog {
	return s.catalog
}

// Card returns the learner-facing text of an item.
func (s *Service) Card(id question.ID) (question.Card, bool) {
	return s.catalog.Card(id)
}

// Generate asks the generator for a batch of questions on topic and adds
// them to the catalog, persisting them when a QuestionSink is set. It
// returns the number of questions added.
func (s *Service) Generate(ctx context.Context, topic string, count int) (int, error) {
	if s.generator == nil {
		return 0, ErrGenerationDisabled
	}

	s.genMu.Lock()
	defer s.genMu.Unlock()

	var existing []string
	for _, it := range s.catalog.Pool().FilterTopic(topic) {
		if card, ok := s.catalog.Card(it.ID); ok {
			existing = append(existing, card.Prompt)
		}
	}

	entries, err := s.generator.Generate(ctx, poolgen.GenerateInput{
		Topic:    topic,
		Count:    count,
		FirstID:  s.catalog.NextID(),
		Existing: existing,
	})
	if err != nil {
		return 0, err
	}

	for _, e := range entries {
		s.catalog.Add(e.Item, e.Card)
		if s.questions == nil {
			continue
		}
		if err := s.questions.Upsert(ctx, store.QuestionRecord{Item: e.Item, Card: e.Card, Source: SourceLLM}); err != nil {
			s.logger.WarnContext(ctx, "failed to store generated question", "id", e.Item.ID, "err", err)
		}
	}
	s.logger.InfoContext(ctx, "generated questions", "topic", topic, "count", len(entries))
	return len(entries), nil
}

// maybeGenerate runs Generate when generation is enabled. Failures are
// logged; searching continues over the existing pool.
func (s *Service) maybeGenerate(ctx context.Context, topic string) {
	if !s.cfg.Generate.Enabled || s.generator == nil {
		return
	}
	if _, err := s.Generate(ctx, topic, s.cfg.Generate.BatchSize); err != nil {
		s.logger.WarnContext(ctx, "question generation failed", "topic", topic, "err", err)
	}
}

// warnFallback logs that topic had no questions and the fallback topic is
// used instead.
func (s *Service) warnFallback(ctx context.Context, topic string) {
	if strings.EqualFold(topic, s.cfg.Quiz.FallbackTopic) {
		return
	}
	s.logger.WarnContext(ctx, "topic not found, using fallback",
		"topic", topic, "fallback", s.cfg.Quiz.FallbackTopic)
}
