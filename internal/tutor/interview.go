package tutor

import (
	"context"

	"github.com/abhisek/wisein/internal/adversarial"
	"github.com/abhisek/wisein/internal/question"
	"github.com/abhisek/wisein/internal/search"
)

// Step is one interview pick.
type Step struct {
	Topic string        `json:"topic"`
	Item  question.Item `json:"item"`
	Card  question.Card `json:"card"`
	Stats search.Stats  `json:"stats"`
}

// NextInterviewQuestion picks the most demanding unasked question on
// topic. The first pick of an interview (empty history) may grow the pool
// through the generator first. When topic has no questions the fallback
// topic's pool is searched instead.
func (s *Service) NextInterviewQuestion(ctx context.Context, topic string, history adversarial.History) (*Step, error) {
	if history.Len() == 0 {
		s.maybeGenerate(ctx, topic)
	}

	pool := s.catalog.Pool()
	candidates := pool.FilterTopic(topic)
	if len(candidates) == 0 {
		s.warnFallback(ctx, topic)
		candidates = pool.FilterTopic(s.cfg.Quiz.FallbackTopic)
	}

	res := adversarial.SelectNext(candidates, history)
	s.recorder.RecordSelect(ctx, topic, res.Item, res.Stats)
	if !res.Found() {
		return nil, ErrNoQuestions
	}

	card, _ := s.catalog.Card(res.Item.ID)
	return &Step{Topic: topic, Item: res.Item, Card: card, Stats: res.Stats}, nil
}
