package tutor

import (
	"context"

	"github.com/abhisek/wisein/internal/csp"
	"github.com/abhisek/wisein/internal/question"
	"github.com/abhisek/wisein/internal/search"
)

// Plan is an assembled quiz.
type Plan struct {
	// Requested is the topic as asked for.
	Requested string `json:"requested_topic"`

	// Topic is the topic as stored in the pool, after fallback.
	Topic string `json:"topic"`

	// Fallback is true when the relaxed single-question constraints were
	// needed.
	Fallback bool `json:"fallback"`

	Constraints csp.Constraints `json:"constraints"`
	Items       []question.Item `json:"items"`
	Stats       search.Stats    `json:"stats"`
}

// QuizConstraints returns the configured constraints for a quiz on topic.
func (s *Service) QuizConstraints(topic string) csp.Constraints {
	q := s.cfg.Quiz
	return csp.Constraints{
		TargetSize:       q.Size,
		Topic:            topic,
		MaxOfFormat:      map[question.Format]int{question.FormatMultipleChoice: q.MaxMultipleChoice},
		MinSkillCategory: map[question.SkillCategory]int{question.CategoryGrammar: q.MinGrammar},
	}
}

// PlanQuiz assembles a quiz on topic. When the topic has no questions the
// fallback topic is used. When the full constraints cannot be met, a
// single-question quiz is tried before giving up with ErrNoQuestions.
func (s *Service) PlanQuiz(ctx context.Context, topic string) (*Plan, error) {
	s.maybeGenerate(ctx, topic)

	pool := s.catalog.Pool()
	resolved, ok := pool.ResolveTopic(topic)
	if !ok {
		s.warnFallback(ctx, topic)
		resolved, ok = pool.ResolveTopic(s.cfg.Quiz.FallbackTopic)
		if !ok {
			resolved = s.cfg.Quiz.FallbackTopic
		}
	}

	attempts := []csp.Constraints{
		s.QuizConstraints(resolved),
		{TargetSize: s.cfg.Quiz.FallbackSize, Topic: resolved},
	}
	for i, c := range attempts {
		res := csp.Solve(pool, c)
		s.recorder.RecordSolve(ctx, resolved, c, res.Stats)
		if res.Found() {
			return &Plan{
				Requested:   topic,
				Topic:       resolved,
				Fallback:    i > 0,
				Constraints: c,
				Items:       res.Items,
				Stats:       res.Stats,
			}, nil
		}
	}
	return nil, ErrNoQuestions
}

// Solve runs the quiz solver on an explicit pool and records the run.
// A nil pool means the catalog's current pool.
func (s *Service) Solve(ctx context.Context, pool question.Pool, c csp.Constraints) csp.Result {
	if pool == nil {
		pool = s.catalog.Pool()
	}
	res := csp.Solve(pool, c)
	s.recorder.RecordSolve(ctx, c.Topic, c, res.Stats)
	return res
}
