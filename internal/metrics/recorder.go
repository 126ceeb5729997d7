package metrics

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/abhisek/wisein/internal/csp"
	"github.com/abhisek/wisein/internal/question"
	"github.com/abhisek/wisein/internal/search"
	"github.com/abhisek/wisein/internal/store"
)

// Engine names as they appear in logs and stored events.
const (
	EngineCSP         = "csp"
	EngineAdversarial = "adversarial"
)

// Describe renders one engine run for people, e.g.
// "Minimax · 9 nodes · 0.0001s". Unknown engines render as "".
func Describe(engine string, stats search.Stats) string {
	switch engine {
	case EngineCSP:
		return fmt.Sprintf("CSP backtracking · %d steps · %.4fs", stats.Steps, stats.Seconds())
	case EngineAdversarial:
		return fmt.Sprintf("Minimax · %d nodes · %.4fs", stats.Steps, stats.Seconds())
	}
	return ""
}

// EventSink persists search events. store.EventRepo satisfies it.
type EventSink interface {
	AppendSearchEvent(ctx context.Context, data store.SearchEventData) error
}

// Recorder logs engine statistics and forwards them to an optional sink.
// Sink failures are logged and never returned.
type Recorder struct {
	logger *slog.Logger
	sink   EventSink
}

// NewRecorder creates a Recorder. A nil logger discards log output and a
// nil sink skips persistence.
func NewRecorder(logger *slog.Logger, sink EventSink) *Recorder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Recorder{logger: logger, sink: sink}
}

// RecordSolve records one quiz solver run.
func (r *Recorder) RecordSolve(ctx context.Context, topic string, c csp.Constraints, stats search.Stats) {
	detail := SummarizeConstraints(c)
	r.logger.InfoContext(ctx, "[csp] quiz search",
		"topic", topic,
		"constraints", detail,
		"success", stats.Success,
		"time", fmt.Sprintf("%.4fs", stats.Seconds()),
		"steps", stats.Steps,
	)
	r.append(ctx, store.SearchEventData{
		Engine:  EngineCSP,
		Topic:   topic,
		Detail:  detail,
		Success: stats.Success,
		Steps:   stats.Steps,
		Size:    stats.Size,
		Elapsed: stats.Elapsed,
	})
}

// RecordSelect records one interview selector run. choice is ignored when
// the selector found nothing.
func (r *Recorder) RecordSelect(ctx context.Context, topic string, choice question.Item, stats search.Stats) {
	detail := "no candidates"
	if stats.Success {
		detail = choice.String()
	}
	r.logger.InfoContext(ctx, "[adversarial] interview pick",
		"topic", topic,
		"choice", detail,
		"success", stats.Success,
		"time", fmt.Sprintf("%.4fs", stats.Seconds()),
		"nodes", stats.Steps,
	)
	r.append(ctx, store.SearchEventData{
		Engine:  EngineAdversarial,
		Topic:   topic,
		Detail:  detail,
		Success: stats.Success,
		Steps:   stats.Steps,
		Size:    stats.Size,
		Elapsed: stats.Elapsed,
	})
}

func (r *Recorder) append(ctx context.Context, data store.SearchEventData) {
	if r.sink == nil {
		return
	}
	if err := r.sink.AppendSearchEvent(ctx, data); err != nil {
		r.logger.WarnContext(ctx, "failed to store search event", "engine", data.Engine, "err", err)
	}
}

// SummarizeConstraints renders constraints as a stable one-line string,
// e.g. "size=3 topic=python max[multiple_choice]=3 min[grammar]=1".
func SummarizeConstraints(c csp.Constraints) string {
	parts := []string{fmt.Sprintf("size=%d", c.TargetSize)}
	if c.Topic != "" {
		parts = append(parts, "topic="+c.Topic)
	}

	formats := make([]string, 0, len(c.MaxOfFormat))
	for f, n := range c.MaxOfFormat {
		formats = append(formats, fmt.Sprintf("max[%s]=%d", f, n))
	}
	sort.Strings(formats)
	parts = append(parts, formats...)

	if c.MinHard > 0 {
		parts = append(parts, fmt.Sprintf("min_hard=%d", c.MinHard))
	}

	cats := make([]string, 0, len(c.MinSkillCategory))
	for cat, n := range c.MinSkillCategory {
		cats = append(cats, fmt.Sprintf("min[%s]=%d", cat, n))
	}
	sort.Strings(cats)
	parts = append(parts, cats...)

	return strings.Join(parts, " ")
}
