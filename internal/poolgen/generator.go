// Package poolgen grows the question bank by asking an LLM for new items
// on a topic.
package poolgen

import (
	"context"

	"github.com/abhisek/wisein/internal/question"
)

// Generator produces new questions for a topic.
type Generator interface {
	// Generate returns a batch of validated questions. Every returned
	// entry carries the requested topic and an ID at or above
	// input.FirstID.
	Generate(ctx context.Context, input GenerateInput) ([]question.SeedEntry, error)
}

// GenerateInput describes one generation request.
type GenerateInput struct {
	// Topic is the subject every generated question belongs to.
	Topic string

	// Count is the number of questions requested.
	Count int

	// FirstID is the ID given to the first generated question. Later
	// questions take consecutive IDs.
	FirstID question.ID

	// Existing holds prompts already in the bank for this topic, so the
	// model can avoid repeating them.
	Existing []string
}
