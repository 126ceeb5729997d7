package poolgen

import (
	"fmt"

	"github.com/abhisek/wisein/internal/question"
)

// Validator checks a generated question before it enters the bank.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier used in error messages.
	Name() string

	// Validate returns nil when the entry passes.
	Validate(entry question.SeedEntry, input GenerateInput) *ValidationError
}

// ValidationError describes why a generated question was rejected.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Index     int    // Position of the rejected question in the batch
	Message   string // Human-readable description of the failure
	Retryable bool   // Whether regeneration is likely to fix this
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: question %d: %s", e.Validator, e.Index, e.Message)
}
