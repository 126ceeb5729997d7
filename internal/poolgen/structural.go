package poolgen

import (
	"fmt"

	"github.com/abhisek/wisein/internal/question"
)

const (
	maxPromptLen = 500
	maxAnswerLen = 200
)

// StructuralValidator checks that the prompt and answer are present and
// within length limits.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(e question.SeedEntry, _ GenerateInput) *ValidationError {
	fail := func(msg string) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: msg, Retryable: true}
	}
	switch {
	case e.Card.Prompt == "":
		return fail("q is empty")
	case len(e.Card.Prompt) > maxPromptLen:
		return fail(fmt.Sprintf("q exceeds %d characters", maxPromptLen))
	case e.Card.Answer == "":
		return fail("a is empty")
	case len(e.Card.Answer) > maxAnswerLen:
		return fail(fmt.Sprintf("a exceeds %d characters", maxAnswerLen))
	}
	return nil
}
