package question

import "strings"

// Card holds the learner-facing text of a question.
type Card struct {
	Prompt            string `json:"q"`
	Answer            string `json:"a"`
	CorrectFeedback   string `json:"ok"`
	IncorrectFeedback string `json:"nok"`
}

// Default feedback used when a generated card leaves it blank.
const (
	DefaultCorrectFeedback   = "Correct!"
	DefaultIncorrectFeedback = "Incorrect."
)

// Check reports whether response is accepted for this card. A response is
// accepted when the expected answer contains it, ignoring case and
// surrounding whitespace. Empty responses are never accepted.
func (c Card) Check(response string) bool {
	r := strings.ToLower(strings.TrimSpace(response))
	if r == "" {
		return false
	}
	return strings.Contains(strings.ToLower(c.Answer), r)
}

// WithDefaults fills empty feedback fields.
func (c Card) WithDefaults() Card {
	if c.CorrectFeedback == "" {
		c.CorrectFeedback = DefaultCorrectFeedback
	}
	if c.IncorrectFeedback == "" {
		c.IncorrectFeedback = DefaultIncorrectFeedback
	}
	return c
}
