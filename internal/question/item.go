package question

import (
	"fmt"
	"strings"
)

// ID identifies a question. IDs are unique within a pool and stable for
// the lifetime of the question bank.
type ID int

// Difficulty is the ordered difficulty level of a question.
// The zero value means the level was not provided.
type Difficulty int

const (
	DifficultyUnset Difficulty = iota
	DifficultyEasy
	DifficultyMedium
	DifficultyHard
)

// String returns the lowercase level name used in JSON and the database.
func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyMedium:
		return "medium"
	case DifficultyHard:
		return "hard"
	default:
		return ""
	}
}

// ParseDifficulty maps a level name to a Difficulty. Matching is
// case-insensitive. Unknown names return an error and DifficultyUnset.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DifficultyEasy, nil
	case "medium":
		return DifficultyMedium, nil
	case "hard":
		return DifficultyHard, nil
	}
	return DifficultyUnset, fmt.Errorf("unknown difficulty %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (d Difficulty) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. An empty string
// decodes to DifficultyUnset.
func (d *Difficulty) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = DifficultyUnset
		return nil
	}
	parsed, err := ParseDifficulty(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Format describes how a question is answered.
type Format string

const (
	FormatMultipleChoice Format = "multiple_choice"
	FormatTrueFalse      Format = "true_false"
	FormatCodeCompletion Format = "code_completion"
)

// SkillCategory tags the competence a question exercises.
type SkillCategory string

const (
	CategoryVocab   SkillCategory = "vocab"
	CategoryGrammar SkillCategory = "grammar"
)

// Item is a single question as seen by the search engines. Items are
// values; engines copy them but never modify them.
type Item struct {
	ID         ID            `json:"id"`
	Topic      string        `json:"topic"`
	Difficulty Difficulty    `json:"level"`
	Format     Format        `json:"type"`
	Category   SkillCategory `json:"category"`
}

func (it Item) String() string {
	return fmt.Sprintf("#%d %s/%s/%s/%s", it.ID, it.Topic, it.Difficulty, it.Format, it.Category)
}
