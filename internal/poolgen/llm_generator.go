package poolgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/wisein/internal/llm"
	"github.com/abhisek/wisein/internal/question"
)

// ErrEmptyBatch is returned when the model answers with no questions.
var ErrEmptyBatch = errors.New("LLM returned no questions")

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// poolOutput is the raw LLM response before validation.
type poolOutput struct {
	Questions []questionOutput `json:"questions"`
}

type questionOutput struct {
	Level    string `json:"level"`
	Type     string `json:"type"`
	Category string `json:"category"`
	Q        string `json:"q"`
	A        string `json:"a"`
	OK       string `json:"ok"`
	NOK      string `json:"nok"`
}

// Generate asks the model for input.Count questions on input.Topic.
// Extra questions beyond Count are dropped.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) ([]question.SeedEntry, error) {
	if input.Count <= 0 {
		return nil, nil
	}
	ctx = llm.WithPurpose(ctx, "pool-gen")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input, g.config)},
		},
		Schema:      QuestionPoolSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw poolOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}
	if len(raw.Questions) == 0 {
		return nil, ErrEmptyBatch
	}
	if len(raw.Questions) > input.Count {
		raw.Questions = raw.Questions[:input.Count]
	}

	entries := make([]question.SeedEntry, 0, len(raw.Questions))
	for i, q := range raw.Questions {
		e := toEntry(q, input.Topic, input.FirstID+question.ID(i))
		for _, v := range g.config.Validators {
			if verr := v.Validate(e, input); verr != nil {
				verr.Index = i
				return nil, verr
			}
		}
		entries = append(entries, e)
	}

	return entries, nil
}

// toEntry normalizes one raw question. Unknown levels become medium,
// a missing type becomes multiple choice and a missing category vocab.
func toEntry(q questionOutput, topic string, id question.ID) question.SeedEntry {
	level, err := question.ParseDifficulty(q.Level)
	if err != nil {
		level = question.DifficultyMedium
	}
	format := question.Format(strings.TrimSpace(q.Type))
	if format == "" {
		format = question.FormatMultipleChoice
	}
	category := question.SkillCategory(strings.TrimSpace(q.Category))
	if category == "" {
		category = question.CategoryVocab
	}

	return question.SeedEntry{
		Item: question.Item{
			ID:         id,
			Topic:      topic,
			Difficulty: level,
			Format:     format,
			Category:   category,
		},
		Card: question.Card{
			Prompt:            strings.TrimSpace(q.Q),
			Answer:            strings.ToLower(strings.TrimSpace(q.A)),
			CorrectFeedback:   q.OK,
			IncorrectFeedback: q.NOK,
		}.WithDefaults(),
	}
}
