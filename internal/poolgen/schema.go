package poolgen

import "github.com/abhisek/wisein/internal/llm"

// QuestionPoolSchema defines the JSON schema for pool generation responses.
// Every object lists all of its properties as required and forbids extra
// ones, as OpenAI strict structured output demands. Empty strings are
// filled with defaults after parsing.
var QuestionPoolSchema = &llm.Schema{
	Name:        "question-pool",
	Description: "A batch of technical quiz questions on one topic",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"level": map[string]any{
							"type":        "string",
							"enum":        []any{"easy", "medium", "hard"},
							"description": "Difficulty of the question",
						},
						"type": map[string]any{
							"type":        "string",
							"description": "How the question is answered: multiple_choice, true_false or code_completion",
						},
						"category": map[string]any{
							"type":        "string",
							"description": "Skill exercised: vocab for concepts and terms, grammar for syntax",
						},
						"q": map[string]any{
							"type":        "string",
							"description": "The question text shown to the learner, options included for multiple choice",
						},
						"a": map[string]any{
							"type":        "string",
							"description": "A short lowercase keyword that a correct answer contains",
						},
						"ok": map[string]any{
							"type":        "string",
							"description": "Feedback for a correct answer",
						},
						"nok": map[string]any{
							"type":        "string",
							"description": "Feedback for a wrong answer, naming the right one",
						},
					},
					"required":             []any{"level", "type", "category", "q", "a", "ok", "nok"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
