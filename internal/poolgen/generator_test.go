package poolgen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/wisein/internal/llm"
	"github.com/abhisek/wisein/internal/question"
)

func validPoolJSON() json.RawMessage {
	return json.RawMessage(`{
		"questions": [
			{"level": "easy", "type": "multiple_choice", "category": "vocab",
			 "q": "Which command lists running containers?\na) docker ps\nb) docker ls",
			 "a": "ps", "ok": "Right.", "nok": "It is docker ps."},
			{"level": "hard", "type": "code_completion", "category": "grammar",
			 "q": "Complete: ___ node:20 (first Dockerfile line)",
			 "a": "FROM", "ok": "Yes.", "nok": "It is FROM."},
			{"level": "medium", "type": "", "category": "",
			 "q": "Are Docker images immutable? (yes/no)", "a": " Yes ", "ok": "", "nok": ""}
		]
	}`)
}

func TestGenerate_Batch(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validPoolJSON()})
	gen := New(mock, DefaultConfig())

	entries, err := gen.Generate(context.Background(), GenerateInput{
		Topic:   "Docker",
		Count:   3,
		FirstID: 900,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	for i, e := range entries {
		if e.Item.ID != question.ID(900+i) {
			t.Errorf("entry %d: ID = %d", i, e.Item.ID)
		}
		if e.Item.Topic != "Docker" {
			t.Errorf("entry %d: topic = %q", i, e.Item.Topic)
		}
	}

	first := entries[0]
	if first.Item.Difficulty != question.DifficultyEasy || first.Item.Category != question.CategoryVocab {
		t.Errorf("first item = %v", first.Item)
	}
	if first.Card.Answer != "ps" || first.Card.IncorrectFeedback != "It is docker ps." {
		t.Errorf("first card = %+v", first.Card)
	}

	second := entries[1]
	if second.Item.Format != question.FormatCodeCompletion || second.Item.Category != question.CategoryGrammar {
		t.Errorf("second item = %v", second.Item)
	}
	if second.Card.Answer != "from" {
		t.Errorf("answer should be lowercased, got %q", second.Card.Answer)
	}
}

func TestGenerate_Defaults(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validPoolJSON()})
	gen := New(mock, DefaultConfig())

	entries, err := gen.Generate(context.Background(), GenerateInput{Topic: "Docker", Count: 3, FirstID: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	e := entries[2]
	if e.Item.Difficulty != question.DifficultyMedium {
		t.Errorf("level = %v, want medium", e.Item.Difficulty)
	}
	if e.Item.Format != question.FormatMultipleChoice {
		t.Errorf("empty type should become multiple_choice, got %q", e.Item.Format)
	}
	if e.Item.Category != question.CategoryVocab {
		t.Errorf("empty category should become vocab, got %q", e.Item.Category)
	}
	if e.Card.Answer != "yes" {
		t.Errorf("answer = %q", e.Card.Answer)
	}
	if e.Card.CorrectFeedback != question.DefaultCorrectFeedback || e.Card.IncorrectFeedback != question.DefaultIncorrectFeedback {
		t.Errorf("feedback defaults not applied: %+v", e.Card)
	}
}

func TestGenerate_TruncatesToCount(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validPoolJSON()})
	gen := New(mock, DefaultConfig())

	entries, err := gen.Generate(context.Background(), GenerateInput{Topic: "Docker", Count: 2, FirstID: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 entries, got %d", len(entries))
	}
}

func TestGenerate_ZeroCountSkipsProvider(t *testing.T) {
	mock := llm.NewMockProvider()
	gen := New(mock, DefaultConfig())

	entries, err := gen.Generate(context.Background(), GenerateInput{Topic: "Docker"})
	if err != nil || entries != nil {
		t.Fatalf("got %v, %v", entries, err)
	}
	if mock.CallCount() != 0 {
		t.Errorf("provider called %d times", mock.CallCount())
	}
}

func TestGenerate_EmptyBatch(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"questions":[]}`)})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), GenerateInput{Topic: "Docker", Count: 5, FirstID: 1})
	if !errors.Is(err, ErrEmptyBatch) {
		t.Fatalf("expected ErrEmptyBatch, got %v", err)
	}
}

func TestGenerate_ValidationFailure(t *testing.T) {
	raw := json.RawMessage(`{"questions":[
		{"level": "easy", "type": "", "category": "", "q": "What does EXPOSE do?", "a": "port", "ok": "", "nok": ""},
		{"level": "easy", "type": "", "category": "", "q": "", "a": "nothing", "ok": "", "nok": ""}
	]}`)
	mock := llm.NewMockProvider(llm.MockResponse{Content: raw})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), GenerateInput{Topic: "Docker", Count: 2, FirstID: 1})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T (%v)", err, err)
	}
	if verr.Validator != "structural" || verr.Index != 1 {
		t.Errorf("unexpected error: %+v", verr)
	}
}

func TestGenerate_SchemaViolation(t *testing.T) {
	raw := json.RawMessage(`{"questions":[{"q": "missing answer"}]}`)
	mock := llm.NewMockProvider(llm.MockResponse{Content: raw})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), GenerateInput{Topic: "Docker", Count: 1, FirstID: 1})
	var inv *llm.ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %T (%v)", err, err)
	}
}

func TestGenerate_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), GenerateInput{Topic: "Docker", Count: 1, FirstID: 1})
	if err == nil || !strings.Contains(err.Error(), "LLM generation failed") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGenerate_Request(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validPoolJSON()})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), GenerateInput{
		Topic:    "Docker",
		Count:    3,
		FirstID:  1,
		Existing: []string{"What is a container?"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := mock.Calls[0]
	if req.Schema != QuestionPoolSchema {
		t.Error("expected question-pool schema")
	}
	if req.System != systemPrompt {
		t.Error("unexpected system prompt")
	}
	msg := req.Messages[0].Content
	for _, want := range []string{"Topic: Docker", "Number of questions: 3", "1. What is a container?"} {
		if !strings.Contains(msg, want) {
			t.Errorf("user message missing %q:\n%s", want, msg)
		}
	}
}
