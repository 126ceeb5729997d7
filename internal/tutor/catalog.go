package tutor

import (
	"context"
	"fmt"

	"github.com/abhisek/wisein/internal/question"
	"github.com/abhisek/wisein/internal/store"
)

// Question sources recorded in the store.
const (
	SourceSeed = "seed"
	SourceLLM  = "llm"
)

// LoadCatalog reads the question bank from repo. An empty bank is seeded
// first so a fresh database starts with the starter questions.
func LoadCatalog(ctx context.Context, repo store.QuestionRepo) (*question.Catalog, error) {
	n, err := repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count questions: %w", err)
	}
	if n == 0 {
		if err := SeedStore(ctx, repo); err != nil {
			return nil, err
		}
	}

	recs, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	c := question.NewCatalog()
	for _, r := range recs {
		c.Add(r.Item, r.Card)
	}
	return c, nil
}

// SeedStore writes the built-in starter bank to repo, replacing any
// stored question with the same ID.
func SeedStore(ctx context.Context, repo store.QuestionRepo) error {
	for _, e := range question.Seed() {
		rec := store.QuestionRecord{Item: e.Item, Card: e.Card, Source: SourceSeed}
		if err := repo.Upsert(ctx, rec); err != nil {
			return fmt.Errorf("seed question bank: %w", err)
		}
	}
	return nil
}
