package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/wisein/internal/question"
)

var questionColumns = []string{
	"id", "topic", "difficulty", "format", "category",
	"prompt", "answer", "correct_feedback", "incorrect_feedback",
	"source", "created_at",
}

// questionRepo implements QuestionRepo.
type questionRepo struct {
	db *sql.DB
}

func (r *questionRepo) Upsert(ctx context.Context, rec QuestionRecord) error {
	created := rec.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	query, args := builder().Insert(tableQuestions).
		Columns(questionColumns...).
		Values(
			int(rec.Item.ID),
			rec.Item.Topic,
			rec.Item.Difficulty.String(),
			string(rec.Item.Format),
			string(rec.Item.Category),
			rec.Card.Prompt,
			rec.Card.Answer,
			rec.Card.CorrectFeedback,
			rec.Card.IncorrectFeedback,
			rec.Source,
			created.UnixMilli(),
		).
		OnConflict(
			entsql.ConflictColumns("id"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert question %d: %w", rec.Item.ID, err)
	}
	return nil
}

func (r *questionRepo) List(ctx context.Context) ([]QuestionRecord, error) {
	sel := builder().Select(questionColumns...).
		From(entsql.Table(tableQuestions)).
		OrderBy("id")
	return r.query(ctx, sel)
}

func (r *questionRepo) ByTopic(ctx context.Context, topic string) ([]QuestionRecord, error) {
	sel := builder().Select(questionColumns...).
		From(entsql.Table(tableQuestions)).
		Where(entsql.ContainsFold("topic", topic)).
		OrderBy("id")
	return r.query(ctx, sel)
}

func (r *questionRepo) Count(ctx context.Context) (int, error) {
	query, args := builder().Select(entsql.Count("*")).
		From(entsql.Table(tableQuestions)).
		Query()

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return n, nil
}

func (r *questionRepo) query(ctx context.Context, sel *entsql.Selector) ([]QuestionRecord, error) {
	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	var out []QuestionRecord
	for rows.Next() {
		var (
			rec        QuestionRecord
			id         int
			difficulty string
			format     string
			category   string
			createdAt  int64
		)
		err := rows.Scan(
			&id, &rec.Item.Topic, &difficulty, &format, &category,
			&rec.Card.Prompt, &rec.Card.Answer, &rec.Card.CorrectFeedback, &rec.Card.IncorrectFeedback,
			&rec.Source, &createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}

		rec.Item.ID = question.ID(id)
		rec.Item.Format = question.Format(format)
		rec.Item.Category = question.SkillCategory(category)
		if difficulty != "" {
			// Rows are only written through Upsert, so an unknown level
			// means the column was edited by hand; treat it as unset.
			rec.Item.Difficulty, _ = question.ParseDifficulty(difficulty)
		}
		rec.CreatedAt = fromMillis(createdAt)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}
	return out, nil
}
