package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wisein/internal/question"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "open test store")
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)

	for _, table := range []string{tableQuestions, tableSearchEvents, tableLLMEvents, tableSessionEvents, "global_sequence"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.QuestionRepo().Upsert(ctx, QuestionRecord{
		Item: question.Item{ID: 1, Topic: "go"},
		Card: question.Card{Prompt: "p", Answer: "a"},
	}))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	n, err := s.QuestionRepo().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sc, err := newSequenceCounter(s.DB())
	require.NoError(t, err)

	for i := 1; i <= 5; i++ {
		seq, err := sc.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(i), seq)
	}
}

func TestQuestionRepo_UpsertAndList(t *testing.T) {
	s := openTestStore(t)
	repo := s.QuestionRepo()
	ctx := context.Background()

	for _, e := range question.Seed() {
		require.NoError(t, repo.Upsert(ctx, QuestionRecord{Item: e.Item, Card: e.Card, Source: "seed"}))
	}

	recs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, len(question.Seed()))

	for i, e := range question.Seed() {
		assert.Equal(t, e.Item, recs[i].Item)
		assert.Equal(t, e.Card, recs[i].Card)
		assert.Equal(t, "seed", recs[i].Source)
		assert.False(t, recs[i].CreatedAt.IsZero())
	}
}

func TestQuestionRepo_UpsertReplaces(t *testing.T) {
	s := openTestStore(t)
	repo := s.QuestionRepo()
	ctx := context.Background()

	rec := QuestionRecord{
		Item: question.Item{ID: 7, Topic: "go", Difficulty: question.DifficultyEasy},
		Card: question.Card{Prompt: "old", Answer: "a"},
	}
	require.NoError(t, repo.Upsert(ctx, rec))

	rec.Item.Difficulty = question.DifficultyHard
	rec.Card.Prompt = "new"
	require.NoError(t, repo.Upsert(ctx, rec))

	recs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, question.DifficultyHard, recs[0].Item.Difficulty)
	assert.Equal(t, "new", recs[0].Card.Prompt)
}

func TestQuestionRepo_UnsetDifficultyRoundTrips(t *testing.T) {
	s := openTestStore(t)
	repo := s.QuestionRepo()
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, QuestionRecord{
		Item: question.Item{ID: 1, Topic: "go"},
		Card: question.Card{Prompt: "p", Answer: "a"},
	}))

	recs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, question.DifficultyUnset, recs[0].Item.Difficulty)
}

func TestQuestionRepo_ByTopic(t *testing.T) {
	s := openTestStore(t)
	repo := s.QuestionRepo()
	ctx := context.Background()

	for _, e := range question.Seed() {
		require.NoError(t, repo.Upsert(ctx, QuestionRecord{Item: e.Item, Card: e.Card}))
	}

	recs, err := repo.ByTopic(ctx, "aws")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	for _, r := range recs {
		assert.Equal(t, "AWS", r.Item.Topic)
	}

	recs, err = repo.ByTopic(ctx, "rust")
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestQuestionRepo_Count(t *testing.T) {
	s := openTestStore(t)
	repo := s.QuestionRepo()
	ctx := context.Background()

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	for _, id := range []question.ID{3, 42, 9} {
		require.NoError(t, repo.Upsert(ctx, QuestionRecord{
			Item: question.Item{ID: id, Topic: "go"},
			Card: question.Card{Prompt: "p", Answer: "a"},
		}))
	}

	n, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestEventRepo_SearchEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendSearchEvent(ctx, SearchEventData{
		Engine: "csp", Topic: "python", Detail: "size=3", Success: true, Steps: 4, Size: 3,
		Elapsed: 1500 * time.Microsecond,
	}))
	require.NoError(t, repo.AppendSearchEvent(ctx, SearchEventData{
		Engine: "adversarial", Topic: "python", Success: false,
	}))

	events, err := repo.QuerySearchEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)

	// Newest first.
	assert.Equal(t, "adversarial", events[0].Engine)
	assert.False(t, events[0].Success)
	assert.Greater(t, events[0].Sequence, events[1].Sequence)

	csp := events[1]
	assert.Equal(t, "csp", csp.Engine)
	assert.Equal(t, "size=3", csp.Detail)
	assert.True(t, csp.Success)
	assert.Equal(t, 4, csp.Steps)
	assert.Equal(t, 3, csp.Size)
	assert.Equal(t, 1500*time.Microsecond, csp.Elapsed)
	assert.WithinDuration(t, time.Now(), csp.Timestamp, time.Minute)
}

func TestEventRepo_QueryOpts(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.AppendSearchEvent(ctx, SearchEventData{Engine: "csp", Steps: i}))
	}

	events, err := repo.QuerySearchEvents(ctx, QueryOpts{Limit: 2})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, 4, events[0].Steps)

	events, err = repo.QuerySearchEvents(ctx, QueryOpts{After: 2, Before: 5})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, int64(4), events[0].Sequence)
	assert.Equal(t, int64(3), events[1].Sequence)
}

func TestEventRepo_SequenceIsGlobal(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendSearchEvent(ctx, SearchEventData{Engine: "csp"}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "mock", Purpose: "pool-gen", Success: true}))
	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "s1", Mode: "quiz", Action: "start"}))

	searches, err := repo.QuerySearchEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	llms, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	sessions, err := repo.QuerySessionEvents(ctx, QueryOpts{})
	require.NoError(t, err)

	assert.Equal(t, int64(1), searches[0].Sequence)
	assert.Equal(t, int64(2), llms[0].Sequence)
	assert.Equal(t, int64(3), sessions[0].Sequence)
}

func TestEventRepo_LLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		RequestID: "req-1", Provider: "anthropic", Model: "claude-haiku-4-5", Purpose: "pool-gen",
		InputTokens: 100, OutputTokens: 50, LatencyMs: 200, Success: true,
		RequestBody: "[user]\nhi", ResponseBody: `{"questions":[]}`,
	}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "anthropic", Model: "claude-haiku-4-5", Purpose: "pool-gen",
		InputTokens: 300, OutputTokens: 150, LatencyMs: 400, Success: false, ErrorMessage: "boom",
	}))

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "boom", events[0].ErrorMessage)

	got, err := repo.GetLLMEvent(ctx, events[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "req-1", got.RequestID)
	assert.Equal(t, "[user]\nhi", got.RequestBody)
	assert.Equal(t, `{"questions":[]}`, got.ResponseBody)
	assert.True(t, got.Success)

	_, err = repo.GetLLMEvent(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 1)
	assert.Equal(t, "pool-gen", byPurpose[0].Purpose)
	assert.Equal(t, 2, byPurpose[0].Calls)
	assert.Equal(t, 400, byPurpose[0].InputTokens)
	assert.Equal(t, 200, byPurpose[0].OutputTokens)
	assert.Equal(t, int64(300), byPurpose[0].AvgLatencyMs)

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 1)
	assert.Equal(t, "claude-haiku-4-5", byModel[0].Model)
}

func TestEventRepo_SessionEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{
		SessionID: "abc", Mode: "interview", Action: "start", Topic: "Python",
	}))
	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{
		SessionID: "abc", Mode: "interview", Action: "end", Topic: "Python",
		QuestionsServed: 5, CorrectAnswers: 3, DurationSecs: 90,
	}))

	events, err := repo.QuerySessionEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "end", events[0].Action)
	assert.Equal(t, 5, events[0].QuestionsServed)
	assert.Equal(t, 3, events[0].CorrectAnswers)
	assert.Equal(t, 90, events[0].DurationSecs)
	assert.Equal(t, "start", events[1].Action)
}
