package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Table names.
const (
	tableQuestions     = "questions"
	tableSearchEvents  = "search_events"
	tableLLMEvents     = "llm_request_events"
	tableSessionEvents = "session_events"
)

// schema is applied on every Open. Event tables share the global sequence
// column for cross-type ordering; timestamps are unix milliseconds.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS questions (
		id INTEGER PRIMARY KEY,
		topic TEXT NOT NULL,
		difficulty TEXT NOT NULL DEFAULT '',
		format TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		prompt TEXT NOT NULL,
		answer TEXT NOT NULL,
		correct_feedback TEXT NOT NULL DEFAULT '',
		incorrect_feedback TEXT NOT NULL DEFAULT '',
		source TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_questions_topic ON questions (topic)`,

	`CREATE TABLE IF NOT EXISTS search_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		engine TEXT NOT NULL,
		topic TEXT NOT NULL DEFAULT '',
		detail TEXT NOT NULL DEFAULT '',
		success INTEGER NOT NULL,
		steps INTEGER NOT NULL,
		size INTEGER NOT NULL,
		elapsed_us INTEGER NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS llm_request_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		request_id TEXT NOT NULL DEFAULT '',
		provider TEXT NOT NULL,
		model TEXT NOT NULL,
		purpose TEXT NOT NULL,
		input_tokens INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms INTEGER NOT NULL DEFAULT 0,
		success INTEGER NOT NULL,
		error_message TEXT NOT NULL DEFAULT '',
		request_body TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS session_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp INTEGER NOT NULL,
		session_id TEXT NOT NULL,
		mode TEXT NOT NULL,
		action TEXT NOT NULL,
		topic TEXT NOT NULL DEFAULT '',
		questions_served INTEGER NOT NULL DEFAULT 0,
		correct_answers INTEGER NOT NULL DEFAULT 0,
		duration_secs INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_session_events_session ON session_events (session_id)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec schema: %w", err)
		}
	}
	return nil
}
