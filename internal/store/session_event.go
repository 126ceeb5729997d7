package store

import (
	"context"
	"fmt"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	err := r.insertEvent(ctx, tableSessionEvents,
		[]string{"session_id", "mode", "action", "topic", "questions_served", "correct_answers", "duration_secs"},
		[]any{data.SessionID, data.Mode, data.Action, data.Topic, data.QuestionsServed, data.CorrectAnswers, data.DurationSecs},
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEventRecord, error) {
	query, args := eventSelector(tableSessionEvents, opts,
		"id", "sequence", "timestamp", "session_id", "mode", "action", "topic",
		"questions_served", "correct_answers", "duration_secs",
	).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	defer rows.Close()

	var records []SessionEventRecord
	for rows.Next() {
		var (
			rec SessionEventRecord
			ts  int64
		)
		err := rows.Scan(&rec.ID, &rec.Sequence, &ts, &rec.SessionID, &rec.Mode, &rec.Action, &rec.Topic,
			&rec.QuestionsServed, &rec.CorrectAnswers, &rec.DurationSecs)
		if err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		rec.Timestamp = fromMillis(ts)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session events: %w", err)
	}
	return records, nil
}
