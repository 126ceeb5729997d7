package store

import (
	"context"
	"fmt"
	"time"
)

func (r *eventRepo) AppendSearchEvent(ctx context.Context, data SearchEventData) error {
	err := r.insertEvent(ctx, tableSearchEvents,
		[]string{"engine", "topic", "detail", "success", "steps", "size", "elapsed_us"},
		[]any{data.Engine, data.Topic, data.Detail, data.Success, data.Steps, data.Size, data.Elapsed.Microseconds()},
	)
	if err != nil {
		return fmt.Errorf("save search event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySearchEvents(ctx context.Context, opts QueryOpts) ([]SearchEventRecord, error) {
	query, args := eventSelector(tableSearchEvents, opts,
		"id", "sequence", "timestamp", "engine", "topic", "detail", "success", "steps", "size", "elapsed_us",
	).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query search events: %w", err)
	}
	defer rows.Close()

	var records []SearchEventRecord
	for rows.Next() {
		var (
			rec       SearchEventRecord
			ts        int64
			elapsedUS int64
		)
		err := rows.Scan(&rec.ID, &rec.Sequence, &ts, &rec.Engine, &rec.Topic, &rec.Detail,
			&rec.Success, &rec.Steps, &rec.Size, &elapsedUS)
		if err != nil {
			return nil, fmt.Errorf("scan search event: %w", err)
		}
		rec.Timestamp = fromMillis(ts)
		rec.Elapsed = time.Duration(elapsedUS) * time.Microsecond
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate search events: %w", err)
	}
	return records, nil
}
