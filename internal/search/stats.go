// Package search holds the execution statistics shared by the quiz
// solver and the interview selector.
package search

import (
	"encoding/json"
	"time"
)

// Stats describes one engine invocation. It is filled in on success and
// on failure alike and never influences the result.
type Stats struct {
	// Success is true when the engine produced a result.
	Success bool `json:"success"`

	// Elapsed is the wall-clock time spent inside the engine.
	Elapsed time.Duration `json:"-"`

	// Steps counts recursive calls: partial-solution states for the
	// solver, tree nodes for the selector.
	Steps int `json:"steps"`

	// Size is the number of items returned.
	Size int `json:"size"`
}

// Seconds returns Elapsed in seconds.
func (s Stats) Seconds() float64 {
	return s.Elapsed.Seconds()
}

// MarshalJSON adds time_seconds so presentation layers get the elapsed
// time in the unit they report.
func (s Stats) MarshalJSON() ([]byte, error) {
	type plain Stats
	return json.Marshal(struct {
		plain
		TimeSeconds float64 `json:"time_seconds"`
	}{plain(s), s.Seconds()})
}

// Timer measures elapsed wall-clock time for a Stats record.
type Timer struct {
	start time.Time
}

// StartTimer starts a timer.
func StartTimer() Timer {
	return Timer{start: time.Now()}
}

// Stop returns the time elapsed since the timer started.
func (t Timer) Stop() time.Duration {
	return time.Since(t.start)
}
