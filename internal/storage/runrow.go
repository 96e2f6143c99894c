package storage

import "time"

// RunRow is a lightweight listing row for /runs.
type RunRow struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"started_at"`
	Selector  string    `json:"selector,omitempty"`
	Version   string    `json:"version,omitempty"`
	Cases     int       `json:"cases"`
	Failures  int       `json:"failures"` // non-PASS case count
}
