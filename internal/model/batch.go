package model

import "time"

// BatchResult summarizes one batch calculation run.
type BatchResult struct {
	RunID      string
	Date       time.Time
	Results    map[string]bool // symbol -> stored successfully
	Succeeded  int
	Failed     int
	StartedAt  time.Time
	FinishedAt time.Time
}

// Duration returns the wall-clock time the batch took.
func (b *BatchResult) Duration() time.Duration {
	return b.FinishedAt.Sub(b.StartedAt)
}
