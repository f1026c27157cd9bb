package history

import "time"

// Record is one persisted publish run.
type Record struct {
	ID           int64
	RunID        string
	StartedAt    time.Time
	FinishedAt   time.Time
	Target       string
	Result       string
	Message      string
	ReleaseNotes string
}

// Duration returns how long the run took.
func (r Record) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
