package store

import (
	"context"
	"time"

	"github.com/cognicore/sentitag/pkg/sentitag/stats"
)

// Store persists the outcome of every processed corpus file
type Store interface {
	Close() error

	// SaveReport records one file's outcome and returns its ID.
	SaveReport(ctx context.Context, r Report) (int64, error)
	// ReportsByRun returns a run's reports in the order they were saved.
	ReportsByRun(ctx context.Context, runID string) ([]Report, error)
	// History returns the reports for one input path, newest first.
	History(ctx context.Context, path string, limit int) ([]Report, error)
	// Runs summarizes the most recent runs, newest first.
	Runs(ctx context.Context, limit int) ([]Run, error)
}

// Report is the stored outcome of tagging one corpus file
type Report struct {
	ID         int64
	RunID      string
	Domain     string
	Path       string
	CleanPath  string
	TaggedPath string
	Stats      stats.Stats
	Err        string // empty on success
	CreatedAt  time.Time
}

// Failed reports whether processing the file ended in an error.
func (r Report) Failed() bool {
	return r.Err != ""
}

// Run aggregates the reports sharing a run ID
type Run struct {
	ID        string
	StartedAt time.Time
	Files     int
	Failed    int
	Words     int64
}
