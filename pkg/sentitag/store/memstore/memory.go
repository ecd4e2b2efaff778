package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cognicore/sentitag/pkg/sentitag/internalerr"
	"github.com/cognicore/sentitag/pkg/sentitag/store"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu      sync.RWMutex
	nextID  int64
	reports []store.Report
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{nextID: 1}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// SaveReport implements store.Store.
func (s *Store) SaveReport(ctx context.Context, r store.Report) (int64, error) {
	if r.RunID == "" || r.Path == "" {
		return 0, fmt.Errorf("%w: report needs a run ID and a path", internalerr.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r.ID = s.nextID
	s.nextID++
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	s.reports = append(s.reports, r)
	return r.ID, nil
}

// ReportsByRun implements store.Store.
func (s *Store) ReportsByRun(ctx context.Context, runID string) ([]store.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []store.Report
	for _, r := range s.reports {
		if r.RunID == runID {
			out = append(out, r)
		}
	}
	return out, nil
}

// History implements store.Store.
func (s *Store) History(ctx context.Context, path string, limit int) ([]store.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []store.Report
	for i := len(s.reports) - 1; i >= 0; i-- {
		if s.reports[i].Path != path {
			continue
		}
		out = append(out, s.reports[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// Runs implements store.Store.
func (s *Store) Runs(ctx context.Context, limit int) ([]store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byID := make(map[string]*store.Run)
	for _, r := range s.reports {
		run, ok := byID[r.RunID]
		if !ok {
			run = &store.Run{ID: r.RunID, StartedAt: r.CreatedAt}
			byID[r.RunID] = run
		}
		if r.CreatedAt.Before(run.StartedAt) {
			run.StartedAt = r.CreatedAt
		}
		run.Files++
		if r.Failed() {
			run.Failed++
		}
		run.Words += r.Stats.Words
	}

	out := make([]store.Run, 0, len(byID))
	for _, run := range byID {
		out = append(out, *run)
	}
	// Run IDs are ULIDs, so lexical order is creation order
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
