package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/sentitag/pkg/sentitag/internalerr"
	"github.com/cognicore/sentitag/pkg/sentitag/store"
)

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled and creates the
// schema if needed.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS reports (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL,
	domain TEXT NOT NULL,
	path TEXT NOT NULL,
	clean_path TEXT,
	tagged_path TEXT,
	reviews INTEGER NOT NULL DEFAULT 0,
	words INTEGER NOT NULL DEFAULT 0,
	adjectives INTEGER NOT NULL DEFAULT 0,
	adverbs INTEGER NOT NULL DEFAULT 0,
	max_len INTEGER NOT NULL DEFAULT 0,
	min_len INTEGER NOT NULL DEFAULT 0,
	mean_len REAL NOT NULL DEFAULT 0,
	median_len REAL NOT NULL DEFAULT 0,
	adj_ratio REAL NOT NULL DEFAULT 0,
	adv_ratio REAL NOT NULL DEFAULT 0,
	adj_adv_ratio REAL NOT NULL DEFAULT 0,
	error TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_reports_run ON reports(run_id);
CREATE INDEX IF NOT EXISTS idx_reports_path ON reports(path);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

const reportColumns = `id, run_id, domain, path, clean_path, tagged_path,
	reviews, words, adjectives, adverbs, max_len, min_len, mean_len, median_len,
	adj_ratio, adv_ratio, adj_adv_ratio, error, created_at`

// SaveReport inserts a report
func (s *sqliteStore) SaveReport(ctx context.Context, r store.Report) (int64, error) {
	if r.RunID == "" || r.Path == "" {
		return 0, fmt.Errorf("%w: report needs a run ID and a path", internalerr.ErrInvalidInput)
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	const stmt = `
INSERT INTO reports (run_id, domain, path, clean_path, tagged_path,
	reviews, words, adjectives, adverbs, max_len, min_len, mean_len, median_len,
	adj_ratio, adv_ratio, adj_adv_ratio, error, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`
	st := r.Stats
	res, err := s.db.ExecContext(ctx, stmt,
		r.RunID, r.Domain, r.Path, r.CleanPath, r.TaggedPath,
		st.Reviews, st.Words, st.Adjectives, st.Adverbs,
		st.MaxLen, st.MinLen, st.MeanLen, st.MedianLen,
		st.AdjRatio, st.AdvRatio, st.AdjAdvRatio,
		r.Err, r.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ReportsByRun returns the reports of a run in insertion order
func (s *sqliteStore) ReportsByRun(ctx context.Context, runID string) ([]store.Report, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+reportColumns+` FROM reports WHERE run_id = ? ORDER BY id ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReports(rows)
}

// History returns the reports of one input file, newest first
func (s *sqliteStore) History(ctx context.Context, path string, limit int) ([]store.Report, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+reportColumns+` FROM reports WHERE path = ? ORDER BY id DESC LIMIT ?`, path, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReports(rows)
}

// Runs summarizes runs, newest first
func (s *sqliteStore) Runs(ctx context.Context, limit int) ([]store.Run, error) {
	if limit <= 0 {
		limit = -1
	}
	const query = `
SELECT run_id,
	MIN(created_at),
	COUNT(*),
	SUM(CASE WHEN error != '' THEN 1 ELSE 0 END),
	SUM(words)
FROM reports
GROUP BY run_id
ORDER BY run_id DESC
LIMIT ?;
`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []store.Run
	for rows.Next() {
		var (
			run     store.Run
			started string
		)
		if err := rows.Scan(&run.ID, &started, &run.Files, &run.Failed, &run.Words); err != nil {
			return nil, err
		}
		run.StartedAt, err = time.Parse(timeLayout, started)
		if err != nil {
			return nil, fmt.Errorf("parse run start %q: %w", started, err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func scanReports(rows *sql.Rows) ([]store.Report, error) {
	var out []store.Report
	for rows.Next() {
		var (
			r       store.Report
			created string
		)
		err := rows.Scan(
			&r.ID, &r.RunID, &r.Domain, &r.Path, &r.CleanPath, &r.TaggedPath,
			&r.Stats.Reviews, &r.Stats.Words, &r.Stats.Adjectives, &r.Stats.Adverbs,
			&r.Stats.MaxLen, &r.Stats.MinLen, &r.Stats.MeanLen, &r.Stats.MedianLen,
			&r.Stats.AdjRatio, &r.Stats.AdvRatio, &r.Stats.AdjAdvRatio,
			&r.Err, &created,
		)
		if err != nil {
			return nil, err
		}
		r.CreatedAt, err = time.Parse(timeLayout, created)
		if err != nil {
			return nil, fmt.Errorf("parse created_at %q: %w", created, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
