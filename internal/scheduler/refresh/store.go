// Package refresh orchestrates full pipeline runs (registry ingestion,
// classification, contact enrichment) and records their progress so the
// display layer can observe success or failure.
package refresh

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"velden_leads_backend/platform/apperr"
)

// Run lifecycle states.
const (
	RunQueued    = "queued"
	RunRunning   = "running"
	RunSucceeded = "succeeded"
	RunFailed    = "failed"
)

// Run is one refresh run with its per-step log.
type Run struct {
	ID         string     `json:"id"`
	Status     string     `json:"status"`
	Log        string     `json:"log"`
	CreatedAt  time.Time  `json:"createdAt"`
	StartedAt  *time.Time `json:"startedAt,omitempty"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
}

// Store persists refresh runs in the shared SQLite db.
type Store struct {
	db *sql.DB
}

// NewStore creates the store and ensures the runs table exists.
func NewStore(db *sql.DB) (*Store, error) {
	s := &Store{db: db}
	schema := `
	CREATE TABLE IF NOT EXISTS refresh_runs (
		id TEXT PRIMARY KEY,
		status TEXT NOT NULL,
		log TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL,
		started_at DATETIME,
		finished_at DATETIME
	);`
	if _, err := s.db.Exec(schema); err != nil {
		return nil, fmt.Errorf("init refresh run schema: %w", err)
	}
	return s, nil
}

// Create registers a new queued run.
func (s *Store) Create(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO refresh_runs (id, status, created_at) VALUES (?, ?, ?)`,
		id, RunQueued, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("create refresh run: %w", err)
	}
	return nil
}

// MarkRunning transitions a run to running and stamps its start time.
func (s *Store) MarkRunning(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE refresh_runs SET status = ?, started_at = ? WHERE id = ?`,
		RunRunning, time.Now().UTC().Format(time.RFC3339Nano), id)
	return err
}

// MarkFinished transitions a run to its terminal status.
func (s *Store) MarkFinished(ctx context.Context, id, status string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE refresh_runs SET status = ?, finished_at = ? WHERE id = ?`,
		status, time.Now().UTC().Format(time.RFC3339Nano), id)
	return err
}

// AppendLog adds one timestamped line to the run's log.
func (s *Store) AppendLog(ctx context.Context, id, line string) error {
	stamped := fmt.Sprintf("[%s] %s\n", time.Now().Format("2006-01-02 15:04:05"), line)
	_, err := s.db.ExecContext(ctx, `
		UPDATE refresh_runs SET log = log || ? WHERE id = ?`, stamped, id)
	return err
}

// List returns every run, newest first.
func (s *Store) List(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, status, log, created_at, started_at, finished_at
		FROM refresh_runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query refresh runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt string
		var startedAt, finishedAt sql.NullString
		if err := rows.Scan(&r.ID, &r.Status, &r.Log, &createdAt, &startedAt, &finishedAt); err != nil {
			return nil, fmt.Errorf("scan refresh run: %w", err)
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		if startedAt.Valid {
			if t, err := time.Parse(time.RFC3339Nano, startedAt.String); err == nil {
				r.StartedAt = &t
			}
		}
		if finishedAt.Valid {
			if t, err := time.Parse(time.RFC3339Nano, finishedAt.String); err == nil {
				r.FinishedAt = &t
			}
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Get returns one run by id.
func (s *Store) Get(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, status, log, created_at, started_at, finished_at
		FROM refresh_runs WHERE id = ?`, id)

	var r Run
	var createdAt string
	var startedAt, finishedAt sql.NullString
	err := row.Scan(&r.ID, &r.Status, &r.Log, &createdAt, &startedAt, &finishedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, apperr.NotFound("refresh run not found")
		}
		return Run{}, fmt.Errorf("query refresh run: %w", err)
	}

	r.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	if startedAt.Valid {
		if t, err := time.Parse(time.RFC3339Nano, startedAt.String); err == nil {
			r.StartedAt = &t
		}
	}
	if finishedAt.Valid {
		if t, err := time.Parse(time.RFC3339Nano, finishedAt.String); err == nil {
			r.FinishedAt = &t
		}
	}
	return r, nil
}
