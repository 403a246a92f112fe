// Package repository persists outreach records and their status history in
// SQLite.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"velden_leads_backend/internal/outreach/domain"
)

// Repository stores outreach state. History rows are append-only; record
// rows are updated in place inside the same transaction that appends the
// history entry.
type Repository struct {
	db *sql.DB
}

// New creates the repository and ensures the schema exists.
func New(db *sql.DB) (*Repository, error) {
	r := &Repository{db: db}
	if err := r.initSchema(); err != nil {
		return nil, fmt.Errorf("init outreach schema: %w", err)
	}
	return r, nil
}

func (r *Repository) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS outreach_records (
		provider_id TEXT PRIMARY KEY,
		status TEXT NOT NULL,
		contact_date TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS outreach_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		provider_id TEXT NOT NULL,
		old_status TEXT NOT NULL,
		new_status TEXT NOT NULL,
		changed_at DATETIME NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		FOREIGN KEY (provider_id) REFERENCES outreach_records(provider_id)
	);

	CREATE INDEX IF NOT EXISTS idx_outreach_history_provider
		ON outreach_history(provider_id);
	CREATE INDEX IF NOT EXISTS idx_outreach_records_status
		ON outreach_records(status);
	`
	_, err := r.db.Exec(schema)
	return err
}

// Get returns one record with its full history, oldest transition first.
func (r *Repository) Get(ctx context.Context, providerID string) (domain.Record, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT provider_id, status, contact_date, notes, created_at, updated_at
		FROM outreach_records WHERE provider_id = ?`, providerID)

	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Record{}, domain.ErrRecordNotFound
		}
		return domain.Record{}, fmt.Errorf("query outreach record: %w", err)
	}

	rec.History, err = r.history(ctx, providerID)
	if err != nil {
		return domain.Record{}, err
	}
	return rec, nil
}

// GetAll returns every record with history, ordered by provider id.
func (r *Repository) GetAll(ctx context.Context) ([]domain.Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT provider_id, status, contact_date, notes, created_at, updated_at
		FROM outreach_records ORDER BY provider_id`)
	if err != nil {
		return nil, fmt.Errorf("query outreach records: %w", err)
	}
	defer rows.Close()

	var records []domain.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan outreach record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range records {
		records[i].History, err = r.history(ctx, records[i].ProviderID)
		if err != nil {
			return nil, err
		}
	}
	return records, nil
}

// Upsert writes a record and, when it already existed with a different state,
// appends the transition to the history table in the same transaction.
func (r *Repository) Upsert(ctx context.Context, rec domain.Record, transition *domain.HistoryEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin outreach tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO outreach_records (provider_id, status, contact_date, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(provider_id) DO UPDATE SET
			status = excluded.status,
			contact_date = excluded.contact_date,
			notes = excluded.notes,
			updated_at = excluded.updated_at`,
		rec.ProviderID, rec.Status, rec.ContactDate, rec.Notes,
		rec.CreatedAt.UTC().Format(time.RFC3339Nano),
		rec.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upsert outreach record: %w", err)
	}

	if transition != nil {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO outreach_history (provider_id, old_status, new_status, changed_at, notes)
			VALUES (?, ?, ?, ?, ?)`,
			rec.ProviderID, transition.OldStatus, transition.NewStatus,
			transition.Date.UTC().Format(time.RFC3339Nano), transition.Notes,
		)
		if err != nil {
			return fmt.Errorf("append outreach history: %w", err)
		}
	}

	return tx.Commit()
}

// SetNotes replaces the notes and bumps updated_at for an existing record.
func (r *Repository) SetNotes(ctx context.Context, providerID, notes string, updatedAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE outreach_records SET notes = ?, updated_at = ? WHERE provider_id = ?`,
		notes, updatedAt.UTC().Format(time.RFC3339Nano), providerID)
	if err != nil {
		return fmt.Errorf("update outreach notes: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

// ListByStatus returns the provider ids currently in the given status.
func (r *Repository) ListByStatus(ctx context.Context, status string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT provider_id FROM outreach_records WHERE status = ? ORDER BY provider_id`, status)
	if err != nil {
		return nil, fmt.Errorf("query by status: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// CountByStatus returns record counts grouped by status.
func (r *Repository) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT status, COUNT(*) FROM outreach_records GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func (r *Repository) history(ctx context.Context, providerID string) ([]domain.HistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT old_status, new_status, changed_at, notes
		FROM outreach_history WHERE provider_id = ? ORDER BY id`, providerID)
	if err != nil {
		return nil, fmt.Errorf("query outreach history: %w", err)
	}
	defer rows.Close()

	var entries []domain.HistoryEntry
	for rows.Next() {
		var e domain.HistoryEntry
		var changedAt string
		if err := rows.Scan(&e.OldStatus, &e.NewStatus, &changedAt, &e.Notes); err != nil {
			return nil, err
		}
		e.Date, _ = time.Parse(time.RFC3339Nano, changedAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

type scannable interface {
	Scan(dest ...any) error
}

func scanRecord(row scannable) (domain.Record, error) {
	var rec domain.Record
	var createdAt, updatedAt string
	if err := row.Scan(&rec.ProviderID, &rec.Status, &rec.ContactDate, &rec.Notes, &createdAt, &updatedAt); err != nil {
		return domain.Record{}, err
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	rec.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
	return rec, nil
}
