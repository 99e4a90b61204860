// Package sqlite provides the SQLite-backed audit.Repository. It shares the
// database handle of the main store so audit rows live next to the business
// data they describe.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rmedinah/crm-backend/internal/crm/audit"
)

const schema = `
CREATE TABLE IF NOT EXISTS audit_logs (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    operation   TEXT    NOT NULL,
    entity      TEXT    NOT NULL,
    entity_id   INTEGER NOT NULL,
    detail      TEXT    NOT NULL DEFAULT '',

    -- Groups the rows of one bulk mutation; '' for single mutations.
    batch_id    TEXT    NOT NULL DEFAULT '',

    -- W3C identifiers of the request trace, for jumping from an audit row
    -- to the full trace.
    trace_id    TEXT    NOT NULL DEFAULT '',
    span_id     TEXT    NOT NULL DEFAULT '',

    created_at  TEXT    NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_audit_logs_entity ON audit_logs(entity, entity_id);
CREATE INDEX IF NOT EXISTS idx_audit_logs_batch_id ON audit_logs(batch_id);
`

// Repository is the SQLite implementation of audit.Repository.
type Repository struct {
	db *sql.DB
}

var _ audit.Repository = (*Repository)(nil)

// New applies the audit schema to db and returns the repository.
func New(db *sql.DB) (*Repository, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("sqlite: apply audit schema: %w", err)
	}
	return &Repository{db: db}, nil
}

// Save appends one audit row. Safe to call concurrently.
func (r *Repository) Save(ctx context.Context, e *audit.Entry) error {
	const q = `
		INSERT INTO audit_logs
			(operation, entity, entity_id, detail, batch_id, trace_id, span_id, created_at)
		VALUES
			(?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q,
		e.Operation,
		e.Entity,
		e.EntityID,
		e.Detail,
		e.BatchID,
		e.TraceID,
		e.SpanID,
		e.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("sqlite: save audit entry for %s %d: %w", e.Entity, e.EntityID, err)
	}
	return nil
}

// ForEntity returns the audit rows for one entity, newest first. Intended
// for operational inspection, not exposed over the API.
func (r *Repository) ForEntity(ctx context.Context, entity string, entityID int64) ([]*audit.Entry, error) {
	const q = `
		SELECT operation, entity, entity_id, detail, batch_id, trace_id, span_id, created_at
		FROM   audit_logs
		WHERE  entity = ? AND entity_id = ?
		ORDER  BY id DESC`

	rows, err := r.db.QueryContext(ctx, q, entity, entityID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: audit for %s %d: %w", entity, entityID, err)
	}
	defer rows.Close()

	var entries []*audit.Entry
	for rows.Next() {
		var e audit.Entry
		var createdAt string
		if err := rows.Scan(&e.Operation, &e.Entity, &e.EntityID, &e.Detail, &e.BatchID, &e.TraceID, &e.SpanID, &createdAt); err != nil {
			return nil, fmt.Errorf("sqlite: scan audit entry: %w", err)
		}
		e.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("sqlite: parse audit time %q: %w", createdAt, err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
