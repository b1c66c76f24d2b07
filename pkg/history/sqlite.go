package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	_ "modernc.org/sqlite"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS migration_history (
	id                    TEXT PRIMARY KEY,
	name                  TEXT NOT NULL,
	source_schema         TEXT NOT NULL,
	dest_schema           TEXT NOT NULL,
	executed_at           TEXT NOT NULL,
	status                TEXT NOT NULL,
	operations_count      INTEGER NOT NULL DEFAULT 0,
	successful_operations INTEGER NOT NULL DEFAULT 0,
	failed_operations     INTEGER NOT NULL DEFAULT 0,
	migration_file        TEXT NOT NULL DEFAULT '',
	rollback_file         TEXT NOT NULL DEFAULT '',
	safety_warnings       TEXT NOT NULL DEFAULT '',
	notes                 TEXT NOT NULL DEFAULT ''
);
`

// SQLiteRecorder is a Recorder backed by a local SQLite database. Rows
// are never deleted or overwritten by Record, only appended to and
// transitioned via UpdateStatus, keeping the log append-only.
type SQLiteRecorder struct {
	db *sql.DB
}

// OpenSQLiteRecorder opens (creating if necessary) the history database
// at path and ensures its schema exists.
func OpenSQLiteRecorder(ctx context.Context, path string) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(err, "history: creating database directory")
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "history: opening database")
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "history: pinging database")
	}
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "history: creating schema")
	}

	return &SQLiteRecorder{db: db}, nil
}

// Close closes the underlying database connection.
func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}

// Record inserts entry, generating an id if entry.ID is empty.
func (r *SQLiteRecorder) Record(ctx context.Context, entry Entry) (string, error) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Status == "" {
		entry.Status = StatusPending
	}

	_, err := r.db.ExecContext(ctx, `
INSERT INTO migration_history(
	id, name, source_schema, dest_schema, executed_at, status,
	operations_count, successful_operations, failed_operations,
	migration_file, rollback_file, safety_warnings, notes
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`,
		entry.ID, entry.Name, entry.SourceSchema, entry.DestSchema, entry.ExecutedAt, string(entry.Status),
		entry.OperationsCount, entry.SuccessfulOperations, entry.FailedOperations,
		entry.MigrationFile, entry.RollbackFile, entry.SafetyWarnings, entry.Notes,
	)
	if err != nil {
		return "", errors.Wrap(err, "history: recording entry")
	}
	return entry.ID, nil
}

// UpdateStatus transitions the entry identified by id to status.
func (r *SQLiteRecorder) UpdateStatus(ctx context.Context, id string, status Status) error {
	res, err := r.db.ExecContext(ctx, `UPDATE migration_history SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return errors.Wrap(err, "history: updating status")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "history: checking update result")
	}
	if n == 0 {
		return errors.Errorf("history: no entry with id %q", id)
	}
	return nil
}

// List returns every recorded entry, most recently executed first.
func (r *SQLiteRecorder) List(ctx context.Context) ([]Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, source_schema, dest_schema, executed_at, status,
       operations_count, successful_operations, failed_operations,
       migration_file, rollback_file, safety_warnings, notes
FROM migration_history
ORDER BY executed_at DESC
`)
	if err != nil {
		return nil, errors.Wrap(err, "history: listing entries")
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var status string
		if err := rows.Scan(
			&e.ID, &e.Name, &e.SourceSchema, &e.DestSchema, &e.ExecutedAt, &status,
			&e.OperationsCount, &e.SuccessfulOperations, &e.FailedOperations,
			&e.MigrationFile, &e.RollbackFile, &e.SafetyWarnings, &e.Notes,
		); err != nil {
			return nil, errors.Wrap(err, "history: scanning entry")
		}
		e.Status = Status(status)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "history: reading entries")
	}
	return entries, nil
}

var _ Recorder = (*SQLiteRecorder)(nil)
