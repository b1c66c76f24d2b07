// Package history implements the history recorder contract (spec §6):
// an append-only log of migration runs keyed by a generated id.
//
// pkg/history/sqlite.go stores entries in SQLite via modernc.org/sqlite
// (the pure-Go driver retrieved in the pack via g960059-agtmux), so the
// history log needs no cgo toolchain, mirroring that repo's internal/db
// package: one struct wrapping a single *sql.DB, schema created with an
// idempotent CREATE TABLE IF NOT EXISTS on open.
package history

import "context"

// Status is the lifecycle state of a recorded migration run.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusSuccess    Status = "SUCCESS"
	StatusFailed     Status = "FAILED"
	StatusRolledBack Status = "ROLLED_BACK"
	StatusDryRun     Status = "DRY_RUN"
)

// Entry is one recorded migration run.
type Entry struct {
	ID                   string
	Name                 string
	SourceSchema         string
	DestSchema           string
	ExecutedAt           string
	Status               Status
	OperationsCount      int
	SuccessfulOperations int
	FailedOperations     int
	MigrationFile        string
	RollbackFile         string
	SafetyWarnings       string
	Notes                string
}

// Recorder persists migration run entries. The migrate command writes a
// PENDING entry once the script is generated, before the artifacts are
// written, and then updates it to SUCCESS (or FAILED if writing fails);
// a dry run is recorded directly as DRY_RUN.
type Recorder interface {
	Record(ctx context.Context, entry Entry) (id string, err error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	List(ctx context.Context) ([]Entry, error)
}
