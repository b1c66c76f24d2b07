// Package executor applies a generated migration or rollback script
// against a live MariaDB/MySQL connection, statement by statement.
//
// Grounded on the teacher's pkg/executor.Executor (ClickHouse interface
// + Execute returning one ExecutionResult per migration), narrowed to
// migrokit's scope: one Script produces one forward run and,
// separately, one rollback run, rather than a queue of versioned
// migrations to replay.
package executor

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"

	"github.com/pseudomuto/migrokit/pkg/ddl"
)

// DB is the subset of *sql.DB the Executor needs, so tests can
// substitute a DATA-DOG/go-sqlmock connection.
type DB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Executor runs a migration script's statements against a DB.
type Executor struct {
	db DB
}

// New returns an Executor bound to db.
func New(db DB) *Executor {
	return &Executor{db: db}
}

// ExecutionStatus is the outcome of one Run.
type ExecutionStatus string

const (
	StatusSuccess ExecutionStatus = "success"
	StatusFailed  ExecutionStatus = "failed"
)

// Result describes the outcome of executing one script.
type Result struct {
	Status            ExecutionStatus
	Err               error
	FailedStatement   string
	ExecutionTime     time.Duration
	StatementsApplied int
	TotalStatements   int
}

// Run splits script on top-level semicolons and executes each
// statement in order, stopping at the first failure. SplitStatements
// only understands bare semicolons, so a routine framed with
// pkg/migrator's DELIMITER wrapper is split at the semicolons inside
// its body rather than executed as a single statement.
func (e *Executor) Run(ctx context.Context, script string) Result {
	start := time.Now()
	stmts := ddl.SplitStatements(script)

	result := Result{Status: StatusSuccess, TotalStatements: len(stmts)}

	for _, stmt := range stmts {
		if _, err := e.db.ExecContext(ctx, stmt); err != nil {
			result.Status = StatusFailed
			result.Err = errors.Wrapf(err, "executor: statement %d of %d", result.StatementsApplied+1, len(stmts))
			result.FailedStatement = stmt
			result.ExecutionTime = time.Since(start)
			return result
		}
		result.StatementsApplied++
	}

	result.ExecutionTime = time.Since(start)
	return result
}
