package source

import (
	"context"
	"database/sql"

	// registers the "mysql" driver with database/sql
	_ "github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	"github.com/pseudomuto/migrokit/pkg/schema"
)

// Client is a DDLSource backed by a live MariaDB/MySQL connection. It
// mirrors the teacher's clickhouse.Client: one struct wrapping a single
// *sql.DB, one file per object kind implementing the dispatch in
// ListObjects/GetDDL.
type Client struct {
	db *sql.DB

	sequencesProbed    bool
	sequencesSupported bool
}

// NewClient opens a MariaDB/MySQL connection using dsn (the
// go-sql-driver/mysql DSN format, e.g. "user:pass@tcp(host:3306)/db").
func NewClient(dsn string) (*Client, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "source: opening connection")
	}
	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "source: pinging connection")
	}
	return &Client{db: db}, nil
}

// NewClientFromDB wraps an already-open *sql.DB, used by tests to
// substitute a sqlmock connection for a live MariaDB/MySQL server.
func NewClientFromDB(db *sql.DB) *Client {
	return &Client{db: db}
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.db.Close()
}

// ExecContext runs a statement against the underlying connection,
// satisfying pkg/executor.DB. migrokit's CLI never calls this itself —
// applying a generated script to dest is the operator's job — but it
// lets pkg/history's integration test drive pkg/executor against a real
// Client end to end without a second connection type.
func (c *Client) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return c.db.ExecContext(ctx, query, args...)
}

// ListObjects enumerates the names of every object of kind in the
// connected schema.
func (c *Client) ListObjects(ctx context.Context, kind schema.Kind) ([]string, error) {
	switch kind {
	case schema.KindTable:
		return c.listTables(ctx)
	case schema.KindView:
		return c.listViews(ctx)
	case schema.KindProcedure:
		return c.listRoutines(ctx, "PROCEDURE")
	case schema.KindFunction:
		return c.listRoutines(ctx, "FUNCTION")
	case schema.KindTrigger:
		return c.listTriggers(ctx)
	case schema.KindEvent:
		return c.listEvents(ctx)
	case schema.KindSequence:
		return c.listSequences(ctx)
	default:
		return nil, errors.Errorf("source: unknown object kind %q", kind)
	}
}

// GetDDL fetches the CREATE statement for one named object of kind.
func (c *Client) GetDDL(ctx context.Context, kind schema.Kind, name string) (string, error) {
	switch kind {
	case schema.KindTable:
		return c.getTableDDL(ctx, name)
	case schema.KindView:
		return c.getViewDDL(ctx, name)
	case schema.KindProcedure:
		return c.getRoutineDDL(ctx, "PROCEDURE", name)
	case schema.KindFunction:
		return c.getRoutineDDL(ctx, "FUNCTION", name)
	case schema.KindTrigger:
		return c.getTriggerDDL(ctx, name)
	case schema.KindEvent:
		return c.getEventDDL(ctx, name)
	case schema.KindSequence:
		return c.getSequenceDDL(ctx, name)
	default:
		return "", errors.Errorf("source: unknown object kind %q", kind)
	}
}
