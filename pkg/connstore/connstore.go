// Package connstore implements the saved-connections store: named
// MariaDB/MySQL connection profiles a user can recall by name instead
// of retyping a DSN on every invocation.
//
// Grounded on original_source/connection_manager.py's ConnectionManager
// (save/load/list/delete against a single file under a config
// directory, each profile keyed by name). The Python original never
// persists the password; this implementation does, but encrypted at
// rest (see crypto.go), since migrokit's DSNs are connection strings
// that embed credentials rather than bare host/user/schema tuples.
package connstore

import (
	"context"
	"time"
)

// Connection is one saved database connection profile.
type Connection struct {
	Name        string
	DSN         string
	Description string
	CreatedAt   time.Time
	LastUsedAt  *time.Time
}

// Store persists named Connection profiles.
type Store interface {
	Save(ctx context.Context, conn Connection) error
	Load(ctx context.Context, name string) (Connection, error)
	List(ctx context.Context) ([]Connection, error)
	Delete(ctx context.Context, name string) error
}

// ErrNotFound is returned by Load when name has no saved profile.
type ErrNotFound string

func (e ErrNotFound) Error() string {
	return "connstore: no saved connection named " + string(e)
}
