// Package source defines the DDL source contract (spec §6): a named
// object enumerator plus a per-object DDL fetcher, implemented against
// a live MariaDB/MySQL instance by Client (client.go and one file per
// object kind).
//
// Grounded on the teacher's pkg/clickhouse.Client shape: one Client
// wrapping a single connection, one file per object kind.
package source

import (
	"context"

	"github.com/pseudomuto/migrokit/pkg/schema"
)

// DDLSource enumerates objects of a given kind and fetches the DDL for
// a named object of that kind.
type DDLSource interface {
	ListObjects(ctx context.Context, kind schema.Kind) ([]string, error)
	GetDDL(ctx context.Context, kind schema.Kind, name string) (string, error)
}
