// Package sink implements the Sink contract (spec §6): a destination
// for one migration run's generated artifacts.
//
// pkg/sink/file.go writes through github.com/spf13/afero rather than
// os directly, grounded on denisvmedia-inventario's internal/fileblob/fileio
// package — the same "operate through an afero.Fs" idiom, generalized
// here so tests exercise a file layout against an in-memory fs instead
// of touching disk.
package sink

import "context"

// Sink receives one migration run's generated SQL and report text.
type Sink interface {
	Write(ctx context.Context, migrationSQL, rollbackSQL, reportText string) error
}
