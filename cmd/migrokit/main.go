// migrokit compares a desired MariaDB/MySQL schema (a live server or a
// directory of CREATE statements) against the schema currently in
// place and generates a forward migration and its symmetric rollback,
// with a safety advisor that flags risky operations before they're
// written. migrokit never executes SQL against the destination itself;
// the generated .up.sql/.down.sql are handed to the operator's own
// tooling to apply.
//
// Usage:
//
//	# Scaffold a new project
//	migrokit init
//
//	# Preview the migration migrokit would generate
//	migrokit diff
//
//	# Generate it
//	migrokit migrate --name add_orders_table
package main

import (
	"context"
	"os"
	"time"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/pseudomuto/migrokit/cmd/migrokit/cmd"
	"github.com/pseudomuto/migrokit/pkg/config"
)

// Build-time variables set by GoReleaser during release builds.
var (
	version string = "local"
	commit  string = "local"
	date    string = time.Now().UTC().Format(time.RFC3339)
)

func main() {
	app := fx.New(
		fx.WithLogger(func() fxevent.Logger { return fxevent.NopLogger }),
		fx.Supply(os.Args),
		fx.Provide(
			func() context.Context { return context.Background() },
			func() *cmd.Version { return &cmd.Version{Version: version, Commit: commit, Date: date} },
		),
		config.Module,
		cmd.Module,
	)
	app.Run()
}
