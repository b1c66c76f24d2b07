// Package logging configures the single structured logger migrokit's
// cmd/ and pkg/ layers share, mirroring the teacher's log/slog usage
// (pkg/cmd/root.go, migrate.go, status.go all call the package-level
// slog.Info/Warn/Error functions against whatever logger is installed
// as the default). migrokit adds one thing the teacher never needed:
// an explicit Init that installs a handler, since a CLI that writes
// migration history wants consistent level/format control across runs.
package logging

import (
	"log/slog"
	"os"
)

// Options controls the handler Init installs as the default logger.
type Options struct {
	// Level is the minimum level that is logged.
	Level slog.Level

	// JSON selects a JSON handler instead of the default text handler,
	// for callers piping migrokit's output into log aggregation.
	JSON bool
}

// Init installs a slog.Logger built from opts as the process-wide
// default logger and returns it, so a caller that wants to pass the
// logger explicitly (rather than rely on the package-level slog.*
// functions, as the teacher does) can.
func Init(opts Options) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: opts.Level}

	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, handlerOpts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// LevelFromString parses a user-facing level name ("debug", "info",
// "warn", "error") into a slog.Level, defaulting to Info on an
// unrecognized name.
func LevelFromString(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
