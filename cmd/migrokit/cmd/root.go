package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"
	"go.uber.org/fx"

	"github.com/pseudomuto/migrokit/internal/logging"
	"github.com/pseudomuto/migrokit/pkg/config"
)

type (
	// Params is the fx-injected input to Run: every subcommand the
	// "commands" group has accumulated, plus the lifecycle plumbing
	// needed to run the urfave/cli/v3 app as an fx.StartHook and report
	// its exit code back through fx.Shutdowner.
	Params struct {
		fx.In

		Args       []string
		Commands   []*cli.Command `group:"commands"`
		Ctx        context.Context
		Lifecycle  fx.Lifecycle
		Shutdowner fx.Shutdowner
		Version    *Version
	}

	// Version carries build-time identifiers into the --version output.
	Version struct {
		Version string
		Commit  string
		Date    string
	}
)

// Run builds the migrokit CLI application from p.Commands and executes
// it inside an fx.StartHook, shutting the fx app down with the CLI's
// exit code once it completes.
func Run(p Params) {
	cli.VersionPrinter = func(cmd *cli.Command) {
		fmt.Fprintln(cmd.Writer, "Version:", p.Version.Version)
		fmt.Fprintln(cmd.Writer, "Commit:", p.Version.Commit)
		fmt.Fprintln(cmd.Writer, "Date:", p.Version.Date)
	}

	app := &cli.Command{
		Name:    "migrokit",
		Usage:   "Generate MariaDB/MySQL schema migrations",
		Version: p.Version.Version,
		Description: `migrokit compares a desired schema (a live server or a directory of
CREATE statements) against the schema currently in place and generates
a forward migration and its symmetric rollback.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "minimum log level (debug, info, warn, error)",
				Value: "info",
			},
			&cli.BoolFlag{
				Name:  "log-json",
				Usage: "emit structured logs as JSON instead of text",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.Init(logging.Options{
				Level: logging.LevelFromString(cmd.String("log-level")),
				JSON:  cmd.Bool("log-json"),
			})
			return ctx, nil
		},
		Commands: p.Commands,
	}

	p.Lifecycle.Append(fx.StartHook(func() {
		if err := app.Run(p.Ctx, p.Args); err != nil {
			slog.Error("command failed", "err", err)
			_ = p.Shutdowner.Shutdown(fx.ExitCode(1))
			return
		}
		_ = p.Shutdowner.Shutdown(fx.ExitCode(0))
	}))
}

// requireConfig gates a command on a project configuration file
// already having been loaded.
func requireConfig(cfg *config.Config) func(context.Context, *cli.Command) (context.Context, error) {
	return func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
		if cfg == nil {
			return ctx, errors.Errorf("%s not found in the current directory; run 'migrokit init' first", config.DefaultConfigFile)
		}
		return ctx, nil
	}
}
