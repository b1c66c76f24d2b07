package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"

	"github.com/pseudomuto/migrokit/pkg/config"
	"github.com/pseudomuto/migrokit/pkg/consts"
	"github.com/pseudomuto/migrokit/pkg/history"
)

// rollback returns the command that locates the rollback script
// recorded for a prior migration and prints it to stdout (or writes it
// to --out), marking the history entry ROLLED_BACK once the operator
// confirms they've applied it. migrokit never executes SQL against
// dest itself — the generated .down.sql is handed to the operator's
// own SQL client, the same way migrate hands off the .up.sql.
func rollback(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "rollback",
		Usage:     "Print a previously-generated rollback script (optionally marking it applied)",
		ArgsUsage: "<id>",
		Before:    requireConfig(cfg),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Usage: "write the rollback script here instead of stdout"},
			&cli.BoolFlag{Name: "mark-applied", Usage: "flip the history entry to ROLLED_BACK after printing"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id := cmd.Args().First()
			if id == "" {
				return errors.New("rollback: an entry id is required (see 'migrokit history')")
			}

			recorder, err := history.OpenSQLiteRecorder(ctx, cfg.History.Path)
			if err != nil {
				return errors.Wrap(err, "rollback: opening history database")
			}
			defer func() { _ = recorder.Close() }()

			entries, err := recorder.List(ctx)
			if err != nil {
				return err
			}

			entry, found := findEntry(entries, id)
			if !found {
				return errors.Errorf("rollback: no history entry matching %q", id)
			}
			if entry.RollbackFile == "" {
				return errors.Errorf("rollback: entry %s has no recorded rollback file", entry.ID)
			}
			if entry.Status == history.StatusRolledBack {
				return errors.Errorf("rollback: entry %s was already rolled back", entry.ID)
			}

			path := filepath.Join(cfg.Dir, entry.RollbackFile)
			down, err := os.ReadFile(path)
			if err != nil {
				return errors.Wrapf(err, "rollback: reading %s", path)
			}

			if out := cmd.String("out"); out != "" {
				if err := os.WriteFile(out, down, consts.ModeFile); err != nil {
					return errors.Wrapf(err, "rollback: writing %s", out)
				}
				fmt.Fprintf(cmd.Writer, "wrote %s; apply it against dest with your own tooling\n", out)
			} else {
				fmt.Fprintln(cmd.Writer, string(down))
			}

			if !cmd.Bool("mark-applied") {
				return nil
			}
			return recorder.UpdateStatus(ctx, entry.ID, history.StatusRolledBack)
		},
	}
}

// findEntry matches id against an entry's full id or its shortID
// prefix, the same convention history.go prints.
func findEntry(entries []history.Entry, id string) (history.Entry, bool) {
	for _, e := range entries {
		if e.ID == id || shortID(e.ID) == id {
			return e, true
		}
	}
	return history.Entry{}, false
}
