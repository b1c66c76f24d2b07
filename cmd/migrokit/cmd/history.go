package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"

	"github.com/pseudomuto/migrokit/pkg/config"
	"github.com/pseudomuto/migrokit/pkg/history"
)

// historyCmd returns the command that lists every recorded migration
// run, most recent first, in the same tabwriter-rendered style as
// pkg/report.Summarize.
func historyCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:   "history",
		Usage:  "List recorded migration runs",
		Before: requireConfig(cfg),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			recorder, err := history.OpenSQLiteRecorder(ctx, cfg.History.Path)
			if err != nil {
				return errors.Wrap(err, "history: opening database")
			}
			defer func() { _ = recorder.Close() }()

			entries, err := recorder.List(ctx)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.Writer, "no recorded migration runs")
				return nil
			}

			w := tabwriter.NewWriter(cmd.Writer, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tEXECUTED AT\tSTATUS\tOPS\tMIGRATION FILE")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d/%d\t%s\n",
					shortID(e.ID), e.Name, e.ExecutedAt, e.Status, e.SuccessfulOperations, e.OperationsCount, e.MigrationFile)
			}
			return w.Flush()
		},
	}
}

// shortID truncates a recorded entry's uuid to 8 characters for a
// denser table, mirroring git's abbreviated commit hashes.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
