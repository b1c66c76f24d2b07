package cmd

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"

	"github.com/pseudomuto/migrokit/pkg/config"
	"github.com/pseudomuto/migrokit/pkg/migrator"
	"github.com/pseudomuto/migrokit/pkg/report"
)

// diff returns the command that compares cfg's source and destination
// endpoints and prints the assembled script's summary and per-table
// report, without writing anything to disk. It's the read-only preview
// `migrate` runs before writing artifacts.
func diff(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:   "diff",
		Usage:  "Preview the migration that would be generated",
		Before: requireConfig(cfg),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			script, err := assembleFromConfig(ctx, cfg)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.Writer, string(report.Summarize(script.ObjectDiffs, script.ModifiedCounts)))
			fmt.Fprintln(cmd.Writer, report.Render(script.TableDiffs))

			for _, w := range script.Warnings {
				fmt.Fprintln(cmd.Writer, "warning:", w)
			}
			return nil
		},
	}
}

// assembleFromConfig loads cfg's source and destination endpoints and
// runs the Migration Assembler over them.
func assembleFromConfig(ctx context.Context, cfg *config.Config) (*migrator.Script, error) {
	src, err := loadEndpoint(ctx, "source", cfg.Source)
	if err != nil {
		return nil, err
	}
	defer func() { _ = src.close() }()

	dest, err := loadEndpoint(ctx, "dest", cfg.Dest)
	if err != nil {
		return nil, err
	}
	defer func() { _ = dest.close() }()

	script, err := migrator.Assemble(ctx, src.db, dest.db, dualDDLSource{src: src.ddlSrc, dest: dest.ddlSrc})
	if err != nil {
		return nil, errors.Wrap(err, "diff: assembling migration")
	}
	return script, nil
}
