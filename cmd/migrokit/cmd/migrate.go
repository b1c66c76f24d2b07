package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"

	"github.com/pseudomuto/migrokit/pkg/config"
	"github.com/pseudomuto/migrokit/pkg/history"
	"github.com/pseudomuto/migrokit/pkg/planner"
	"github.com/pseudomuto/migrokit/pkg/report"
	"github.com/pseudomuto/migrokit/pkg/safety"
	"github.com/pseudomuto/migrokit/pkg/sink"
)

// migrate returns the command that generates a migration for cfg's
// source/dest pair and writes its Up/Down/report artifacts to disk.
// migrokit only ever emits scripts — executing SQL against dest is out
// of scope (spec's Non-goals); applying the written .up.sql is left to
// the operator's own tooling.
func migrate(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:   "migrate",
		Usage:  "Generate a migration from dest to the source schema",
		Before: requireConfig(cfg),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "name",
				Usage: "short name for the migration, used in its file basename",
				Value: "migration",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "write no artifacts; only report what would be generated",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "write the migration even if it trips the configured safety policy",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			script, err := assembleFromConfig(ctx, cfg)
			if err != nil {
				return err
			}

			maxRisk, riskiest := worstRisk(script.TablePlans)
			policy := cfg.GetSafetyPolicy()
			blocked := maxRisk != "" && atLeastAsSevere(maxRisk, safety.Risk(policy.MinBlockingLevel))

			if blocked && !policy.AllowDestructive && !cmd.Bool("force") {
				return errors.Errorf(
					"migrate: table %q has a %s risk statement, at or above the configured min_blocking_level (%s); rerun with --force or relax the safety policy",
					riskiest, maxRisk, policy.MinBlockingLevel,
				)
			}

			basename := sink.BasenameFromTimestamp(time.Now().UTC().Format("20060102150405"), cmd.String("name"))
			reportText := string(report.Summarize(script.ObjectDiffs, script.ModifiedCounts)) + "\n" + report.Render(script.TableDiffs)

			recorder, err := history.OpenSQLiteRecorder(ctx, cfg.History.Path)
			if err != nil {
				return errors.Wrap(err, "migrate: opening history database")
			}
			defer func() { _ = recorder.Close() }()

			entry := history.Entry{
				Name:            cmd.String("name"),
				SourceSchema:    cfg.Source.DSN + cfg.Source.SchemaDir,
				DestSchema:      cfg.Dest.DSN + cfg.Dest.SchemaDir,
				ExecutedAt:      time.Now().UTC().Format(time.RFC3339),
				OperationsCount: countStatements(script.TablePlans),
				MigrationFile:   basename + ".up.sql",
				RollbackFile:    basename + ".down.sql",
				SafetyWarnings:  strings.Join(script.Warnings, "; "),
			}

			if cmd.Bool("dry-run") {
				entry.Status = history.StatusDryRun
				if _, err := recorder.Record(ctx, entry); err != nil {
					return err
				}
				fmt.Fprintln(cmd.Writer, reportText)
				fmt.Fprintln(cmd.Writer, "dry run: no files written")
				return nil
			}

			entry.Status = history.StatusPending
			id, err := recorder.Record(ctx, entry)
			if err != nil {
				return err
			}

			fileSink := sink.NewFileSink(afero.NewOsFs(), cfg.Dir, func() string { return basename })
			if err := fileSink.Write(ctx, script.Up, script.Down, reportText); err != nil {
				_ = recorder.UpdateStatus(ctx, id, history.StatusFailed)
				return err
			}

			fmt.Fprintf(cmd.Writer, "wrote %s and %s; apply %s against dest with your own tooling\n",
				entry.MigrationFile, entry.RollbackFile, entry.MigrationFile)
			return recorder.UpdateStatus(ctx, id, history.StatusSuccess)
		},
	}
}

// worstRisk returns the most severe safety.Risk found across every
// table's plan, and the name of one table that attained it.
func worstRisk(plans map[string]*planner.Plan) (safety.Risk, string) {
	var worst safety.Risk
	var table string
	for name, plan := range plans {
		for _, stmt := range plan.Statements {
			if worst == "" || atLeastAsSevere(stmt.Risk, worst) {
				worst = stmt.Risk
				table = name
			}
		}
	}
	return worst, table
}

// atLeastAsSevere reports whether r is at least as severe as min.
func atLeastAsSevere(r, min safety.Risk) bool {
	return r == min || r.Less(min)
}

func countStatements(plans map[string]*planner.Plan) int {
	n := 0
	for _, plan := range plans {
		n += len(plan.Statements)
	}
	return n
}
