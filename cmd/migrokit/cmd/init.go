package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/pseudomuto/migrokit/pkg/config"
	"github.com/pseudomuto/migrokit/pkg/consts"
)

// initCmd returns a CLI command that scaffolds a new migrokit project
// in the current directory: a migrokit.yaml with placeholder endpoints
// and the default migration output directory. Running it again is a
// no-op unless --force is given, mirroring the teacher's idempotent
// init command.
func initCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Scaffold a new migrokit project in the current directory",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "force",
				Usage: "overwrite an existing migrokit.yaml",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := os.Stat(config.DefaultConfigFile); err == nil && !cmd.Bool("force") {
				fmt.Fprintf(cmd.Writer, "%s already exists; pass --force to overwrite\n", config.DefaultConfigFile)
				return nil
			}

			cfg := config.Config{
				Source: config.Endpoint{SchemaDir: "db/schema"},
				Dest:   config.Endpoint{DSN: "user:pass@tcp(127.0.0.1:3306)/app"},
				Dir:    consts.DefaultMigrationDir,
				History: config.HistoryConfig{
					Path: consts.DefaultHistoryDBPath,
				},
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return errors.Wrap(err, "init: encoding default configuration")
			}

			if err := os.WriteFile(config.DefaultConfigFile, data, consts.ModeFile); err != nil {
				return errors.Wrapf(err, "init: writing %s", config.DefaultConfigFile)
			}

			if err := os.MkdirAll(cfg.Dir, consts.ModeDir); err != nil {
				return errors.Wrapf(err, "init: creating %s", cfg.Dir)
			}
			if err := os.MkdirAll(cfg.Source.SchemaDir, consts.ModeDir); err != nil {
				return errors.Wrapf(err, "init: creating %s", cfg.Source.SchemaDir)
			}

			fmt.Fprintf(cmd.Writer, "Initialized migrokit project: %s\n", config.DefaultConfigFile)
			fmt.Fprintf(cmd.Writer, "  migration output: %s\n", cfg.Dir)
			fmt.Fprintf(cmd.Writer, "  desired schema:   %s\n", cfg.Source.SchemaDir)
			fmt.Fprintln(cmd.Writer, "Edit migrokit.yaml to point source/dest at your real endpoints.")
			return nil
		},
	}
}
