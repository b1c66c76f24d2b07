package cmd

import (
	"context"
	"os"

	"github.com/goccy/go-graphviz"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"

	"github.com/pseudomuto/migrokit/pkg/config"
	"github.com/pseudomuto/migrokit/pkg/consts"
	"github.com/pseudomuto/migrokit/pkg/visualize"
)

// visualizeCmd returns the command that renders one endpoint's
// foreign-key dependency graph, either as DOT source to stdout or as a
// PNG/SVG image to a file.
func visualizeCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:   "visualize",
		Usage:  "Render a schema's foreign-key dependency graph",
		Before: requireConfig(cfg),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "endpoint",
				Usage: "which endpoint to render: source or dest",
				Value: "dest",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "output format: dot, png, or svg",
				Value: "dot",
			},
			&cli.StringFlag{
				Name:  "out",
				Usage: "output file path; defaults to stdout for dot",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ep, err := endpointFor(cfg, cmd.String("endpoint"))
			if err != nil {
				return err
			}

			loaded, err := loadEndpoint(ctx, cmd.String("endpoint"), ep)
			if err != nil {
				return err
			}
			defer func() { _ = loaded.close() }()

			switch cmd.String("format") {
			case "dot":
				dot, err := visualize.BuildDOTSource(loaded.db)
				if err != nil {
					return err
				}
				if out := cmd.String("out"); out != "" {
					return os.WriteFile(out, []byte(dot), consts.ModeFile)
				}
				_, err = cmd.Writer.Write([]byte(dot))
				return err

			case "png", "svg":
				out := cmd.String("out")
				if out == "" {
					return errors.Errorf("visualize: --out is required for %s output", cmd.String("format"))
				}
				f, err := os.Create(out)
				if err != nil {
					return errors.Wrap(err, "visualize: creating output file")
				}
				defer func() { _ = f.Close() }()

				format := graphviz.PNG
				if cmd.String("format") == "svg" {
					format = graphviz.SVG
				}
				return visualize.Render(ctx, loaded.db, format, f)

			default:
				return errors.Errorf("visualize: unknown format %q", cmd.String("format"))
			}
		},
	}
}

// endpointFor selects cfg's source or dest Endpoint by name.
func endpointFor(cfg *config.Config, name string) (config.Endpoint, error) {
	switch name {
	case "source":
		return cfg.Source, nil
	case "dest":
		return cfg.Dest, nil
	default:
		return config.Endpoint{}, errors.Errorf("visualize: unknown endpoint %q (want source or dest)", name)
	}
}
