package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"

	"github.com/pseudomuto/migrokit/pkg/connstore"
	"github.com/pseudomuto/migrokit/pkg/consts"
)

// conn returns the command group for managing saved connection
// profiles: named DSNs an Endpoint can reference as "conn://<name>"
// instead of embedding credentials in migrokit.yaml.
func conn() *cli.Command {
	return &cli.Command{
		Name:  "conn",
		Usage: "Manage saved database connection profiles",
		Commands: []*cli.Command{
			connSave(),
			connList(),
			connRemove(),
		},
	}
}

func connSave() *cli.Command {
	return &cli.Command{
		Name:      "save",
		Usage:     "Save a named connection profile",
		ArgsUsage: "<name>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dsn", Required: true, Usage: "go-sql-driver/mysql DSN"},
			&cli.StringFlag{Name: "description", Usage: "optional note about this connection"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				return errors.New("conn save: a name is required")
			}

			store, err := openConnStore()
			if err != nil {
				return err
			}

			now := time.Now().UTC()
			if err := store.Save(ctx, connstore.Connection{
				Name:        name,
				DSN:         cmd.String("dsn"),
				Description: cmd.String("description"),
				CreatedAt:   now,
			}); err != nil {
				return errors.Wrap(err, "conn save")
			}

			fmt.Fprintf(cmd.Writer, "saved connection %q\n", name)
			return nil
		},
	}
}

func connList() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List saved connection profiles",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			store, err := openConnStore()
			if err != nil {
				return err
			}

			conns, err := store.List(ctx)
			if err != nil {
				return errors.Wrap(err, "conn list")
			}
			if len(conns) == 0 {
				fmt.Fprintln(cmd.Writer, "no saved connections")
				return nil
			}

			w := tabwriter.NewWriter(cmd.Writer, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDESCRIPTION\tCREATED AT")
			for _, c := range conns {
				fmt.Fprintf(w, "%s\t%s\t%s\n", c.Name, c.Description, c.CreatedAt.Format(time.RFC3339))
			}
			return w.Flush()
		},
	}
}

func connRemove() *cli.Command {
	return &cli.Command{
		Name:      "rm",
		Usage:     "Delete a saved connection profile",
		ArgsUsage: "<name>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				return errors.New("conn rm: a name is required")
			}

			store, err := openConnStore()
			if err != nil {
				return err
			}
			if err := store.Delete(ctx, name); err != nil {
				return errors.Wrap(err, "conn rm")
			}

			fmt.Fprintf(cmd.Writer, "deleted connection %q\n", name)
			return nil
		},
	}
}

// connDSNPrefix marks an Endpoint.DSN value as a saved-connection
// reference rather than a literal DSN.
const connDSNPrefix = "conn://"

// openConnStore opens the default saved-connections store, generating
// its encryption key on first use.
func openConnStore() (connstore.Store, error) {
	keyPath := expandHome(consts.DefaultConnStoreKeyPath)
	storePath := expandHome(consts.DefaultConnStorePath)
	fs := afero.NewOsFs()

	key, err := connstore.LoadOrCreateKey(fs, keyPath)
	if err != nil {
		return nil, errors.Wrap(err, "conn: loading encryption key")
	}
	return connstore.NewYAMLStore(fs, storePath, key), nil
}

// resolveDSN dereferences a "conn://<name>" reference against the
// default saved-connections store, passing any other value through
// unchanged.
func resolveDSN(ctx context.Context, dsn string) (string, error) {
	if !strings.HasPrefix(dsn, connDSNPrefix) {
		return dsn, nil
	}

	name := strings.TrimPrefix(dsn, connDSNPrefix)
	store, err := openConnStore()
	if err != nil {
		return "", err
	}

	c, err := store.Load(ctx, name)
	if err != nil {
		return "", errors.Wrapf(err, "conn: resolving saved connection %q", name)
	}
	return c.DSN, nil
}

// expandHome replaces a leading "~" with the current user's home
// directory, tolerating a home directory lookup failure by leaving the
// path untouched (NewYAMLStore/LoadOrCreateKey will then simply fail
// against a relative "~/..." path, surfacing the real cause).
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
