package cmd

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/pseudomuto/migrokit/pkg/config"
	"github.com/pseudomuto/migrokit/pkg/schema"
	"github.com/pseudomuto/migrokit/pkg/source"
)

// endpoint is a resolved config.Endpoint: the schema.Database it
// enumerates to, plus (for live connections only) the DDLSource the
// Migration Assembler uses to lazily fetch DDL text, and a closer to
// release the underlying connection.
type endpoint struct {
	db     *schema.Database
	ddlSrc source.DDLSource
	close  func() error
}

// loadEndpoint resolves ep into a schema.Database: a live MariaDB/MySQL
// connection when ep.DSN is set, or a directory of CREATE statements
// when ep.SchemaDir is set. At least one of the two must be set; when
// both are, the DSN is used.
func loadEndpoint(ctx context.Context, name string, ep config.Endpoint) (*endpoint, error) {
	switch {
	case ep.DSN != "":
		dsn, err := resolveDSN(ctx, ep.DSN)
		if err != nil {
			return nil, err
		}

		client, err := source.NewClient(dsn)
		if err != nil {
			return nil, errors.Wrapf(err, "cmd: connecting to %s endpoint", name)
		}
		db, err := source.LoadLive(ctx, client, name)
		if err != nil {
			_ = client.Close()
			return nil, errors.Wrapf(err, "cmd: enumerating %s endpoint", name)
		}
		applyIgnoreList(db, ep.IgnoreTables)
		return &endpoint{db: db, ddlSrc: client, close: client.Close}, nil

	case ep.SchemaDir != "":
		db, err := source.LoadDir(afero.NewOsFs(), ep.SchemaDir, name)
		if err != nil {
			return nil, errors.Wrapf(err, "cmd: loading %s schema directory", name)
		}
		applyIgnoreList(db, ep.IgnoreTables)
		return &endpoint{db: db, close: func() error { return nil }}, nil

	default:
		return nil, errors.Errorf("cmd: %s endpoint has neither dsn nor schema_dir set", name)
	}
}

// applyIgnoreList removes tables named in ignore from db's table set
// before they ever reach the Comparator.
func applyIgnoreList(db *schema.Database, ignore []string) {
	for _, name := range ignore {
		delete(db.Objects[schema.KindTable], name)
	}
}

// dualDDLSource dispatches a fetch to whichever side's DDLSource isn't
// nil, trying src before dest. pkg/migrator's resolveDDL calls a single
// DDLSource for both the source and destination database's unresolved
// objects; this only matters when both endpoints are live connections,
// since a schema-directory endpoint always has its DDL populated inline
// and never reaches GetDDL. In the common case of one live endpoint and
// one schema directory, this always dispatches to the one live side.
type dualDDLSource struct {
	src, dest sourceGetter
}

type sourceGetter interface {
	GetDDL(ctx context.Context, kind schema.Kind, name string) (string, error)
}

func (d dualDDLSource) ListObjects(ctx context.Context, kind schema.Kind) ([]string, error) {
	return nil, errors.New("cmd: dualDDLSource does not support enumeration")
}

func (d dualDDLSource) GetDDL(ctx context.Context, kind schema.Kind, name string) (string, error) {
	if d.src != nil {
		if text, err := d.src.GetDDL(ctx, kind, name); err == nil {
			return text, nil
		}
	}
	if d.dest != nil {
		return d.dest.GetDDL(ctx, kind, name)
	}
	return "", errors.Errorf("cmd: no live source configured to fetch %s %q", kind, name)
}
