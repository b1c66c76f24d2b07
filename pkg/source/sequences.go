package source

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/pseudomuto/migrokit/pkg/utils"
)

// listSequences reports an empty set on server versions that lack
// information_schema.SEQUENCES (MariaDB < 10.3, and all MySQL builds).
// The capability is probed once per Client and cached, since the probe
// query itself would otherwise error on every call on an unsupported
// server.
func (c *Client) listSequences(ctx context.Context) ([]string, error) {
	if !c.sequencesProbed {
		c.sequencesSupported = c.probeSequenceSupport(ctx)
		c.sequencesProbed = true
	}
	if !c.sequencesSupported {
		return nil, nil
	}

	const query = `
		SELECT TABLE_NAME
		FROM information_schema.SEQUENCES
		WHERE TABLE_SCHEMA = DATABASE()
		ORDER BY TABLE_NAME`

	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "source: listing sequences")
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errors.Wrap(err, "source: scanning sequence name")
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (c *Client) probeSequenceSupport(ctx context.Context) bool {
	row := c.db.QueryRowContext(ctx, "SELECT 1 FROM information_schema.SEQUENCES LIMIT 1")
	var discard int
	err := row.Scan(&discard)
	return err == nil || errors.Is(err, sql.ErrNoRows)
}

func (c *Client) getSequenceDDL(ctx context.Context, name string) (string, error) {
	row := c.db.QueryRowContext(ctx, "SHOW CREATE SEQUENCE "+utils.BacktickIdentifier(name))

	var objName, ddl string
	if err := row.Scan(&objName, &ddl); err != nil {
		return "", errors.Wrapf(err, "source: fetching DDL for sequence %q", name)
	}
	return ddl + ";", nil
}
