package source

import (
	"context"

	"github.com/pkg/errors"
	"github.com/pseudomuto/migrokit/pkg/utils"
)

func (c *Client) listViews(ctx context.Context) ([]string, error) {
	const query = `
		SELECT TABLE_NAME
		FROM information_schema.VIEWS
		WHERE TABLE_SCHEMA = DATABASE()
		ORDER BY TABLE_NAME`

	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "source: listing views")
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errors.Wrap(err, "source: scanning view name")
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (c *Client) getViewDDL(ctx context.Context, name string) (string, error) {
	row := c.db.QueryRowContext(ctx, "SHOW CREATE VIEW "+utils.BacktickIdentifier(name))

	var viewName, ddl, charset, collation string
	if err := row.Scan(&viewName, &ddl, &charset, &collation); err != nil {
		return "", errors.Wrapf(err, "source: fetching DDL for view %q", name)
	}
	return ddl + ";", nil
}
