package source

import (
	"context"

	"github.com/pkg/errors"
	"github.com/pseudomuto/migrokit/pkg/utils"
)

// listTables excludes views by restricting TABLE_TYPE to 'BASE TABLE',
// since information_schema.TABLES reports both under the same view.
func (c *Client) listTables(ctx context.Context) ([]string, error) {
	const query = `
		SELECT TABLE_NAME
		FROM information_schema.TABLES
		WHERE TABLE_SCHEMA = DATABASE() AND TABLE_TYPE = 'BASE TABLE'
		ORDER BY TABLE_NAME`

	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "source: listing tables")
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errors.Wrap(err, "source: scanning table name")
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (c *Client) getTableDDL(ctx context.Context, name string) (string, error) {
	row := c.db.QueryRowContext(ctx, "SHOW CREATE TABLE "+utils.BacktickIdentifier(name))

	var tableName, ddl string
	if err := row.Scan(&tableName, &ddl); err != nil {
		return "", errors.Wrapf(err, "source: fetching DDL for table %q", name)
	}
	return ddl + ";", nil
}
