package source

import (
	"context"

	"github.com/pkg/errors"
	"github.com/pseudomuto/migrokit/pkg/utils"
)

// listRoutines covers both PROCEDURE and FUNCTION, which
// information_schema.ROUTINES distinguishes only by ROUTINE_TYPE.
func (c *Client) listRoutines(ctx context.Context, routineType string) ([]string, error) {
	const query = `
		SELECT ROUTINE_NAME
		FROM information_schema.ROUTINES
		WHERE ROUTINE_SCHEMA = DATABASE() AND ROUTINE_TYPE = ?
		ORDER BY ROUTINE_NAME`

	rows, err := c.db.QueryContext(ctx, query, routineType)
	if err != nil {
		return nil, errors.Wrapf(err, "source: listing %s routines", routineType)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errors.Wrap(err, "source: scanning routine name")
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (c *Client) getRoutineDDL(ctx context.Context, routineType, name string) (string, error) {
	row := c.db.QueryRowContext(ctx, "SHOW CREATE "+routineType+" "+utils.BacktickIdentifier(name))

	var objName, sqlMode, ddl, charset, collation, dbCollation string
	if err := row.Scan(&objName, &sqlMode, &ddl, &charset, &collation, &dbCollation); err != nil {
		return "", errors.Wrapf(err, "source: fetching DDL for %s %q", routineType, name)
	}
	return ddl + ";", nil
}

func (c *Client) listTriggers(ctx context.Context) ([]string, error) {
	const query = `
		SELECT TRIGGER_NAME
		FROM information_schema.TRIGGERS
		WHERE TRIGGER_SCHEMA = DATABASE()
		ORDER BY TRIGGER_NAME`

	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "source: listing triggers")
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errors.Wrap(err, "source: scanning trigger name")
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (c *Client) getTriggerDDL(ctx context.Context, name string) (string, error) {
	row := c.db.QueryRowContext(ctx, "SHOW CREATE TRIGGER "+utils.BacktickIdentifier(name))

	var objName, sqlMode, ddl, charset, collation, dbCollation, created string
	if err := row.Scan(&objName, &sqlMode, &ddl, &charset, &collation, &dbCollation, &created); err != nil {
		return "", errors.Wrapf(err, "source: fetching DDL for trigger %q", name)
	}
	return ddl + ";", nil
}

func (c *Client) listEvents(ctx context.Context) ([]string, error) {
	const query = `
		SELECT EVENT_NAME
		FROM information_schema.EVENTS
		WHERE EVENT_SCHEMA = DATABASE()
		ORDER BY EVENT_NAME`

	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "source: listing events")
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errors.Wrap(err, "source: scanning event name")
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (c *Client) getEventDDL(ctx context.Context, name string) (string, error) {
	row := c.db.QueryRowContext(ctx, "SHOW CREATE EVENT "+utils.BacktickIdentifier(name))

	var objName, sqlMode, timeZone, ddl, charset, collation, dbCollation string
	if err := row.Scan(&objName, &sqlMode, &timeZone, &ddl, &charset, &collation, &dbCollation); err != nil {
		return "", errors.Wrapf(err, "source: fetching DDL for event %q", name)
	}
	return ddl + ";", nil
}
