package ddl

import (
	"regexp"

	"github.com/pkg/errors"
	"github.com/pseudomuto/migrokit/pkg/schema"
	"github.com/pseudomuto/migrokit/pkg/utils"
)

// foreignKeyRe captures the constraint name, local columns, referenced
// table, referenced columns, and optional ON DELETE/ON UPDATE actions.
// Grounded on Redesign R2: migrokit always parses Columns as a []string
// up front, never string-matches backtick-quoted names inside the
// definition text at plan time.
var foreignKeyRe = regexp.MustCompile(`(?is)` +
	"^(?:CONSTRAINT\\s+(`(?:[^`]|``)*`|[a-zA-Z_][a-zA-Z0-9_$]*)\\s+)?" +
	`FOREIGN\s+KEY\s*\(([^)]*)\)\s*` +
	"REFERENCES\\s+(`(?:[^`]|``)*`|[a-zA-Z_][a-zA-Z0-9_$.]*)\\s*\\(([^)]*)\\)" +
	`(?:\s+ON\s+DELETE\s+(CASCADE|SET\s+NULL|RESTRICT|NO\s+ACTION|SET\s+DEFAULT))?` +
	`(?:\s+ON\s+UPDATE\s+(CASCADE|SET\s+NULL|RESTRICT|NO\s+ACTION|SET\s+DEFAULT))?`)

// parseForeignKey parses a CONSTRAINT ... FOREIGN KEY (...) REFERENCES
// ... clause into a schema.ForeignKey with Columns and ReferencedColumns
// already split into slices.
func parseForeignKey(clause string) (schema.ForeignKey, error) {
	m := foreignKeyRe.FindStringSubmatch(clause)
	if m == nil {
		return schema.ForeignKey{}, errors.Errorf("malformed foreign key clause %q", clause)
	}

	name := utils.StripBackticks(m[1])
	if name == "" {
		name = "fk_" + syntheticIndexName(m[2])
	}

	return schema.ForeignKey{
		Name:              name,
		Columns:           splitColumnList(m[2]),
		ReferencedTable:   utils.StripBackticks(m[3]),
		ReferencedColumns: splitColumnList(m[4]),
		OnDelete:          m[5],
		OnUpdate:          m[6],
		Definition:        clause,
	}, nil
}
