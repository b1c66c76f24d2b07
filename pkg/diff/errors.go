package diff

import "fmt"

// InconsistentSchemaError describes a foreign key in one compared schema
// that references a table the other schema does not contain.
// AnalyzeTableDifferences does not look up referenced tables and neither
// returns nor records this error; such a foreign key is diffed like any
// other.
type InconsistentSchemaError struct {
	TableName           string
	ConstraintName      string
	ReferencedTableName string
}

func (e *InconsistentSchemaError) Error() string {
	return fmt.Sprintf(
		"table %q: foreign key %q references table %q, which is missing from the compared schema",
		e.TableName, e.ConstraintName, e.ReferencedTableName,
	)
}
