package migrator

import "strings"

const (
	// defaultDelimiter frames routine bodies (procedures, functions,
	// triggers, events) so their internal semicolons don't terminate
	// the statement early when the script is replayed.
	defaultDelimiter = "$$"

	// fallbackDelimiter is substituted when a routine body itself
	// contains the default delimiter, per spec.md §9's delimiter-hygiene
	// note, grounded on original_source/ddlwizard/utils/migration.py's
	// DELIMITER handling — generalized here to detect the collision
	// instead of assuming $$ is always safe.
	fallbackDelimiter = "$ddlwizard$"
)

// chooseDelimiter returns defaultDelimiter unless ddl contains it
// literally, in which case fallbackDelimiter is used instead.
func chooseDelimiter(ddl string) string {
	if strings.Contains(ddl, defaultDelimiter) {
		return fallbackDelimiter
	}
	return defaultDelimiter
}

// frameRoutine wraps a single routine statement in a DELIMITER block.
func frameRoutine(statement string) string {
	delim := chooseDelimiter(statement)

	var b strings.Builder
	b.WriteString("DELIMITER ")
	b.WriteString(delim)
	b.WriteString("\n")
	b.WriteString(strings.TrimRight(strings.TrimSpace(statement), ";"))
	b.WriteString(delim)
	b.WriteString("\nDELIMITER ;\n")
	return b.String()
}
