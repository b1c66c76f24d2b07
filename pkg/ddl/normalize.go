package ddl

import "strings"

// Normalize strips comments, collapses whitespace, and lowercases
// keywords so that two definition strings that differ only in
// presentation compare equal. Definitions retained for emission (e.g.
// schema.Column.Definition) are always the originals; Normalize is used
// only at comparison time, by pkg/diff and pkg/migrator.
func Normalize(definition string) string {
	cleaned, err := StripComments(definition)
	if err != nil {
		cleaned = definition
	}
	cleaned = normalizeWhitespace(cleaned)
	return strings.ToLower(cleaned)
}
