package ddl

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/migrokit/pkg/schema"
	"github.com/pseudomuto/migrokit/pkg/utils"
)

var (
	primaryKeyColsRe = regexp.MustCompile(`(?i)^PRIMARY\s+KEY\s*\(([^)]*)\)`)
	namedIndexRe     = regexp.MustCompile("(?i)^(?:UNIQUE|FULLTEXT|KEY|INDEX)\\s*(KEY|INDEX)?\\s*(`(?:[^`]|``)*`|[a-zA-Z_][a-zA-Z0-9_$]*)?\\s*\\(([^)]*)\\)")
	indexUsingRe     = regexp.MustCompile(`(?i)\bUSING\s+(BTREE|HASH)\b`)
)

// parsePrimaryKey parses a PRIMARY KEY (...) clause into the index named
// "PRIMARY", per spec §4.1.
func parsePrimaryKey(clause string) (schema.Index, error) {
	m := primaryKeyColsRe.FindStringSubmatch(clause)
	if m == nil {
		return schema.Index{}, errors.New("malformed PRIMARY KEY clause")
	}
	return schema.Index{
		Name:       "PRIMARY",
		Columns:    splitColumnList(m[1]),
		Unique:     true,
		Primary:    true,
		Definition: clause,
	}, nil
}

// parseIndexClause parses a UNIQUE/FULLTEXT/KEY/INDEX clause. unique and
// fulltext are supplied by the caller from classifyClause's head test,
// since the keyword ordering varies ("UNIQUE KEY" vs "UNIQUE INDEX" vs
// bare "UNIQUE").
func parseIndexClause(clause string, unique, fulltext bool) (schema.Index, error) {
	m := namedIndexRe.FindStringSubmatch(clause)
	if m == nil {
		return schema.Index{}, errors.Errorf("malformed index clause %q", clause)
	}

	name := utils.StripBackticks(m[2])
	if name == "" {
		name = syntheticIndexName(m[3])
	}

	idx := schema.Index{
		Name:       name,
		Columns:    splitColumnList(m[3]),
		Unique:     unique,
		Fulltext:   fulltext,
		Type:       "BTREE",
		Definition: clause,
	}

	if um := indexUsingRe.FindStringSubmatch(clause); um != nil {
		idx.Type = strings.ToUpper(um[1])
	}

	return idx, nil
}

// splitColumnList splits an index column list ("a, b(10), c DESC") on
// top-level commas and strips backticks and prefix-length/sort-order
// suffixes from each column name.
func splitColumnList(s string) []string {
	var names []string
	for _, part := range SplitTopLevel(s) {
		part = strings.TrimSpace(part)
		part = strings.TrimSuffix(part, " ASC")
		part = strings.TrimSuffix(part, " DESC")
		if idx := strings.Index(part, "("); idx >= 0 {
			part = part[:idx]
		}
		part = strings.TrimSpace(part)
		names = append(names, utils.StripBackticks(part))
	}
	return names
}

// syntheticIndexName builds a deterministic name for an unnamed index
// clause, mirroring MariaDB/MySQL's own auto-naming (<col1>[_<col2>...]).
func syntheticIndexName(columnList string) string {
	cols := splitColumnList(columnList)
	return strings.Join(cols, "_")
}
