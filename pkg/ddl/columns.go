package ddl

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/migrokit/pkg/schema"
	"github.com/pseudomuto/migrokit/pkg/utils"
)

var (
	columnNameRe = regexp.MustCompile("^(`(?:[^`]|``)*`|[a-zA-Z_][a-zA-Z0-9_$]*)\\s*(.*)$")

	notNullRe    = regexp.MustCompile(`(?i)\bNOT\s+NULL\b`)
	nullRe       = regexp.MustCompile(`(?i)\bNULL\b`)
	defaultRe    = regexp.MustCompile(`(?i)\bDEFAULT\s+('(?:[^'\\]|\\.|'')*'|[A-Za-z0-9_().+\-]+(?:\([^)]*\))?)`)
	autoIncColRe = regexp.MustCompile(`(?i)\bAUTO_INCREMENT\b`)
	charsetColRe = regexp.MustCompile(`(?i)\bCHARACTER\s+SET\s+([a-zA-Z0-9_]+)`)
	collateColRe = regexp.MustCompile(`(?i)\bCOLLATE\s+([a-zA-Z0-9_]+)`)
	commentColRe = regexp.MustCompile(`(?i)\bCOMMENT\s+'((?:[^'\\]|\\.|'')*)'`)
	dataTypeRe   = regexp.MustCompile(`(?i)^([a-zA-Z0-9_]+(?:\s*\([^)]*\))?(?:\s+(?:UNSIGNED|ZEROFILL))*)`)
	generatedRe  = regexp.MustCompile(`(?i)\bGENERATED\s+ALWAYS\s+AS\s*\((.*)\)\s*(VIRTUAL|STORED)?`)
)

// parseColumnDefinition parses one top-level clause that is neither an
// index, a foreign key, nor a CHECK constraint into a schema.Column.
// The full definition string is retained verbatim alongside the
// extracted fields, per spec §3.
func parseColumnDefinition(clause string, position int) (schema.Column, error) {
	m := columnNameRe.FindStringSubmatch(clause)
	if m == nil {
		return schema.Column{}, errors.New("could not locate column name")
	}

	name := utils.StripBackticks(m[1])
	rest := strings.TrimSpace(m[2])
	if name == "" || rest == "" {
		return schema.Column{}, errors.Errorf("empty column name or definition in clause %q", clause)
	}

	col := schema.Column{
		Name:       name,
		Definition: rest,
		Position:   position,
		Nullable:   true,
	}

	if dt := dataTypeRe.FindStringSubmatch(rest); dt != nil {
		col.DataType = strings.TrimSpace(dt[1])
	}

	if notNullRe.MatchString(rest) {
		col.Nullable = false
	} else if nullRe.MatchString(rest) {
		col.Nullable = true
	}

	if gm := generatedRe.FindStringSubmatch(rest); gm != nil {
		col.Generated = &schema.GeneratedColumn{
			Expression:   strings.TrimSpace(gm[1]),
			Stored:       strings.EqualFold(gm[2], "STORED"),
			ReferencedBy: referencedColumnNames(gm[1]),
		}
	} else if dm := defaultRe.FindStringSubmatch(rest); dm != nil {
		col.HasDefault = true
		col.Default = unquoteSQLString(dm[1])
	}

	if autoIncColRe.MatchString(rest) {
		col.AutoIncrement = true
	}
	if cm := charsetColRe.FindStringSubmatch(rest); cm != nil {
		col.Charset = cm[1]
	}
	if cm := collateColRe.FindStringSubmatch(rest); cm != nil {
		col.Collation = cm[1]
	}
	if cm := commentColRe.FindStringSubmatch(rest); cm != nil {
		col.Comment = strings.ReplaceAll(cm[1], "\\'", "'")
	}

	return col, nil
}

// referencedColumnNames does a best-effort scan of a generated-column
// expression for bare identifiers that look like column references. This
// is deliberately approximate — migrokit never rewrites the expression
// (see Redesign R1), it only uses this list to decide whether to attach a
// safety warning.
func referencedColumnNames(expr string) []string {
	identRe := regexp.MustCompile("`([a-zA-Z_][a-zA-Z0-9_]*)`|\\b([a-zA-Z_][a-zA-Z0-9_]*)\\b")
	seen := map[string]struct{}{}
	var names []string
	for _, m := range identRe.FindAllStringSubmatch(expr, -1) {
		name := m[1]
		if name == "" {
			name = m[2]
		}
		if isSQLFunctionKeyword(name) {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

var sqlFunctionKeywords = map[string]struct{}{
	"CONCAT": {}, "COALESCE": {}, "CAST": {}, "CASE": {}, "WHEN": {}, "THEN": {},
	"ELSE": {}, "END": {}, "AS": {}, "IF": {}, "NULL": {}, "TRUE": {}, "FALSE": {},
}

func isSQLFunctionKeyword(name string) bool {
	_, ok := sqlFunctionKeywords[strings.ToUpper(name)]
	return ok
}

func unquoteSQLString(s string) string {
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		inner := s[1 : len(s)-1]
		return strings.ReplaceAll(inner, "''", "'")
	}
	return s
}
