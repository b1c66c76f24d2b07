package ddl

import (
	"regexp"
	"strings"

	"github.com/pseudomuto/migrokit/pkg/schema"
	"github.com/pseudomuto/migrokit/pkg/utils"
)

var (
	tableNameRe = regexp.MustCompile(`(?i)^\s*CREATE\s+TABLE\s+(?:IF\s+NOT\s+EXISTS\s+)?` +
		"(`?[a-zA-Z_][a-zA-Z0-9_$]*`?(?:\\.`?[a-zA-Z_][a-zA-Z0-9_$]*`?)?)")

	enginRe   = regexp.MustCompile(`(?i)\bENGINE\s*=\s*([a-zA-Z0-9_]+)`)
	charsetRe = regexp.MustCompile(`(?i)\bDEFAULT\s+CHARSET\s*=\s*([a-zA-Z0-9_]+)`)
	collateRe = regexp.MustCompile(`(?i)\bCOLLATE\s*=?\s*([a-zA-Z0-9_]+)`)
	commentRe = regexp.MustCompile(`(?i)\bCOMMENT\s*=?\s*'((?:[^'\\]|\\.|'')*)'`)
	autoIncRe = regexp.MustCompile(`(?i)\bAUTO_INCREMENT\s*=\s*([0-9]+)`)
)

// ParseCreateTable converts a CREATE TABLE string into a schema.TableModel.
// It returns recoverable Warnings for malformed sub-clauses (the clause is
// skipped, the rest of the table still parses) and a *ParseError when the
// table name or the top-level parenthesized body cannot be located at all.
func ParseCreateTable(ddl string) (*schema.TableModel, []Warning, error) {
	cleaned, err := StripComments(ddl)
	if err != nil {
		return nil, nil, &CatastrophicError{cause: err}
	}
	cleaned = normalizeWhitespace(cleaned)

	nameMatch := tableNameRe.FindStringSubmatch(cleaned)
	if nameMatch == nil {
		return nil, nil, &ParseError{Reason: "missing table name after CREATE TABLE"}
	}
	tableName := utils.StripBackticks(nameMatch[1])

	openIdx := strings.Index(cleaned, "(")
	if openIdx < 0 {
		return nil, nil, &ParseError{TableName: tableName, Reason: "missing top-level parenthesized column list"}
	}
	closeIdx := findMatchingParen(cleaned, openIdx)
	if closeIdx < 0 {
		return nil, nil, &ParseError{TableName: tableName, Offset: openIdx, Reason: "unbalanced parentheses in column list"}
	}

	body := cleaned[openIdx+1 : closeIdx]
	tail := cleaned[closeIdx+1:]

	if topLevelDepthError(body) {
		return nil, nil, &CatastrophicError{cause: &ParseError{TableName: tableName, Reason: "unrecoverable parenthesis imbalance in body"}}
	}

	model := &schema.TableModel{
		Name:        tableName,
		Indexes:     make(map[string]schema.Index),
		ForeignKeys: make(map[string]schema.ForeignKey),
	}

	var warnings []Warning
	position := 0

	for _, part := range SplitTopLevel(body) {
		if part == "" {
			continue
		}

		switch classifyClause(part) {
		case clauseKindPrimaryKey:
			idx, err := parsePrimaryKey(part)
			if err != nil {
				warnings = append(warnings, Warning{TableName: tableName, Clause: part, Reason: err.Error()})
				continue
			}
			model.Indexes[idx.Name] = idx
		case clauseKindUniqueKey:
			idx, err := parseIndexClause(part, true, false)
			if err != nil {
				warnings = append(warnings, Warning{TableName: tableName, Clause: part, Reason: err.Error()})
				continue
			}
			model.Indexes[idx.Name] = idx
		case clauseKindFulltextKey:
			idx, err := parseIndexClause(part, false, true)
			if err != nil {
				warnings = append(warnings, Warning{TableName: tableName, Clause: part, Reason: err.Error()})
				continue
			}
			model.Indexes[idx.Name] = idx
		case clauseKindKey:
			idx, err := parseIndexClause(part, false, false)
			if err != nil {
				warnings = append(warnings, Warning{TableName: tableName, Clause: part, Reason: err.Error()})
				continue
			}
			model.Indexes[idx.Name] = idx
		case clauseKindForeignKey:
			fk, err := parseForeignKey(part)
			if err != nil {
				warnings = append(warnings, Warning{TableName: tableName, Clause: part, Reason: err.Error()})
				continue
			}
			model.ForeignKeys[fk.Name] = fk
		case clauseKindCheck:
			// CHECK constraints don't participate in dependency ordering;
			// parse for completeness but don't fail the table on error.
			if _, err := parseCheck(part); err != nil {
				warnings = append(warnings, Warning{TableName: tableName, Clause: part, Reason: err.Error()})
			}
		default:
			col, err := parseColumnDefinition(part, position)
			if err != nil {
				warnings = append(warnings, Warning{TableName: tableName, Clause: part, Reason: err.Error()})
				continue
			}
			model.Columns = append(model.Columns, col)
			position++
		}
	}

	model.Options = parseTableOptions(tail)

	return model, warnings, nil
}

// findMatchingParen returns the index of the ')' matching the '(' at
// openIdx, honoring quoted strings and backtick identifiers, or -1 if
// unbalanced.
func findMatchingParen(s string, openIdx int) int {
	depth := 0
	inSingleQuote := false
	inBacktick := false

	for i := openIdx; i < len(s); i++ {
		r := s[i]
		switch {
		case inSingleQuote:
			if r == '\\' && i+1 < len(s) {
				i++
				continue
			}
			if r == '\'' {
				inSingleQuote = false
			}
		case inBacktick:
			if r == '`' {
				inBacktick = false
			}
		case r == '\'':
			inSingleQuote = true
		case r == '`':
			inBacktick = true
		case r == '(':
			depth++
		case r == ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// parseTableOptions scans the DDL tail after the closing parenthesis for
// ENGINE, DEFAULT CHARSET, COLLATE, and COMMENT, one targeted regex per
// option per spec §9's "treat each clause class explicitly".
func parseTableOptions(tail string) schema.TableOptions {
	opts := schema.TableOptions{}

	if m := enginRe.FindStringSubmatch(tail); m != nil {
		opts.Engine = m[1]
	}
	if m := charsetRe.FindStringSubmatch(tail); m != nil {
		opts.Charset = m[1]
	}
	if m := collateRe.FindStringSubmatch(tail); m != nil {
		opts.Collation = m[1]
	}
	if m := commentRe.FindStringSubmatch(tail); m != nil {
		opts.Comment = strings.ReplaceAll(m[1], "\\'", "'")
	}

	return opts
}
