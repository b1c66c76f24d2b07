package ddl

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// tokenNames resolves a lexed token's type to its rule name, since
// lexer.Token only carries the numeric TokenType assigned by MustSimple.
var tokenNames = func() map[lexer.TokenType]string {
	names := make(map[lexer.TokenType]string)
	for name, t := range ddlLexer.Symbols() {
		names[t] = name
	}
	return names
}()

// ddlLexer tokenizes just enough of MariaDB/MySQL DDL to let StripComments
// and normalize.go tell comments and string/identifier literals apart
// reliably. A regex-only comment stripper would corrupt a string literal
// containing "--" or "/*"; tokenizing first (the teacher's approach for
// ClickHouse DDL in pkg/parser) avoids that class of bug entirely.
var ddlLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `--[^\r\n]*`},
	{Name: "MultilineComment", Pattern: `/\*[^*]*\*+([^/*][^*]*\*+)*/`},
	{Name: "String", Pattern: `'([^'\\]|\\.|'')*'`},
	{Name: "BacktickIdent", Pattern: "`([^`]|``)*`"},
	{Name: "Number", Pattern: `\d+(\.\d+)?`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Punct", Pattern: `[(),.;=+\-*/]`},
	{Name: "Newline", Pattern: `\r?\n`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
})

// StripComments removes -- line comments and /* */ block comments from ddl
// while leaving string and backtick-identifier literals untouched, using
// ddlLexer instead of a regex so that a literal "--" or "/*" inside a
// quoted value is never mistaken for a comment.
func StripComments(ddl string) (string, error) {
	names := tokenNames

	lex, err := ddlLexer.Lex("ddl", strings.NewReader(ddl))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for {
		tok, err := lex.Next()
		if err != nil {
			return "", err
		}
		if tok.EOF() {
			break
		}
		switch names[tok.Type] {
		case "Comment", "MultilineComment":
			continue
		case "Newline":
			sb.WriteByte(' ')
		default:
			sb.WriteString(tok.Value)
		}
	}
	return sb.String(), nil
}

// normalizeWhitespace collapses runs of whitespace into single spaces and
// trims the result, without touching string/backtick literal contents.
func normalizeWhitespace(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}
