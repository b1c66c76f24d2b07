package ddl

import "github.com/pkg/errors"

// ParseError is returned when a CREATE TABLE statement is malformed beyond
// recovery: the table name or the top-level parenthesized body could not
// be located. Per spec, this is surfaced to the caller — the table is
// reported unparseable and excluded from its table-level diff, but
// comparison of other tables continues.
type ParseError struct {
	TableName string
	Offset    int
	Reason    string
}

func (e *ParseError) Error() string {
	if e.TableName != "" {
		return errors.Errorf("parse error in table %q at offset %d: %s", e.TableName, e.Offset, e.Reason).Error()
	}
	return errors.Errorf("parse error at offset %d: %s", e.Offset, e.Reason).Error()
}

// CatastrophicError wraps an unrecoverable parser condition, such as the
// top-level splitter hitting negative parenthesis depth. No partial model
// is returned when this occurs.
type CatastrophicError struct {
	cause error
}

func (e *CatastrophicError) Error() string { return "catastrophic parse failure: " + e.cause.Error() }

func (e *CatastrophicError) Unwrap() error { return e.cause }

// Warning describes a malformed sub-clause that was skipped rather than
// aborting the whole parse. The rest of the table still parses.
type Warning struct {
	TableName string
	Clause    string
	Reason    string
}

func (w Warning) String() string {
	return "warning: table " + w.TableName + ": skipped clause " + quoteShort(w.Clause) + ": " + w.Reason
}

func quoteShort(s string) string {
	const maxLen = 60
	if len(s) > maxLen {
		s = s[:maxLen] + "..."
	}
	return "\"" + s + "\""
}
