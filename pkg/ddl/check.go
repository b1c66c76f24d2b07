package ddl

import (
	"regexp"

	"github.com/pkg/errors"
	"github.com/pseudomuto/migrokit/pkg/schema"
	"github.com/pseudomuto/migrokit/pkg/utils"
)

var checkRe = regexp.MustCompile("(?is)^(?:CONSTRAINT\\s+(`(?:[^`]|``)*`|[a-zA-Z_][a-zA-Z0-9_$]*)\\s+)?CHECK\\s*\\((.*)\\)$")

// parseCheck parses a CHECK (...) clause, with or without a leading named
// CONSTRAINT, into a schema.CheckConstraint. Per spec §9, CHECK
// constraints get their own explicit clause parser rather than being
// folded into the generic column path.
func parseCheck(clause string) (schema.CheckConstraint, error) {
	m := checkRe.FindStringSubmatch(clause)
	if m == nil {
		return schema.CheckConstraint{}, errors.Errorf("malformed CHECK clause %q", clause)
	}
	return schema.CheckConstraint{
		Name:       utils.StripBackticks(m[1]),
		Expression: m[2],
		Definition: clause,
	}, nil
}
