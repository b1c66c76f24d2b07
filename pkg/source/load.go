package source

import (
	"context"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/pseudomuto/migrokit/pkg/ddl"
	"github.com/pseudomuto/migrokit/pkg/schema"
)

// LoadLive enumerates every object kind from a connected Client and
// returns a schema.Database whose objects carry only their Name — the
// DDL text is left for the Migration Assembler to fetch lazily via
// GetDDL, mirroring pkg/migrator/fetch.go's resolveDDL contract.
func LoadLive(ctx context.Context, c *Client, name string) (*schema.Database, error) {
	db := schema.NewDatabase(name)

	for _, kind := range schema.Kinds {
		names, err := c.ListObjects(ctx, kind)
		if err != nil {
			return nil, errors.Wrapf(err, "source: listing %s", kind)
		}
		for _, objName := range names {
			db.Objects[kind][objName] = schema.Object{Name: objName}
		}
	}

	return db, nil
}

// createStatementRe identifies the object kind a top-level CREATE
// statement declares, in the fixed order routines must be checked
// before TABLE/VIEW so "CREATE ... FUNCTION" and "CREATE ... TRIGGER"
// aren't mistaken for a bare CREATE TABLE.
var createStatementRe = []struct {
	kind schema.Kind
	re   *regexp.Regexp
}{
	{schema.KindProcedure, regexp.MustCompile(`(?is)^CREATE\s+(DEFINER\s*=\s*\S+\s+)?PROCEDURE\s+` + "`?([\\w.]+)`?")},
	{schema.KindFunction, regexp.MustCompile(`(?is)^CREATE\s+(DEFINER\s*=\s*\S+\s+)?FUNCTION\s+` + "`?([\\w.]+)`?")},
	{schema.KindTrigger, regexp.MustCompile(`(?is)^CREATE\s+(DEFINER\s*=\s*\S+\s+)?TRIGGER\s+` + "`?([\\w.]+)`?")},
	{schema.KindEvent, regexp.MustCompile(`(?is)^CREATE\s+(DEFINER\s*=\s*\S+\s+)?EVENT\s+` + "`?([\\w.]+)`?")},
	{schema.KindView, regexp.MustCompile(`(?is)^CREATE\s+(OR\s+REPLACE\s+)?(ALGORITHM\s*=\s*\S+\s+)?(DEFINER\s*=\s*\S+\s+)?(SQL\s+SECURITY\s+\S+\s+)?VIEW\s+` + "`?([\\w.]+)`?")},
	{schema.KindSequence, regexp.MustCompile(`(?is)^CREATE\s+SEQUENCE\s+(IF\s+NOT\s+EXISTS\s+)?` + "`?([\\w.]+)`?")},
	{schema.KindTable, regexp.MustCompile(`(?is)^CREATE\s+TABLE\s+(IF\s+NOT\s+EXISTS\s+)?` + "`?([\\w.]+)`?")},
}

// LoadDir reads every *.sql file under dir on fs, splits each file's
// top-level CREATE statements on statement-terminating semicolons, and
// classifies each statement into a schema.Database object kind by its
// CREATE keyword. Each matched statement keeps its full DDL text inline,
// so resolveDDL never needs a DDLSource to complete a desired-state
// schema loaded this way.
func LoadDir(fs afero.Fs, dir, name string) (*schema.Database, error) {
	db := schema.NewDatabase(name)

	var files []string
	err := afero.Walk(fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if strings.HasSuffix(strings.ToLower(info.Name()), ".sql") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "source: walking schema directory %q", dir)
	}
	sort.Strings(files)

	for _, path := range files {
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return nil, errors.Wrapf(err, "source: reading %q", path)
		}

		stripped, err := ddl.StripComments(string(data))
		if err != nil {
			return nil, errors.Wrapf(err, "source: %q", path)
		}

		for _, stmt := range ddl.SplitStatements(stripped) {
			stmt = strings.TrimSpace(stmt)
			if stmt == "" {
				continue
			}

			kind, objName, ok := classifyStatement(stmt)
			if !ok {
				continue
			}
			db.Objects[kind][objName] = schema.Object{Name: objName, DDL: stmt}
		}
	}

	return db, nil
}

func classifyStatement(stmt string) (schema.Kind, string, bool) {
	for _, c := range createStatementRe {
		m := c.re.FindStringSubmatch(stmt)
		if m == nil {
			continue
		}
		return c.kind, m[len(m)-1], true
	}
	return "", "", false
}
