package diff

import (
	"sort"

	"github.com/pseudomuto/migrokit/pkg/ddl"
	"github.com/pseudomuto/migrokit/pkg/schema"
)

// AnalyzeTableDifferences parses sourceDDL and destDDL with pkg/ddl and
// emits Difference records such that applying them to the destination
// yields the source, per spec §4.2. Returns an empty slice iff the two
// TableModels are model-equal (testable property 2).
func AnalyzeTableDifferences(name, sourceDDL, destDDL string) ([]Difference, []ddl.Warning, error) {
	source, srcWarnings, err := ddl.ParseCreateTable(sourceDDL)
	if err != nil {
		return nil, nil, err
	}
	dest, dstWarnings, err := ddl.ParseCreateTable(destDDL)
	if err != nil {
		return nil, nil, err
	}

	warnings := append(append([]ddl.Warning{}, srcWarnings...), dstWarnings...)

	var diffs []Difference
	diffs = append(diffs, diffColumns(source, dest)...)
	diffs = append(diffs, diffIndexes(source, dest)...)
	diffs = append(diffs, diffForeignKeys(source, dest)...)
	diffs = append(diffs, diffTableOptions(source, dest)...)

	return diffs, warnings, nil
}

func diffColumns(source, dest *schema.TableModel) []Difference {
	srcByName := columnsByName(source)
	dstByName := columnsByName(dest)

	var diffs []Difference
	for _, name := range sortedColumnNames(srcByName) {
		sc := srcByName[name]
		if dc, ok := dstByName[name]; !ok {
			diffs = append(diffs, AddColumnDiff{ColumnName: name, ColumnDefinition: sc.Definition, Column: sc})
		} else if !sc.Equal(dc) {
			diffs = append(diffs, ModifyColumnDiff{
				ColumnName:         name,
				OriginalDefinition: dc.Definition,
				NewDefinition:      sc.Definition,
				Original:           dc,
				New:                sc,
			})
		}
	}
	for _, name := range sortedColumnNames(dstByName) {
		if _, ok := srcByName[name]; !ok {
			dc := dstByName[name]
			diffs = append(diffs, RemoveColumnDiff{ColumnName: name, ColumnDefinition: dc.Definition, Column: dc})
		}
	}
	return diffs
}

func columnsByName(t *schema.TableModel) map[string]schema.Column {
	m := make(map[string]schema.Column, len(t.Columns))
	for _, c := range t.Columns {
		m[c.Name] = c
	}
	return m
}

func sortedColumnNames(m map[string]schema.Column) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func diffIndexes(source, dest *schema.TableModel) []Difference {
	var diffs []Difference

	for _, name := range sortedIndexNames(source.Indexes) {
		si := source.Indexes[name]
		if di, ok := dest.Indexes[name]; !ok {
			diffs = append(diffs, AddIndexDiff{IndexName: name, IndexDefinition: si.Definition, Index: si})
		} else if ddl.Normalize(si.Definition) != ddl.Normalize(di.Definition) {
			diffs = append(diffs, ModifyIndexDiff{
				IndexName:          name,
				OriginalDefinition: di.Definition,
				NewDefinition:      si.Definition,
				Original:           di,
				New:                si,
			})
		}
	}
	for _, name := range sortedIndexNames(dest.Indexes) {
		if _, ok := source.Indexes[name]; !ok {
			di := dest.Indexes[name]
			diffs = append(diffs, RemoveIndexDiff{IndexName: name, IndexDefinition: di.Definition, Index: di})
		}
	}

	return diffs
}

func sortedIndexNames(m map[string]schema.Index) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func diffForeignKeys(source, dest *schema.TableModel) []Difference {
	var diffs []Difference

	for _, name := range sortedFKNames(source.ForeignKeys) {
		sf := source.ForeignKeys[name]
		if df, ok := dest.ForeignKeys[name]; !ok {
			diffs = append(diffs, AddConstraintDiff{ConstraintName: name, ConstraintDefinition: sf.Definition, ForeignKey: sf})
		} else if ddl.Normalize(sf.Definition) != ddl.Normalize(df.Definition) {
			diffs = append(diffs, ModifyConstraintDiff{
				ConstraintName:     name,
				OriginalDefinition: df.Definition,
				NewDefinition:      sf.Definition,
				Original:           df,
				New:                sf,
			})
		}
	}
	for _, name := range sortedFKNames(dest.ForeignKeys) {
		if _, ok := source.ForeignKeys[name]; !ok {
			df := dest.ForeignKeys[name]
			diffs = append(diffs, RemoveConstraintDiff{ConstraintName: name, ConstraintDefinition: df.Definition, ForeignKey: df})
		}
	}

	return diffs
}

func sortedFKNames(m map[string]schema.ForeignKey) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func diffTableOptions(source, dest *schema.TableModel) []Difference {
	so := source.Options.Resolved()
	do := dest.Options.Resolved()

	var diffs []Difference
	if so.Comment != do.Comment {
		diffs = append(diffs, TableOptionDiff{Option: OptionComment, OriginalValue: do.Comment, NewValue: so.Comment})
	}
	if so.Engine != do.Engine {
		diffs = append(diffs, TableOptionDiff{Option: OptionEngine, OriginalValue: do.Engine, NewValue: so.Engine})
	}
	if so.Charset != do.Charset {
		diffs = append(diffs, TableOptionDiff{Option: OptionCharset, OriginalValue: do.Charset, NewValue: so.Charset})
	}
	if so.Collation != do.Collation {
		diffs = append(diffs, TableOptionDiff{Option: OptionCollate, OriginalValue: do.Collation, NewValue: so.Collation})
	}
	return diffs
}
