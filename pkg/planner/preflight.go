package planner

import (
	"sort"

	"github.com/pseudomuto/migrokit/pkg/diff"
	"github.com/pseudomuto/migrokit/pkg/schema"
)

// phase0Preflight implements spec.md §4.3 phase 0: any foreign key still
// present in the destination model whose local columns intersect the
// set of columns about to be dropped must be dropped first, or the
// later DROP COLUMN in phase 3 fails against a live constraint.
//
// This walks destModel.ForeignKeys (already parsed into []string
// Columns by pkg/ddl per Redesign R2) rather than string-matching the
// rendered clause text — the string-match fallback spec.md §9
// describes never triggers here because every ForeignKey.Columns slice
// is always populated by the parser, so it is not implemented.
func (b *builder) phase0Preflight(diffs []diff.Difference, destModel *schema.TableModel, droppedColumns map[string]struct{}) {
	toDrop := map[string]struct{}{}

	for _, fk := range destModel.ForeignKeys {
		if referencesAny(fk.Columns, droppedColumns) {
			toDrop[fk.Name] = struct{}{}
		}
	}

	// Also cover constraints the Comparator already flagged for
	// removal or modification whose definition references a dropped
	// column, in case destModel omits one the diff still names.
	for _, d := range diffs {
		switch v := d.(type) {
		case diff.RemoveConstraintDiff:
			if referencesAny(v.ForeignKey.Columns, droppedColumns) {
				toDrop[v.ConstraintName] = struct{}{}
			}
		case diff.ModifyConstraintDiff:
			if referencesAny(v.Original.Columns, droppedColumns) {
				toDrop[v.ConstraintName] = struct{}{}
			}
		}
	}

	names := make([]string, 0, len(toDrop))
	for name := range toDrop {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		b.dropForeignKeyOnce(name)
	}
}

func referencesAny(columns []string, set map[string]struct{}) bool {
	for _, c := range columns {
		if _, ok := set[c]; ok {
			return true
		}
	}
	return false
}
