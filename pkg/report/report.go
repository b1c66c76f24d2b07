// Package report renders the Comparator/Planner's output for a human
// reader: a per-table bullet listing of structural differences, and a
// tabular summary of operations across every object kind.
//
// Grounded on original_source/data_loss_analyzer.py's generate_report
// function — group findings by category, then render each group under
// its own header — adapted here to group by table name instead of risk
// level (pkg/safety already owns risk grouping), and on the teacher's
// CLI output helpers (cf. denisvmedia-inventario's tabwriter-rendered
// list commands) for the tabular summary.
package report

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/pseudomuto/migrokit/pkg/diff"
	"github.com/pseudomuto/migrokit/pkg/schema"
)

// Render produces a per-table bullet listing of every Difference in
// diffs, one section per table name, tables in sorted order.
func Render(diffs map[string][]diff.Difference) string {
	var b strings.Builder

	names := make([]string, 0, len(diffs))
	for name := range diffs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		changes := diffs[name]
		if len(changes) == 0 {
			continue
		}

		fmt.Fprintf(&b, "%s (%d change", name, len(changes))
		if len(changes) != 1 {
			b.WriteString("s")
		}
		b.WriteString(")\n")

		for _, d := range changes {
			fmt.Fprintf(&b, "  - %s\n", describe(d))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// describe renders one Difference as a single-line bullet.
func describe(d diff.Difference) string {
	switch v := d.(type) {
	case diff.AddColumnDiff:
		return fmt.Sprintf("add column `%s` %s", v.ColumnName, v.ColumnDefinition)
	case diff.RemoveColumnDiff:
		return fmt.Sprintf("remove column `%s`", v.ColumnName)
	case diff.ModifyColumnDiff:
		return fmt.Sprintf("modify column `%s`: %s -> %s", v.ColumnName, v.OriginalDefinition, v.NewDefinition)
	case diff.AddIndexDiff:
		return fmt.Sprintf("add index `%s`", v.IndexName)
	case diff.RemoveIndexDiff:
		return fmt.Sprintf("remove index `%s`", v.IndexName)
	case diff.ModifyIndexDiff:
		return fmt.Sprintf("modify index `%s`: %s -> %s", v.IndexName, v.OriginalDefinition, v.NewDefinition)
	case diff.AddConstraintDiff:
		return fmt.Sprintf("add constraint `%s`", v.ConstraintName)
	case diff.RemoveConstraintDiff:
		return fmt.Sprintf("remove constraint `%s`", v.ConstraintName)
	case diff.ModifyConstraintDiff:
		return fmt.Sprintf("modify constraint `%s`: %s -> %s", v.ConstraintName, v.OriginalDefinition, v.NewDefinition)
	case diff.TableOptionDiff:
		return fmt.Sprintf("change %s: %s -> %s", v.Option, v.OriginalValue, v.NewValue)
	default:
		return fmt.Sprintf("unrecognized difference (%T)", d)
	}
}

// Row is one line of Summarize's tabular output.
type Row struct {
	ObjectType string
	Source     int
	Dest       int
	Both       int
	Create     int
	Drop       int
	Modify     int
	Total      int
}

// Table is the tabwriter-rendered text of a Summarize call.
type Table string

// Summarize produces the tabular operation summary of spec.md §4.6: one
// row per object kind, in spec.md's canonical kind order. Create/Drop
// counts come from the raw ObjectDiff set sizes (there is no planner
// for whole-object creates/drops — migrator emits those directly), but
// Modify comes from modifiedCounts — migrator.Script.ModifiedCounts,
// the count of InBoth objects that actually produced emitted work for
// that kind — matching spec.md §4.6's "counted from planned operations,
// not raw set sizes" for every kind, not just tables.
func Summarize(objDiffs map[schema.Kind]diff.ObjectDiff, modifiedCounts map[schema.Kind]int) Table {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "OBJECT TYPE\tSOURCE\tDEST\tBOTH\tCREATE\tDROP\tMODIFY\tTOTAL")

	for _, kind := range schema.Kinds {
		od, ok := objDiffs[kind]
		if !ok {
			continue
		}

		row := Row{
			ObjectType: string(kind),
			Source:     len(od.OnlyInSource) + len(od.InBoth),
			Dest:       len(od.OnlyInDest) + len(od.InBoth),
			Both:       len(od.InBoth),
			Create:     len(od.OnlyInSource),
			Drop:       len(od.OnlyInDest),
			Modify:     modifiedCounts[kind],
		}
		row.Total = row.Create + row.Drop + row.Modify

		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\n",
			row.ObjectType, row.Source, row.Dest, row.Both, row.Create, row.Drop, row.Modify, row.Total)
	}

	_ = w.Flush()
	return Table(b.String())
}
