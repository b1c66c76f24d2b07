package migrator

import (
	"context"
	"fmt"
	"strings"

	"github.com/pseudomuto/migrokit/pkg/ddl"
	"github.com/pseudomuto/migrokit/pkg/diff"
	"github.com/pseudomuto/migrokit/pkg/planner"
	"github.com/pseudomuto/migrokit/pkg/rollback"
	"github.com/pseudomuto/migrokit/pkg/schema"
	"github.com/pseudomuto/migrokit/pkg/source"
	"github.com/pseudomuto/migrokit/pkg/utils"
)

// assemblyOrder is the fixed kind iteration order spec.md §4.5 requires
// for the forward script.
var assemblyOrder = []schema.Kind{
	schema.KindTable,
	schema.KindProcedure,
	schema.KindFunction,
	schema.KindTrigger,
	schema.KindEvent,
	schema.KindView,
	schema.KindSequence,
}

// objectTypeSQL names the DDL keyword for each kind, used to build
// DROP/CREATE statements for kinds pkg/planner doesn't cover.
var objectTypeSQL = map[schema.Kind]string{
	schema.KindTable:     "TABLE",
	schema.KindView:      "VIEW",
	schema.KindProcedure: "PROCEDURE",
	schema.KindFunction:  "FUNCTION",
	schema.KindTrigger:   "TRIGGER",
	schema.KindEvent:     "EVENT",
	schema.KindSequence:  "SEQUENCE",
}

// Script is the assembled output of Assemble: the forward (Up) and
// rollback (Down) SQL scripts, plus the per-kind set differences and
// per-table plans pkg/report renders its summary from.
type Script struct {
	Up   string
	Down string

	ObjectDiffs    map[schema.Kind]diff.ObjectDiff
	TableDiffs     map[string][]diff.Difference
	TablePlans     map[string]*planner.Plan
	TableRollbacks map[string]*rollback.Plan
	Warnings       []string

	// ModifiedCounts is, per kind, the number of InBoth objects whose
	// normalized DDL actually differs and so produced work in Up — the
	// same set pkg/report's Summarize renders as its MODIFY column.
	// For tables this is the count of TablePlans entries with at least
	// one statement; for every other kind it is counted where emitReplace
	// is invoked.
	ModifiedCounts map[schema.Kind]int
}

// Assemble compares src against dest across every object kind and
// produces the bracketed forward script (spec.md §4.5) along with its
// symmetric rollback. src is the desired schema state, dest is the
// state currently in place; applying Up to dest is meant to yield src.
// ddlSrc supplies DDL for any schema.Object whose DDL field wasn't
// already populated inline; independent fetches run concurrently (see
// fetch.go), after which comparison and planning are serialized per
// spec.md §5.
func Assemble(ctx context.Context, src, dest *schema.Database, ddlSrc source.DDLSource) (*Script, error) {
	srcDDL, destDDL := resolveDDL(ctx, ddlSrc, src, dest)

	script := &Script{
		ObjectDiffs:    make(map[schema.Kind]diff.ObjectDiff, len(assemblyOrder)),
		TableDiffs:     make(map[string][]diff.Difference),
		TablePlans:     make(map[string]*planner.Plan),
		TableRollbacks: make(map[string]*rollback.Plan),
		ModifiedCounts: make(map[schema.Kind]int, len(assemblyOrder)),
	}

	var up strings.Builder
	var downSections []string

	up.WriteString("SET FOREIGN_KEY_CHECKS = 0;\n\n")

	for _, kind := range assemblyOrder {
		objDiff := diff.CompareObjects(src.Objects[kind], dest.Objects[kind])
		script.ObjectDiffs[kind] = objDiff

		var kindDown strings.Builder

		for _, name := range objDiff.OnlyInSource {
			text, err := srcDDL.get(kind, name)
			if err != nil {
				fmt.Fprintf(&up, "-- ERROR: fetching %s %s: %v\n", kind, name, err)
				continue
			}
			emitCreate(&up, kind, text)
			emitDrop(&kindDown, kind, name)
		}

		for _, name := range objDiff.OnlyInDest {
			text, err := destDDL.get(kind, name)
			if err != nil {
				fmt.Fprintf(&up, "-- ERROR: fetching %s %s: %v\n", kind, name, err)
				continue
			}
			emitDrop(&up, kind, name)
			emitCreate(&kindDown, kind, text)
		}

		for _, name := range objDiff.InBoth {
			srcText, err := srcDDL.get(kind, name)
			if err != nil {
				fmt.Fprintf(&up, "-- ERROR: fetching %s %s: %v\n", kind, name, err)
				continue
			}
			destText, err := destDDL.get(kind, name)
			if err != nil {
				fmt.Fprintf(&up, "-- ERROR: fetching %s %s: %v\n", kind, name, err)
				continue
			}

			if kind == schema.KindTable {
				if err := assembleTable(&up, &kindDown, script, name, srcText, destText); err != nil {
					fmt.Fprintf(&up, "-- ERROR: planning table %s: %v\n", name, err)
					continue
				}
				if p := script.TablePlans[name]; p != nil && len(p.Statements) > 0 {
					script.ModifiedCounts[kind]++
				}
				continue
			}

			if ddl.Normalize(srcText) == ddl.Normalize(destText) {
				continue
			}
			script.ModifiedCounts[kind]++
			emitReplace(&up, kind, name, srcText)
			emitReplace(&kindDown, kind, name, destText)
		}

		if kindDown.Len() > 0 {
			downSections = append(downSections, kindDown.String())
		}
	}

	up.WriteString("\nSET FOREIGN_KEY_CHECKS = 1;\n")

	var down strings.Builder
	down.WriteString("SET FOREIGN_KEY_CHECKS = 0;\n\n")
	for i := len(downSections) - 1; i >= 0; i-- {
		down.WriteString(downSections[i])
	}
	down.WriteString("\nSET FOREIGN_KEY_CHECKS = 1;\n")

	script.Up = up.String()
	script.Down = down.String()

	return script, nil
}

// assembleTable compares one table present in both schemas and, if it
// differs, appends its planner.Plan/rollback.Plan statements to up and
// down respectively.
func assembleTable(up, down *strings.Builder, script *Script, name, srcText, destText string) error {
	diffs, warnings, err := diff.AnalyzeTableDifferences(name, srcText, destText)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		script.Warnings = append(script.Warnings, w.String())
	}
	if len(diffs) == 0 {
		return nil
	}
	script.TableDiffs[name] = diffs

	plan, err := planner.Plan(name, diffs, destText)
	if err != nil {
		return err
	}
	script.TablePlans[name] = plan
	for _, stmt := range plan.Statements {
		up.WriteString(stmt.SQL)
		up.WriteString("\n")
	}

	rb, err := rollback.Generate(name, diffs, destText)
	if err != nil {
		return err
	}
	script.TableRollbacks[name] = rb
	for _, stmt := range rb.Statements {
		down.WriteString(stmt.SQL)
		down.WriteString("\n")
	}

	return nil
}

// emitCreate writes ddlText as-is, framed with a DELIMITER block for
// routine kinds.
func emitCreate(b *strings.Builder, kind schema.Kind, ddlText string) {
	text := strings.TrimSpace(ddlText)
	if routineKinds[kind] {
		b.WriteString(frameRoutine(text))
		return
	}
	b.WriteString(text)
	if !strings.HasSuffix(text, ";") {
		b.WriteString(";")
	}
	b.WriteString("\n")
}

// emitDrop writes a DROP <TYPE> IF EXISTS statement for name.
func emitDrop(b *strings.Builder, kind schema.Kind, name string) {
	b.WriteString(utils.NewSQLBuilder().Drop(objectTypeSQL[kind]).IfExists().Name(name).String())
	b.WriteString("\n")
}

// emitReplace rewrites an InBoth object whose DDL changed: plain MySQL
// only supports CREATE OR REPLACE for views, and not for procedures,
// functions, triggers, or events, so every kind is rewritten with DROP
// IF EXISTS followed by CREATE (delimiter-framed for routine kinds via
// emitCreate).
func emitReplace(b *strings.Builder, kind schema.Kind, name, ddlText string) {
	emitDrop(b, kind, name)
	emitCreate(b, kind, ddlText)
}

var routineKinds = map[schema.Kind]bool{
	schema.KindProcedure: true,
	schema.KindFunction:  true,
	schema.KindTrigger:   true,
	schema.KindEvent:     true,
}
