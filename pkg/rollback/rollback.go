// Package rollback implements the Rollback Generator (spec §4.4): the
// down-migration symmetric to pkg/planner, generated from the same
// Difference list and the destination DDL being restored.
//
// Grounded on original_source/ddlwizard/utils/migration.py's
// down-migration pass (reverse-phase, re-add-from-retained-definition)
// and on the "drop then add" idiom pkg/planner already uses for
// MODIFY_CONSTRAINT, applied here in reverse.
package rollback

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/migrokit/pkg/ddl"
	"github.com/pseudomuto/migrokit/pkg/diff"
	"github.com/pseudomuto/migrokit/pkg/planner"
	"github.com/pseudomuto/migrokit/pkg/safety"
	"github.com/pseudomuto/migrokit/pkg/utils"
)

// Plan is reused from pkg/planner: a rollback plan has the same shape
// as a forward plan, an ordered list of risk-annotated statements.
type Plan = planner.Plan

// Statement is reused from pkg/planner.
type Statement = planner.Statement

// Generate runs the six rollback phases of spec.md §4.4 over diffs, in
// order, and returns the resulting Plan. destDDL is the destination
// state being restored — the same value passed to planner.Plan for the
// corresponding forward plan.
func Generate(tableName string, diffs []diff.Difference, destDDL string) (*Plan, error) {
	if _, _, err := ddl.ParseCreateTable(destDDL); err != nil {
		return nil, errors.Wrapf(err, "rollback: parsing destination DDL for %q", tableName)
	}

	b := &builder{tableName: tableName, advisor: safety.NewRuleAdvisor(), emittedDrops: map[string]struct{}{}}

	b.phase1Preflight(diffs)
	b.phase2DropAddedConstraintsAndIndexes(diffs)
	b.phase3DropAddedColumnsAndRevertModified(diffs)
	b.phase4ReaddRemovedColumns(diffs)
	b.phase5ReaddRemovedIndexesAndConstraints(diffs)
	b.phase6RevertTableOptions(diffs)

	return &Plan{TableName: tableName, Statements: b.statements}, nil
}

// builder accumulates rollback Statements. emittedDrops tracks
// DROP FOREIGN KEY statements already issued for a constraint name,
// local to one Generate call (spec.md §9: no cross-call state), so the
// preflight pass and phase 2 never emit the same drop twice.
type builder struct {
	tableName    string
	advisor      safety.Advisor
	statements   []Statement
	emittedDrops map[string]struct{}
}

func (b *builder) emit(sql string, op safety.Operation) {
	op.TableName = b.tableName
	op.SQL = sql
	risk := safety.RiskLow
	for _, w := range b.advisor.Assess(op) {
		if w.Risk.Less(risk) {
			risk = w.Risk
		}
	}
	b.statements = append(b.statements, Statement{SQL: sql, Risk: risk})
}

func (b *builder) dropForeignKeyOnce(name string) {
	if _, ok := b.emittedDrops[name]; ok {
		return
	}
	b.emittedDrops[name] = struct{}{}

	sql := utils.NewSQLBuilder().
		Alter("TABLE").
		Name(b.tableName).
		Raw("DROP FOREIGN KEY IF EXISTS").
		Name(name).
		String()
	b.emit(sql, safety.Operation{Type: "DROP_CONSTRAINT", Metadata: map[string]string{"constraint": name}})
}

// phase1Preflight handles rollback priority 1: for each column the
// forward plan added, drop any constraint the forward plan also added
// that references it, before the column itself is dropped in phase 3.
func (b *builder) phase1Preflight(diffs []diff.Difference) {
	added := map[string]struct{}{}
	for _, d := range diffs {
		if ac, ok := d.(diff.AddColumnDiff); ok {
			added[ac.ColumnName] = struct{}{}
		}
	}

	names := namesOfConstraintsReferencing(diffs, added)
	for _, name := range names {
		b.dropForeignKeyOnce(name)
	}
}

func namesOfConstraintsReferencing(diffs []diff.Difference, columns map[string]struct{}) []string {
	set := map[string]struct{}{}
	for _, d := range diffs {
		switch v := d.(type) {
		case diff.AddConstraintDiff:
			if referencesAny(v.ForeignKey.Columns, columns) {
				set[v.ConstraintName] = struct{}{}
			}
		case diff.ModifyConstraintDiff:
			if referencesAny(v.New.Columns, columns) {
				set[v.ConstraintName] = struct{}{}
			}
		}
	}
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func referencesAny(columns []string, set map[string]struct{}) bool {
	for _, c := range columns {
		if _, ok := set[c]; ok {
			return true
		}
	}
	return false
}

// phase2DropAddedConstraintsAndIndexes reverses forward phase 4's adds:
// every AddConstraintDiff is dropped, and every AddIndexDiff is dropped
// (DROP KEY for fulltext, DROP INDEX otherwise).
func (b *builder) phase2DropAddedConstraintsAndIndexes(diffs []diff.Difference) {
	for _, d := range diffs {
		if ac, ok := d.(diff.AddConstraintDiff); ok {
			b.dropForeignKeyOnce(ac.ConstraintName)
		}
	}

	for _, d := range diffs {
		ai, ok := d.(diff.AddIndexDiff)
		if !ok {
			continue
		}
		clause := "DROP INDEX IF EXISTS"
		if ai.Index.Fulltext {
			clause = "DROP KEY IF EXISTS"
		}
		sql := utils.NewSQLBuilder().
			Alter("TABLE").
			Name(b.tableName).
			Raw(clause).
			Name(ai.IndexName).
			String()
		b.emit(sql, safety.Operation{Type: "DROP_INDEX", Metadata: map[string]string{"index": ai.IndexName}})
	}
}

// phase3DropAddedColumnsAndRevertModified reverses forward phase 4's
// column adds (drop them) and forward phase 2's column modifications
// (modify back to the retained original definition).
func (b *builder) phase3DropAddedColumnsAndRevertModified(diffs []diff.Difference) {
	for _, d := range diffs {
		ac, ok := d.(diff.AddColumnDiff)
		if !ok {
			continue
		}
		sql := utils.NewSQLBuilder().
			Alter("TABLE").
			Name(b.tableName).
			Raw("DROP COLUMN IF EXISTS").
			Name(ac.ColumnName).
			String()
		b.emit(sql, safety.Operation{Type: "DROP_COLUMN", Metadata: map[string]string{"column": ac.ColumnName}})
	}

	for _, d := range diffs {
		mc, ok := d.(diff.ModifyColumnDiff)
		if !ok {
			continue
		}
		sql := utils.NewSQLBuilder().
			Alter("TABLE").
			Name(b.tableName).
			Modify("COLUMN").
			Name(mc.ColumnName).
			Raw(mc.OriginalDefinition).
			String()
		b.emit(sql, safety.Operation{Type: "MODIFY_COLUMN", Metadata: map[string]string{"column": mc.ColumnName}})
	}
}

// phase4ReaddRemovedColumns reverses forward phase 3: every
// RemoveColumnDiff is re-added using the retained destination
// definition.
func (b *builder) phase4ReaddRemovedColumns(diffs []diff.Difference) {
	for _, d := range diffs {
		rc, ok := d.(diff.RemoveColumnDiff)
		if !ok {
			continue
		}
		sql := utils.NewSQLBuilder().
			Alter("TABLE").
			Name(b.tableName).
			Raw("ADD COLUMN").
			Name(rc.ColumnName).
			Raw(rc.ColumnDefinition).
			String()
		b.emit(sql, safety.Operation{Type: "ADD_COLUMN", Metadata: map[string]string{"column": rc.ColumnName}})
	}
}

// phase5ReaddRemovedIndexesAndConstraints reverses forward phase 1:
// removed indexes and constraints are re-added using their retained
// definitions; modified constraints are dropped then re-added using
// the original definition.
func (b *builder) phase5ReaddRemovedIndexesAndConstraints(diffs []diff.Difference) {
	for _, d := range diffs {
		ri, ok := d.(diff.RemoveIndexDiff)
		if !ok {
			continue
		}
		sql := utils.NewSQLBuilder().
			Alter("TABLE").
			Name(b.tableName).
			Raw("ADD " + ri.IndexDefinition).
			String()
		b.emit(sql, safety.Operation{Type: "ADD_INDEX", Metadata: map[string]string{"index": ri.IndexName}})
	}

	for _, d := range diffs {
		rc, ok := d.(diff.RemoveConstraintDiff)
		if !ok {
			continue
		}
		sql := utils.NewSQLBuilder().
			Alter("TABLE").
			Name(b.tableName).
			Raw("ADD " + rc.ConstraintDefinition).
			String()
		b.emit(sql, safety.Operation{Type: "ADD_CONSTRAINT", Metadata: map[string]string{"constraint_kind": "FOREIGN_KEY"}})
	}

	for _, d := range diffs {
		mc, ok := d.(diff.ModifyConstraintDiff)
		if !ok {
			continue
		}
		b.dropForeignKeyOnce(mc.ConstraintName)

		sql := utils.NewSQLBuilder().
			Alter("TABLE").
			Name(b.tableName).
			Raw("ADD " + mc.OriginalDefinition).
			String()
		b.emit(sql, safety.Operation{Type: "ADD_CONSTRAINT", Metadata: map[string]string{"constraint_kind": "FOREIGN_KEY"}})
	}
}

// phase6RevertTableOptions reverses forward's table-option changes
// using the retained original value.
func (b *builder) phase6RevertTableOptions(diffs []diff.Difference) {
	for _, d := range diffs {
		opt, ok := d.(diff.TableOptionDiff)
		if !ok {
			continue
		}

		var sql string
		switch opt.Option {
		case diff.OptionComment:
			sql = utils.NewSQLBuilder().Alter("TABLE").Name(b.tableName).Comment(opt.OriginalValue).String()
		case diff.OptionEngine:
			sql = utils.NewSQLBuilder().Alter("TABLE").Name(b.tableName).Engine(opt.OriginalValue).String()
		case diff.OptionCharset:
			sql = utils.NewSQLBuilder().Alter("TABLE").Name(b.tableName).
				Raw("DEFAULT CHARSET = " + opt.OriginalValue).String()
		case diff.OptionCollate:
			prefix := opt.OriginalValue
			if idx := strings.Index(prefix, "_"); idx >= 0 {
				prefix = prefix[:idx]
			}
			sql = utils.NewSQLBuilder().Alter("TABLE").Name(b.tableName).
				Raw("CONVERT TO CHARACTER SET " + prefix + " COLLATE " + opt.OriginalValue).String()
		}

		b.emit(sql, safety.Operation{Type: "MODIFY_TABLE_OPTION", Metadata: map[string]string{"option": string(opt.Option)}})
	}
}
