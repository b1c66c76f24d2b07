// Package planner implements the ALTER Planner (spec §4.3): given the
// Comparator's Difference list for one table, and the destination's
// current DDL, it emits an ordered list of ALTER TABLE statements that
// turn the destination into the source.
//
// Grounded on the teacher's style of building output incrementally into
// a strings.Builder while decorating each emitted piece (cf. the
// teacher's generateAlterTableSQL), generalized to the five-phase
// ordering spec.md §4.3 requires for MariaDB/MySQL foreign-key safety.
package planner

import (
	"github.com/pkg/errors"
	"github.com/pseudomuto/migrokit/pkg/ddl"
	"github.com/pseudomuto/migrokit/pkg/diff"
	"github.com/pseudomuto/migrokit/pkg/safety"
	"github.com/pseudomuto/migrokit/pkg/utils"
)

// Statement is one emitted SQL statement with its attached risk
// assessment.
type Statement struct {
	SQL  string
	Risk safety.Risk
}

// Plan is the ordered output of Plan: every statement needed to turn
// the destination table into the source table, in execution order.
type Plan struct {
	TableName  string
	Statements []Statement
}

// Plan runs the five phases of spec.md §4.3 over diffs in order and
// returns the resulting Plan. destDDL is the destination's current
// CREATE TABLE statement, used to resolve existing foreign keys during
// the preflight pass (phase 0).
func Plan(tableName string, diffs []diff.Difference, destDDL string) (*Plan, error) {
	destModel, _, err := ddl.ParseCreateTable(destDDL)
	if err != nil {
		return nil, errors.Wrapf(err, "planner: parsing destination DDL for %q", tableName)
	}

	b := &builder{tableName: tableName, advisor: safety.NewRuleAdvisor(), emittedDrops: map[string]struct{}{}}
	droppedColumns := collectDroppedColumns(diffs)

	b.phase0Preflight(diffs, destModel, droppedColumns)
	b.phase1DropConstraintsAndIndexes(diffs)
	b.phase2ModifyColumns(diffs, droppedColumns)
	b.phase3DropColumns(diffs)
	b.phase4AddAndModify(diffs)

	return &Plan{TableName: tableName, Statements: b.statements}, nil
}

// builder accumulates Statements across phases, attaching a risk
// assessment to each as it is emitted rather than as a separate pass.
// emittedDrops tracks DROP FOREIGN KEY statements already issued for a
// constraint name, local to one Plan call, so phase 0's preflight pass
// and phase 1's removed-constraint pass never emit the same drop twice
// when a constraint is caught by both (cf. pkg/rollback's identical
// dropForeignKeyOnce).
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

func collectDroppedColumns(diffs []diff.Difference) map[string]struct{} {
	set := make(map[string]struct{})
	for _, d := range diffs {
		if rc, ok := d.(diff.RemoveColumnDiff); ok {
			set[rc.ColumnName] = struct{}{}
		}
	}
	return set
}
