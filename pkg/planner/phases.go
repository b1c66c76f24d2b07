package planner

import (
	"strings"

	"github.com/pseudomuto/migrokit/pkg/diff"
	"github.com/pseudomuto/migrokit/pkg/safety"
	"github.com/pseudomuto/migrokit/pkg/utils"
)

// phase1DropConstraintsAndIndexes emits spec.md §4.3 phase 1: drop
// constraints removed in this migration, then drop removed indexes
// (fulltext indexes drop via DROP KEY, the others via DROP INDEX).
func (b *builder) phase1DropConstraintsAndIndexes(diffs []diff.Difference) {
	for _, d := range diffs {
		if rc, ok := d.(diff.RemoveConstraintDiff); ok {
			b.dropForeignKeyOnce(rc.ConstraintName)
		}
	}

	for _, d := range diffs {
		ri, ok := d.(diff.RemoveIndexDiff)
		if !ok {
			continue
		}
		clause := "DROP INDEX IF EXISTS"
		if ri.Index.Fulltext {
			clause = "DROP KEY IF EXISTS"
		}
		sql := utils.NewSQLBuilder().
			Alter("TABLE").
			Name(b.tableName).
			Raw(clause).
			Name(ri.IndexName).
			String()
		b.emit(sql, safety.Operation{Type: "DROP_INDEX", Metadata: map[string]string{"index": ri.IndexName}})
	}
}

// phase2ModifyColumns emits spec.md §4.3 phase 2. Per Redesign R1,
// migrokit never silently rewrites a generated-column expression that
// references a column scheduled for drop: it emits the MODIFY COLUMN
// unchanged and attaches a HIGH-risk warning instead of deleting the
// offending term from the expression.
func (b *builder) phase2ModifyColumns(diffs []diff.Difference, droppedColumns map[string]struct{}) {
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
			Raw(mc.NewDefinition).
			String()

		if gen := mc.New.Generated; gen != nil && referencesAny(gen.ReferencedBy, droppedColumns) {
			b.emit(sql, safety.Operation{
				Type: "GENERATED_COLUMN_REWRITE",
				Metadata: map[string]string{
					"column": mc.ColumnName,
				},
			})
			continue
		}

		b.emit(sql, safety.Operation{
			Type: "MODIFY_COLUMN",
			Metadata: map[string]string{
				"column":        mc.ColumnName,
				"from_type":     mc.Original.DataType,
				"to_type":       mc.New.DataType,
				"adds_not_null": boolString(mc.Original.Nullable && !mc.New.Nullable),
			},
		})
	}
}

// phase3DropColumns emits spec.md §4.3 phase 3.
func (b *builder) phase3DropColumns(diffs []diff.Difference) {
	for _, d := range diffs {
		rc, ok := d.(diff.RemoveColumnDiff)
		if !ok {
			continue
		}
		sql := utils.NewSQLBuilder().
			Alter("TABLE").
			Name(b.tableName).
			Raw("DROP COLUMN IF EXISTS").
			Name(rc.ColumnName).
			String()
		b.emit(sql, safety.Operation{Type: "DROP_COLUMN", Metadata: map[string]string{"column": rc.ColumnName}})
	}
}

// phase4AddAndModify emits spec.md §4.3 phase 4, in its fixed
// sub-order: add columns, add indexes, add constraints, modify
// constraints (as drop-then-add), then table options.
func (b *builder) phase4AddAndModify(diffs []diff.Difference) {
	for _, d := range diffs {
		ac, ok := d.(diff.AddColumnDiff)
		if !ok {
			continue
		}
		sql := utils.NewSQLBuilder().
			Alter("TABLE").
			Name(b.tableName).
			Raw("ADD COLUMN").
			Name(ac.ColumnName).
			Raw(ac.ColumnDefinition).
			String()
		b.emit(sql, safety.Operation{Type: "ADD_COLUMN", Metadata: map[string]string{"column": ac.ColumnName}})
	}

	for _, d := range diffs {
		ai, ok := d.(diff.AddIndexDiff)
		if !ok {
			continue
		}
		verb := "ADD INDEX"
		if ai.Index.Fulltext {
			verb = "ADD FULLTEXT KEY"
		}
		sql := utils.NewSQLBuilder().
			Alter("TABLE").
			Name(b.tableName).
			Raw(verb).
			Name(ai.IndexName).
			Raw(indexColumnList(ai.Index.Columns)).
			String()
		b.emit(sql, safety.Operation{Type: "ADD_INDEX", Metadata: map[string]string{"index": ai.IndexName}})
	}

	for _, d := range diffs {
		ac, ok := d.(diff.AddConstraintDiff)
		if !ok {
			continue
		}
		sql := utils.NewSQLBuilder().
			Alter("TABLE").
			Name(b.tableName).
			Raw("ADD " + ac.ConstraintDefinition).
			String()
		b.emit(sql, safety.Operation{
			Type:     "ADD_CONSTRAINT",
			Metadata: map[string]string{"constraint_kind": "FOREIGN_KEY"},
		})
	}

	for _, d := range diffs {
		mc, ok := d.(diff.ModifyConstraintDiff)
		if !ok {
			continue
		}
		b.dropForeignKeyOnce(mc.ConstraintName)

		addSQL := utils.NewSQLBuilder().
			Alter("TABLE").
			Name(b.tableName).
			Raw("ADD " + mc.NewDefinition).
			String()
		b.emit(addSQL, safety.Operation{
			Type:     "ADD_CONSTRAINT",
			Metadata: map[string]string{"constraint_kind": "FOREIGN_KEY"},
		})
	}

	b.emitTableOptions(diffs)
}

func (b *builder) emitTableOptions(diffs []diff.Difference) {
	for _, d := range diffs {
		opt, ok := d.(diff.TableOptionDiff)
		if !ok {
			continue
		}

		var sql string
		switch opt.Option {
		case diff.OptionComment:
			sql = utils.NewSQLBuilder().Alter("TABLE").Name(b.tableName).Comment(opt.NewValue).String()
		case diff.OptionEngine:
			sql = utils.NewSQLBuilder().Alter("TABLE").Name(b.tableName).Engine(opt.NewValue).String()
		case diff.OptionCharset:
			sql = utils.NewSQLBuilder().Alter("TABLE").Name(b.tableName).
				Raw("DEFAULT CHARSET = " + opt.NewValue).String()
		case diff.OptionCollate:
			prefix := opt.NewValue
			if idx := strings.Index(prefix, "_"); idx >= 0 {
				prefix = prefix[:idx]
			}
			sql = utils.NewSQLBuilder().Alter("TABLE").Name(b.tableName).
				Raw("CONVERT TO CHARACTER SET " + prefix + " COLLATE " + opt.NewValue).String()
		}

		b.emit(sql, safety.Operation{Type: "MODIFY_TABLE_OPTION", Metadata: map[string]string{"option": string(opt.Option)}})
	}
}

func indexColumnList(columns []string) string {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = utils.BacktickIdentifier(c)
	}
	return "(" + strings.Join(quoted, ", ") + ")"
}

func boolString(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
