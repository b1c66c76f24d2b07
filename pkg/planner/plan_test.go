package planner_test

import (
	"strings"
	"testing"

	"github.com/pseudomuto/migrokit/pkg/diff"
	"github.com/pseudomuto/migrokit/pkg/planner"
	"github.com/pseudomuto/migrokit/pkg/schema"
	"github.com/stretchr/testify/require"
)

func statementSQLs(p *planner.Plan) []string {
	var out []string
	for _, s := range p.Statements {
		out = append(out, s.SQL)
	}
	return out
}

func indexOf(t *testing.T, haystack []string, needle string) int {
	t.Helper()
	for i, s := range haystack {
		if strings.Contains(s, needle) {
			return i
		}
	}
	t.Fatalf("expected to find statement containing %q in %v", needle, haystack)
	return -1
}

// TestPlan_S1_DropColumnReferencedByFK mirrors spec scenario S1: dropping
// a column referenced by an FK must drop the FK first. diffs mirrors
// exactly what diff.AnalyzeTableDifferences produces for this DDL pair:
// a RemoveColumnDiff for tenant_id AND a RemoveConstraintDiff for
// fk_u_t, since the constraint only exists in destModel. Both phase 0's
// preflight pass (which also sees fk_u_t via destModel.ForeignKeys) and
// phase 1's removed-constraint pass would otherwise each emit the drop.
func TestPlan_S1_DropColumnReferencedByFK(t *testing.T) {
	destDDL := "CREATE TABLE `users` (\n" +
		"  `id` int(11) NOT NULL,\n" +
		"  `email` varchar(255) NOT NULL,\n" +
		"  `tenant_id` int(11) NOT NULL,\n" +
		"  PRIMARY KEY (`id`),\n" +
		"  CONSTRAINT `fk_u_t` FOREIGN KEY (`tenant_id`) REFERENCES `tenants` (`id`)\n" +
		") ENGINE=InnoDB;"

	diffs := []diff.Difference{
		diff.RemoveColumnDiff{ColumnName: "tenant_id", ColumnDefinition: "int(11) NOT NULL"},
		diff.RemoveConstraintDiff{
			ConstraintName:       "fk_u_t",
			ConstraintDefinition: "CONSTRAINT `fk_u_t` FOREIGN KEY (`tenant_id`) REFERENCES `tenants` (`id`)",
			ForeignKey:           schema.ForeignKey{Name: "fk_u_t", Columns: []string{"tenant_id"}, ReferencedTable: "tenants"},
		},
	}

	p, err := planner.Plan("users", diffs, destDDL)
	require.NoError(t, err)

	sqls := statementSQLs(p)
	fkDropIdx := indexOf(t, sqls, "DROP FOREIGN KEY IF EXISTS `fk_u_t`")
	colDropIdx := indexOf(t, sqls, "DROP COLUMN IF EXISTS `tenant_id`")
	require.Less(t, fkDropIdx, colDropIdx, "FK drop must precede column drop")

	dropCount := 0
	for _, s := range sqls {
		if strings.Contains(s, "DROP FOREIGN KEY IF EXISTS `fk_u_t`") {
			dropCount++
		}
	}
	require.Equal(t, 1, dropCount, "fk_u_t's drop must be de-duplicated across phase 0 and phase 1")
}

// TestPlan_S2_AddColumnThenFK mirrors spec scenario S2: adding a column
// then an FK that cites it must add the column first.
func TestPlan_S2_AddColumnThenFK(t *testing.T) {
	destDDL := "CREATE TABLE `employees` (`id` int(11) NOT NULL, PRIMARY KEY (`id`)) ENGINE=InnoDB;"

	diffs := []diff.Difference{
		diff.AddColumnDiff{ColumnName: "dept_id", ColumnDefinition: "int(11) NOT NULL"},
		diff.AddConstraintDiff{
			ConstraintName:       "fk_e_d",
			ConstraintDefinition: "CONSTRAINT `fk_e_d` FOREIGN KEY (`dept_id`) REFERENCES `departments` (`id`)",
		},
	}

	p, err := planner.Plan("employees", diffs, destDDL)
	require.NoError(t, err)

	sqls := statementSQLs(p)
	colAddIdx := indexOf(t, sqls, "ADD COLUMN `dept_id`")
	fkAddIdx := indexOf(t, sqls, "ADD CONSTRAINT `fk_e_d`")
	require.Less(t, colAddIdx, fkAddIdx, "column add must precede FK add")
}

// TestPlan_S3_FulltextIndex mirrors spec scenario S3: fulltext indexes
// use ADD FULLTEXT KEY, not ADD INDEX.
func TestPlan_S3_FulltextIndex(t *testing.T) {
	destDDL := "CREATE TABLE `articles` (`title` varchar(255) NOT NULL) ENGINE=InnoDB;"

	diffs := []diff.Difference{
		diff.AddIndexDiff{
			IndexName:       "ft_search",
			IndexDefinition: "FULLTEXT KEY `ft_search` (`title`)",
			Index:           schema.Index{Name: "ft_search", Columns: []string{"title"}, Fulltext: true},
		},
	}

	p, err := planner.Plan("articles", diffs, destDDL)
	require.NoError(t, err)

	sqls := statementSQLs(p)
	require.Contains(t, strings.Join(sqls, "\n"), "ADD FULLTEXT KEY")
	require.NotContains(t, strings.Join(sqls, "\n"), "ADD INDEX `ft_search`")
}

// TestPlan_S4_CollationChange mirrors spec scenario S4: a table-level
// collation change emits CONVERT TO CHARACTER SET ... COLLATE ....
func TestPlan_S4_CollationChange(t *testing.T) {
	destDDL := "CREATE TABLE `t` (`id` int(11) NOT NULL) ENGINE=InnoDB;"

	diffs := []diff.Difference{
		diff.TableOptionDiff{
			Option:        diff.OptionCollate,
			OriginalValue: "utf8mb4_general_ci",
			NewValue:      "utf8mb4_unicode_ci",
		},
	}

	p, err := planner.Plan("t", diffs, destDDL)
	require.NoError(t, err)

	sqls := statementSQLs(p)
	joined := strings.Join(sqls, "\n")
	require.Contains(t, joined, "CONVERT TO CHARACTER SET utf8mb4 COLLATE utf8mb4_unicode_ci")
}

func TestPlan_InvalidDestDDL(t *testing.T) {
	_, err := planner.Plan("t", nil, "CREATE TABLE (id int);")
	require.Error(t, err)
}
