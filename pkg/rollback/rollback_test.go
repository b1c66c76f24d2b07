package rollback_test

import (
	"strings"
	"testing"

	"github.com/pseudomuto/migrokit/pkg/diff"
	"github.com/pseudomuto/migrokit/pkg/rollback"
	"github.com/pseudomuto/migrokit/pkg/schema"
	"github.com/stretchr/testify/require"
)

func statementSQLs(p *rollback.Plan) []string {
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

// TestGenerate_S1_Inverse mirrors spec scenario S1's rollback: re-add
// the column, then re-add the FK.
func TestGenerate_S1_Inverse(t *testing.T) {
	destDDL := "CREATE TABLE `users` (`id` int(11) NOT NULL, PRIMARY KEY (`id`)) ENGINE=InnoDB;"

	diffs := []diff.Difference{
		diff.RemoveColumnDiff{ColumnName: "tenant_id", ColumnDefinition: "int(11) NOT NULL"},
		diff.RemoveConstraintDiff{
			ConstraintName:       "fk_u_t",
			ConstraintDefinition: "CONSTRAINT `fk_u_t` FOREIGN KEY (`tenant_id`) REFERENCES `tenants` (`id`)",
		},
	}

	p, err := rollback.Generate("users", diffs, destDDL)
	require.NoError(t, err)

	sqls := statementSQLs(p)
	colAddIdx := indexOf(t, sqls, "ADD COLUMN `tenant_id`")
	fkAddIdx := indexOf(t, sqls, "ADD CONSTRAINT `fk_u_t`")
	require.Less(t, colAddIdx, fkAddIdx, "rollback must re-add the column before the FK")
}

// TestGenerate_S2_Inverse mirrors spec scenario S2's rollback: drop the
// FK, then drop the column.
func TestGenerate_S2_Inverse(t *testing.T) {
	destDDL := "CREATE TABLE `employees` (`id` int(11) NOT NULL, PRIMARY KEY (`id`)) ENGINE=InnoDB;"

	diffs := []diff.Difference{
		diff.AddColumnDiff{ColumnName: "dept_id", ColumnDefinition: "int(11) NOT NULL"},
		diff.AddConstraintDiff{
			ConstraintName:       "fk_e_d",
			ConstraintDefinition: "CONSTRAINT `fk_e_d` FOREIGN KEY (`dept_id`) REFERENCES `departments` (`id`)",
			ForeignKey:           schema.ForeignKey{Name: "fk_e_d", Columns: []string{"dept_id"}, ReferencedTable: "departments"},
		},
	}

	p, err := rollback.Generate("employees", diffs, destDDL)
	require.NoError(t, err)

	sqls := statementSQLs(p)
	fkDropIdx := indexOf(t, sqls, "DROP FOREIGN KEY IF EXISTS `fk_e_d`")
	colDropIdx := indexOf(t, sqls, "DROP COLUMN IF EXISTS `dept_id`")
	require.Less(t, fkDropIdx, colDropIdx, "rollback must drop the FK before the column")
}

// TestGenerate_DuplicateDropForeignKeySuppressed covers the
// preflight/priority-1 duplicate-drop suppression rule.
func TestGenerate_DuplicateDropForeignKeySuppressed(t *testing.T) {
	destDDL := "CREATE TABLE `t` (`id` int(11) NOT NULL, PRIMARY KEY (`id`)) ENGINE=InnoDB;"

	diffs := []diff.Difference{
		diff.AddColumnDiff{ColumnName: "owner_id", ColumnDefinition: "int(11) NOT NULL"},
		diff.AddConstraintDiff{
			ConstraintName:       "fk_owner",
			ConstraintDefinition: "CONSTRAINT `fk_owner` FOREIGN KEY (`owner_id`) REFERENCES `owners` (`id`)",
			ForeignKey:           schema.ForeignKey{Name: "fk_owner", Columns: []string{"owner_id"}, ReferencedTable: "owners"},
		},
	}

	p, err := rollback.Generate("t", diffs, destDDL)
	require.NoError(t, err)

	count := 0
	for _, s := range p.Statements {
		if strings.Contains(s.SQL, "DROP FOREIGN KEY IF EXISTS `fk_owner`") {
			count++
		}
	}
	require.Equal(t, 1, count, "the FK drop referenced by both the preflight and priority-1 pass must be emitted exactly once")
}

func TestGenerate_S3_Inverse(t *testing.T) {
	destDDL := "CREATE TABLE `articles` (`title` varchar(255) NOT NULL) ENGINE=InnoDB;"

	diffs := []diff.Difference{
		diff.AddIndexDiff{
			IndexName:       "ft_search",
			IndexDefinition: "FULLTEXT KEY `ft_search` (`title`)",
			Index:           schema.Index{Name: "ft_search", Columns: []string{"title"}, Fulltext: true},
		},
	}

	p, err := rollback.Generate("articles", diffs, destDDL)
	require.NoError(t, err)

	sqls := statementSQLs(p)
	joined := strings.Join(sqls, "\n")
	require.Contains(t, joined, "DROP KEY IF EXISTS `ft_search`")
	require.NotContains(t, joined, "DROP INDEX IF EXISTS `ft_search`")
}

func TestGenerate_InvalidDestDDL(t *testing.T) {
	_, err := rollback.Generate("t", nil, "CREATE TABLE (id int);")
	require.Error(t, err)
}
