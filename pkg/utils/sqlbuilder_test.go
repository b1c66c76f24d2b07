package utils_test

import (
	"testing"

	"github.com/pseudomuto/migrokit/pkg/utils"
	"github.com/stretchr/testify/require"
)

func TestSQLBuilder_CREATE(t *testing.T) {
	tests := []struct {
		name     string
		builder  func() *utils.SQLBuilder
		expected string
	}{
		{
			name:     "CREATE DATABASE",
			builder:  func() *utils.SQLBuilder { return utils.NewSQLBuilder().Create("DATABASE").Name("test") },
			expected: "CREATE DATABASE `test`;",
		},
		{
			name: "CREATE TABLE",
			builder: func() *utils.SQLBuilder {
				return utils.NewSQLBuilder().Create("TABLE").QualifiedName(stringPtr("db"), "table")
			},
			expected: "CREATE TABLE `db`.`table`;",
		},
		{
			name: "CREATE TABLE with engine and comment",
			builder: func() *utils.SQLBuilder {
				return utils.NewSQLBuilder().Create("TABLE").Name("orders").Engine("InnoDB").Comment("Customer orders")
			},
			expected: "CREATE TABLE `orders` ENGINE = InnoDB COMMENT 'Customer orders';",
		},
		{
			name:     "CREATE TABLE IF NOT EXISTS",
			builder:  func() *utils.SQLBuilder { return utils.NewSQLBuilder().Create("TABLE").IfNotExists().Name("test") },
			expected: "CREATE TABLE IF NOT EXISTS `test`;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.builder().String()
			require.Equal(t, tt.expected, result)
		})
	}
}

func TestSQLBuilder_DROP(t *testing.T) {
	tests := []struct {
		name     string
		builder  func() *utils.SQLBuilder
		expected string
	}{
		{
			name:     "DROP TABLE",
			builder:  func() *utils.SQLBuilder { return utils.NewSQLBuilder().Drop("TABLE").Name("test") },
			expected: "DROP TABLE `test`;",
		},
		{
			name:     "DROP TABLE IF EXISTS",
			builder:  func() *utils.SQLBuilder { return utils.NewSQLBuilder().Drop("TABLE").IfExists().Name("test") },
			expected: "DROP TABLE IF EXISTS `test`;",
		},
		{
			name: "DROP TABLE with qualified name",
			builder: func() *utils.SQLBuilder {
				return utils.NewSQLBuilder().Drop("TABLE").IfExists().QualifiedName(stringPtr("db"), "table")
			},
			expected: "DROP TABLE IF EXISTS `db`.`table`;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.builder().String()
			require.Equal(t, tt.expected, result)
		})
	}
}

func TestSQLBuilder_ALTER(t *testing.T) {
	tests := []struct {
		name     string
		builder  func() *utils.SQLBuilder
		expected string
	}{
		{
			name: "ALTER TABLE MODIFY COMMENT",
			builder: func() *utils.SQLBuilder {
				return utils.NewSQLBuilder().Alter("TABLE").Name("test").Modify("COMMENT").Escaped("New comment")
			},
			expected: "ALTER TABLE `test` MODIFY COMMENT 'New comment';",
		},
		{
			name: "ALTER TABLE with qualified name",
			builder: func() *utils.SQLBuilder {
				return utils.NewSQLBuilder().Alter("TABLE").QualifiedName(stringPtr("db"), "orders").Modify("COMMENT").Escaped("Updated")
			},
			expected: "ALTER TABLE `db`.`orders` MODIFY COMMENT 'Updated';",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.builder().String()
			require.Equal(t, tt.expected, result)
		})
	}
}

func TestSQLBuilder_RENAME(t *testing.T) {
	tests := []struct {
		name     string
		builder  func() *utils.SQLBuilder
		expected string
	}{
		{
			name:     "RENAME TABLE",
			builder:  func() *utils.SQLBuilder { return utils.NewSQLBuilder().Rename("TABLE").Name("old_table").To("new_table") },
			expected: "RENAME TABLE `old_table` TO `new_table`;",
		},
		{
			name: "RENAME TABLE with qualified names",
			builder: func() *utils.SQLBuilder {
				return utils.NewSQLBuilder().Rename("TABLE").QualifiedName(stringPtr("db"), "old_table").QualifiedTo(stringPtr("db"), "new_table")
			},
			expected: "RENAME TABLE `db`.`old_table` TO `db`.`new_table`;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.builder().String()
			require.Equal(t, tt.expected, result)
		})
	}
}

func TestSQLBuilder_Comments(t *testing.T) {
	tests := []struct {
		name     string
		comment  string
		expected string
	}{
		{
			name:     "simple comment",
			comment:  "Test comment",
			expected: "CREATE TABLE `test` COMMENT 'Test comment';",
		},
		{
			name:     "comment with apostrophe",
			comment:  "User's table",
			expected: "CREATE TABLE `test` COMMENT 'User\\'s table';",
		},
		{
			name:     "empty comment",
			comment:  "",
			expected: "CREATE TABLE `test`;",
		},
		{
			name:     "comment with multiple apostrophes",
			comment:  "It's a 'test' table",
			expected: "CREATE TABLE `test` COMMENT 'It\\'s a \\'test\\' table';",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := utils.NewSQLBuilder().Create("TABLE").Name("test").Comment(tt.comment).String()
			require.Equal(t, tt.expected, result)
		})
	}
}

func TestSQLBuilder_Engine(t *testing.T) {
	tests := []struct {
		name     string
		engine   string
		expected string
	}{
		{
			name:     "simple engine",
			engine:   "InnoDB",
			expected: "CREATE TABLE `test` ENGINE = InnoDB;",
		},
		{
			name:     "alternate engine",
			engine:   "MyISAM",
			expected: "CREATE TABLE `test` ENGINE = MyISAM;",
		},
		{
			name:     "empty engine",
			engine:   "",
			expected: "CREATE TABLE `test`;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := utils.NewSQLBuilder().Create("TABLE").Name("test").Engine(tt.engine).String()
			require.Equal(t, tt.expected, result)
		})
	}
}

func TestSQLBuilder_QualifiedName(t *testing.T) {
	tests := []struct {
		name     string
		database *string
		table    string
		expected string
	}{
		{
			name:     "with database",
			database: stringPtr("analytics"),
			table:    "events",
			expected: "CREATE TABLE `analytics`.`events`;",
		},
		{
			name:     "without database",
			database: nil,
			table:    "events",
			expected: "CREATE TABLE `events`;",
		},
		{
			name:     "empty database",
			database: stringPtr(""),
			table:    "events",
			expected: "CREATE TABLE `events`;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := utils.NewSQLBuilder().Create("TABLE").QualifiedName(tt.database, tt.table).String()
			require.Equal(t, tt.expected, result)
		})
	}
}

func TestSQLBuilder_Raw(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "ALGORITHM clause",
			raw:      "ALGORITHM=INPLACE",
			expected: "ALTER TABLE `test` ALGORITHM=INPLACE;",
		},
		{
			name:     "LOCK clause",
			raw:      "LOCK=NONE",
			expected: "ALTER TABLE `test` LOCK=NONE;",
		},
		{
			name:     "empty raw",
			raw:      "",
			expected: "ALTER TABLE `test`;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := utils.NewSQLBuilder().Alter("TABLE").Name("test").Raw(tt.raw).String()
			require.Equal(t, tt.expected, result)
		})
	}
}

func TestSQLBuilder_StringWithoutSemicolon(t *testing.T) {
	builder := utils.NewSQLBuilder().Create("TABLE").Name("test").Engine("InnoDB")

	withSemicolon := builder.String()
	withoutSemicolon := builder.StringWithoutSemicolon()

	require.Equal(t, "CREATE TABLE `test` ENGINE = InnoDB;", withSemicolon)
	require.Equal(t, "CREATE TABLE `test` ENGINE = InnoDB", withoutSemicolon)
}

func TestSQLBuilder_Escaped(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected string
	}{
		{
			name:     "simple value",
			value:    "New comment",
			expected: "ALTER TABLE `test` MODIFY COMMENT 'New comment';",
		},
		{
			name:     "value with apostrophe",
			value:    "User's table",
			expected: "ALTER TABLE `test` MODIFY COMMENT 'User\\'s table';",
		},
		{
			name:     "empty value",
			value:    "",
			expected: "ALTER TABLE `test` MODIFY COMMENT;",
		},
		{
			name:     "value with multiple apostrophes",
			value:    "It's a 'test' table",
			expected: "ALTER TABLE `test` MODIFY COMMENT 'It\\'s a \\'test\\' table';",
		},
		{
			name:     "value with quotes and backslashes",
			value:    "Path: C:\\Users\\John's folder",
			expected: "ALTER TABLE `test` MODIFY COMMENT 'Path: C:\\Users\\John\\'s folder';",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := utils.NewSQLBuilder().Alter("TABLE").Name("test").Modify("COMMENT").Escaped(tt.value).String()
			require.Equal(t, tt.expected, result)
		})
	}
}

func TestSQLBuilder_ComplexExamples(t *testing.T) {
	tests := []struct {
		name     string
		builder  func() *utils.SQLBuilder
		expected string
	}{
		{
			name: "full CREATE TABLE",
			builder: func() *utils.SQLBuilder {
				return utils.NewSQLBuilder().
					Create("TABLE").
					IfNotExists().
					Name("orders").
					Engine("InnoDB").
					Comment("Customer orders for reporting")
			},
			expected: "CREATE TABLE IF NOT EXISTS `orders` ENGINE = InnoDB COMMENT 'Customer orders for reporting';",
		},
		{
			name: "full DROP with qualified name",
			builder: func() *utils.SQLBuilder {
				return utils.NewSQLBuilder().
					Drop("TABLE").
					IfExists().
					QualifiedName(stringPtr("legacy"), "old_orders")
			},
			expected: "DROP TABLE IF EXISTS `legacy`.`old_orders`;",
		},
		{
			name: "ALTER TABLE with comment change",
			builder: func() *utils.SQLBuilder {
				return utils.NewSQLBuilder().
					Alter("TABLE").
					Name("orders").
					Modify("COMMENT").
					Escaped("Updated customer orders")
			},
			expected: "ALTER TABLE `orders` MODIFY COMMENT 'Updated customer orders';",
		},
		{
			name: "RENAME qualified objects",
			builder: func() *utils.SQLBuilder {
				return utils.NewSQLBuilder().
					Rename("TABLE").
					QualifiedName(stringPtr("old_db"), "old_table").
					QualifiedTo(stringPtr("new_db"), "new_table")
			},
			expected: "RENAME TABLE `old_db`.`old_table` TO `new_db`.`new_table`;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.builder().String()
			require.Equal(t, tt.expected, result)
		})
	}
}
