package ddl_test

import (
	"testing"

	"github.com/pseudomuto/migrokit/pkg/ddl"
	"github.com/stretchr/testify/require"
)

func TestParseCreateTable_RoundTrip(t *testing.T) {
	input := "CREATE TABLE `users` (\n" +
		"  `id` int(11) NOT NULL AUTO_INCREMENT,\n" +
		"  `email` varchar(255) NOT NULL,\n" +
		"  `tenant_id` int(11) DEFAULT NULL,\n" +
		"  PRIMARY KEY (`id`),\n" +
		"  UNIQUE KEY `uq_email` (`email`),\n" +
		"  FULLTEXT KEY `ft_search` (`email`),\n" +
		"  CONSTRAINT `fk_u_t` FOREIGN KEY (`tenant_id`) REFERENCES `tenants` (`id`) ON DELETE CASCADE\n" +
		") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_general_ci COMMENT='app users';"

	model, warnings, err := ddl.ParseCreateTable(input)
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.Equal(t, "users", model.Name)

	require.Len(t, model.Columns, 3)

	id, ok := model.Column("id")
	require.True(t, ok)
	require.False(t, id.Nullable)
	require.True(t, id.AutoIncrement)

	email, ok := model.Column("email")
	require.True(t, ok)
	require.False(t, email.Nullable)

	tenant, ok := model.Column("tenant_id")
	require.True(t, ok)
	require.True(t, tenant.Nullable)

	pk, ok := model.Indexes["PRIMARY"]
	require.True(t, ok)
	require.True(t, pk.Primary)
	require.Equal(t, []string{"id"}, pk.Columns)

	uq, ok := model.Indexes["uq_email"]
	require.True(t, ok)
	require.True(t, uq.Unique)
	require.False(t, uq.Fulltext)

	ft, ok := model.Indexes["ft_search"]
	require.True(t, ok)
	require.True(t, ft.Fulltext)

	fk, ok := model.ForeignKeys["fk_u_t"]
	require.True(t, ok)
	require.Equal(t, []string{"tenant_id"}, fk.Columns)
	require.Equal(t, "tenants", fk.ReferencedTable)
	require.Equal(t, []string{"id"}, fk.ReferencedColumns)
	require.Equal(t, "CASCADE", fk.OnDelete)

	require.Equal(t, "InnoDB", model.Options.Engine)
	require.Equal(t, "utf8mb4", model.Options.Charset)
	require.Equal(t, "utf8mb4_general_ci", model.Options.Collation)
	require.Equal(t, "app users", model.Options.Comment)
}

func TestParseCreateTable_GeneratedColumn(t *testing.T) {
	input := "CREATE TABLE `orders` (\n" +
		"  `price` decimal(10,2) NOT NULL,\n" +
		"  `discount` decimal(10,2) NOT NULL,\n" +
		"  `total` decimal(10,2) GENERATED ALWAYS AS (`price` - `discount`) STORED\n" +
		") ENGINE=InnoDB;"

	model, warnings, err := ddl.ParseCreateTable(input)
	require.NoError(t, err)
	require.Empty(t, warnings)

	total, ok := model.Column("total")
	require.True(t, ok)
	require.NotNil(t, total.Generated)
	require.True(t, total.Generated.Stored)
	require.Contains(t, total.Generated.ReferencedBy, "price")
	require.Contains(t, total.Generated.ReferencedBy, "discount")
}

func TestParseCreateTable_MissingName(t *testing.T) {
	_, _, err := ddl.ParseCreateTable("CREATE TABLE (id int);")
	require.Error(t, err)

	var perr *ddl.ParseError
	require.ErrorAs(t, err, &perr)
}

func TestParseCreateTable_MissingBody(t *testing.T) {
	_, _, err := ddl.ParseCreateTable("CREATE TABLE users;")
	require.Error(t, err)

	var perr *ddl.ParseError
	require.ErrorAs(t, err, &perr)
}

func TestParseCreateTable_MalformedClauseIsWarningNotFatal(t *testing.T) {
	input := "CREATE TABLE `t` (\n" +
		"  `id` int(11) NOT NULL,\n" +
		"  CONSTRAINT FOREIGN KEY REFERENCES\n" +
		") ENGINE=InnoDB;"

	model, warnings, err := ddl.ParseCreateTable(input)
	require.NoError(t, err)
	require.NotEmpty(t, warnings)
	require.Len(t, model.Columns, 1)
}

func TestParseCreateTable_DefaultOptionsWhenOmitted(t *testing.T) {
	model, _, err := ddl.ParseCreateTable("CREATE TABLE t (id int NOT NULL);")
	require.NoError(t, err)

	resolved := model.Options.Resolved()
	require.Equal(t, "InnoDB", resolved.Engine)
	require.Equal(t, "utf8mb4", resolved.Charset)
	require.Equal(t, "utf8mb4_general_ci", resolved.Collation)
}
