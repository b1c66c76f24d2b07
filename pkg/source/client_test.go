package source_test

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/pseudomuto/migrokit/pkg/schema"
	"github.com/pseudomuto/migrokit/pkg/source"
	"github.com/stretchr/testify/require"
)

// These tests wrap a sqlmock connection in a *source.Client with
// source.NewClientFromDB, so ListObjects/GetDDL run against the mock
// instead of dialing out, matching the teacher's clickhouse_test.go
// mocking style (a fake driver instead of a live server in unit tests).
func TestClient_ListObjects_UnknownKind(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	c := source.NewClientFromDB(db)
	_, err = c.ListObjects(context.Background(), schema.Kind("bogus"))
	require.Error(t, err)
}

func TestClient_ListObjects_Tables(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"TABLE_NAME"}).AddRow("users").AddRow("orders")
	mock.ExpectQuery("information_schema.TABLES").WillReturnRows(rows)

	c := source.NewClientFromDB(db)
	names, err := c.ListObjects(context.Background(), schema.KindTable)
	require.NoError(t, err)
	require.Equal(t, []string{"users", "orders"}, names)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClient_GetDDL_Table(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"Table", "Create Table"}).
		AddRow("users", "CREATE TABLE `users` (`id` int(11) NOT NULL)")
	mock.ExpectQuery("SHOW CREATE TABLE").WillReturnRows(rows)

	c := source.NewClientFromDB(db)
	ddl, err := c.GetDDL(context.Background(), schema.KindTable, "users")
	require.NoError(t, err)
	require.Contains(t, ddl, "CREATE TABLE `users`")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClient_ListSequences_Unsupported(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("information_schema.SEQUENCES").WillReturnError(sqlmock.ErrCancelled)

	c := source.NewClientFromDB(db)
	names, err := c.ListObjects(context.Background(), schema.KindSequence)
	require.NoError(t, err)
	require.Empty(t, names)
}
