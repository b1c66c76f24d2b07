package history_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pseudomuto/migrokit/pkg/history"
	"github.com/stretchr/testify/require"
)

func openTestRecorder(t *testing.T) *history.SQLiteRecorder {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.sqlite")
	r, err := history.OpenSQLiteRecorder(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestSQLiteRecorder_RecordAndList(t *testing.T) {
	r := openTestRecorder(t)
	ctx := context.Background()

	id, err := r.Record(ctx, history.Entry{
		Name:            "add_tenant_fk",
		SourceSchema:    "v1",
		DestSchema:      "v2",
		ExecutedAt:      "2026-07-31T12:00:00Z",
		OperationsCount: 3,
		MigrationFile:   "20260731120000_add_tenant_fk.up.sql",
		RollbackFile:    "20260731120000_add_tenant_fk.down.sql",
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	entries, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, id, entries[0].ID)
	require.Equal(t, history.StatusPending, entries[0].Status)
	require.Equal(t, 3, entries[0].OperationsCount)
}

func TestSQLiteRecorder_UpdateStatus(t *testing.T) {
	r := openTestRecorder(t)
	ctx := context.Background()

	id, err := r.Record(ctx, history.Entry{Name: "m", ExecutedAt: "2026-07-31T12:00:00Z"})
	require.NoError(t, err)

	require.NoError(t, r.UpdateStatus(ctx, id, history.StatusSuccess))

	entries, err := r.List(ctx)
	require.NoError(t, err)
	require.Equal(t, history.StatusSuccess, entries[0].Status)
}

func TestSQLiteRecorder_UpdateStatus_UnknownID(t *testing.T) {
	r := openTestRecorder(t)
	err := r.UpdateStatus(context.Background(), "does-not-exist", history.StatusFailed)
	require.Error(t, err)
}

func TestSQLiteRecorder_List_OrdersByExecutedAtDesc(t *testing.T) {
	r := openTestRecorder(t)
	ctx := context.Background()

	_, err := r.Record(ctx, history.Entry{Name: "first", ExecutedAt: "2026-07-30T00:00:00Z"})
	require.NoError(t, err)
	_, err = r.Record(ctx, history.Entry{Name: "second", ExecutedAt: "2026-07-31T00:00:00Z"})
	require.NoError(t, err)

	entries, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "second", entries[0].Name)
	require.Equal(t, "first", entries[1].Name)
}
