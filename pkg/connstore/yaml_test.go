package connstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/pseudomuto/migrokit/pkg/connstore"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *connstore.YAMLStore {
	t.Helper()
	fs := afero.NewMemMapFs()
	key, err := connstore.LoadOrCreateKey(fs, "/home/.migrokit/connstore.key")
	require.NoError(t, err)
	return connstore.NewYAMLStore(fs, "/home/.migrokit/connections.yaml", key)
}

func TestYAMLStore_SaveAndLoad(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.Save(ctx, connstore.Connection{
		Name:        "prod",
		DSN:         "root:secret@tcp(db.internal:3306)/app",
		Description: "production replica",
		CreatedAt:   time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	conn, err := s.Load(ctx, "prod")
	require.NoError(t, err)
	require.Equal(t, "root:secret@tcp(db.internal:3306)/app", conn.DSN)
	require.Equal(t, "production replica", conn.Description)
}

func TestYAMLStore_Load_NotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Load(context.Background(), "missing")
	require.Error(t, err)
	require.ErrorAs(t, err, new(connstore.ErrNotFound))
}

func TestYAMLStore_SaveOverwritesSameName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, connstore.Connection{Name: "staging", DSN: "old-dsn"}))
	require.NoError(t, s.Save(ctx, connstore.Connection{Name: "staging", DSN: "new-dsn"}))

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "new-dsn", list[0].DSN)
}

func TestYAMLStore_ListIsSortedByName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, connstore.Connection{Name: "zeta", DSN: "z"}))
	require.NoError(t, s.Save(ctx, connstore.Connection{Name: "alpha", DSN: "a"}))

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "alpha", list[0].Name)
	require.Equal(t, "zeta", list[1].Name)
}

func TestYAMLStore_Delete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, connstore.Connection{Name: "temp", DSN: "x"}))
	require.NoError(t, s.Delete(ctx, "temp"))

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestYAMLStore_DSNIsEncryptedOnDisk(t *testing.T) {
	fs := afero.NewMemMapFs()
	key, err := connstore.LoadOrCreateKey(fs, "/home/.migrokit/connstore.key")
	require.NoError(t, err)
	s := connstore.NewYAMLStore(fs, "/home/.migrokit/connections.yaml", key)

	require.NoError(t, s.Save(context.Background(), connstore.Connection{
		Name: "prod",
		DSN:  "root:super-secret-password@tcp(db:3306)/app",
	}))

	raw, err := afero.ReadFile(fs, "/home/.migrokit/connections.yaml")
	require.NoError(t, err)
	require.NotContains(t, string(raw), "super-secret-password")
}

func TestLoadOrCreateKey_IsStableAcrossCalls(t *testing.T) {
	fs := afero.NewMemMapFs()
	k1, err := connstore.LoadOrCreateKey(fs, "/k")
	require.NoError(t, err)
	k2, err := connstore.LoadOrCreateKey(fs, "/k")
	require.NoError(t, err)
	require.Equal(t, *k1, *k2)
}
