package sink_test

import (
	"context"
	"testing"

	"github.com/pseudomuto/migrokit/pkg/sink"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestFileSink_Write(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := sink.NewFileSink(fs, "db/migrations", func() string {
		return sink.BasenameFromTimestamp("20260731120000", "add_users_table")
	})

	err := s.Write(context.Background(), "ALTER TABLE up;", "ALTER TABLE down;", "report")
	require.NoError(t, err)

	up, err := afero.ReadFile(fs, "db/migrations/20260731120000_add_users_table.up.sql")
	require.NoError(t, err)
	require.Equal(t, "ALTER TABLE up;", string(up))

	down, err := afero.ReadFile(fs, "db/migrations/20260731120000_add_users_table.down.sql")
	require.NoError(t, err)
	require.Equal(t, "ALTER TABLE down;", string(down))

	report, err := afero.ReadFile(fs, "db/migrations/20260731120000_add_users_table.report.txt")
	require.NoError(t, err)
	require.Equal(t, "report", string(report))
}

func TestFileSink_Write_CreatesDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := sink.NewFileSink(fs, "nested/dir", func() string { return "m" })

	require.NoError(t, s.Write(context.Background(), "", "", ""))

	exists, err := afero.DirExists(fs, "nested/dir")
	require.NoError(t, err)
	require.True(t, exists)
}
