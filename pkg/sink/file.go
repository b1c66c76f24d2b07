package sink

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/pseudomuto/migrokit/pkg/consts"
	"github.com/spf13/afero"
)

// FileSink writes a migration run's artifacts as three files under Dir,
// named from a shared basename: <basename>.up.sql, <basename>.down.sql,
// and <basename>.report.txt.
type FileSink struct {
	fs       afero.Fs
	dir      string
	basename func() string
}

// NewFileSink returns a FileSink rooted at dir on fs. basename is
// called once per Write to derive the three artifact file names; tests
// pass a fixed basename, callers in cmd/ pass a timestamp-based one.
func NewFileSink(fs afero.Fs, dir string, basename func() string) *FileSink {
	return &FileSink{fs: fs, dir: dir, basename: basename}
}

func (s *FileSink) Write(ctx context.Context, migrationSQL, rollbackSQL, reportText string) error {
	if err := s.fs.MkdirAll(s.dir, consts.ModeDir); err != nil {
		return errors.Wrap(err, "sink: creating migration directory")
	}

	base := s.basename()

	files := map[string]string{
		base + ".up.sql":     migrationSQL,
		base + ".down.sql":   rollbackSQL,
		base + ".report.txt": reportText,
	}

	for name, content := range files {
		path := filepath.Join(s.dir, name)
		if err := afero.WriteFile(s.fs, path, []byte(content), consts.ModeFile); err != nil {
			return errors.Wrapf(err, "sink: writing %s", path)
		}
	}

	return nil
}

var _ Sink = (*FileSink)(nil)

// BasenameFromTimestamp builds the conventional "<timestamp>_<name>"
// migration basename, mirroring the teacher's
// migrator.Migration.Version/Name pairing.
func BasenameFromTimestamp(timestamp, name string) string {
	return fmt.Sprintf("%s_%s", timestamp, name)
}
