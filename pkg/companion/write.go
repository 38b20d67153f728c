package companion

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/tesgen/tes/pkg/domain"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Write stores text at path, creating missing parent directories and
// truncating any existing file.
func Write(path, text string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return errors.Mark(errors.Wrapf(err, "create directory %s", dir), domain.ErrFileSystem)
		}
	}

	if err := os.WriteFile(path, []byte(text), filePerm); err != nil {
		return errors.Mark(errors.Wrapf(err, "write %s", path), domain.ErrFileSystem)
	}

	return nil
}
