// Package companion derives and writes the test artifact that sits next to
// a source file.
package companion

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/tesgen/tes/pkg/domain"
)

const (
	testInfix = ".test."
	specInfix = ".spec."
)

// PathFor returns <dir>/<base>.test<ext> for path.
func PathFor(path string) string {
	dir := filepath.Dir(path)
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(filepath.Base(path), ext)
	return filepath.Join(dir, base+".test"+ext)
}

// Resolve maps an input file to its companion location. With an explicit
// output the companion naming is applied to that path instead, and existing
// files are always overwritten. Without one, SkipIfExists reports whether the
// default companion is already present.
func Resolve(inputPath, explicitOutput string) (domain.OutputMapping, error) {
	if explicitOutput != "" {
		return domain.OutputMapping{
			InputPath:  inputPath,
			OutputPath: PathFor(explicitOutput),
		}, nil
	}

	m := domain.OutputMapping{
		InputPath:  inputPath,
		OutputPath: PathFor(inputPath),
	}

	_, err := os.Stat(m.OutputPath)
	switch {
	case err == nil:
		m.SkipIfExists = true
	case errors.Is(err, os.ErrNotExist):
	default:
		return m, errors.Mark(errors.Wrapf(err, "stat companion %s", m.OutputPath), domain.ErrFileSystem)
	}

	return m, nil
}

// IsCompanion reports whether path already names a test artifact
// (*.test.* or *.spec.*).
func IsCompanion(path string) bool {
	base := strings.ToLower(filepath.Base(path))
	return strings.Contains(base, testInfix) || strings.Contains(base, specInfix)
}
