package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tesgen/tes/pkg/domain"
)

func TestParsePatterns(t *testing.T) {
	content := []byte("# comment\n\nnode_modules\r\n  \n*.log\n!keep.log\n#another\n/build\n")

	got := ParsePatterns(content)

	assert.Equal(t, PatternSet{"node_modules", "*.log", "!keep.log", "/build"}, got)
}

func TestLoadPatterns(t *testing.T) {
	dir := t.TempDir()

	tesignore := filepath.Join(dir, ".tesignore")
	gitignore := filepath.Join(dir, ".gitignore")
	require.NoError(t, os.WriteFile(tesignore, []byte("fixtures/\n"), 0o644))
	require.NoError(t, os.WriteFile(gitignore, []byte("# deps\nnode_modules\n"), 0o644))

	t.Run("merges in source order", func(t *testing.T) {
		patterns, missing, err := LoadPatterns(tesignore, gitignore)
		require.NoError(t, err)
		assert.Empty(t, missing)
		assert.Equal(t, PatternSet{"fixtures/", "node_modules"}, patterns)
	})

	t.Run("missing files contribute nothing", func(t *testing.T) {
		absent := filepath.Join(dir, "absent")
		patterns, missing, err := LoadPatterns(absent, gitignore)
		require.NoError(t, err)
		assert.Equal(t, []string{absent}, missing)
		assert.Equal(t, PatternSet{"node_modules"}, patterns)
	})

	t.Run("unreadable file is a filesystem error", func(t *testing.T) {
		_, _, err := LoadPatterns(dir)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrFileSystem))
	})
}
