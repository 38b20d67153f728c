package companion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tesgen/tes/pkg/domain"
)

func TestPathFor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "src/util.ts", want: "src/util.test.ts"},
		{in: "util.js", want: "util.test.js"},
		{in: "out/u.tsx", want: "out/u.test.tsx"},
		{in: "a/b.min.js", want: "a/b.min.test.js"},
		{in: "Makefile", want: "Makefile.test"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, filepath.FromSlash(tt.want), PathFor(filepath.FromSlash(tt.in)))
		})
	}
}

func TestResolve(t *testing.T) {
	tmp := t.TempDir()
	input := filepath.Join(tmp, "src", "util.ts")
	require.NoError(t, os.MkdirAll(filepath.Dir(input), 0o755))
	require.NoError(t, os.WriteFile(input, []byte("export const a = 1;"), 0o644))

	t.Run("default companion", func(t *testing.T) {
		m, err := Resolve(input, "")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(tmp, "src", "util.test.ts"), m.OutputPath)
		assert.Equal(t, input, m.InputPath)
		assert.False(t, m.SkipIfExists)
	})

	t.Run("explicit output", func(t *testing.T) {
		out := filepath.Join(tmp, "out", "u.tsx")
		m, err := Resolve(input, out)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(tmp, "out", "u.test.tsx"), m.OutputPath)
		assert.False(t, m.SkipIfExists)
	})

	require.NoError(t, os.WriteFile(filepath.Join(tmp, "src", "util.test.ts"), []byte("old"), 0o644))

	t.Run("existing companion is skipped", func(t *testing.T) {
		m, err := Resolve(input, "")
		require.NoError(t, err)
		assert.True(t, m.SkipIfExists)
	})

	t.Run("explicit output never skips", func(t *testing.T) {
		m, err := Resolve(input, filepath.Join(tmp, "src", "util.ts"))
		require.NoError(t, err)
		assert.False(t, m.SkipIfExists)
	})
}

func TestResolve_StatFailure(t *testing.T) {
	tmp := t.TempDir()
	// A regular file used as a directory makes stat fail with ENOTDIR.
	blocker := filepath.Join(tmp, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	_, err := Resolve(filepath.Join(blocker, "a.js"), "")
	if err == nil {
		t.Skip("platform reports not-exist for paths below a file")
	}
	assert.True(t, errors.Is(err, domain.ErrFileSystem))
}

func TestIsCompanion(t *testing.T) {
	assert.True(t, IsCompanion("src/util.test.ts"))
	assert.True(t, IsCompanion("src/Util.Spec.js"))
	assert.False(t, IsCompanion("src/util.ts"))
	assert.False(t, IsCompanion("src/testing/util.ts"))
	assert.False(t, IsCompanion("src/latest.ts"))
}

func TestWrite(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "nested", "dir", "a.test.js")

	require.NoError(t, Write(path, "first version"))
	require.NoError(t, Write(path, "second"))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))
}

func TestWrite_Failure(t *testing.T) {
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	err := Write(filepath.Join(blocker, "a.test.js"), "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrFileSystem))
}
