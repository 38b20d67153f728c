package walker

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tesgen/tes/pkg/domain"
	"github.com/tesgen/tes/pkg/ignore"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	}
}

func collect(t *testing.T, root string, m Matcher, opts ...Option) []string {
	t.Helper()
	var visited []string
	err := Walk(context.Background(), root, m, func(path string) error {
		visited = append(visited, filepath.ToSlash(path))
		return nil
	}, opts...)
	require.NoError(t, err)
	return visited
}

func TestWalk_VisitsEligibleFilesInOrder(t *testing.T) {
	tmp := t.TempDir()
	writeTree(t, tmp,
		"README.md",
		"keep.log",
		"logs/app.log",
		"build/x.js",
		"node_modules/dep/index.js",
		"src/a.js",
		"src/b.ts",
		"src/build/out.js",
	)
	t.Chdir(tmp)

	m := ignore.Compile([]string{"node_modules", "build", "*.log", "!keep.log"})

	assert.Equal(t, []string{"README.md", "keep.log", "src/a.js", "src/b.ts"}, collect(t, ".", m))
}

func TestWalk_NilMatcherVisitsEverything(t *testing.T) {
	tmp := t.TempDir()
	writeTree(t, tmp, "a.js", "nested/deep/b.js")
	t.Chdir(tmp)

	assert.Equal(t, []string{"a.js", "nested/deep/b.js"}, collect(t, ".", nil))
}

func TestWalk_Completeness(t *testing.T) {
	tmp := t.TempDir()
	var want []string
	for _, dir := range []string{"a", "b/c", "d"} {
		for _, name := range []string{"x.js", "y.ts"} {
			rel := dir + "/" + name
			writeTree(t, tmp, rel)
			want = append(want, rel)
		}
	}
	writeTree(t, tmp, "vendor/skip.js", "vendor/more/skip.ts")
	t.Chdir(tmp)

	got := collect(t, ".", ignore.Compile([]string{"vendor/"}))

	assert.ElementsMatch(t, want, got)
	for _, p := range got {
		assert.NotContains(t, p, "vendor")
	}
}

func TestWalk_PathsRelativeToWorkingDirectory(t *testing.T) {
	tmp := t.TempDir()
	writeTree(t, tmp, "src/a.js", "src/b.js")
	t.Chdir(tmp)

	// Anchored to the working directory, not to the walk root.
	got := collect(t, "src", ignore.Compile([]string{"/src/a.js"}))

	assert.Equal(t, []string{"src/b.js"}, got)
}

func TestWalk_WithBase(t *testing.T) {
	tmp := t.TempDir()
	writeTree(t, tmp, "src/a.js", "src/b.js")
	t.Chdir(tmp)

	got := collect(t, "src", ignore.Compile([]string{"/a.js"}), WithBase("src"))

	assert.Equal(t, []string{"src/b.js"}, got)
}

func TestWalk_SymlinkCycleTerminates(t *testing.T) {
	tmp := t.TempDir()
	writeTree(t, tmp, "a/file.js")
	if err := os.Symlink("..", filepath.Join(tmp, "a", "loop")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	t.Chdir(tmp)

	assert.Equal(t, []string{"a/file.js"}, collect(t, ".", nil))
}

func TestWalk_SymlinkedFileIsVisited(t *testing.T) {
	tmp := t.TempDir()
	writeTree(t, tmp, "real.js")
	if err := os.Symlink("real.js", filepath.Join(tmp, "alias.js")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	t.Chdir(tmp)

	assert.Equal(t, []string{"alias.js", "real.js"}, collect(t, ".", nil))
}

func TestWalk_DanglingSymlink(t *testing.T) {
	tmp := t.TempDir()
	writeTree(t, tmp, "a.js")
	if err := os.Symlink("missing", filepath.Join(tmp, "dangling.js")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	t.Chdir(tmp)

	t.Run("aborts walk", func(t *testing.T) {
		err := Walk(context.Background(), ".", nil, func(string) error { return nil })
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrFileSystem))
	})

	t.Run("ignored entry is not stat'ed", func(t *testing.T) {
		assert.Equal(t, []string{"a.js"}, collect(t, ".", ignore.Compile([]string{"dangling.js"})))
	})
}

func TestWalk_VisitErrorAborts(t *testing.T) {
	tmp := t.TempDir()
	writeTree(t, tmp, "a.js", "b.js", "c.js")
	t.Chdir(tmp)

	stop := errors.New("stop")
	var visited []string
	err := Walk(context.Background(), ".", nil, func(path string) error {
		visited = append(visited, path)
		if path == "b.js" {
			return stop
		}
		return nil
	})

	assert.ErrorIs(t, err, stop)
	assert.Equal(t, []string{"a.js", "b.js"}, visited)
}

func TestWalk_InvalidRoot(t *testing.T) {
	tmp := t.TempDir()
	writeTree(t, tmp, "file.js")

	tests := []struct {
		name string
		root string
	}{
		{name: "missing", root: filepath.Join(tmp, "nope")},
		{name: "not a directory", root: filepath.Join(tmp, "file.js")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Walk(context.Background(), tt.root, nil, func(string) error { return nil })
			assert.True(t, errors.Is(err, ErrInvalidRootPath))
			assert.True(t, errors.Is(err, domain.ErrFileSystem))
		})
	}
}

func TestWalk_MaxDepth(t *testing.T) {
	tmp := t.TempDir()
	writeTree(t, tmp, "a/b/c/d.js")
	t.Chdir(tmp)

	err := Walk(context.Background(), ".", nil, func(string) error { return nil }, WithMaxDepth(2))
	assert.True(t, errors.Is(err, ErrMaxDepth))

	assert.Equal(t, []string{"a/b/c/d.js"}, collect(t, ".", nil, WithMaxDepth(3)))
}

func TestWalk_ContextCancelled(t *testing.T) {
	tmp := t.TempDir()
	writeTree(t, tmp, "a.js")
	t.Chdir(tmp)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Walk(ctx, ".", nil, func(string) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}
