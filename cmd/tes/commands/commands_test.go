package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tesgen/tes/pkg/config"
	"github.com/tesgen/tes/pkg/domain"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func workspace(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func TestNormalizeCmd(t *testing.T) {
	workspace(t, map[string]string{
		"src/util.ts": "import { a } from './a';\nimport fs = require('fs');\n\nexport const b = a + 1;\n",
	})

	out, err := execute(t, "normalize", "src/util.ts")
	require.NoError(t, err)
	assert.Equal(t, "export const b = a + 1;\n", out)

	out, err = execute(t, "normalize", "--imports", "src/util.ts")
	require.NoError(t, err)
	assert.Equal(t, "// imports: ./a, fs\nexport const b = a + 1;\n", out)
}

func TestNormalizeCmd_Errors(t *testing.T) {
	workspace(t, map[string]string{
		"notes.md": "# notes",
		"bad.js":   "const = ;",
	})

	_, err := execute(t, "normalize", "notes.md")
	assert.True(t, errors.Is(err, domain.ErrUnsupportedSyntaxFamily))

	_, err = execute(t, "normalize", "bad.js")
	assert.True(t, errors.Is(err, domain.ErrParse))

	_, err = execute(t, "normalize", "missing.js")
	assert.True(t, errors.Is(err, domain.ErrFileSystem))
}

func TestLsCmd(t *testing.T) {
	workspace(t, map[string]string{
		".gitignore":     "dist\n",
		"src/a.js":       "a()",
		"src/b.ts":       "b()",
		"src/b.test.ts":  "test()",
		"src/readme.md":  "#",
		"dist/bundle.js": "x()",
	})

	out, err := execute(t, "ls", "src")
	require.NoError(t, err)
	assert.Equal(t, ""+
		filepath.Join("src", "a.js")+" -> "+filepath.Join("src", "a.test.js")+"\n"+
		filepath.Join("src", "b.test.ts")+" -> "+filepath.Join("src", "b.test.test.ts")+"\n"+
		filepath.Join("src", "b.ts")+" -> "+filepath.Join("src", "b.test.ts")+" (exists)\n", out)

	out, err = execute(t, "ls", "--json")
	require.NoError(t, err)
	var mappings []domain.OutputMapping
	require.NoError(t, json.Unmarshal([]byte(out), &mappings))
	for _, m := range mappings {
		assert.NotContains(t, m.InputPath, "dist")
	}
	assert.Len(t, mappings, 3)
}

func TestGenerate_SingleFileFake(t *testing.T) {
	dir := workspace(t, map[string]string{
		"src/math.js": "import x from 'x';\nexport function add(a, b) { return a + b; }\n",
	})

	_, err := execute(t, "--fake", "--file", "src/math.js", "--targets", "add")
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dir, "src", "math.test.js"))
	require.NoError(t, err)
	assert.Contains(t, string(got), `it.todo("add")`)
}

func TestGenerate_LegacyEnvironment(t *testing.T) {
	dir := workspace(t, map[string]string{
		"lib/x.mjs": "export const x = 1;\n",
	})
	t.Setenv("npm_config_file", "lib/x.mjs")

	_, err := execute(t, "--fake")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "lib", "x.test.mjs"))
}

func TestGenerate_DirectoryJSON(t *testing.T) {
	workspace(t, map[string]string{
		".tesignore":    "skip/\n",
		"src/a.js":      "export const a = 1;\n",
		"src/b.jsx":     "export const B = () => <b/>;\n",
		"src/skip/c.js": "export const c = 1;\n",
	})

	out, err := execute(t, "--fake", "--src", "src", "--json", "--workers", "2")
	require.NoError(t, err)

	var summary struct {
		Visited int `json:"visited"`
		Written int `json:"written"`
		Files   []struct {
			Path    string `json:"path"`
			Outcome string `json:"outcome"`
		} `json:"files"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, 2, summary.Visited)
	assert.Equal(t, 2, summary.Written)
	for _, f := range summary.Files {
		assert.Equal(t, "written", f.Outcome)
	}
	assert.NoFileExists(t, filepath.Join("src", "skip", "c.test.js"))
}

func TestGenerate_DryRunNeedsNoKey(t *testing.T) {
	dir := workspace(t, map[string]string{"a.ts": "export const a = 1;\n"})
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")

	_, err := execute(t, "--dry-run", "--file", "a.ts")
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "a.test.ts"))
}

func TestGenerate_NoInput(t *testing.T) {
	workspace(t, nil)
	t.Setenv("npm_config_file", "")
	t.Setenv("npm_config_src", "")

	_, err := execute(t, "--fake")
	assert.True(t, errors.Is(err, config.ErrNoInput))
}

func TestConfigCmd(t *testing.T) {
	dir := workspace(t, nil)

	_, err := execute(t, "config", "init")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, config.ProjectFileName))

	_, err = execute(t, "config", "init")
	assert.True(t, errors.Is(err, config.ErrConfigExists))

	_, err = execute(t, "config", "init", "--force")
	require.NoError(t, err)

	t.Setenv("GEMINI_API_KEY", "very-secret")
	out, err := execute(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "# from ")
	assert.Contains(t, out, redacted)
	assert.NotContains(t, out, "very-secret")
}

func TestVersionCmd(t *testing.T) {
	workspace(t, nil)

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "tes dev")

	out, err = execute(t, "version", "--json")
	require.NoError(t, err)
	var info versionInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, Version, info.Version)
}
