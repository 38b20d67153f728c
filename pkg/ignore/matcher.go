// Package ignore compiles ignore-file patterns into a path predicate.
//
// Matching follows .gitignore semantics: `*`, `**`, `?` and bracket
// wildcards, a leading `/` anchors a pattern to the traversal root, a
// trailing `/` restricts it to directories, and `!` re-includes a path an
// earlier pattern excluded. The last pattern that matches a path decides.
package ignore

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

const (
	negationPrefix = "!"
	dirSep         = "/"
	globMeta       = `*?[]\`
)

// Matcher is a compiled PatternSet. A Matcher is immutable and safe for concurrent use.
type Matcher struct {
	patterns []string
	matcher  gitignore.Matcher
}

// Compile builds a Matcher from patterns in precedence order.
// Compile never fails: a pattern with invalid glob syntax is matched as a literal string.
func Compile(patterns []string) *Matcher {
	compiled := make([]gitignore.Pattern, 0, len(patterns))
	kept := make([]string, 0, len(patterns))

	for _, raw := range patterns {
		p := strings.TrimRight(raw, "\r")
		if strings.TrimSpace(p) == "" {
			continue
		}
		p = literalIfMalformed(p)
		kept = append(kept, p)
		compiled = append(compiled, gitignore.ParsePattern(p, nil))
	}

	return &Matcher{
		patterns: kept,
		matcher:  gitignore.NewMatcher(compiled),
	}
}

// Patterns returns the effective patterns after malformed ones were escaped.
func (m *Matcher) Patterns() []string {
	out := make([]string, len(m.patterns))
	copy(out, m.patterns)
	return out
}

// Ignores reports whether relPath is excluded. A trailing slash marks relPath as a directory.
func (m *Matcher) Ignores(relPath string) bool {
	isDir := strings.HasSuffix(filepath.ToSlash(relPath), dirSep)
	return m.IgnoresEntry(relPath, isDir)
}

// IgnoresEntry reports whether relPath, a file or a directory, is excluded.
// relPath must be relative; absolute paths never match.
func (m *Matcher) IgnoresEntry(relPath string, isDir bool) bool {
	parts := split(relPath)
	if len(parts) == 0 {
		return false
	}
	return m.matcher.Match(parts, isDir)
}

func split(relPath string) []string {
	p := filepath.ToSlash(relPath)
	if p == "" || strings.HasPrefix(p, dirSep) {
		return nil
	}
	p = path.Clean(p)
	if p == "." {
		return nil
	}
	return strings.Split(p, dirSep)
}

// literalIfMalformed escapes glob metacharacters of a pattern whose glob
// syntax is invalid, keeping negation and anchoring intact.
func literalIfMalformed(p string) string {
	prefix := ""
	body := p
	if strings.HasPrefix(body, negationPrefix) {
		prefix = negationPrefix
		body = body[1:]
	}

	if doublestar.ValidatePattern(strings.Trim(body, dirSep)) {
		return p
	}

	var b strings.Builder
	b.Grow(len(body) + 4)
	for _, r := range body {
		if strings.ContainsRune(globMeta, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return prefix + b.String()
}
