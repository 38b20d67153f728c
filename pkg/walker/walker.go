// Package walker enumerates the files of a directory tree that an ignore
// matcher leaves eligible.
package walker

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/tesgen/tes/pkg/domain"
)

// DefaultMaxDepth bounds directory recursion.
const DefaultMaxDepth = 256

var (
	// ErrInvalidRootPath is returned when the root does not exist or is not a directory.
	ErrInvalidRootPath = errors.Mark(errors.New("walker: root path does not exist or is not a directory"), domain.ErrFileSystem)
	// ErrMaxDepth is returned when the tree is deeper than the configured limit.
	ErrMaxDepth = errors.Mark(errors.New("walker: maximum directory depth exceeded"), domain.ErrFileSystem)
)

// Matcher decides whether a path, relative to the walk base, is excluded.
type Matcher interface {
	IgnoresEntry(relPath string, isDir bool) bool
}

// VisitFunc is called once per eligible file. A non-nil error aborts the walk.
type VisitFunc func(path string) error

// Entry is one filesystem entry met during the walk.
type Entry struct {
	Path  string
	IsDir bool
}

// Options configures Walk.
type Options struct {
	// Base is the directory ignore paths are made relative to.
	// Empty means the process working directory.
	Base string
	// MaxDepth is the deepest directory level descended into.
	// Zero or negative values use DefaultMaxDepth.
	MaxDepth int
}

// Option is a functional option for Walk.
type Option func(*Options)

// WithBase sets the directory ignore paths are made relative to.
func WithBase(dir string) Option {
	return func(o *Options) {
		o.Base = dir
	}
}

// WithMaxDepth sets the recursion limit. Non-positive values are ignored.
func WithMaxDepth(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxDepth = n
		}
	}
}

type walker struct {
	ctx      context.Context
	matcher  Matcher
	visit    VisitFunc
	cwd      string
	base     string
	maxDepth int
	seen     map[string]struct{}
}

// Walk descends root in pre-order and calls visit for every file the matcher
// does not ignore. Each entry is tested with its path relative to the base
// directory (the working directory by default); ignored directories are not
// descended into. Symlinks are followed, and a directory reached twice
// through links is walked once. Directory read and stat failures abort the
// walk and are marked domain.ErrFileSystem.
func Walk(ctx context.Context, root string, matcher Matcher, visit VisitFunc, opts ...Option) error {
	o := Options{MaxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return errors.Mark(errors.Wrap(err, "resolve working directory"), domain.ErrFileSystem)
	}

	base := o.Base
	if base == "" {
		base = cwd
	} else if !filepath.IsAbs(base) {
		base = filepath.Join(cwd, base)
	}

	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return errors.Wrapf(ErrInvalidRootPath, "walk %s", root)
	}

	w := &walker{
		ctx:      ctx,
		matcher:  matcher,
		visit:    visit,
		cwd:      cwd,
		base:     base,
		maxDepth: o.MaxDepth,
		seen:     make(map[string]struct{}),
	}

	return w.walkDir(root, 0)
}

func (w *walker) walkDir(dir string, depth int) error {
	if depth > w.maxDepth {
		return errors.Wrapf(ErrMaxDepth, "walk %s", dir)
	}

	real, err := filepath.EvalSymlinks(w.absolute(dir))
	if err != nil {
		return fsError(err, "resolve %s", dir)
	}
	if _, walked := w.seen[real]; walked {
		return nil
	}
	w.seen[real] = struct{}{}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fsError(err, "read directory %s", dir)
	}

	for _, entry := range entries {
		if err := w.ctx.Err(); err != nil {
			return err
		}

		e, skip, err := w.resolve(dir, entry)
		if err != nil {
			return err
		}
		if skip {
			continue
		}

		if e.IsDir {
			if err := w.walkDir(e.Path, depth+1); err != nil {
				return err
			}
			continue
		}

		if err := w.visit(e.Path); err != nil {
			return err
		}
	}

	return nil
}

// resolve types an entry, following symlinks, and applies the matcher.
func (w *walker) resolve(dir string, entry fs.DirEntry) (Entry, bool, error) {
	e := Entry{Path: filepath.Join(dir, entry.Name()), IsDir: entry.IsDir()}
	rel := w.relative(e.Path)

	if entry.Type()&fs.ModeSymlink != 0 {
		info, err := os.Stat(e.Path)
		if err != nil {
			if w.ignored(rel, false) {
				return e, true, nil
			}
			return e, false, fsError(err, "stat %s", e.Path)
		}
		e.IsDir = info.IsDir()
	}

	return e, w.ignored(rel, e.IsDir), nil
}

func (w *walker) ignored(rel string, isDir bool) bool {
	return w.matcher != nil && w.matcher.IgnoresEntry(rel, isDir)
}

func (w *walker) absolute(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(w.cwd, path)
}

func (w *walker) relative(path string) string {
	rel, err := filepath.Rel(w.base, w.absolute(path))
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

func fsError(err error, format string, args ...any) error {
	return errors.Mark(errors.Wrapf(err, format, args...), domain.ErrFileSystem)
}
