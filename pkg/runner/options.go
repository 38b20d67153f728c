package runner

import (
	"time"

	"github.com/tesgen/tes/pkg/ignore"
	"github.com/tesgen/tes/pkg/manifest"
)

const (
	// DefaultWorkers processes files one at a time.
	DefaultWorkers = 1
	// MaxWorkers is the maximum number of concurrent workers allowed.
	MaxWorkers = 64
	// DefaultMaxFileSize is the largest input read (1MB). Larger files are skipped.
	DefaultMaxFileSize = 1024 * 1024
)

// Options configures a Runner.
type Options struct {
	// SourceDir selects directory mode when non-empty.
	SourceDir string

	// File is the input of single-file mode.
	File string

	// Output overrides the companion location in single-file mode.
	// Ignored in directory mode.
	Output string

	// Targets restricts generation to named functions or classes.
	Targets []string

	// Libraries names the test libraries passed to the generator.
	Libraries string

	// Include limits directory mode to files whose path relative to the
	// source directory matches one of these doublestar globs.
	// Empty means every eligible file.
	Include []string

	// IgnoreFiles are the pattern files merged, in order, in directory mode.
	IgnoreFiles []string

	// ManifestPath is the package.json whose dependencies are listed in
	// each request. Empty disables manifest reading.
	ManifestPath string

	// SkipCompanions skips inputs that are themselves test artifacts.
	// Default: true (opt-out via WithSkipCompanions(false)).
	SkipCompanions bool

	// DryRun normalizes inputs without calling the generator or writing.
	DryRun bool

	// MaxFileSize is the largest input in bytes that is processed.
	MaxFileSize int64

	// Timeout bounds the whole run. Zero means no limit.
	Timeout time.Duration

	// Workers is the number of files processed concurrently in directory mode.
	// Values above MaxWorkers are capped.
	Workers int
}

// Option is a functional option for configuring a Runner.
type Option func(*Options)

// WithSourceDir selects directory mode rooted at dir.
func WithSourceDir(dir string) Option {
	return func(o *Options) {
		o.SourceDir = dir
	}
}

// WithFile sets the single-file mode input.
func WithFile(path string) Option {
	return func(o *Options) {
		o.File = path
	}
}

// WithOutput sets the explicit companion location for single-file mode.
func WithOutput(path string) Option {
	return func(o *Options) {
		o.Output = path
	}
}

// WithTargets restricts generation to the named functions or classes.
func WithTargets(targets []string) Option {
	return func(o *Options) {
		o.Targets = targets
	}
}

// WithLibraries sets the test libraries named in requests.
func WithLibraries(libraries string) Option {
	return func(o *Options) {
		o.Libraries = libraries
	}
}

// WithInclude sets glob patterns that directory mode files must match.
func WithInclude(patterns []string) Option {
	return func(o *Options) {
		o.Include = patterns
	}
}

// WithIgnoreFiles replaces the pattern files read in directory mode.
func WithIgnoreFiles(paths []string) Option {
	return func(o *Options) {
		o.IgnoreFiles = paths
	}
}

// WithManifest sets the package.json path. Empty disables it.
func WithManifest(path string) Option {
	return func(o *Options) {
		o.ManifestPath = path
	}
}

// WithSkipCompanions enables or disables skipping *.test.* and *.spec.* inputs.
func WithSkipCompanions(enabled bool) Option {
	return func(o *Options) {
		o.SkipCompanions = enabled
	}
}

// WithDryRun disables generation and writing.
func WithDryRun(enabled bool) Option {
	return func(o *Options) {
		o.DryRun = enabled
	}
}

// WithMaxFileSize sets the largest input processed. Non-positive values are ignored.
func WithMaxFileSize(size int64) Option {
	return func(o *Options) {
		if size > 0 {
			o.MaxFileSize = size
		}
	}
}

// WithTimeout bounds the whole run. Negative values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) {
		if d >= 0 {
			o.Timeout = d
		}
	}
}

// WithWorkers sets the directory mode concurrency. Values below one are ignored.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n >= 1 {
			o.Workers = n
		}
	}
}

func newDefaultOptions() Options {
	return Options{
		IgnoreFiles:    ignore.DefaultPatternFiles,
		ManifestPath:   manifest.DefaultPath,
		SkipCompanions: true,
		MaxFileSize:    DefaultMaxFileSize,
		Workers:        DefaultWorkers,
	}
}

func applyDefaults(opts *Options) {
	if opts.Workers > MaxWorkers {
		opts.Workers = MaxWorkers
	}
}
