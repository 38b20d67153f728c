// Package runner drives the pipeline that turns source files into companion
// test artifacts, for a single file or a whole directory tree.
package runner

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/tesgen/tes/pkg/companion"
	"github.com/tesgen/tes/pkg/domain"
	"github.com/tesgen/tes/pkg/generator"
	"github.com/tesgen/tes/pkg/ignore"
	"github.com/tesgen/tes/pkg/logger"
	"github.com/tesgen/tes/pkg/manifest"
	"github.com/tesgen/tes/pkg/parser"
	"github.com/tesgen/tes/pkg/walker"
)

// ErrNoInput is returned by Run when neither a source directory nor a file is set.
var ErrNoInput = errors.New("runner: no input file or source directory")

// Runner processes input files with one generator.
type Runner struct {
	gen     generator.Client
	options Options
	log     *zap.SugaredLogger

	depsOnce sync.Once
	deps     []string

	// claimed holds the absolute paths already taken by a worker.
	claimed sync.Map
}

// New creates a Runner with the given options.
func New(gen generator.Client, opts ...Option) *Runner {
	options := newDefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	applyDefaults(&options)

	return &Runner{
		gen:     gen,
		options: options,
		log:     logger.Named("runner"),
	}
}

// Options returns the effective options.
func (r *Runner) Options() Options {
	return r.options
}

// Run processes the source directory when one is configured, otherwise the
// single file. In single-file mode an unsupported extension is logged and
// reported in the summary but is not an error.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	if r.options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.options.Timeout)
		defer cancel()
	}

	if r.options.SourceDir != "" {
		return r.RunDir(ctx, r.options.SourceDir)
	}
	if r.options.File == "" {
		return nil, ErrNoInput
	}

	start := time.Now()
	summary := newSummary()

	outcome, output, err := r.runFile(ctx, r.options.File, r.options.Output, r.options.Targets)
	summary.record(r.options.File, output, outcome, err)
	summary.Duration = time.Since(start)

	if outcome == OutcomeUnsupported {
		return summary, nil
	}
	return summary, err
}

// RunFile runs the single-file pipeline: classify by extension, resolve the
// companion path (returning early when it exists), read, normalize, generate
// and write. An existing companion costs no read and no generator call.
func (r *Runner) RunFile(ctx context.Context, path string, targets []string) (Outcome, error) {
	outcome, _, err := r.runFile(ctx, path, r.options.Output, targets)
	return outcome, err
}

func (r *Runner) runFile(ctx context.Context, path, output string, targets []string) (Outcome, string, error) {
	log := r.log.With(logger.FieldFile, path)

	family, ok := parser.FamilyForPath(path)
	if !ok {
		err := errors.Mark(errors.Newf("unsupported file extension %q", filepath.Ext(path)), domain.ErrUnsupportedSyntaxFamily)
		log.Infow("Skipping unsupported file", logger.FieldReason, err.Error())
		return OutcomeUnsupported, "", &RunError{Err: err, Path: path, Phase: PhaseClassify}
	}

	if r.options.SkipCompanions && companion.IsCompanion(path) {
		log.Debugw("Skipping test artifact", logger.FieldReason, "input is a companion")
		return OutcomeSkippedCompanion, "", nil
	}

	mapping, err := companion.Resolve(path, output)
	if err != nil {
		return OutcomeFailed, "", r.fail(log, path, PhaseResolve, err)
	}
	if mapping.SkipIfExists {
		log.Infow("Skipping file because unit tests exist", logger.FieldOutput, mapping.OutputPath)
		return OutcomeSkippedExisting, mapping.OutputPath, nil
	}

	if !r.claim(path) {
		log.Debugw("Skipping file already processed in this run")
		return OutcomeSkippedDuplicate, mapping.OutputPath, nil
	}

	source, tooLarge, err := r.read(path)
	if err != nil {
		return OutcomeFailed, "", r.fail(log, path, PhaseRead, err)
	}
	if tooLarge {
		log.Infow("Skipping large file", logger.FieldReason, "exceeds maximum file size")
		return OutcomeSkippedTooLarge, "", nil
	}

	normOpts := []parser.NormalizeOption{parser.WithJSX(parser.JSXForPath(path))}
	code, err := parser.Normalize(ctx, source, family, normOpts...)
	if err != nil {
		return OutcomeFailed, "", r.fail(log, path, PhaseNormalize, err)
	}

	if r.options.DryRun {
		log.Infow("Dry run, not generating", logger.FieldOutput, mapping.OutputPath)
		return OutcomeDryRun, mapping.OutputPath, nil
	}

	log.Infow("Generating test case", logger.FieldFamily, family)
	resp, err := r.gen.Generate(ctx, generator.Request{
		NormalizedCode: code,
		Family:         family,
		FilePath:       path,
		Targets:        targets,
		Dependencies:   r.dependencies(),
		Imports:        parser.ExtractImports(ctx, source, family, normOpts...),
		Libraries:      r.options.Libraries,
	})
	if err != nil {
		return OutcomeFailed, "", r.fail(log, path, PhaseGenerate, err)
	}

	if err := companion.Write(mapping.OutputPath, resp.ArtifactText); err != nil {
		return OutcomeFailed, "", r.fail(log, path, PhaseWrite, err)
	}

	log.Infow("Wrote unit tests", logger.FieldOutput, mapping.OutputPath)
	return OutcomeWritten, mapping.OutputPath, nil
}

// read returns the file content. Files above MaxFileSize are reported as
// too large and not read.
func (r *Runner) read(path string) ([]byte, bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, false, errors.Mark(errors.Wrapf(err, "stat %s", path), domain.ErrFileSystem)
	}
	if r.options.MaxFileSize > 0 && info.Size() > r.options.MaxFileSize {
		return nil, true, nil
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return nil, false, errors.Mark(errors.Wrapf(err, "read %s", path), domain.ErrFileSystem)
	}
	return source, false, nil
}

func (r *Runner) fail(log *zap.SugaredLogger, path, phase string, err error) error {
	log.Errorw("Failed to generate unit tests", logger.FieldPhase, phase, logger.FieldReason, err.Error())
	return &RunError{Err: err, Path: path, Phase: phase}
}

// claim reports whether path was not yet taken in this run.
func (r *Runner) claim(path string) bool {
	key, err := filepath.Abs(path)
	if err != nil {
		key = path
	}
	_, taken := r.claimed.LoadOrStore(key, struct{}{})
	return !taken
}

// dependencies reads the manifest once per Runner. Failures are logged and
// leave the list empty.
func (r *Runner) dependencies() []string {
	r.depsOnce.Do(func() {
		r.deps = []string{}
		if r.options.ManifestPath == "" {
			return
		}
		deps, err := manifest.LoadDependencies(r.options.ManifestPath)
		if err != nil {
			r.log.Warnw("Could not read dependency manifest", logger.FieldFile, r.options.ManifestPath, logger.FieldReason, err.Error())
			return
		}
		r.deps = deps
	})
	return r.deps
}

// RunDir walks root and runs every eligible file through the pipeline with
// the configured targets. Unsupported, parse and generation failures are
// logged, counted and the walk continues; filesystem errors and
// cancellation abort it.
func (r *Runner) RunDir(ctx context.Context, root string) (*Summary, error) {
	start := time.Now()
	summary := newSummary()

	patterns, missing, err := ignore.LoadPatterns(r.options.IgnoreFiles...)
	if err != nil {
		return summary, &RunError{Err: err, Phase: PhaseDiscovery}
	}
	for _, m := range missing {
		r.log.Debugw("Pattern file not found", logger.FieldFile, m)
	}
	matcher := ignore.Compile(patterns)

	var mu sync.Mutex
	record := func(path, output string, outcome Outcome, err error) {
		mu.Lock()
		defer mu.Unlock()
		summary.record(path, output, outcome, err)
	}

	var walkErr error
	if r.options.Workers <= 1 {
		walkErr = walker.Walk(ctx, root, matcher, func(path string) error {
			if !r.included(root, path) {
				return nil
			}
			outcome, output, err := r.runFile(ctx, path, "", r.options.Targets)
			record(path, output, outcome, err)
			if isFatal(err) {
				return err
			}
			return nil
		})
	} else {
		walkErr = r.runDirParallel(ctx, root, matcher, record)
	}

	sort.Slice(summary.Files, func(i, j int) bool {
		return summary.Files[i].Path < summary.Files[j].Path
	})
	summary.Duration = time.Since(start)

	if walkErr != nil {
		var runErr *RunError
		if errors.As(walkErr, &runErr) {
			return summary, walkErr
		}
		return summary, &RunError{Err: walkErr, Phase: PhaseDiscovery}
	}
	return summary, nil
}

func (r *Runner) runDirParallel(
	ctx context.Context,
	root string,
	matcher walker.Matcher,
	record func(path, output string, outcome Outcome, err error),
) error {
	sem := semaphore.NewWeighted(int64(r.options.Workers))
	g, gCtx := errgroup.WithContext(ctx)

	walkErr := walker.Walk(gCtx, root, matcher, func(path string) error {
		if !r.included(root, path) {
			return nil
		}
		// Blocks the walk while every worker is busy.
		if err := sem.Acquire(gCtx, 1); err != nil {
			return err
		}

		g.Go(func() error {
			defer sem.Release(1)

			outcome, output, err := r.runFile(gCtx, path, "", r.options.Targets)
			record(path, output, outcome, err)
			if isFatal(err) {
				return err
			}
			return nil
		})
		return nil
	})

	// Worker failures cancel gCtx, so a walk error may only echo one.
	if err := g.Wait(); err != nil {
		return err
	}
	return walkErr
}

func (r *Runner) included(root, path string) bool {
	if len(r.options.Include) == 0 {
		return true
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range r.options.Include {
		matched, err := doublestar.Match(pattern, rel)
		if err != nil {
			// Invalid pattern syntax - skip this pattern
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

// isFatal reports whether err must stop a directory run.
func isFatal(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, domain.ErrFileSystem) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
