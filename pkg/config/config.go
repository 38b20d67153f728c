// Package config assembles the run configuration from flags, environment,
// the project .tesrc.toml and built-in defaults.
package config

import (
	"github.com/cockroachdb/errors"
)

// MaxWorkers caps Run.Workers.
const MaxWorkers = 64

// Config is the complete configuration of one invocation. It is built once
// and passed down; core packages never read the environment themselves.
type Config struct {
	Input      InputConfig      `mapstructure:"input" toml:"input"`
	Generation GenerationConfig `mapstructure:"generation" toml:"generation"`
	Run        RunConfig        `mapstructure:"run" toml:"run"`
}

// InputConfig selects what is processed and where artifacts go.
type InputConfig struct {
	// Src enables directory mode when set.
	Src string `mapstructure:"src" toml:"src"`
	// File is the single input file, used when Src is empty.
	File string `mapstructure:"file" toml:"file"`
	// Output overrides the companion location in single-file mode.
	Output string `mapstructure:"output" toml:"output"`
	// Targets restricts generation to named functions or classes.
	Targets []string `mapstructure:"targets" toml:"targets"`
	// Include, when non-empty, limits directory mode to paths matching one of
	// these doublestar globs (relative to Src).
	Include []string `mapstructure:"include" toml:"include"`
	// IgnoreFiles are the pattern files merged in order.
	IgnoreFiles []string `mapstructure:"ignore_files" toml:"ignore_files"`
	// SkipCompanions skips inputs that are themselves *.test.* or *.spec.* files.
	SkipCompanions bool `mapstructure:"skip_companions" toml:"skip_companions"`
}

// GenerationConfig configures the generation service.
type GenerationConfig struct {
	Libraries         string `mapstructure:"libraries" toml:"libraries"`
	Model             string `mapstructure:"model" toml:"model"`
	APIKey            string `mapstructure:"api_key" toml:"api_key,omitempty"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute" toml:"requests_per_minute"`
	Manifest          string `mapstructure:"manifest" toml:"manifest"`
	// Fake swaps the remote service for a deterministic offline client.
	Fake bool `mapstructure:"fake" toml:"fake"`
}

// RunConfig controls execution.
type RunConfig struct {
	Workers int  `mapstructure:"workers" toml:"workers"`
	DryRun  bool `mapstructure:"dry_run" toml:"dry_run"`
	JSON    bool `mapstructure:"json" toml:"json"`
}

var (
	// ErrNoInput is returned when neither a source directory nor a file is configured.
	ErrNoInput = errors.New("config: no input file or source directory")
	// ErrInvalid is returned for out-of-range values.
	ErrInvalid = errors.New("config: invalid value")
)

// DirectoryMode reports whether a source directory is configured.
func (c *Config) DirectoryMode() bool {
	return c.Input.Src != ""
}

// NeedsAPIKey reports whether the run will call the remote service.
func (c *Config) NeedsAPIKey() bool {
	return !c.Generation.Fake && !c.Run.DryRun
}

// Validate checks the configuration of a generation run.
func (c *Config) Validate() error {
	if c.Input.Src == "" && c.Input.File == "" {
		return errors.WithHint(ErrNoInput, "pass --file or --src, or set TES_INPUT_FILE / npm_config_file")
	}
	if c.Run.Workers < 1 || c.Run.Workers > MaxWorkers {
		return errors.Wrapf(ErrInvalid, "run.workers must be between 1 and %d, got %d", MaxWorkers, c.Run.Workers)
	}
	if c.Generation.RequestsPerMinute < 0 {
		return errors.Wrapf(ErrInvalid, "generation.requests_per_minute must not be negative, got %d", c.Generation.RequestsPerMinute)
	}
	return nil
}
