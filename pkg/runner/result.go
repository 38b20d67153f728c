package runner

import (
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
)

// Outcome is what happened to one input file.
type Outcome int

const (
	// OutcomeFailed means a phase returned an error.
	OutcomeFailed Outcome = iota
	// OutcomeWritten means an artifact was generated and written.
	OutcomeWritten
	// OutcomeUnsupported means the extension maps to no syntax family.
	OutcomeUnsupported
	// OutcomeSkippedExisting means a companion already exists.
	OutcomeSkippedExisting
	// OutcomeSkippedCompanion means the input is itself a test artifact.
	OutcomeSkippedCompanion
	// OutcomeSkippedTooLarge means the input exceeds MaxFileSize.
	OutcomeSkippedTooLarge
	// OutcomeSkippedDuplicate means the same file was already processed in this run.
	OutcomeSkippedDuplicate
	// OutcomeDryRun means the input was normalized but nothing was generated.
	OutcomeDryRun
)

var outcomeNames = map[Outcome]string{
	OutcomeFailed:           "failed",
	OutcomeWritten:          "written",
	OutcomeUnsupported:      "unsupported",
	OutcomeSkippedExisting:  "skipped-existing",
	OutcomeSkippedCompanion: "skipped-companion",
	OutcomeSkippedTooLarge:  "skipped-too-large",
	OutcomeSkippedDuplicate: "skipped-duplicate",
	OutcomeDryRun:           "dry-run",
}

func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// MarshalText renders the outcome name in JSON summaries.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Skipped reports whether the outcome leaves the file untouched without failing.
func (o Outcome) Skipped() bool {
	switch o {
	case OutcomeSkippedExisting, OutcomeSkippedCompanion, OutcomeSkippedTooLarge, OutcomeSkippedDuplicate:
		return true
	default:
		return false
	}
}

// Phases reported in RunError.
const (
	PhaseClassify  = "classify"
	PhaseResolve   = "resolve"
	PhaseRead      = "read"
	PhaseNormalize = "normalize"
	PhaseGenerate  = "generate"
	PhaseWrite     = "write"
	PhaseDiscovery = "discovery"
)

// RunError represents an error that occurred during a specific phase of
// processing one file.
type RunError struct {
	// Err is the underlying error.
	Err error

	// Path is the input file (may be empty for discovery errors).
	Path string

	// Phase indicates which phase failed.
	Phase string
}

// Error implements the error interface.
func (e *RunError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("[%s] %v", e.Phase, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %v", e.Phase, e.Path, e.Err)
}

// Unwrap exposes the underlying error to errors.Is and errors.As.
func (e *RunError) Unwrap() error {
	return e.Err
}

// FileResult records the outcome for one input.
type FileResult struct {
	Path    string  `json:"path"`
	Output  string  `json:"output,omitempty"`
	Outcome Outcome `json:"outcome"`
	Error   string  `json:"error,omitempty"`
}

// Summary aggregates a run.
type Summary struct {
	// Visited counts eligible files handed to the pipeline.
	Visited int `json:"visited"`
	// Written counts artifacts written.
	Written int `json:"written"`
	// Skipped counts files left alone (existing companion, companion input,
	// too large, duplicate).
	Skipped int `json:"skipped"`
	// Unsupported counts files with no syntax family.
	Unsupported int `json:"unsupported"`
	// Planned counts files normalized in a dry run.
	Planned int `json:"planned"`
	// Failed counts files whose pipeline returned an error.
	Failed int `json:"failed"`

	// Files holds one entry per visited file, sorted by path.
	Files []FileResult `json:"files"`

	// Errors holds the failures, including unsupported files.
	Errors []RunError `json:"-"`

	Duration time.Duration `json:"duration"`
}

func newSummary() *Summary {
	return &Summary{
		Files:  []FileResult{},
		Errors: []RunError{},
	}
}

func (s *Summary) record(path, output string, outcome Outcome, err error) {
	s.Visited++

	result := FileResult{Path: path, Output: output, Outcome: outcome}

	switch {
	case outcome == OutcomeWritten:
		s.Written++
	case outcome == OutcomeDryRun:
		s.Planned++
	case outcome == OutcomeUnsupported:
		s.Unsupported++
	case outcome.Skipped():
		s.Skipped++
	default:
		s.Failed++
	}

	if err != nil {
		result.Error = err.Error()
		var runErr *RunError
		if errors.As(err, &runErr) {
			s.Errors = append(s.Errors, *runErr)
		} else {
			s.Errors = append(s.Errors, RunError{Err: err, Path: path})
		}
	}

	s.Files = append(s.Files, result)
}
