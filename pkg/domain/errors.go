package domain

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Error kinds. Errors produced by the pipeline are marked with one of these
// and can be tested with errors.Is.
var (
	// ErrUnsupportedSyntaxFamily is returned for files whose extension maps to no syntax family.
	ErrUnsupportedSyntaxFamily = errors.New("unsupported syntax family")
	// ErrParse is returned when source text is not valid for the requested family.
	ErrParse = errors.New("parse error")
	// ErrGeneration is returned when the generation service fails.
	ErrGeneration = errors.New("generation failed")
	// ErrFileSystem is returned for read, write, stat and directory listing failures.
	ErrFileSystem = errors.New("filesystem error")
)

// ParseError describes the first syntax error found in a source unit.
type ParseError struct {
	Family SyntaxFamily
	// Line and Column are 1-based.
	Line   int
	Column int
	// Snippet is the erroneous source text, truncated.
	Snippet string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Snippet == "" {
		return fmt.Sprintf("%s: syntax error at %d:%d", e.Family, e.Line, e.Column)
	}
	return fmt.Sprintf("%s: syntax error at %d:%d near %q", e.Family, e.Line, e.Column, e.Snippet)
}

// Is makes errors.Is(err, ErrParse) hold for every ParseError.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
