// Package generator turns normalized source into a companion test artifact
// by calling an external generation service.
package generator

import (
	"context"

	"github.com/tesgen/tes/pkg/domain"
)

// Request carries everything a generation call may use.
type Request struct {
	NormalizedCode string
	Family         domain.SyntaxFamily
	// FilePath is the input file as the user referenced it.
	FilePath string
	// Targets restricts generation to the named functions or classes.
	Targets []string
	// Dependencies are the package names declared by the project manifest.
	Dependencies []string
	// Imports are the module specifiers the input file referenced.
	Imports []string
	// Libraries names the test libraries to generate for (e.g. "jest").
	Libraries string
}

// Response is the artifact text produced for a Request.
type Response struct {
	ArtifactText string
}

// Client is a generation service. Implementations mark failures with
// domain.ErrGeneration.
type Client interface {
	Generate(ctx context.Context, req Request) (Response, error)
}

// Middleware decorates a Client.
type Middleware func(Client) Client

// Wrap applies middlewares left to right: Wrap(c, A, B) is A(B(c)).
func Wrap(inner Client, mws ...Middleware) Client {
	out := inner
	for i := len(mws) - 1; i >= 0; i-- {
		out = mws[i](out)
	}
	return out
}
