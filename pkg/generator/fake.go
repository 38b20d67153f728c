package generator

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/tesgen/tes/pkg/domain"
)

// FakeClient is a deterministic offline Client. It records every request.
type FakeClient struct {
	// Text, when set, is returned for every request.
	Text string
	// Err, when set, is returned (marked domain.ErrGeneration) for every request.
	Err error

	mu    sync.Mutex
	calls []Request
}

// NewFakeClient returns a FakeClient that renders a placeholder suite.
func NewFakeClient() *FakeClient {
	return &FakeClient{}
}

// Generate implements Client.
func (f *FakeClient) Generate(ctx context.Context, req Request) (Response, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return Response{}, err
	}
	if f.Err != nil {
		return Response{}, errors.Mark(errors.Wrapf(f.Err, "generate %s", req.FilePath), domain.ErrGeneration)
	}
	if f.Text != "" {
		return Response{ArtifactText: f.Text}, nil
	}

	return Response{ArtifactText: placeholderSuite(req)}, nil
}

// Calls returns a copy of the recorded requests.
func (f *FakeClient) Calls() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Request, len(f.calls))
	copy(out, f.calls)
	return out
}

func placeholderSuite(req Request) string {
	name := strings.TrimSuffix(filepath.Base(req.FilePath), filepath.Ext(req.FilePath))

	var b strings.Builder
	fmt.Fprintf(&b, "describe(%q, () => {\n", name)
	targets := cleanTargets(req.Targets)
	if len(targets) == 0 {
		targets = []string{name}
	}
	for _, t := range targets {
		fmt.Fprintf(&b, "  it.todo(%q);\n", t)
	}
	b.WriteString("});\n")
	return b.String()
}
