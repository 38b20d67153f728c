package generator

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	genai "google.golang.org/genai"

	"github.com/tesgen/tes/pkg/domain"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// ErrMissingAPIKey is returned when a Gemini client is built without a key.
var ErrMissingAPIKey = errors.New("generator: missing API key")

// ErrEmptyResponse is returned when the model produced no text.
var ErrEmptyResponse = errors.New("generator: empty response from model")

// GeminiClient is a thin wrapper around the genai client.
type GeminiClient struct {
	cli   *genai.Client
	model string
}

// NewGeminiClient builds a client for the Gemini API backend.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.WithHint(ErrMissingAPIKey, "set GEMINI_API_KEY, add it to .env, or run with --fake")
	}
	if model == "" {
		model = DefaultModel
	}

	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create genai client")
	}

	return &GeminiClient{cli: cli, model: model}, nil
}

// Name identifies the backing model.
func (g *GeminiClient) Name() string { return "Gemini:" + g.model }

// Generate sends the prompt for req and returns the artifact text without
// markdown fences.
func (g *GeminiClient) Generate(ctx context.Context, req Request) (Response, error) {
	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: BuildPrompt(req)}}}},
		&genai.GenerateContentConfig{ResponseMIMEType: "text/plain"},
	)
	if err != nil {
		return Response{}, errors.Mark(errors.Wrapf(err, "generate %s", req.FilePath), domain.ErrGeneration)
	}

	text := responseText(resp)
	if text == "" {
		return Response{}, errors.Mark(errors.Wrapf(ErrEmptyResponse, "generate %s", req.FilePath), domain.ErrGeneration)
	}

	return Response{ArtifactText: StripCodeFences(text)}, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && !part.Thought {
			b.WriteString(part.Text)
		}
	}
	return strings.TrimSpace(b.String())
}
