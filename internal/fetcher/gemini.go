package fetcher

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-1.5-flash"

// GeminiOptions parameterise the generative text adapter.
type GeminiOptions struct {
	APIKey string
	Model  string
}

// Gemini generates free-text completions via the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
	logger zerolog.Logger
}

// NewGemini constructs a Gemini adapter. The API key is mandatory; callers
// that have no key configured skip construction and the pipeline falls back
// without any network activity.
func NewGemini(ctx context.Context, opts GeminiOptions, logger zerolog.Logger) (*Gemini, error) {
	if opts.APIKey == "" {
		return nil, errors.New("gemini api key required")
	}

	model := opts.Model
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: opts.APIKey})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Gemini{
		client: client,
		model:  model,
		logger: logger.With().Str("component", "gemini_adapter").Logger(),
	}, nil
}

// Generate sends the prompt and returns the raw, possibly fenced, text
// response.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", errors.New("gemini returned an empty response")
	}

	g.logger.Debug().Int("chars", len(text)).Msg("received model response")
	return text, nil
}

var _ TextGenerator = (*Gemini)(nil)
