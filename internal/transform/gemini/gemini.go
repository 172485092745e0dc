// Package gemini implements a transform provider using the Google
// Generative AI API.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/dshills/revise/internal/transform"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.0-flash"

// Provider calls the Gemini API.
type Provider struct {
	apiKey string
	model  string
}

// New creates a Gemini provider.
func New(apiKey, model string) *Provider {
	if model == "" {
		model = DefaultModel
	}
	return &Provider{apiKey: apiKey, model: model}
}

// Name identifies the provider.
func (p *Provider) Name() string {
	return "gemini"
}

// Transform sends the request to the Gemini API.
// The client is created per call because its lifetime is bound to ctx.
func (p *Provider) Transform(ctx context.Context, req transform.Request) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(p.apiKey))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	defer client.Close()

	system, user := transform.Prompt(req)

	model := client.GenerativeModel(p.model)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(system)},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(user))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}

	var out strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				out.WriteString(string(text))
			}
		}
	}
	if out.Len() == 0 {
		return "", fmt.Errorf("gemini: empty response")
	}
	return out.String(), nil
}
