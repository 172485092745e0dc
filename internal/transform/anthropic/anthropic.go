// Package anthropic implements a transform provider using the Anthropic
// Messages API.
package anthropic

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/dshills/revise/internal/transform"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "claude-sonnet-4-5"

// DefaultMaxTokens bounds the response size.
const DefaultMaxTokens = 4096

// Provider calls the Anthropic API.
type Provider struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// New creates an Anthropic provider.
func New(apiKey, model string) *Provider {
	if model == "" {
		model = DefaultModel
	}
	return &Provider{
		client:    anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:     model,
		maxTokens: DefaultMaxTokens,
	}
}

// Name identifies the provider.
func (p *Provider) Name() string {
	return "anthropic"
}

// Transform sends the request to the Messages API.
func (p *Provider) Transform(ctx context.Context, req transform.Request) (string, error) {
	system, user := transform.Prompt(req)

	msg, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: p.maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic: %w", err)
	}

	var out strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			out.WriteString(block.Text)
		}
	}
	if out.Len() == 0 {
		return "", fmt.Errorf("anthropic: empty response")
	}
	return out.String(), nil
}
