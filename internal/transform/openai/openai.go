// Package openai implements a transform provider using the OpenAI Chat
// Completions API.
package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/dshills/revise/internal/transform"
)

// DefaultModel is used when no model is configured.
const DefaultModel = openai.ChatModelGPT4o

// Provider calls the OpenAI API.
type Provider struct {
	client openai.Client
	model  openai.ChatModel
}

// New creates an OpenAI provider.
func New(apiKey, model string) *Provider {
	m := DefaultModel
	if model != "" {
		m = openai.ChatModel(model)
	}
	return &Provider{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  m,
	}
}

// Name identifies the provider.
func (p *Provider) Name() string {
	return "openai"
}

// Transform sends the request to the Chat Completions API.
func (p *Provider) Transform(ctx context.Context, req transform.Request) (string, error) {
	system, user := transform.Prompt(req)

	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: p.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openai: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}
