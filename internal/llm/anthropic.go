// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/pdiddy/answer-engine/pkg/types"
)

// AnthropicGenerator implements Generator against the Anthropic Messages API
// via the official SDK.
type AnthropicGenerator struct {
	client anthropic.Client
	cfg    types.AIConfig
}

// NewAnthropicGenerator creates an Anthropic-backed generator.
func NewAnthropicGenerator(apiKey string, cfg types.AIConfig) *AnthropicGenerator {
	return &AnthropicGenerator{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		cfg:    cfg,
	}
}

// Name returns the provider name.
func (g *AnthropicGenerator) Name() string { return "anthropic" }

// Model returns the model a request would use.
func (g *AnthropicGenerator) Model(req Request) string {
	if req.Model != "" {
		return req.Model
	}
	return g.cfg.Model
}

func (g *AnthropicGenerator) params(req Request) anthropic.MessageNewParams {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = g.cfg.MaxTokens
	}
	temperature := req.Temperature
	if temperature == 0 {
		temperature = g.cfg.Temperature
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(g.Model(req)),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
		Temperature: anthropic.Float(float64(temperature)),
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}
	return params
}

// Stream generates a response, forwarding each text delta to chunks.
func (g *AnthropicGenerator) Stream(ctx context.Context, req Request, chunks chan<- string) error {
	stream := g.client.Messages.NewStreaming(ctx, g.params(req))

	for stream.Next() {
		event := stream.Current()
		switch eventVariant := event.AsAny().(type) {
		case anthropic.ContentBlockDeltaEvent:
			switch deltaVariant := eventVariant.Delta.AsAny().(type) {
			case anthropic.TextDelta:
				if deltaVariant.Text != "" {
					select {
					case chunks <- deltaVariant.Text:
					case <-ctx.Done():
						return ctx.Err()
					}
				}
			}
		}
	}

	if err := stream.Err(); err != nil {
		return &types.ProviderError{Provider: "anthropic", Op: "stream", Err: err}
	}
	return nil
}

// Complete generates a response and returns the full text.
func (g *AnthropicGenerator) Complete(ctx context.Context, req Request) (string, error) {
	message, err := g.client.Messages.New(ctx, g.params(req))
	if err != nil {
		return "", &types.ProviderError{Provider: "anthropic", Op: "complete", Err: err}
	}

	content := ""
	for _, block := range message.Content {
		switch variant := block.AsAny().(type) {
		case anthropic.TextBlock:
			content += variant.Text
		}
	}
	return content, nil
}
