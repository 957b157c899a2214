// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"
	"errors"
	"io"

	openai "github.com/sashabaranov/go-openai"

	"github.com/pdiddy/answer-engine/pkg/types"
)

// OpenAIGenerator implements Generator against the OpenAI Chat Completions
// API via the go-openai library.
type OpenAIGenerator struct {
	client *openai.Client
	cfg    types.AIConfig
}

// NewOpenAIGenerator creates an OpenAI-backed generator.
func NewOpenAIGenerator(apiKey string, cfg types.AIConfig) *OpenAIGenerator {
	return &OpenAIGenerator{client: openai.NewClient(apiKey), cfg: cfg}
}

// Name returns the provider name.
func (g *OpenAIGenerator) Name() string { return "openai" }

// Model returns the model a request would use.
func (g *OpenAIGenerator) Model(req Request) string {
	if req.Model != "" {
		return req.Model
	}
	return g.cfg.Model
}

func (g *OpenAIGenerator) chatRequest(req Request, stream bool) openai.ChatCompletionRequest {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = g.cfg.MaxTokens
	}
	temperature := req.Temperature
	if temperature == 0 {
		temperature = g.cfg.Temperature
	}

	var messages []openai.ChatCompletionMessage
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	return openai.ChatCompletionRequest{
		Model:       g.Model(req),
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		Stream:      stream,
	}
}

// Stream generates a response, forwarding each delta to chunks.
func (g *OpenAIGenerator) Stream(ctx context.Context, req Request, chunks chan<- string) error {
	stream, err := g.client.CreateChatCompletionStream(ctx, g.chatRequest(req, true))
	if err != nil {
		return &types.ProviderError{Provider: "openai", Op: "stream", Err: err}
	}
	defer stream.Close()

	for {
		response, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return &types.ProviderError{Provider: "openai", Op: "stream", Err: err}
		}

		if len(response.Choices) > 0 {
			content := response.Choices[0].Delta.Content
			if content != "" {
				select {
				case chunks <- content:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}
	}
}

// Complete generates a response and returns the full text.
func (g *OpenAIGenerator) Complete(ctx context.Context, req Request) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, g.chatRequest(req, false))
	if err != nil {
		return "", &types.ProviderError{Provider: "openai", Op: "complete", Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
