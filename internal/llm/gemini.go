// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/pdiddy/answer-engine/pkg/types"
)

// GeminiGenerator implements Generator against the Gemini API via the
// official google.golang.org/genai SDK.
type GeminiGenerator struct {
	client *genai.Client
	cfg    types.AIConfig

	// initErr holds a client initialization failure, reported on first use
	// so the constructor signature matches the other backends.
	initErr error
}

// NewGeminiGenerator creates a Gemini-backed generator.
func NewGeminiGenerator(apiKey string, cfg types.AIConfig) *GeminiGenerator {
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return &GeminiGenerator{
			cfg:     cfg,
			initErr: fmt.Errorf("initializing gemini client: %w", err),
		}
	}
	return &GeminiGenerator{client: client, cfg: cfg}
}

// Name returns the provider name.
func (g *GeminiGenerator) Name() string { return "gemini" }

// Model returns the model a request would use.
func (g *GeminiGenerator) Model(req Request) string {
	if req.Model != "" {
		return req.Model
	}
	return g.cfg.Model
}

func (g *GeminiGenerator) config(req Request) *genai.GenerateContentConfig {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = g.cfg.MaxTokens
	}
	temperature := req.Temperature
	if temperature == 0 {
		temperature = g.cfg.Temperature
	}

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(temperature),
		MaxOutputTokens: int32(maxTokens),
	}
	if req.System != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	return config
}

// Stream generates a response, forwarding each fragment to chunks.
func (g *GeminiGenerator) Stream(ctx context.Context, req Request, chunks chan<- string) error {
	if g.initErr != nil {
		return &types.ProviderError{Provider: "gemini", Op: "stream", Err: g.initErr}
	}

	contents := genai.Text(req.Prompt)
	for response, err := range g.client.Models.GenerateContentStream(ctx, g.Model(req), contents, g.config(req)) {
		if err != nil {
			return &types.ProviderError{Provider: "gemini", Op: "stream", Err: err}
		}
		text := response.Text()
		if text != "" {
			select {
			case chunks <- text:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return nil
}

// Complete generates a response and returns the full text.
func (g *GeminiGenerator) Complete(ctx context.Context, req Request) (string, error) {
	if g.initErr != nil {
		return "", &types.ProviderError{Provider: "gemini", Op: "complete", Err: g.initErr}
	}

	response, err := g.client.Models.GenerateContent(ctx, g.Model(req), genai.Text(req.Prompt), g.config(req))
	if err != nil {
		return "", &types.ProviderError{Provider: "gemini", Op: "complete", Err: err}
	}
	return response.Text(), nil
}
