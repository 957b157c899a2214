// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm abstracts generation providers behind a single Generator
// interface. Each backend hides its SDK's client setup, wire format, and
// streaming mechanics; the synthesis stage only ever sees text fragments on a
// channel and plain completions.
package llm

import (
	"context"
)

// Request describes one generation call. Model, MaxTokens, and Temperature
// fall back to the provider's configured defaults when zero.
type Request struct {
	// System is the system prompt.
	System string

	// Prompt is the user prompt.
	Prompt string

	// Model overrides the provider's default model when non-empty.
	Model string

	// MaxTokens caps the generated response length.
	MaxTokens int

	// Temperature is the sampling temperature.
	Temperature float32
}

// Generator is the interface generation backends implement. Failures are
// returned as *types.ProviderError.
type Generator interface {
	// Name returns the provider name (for diagnostics and cache metadata).
	Name() string

	// Model returns the model a request would use: req.Model when set,
	// otherwise the provider default.
	Model(req Request) string

	// Stream generates a response, sending text fragments to chunks as they
	// arrive. Sends honor ctx cancellation. Stream never closes chunks; the
	// caller owns the channel.
	Stream(ctx context.Context, req Request, chunks chan<- string) error

	// Complete generates a response and returns the full text.
	Complete(ctx context.Context, req Request) (string, error)
}
