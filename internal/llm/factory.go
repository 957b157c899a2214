// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"fmt"
	"strings"

	"github.com/pdiddy/answer-engine/pkg/types"
)

// New constructs the generator named by cfg.Provider. Recognized names:
// "openai" (or "gpt"), "anthropic" (or "claude"), and "gemini" (or "google").
func New(apiKey string, cfg types.AIConfig) (Generator, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai", "gpt":
		return NewOpenAIGenerator(apiKey, cfg), nil
	case "anthropic", "claude":
		return NewAnthropicGenerator(apiKey, cfg), nil
	case "gemini", "google":
		return NewGeminiGenerator(apiKey, cfg), nil
	default:
		return nil, fmt.Errorf("unknown generation provider %q", cfg.Provider)
	}
}
