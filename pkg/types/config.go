// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "answer-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the web search stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey authenticates against the search provider.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxResults is the number of results requested per primary search (default 5).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// FollowupResults is the smaller result count used for follow-up
	// searches during autonomous research (default 3).
	FollowupResults int `json:"followup_results" yaml:"followup_results"`
}

// AIConfig holds settings for stages that call a generation provider.
type AIConfig struct {
	// Provider selects the generation backend: openai, anthropic, or gemini.
	Provider string `json:"provider" yaml:"provider"`

	// Model is the model identifier (e.g. "gpt-4o-mini").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the provider API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxTokens caps the generated response length (default 1000).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`

	// Temperature is the sampling temperature (default 0.7).
	Temperature float32 `json:"temperature" yaml:"temperature"`
}

// CacheConfig holds settings for the response cache.
type CacheConfig struct {
	// Dir is the directory holding the cache database (default ".cache").
	Dir string `json:"dir" yaml:"dir"`

	// TTL is the store-wide time-to-live applied to every entry (default 24h).
	TTL time.Duration `json:"ttl" yaml:"ttl"`

	// Disabled turns caching off entirely.
	Disabled bool `json:"disabled" yaml:"disabled"`
}

// ResearchConfig holds settings for the autonomous research agent.
type ResearchConfig struct {
	// MaxDepth is the hard bound on research rounds (default 3).
	MaxDepth int `json:"max_depth" yaml:"max_depth"`

	// FollowupTimeout bounds each follow-up search during fan-out (default 15s).
	FollowupTimeout time.Duration `json:"followup_timeout" yaml:"followup_timeout"`
}

// Config is the top-level configuration for the answer-engine CLI.
type Config struct {
	Search   SearchConfig   `json:"search" yaml:"search"`
	AI       AIConfig       `json:"ai" yaml:"ai"`
	Cache    CacheConfig    `json:"cache" yaml:"cache"`
	Research ResearchConfig `json:"research" yaml:"research"`
}

// DefaultConfig returns the configuration used when no config file or flags
// override a value.
func DefaultConfig() Config {
	return Config{
		Search: SearchConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   30 * time.Second,
				UserAgent: "answer-engine/0.1",
			},
			MaxResults:      5,
			FollowupResults: 3,
		},
		AI: AIConfig{
			Provider:    "openai",
			Model:       "gpt-4o-mini",
			MaxTokens:   1000,
			Temperature: 0.7,
		},
		Cache: CacheConfig{
			Dir: ".cache",
			TTL: 24 * time.Hour,
		},
		Research: ResearchConfig{
			MaxDepth:        3,
			FollowupTimeout: 15 * time.Second,
		},
	}
}
