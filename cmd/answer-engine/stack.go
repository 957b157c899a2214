// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/viper"

	"github.com/pdiddy/answer-engine/internal/cache"
	"github.com/pdiddy/answer-engine/internal/llm"
	"github.com/pdiddy/answer-engine/internal/search"
	"github.com/pdiddy/answer-engine/internal/synth"
	"github.com/pdiddy/answer-engine/pkg/types"
)

// loadConfig resolves the effective configuration: built-in defaults overlaid
// with config-file and environment values read through viper, with API keys
// resolved from environment variables and .secrets/ files.
func loadConfig() types.Config {
	cfg := types.DefaultConfig()

	if v := viper.GetInt("search.max_results"); v > 0 {
		cfg.Search.MaxResults = v
	}
	if v := viper.GetString("ai.provider"); v != "" {
		cfg.AI.Provider = v
	}
	if v := viper.GetString("ai.model"); v != "" {
		cfg.AI.Model = v
	}
	if v := viper.GetInt("ai.max_tokens"); v > 0 {
		cfg.AI.MaxTokens = v
	}
	if v := viper.GetString("cache.dir"); v != "" {
		cfg.Cache.Dir = v
	}
	if v := viper.GetDuration("cache.ttl"); v > 0 {
		cfg.Cache.TTL = v
	}
	if viper.IsSet("cache.disabled") {
		cfg.Cache.Disabled = viper.GetBool("cache.disabled")
	}
	if v := viper.GetInt("research.max_depth"); v > 0 {
		cfg.Research.MaxDepth = v
	}
	if v := viper.GetDuration("research.followup_timeout"); v > 0 {
		cfg.Research.FollowupTimeout = v
	}

	cfg.Search.APIKey = resolveKey(viper.GetString("search.api_key"), "SERPAPI_KEY", "serpapi-api-key")
	env, secret := providerKeyNames(cfg.AI.Provider)
	cfg.AI.APIKey = resolveKey(viper.GetString("ai.api_key"), env, secret)

	return cfg
}

// resolveKey picks an API key: explicit config wins, then the environment,
// then the .secrets/ directory.
func resolveKey(explicit, envName, secretName string) string {
	if explicit != "" {
		return explicit
	}
	if v := os.Getenv(envName); v != "" {
		return v
	}
	return loadedSecrets[secretName]
}

func providerKeyNames(provider string) (env, secret string) {
	switch provider {
	case "anthropic":
		return "ANTHROPIC_API_KEY", "anthropic-api-key"
	case "gemini":
		return "GEMINI_API_KEY", "gemini-api-key"
	default:
		return "OPENAI_API_KEY", "openai-api-key"
	}
}

// stack wires the configured components together for one command invocation.
type stack struct {
	cfg      types.Config
	store    *cache.Store
	provider search.Provider
	synth    *synth.Synthesizer
}

func newStack(cfg types.Config) (*stack, error) {
	if cfg.Search.APIKey == "" {
		return nil, fmt.Errorf("missing search API key: set SERPAPI_KEY or .secrets/serpapi-api-key")
	}
	if cfg.AI.APIKey == "" {
		env, secret := providerKeyNames(cfg.AI.Provider)
		return nil, fmt.Errorf("missing %s API key: set %s or .secrets/%s", cfg.AI.Provider, env, secret)
	}

	var store *cache.Store
	if !cfg.Cache.Disabled {
		var err error
		store, err = cache.Open(cfg.Cache)
		if err != nil {
			// Run without a cache rather than failing the whole command.
			fmt.Fprintf(os.Stderr, "warning: cache unavailable: %v\n", err)
			store = nil
		}
	}

	backend := &search.SerpAPIBackend{
		APIKey: cfg.Search.APIKey,
		Client: &http.Client{Timeout: cfg.Search.Timeout},
		Config: cfg.Search,
	}

	gen, err := llm.New(cfg.AI.APIKey, cfg.AI)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, err
	}

	return &stack{
		cfg:      cfg,
		store:    store,
		provider: search.NewCached(backend, store),
		synth:    synth.New(gen, store),
	}, nil
}

func (s *stack) Close() {
	if s.store != nil {
		s.store.Close()
	}
}
