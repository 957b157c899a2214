// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pdiddy/answer-engine/internal/cache"
	"github.com/pdiddy/answer-engine/internal/httputil"
	"github.com/pdiddy/answer-engine/pkg/types"
)

// CachedProvider wraps a Provider with a content-addressed result cache.
// Hits bypass the backend entirely; misses and unreadable entries fall
// through to it. Cache write failures are diagnostic only and never surface
// as search errors.
type CachedProvider struct {
	backend Provider
	store   *cache.Store
}

// NewCached wraps backend with store. A nil store disables caching.
func NewCached(backend Provider, store *cache.Store) *CachedProvider {
	return &CachedProvider{backend: backend, store: store}
}

func (p *CachedProvider) Name() string { return p.backend.Name() }

func (p *CachedProvider) Search(ctx context.Context, query string, count int) ([]types.SearchResult, error) {
	if p.store != nil {
		if payload, ok := p.store.Get(query, types.CacheSearch); ok {
			var results []types.SearchResult
			if err := json.Unmarshal(payload, &results); err == nil {
				if len(results) > count {
					results = results[:count]
				}
				return results, nil
			}
		}
	}

	results, err := p.backend.Search(ctx, query, count)
	if err != nil {
		return nil, err
	}

	if p.store != nil && len(results) > 0 {
		payload, err := json.Marshal(results)
		if err == nil {
			err = p.store.Set(query, types.CacheSearch, payload)
		}
		if err != nil {
			fmt.Fprintf(httputil.Diagnostics, "cache write for %q failed: %v\n", query, err)
		}
	}

	return results, nil
}
