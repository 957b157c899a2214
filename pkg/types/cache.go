// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// CacheType distinguishes the kinds of payload the cache stores. The type is
// part of the content-addressed key, so search results and AI responses for
// the same query never collide.
type CacheType string

const (
	CacheSearch     CacheType = "search"
	CacheAIResponse CacheType = "ai_response"
)

// CacheEntry is the self-contained record the cache persists per key. The
// payload is opaque to the store; callers serialize and interpret it.
type CacheEntry struct {
	// Key is the content-addressed key derived from (Query, Type).
	Key string `json:"key" yaml:"key"`

	// CreatedAt is the write time, stored as RFC 3339.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// Query is the original query text the entry was stored under.
	Query string `json:"query" yaml:"query"`

	// Type is the payload kind: search or ai_response.
	Type CacheType `json:"type" yaml:"type"`

	// Payload is the stored data, serialized by the caller.
	Payload []byte `json:"payload" yaml:"payload"`
}
