// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the answer-engine pipeline:
// search results, cache entries, research sessions, and stage configuration.
package types

// FeaturedIndex is the reserved index for a provider-supplied answer-box
// result, inserted ahead of the organic results.
const FeaturedIndex = 0

// SearchResult represents one web search result returned by a search provider.
// Organic results are numbered from 1 in provider order; index 0 is reserved
// for a featured answer-box entry. QualityScore is computed by the synthesis
// stage, not supplied by the provider, and a result is immutable once scored.
type SearchResult struct {
	// Index is the 1-based citation index of this result (0 for a featured
	// answer-box entry).
	Index int `json:"index" yaml:"index"`

	// Title is the result title as returned by the provider.
	Title string `json:"title" yaml:"title"`

	// Link is the result URL.
	Link string `json:"link" yaml:"link"`

	// Source names the publisher. When the provider omits it, the host
	// portion of Link is used.
	Source string `json:"source" yaml:"source"`

	// Snippet is the provider's text excerpt for the result.
	Snippet string `json:"snippet" yaml:"snippet"`

	// Date is the publication date string as returned by the provider.
	// Empty when the provider supplies none.
	Date string `json:"date,omitempty" yaml:"date,omitempty"`

	// QualityScore is a value between 0.0 and 1.0 assigned by the source
	// quality scorer.
	QualityScore float64 `json:"quality_score" yaml:"quality_score"`
}
