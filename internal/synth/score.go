// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package synth turns ranked search results into a streamed, citation-
// annotated answer. It scores source quality, builds the generation prompt,
// forwards fragments as they arrive, extracts citations from the assembled
// text, and derives follow-up questions.
package synth

import (
	"sort"
	"strings"

	"github.com/pdiddy/answer-engine/pkg/types"
)

// trustedDomains is the fixed allowlist of publishers that raise a result's
// quality score. Matching is substring-on-link; the first hit counts, further
// hits do not stack.
var trustedDomains = []string{
	"nytimes.com",
	"wsj.com",
	"reuters.com",
	"apnews.com",
	"bbc.com",
	"bbc.co.uk",
	"theguardian.com",
	"bloomberg.com",
	"economist.com",
	"nature.com",
	"science.org",
	"wikipedia.org",
	".gov",
	".edu",
}

// longSnippetLen is the snippet length above which a result earns the
// substantive-content bonus.
const longSnippetLen = 150

// HighQualityThreshold marks results called out as high quality in the
// generation prompt.
const HighQualityThreshold = 0.7

// Score rates the quality of one search result between 0.0 and 1.0: base
// 0.5, +0.3 for a trusted domain, +0.1 for a dated result, +0.1 for a
// substantive snippet. Deterministic and side-effect-free.
func Score(r types.SearchResult) float64 {
	score := 0.5

	for _, domain := range trustedDomains {
		if strings.Contains(r.Link, domain) {
			score += 0.3
			break
		}
	}

	if strings.TrimSpace(r.Date) != "" {
		score += 0.1
	}

	if len(r.Snippet) > longSnippetLen {
		score += 0.1
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

// Rank returns a copy of results with quality scores assigned, sorted by
// score descending. The sort is stable: ties keep provider order, which
// reflects the provider's own relevance ranking.
func Rank(results []types.SearchResult) []types.SearchResult {
	ranked := make([]types.SearchResult, len(results))
	copy(ranked, results)
	for i := range ranked {
		ranked[i].QualityScore = Score(ranked[i])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].QualityScore > ranked[j].QualityScore
	})
	return ranked
}
