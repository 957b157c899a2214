// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package synth

import (
	"strings"
	"testing"

	"github.com/pdiddy/answer-engine/pkg/types"
)

func TestScoreBounds(t *testing.T) {
	tests := []struct {
		name   string
		result types.SearchResult
	}{
		{"empty", types.SearchResult{}},
		{"everything", types.SearchResult{
			Link:    "https://www.nytimes.com/a",
			Date:    "2024-01-01",
			Snippet: strings.Repeat("a", 300),
		}},
		{"untrusted short", types.SearchResult{Link: "https://random-blog.com/p", Snippet: "short"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := Score(tt.result)
			if score < 0.0 || score > 1.0 {
				t.Errorf("Score = %v, want within [0, 1]", score)
			}
		})
	}
}

func TestScoreTrustedSource(t *testing.T) {
	r := types.SearchResult{
		Link:    "https://www.nytimes.com/article",
		Snippet: strings.Repeat("A", 200),
		Date:    "2024-01-01",
	}
	if score := Score(r); score <= 0.8 {
		t.Errorf("trusted dated long-snippet source scored %v, want > 0.8", score)
	}
}

func TestScoreUntrustedSource(t *testing.T) {
	r := types.SearchResult{
		Link:    "https://random-blog.com/post",
		Snippet: "Short",
	}
	if score := Score(r); score >= 0.7 {
		t.Errorf("untrusted undated short-snippet source scored %v, want < 0.7", score)
	}
}

func TestScoreTrustedDomainDoesNotStack(t *testing.T) {
	// A link matching multiple allowlist entries earns the bonus once.
	r := types.SearchResult{Link: "https://www.bbc.co.uk/news/bbc.com-story"}
	if score := Score(r); score != 0.8 {
		t.Errorf("score = %v, want 0.8 (base + one domain bonus)", score)
	}
}

func TestScoreSnippetBoundary(t *testing.T) {
	at := types.SearchResult{Snippet: strings.Repeat("a", 150)}
	over := types.SearchResult{Snippet: strings.Repeat("a", 151)}
	if Score(at) != 0.5 {
		t.Errorf("150-char snippet scored %v, want 0.5", Score(at))
	}
	if Score(over) != 0.6 {
		t.Errorf("151-char snippet scored %v, want 0.6", Score(over))
	}
}

func TestRankSortsByScoreDescending(t *testing.T) {
	results := []types.SearchResult{
		{Index: 1, Link: "https://random-blog.com/a", Snippet: "short"},
		{Index: 2, Link: "https://www.reuters.com/b", Date: "2024-02-02", Snippet: strings.Repeat("a", 200)},
		{Index: 3, Link: "https://wikipedia.org/c"},
	}

	ranked := Rank(results)
	if ranked[0].Index != 2 {
		t.Errorf("best result index = %d, want 2", ranked[0].Index)
	}
	if ranked[1].Index != 3 {
		t.Errorf("second result index = %d, want 3", ranked[1].Index)
	}
	for _, r := range ranked {
		if r.QualityScore == 0 {
			t.Errorf("result %d has no quality score", r.Index)
		}
	}

	// Input order untouched.
	if results[0].QualityScore != 0 {
		t.Error("Rank mutated its input")
	}
}

func TestRankStableOnTies(t *testing.T) {
	// Identical scores keep provider order.
	results := []types.SearchResult{
		{Index: 1, Link: "https://a.example.com"},
		{Index: 2, Link: "https://b.example.com"},
		{Index: 3, Link: "https://c.example.com"},
	}
	ranked := Rank(results)
	for i, r := range ranked {
		if r.Index != i+1 {
			t.Fatalf("tie order disturbed: %+v", ranked)
		}
	}
}
