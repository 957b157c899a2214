// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pdiddy/answer-engine/internal/httputil"
	"github.com/pdiddy/answer-engine/pkg/types"
)

// serpAPIBase is the SerpAPI search endpoint. Declared as a var so tests can
// substitute an httptest server.
var serpAPIBase = "https://serpapi.com/search.json"

// SerpAPIBackend queries SerpAPI's Google engine.
type SerpAPIBackend struct {
	APIKey string
	Client *http.Client
	Config types.SearchConfig
}

// Name returns the backend identifier.
func (b *SerpAPIBackend) Name() string { return "serpapi" }

// Search runs a Google search through SerpAPI. Organic results are numbered
// from 1 in provider order; a featured answer box, when present, is inserted
// at index 0 ahead of them.
func (b *SerpAPIBackend) Search(ctx context.Context, query string, count int) ([]types.SearchResult, error) {
	if count <= 0 {
		count = b.Config.MaxResults
	}
	if count <= 0 {
		count = 5
	}

	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", query)
	params.Set("num", strconv.Itoa(count))
	params.Set("hl", "en")
	params.Set("gl", "us")
	params.Set("api_key", b.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, serpAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", b.Config.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, b.Client, req, 0)
	if err != nil {
		return nil, &types.ProviderError{Provider: "serpapi", Op: "search", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &types.ProviderError{
			Provider: "serpapi",
			Op:       "search",
			Err:      fmt.Errorf("HTTP %d", resp.StatusCode),
		}
	}

	var body serpResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &types.ProviderError{Provider: "serpapi", Op: "search", Err: fmt.Errorf("parsing response: %w", err)}
	}
	if body.Error != "" {
		return nil, &types.ProviderError{Provider: "serpapi", Op: "search", Err: fmt.Errorf("%s", body.Error)}
	}

	var results []types.SearchResult
	for i, r := range body.OrganicResults {
		if i >= count {
			break
		}
		source := r.Source
		if source == "" {
			source = hostOf(r.Link)
		}
		results = append(results, types.SearchResult{
			Index:   i + 1,
			Title:   r.Title,
			Link:    r.Link,
			Source:  source,
			Snippet: r.Snippet,
			Date:    r.Date,
		})
	}

	if body.AnswerBox != nil {
		snippet := body.AnswerBox.Answer
		if snippet == "" {
			snippet = body.AnswerBox.Snippet
		}
		featured := types.SearchResult{
			Index:   types.FeaturedIndex,
			Title:   "Featured Answer",
			Link:    body.AnswerBox.Link,
			Source:  "Answer Box",
			Snippet: snippet,
		}
		results = append([]types.SearchResult{featured}, results...)
	}

	return results, nil
}

// SerpAPI response JSON structures. Only the fields the engine consumes.
type serpResponse struct {
	Error          string          `json:"error"`
	OrganicResults []serpOrganic   `json:"organic_results"`
	AnswerBox      *serpAnswerBox  `json:"answer_box"`
}

type serpOrganic struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
	Source  string `json:"source"`
	Date    string `json:"date"`
}

type serpAnswerBox struct {
	Answer  string `json:"answer"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
}
