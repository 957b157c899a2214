// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package agent runs depth-bounded autonomous research sessions. Each round
// searches, decides whether the results suffice, and when they do not,
// synthesizes an answer and fans out follow-up searches. The agent never
// recurses on its own; the caller drives successive rounds off
// ResearchOutcome.ShouldContinue.
package agent

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/answer-engine/internal/optimize"
	"github.com/pdiddy/answer-engine/internal/search"
	"github.com/pdiddy/answer-engine/internal/synth"
	"github.com/pdiddy/answer-engine/pkg/types"
)

// sparsityThreshold is the minimum aggregate snippet length below which
// results are considered too thin for direct synthesis.
const sparsityThreshold = 500

// analyticalIndicators mark queries that warrant multi-round research
// regardless of how rich the initial results are.
var analyticalIndicators = []string{
	"how does", "explain", "compare", "analyze",
	"what are the implications", "why does",
}

// Agent owns one research session. It is not safe for concurrent use;
// concurrent sessions each get their own Agent.
type Agent struct {
	search          search.Provider
	synth           *synth.Synthesizer
	maxDepth        int
	timeout         time.Duration
	initialResults  int
	followupResults int
	w               io.Writer
	now             func() time.Time

	session types.ResearchContext
	visited map[string]bool
}

// New builds an agent for a single session. searchCfg supplies the result
// counts for initial and follow-up searches; diagnostics are written to w,
// pass io.Discard to silence them.
func New(provider search.Provider, s *synth.Synthesizer, searchCfg types.SearchConfig, researchCfg types.ResearchConfig, w io.Writer) *Agent {
	defaults := types.DefaultConfig()
	if researchCfg.MaxDepth <= 0 {
		researchCfg.MaxDepth = defaults.Research.MaxDepth
	}
	if researchCfg.FollowupTimeout <= 0 {
		researchCfg.FollowupTimeout = defaults.Research.FollowupTimeout
	}
	if searchCfg.MaxResults <= 0 {
		searchCfg.MaxResults = defaults.Search.MaxResults
	}
	if searchCfg.FollowupResults <= 0 {
		searchCfg.FollowupResults = defaults.Search.FollowupResults
	}
	if w == nil {
		w = io.Discard
	}
	return &Agent{
		search:          provider,
		synth:           s,
		maxDepth:        researchCfg.MaxDepth,
		timeout:         researchCfg.FollowupTimeout,
		initialResults:  searchCfg.MaxResults,
		followupResults: searchCfg.FollowupResults,
		w:               w,
		now:             time.Now,
		session:         types.ResearchContext{SessionID: uuid.NewString()},
		visited:         make(map[string]bool),
	}
}

// SetClock overrides the time source used for query optimization. Tests use
// it to pin temporal rewrites.
func (a *Agent) SetClock(clock func() time.Time) { a.now = clock }

// Session returns a snapshot of the session state accumulated so far.
func (a *Agent) Session() types.ResearchContext { return a.session }

// ShouldDeepResearch reports whether query needs multi-round research: true
// when the query matches an analytical indicator, or when the summed snippet
// length across results falls below the sparsity threshold. Either condition
// alone forces expansion.
func ShouldDeepResearch(query string, results []types.SearchResult) bool {
	lower := strings.ToLower(query)
	for _, indicator := range analyticalIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}

	total := 0
	for _, r := range results {
		total += len(r.Snippet)
	}
	return total < sparsityThreshold
}

// Research runs one round at the given depth and returns its outcome. Search
// and synthesis failures degrade within the round rather than aborting the
// session; the only returned error is context cancellation.
func (a *Agent) Research(ctx context.Context, query string, depth int) (types.ResearchOutcome, error) {
	if depth >= a.maxDepth {
		return types.ResearchOutcome{Complete: true, Reason: "max depth", Depth: depth}, nil
	}
	if a.session.Query == "" {
		a.session.Query = query
	}
	a.visited[visitKey(query)] = true

	results := a.searchRound(ctx, query)
	if err := ctx.Err(); err != nil {
		return types.ResearchOutcome{}, err
	}

	if !ShouldDeepResearch(query, results) {
		return types.ResearchOutcome{
			Complete: true,
			Reason:   "sufficient information",
			Results:  results,
			Depth:    depth,
		}, nil
	}

	response := a.synthesizeRound(ctx, query, results)
	if err := ctx.Err(); err != nil {
		return types.ResearchOutcome{}, err
	}
	a.session.History = append(a.session.History, types.ResearchRound{
		Query:    query,
		Response: response,
		Depth:    depth,
	})
	a.session.Depth = depth

	followups := a.filterVisited(FollowupQueries(query, response))
	additional := a.fanOut(ctx, followups)
	if err := ctx.Err(); err != nil {
		return types.ResearchOutcome{}, err
	}

	return types.ResearchOutcome{
		FollowupQueries:   followups,
		AdditionalContext: additional,
		Depth:             depth,
		ShouldContinue:    depth < a.maxDepth-1,
	}, nil
}

// searchRound searches for the round's query, falling back to optimizer
// alternatives when a vague query comes back empty. Failures degrade to an
// empty result set.
func (a *Agent) searchRound(ctx context.Context, query string) []types.SearchResult {
	results, err := a.search.Search(ctx, query, a.initialResults)
	if err != nil {
		fmt.Fprintf(a.w, "search %q failed: %v\n", query, err)
		results = nil
	}
	if len(results) > 0 || !optimize.ShouldUseAlternatives(query) {
		return results
	}

	_, alternatives := optimize.Optimize(query, a.now())
	for _, alt := range alternatives {
		results, err = a.search.Search(ctx, alt, a.initialResults)
		if err != nil {
			fmt.Fprintf(a.w, "search %q failed: %v\n", alt, err)
			continue
		}
		if len(results) > 0 {
			return results
		}
	}
	return nil
}

// synthesizeRound consumes the full synthesis stream for the round and
// returns the assembled response text.
func (a *Agent) synthesizeRound(ctx context.Context, query string, results []types.SearchResult) string {
	out := make(chan string)
	done := make(chan synth.Answer, 1)
	go func() {
		done <- a.synth.Synthesize(ctx, query, synth.Rank(results), out)
	}()
	for range out {
	}
	answer := <-done

	if answer.Err != nil {
		fmt.Fprintf(a.w, "synthesis for %q failed: %v\n", query, answer.Err)
	}
	if answer.Text == "" {
		return "no response generated"
	}
	return answer.Text
}

// filterVisited drops follow-ups already searched this session and marks the
// survivors as visited.
func (a *Agent) filterVisited(followups []string) []string {
	var kept []string
	for _, q := range followups {
		key := visitKey(q)
		if a.visited[key] {
			continue
		}
		a.visited[key] = true
		kept = append(kept, q)
	}
	return kept
}

// fanOut searches the follow-up queries in parallel with a per-call timeout
// and pools their results, preserving follow-up order. A slow or failing
// follow-up contributes nothing; it never blocks or fails the round.
func (a *Agent) fanOut(ctx context.Context, queries []string) []types.SearchResult {
	if len(queries) == 0 {
		return nil
	}

	pooled := make([][]types.SearchResult, len(queries))
	errs := make([]error, len(queries))
	var g errgroup.Group
	for i, q := range queries {
		g.Go(func() error {
			callCtx, cancel := context.WithTimeout(ctx, a.timeout)
			defer cancel()

			pooled[i], errs[i] = a.search.Search(callCtx, q, a.followupResults)
			return nil
		})
	}
	_ = g.Wait()

	for i, err := range errs {
		if err != nil {
			fmt.Fprintf(a.w, "follow-up search %q failed: %v\n", queries[i], err)
			pooled[i] = nil
		}
	}

	var all []types.SearchResult
	for _, results := range pooled {
		all = append(all, results...)
	}
	return all
}

func visitKey(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}
