// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package synth

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/answer-engine/internal/cache"
	"github.com/pdiddy/answer-engine/internal/llm"
	"github.com/pdiddy/answer-engine/pkg/types"
)

const answerSystemPrompt = `You are a helpful AI assistant that provides comprehensive answers based on search results.
You must cite your sources using [number] format inline with your response.
Always base your answers on the provided search results and cite them appropriately.
If the search results don't contain enough information, acknowledge this limitation.
Format your response in a clear, well-structured manner.`

const followUpSystemPrompt = `You are an AI assistant that generates relevant follow-up questions based on a user's query and the search results.
Provide a list of 3-5 insightful questions that the user might ask next.
Return the questions as a numbered list.`

// maxFollowUpQuestions caps the parsed follow-up question list.
const maxFollowUpQuestions = 5

// numberedItemRe matches one item of a numbered list, e.g. "1. What next?".
var numberedItemRe = regexp.MustCompile(`(?m)^\s*\d+[.)]\s*(.+)$`)

// Synthesizer generates cited answers from ranked search results. The cache
// is optional; when present, answers are cached per (query, model) and a hit
// is returned as a single fragment instead of a live stream.
type Synthesizer struct {
	gen   llm.Generator
	store *cache.Store
}

// New creates a Synthesizer. store may be nil to disable response caching.
func New(gen llm.Generator, store *cache.Store) *Synthesizer {
	return &Synthesizer{gen: gen, store: store}
}

// Answer is the assembled result of one synthesis call.
type Answer struct {
	// Text is the full synthesized answer.
	Text string

	// Citations holds the indices cited in Text, deduplicated, ascending,
	// and validated against the result set (dangling indices are dropped).
	Citations []int

	// Model is the model that produced (or originally produced, for cache
	// hits) the answer.
	Model string

	// FromCache reports whether the answer was served from the cache.
	FromCache bool

	// Err carries the provider failure for a degraded answer. The failure is
	// also surfaced as a diagnostic fragment on the stream; it never
	// propagates as a call error.
	Err error
}

// cachedAnswer is the payload stored under types.CacheAIResponse.
type cachedAnswer struct {
	Response string `json:"response"`
	Model    string `json:"model"`
}

// Synthesize streams a citation-annotated answer for query over results.
//
// Fragments are forwarded to out as they arrive from the provider and the
// full text is accumulated for citation extraction. out is closed before
// Synthesize returns, so a closed channel is the caller's end-of-stream
// signal. A provider failure terminates the stream early with one diagnostic
// fragment and a degraded Answer; it never panics or errors past the stream
// boundary. A cancelled or failed synthesis is not written to the cache.
func (s *Synthesizer) Synthesize(ctx context.Context, query string, results []types.SearchResult, out chan<- string) Answer {
	defer close(out)

	model := s.gen.Model(llm.Request{})

	if cached, ok := s.cachedResponse(query, model); ok {
		select {
		case out <- cached:
		case <-ctx.Done():
		}
		return Answer{
			Text:      cached,
			Citations: ValidCitations(ExtractCitations(cached), results),
			Model:     model,
			FromCache: true,
		}
	}

	req := llm.Request{
		System: answerSystemPrompt,
		Prompt: buildAnswerPrompt(query, results),
	}

	chunks := make(chan string)
	errc := make(chan error, 1)
	go func() {
		errc <- s.gen.Stream(ctx, req, chunks)
		close(chunks)
	}()

	var text strings.Builder
forward:
	for {
		select {
		case chunk, ok := <-chunks:
			if !ok {
				break forward
			}
			text.WriteString(chunk)
			select {
			case out <- chunk:
			case <-ctx.Done():
			}
		case <-ctx.Done():
			break forward
		}
	}
	err := <-errc

	answer := Answer{
		Text:  text.String(),
		Model: model,
	}

	if err != nil {
		answer.Err = err
		if ctx.Err() == nil {
			select {
			case out <- fmt.Sprintf("\n[generation failed: %v]", err):
			case <-ctx.Done():
			}
		}
	} else if ctx.Err() == nil && answer.Text != "" {
		s.storeResponse(query, model, answer.Text)
	}

	answer.Citations = ValidCitations(ExtractCitations(answer.Text), results)
	return answer
}

// FollowUpQuestions asks the provider for follow-up questions as a numbered
// list and returns up to five parsed items. A provider failure degrades to a
// single-element list describing the failure.
func (s *Synthesizer) FollowUpQuestions(ctx context.Context, query string, results []types.SearchResult) []string {
	var blocks strings.Builder
	for _, r := range results {
		fmt.Fprintf(&blocks, "[%d] %s\n", r.Index, r.Snippet)
	}

	prompt := fmt.Sprintf("Query: %s\n\nSearch Results:\n%s\nBased on the above, what are some relevant follow-up questions?",
		query, blocks.String())

	content, err := s.gen.Complete(ctx, llm.Request{
		System:    followUpSystemPrompt,
		Prompt:    prompt,
		MaxTokens: 200,
	})
	if err != nil {
		return []string{fmt.Sprintf("follow-up question generation failed: %v", err)}
	}

	return ParseNumberedList(content, maxFollowUpQuestions)
}

// ParseNumberedList extracts up to max trimmed items from a numbered list.
func ParseNumberedList(text string, max int) []string {
	var items []string
	for _, match := range numberedItemRe.FindAllStringSubmatch(text, -1) {
		item := strings.TrimSpace(match[1])
		if item == "" {
			continue
		}
		items = append(items, item)
		if len(items) == max {
			break
		}
	}
	return items
}

// buildAnswerPrompt assembles the per-result context blocks and the final
// user prompt sent to the generation provider.
func buildAnswerPrompt(query string, results []types.SearchResult) string {
	var blocks strings.Builder
	for _, r := range results {
		fmt.Fprintf(&blocks, "[%d] %s\n", r.Index, r.Title)
		fmt.Fprintf(&blocks, "Source: %s\n", r.Source)
		fmt.Fprintf(&blocks, "Content: %s\n", r.Snippet)
		fmt.Fprintf(&blocks, "URL: %s\n", r.Link)
		if r.QualityScore >= HighQualityThreshold {
			fmt.Fprintf(&blocks, "Quality: %.2f (high quality source)\n", r.QualityScore)
		} else {
			fmt.Fprintf(&blocks, "Quality: %.2f\n", r.QualityScore)
		}
		blocks.WriteString("\n")
	}

	return fmt.Sprintf(`Query: %s

Search Results:
%s
Please provide a comprehensive answer to the query based on these search results.
Include inline citations [1], [2], etc. when referencing specific information from the search results.
Make sure to synthesize information from multiple sources when relevant.`, query, blocks.String())
}

func (s *Synthesizer) cachedResponse(query, model string) (string, bool) {
	if s.store == nil {
		return "", false
	}
	payload, ok := s.store.Get(query, types.CacheAIResponse)
	if !ok {
		return "", false
	}
	var cached cachedAnswer
	if err := json.Unmarshal(payload, &cached); err != nil || cached.Model != model {
		return "", false
	}
	return cached.Response, true
}

func (s *Synthesizer) storeResponse(query, model, text string) {
	if s.store == nil {
		return
	}
	payload, err := json.Marshal(cachedAnswer{Response: text, Model: model})
	if err != nil {
		return
	}
	// A failed cache write is not worth failing the answer over.
	s.store.Set(query, types.CacheAIResponse, payload)
}
