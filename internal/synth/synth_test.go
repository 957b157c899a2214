// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package synth

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/answer-engine/internal/cache"
	"github.com/pdiddy/answer-engine/internal/llm"
	"github.com/pdiddy/answer-engine/pkg/types"
)

// fakeGenerator scripts provider behavior for synthesizer tests.
type fakeGenerator struct {
	model        string
	fragments    []string
	streamErr    error
	completeText string
	completeErr  error

	streamCalls   int
	completeCalls int
	lastStreamReq llm.Request
}

func (f *fakeGenerator) Name() string { return "fake" }

func (f *fakeGenerator) Model(req llm.Request) string {
	if req.Model != "" {
		return req.Model
	}
	return f.model
}

func (f *fakeGenerator) Stream(ctx context.Context, req llm.Request, chunks chan<- string) error {
	f.streamCalls++
	f.lastStreamReq = req
	for _, fragment := range f.fragments {
		select {
		case chunks <- fragment:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if f.streamErr != nil {
		return f.streamErr
	}
	return nil
}

func (f *fakeGenerator) Complete(_ context.Context, _ llm.Request) (string, error) {
	f.completeCalls++
	return f.completeText, f.completeErr
}

func testResults() []types.SearchResult {
	return []types.SearchResult{
		{Index: 1, Title: "First", Link: "https://www.nytimes.com/a", Source: "nytimes.com", Snippet: strings.Repeat("a", 200), Date: "2024-01-01"},
		{Index: 2, Title: "Second", Link: "https://random-blog.com/b", Source: "random-blog.com", Snippet: "short"},
	}
}

// collect drains a synthesis stream, returning the fragments in order.
func collect(t *testing.T, s *Synthesizer, ctx context.Context, query string, results []types.SearchResult) ([]string, Answer) {
	t.Helper()
	out := make(chan string)
	var answer Answer
	done := make(chan struct{})
	go func() {
		answer = s.Synthesize(ctx, query, results, out)
		close(done)
	}()

	var fragments []string
	for fragment := range out {
		fragments = append(fragments, fragment)
	}
	<-done
	return fragments, answer
}

func TestSynthesizeStreamsAndAssembles(t *testing.T) {
	gen := &fakeGenerator{
		model:     "gpt-4o-mini",
		fragments: []string{"Transformers ", "use attention [1]", " and scale well [2]."},
	}
	s := New(gen, nil)

	fragments, answer := collect(t, s, context.Background(), "how do transformers work", testResults())

	if len(fragments) != 3 {
		t.Fatalf("got %d fragments, want 3: %v", len(fragments), fragments)
	}
	wantText := "Transformers use attention [1] and scale well [2]."
	if answer.Text != wantText {
		t.Errorf("Text = %q, want %q", answer.Text, wantText)
	}
	if !reflect.DeepEqual(answer.Citations, []int{1, 2}) {
		t.Errorf("Citations = %v, want [1 2]", answer.Citations)
	}
	if answer.FromCache || answer.Err != nil {
		t.Errorf("unexpected answer flags: %+v", answer)
	}
}

func TestSynthesizeDropsDanglingCitations(t *testing.T) {
	gen := &fakeGenerator{model: "m", fragments: []string{"Cited [1] and dangling [9]."}}
	s := New(gen, nil)

	_, answer := collect(t, s, context.Background(), "q", testResults())
	if !reflect.DeepEqual(answer.Citations, []int{1}) {
		t.Errorf("Citations = %v, want [1]", answer.Citations)
	}
}

func TestSynthesizePromptIncludesContextBlocks(t *testing.T) {
	gen := &fakeGenerator{model: "m", fragments: []string{"ok"}}
	s := New(gen, nil)

	collect(t, s, context.Background(), "test query", Rank(testResults()))

	prompt := gen.lastStreamReq.Prompt
	for _, want := range []string{
		"Query: test query",
		"[1] First",
		"Source: nytimes.com",
		"URL: https://www.nytimes.com/a",
		"(high quality source)",
		"[2] Second",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if gen.lastStreamReq.System == "" {
		t.Error("system prompt not set")
	}
}

func TestSynthesizeProviderFailureDegrades(t *testing.T) {
	provErr := &types.ProviderError{Provider: "fake", Op: "stream", Err: errors.New("quota exceeded")}
	gen := &fakeGenerator{model: "m", fragments: []string{"partial "}, streamErr: provErr}
	s := New(gen, nil)

	fragments, answer := collect(t, s, context.Background(), "q", testResults())

	if answer.Err == nil {
		t.Fatal("degraded answer should carry the provider error")
	}
	last := fragments[len(fragments)-1]
	if !strings.Contains(last, "generation failed") {
		t.Errorf("missing diagnostic fragment, got %v", fragments)
	}
	if answer.Text != "partial " {
		t.Errorf("Text = %q, want accumulated partial text", answer.Text)
	}
}

func TestSynthesizeCachesSuccessfulAnswer(t *testing.T) {
	store, err := cache.OpenInMemory(time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	gen := &fakeGenerator{model: "gpt-4o-mini", fragments: []string{"answer [1]"}}
	s := New(gen, store)

	_, first := collect(t, s, context.Background(), "q", testResults())
	if first.FromCache {
		t.Fatal("first call should not hit the cache")
	}

	fragments, second := collect(t, s, context.Background(), "q", testResults())
	if !second.FromCache {
		t.Fatal("second call should hit the cache")
	}
	if gen.streamCalls != 1 {
		t.Errorf("provider called %d times, want 1", gen.streamCalls)
	}
	if len(fragments) != 1 || fragments[0] != "answer [1]" {
		t.Errorf("cache hit should arrive as one fragment: %v", fragments)
	}
	if !reflect.DeepEqual(second.Citations, []int{1}) {
		t.Errorf("Citations = %v, want [1]", second.Citations)
	}
}

func TestSynthesizeCacheMissOnModelChange(t *testing.T) {
	store, err := cache.OpenInMemory(time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	gen := &fakeGenerator{model: "model-a", fragments: []string{"answer"}}
	s := New(gen, store)
	collect(t, s, context.Background(), "q", testResults())

	// Same query under a different model regenerates.
	gen.model = "model-b"
	_, answer := collect(t, s, context.Background(), "q", testResults())
	if answer.FromCache {
		t.Error("answer cached under model-a must not serve model-b")
	}
	if gen.streamCalls != 2 {
		t.Errorf("provider called %d times, want 2", gen.streamCalls)
	}
}

func TestSynthesizeFailedStreamNotCached(t *testing.T) {
	store, err := cache.OpenInMemory(time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	gen := &fakeGenerator{model: "m", fragments: []string{"partial"}, streamErr: errors.New("boom")}
	s := New(gen, store)
	collect(t, s, context.Background(), "q", testResults())

	if _, ok := store.Get("q", types.CacheAIResponse); ok {
		t.Error("failed stream must not write a cache entry")
	}
}

func TestSynthesizeCancelledStreamNotCached(t *testing.T) {
	store, err := cache.OpenInMemory(time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	gen := &fakeGenerator{model: "m", fragments: []string{"one", "two", "three"}}
	s := New(gen, store)

	out := make(chan string)
	done := make(chan struct{})
	go func() {
		s.Synthesize(ctx, "q", testResults(), out)
		close(done)
	}()

	// Read one fragment, then cancel and drain.
	<-out
	cancel()
	for range out {
	}
	<-done

	if _, ok := store.Get("q", types.CacheAIResponse); ok {
		t.Error("cancelled stream must not write a cache entry")
	}
}

func TestFollowUpQuestionsParsesNumberedList(t *testing.T) {
	gen := &fakeGenerator{
		model: "m",
		completeText: `1. What are attention heads?
2.  How does positional encoding work?
3) Why do transformers scale?`,
	}
	s := New(gen, nil)

	got := s.FollowUpQuestions(context.Background(), "q", testResults())
	want := []string{
		"What are attention heads?",
		"How does positional encoding work?",
		"Why do transformers scale?",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FollowUpQuestions = %v, want %v", got, want)
	}
}

func TestFollowUpQuestionsCapsAtFive(t *testing.T) {
	var list strings.Builder
	for i := 1; i <= 8; i++ {
		fmt.Fprintf(&list, "%d. Question %d\n", i, i)
	}
	gen := &fakeGenerator{model: "m", completeText: list.String()}
	s := New(gen, nil)

	got := s.FollowUpQuestions(context.Background(), "q", testResults())
	if len(got) != 5 {
		t.Errorf("got %d questions, want 5", len(got))
	}
}

func TestFollowUpQuestionsProviderFailure(t *testing.T) {
	gen := &fakeGenerator{model: "m", completeErr: errors.New("quota exceeded")}
	s := New(gen, nil)

	got := s.FollowUpQuestions(context.Background(), "q", testResults())
	if len(got) != 1 || !strings.Contains(got[0], "quota exceeded") {
		t.Errorf("degraded follow-ups = %v, want single error description", got)
	}
}

func TestParseNumberedList(t *testing.T) {
	items := ParseNumberedList("intro text\n1. first\nnot numbered\n2. second", 5)
	want := []string{"first", "second"}
	if !reflect.DeepEqual(items, want) {
		t.Errorf("ParseNumberedList = %v, want %v", items, want)
	}
}
