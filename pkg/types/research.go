// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ResearchRound records one completed round of an autonomous research session:
// the query that was searched, the synthesized response, and the depth at
// which the round ran.
type ResearchRound struct {
	Query    string `json:"query" yaml:"query"`
	Response string `json:"response" yaml:"response"`
	Depth    int    `json:"depth" yaml:"depth"`
}

// ResearchContext is the accumulated state of one research session. It lives
// only for the lifetime of the owning agent and is never persisted; the
// session ID exists so transcripts and diagnostics can be correlated.
type ResearchContext struct {
	// SessionID uniquely identifies the session.
	SessionID string `json:"session_id" yaml:"session_id"`

	// Query is the query that started the session.
	Query string `json:"query" yaml:"query"`

	// Depth is the depth of the most recently completed round.
	Depth int `json:"depth" yaml:"depth"`

	// History holds the completed rounds in order.
	History []ResearchRound `json:"history" yaml:"history"`
}

// ResearchOutcome is the structured result of one research round.
//
// A terminal round has Complete set with Reason explaining why ("max depth"
// or "sufficient information"); Results carries the round's search results
// when the session stopped because they sufficed. A non-terminal round
// carries the derived follow-up queries, the pooled results of searching
// them, and ShouldContinue, which tells the caller whether another round may
// still run. The agent never recurses on its own.
type ResearchOutcome struct {
	Complete          bool           `json:"complete" yaml:"complete"`
	Reason            string         `json:"reason,omitempty" yaml:"reason,omitempty"`
	Results           []SearchResult `json:"results,omitempty" yaml:"results,omitempty"`
	FollowupQueries   []string       `json:"followup_queries,omitempty" yaml:"followup_queries,omitempty"`
	AdditionalContext []SearchResult `json:"additional_context,omitempty" yaml:"additional_context,omitempty"`
	Depth             int            `json:"depth" yaml:"depth"`
	ShouldContinue    bool           `json:"should_continue" yaml:"should_continue"`
}
