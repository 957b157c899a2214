// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agent

import (
	"regexp"
	"strings"
)

const maxFollowups = 3

// conceptRe matches multi-word capitalized phrases, the candidate named
// entities and concepts in a synthesized answer.
var conceptRe = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)+\b`)

// FollowupQueries derives follow-up queries for the next research round from
// the round's query and synthesized response. Query-shape templates come
// first, then concept expansions, truncated to three in that order.
func FollowupQueries(query, response string) []string {
	lower := strings.ToLower(query)

	var followups []string
	if strings.Contains(lower, "how") {
		followups = append(followups,
			query+" technical details",
			query+" step by step process")
	}
	if strings.Contains(lower, "compare") {
		followups = append(followups,
			query+" advantages disadvantages",
			query+" real world examples")
	}
	for _, concept := range Concepts(response, 2) {
		followups = append(followups, "explain "+concept+" in detail")
	}

	if len(followups) > maxFollowups {
		followups = followups[:maxFollowups]
	}
	return followups
}

// Concepts extracts up to max distinct multi-word capitalized phrases from
// text, in order of first appearance.
func Concepts(text string, max int) []string {
	seen := make(map[string]bool)
	var concepts []string
	for _, match := range conceptRe.FindAllString(text, -1) {
		if len(concepts) >= max {
			break
		}
		if seen[match] {
			continue
		}
		seen[match] = true
		concepts = append(concepts, match)
	}
	return concepts
}
