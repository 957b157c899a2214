// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package optimize rewrites search queries into more specific alternatives.
// Every function is pure: the current time is an argument, never read from a
// global clock, so rewriting is deterministic and testable.
package optimize

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// maxAlternatives caps the alternatives returned per query. Earlier rules
// take priority when truncating.
const maxAlternatives = 3

var (
	temporalMarkers = []string{"latest", "recent", "today", "now"}
	newsMarkers     = []string{"news", "headlines", "breaking", "events"}
	questionWords   = []string{"how", "why", "when", "where", "what"}
	vagueIndicators = []string{"latest", "news", "trending", "current", "what is", "how to"}

	comparisonSplitRe = regexp.MustCompile(`\s+vs\s+|\s+versus\s+|difference between\s+`)
	yearRe            = regexp.MustCompile(`\b\d{4}\b`)
)

// Optimize returns the original query unchanged together with up to three
// alternative phrasings. The rewriting rules apply independently and their
// candidates are unioned in rule order: temporal, comparative, entity, news,
// interrogative.
func Optimize(query string, now time.Time) (string, []string) {
	lower := strings.ToLower(strings.TrimSpace(query))
	var alternatives []string

	// Temporal: anchor recency-marked queries to the current month.
	if containsAny(lower, temporalMarkers) {
		alternatives = append(alternatives, fmt.Sprintf("%s %s %d", query, now.Month(), now.Year()))
	}

	// Comparative: restate "<A> vs <B>" two ways.
	if strings.Contains(lower, " vs ") || strings.Contains(lower, " versus ") ||
		strings.Contains(lower, "compare") || strings.Contains(lower, "difference between") {
		parts := comparisonSplitRe.Split(lower, -1)
		if len(parts) >= 2 {
			a := strings.TrimSpace(parts[0])
			b := strings.TrimSpace(parts[1])
			if a != "" && b != "" {
				alternatives = append(alternatives,
					fmt.Sprintf("%s compared to %s", a, b),
					fmt.Sprintf("%s %s comparison", a, b))
			}
		}
	}

	// Entity: strip the "what is"/"who is" prefix and ask about the entity
	// directly.
	for _, prefix := range []string{"what is ", "who is "} {
		if strings.HasPrefix(lower, prefix) {
			entity := strings.TrimSpace(strings.TrimPrefix(lower, prefix))
			if entity != "" {
				alternatives = append(alternatives,
					entity+" company overview",
					entity+" about information")
			}
			break
		}
	}

	// News: pin undated news queries to the current year, and expand the
	// bare "news" keyword.
	if containsAny(lower, newsMarkers) {
		if strings.Contains(lower, "news") && !yearRe.MatchString(lower) {
			alternatives = append(alternatives, fmt.Sprintf("%s %d", query, now.Year()))
		}
		if strings.Contains(query, "news") {
			alternatives = append(alternatives, strings.Replace(query, "news", "latest news updates", 1))
		}
	}

	// Interrogative: question queries get educational variants.
	for _, word := range questionWords {
		if strings.HasPrefix(lower, word) {
			alternatives = append(alternatives, query+" explained", query+" complete guide")
			break
		}
	}

	if len(alternatives) > maxAlternatives {
		alternatives = alternatives[:maxAlternatives]
	}
	return query, alternatives
}

// ShouldUseAlternatives reports whether a query is vague enough that trying
// alternative phrasings is worthwhile.
func ShouldUseAlternatives(query string) bool {
	return containsAny(strings.ToLower(query), vagueIndicators)
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
