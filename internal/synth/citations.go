// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package synth

import (
	"regexp"
	"sort"
	"strconv"

	"github.com/pdiddy/answer-engine/pkg/types"
)

// citationRe matches inline numeric citations like [1], [2], [12].
var citationRe = regexp.MustCompile(`\[(\d+)\]`)

// ExtractCitations scans text for bracketed citation indices and returns
// them deduplicated and sorted ascending.
func ExtractCitations(text string) []int {
	seen := make(map[int]bool)
	var citations []int
	for _, match := range citationRe.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(match[1])
		if err != nil || seen[n] {
			continue
		}
		seen[n] = true
		citations = append(citations, n)
	}
	sort.Ints(citations)
	return citations
}

// ValidCitations drops citation indices that have no corresponding entry in
// the result set the answer was generated from, so dangling citations never
// reach the caller.
func ValidCitations(citations []int, results []types.SearchResult) []int {
	known := make(map[int]bool, len(results))
	for _, r := range results {
		known[r.Index] = true
	}
	var valid []int
	for _, c := range citations {
		if known[c] {
			valid = append(valid, c)
		}
	}
	return valid
}
