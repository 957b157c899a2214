// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFollowupQueries(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		response string
		want     []string
	}{
		{
			name:     "how query gets technical templates",
			query:    "how do solar panels work",
			response: "no concepts here",
			want: []string{
				"how do solar panels work technical details",
				"how do solar panels work step by step process",
			},
		},
		{
			name:     "compare query gets tradeoff templates",
			query:    "compare sql and nosql",
			response: "no concepts here",
			want: []string{
				"compare sql and nosql advantages disadvantages",
				"compare sql and nosql real world examples",
			},
		},
		{
			name:     "concepts fill remaining slots",
			query:    "how do solar panels work",
			response: "Uses the Photovoltaic Effect discovered by Alexandre Becquerel.",
			want: []string{
				"how do solar panels work technical details",
				"how do solar panels work step by step process",
				"explain Photovoltaic Effect in detail",
			},
		},
		{
			name:     "concept-only query",
			query:    "quantum entanglement",
			response: "Described in the Einstein Podolsky Rosen paper and Bell Theorem.",
			want: []string{
				"explain Einstein Podolsky Rosen in detail",
				"explain Bell Theorem in detail",
			},
		},
		{
			name:     "nothing to expand",
			query:    "quantum entanglement",
			response: "lowercase only text",
			want:     nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FollowupQueries(tt.query, tt.response))
		})
	}
}

func TestFollowupQueriesCapped(t *testing.T) {
	// Both template families plus concepts would yield six candidates.
	got := FollowupQueries("how to compare databases", "First Concept and Second Concept.")
	assert.Len(t, got, 3)
	assert.Equal(t, []string{
		"how to compare databases technical details",
		"how to compare databases step by step process",
		"how to compare databases advantages disadvantages",
	}, got)
}

func TestConcepts(t *testing.T) {
	text := "The Calvin Cycle follows the Calvin Cycle and the Krebs Cycle and the Electron Transport Chain."

	assert.Equal(t, []string{"Calvin Cycle", "Krebs Cycle"}, Concepts(text, 2),
		"duplicates are skipped and extraction stops at max")
	assert.Empty(t, Concepts("no capitalized phrases here", 2))
	assert.Empty(t, Concepts("Single words Only match When paired", 0))
}
