// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package synth

import (
	"reflect"
	"testing"

	"github.com/pdiddy/answer-engine/pkg/types"
)

func TestExtractCitations(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []int
	}{
		{
			name: "deduplicated and ascending",
			text: "This is a fact [1]. Another fact [2]. And one more [1].",
			want: []int{1, 2},
		},
		{
			name: "out of order",
			text: "See [3] and [1].",
			want: []int{1, 3},
		},
		{
			name: "multi digit",
			text: "Late sources [12] and [2].",
			want: []int{2, 12},
		},
		{
			name: "featured answer index",
			text: "The answer box says so [0].",
			want: []int{0},
		},
		{
			name: "no citations",
			text: "Nothing bracketed here.",
			want: nil,
		},
		{
			name: "ignores non-numeric brackets",
			text: "As shown in [Smith 2020] and [2].",
			want: []int{2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractCitations(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractCitations(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestValidCitationsDropsDangling(t *testing.T) {
	results := []types.SearchResult{
		{Index: 0},
		{Index: 1},
		{Index: 2},
	}

	got := ValidCitations([]int{0, 1, 2, 7}, results)
	want := []int{0, 1, 2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ValidCitations = %v, want %v", got, want)
	}
}

func TestValidCitationsEmptyResults(t *testing.T) {
	if got := ValidCitations([]int{1, 2}, nil); got != nil {
		t.Errorf("ValidCitations with no results = %v, want nil", got)
	}
}
