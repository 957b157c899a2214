// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries a web search API and returns indexed results ready
// for citation. Backends implement the Provider interface; the rest of the
// system never sees provider-specific wire formats.
package search

import (
	"context"
	"net/url"
	"strings"

	"github.com/pdiddy/answer-engine/pkg/types"
)

// Provider searches the web. count bounds the number of organic results; a
// provider may additionally return a featured answer-box entry at index 0.
// Zero results is not an error. Transport and quota failures are returned as
// *types.ProviderError.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string, count int) ([]types.SearchResult, error)
}

// hostOf extracts the host portion of a link for use as a fallback source
// label. Returns "" when the link does not parse.
func hostOf(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Host, "www.")
}
