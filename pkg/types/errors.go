// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// ProviderError wraps a failure from an external collaborator (search or
// generation). Callers match it with errors.As to distinguish provider
// failures from local ones; the core never retries a ProviderError itself.
type ProviderError struct {
	// Provider names the failing collaborator (e.g. "serpapi", "openai").
	Provider string

	// Op is the operation that failed (e.g. "search", "stream").
	Op string

	// Err is the underlying cause.
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
