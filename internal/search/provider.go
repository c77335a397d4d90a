package search

import (
	"context"
	"fmt"
)

// ResolvedVideo is one provider match for a search query. Duration is always
// normalized to whole seconds before this type is constructed; an unknown
// duration is 0, never absent.
type ResolvedVideo struct {
	ProviderID      string `json:"provider_id"`
	Title           string `json:"title"`
	Channel         string `json:"channel"`
	ThumbnailURL    string `json:"thumbnail_url"`
	DurationSeconds int    `json:"duration_seconds"`
}

// VideoProvider is one tier in the resolution fallback chain. A successful
// empty result is not an error: only transport, credential, and status
// failures should return one.
type VideoProvider interface {
	// Name returns the name of this provider
	Name() string

	// Search resolves a free-text query to at most maxResults videos
	Search(ctx context.Context, query string, maxResults int) ([]ResolvedVideo, error)
}

// ProviderError represents an error from a video provider
type ProviderError struct {
	Provider  string
	Operation string
	Message   string
	Err       error
}

func (e *ProviderError) Error() string {
	msg := e.Provider + " " + e.Operation + " failed"
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += " - " + e.Err.Error()
	}
	return msg
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// AllProvidersExhaustedError reports that every tier failed for one query.
type AllProvidersExhaustedError struct {
	Query    string
	Failures []error
}

func (e *AllProvidersExhaustedError) Error() string {
	return fmt.Sprintf("all providers exhausted for query %q (%d tiers failed)", e.Query, len(e.Failures))
}
