package search

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"moodlist/internal/cache"
)

const defaultMaxResults = 5

// Resolver resolves a free-text query to playable videos, trying providers in
// a fixed tier order until one succeeds. Results are cached per query so
// repeated prompts don't burn provider quota.
type Resolver struct {
	providers []VideoProvider
	cache     cache.Cache
	cacheTTL  time.Duration
}

// NewResolver creates a resolver over an ordered provider chain. The cache is
// optional; pass nil to disable result caching.
func NewResolver(providers []VideoProvider, c cache.Cache, cacheTTL time.Duration) *Resolver {
	return &Resolver{
		providers: providers,
		cache:     c,
		cacheTTL:  cacheTTL,
	}
}

// Resolve returns at most maxResults videos for the query. It fails with
// AllProvidersExhaustedError only when every tier failed; a tier answering
// with zero hits is a successful empty result.
func (r *Resolver) Resolve(ctx context.Context, query string, maxResults int) ([]ResolvedVideo, error) {
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	cacheKey := fmt.Sprintf("resolve:%d:%s", maxResults, query)
	if cached := r.fromCache(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	var failures []error
	for _, provider := range r.providers {
		videos, err := provider.Search(ctx, query, maxResults)
		if err != nil {
			slog.Warn("provider search failed, falling through",
				"provider", provider.Name(),
				"query", query,
				"error", err)
			failures = append(failures, err)
			continue
		}

		if len(videos) > maxResults {
			videos = videos[:maxResults]
		}
		r.toCache(ctx, cacheKey, videos)
		return videos, nil
	}

	return nil, &AllProvidersExhaustedError{
		Query:    query,
		Failures: failures,
	}
}

func (r *Resolver) fromCache(ctx context.Context, key string) []ResolvedVideo {
	if r.cache == nil {
		return nil
	}

	data, err := r.cache.Get(ctx, key)
	if err != nil || data == nil {
		return nil
	}

	var videos []ResolvedVideo
	if err := json.Unmarshal(data, &videos); err != nil {
		slog.Debug("discarding corrupt cached resolution", "key", key, "error", err)
		return nil
	}
	return videos
}

func (r *Resolver) toCache(ctx context.Context, key string, videos []ResolvedVideo) {
	if r.cache == nil {
		return
	}

	data, err := json.Marshal(videos)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, key, data, r.cacheTTL); err != nil {
		// Cache failures never affect resolution
		slog.Debug("failed to cache resolution", "key", key, "error", err)
	}
}
