package playlist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"moodlist/internal/models"
	"moodlist/internal/search"
	"moodlist/internal/services"
)

// Terminal, end-user-visible failures of a generation request. Everything
// else in the pipeline is best effort.
var (
	ErrNoSuggestions    = errors.New("no song suggestions were produced for the prompt")
	ErrNoTracksResolved = errors.New("none of the suggested songs could be resolved")
)

// Suggester produces song candidates for a prompt
type Suggester interface {
	Suggest(ctx context.Context, prompt string, count int) ([]services.SongSuggestion, error)
}

// VideoResolver matches a query to playable videos
type VideoResolver interface {
	Resolve(ctx context.Context, query string, maxResults int) ([]search.ResolvedVideo, error)
}

// TrackFilter removes tracks that are not genuine individual songs
type TrackFilter interface {
	Filter(ctx context.Context, tracks []models.Track) []models.Track
}

// Generator orchestrates the full pipeline: suggest, resolve concurrently,
// filter, dedupe, assemble. A failed resolution task contributes nothing; a
// request only fails when no suggestions or no tracks at all come back.
type Generator struct {
	suggester       Suggester
	resolver        VideoResolver
	filter          TrackFilter
	assembler       *Assembler
	suggestionCount int
	concurrency     int // 0 = one task per suggestion, no bound
}

// NewGenerator creates a playlist generator
func NewGenerator(suggester Suggester, resolver VideoResolver, filter TrackFilter, assembler *Assembler, suggestionCount, concurrency int) *Generator {
	return &Generator{
		suggester:       suggester,
		resolver:        resolver,
		filter:          filter,
		assembler:       assembler,
		suggestionCount: suggestionCount,
		concurrency:     concurrency,
	}
}

// Generate runs one end-to-end generation request. count overrides the
// configured suggestion count when positive. No partial playlist is ever
// returned: the result is either a persisted playlist or an error.
func (g *Generator) Generate(ctx context.Context, prompt, name string, count int) (*models.Playlist, error) {
	if count <= 0 {
		count = g.suggestionCount
	}

	suggestions, err := g.suggester.Suggest(ctx, prompt, count)
	if err != nil {
		return nil, fmt.Errorf("suggestion stage failed: %w", err)
	}
	if len(suggestions) == 0 {
		return nil, ErrNoSuggestions
	}
	slog.Info("suggestions received", "prompt", prompt, "count", len(suggestions))

	tracks := g.resolveAll(ctx, suggestions)
	if len(tracks) == 0 {
		return nil, ErrNoTracksResolved
	}
	slog.Info("tracks resolved", "resolved", len(tracks), "suggested", len(suggestions))

	kept := g.filter.Filter(ctx, tracks)
	unique := Dedupe(kept)

	pl, err := g.assembler.Assemble(ctx, prompt, name, unique)
	if err != nil {
		return nil, err
	}

	slog.Info("playlist generated",
		"playlistID", pl.ID,
		"name", pl.Name,
		"trackCount", pl.Stats.TrackCount)
	return pl, nil
}

// resolveAll fans out one resolution task per suggestion and joins on all of
// them. Per-task failures and empty results are logged and swallowed.
func (g *Generator) resolveAll(ctx context.Context, suggestions []services.SongSuggestion) []models.Track {
	results := make([]*models.Track, len(suggestions))

	var sem chan struct{}
	if g.concurrency > 0 {
		sem = make(chan struct{}, g.concurrency)
	}

	var wg sync.WaitGroup
	for i, s := range suggestions {
		wg.Add(1)
		go func(i int, s services.SongSuggestion) {
			defer wg.Done()
			if sem != nil {
				sem <- struct{}{}
				defer func() { <-sem }()
			}

			query := s.Artist + " " + s.Title + " audio"
			videos, err := g.resolver.Resolve(ctx, query, 1)
			if err != nil {
				slog.Warn("resolution failed for suggestion",
					"title", s.Title,
					"artist", s.Artist,
					"error", err)
				return
			}
			if len(videos) == 0 {
				slog.Debug("no video match for suggestion", "title", s.Title, "artist", s.Artist)
				return
			}

			v := videos[0]
			results[i] = &models.Track{
				ID:              v.ProviderID,
				Title:           v.Title,
				Artist:          s.Artist,
				DurationSeconds: v.DurationSeconds,
				ThumbnailURL:    v.ThumbnailURL,
				ProviderID:      v.ProviderID,
			}
		}(i, s)
	}
	wg.Wait()

	tracks := make([]models.Track, 0, len(results))
	for _, t := range results {
		if t != nil {
			tracks = append(tracks, *t)
		}
	}
	return tracks
}
