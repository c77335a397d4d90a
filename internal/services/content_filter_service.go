package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"moodlist/internal/models"
)

const filterSystemPrompt = `You are reviewing video search results for a music playlist. Each line is one candidate track.

Reject: compilations, full albums, podcasts, extended or looped versions, mashups, unlabeled karaoke, lyric-only videos.
Accept: official audio, official video, live performances, acoustic versions, credited remixes and covers, standard music videos.

Respond with ONLY a JSON array of the index numbers to KEEP, for example: [0, 2, 3]. No prose, no markdown fences.`

// ContentFilter asks the completion model which resolved tracks are genuine
// individual songs. It fails open: losing a whole playlist to a filtering
// hiccup is worse than occasionally keeping one compilation, so any internal
// error returns the input unchanged.
type ContentFilter struct {
	completion CompletionService
}

// NewContentFilter creates a new content filter
func NewContentFilter(completion CompletionService) *ContentFilter {
	return &ContentFilter{completion: completion}
}

// Filter returns the subset of tracks judged to be individual songs,
// preserving input order.
func (f *ContentFilter) Filter(ctx context.Context, tracks []models.Track) []models.Track {
	if len(tracks) == 0 {
		return tracks
	}

	var b strings.Builder
	for i, t := range tracks {
		fmt.Fprintf(&b, "%d: %q by %s\n", i, t.Title, t.Artist)
	}

	var raw string
	err := withRetry(ctx, func() error {
		var cerr error
		raw, cerr = completeWithDeadline(ctx, f.completion, filterSystemPrompt, b.String(), 0.2, 1024)
		return cerr
	})
	if err != nil {
		slog.Warn("content filter unavailable, keeping all tracks", "error", err, "trackCount", len(tracks))
		return tracks
	}

	arrayText, err := extractJSONArray("filter", raw)
	if err != nil {
		slog.Warn("content filter response unparseable, keeping all tracks", "error", err)
		return tracks
	}

	var keep []int
	if err := json.Unmarshal([]byte(arrayText), &keep); err != nil {
		slog.Warn("content filter indices unparseable, keeping all tracks", "error", err)
		return tracks
	}

	keepSet := make(map[int]bool, len(keep))
	for _, idx := range keep {
		// Out-of-range indices are dropped silently
		if idx >= 0 && idx < len(tracks) {
			keepSet[idx] = true
		}
	}

	kept := make([]models.Track, 0, len(keepSet))
	for i, t := range tracks {
		if keepSet[i] {
			kept = append(kept, t)
		}
	}

	slog.Info("content filter applied", "input", len(tracks), "kept", len(kept))
	return kept
}
