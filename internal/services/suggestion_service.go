package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// SongSuggestion is a (title, artist) pair proposed by the completion model,
// not yet verified to exist on any provider.
type SongSuggestion struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

const suggestionSystemPrompt = `You are a music curator. Suggest real, existing songs matching the listener's mood or activity.

Rules:
- Only suggest songs that actually exist, with their exact title and artist name.
- Prefer a diverse set of artists; at most two songs per artist.
- Respond with ONLY a JSON array, no prose, no markdown fences.

Output format:
[{"title": "Song Title", "artist": "Artist Name"}, ...]`

// SuggestionGenerator asks the completion service for song candidates.
// It fails closed: an unreachable service or an unparseable response is an
// error, never a guessed result.
type SuggestionGenerator struct {
	completion CompletionService
}

// NewSuggestionGenerator creates a new suggestion generator
func NewSuggestionGenerator(completion CompletionService) *SuggestionGenerator {
	return &SuggestionGenerator{completion: completion}
}

// Suggest returns up to count suggestions for a free-text prompt. The model
// may return fewer; the list is truncated but never padded.
func (s *SuggestionGenerator) Suggest(ctx context.Context, prompt string, count int) ([]SongSuggestion, error) {
	userPrompt := fmt.Sprintf("Suggest %d songs for: %s", count, prompt)

	var raw string
	err := withRetry(ctx, func() error {
		var cerr error
		raw, cerr = completeWithDeadline(ctx, s.completion, suggestionSystemPrompt, userPrompt, 0.8, 2048)
		return cerr
	})
	if err != nil {
		return nil, err
	}

	arrayText, err := extractJSONArray("suggestion", raw)
	if err != nil {
		return nil, err
	}

	var parsed []SongSuggestion
	if err := json.Unmarshal([]byte(arrayText), &parsed); err != nil {
		return nil, &FormatError{
			Service: "suggestion",
			Message: "array is not a list of title/artist objects",
			Snippet: snippet(arrayText),
			Err:     err,
		}
	}

	suggestions := make([]SongSuggestion, 0, len(parsed))
	for _, p := range parsed {
		p.Title = strings.TrimSpace(p.Title)
		p.Artist = strings.TrimSpace(p.Artist)
		if p.Title == "" || p.Artist == "" {
			continue
		}
		suggestions = append(suggestions, p)
	}

	if len(suggestions) > count {
		suggestions = suggestions[:count]
	}

	return suggestions, nil
}
