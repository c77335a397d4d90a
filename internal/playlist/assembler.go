package playlist

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"moodlist/internal/models"
	"moodlist/internal/repositories"
)

// Phrases stripped from a prompt before deriving a playlist name. Anchored on
// word boundaries so "playful" and "musical" survive; "playlist" is listed
// before "play" because alternation prefers the earlier branch.
var fillerPattern = regexp.MustCompile(`\b(give me|i want|playlist|songs|music|play)\b`)

// Short stop words that survive the length cut but carry no meaning.
var stopWords = map[string]bool{
	"some":  true,
	"that":  true,
	"this":  true,
	"with":  true,
	"about": true,
	"like":  true,
	"want":  true,
	"need":  true,
	"from":  true,
	"have":  true,
	"make":  true,
}

// Assembler builds the final playlist entity and persists it before the
// pipeline reports success.
type Assembler struct {
	repo repositories.PlaylistRepository
}

// NewAssembler creates a new playlist assembler
func NewAssembler(repo repositories.PlaylistRepository) *Assembler {
	return &Assembler{repo: repo}
}

// Assemble names, stamps, and persists a playlist. When name is empty one is
// derived from the prompt. The track slice is copied; the playlist owns it.
func (a *Assembler) Assemble(ctx context.Context, prompt, name string, tracks []models.Track) (*models.Playlist, error) {
	if name == "" {
		name = nameFromPrompt(prompt)
	}

	owned := make([]models.Track, len(tracks))
	copy(owned, tracks)

	pl := &models.Playlist{
		ID:        newPlaylistID(),
		Name:      name,
		Tracks:    owned,
		CreatedAt: time.Now().UnixMilli(),
		Stats:     models.ComputeStats(owned),
	}

	if err := a.repo.Save(ctx, pl); err != nil {
		return nil, fmt.Errorf("failed to save playlist: %w", err)
	}

	return pl, nil
}

// nameFromPrompt derives a short display name from the user's prompt: strip
// filler phrases, keep the first three meaningful tokens longer than three
// characters, title-case them.
func nameFromPrompt(prompt string) string {
	cleaned := fillerPattern.ReplaceAllString(strings.ToLower(prompt), " ")

	var kept []string
	for _, token := range strings.Fields(cleaned) {
		if len(token) <= 3 || stopWords[token] {
			continue
		}
		kept = append(kept, titleCase(token))
		if len(kept) == 3 {
			break
		}
	}

	if len(kept) == 0 {
		return "Playlist " + time.Now().Format("Jan 2, 2006")
	}
	return strings.Join(kept, " ")
}

func titleCase(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}

// newPlaylistID returns an opaque unique ID: creation time plus a random
// suffix. No global sequence is needed.
func newPlaylistID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}
