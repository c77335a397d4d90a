package testutil

import (
	"fmt"

	"moodlist/internal/models"
)

// Common video IDs used across tests
const (
	TestVideoID1 = "dQw4w9WgXcQ"
	TestVideoID2 = "kJQP7kiw5Fk"
	TestVideoID3 = "9bZkp7q19f0"
)

// TrackBuilder provides a fluent interface for creating test tracks
type TrackBuilder struct {
	track models.Track
}

// NewTrackBuilder creates a new track builder with default values
func NewTrackBuilder() *TrackBuilder {
	return &TrackBuilder{
		track: models.Track{
			ID:              TestVideoID1,
			Title:           "Test Song (Official Audio)",
			Artist:          "Test Artist",
			DurationSeconds: 240,
			ThumbnailURL:    "https://example.com/thumb.jpg",
			ProviderID:      TestVideoID1,
		},
	}
}

// WithID sets the track ID and provider ID together
func (b *TrackBuilder) WithID(id string) *TrackBuilder {
	b.track.ID = id
	b.track.ProviderID = id
	return b
}

// WithTitle sets the track title
func (b *TrackBuilder) WithTitle(title string) *TrackBuilder {
	b.track.Title = title
	return b
}

// WithArtist sets the track artist
func (b *TrackBuilder) WithArtist(artist string) *TrackBuilder {
	b.track.Artist = artist
	return b
}

// WithDuration sets the track duration in seconds
func (b *TrackBuilder) WithDuration(seconds int) *TrackBuilder {
	b.track.DurationSeconds = seconds
	return b
}

// Build returns the constructed track
func (b *TrackBuilder) Build() models.Track {
	return b.track
}

// SampleTracks returns n distinct tracks for list-shaped tests
func SampleTracks(n int) []models.Track {
	tracks := make([]models.Track, n)
	for i := range tracks {
		id := fmt.Sprintf("video-%03d", i)
		tracks[i] = NewTrackBuilder().
			WithID(id).
			WithTitle(fmt.Sprintf("Song %d (Official Audio)", i)).
			WithArtist(fmt.Sprintf("Artist %d", i)).
			Build()
	}
	return tracks
}

// SamplePlaylist returns a playlist wrapping the given tracks
func SamplePlaylist(id, name string, tracks []models.Track) *models.Playlist {
	return &models.Playlist{
		ID:        id,
		Name:      name,
		Tracks:    tracks,
		CreatedAt: 1700000000000,
		Stats:     models.ComputeStats(tracks),
	}
}

// SuggestionsJSON builds the JSON array a suggestion model would emit for
// the given title/artist pairs. pairs must have even length.
func SuggestionsJSON(pairs ...string) string {
	if len(pairs)%2 != 0 {
		panic("SuggestionsJSON requires title/artist pairs")
	}

	out := "["
	for i := 0; i < len(pairs); i += 2 {
		if i > 0 {
			out += ","
		}
		out += fmt.Sprintf(`{"title":%q,"artist":%q}`, pairs[i], pairs[i+1])
	}
	return out + "]"
}
