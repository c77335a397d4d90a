package repositories

import (
	"context"
	"errors"

	"moodlist/internal/models"
)

// ErrNotFound is returned by delete operations when no playlist matched the
// given ID. Lookups return (nil, nil) on a miss instead.
var ErrNotFound = errors.New("playlist not found")

// PlaylistRepository defines the interface for playlist data access
type PlaylistRepository interface {
	// Save creates or replaces a playlist document
	Save(ctx context.Context, playlist *models.Playlist) error

	// FindByID finds a playlist by its ID, returning (nil, nil) when absent
	FindByID(ctx context.Context, id string) (*models.Playlist, error)

	// FindAll returns all playlists, newest first
	FindAll(ctx context.Context) ([]*models.Playlist, error)

	// DeleteByID deletes a playlist, returning ErrNotFound when absent
	DeleteByID(ctx context.Context, id string) error

	// Count returns the total number of stored playlists
	Count(ctx context.Context) (int64, error)
}
