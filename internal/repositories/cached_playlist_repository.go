package repositories

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"moodlist/internal/cache"
	"moodlist/internal/models"
)

// cachedPlaylistRepository wraps a PlaylistRepository with caching
type cachedPlaylistRepository struct {
	repository PlaylistRepository
	cache      cache.Cache
}

// NewCachedPlaylistRepository creates a new cached playlist repository
func NewCachedPlaylistRepository(repository PlaylistRepository, cache cache.Cache) PlaylistRepository {
	return &cachedPlaylistRepository{
		repository: repository,
		cache:      cache,
	}
}

func playlistIDKey(id string) string { return "playlist:id:" + id }

const playlistCacheTTL = 1 * time.Hour

// Save writes through to the repository and invalidates the cache entry
func (r *cachedPlaylistRepository) Save(ctx context.Context, playlist *models.Playlist) error {
	if err := r.repository.Save(ctx, playlist); err != nil {
		return err
	}

	r.cache.Delete(ctx, playlistIDKey(playlist.ID))
	return nil
}

// FindByID checks cache first, then repository
func (r *cachedPlaylistRepository) FindByID(ctx context.Context, id string) (*models.Playlist, error) {
	cacheKey := playlistIDKey(id)

	if cached, err := r.getFromCache(ctx, cacheKey); err == nil && cached != nil {
		return cached, nil
	}

	playlist, err := r.repository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if playlist != nil {
		r.cacheResult(ctx, cacheKey, playlist)
	}

	return playlist, nil
}

// FindAll is not cached: the listing changes on every generation and the
// documents themselves are cached individually.
func (r *cachedPlaylistRepository) FindAll(ctx context.Context) ([]*models.Playlist, error) {
	return r.repository.FindAll(ctx)
}

// DeleteByID invalidates cache and deletes from repository
func (r *cachedPlaylistRepository) DeleteByID(ctx context.Context, id string) error {
	if err := r.repository.DeleteByID(ctx, id); err != nil {
		return err
	}

	r.cache.Delete(ctx, playlistIDKey(id))
	return nil
}

// Count is not cached as it changes frequently
func (r *cachedPlaylistRepository) Count(ctx context.Context) (int64, error) {
	return r.repository.Count(ctx)
}

// getFromCache retrieves a playlist from cache
func (r *cachedPlaylistRepository) getFromCache(ctx context.Context, key string) (*models.Playlist, error) {
	data, err := r.cache.Get(ctx, key)
	if err != nil || data == nil {
		return nil, err
	}

	var playlist models.Playlist
	if err := json.Unmarshal(data, &playlist); err != nil {
		slog.Error("Failed to unmarshal playlist from cache", "key", key, "error", err)
		r.cache.Delete(ctx, key)
		return nil, err
	}

	return &playlist, nil
}

// cacheResult caches a single playlist
func (r *cachedPlaylistRepository) cacheResult(ctx context.Context, key string, playlist *models.Playlist) {
	data, err := json.Marshal(playlist)
	if err != nil {
		slog.Error("Failed to marshal playlist for cache", "key", key, "error", err)
		return
	}

	if err := r.cache.Set(ctx, key, data, playlistCacheTTL); err != nil {
		slog.Error("Failed to cache playlist", "key", key, "error", err)
	}
}
