package repositories

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"moodlist/internal/models"
)

// mongoPlaylistRepository implements PlaylistRepository using MongoDB
type mongoPlaylistRepository struct {
	collection *mongo.Collection
}

// NewMongoPlaylistRepository creates a new MongoDB-backed playlist repository
func NewMongoPlaylistRepository(db *models.Database) PlaylistRepository {
	return &mongoPlaylistRepository{
		collection: db.DB.Collection("playlists"),
	}
}

// Save creates or replaces a playlist document. Playlist IDs are generated
// by the assembler, so an upsert covers both insert and update.
func (r *mongoPlaylistRepository) Save(ctx context.Context, playlist *models.Playlist) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": playlist.ID}, playlist, opts)
	if err != nil {
		return fmt.Errorf("failed to save playlist: %w", err)
	}
	return nil
}

// FindByID finds a playlist by its ID
func (r *mongoPlaylistRepository) FindByID(ctx context.Context, id string) (*models.Playlist, error) {
	var playlist models.Playlist
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&playlist)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find playlist by ID: %w", err)
	}
	return &playlist, nil
}

// FindAll returns all playlists sorted by creation time, newest first
func (r *mongoPlaylistRepository) FindAll(ctx context.Context) ([]*models.Playlist, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}
	defer cursor.Close(ctx)

	var playlists []*models.Playlist
	for cursor.Next(ctx) {
		var playlist models.Playlist
		if err := cursor.Decode(&playlist); err != nil {
			slog.Error("Failed to decode playlist", "error", err)
			continue
		}
		playlists = append(playlists, &playlist)
	}

	return playlists, cursor.Err()
}

// DeleteByID deletes a playlist by its ID
func (r *mongoPlaylistRepository) DeleteByID(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}

	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// Count returns the total number of playlists in the collection
func (r *mongoPlaylistRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count playlists: %w", err)
	}
	return count, nil
}
