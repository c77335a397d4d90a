package models

// Track is a playable entry resolved against a video provider. ID and
// ProviderID carry the same value: downstream consumers address tracks by ID
// while the resolver addresses them by ProviderID.
type Track struct {
	ID              string `bson:"id" json:"id"`
	Title           string `bson:"title" json:"title"`
	Artist          string `bson:"artist" json:"artist"`
	DurationSeconds int    `bson:"duration_seconds" json:"duration_seconds"`
	ThumbnailURL    string `bson:"thumbnail_url,omitempty" json:"thumbnail_url,omitempty"`
	ProviderID      string `bson:"provider_id" json:"provider_id"`
}

// Playlist is the persisted result of one successful generation request. It
// owns its track slice; re-saves replace the whole document by ID.
type Playlist struct {
	ID        string        `bson:"_id" json:"id"`
	Name      string        `bson:"name" json:"name"`
	Tracks    []Track       `bson:"tracks" json:"tracks"`
	CreatedAt int64         `bson:"created_at" json:"created_at"` // epoch milliseconds
	Stats     PlaylistStats `bson:"stats" json:"stats"`
}

// PlaylistStats aggregates track metadata at assembly time.
type PlaylistStats struct {
	TotalDurationSeconds int     `bson:"total_duration_seconds" json:"total_duration_seconds"`
	TrackCount           int     `bson:"track_count" json:"track_count"`
	AverageEnergy        float64 `bson:"average_energy" json:"average_energy"`
	AverageTempo         float64 `bson:"average_tempo" json:"average_tempo"`
}

// AverageEnergy and AverageTempo are fixed placeholders. No audio analysis
// happens anywhere in this service.
const (
	PlaceholderEnergy = 0.7
	PlaceholderTempo  = 120
)

// ComputeStats derives playlist stats from a track list.
func ComputeStats(tracks []Track) PlaylistStats {
	total := 0
	for _, t := range tracks {
		total += t.DurationSeconds
	}
	return PlaylistStats{
		TotalDurationSeconds: total,
		TrackCount:           len(tracks),
		AverageEnergy:        PlaceholderEnergy,
		AverageTempo:         PlaceholderTempo,
	}
}
