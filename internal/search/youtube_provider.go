package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	youtubeAPIBaseURL    = "https://www.googleapis.com/youtube/v3"
	youtubeMusicCategory = "10"
)

// youtubeProvider is the primary indexed search tier. It needs at least one
// API key; a missing credential or any non-success HTTP status falls through
// to the next tier without retrying here.
type youtubeProvider struct {
	client  *resty.Client
	creds   CredentialSelector
	baseURL string
}

// NewYouTubeProvider creates the primary-tier provider. An empty baseURL uses
// the public Data API endpoint.
func NewYouTubeProvider(creds CredentialSelector, baseURL string) VideoProvider {
	if baseURL == "" {
		baseURL = youtubeAPIBaseURL
	}

	client := resty.New().
		SetTimeout(12 * time.Second)

	return &youtubeProvider{
		client:  client,
		creds:   creds,
		baseURL: baseURL,
	}
}

// Name returns the platform name
func (p *youtubeProvider) Name() string {
	return "youtube"
}

// YouTube API response structures
type ytSearchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
			Thumbnails   struct {
				Default struct {
					URL string `json:"url"`
				} `json:"default"`
				Medium struct {
					URL string `json:"url"`
				} `json:"medium"`
				High struct {
					URL string `json:"url"`
				} `json:"high"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

type ytVideosResponse struct {
	Items []struct {
		ID             string `json:"id"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
	} `json:"items"`
}

// Search queries the Data API, enriches hits with duration metadata, and
// re-ranks them toward audio-only uploads.
func (p *youtubeProvider) Search(ctx context.Context, query string, maxResults int) ([]ResolvedVideo, error) {
	key := p.creds.Select()
	if key == "" {
		return nil, &ProviderError{
			Provider:  "youtube",
			Operation: "search",
			Message:   "no API credential configured",
		}
	}

	// Over-fetch to leave room for re-ranking
	var result ytSearchResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"part":            "snippet",
			"type":            "video",
			"videoCategoryId": youtubeMusicCategory,
			"maxResults":      fmt.Sprintf("%d", maxResults*2),
			"q":               biasQueryTowardAudio(query),
			"key":             key,
		}).
		SetResult(&result).
		Get(p.baseURL + "/search")

	if err != nil {
		return nil, &ProviderError{
			Provider:  "youtube",
			Operation: "search",
			Message:   "request failed",
			Err:       err,
		}
	}
	if !resp.IsSuccess() {
		return nil, &ProviderError{
			Provider:  "youtube",
			Operation: "search",
			Message:   fmt.Sprintf("API returned status %d", resp.StatusCode()),
		}
	}

	// Zero raw hits is a successful empty result, not a reason to fall through
	if len(result.Items) == 0 {
		return []ResolvedVideo{}, nil
	}

	videos := make([]ResolvedVideo, 0, len(result.Items))
	ids := make([]string, 0, len(result.Items))
	for _, item := range result.Items {
		if item.ID.VideoID == "" {
			continue
		}
		thumbs := item.Snippet.Thumbnails
		thumb := thumbs.High.URL
		if thumb == "" {
			thumb = thumbs.Medium.URL
		}
		if thumb == "" {
			thumb = thumbs.Default.URL
		}
		videos = append(videos, ResolvedVideo{
			ProviderID:   item.ID.VideoID,
			Title:        item.Snippet.Title,
			Channel:      item.Snippet.ChannelTitle,
			ThumbnailURL: thumb,
		})
		ids = append(ids, item.ID.VideoID)
	}

	durations, err := p.fetchDurations(ctx, key, ids)
	if err != nil {
		// Results are still usable without durations
		slog.Warn("youtube duration lookup failed", "error", err, "videoCount", len(ids))
	} else {
		for i := range videos {
			videos[i].DurationSeconds = durations[videos[i].ProviderID]
		}
	}

	videos = rankByAudioPreference(videos)
	if len(videos) > maxResults {
		videos = videos[:maxResults]
	}
	return videos, nil
}

// fetchDurations looks up contentDetails for a batch of video IDs
func (p *youtubeProvider) fetchDurations(ctx context.Context, key string, ids []string) (map[string]int, error) {
	var result ytVideosResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"part": "contentDetails",
			"id":   strings.Join(ids, ","),
			"key":  key,
		}).
		SetResult(&result).
		Get(p.baseURL + "/videos")

	if err != nil {
		return nil, &ProviderError{
			Provider:  "youtube",
			Operation: "lookup_details",
			Message:   "request failed",
			Err:       err,
		}
	}
	if !resp.IsSuccess() {
		return nil, &ProviderError{
			Provider:  "youtube",
			Operation: "lookup_details",
			Message:   fmt.Sprintf("API returned status %d", resp.StatusCode()),
		}
	}

	durations := make(map[string]int, len(result.Items))
	for _, item := range result.Items {
		durations[item.ID] = parseISODuration(item.ContentDetails.Duration)
	}
	return durations, nil
}

// biasQueryTowardAudio appends "audio" unless the query already signals an
// audio or official upload.
func biasQueryTowardAudio(query string) string {
	lower := strings.ToLower(query)
	if strings.Contains(lower, "audio") || strings.Contains(lower, "official") {
		return query
	}
	return query + " audio"
}
