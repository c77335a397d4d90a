package search

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// pipedProvider is the last-resort mirror tier. Same instance-by-instance
// fallback as the Invidious tier, different wire shape.
type pipedProvider struct {
	client    *resty.Client
	instances []string
}

// NewPipedProvider creates a mirror-tier provider over Piped API instances
func NewPipedProvider(instances []string) VideoProvider {
	client := resty.New().
		SetTimeout(5 * time.Second)

	return &pipedProvider{
		client:    client,
		instances: instances,
	}
}

// Name returns the platform name
func (p *pipedProvider) Name() string {
	return "piped"
}

type pipedSearchResponse struct {
	Items []struct {
		URL          string `json:"url"` // "/watch?v=<id>"
		Title        string `json:"title"`
		UploaderName string `json:"uploaderName"`
		Thumbnail    string `json:"thumbnail"`
		Duration     int    `json:"duration"`
	} `json:"items"`
}

// Search tries each configured instance in order until one answers
func (p *pipedProvider) Search(ctx context.Context, query string, maxResults int) ([]ResolvedVideo, error) {
	var lastErr error

	for _, instance := range p.instances {
		var result pipedSearchResponse
		resp, err := p.client.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"q":      query,
				"filter": "music_songs",
			}).
			SetResult(&result).
			Get(instance + "/search")

		if err != nil {
			slog.Debug("piped instance unreachable", "instance", instance, "error", err)
			lastErr = err
			continue
		}
		if !resp.IsSuccess() {
			slog.Debug("piped instance returned error status", "instance", instance, "status", resp.StatusCode())
			lastErr = fmt.Errorf("instance %s returned status %d", instance, resp.StatusCode())
			continue
		}

		videos := make([]ResolvedVideo, 0, maxResults)
		for _, item := range result.Items {
			id := pipedVideoID(item.URL)
			if id == "" {
				continue
			}
			duration := item.Duration
			if duration < 0 {
				duration = 0
			}
			videos = append(videos, ResolvedVideo{
				ProviderID:      id,
				Title:           item.Title,
				Channel:         item.UploaderName,
				ThumbnailURL:    item.Thumbnail,
				DurationSeconds: duration,
			})
			if len(videos) == maxResults {
				break
			}
		}
		return videos, nil
	}

	return nil, &ProviderError{
		Provider:  "piped",
		Operation: "search",
		Message:   fmt.Sprintf("all %d instances failed", len(p.instances)),
		Err:       lastErr,
	}
}

// pipedVideoID extracts the video ID from a Piped stream URL ("/watch?v=...")
func pipedVideoID(raw string) string {
	if !strings.HasPrefix(raw, "/watch") {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Query().Get("v")
}
