package search

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
)

// invidiousProvider is a mirror tier holding an ordered list of instance base
// URLs. Instances are tried in order; any failure moves to the next one.
// Mirrors return coarser metadata and skip audio-preference re-ranking.
type invidiousProvider struct {
	client    *resty.Client
	instances []string
}

// NewInvidiousProvider creates a mirror-tier provider over Invidious instances
func NewInvidiousProvider(instances []string) VideoProvider {
	client := resty.New().
		SetTimeout(5 * time.Second)

	return &invidiousProvider{
		client:    client,
		instances: instances,
	}
}

// Name returns the platform name
func (p *invidiousProvider) Name() string {
	return "invidious"
}

type invidiousVideo struct {
	VideoID         string `json:"videoId"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	LengthSeconds   int    `json:"lengthSeconds"`
	VideoThumbnails []struct {
		Quality string `json:"quality"`
		URL     string `json:"url"`
	} `json:"videoThumbnails"`
}

// Search tries each configured instance in order until one answers
func (p *invidiousProvider) Search(ctx context.Context, query string, maxResults int) ([]ResolvedVideo, error) {
	var lastErr error

	for _, instance := range p.instances {
		var result []invidiousVideo
		resp, err := p.client.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"q":    query,
				"type": "video",
			}).
			SetResult(&result).
			Get(instance + "/api/v1/search")

		if err != nil {
			slog.Debug("invidious instance unreachable", "instance", instance, "error", err)
			lastErr = err
			continue
		}
		if !resp.IsSuccess() {
			slog.Debug("invidious instance returned error status", "instance", instance, "status", resp.StatusCode())
			lastErr = fmt.Errorf("instance %s returned status %d", instance, resp.StatusCode())
			continue
		}

		videos := make([]ResolvedVideo, 0, maxResults)
		for _, v := range result {
			if v.VideoID == "" {
				continue
			}
			thumb := ""
			if len(v.VideoThumbnails) > 0 {
				thumb = v.VideoThumbnails[0].URL
			}
			duration := v.LengthSeconds
			if duration < 0 {
				duration = 0
			}
			videos = append(videos, ResolvedVideo{
				ProviderID:      v.VideoID,
				Title:           v.Title,
				Channel:         v.Author,
				ThumbnailURL:    thumb,
				DurationSeconds: duration,
			})
			if len(videos) == maxResults {
				break
			}
		}
		return videos, nil
	}

	return nil, &ProviderError{
		Provider:  "invidious",
		Operation: "search",
		Message:   fmt.Sprintf("all %d instances failed", len(p.instances)),
		Err:       lastErr,
	}
}
