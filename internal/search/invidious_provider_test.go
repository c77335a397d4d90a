package search

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moodlist/internal/testutil"
)

// invidiousInstance wires one mock Invidious instance serving the given videos
func invidiousInstance(t *testing.T, videos ...map[string]interface{}) *testutil.MockHTTPServer {
	t.Helper()

	server := testutil.NewMockHTTPServer()
	t.Cleanup(server.Close)
	server.On("/api/v1/search", func(w http.ResponseWriter, r *http.Request) {
		testutil.WriteJSON(w, testutil.InvidiousSearchResponse(videos...))
	})
	return server
}

// deadInstance wires a mock instance answering every path with the given status
func deadInstance(t *testing.T, status int) *testutil.MockHTTPServer {
	t.Helper()

	server := testutil.NewMockHTTPServer()
	t.Cleanup(server.Close)
	server.On("/api/v1/search", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", status)
	})
	server.On("/search", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", status)
	})
	return server
}

func TestInvidiousSearch_ResolvesVideos(t *testing.T) {
	server := invidiousInstance(t,
		testutil.InvidiousVideo("vid-1", "Song One", "Some Channel", 200),
		testutil.InvidiousVideo("vid-2", "Song Two", "Some Channel", 180),
	)

	provider := NewInvidiousProvider([]string{server.URL()})
	videos, err := provider.Search(context.Background(), "some song", 5)
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, "vid-1", videos[0].ProviderID)
	assert.Equal(t, "Some Channel", videos[0].Channel)
	assert.Equal(t, 200, videos[0].DurationSeconds)
	assert.NotEmpty(t, videos[0].ThumbnailURL)
}

func TestInvidiousSearch_FallsToSecondInstance(t *testing.T) {
	down := deadInstance(t, http.StatusGatewayTimeout)
	up := invidiousInstance(t, testutil.InvidiousVideo("vid-1", "Song One", "Some Channel", 200))

	provider := NewInvidiousProvider([]string{down.URL(), up.URL()})
	videos, err := provider.Search(context.Background(), "some song", 5)
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "vid-1", videos[0].ProviderID)
}

func TestInvidiousSearch_AllInstancesFail(t *testing.T) {
	down := deadInstance(t, http.StatusBadGateway)

	provider := NewInvidiousProvider([]string{down.URL(), down.URL()})
	_, err := provider.Search(context.Background(), "some song", 5)
	require.Error(t, err)

	var provErr *ProviderError
	require.True(t, errors.As(err, &provErr))
	assert.Equal(t, "invidious", provErr.Provider)
	assert.Contains(t, provErr.Message, "2 instances")
}

func TestInvidiousSearch_NormalizesBadMetadata(t *testing.T) {
	server := invidiousInstance(t,
		testutil.InvidiousVideo("vid-1", "Song One", "Some Channel", -5),
		map[string]interface{}{"videoId": "", "title": "ID-less entry"},
	)

	provider := NewInvidiousProvider([]string{server.URL()})
	videos, err := provider.Search(context.Background(), "some song", 5)
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, 0, videos[0].DurationSeconds)
}

func TestInvidiousSearch_TruncatesToMaxResults(t *testing.T) {
	server := invidiousInstance(t,
		testutil.InvidiousVideo("vid-1", "Song One", "Some Channel", 100),
		testutil.InvidiousVideo("vid-2", "Song Two", "Some Channel", 100),
		testutil.InvidiousVideo("vid-3", "Song Three", "Some Channel", 100),
	)

	provider := NewInvidiousProvider([]string{server.URL()})
	videos, err := provider.Search(context.Background(), "some song", 2)
	require.NoError(t, err)
	assert.Len(t, videos, 2)
}
