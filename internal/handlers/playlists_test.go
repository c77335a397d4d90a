package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"moodlist/internal/models"
	"moodlist/internal/playlist"
	"moodlist/internal/repositories"
	"moodlist/internal/testutil"
)

type stubGenerator struct {
	result *models.Playlist
	err    error

	gotPrompt string
	gotName   string
	gotCount  int
}

func (s *stubGenerator) Generate(ctx context.Context, prompt, name string, count int) (*models.Playlist, error) {
	s.gotPrompt = prompt
	s.gotName = name
	s.gotCount = count
	return s.result, s.err
}

func setupRouter(gen PlaylistGenerator, repo repositories.PlaylistRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewPlaylistHandler(gen, repo)

	router := gin.New()
	v1 := router.Group("/api/v1")
	v1.POST("/playlists/generate", handler.GeneratePlaylist)
	v1.GET("/playlists", handler.ListPlaylists)
	v1.GET("/playlists/:id", handler.GetPlaylist)
	v1.DELETE("/playlists/:id", handler.DeletePlaylist)
	return router
}

func TestGeneratePlaylist_Success(t *testing.T) {
	expected := testutil.SamplePlaylist("pl-1", "Morning Focus", testutil.SampleTracks(3))
	gen := &stubGenerator{result: expected}

	helper := testutil.NewHTTPTestHelper(t)
	helper.SetRouter(setupRouter(gen, &testutil.MockPlaylistRepository{}))

	recorder := helper.PostJSON("/api/v1/playlists/generate", map[string]interface{}{
		"prompt": "calm focus music",
		"count":  3,
	})

	var got models.Playlist
	helper.AssertJSONResponse(recorder, http.StatusCreated, &got)
	assert.Equal(t, "pl-1", got.ID)
	assert.Len(t, got.Tracks, 3)
	assert.Equal(t, "calm focus music", gen.gotPrompt)
	assert.Equal(t, 3, gen.gotCount)
}

func TestGeneratePlaylist_MissingPrompt(t *testing.T) {
	helper := testutil.NewHTTPTestHelper(t)
	helper.SetRouter(setupRouter(&stubGenerator{}, &testutil.MockPlaylistRepository{}))

	recorder := helper.PostJSON("/api/v1/playlists/generate", map[string]interface{}{
		"name": "No Prompt",
	})

	helper.AssertErrorResponse(recorder, http.StatusBadRequest, "Invalid request")
}

func TestGeneratePlaylist_CountOutOfRange(t *testing.T) {
	tests := []struct {
		name  string
		count int
	}{
		{name: "too large", count: 500},
		{name: "negative", count: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			helper := testutil.NewHTTPTestHelper(t)
			helper.SetRouter(setupRouter(&stubGenerator{}, &testutil.MockPlaylistRepository{}))

			recorder := helper.PostJSON("/api/v1/playlists/generate", map[string]interface{}{
				"prompt": "anything",
				"count":  tt.count,
			})

			helper.AssertErrorResponse(recorder, http.StatusBadRequest, "count must be between 0 and 50")
		})
	}
}

func TestGeneratePlaylist_ZeroCountUsesDefault(t *testing.T) {
	expected := testutil.SamplePlaylist("pl-1", "Defaulted", testutil.SampleTracks(1))
	gen := &stubGenerator{result: expected}

	helper := testutil.NewHTTPTestHelper(t)
	helper.SetRouter(setupRouter(gen, &testutil.MockPlaylistRepository{}))

	recorder := helper.PostJSON("/api/v1/playlists/generate", map[string]interface{}{
		"prompt": "anything",
	})

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, 0, gen.gotCount)
}

func TestGeneratePlaylist_EmptyPipelineIs422(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "no suggestions", err: playlist.ErrNoSuggestions},
		{name: "no tracks resolved", err: playlist.ErrNoTracksResolved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			helper := testutil.NewHTTPTestHelper(t)
			helper.SetRouter(setupRouter(&stubGenerator{err: tt.err}, &testutil.MockPlaylistRepository{}))

			recorder := helper.PostJSON("/api/v1/playlists/generate", map[string]interface{}{
				"prompt": "untranslatable gibberish",
			})

			helper.AssertErrorResponse(recorder, http.StatusUnprocessableEntity, "Could not build")
		})
	}
}

func TestGeneratePlaylist_UpstreamFailureIs502(t *testing.T) {
	gen := &stubGenerator{err: errors.New("gemini unreachable")}

	helper := testutil.NewHTTPTestHelper(t)
	helper.SetRouter(setupRouter(gen, &testutil.MockPlaylistRepository{}))

	recorder := helper.PostJSON("/api/v1/playlists/generate", map[string]interface{}{
		"prompt": "anything",
	})

	helper.AssertErrorResponse(recorder, http.StatusBadGateway, "generation failed")
}

func TestGetPlaylist_Found(t *testing.T) {
	stored := testutil.SamplePlaylist("pl-1", "Stored", testutil.SampleTracks(2))
	repo := &testutil.MockPlaylistRepository{}
	repo.On("FindByID", mock.Anything, "pl-1").Return(stored, nil)

	helper := testutil.NewHTTPTestHelper(t)
	helper.SetRouter(setupRouter(&stubGenerator{}, repo))

	recorder := helper.GetJSON("/api/v1/playlists/pl-1")

	var got models.Playlist
	helper.AssertJSONResponse(recorder, http.StatusOK, &got)
	assert.Equal(t, "pl-1", got.ID)
	assert.Equal(t, "Stored", got.Name)
}

func TestGetPlaylist_NotFound(t *testing.T) {
	repo := &testutil.MockPlaylistRepository{}
	repo.On("FindByID", mock.Anything, "missing").Return(nil, nil)

	helper := testutil.NewHTTPTestHelper(t)
	helper.SetRouter(setupRouter(&stubGenerator{}, repo))

	recorder := helper.GetJSON("/api/v1/playlists/missing")
	helper.AssertErrorResponse(recorder, http.StatusNotFound, "not found")
}

func TestListPlaylists(t *testing.T) {
	stored := []*models.Playlist{
		testutil.SamplePlaylist("pl-2", "Newer", testutil.SampleTracks(1)),
		testutil.SamplePlaylist("pl-1", "Older", testutil.SampleTracks(1)),
	}
	repo := &testutil.MockPlaylistRepository{}
	repo.On("FindAll", mock.Anything).Return(stored, nil)

	helper := testutil.NewHTTPTestHelper(t)
	helper.SetRouter(setupRouter(&stubGenerator{}, repo))

	recorder := helper.GetJSON("/api/v1/playlists")

	var got struct {
		Playlists []models.Playlist `json:"playlists"`
		Count     int               `json:"count"`
	}
	helper.AssertJSONResponse(recorder, http.StatusOK, &got)
	assert.Equal(t, 2, got.Count)
	require.Len(t, got.Playlists, 2)
	assert.Equal(t, "pl-2", got.Playlists[0].ID)
}

func TestListPlaylists_EmptyIsArrayNotNull(t *testing.T) {
	repo := &testutil.MockPlaylistRepository{}
	repo.On("FindAll", mock.Anything).Return(nil, nil)

	helper := testutil.NewHTTPTestHelper(t)
	helper.SetRouter(setupRouter(&stubGenerator{}, repo))

	recorder := helper.GetJSON("/api/v1/playlists")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"playlists":[]`)
}

func TestDeletePlaylist(t *testing.T) {
	repo := &testutil.MockPlaylistRepository{}
	repo.On("DeleteByID", mock.Anything, "pl-1").Return(nil)

	helper := testutil.NewHTTPTestHelper(t)
	helper.SetRouter(setupRouter(&stubGenerator{}, repo))

	recorder := helper.Delete("/api/v1/playlists/pl-1")
	assert.Equal(t, http.StatusNoContent, recorder.Code)
	repo.AssertExpectations(t)
}

func TestDeletePlaylist_NotFound(t *testing.T) {
	repo := &testutil.MockPlaylistRepository{}
	repo.On("DeleteByID", mock.Anything, "missing").Return(repositories.ErrNotFound)

	helper := testutil.NewHTTPTestHelper(t)
	helper.SetRouter(setupRouter(&stubGenerator{}, repo))

	recorder := helper.Delete("/api/v1/playlists/missing")
	helper.AssertErrorResponse(recorder, http.StatusNotFound, "not found")
}
