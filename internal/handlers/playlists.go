package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"moodlist/internal/models"
	"moodlist/internal/playlist"
	"moodlist/internal/repositories"
)

// GeneratePlaylistRequest represents the request to generate a playlist from a prompt
type GeneratePlaylistRequest struct {
	Prompt string `json:"prompt" binding:"required"`
	Name   string `json:"name,omitempty"`
	Count  int    `json:"count,omitempty"`
}

// PlaylistGenerator runs one prompt-to-playlist generation
type PlaylistGenerator interface {
	Generate(ctx context.Context, prompt, name string, count int) (*models.Playlist, error)
}

// PlaylistHandler handles playlist-related requests
type PlaylistHandler struct {
	generator  PlaylistGenerator
	repository repositories.PlaylistRepository
}

// NewPlaylistHandler creates a new playlist handler
func NewPlaylistHandler(generator PlaylistGenerator, repository repositories.PlaylistRepository) *PlaylistHandler {
	return &PlaylistHandler{
		generator:  generator,
		repository: repository,
	}
}

// GeneratePlaylist handles POST /api/v1/playlists/generate
func (h *PlaylistHandler) GeneratePlaylist(c *gin.Context) {
	var req GeneratePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if req.Count < 0 || req.Count > 50 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "count must be between 0 and 50; 0 or omitted uses the default",
		})
		return
	}

	result, err := h.generator.Generate(c.Request.Context(), req.Prompt, req.Name, req.Count)
	if err != nil {
		if errors.Is(err, playlist.ErrNoSuggestions) || errors.Is(err, playlist.ErrNoTracksResolved) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "Could not build a playlist for this prompt",
				"details": err.Error(),
			})
			return
		}

		slog.Error("Playlist generation failed", "prompt", req.Prompt, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Playlist generation failed",
		})
		return
	}

	c.JSON(http.StatusCreated, result)
}

// GetPlaylist handles GET /api/v1/playlists/:id
func (h *PlaylistHandler) GetPlaylist(c *gin.Context) {
	id := c.Param("id")

	result, err := h.repository.FindByID(c.Request.Context(), id)
	if err != nil {
		slog.Error("Failed to load playlist", "playlistID", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load playlist",
		})
		return
	}

	if result == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Playlist not found",
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListPlaylists handles GET /api/v1/playlists
func (h *PlaylistHandler) ListPlaylists(c *gin.Context) {
	results, err := h.repository.FindAll(c.Request.Context())
	if err != nil {
		slog.Error("Failed to list playlists", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list playlists",
		})
		return
	}

	if results == nil {
		results = []*models.Playlist{}
	}

	c.JSON(http.StatusOK, gin.H{
		"playlists": results,
		"count":     len(results),
	})
}

// DeletePlaylist handles DELETE /api/v1/playlists/:id
func (h *PlaylistHandler) DeletePlaylist(c *gin.Context) {
	id := c.Param("id")

	if err := h.repository.DeleteByID(c.Request.Context(), id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Playlist not found",
			})
			return
		}

		slog.Error("Failed to delete playlist", "playlistID", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete playlist",
		})
		return
	}

	c.Status(http.StatusNoContent)
}
