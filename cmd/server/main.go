package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"moodlist/internal/cache"
	"moodlist/internal/config"
	"moodlist/internal/handlers"
	"moodlist/internal/models"
	"moodlist/internal/playlist"
	"moodlist/internal/repositories"
	"moodlist/internal/search"
	"moodlist/internal/services"
)

func main() {
	// Load .env file if present (development convenience)
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using environment variables")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	gin.SetMode(cfg.GinMode)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := models.NewDatabase(ctx, cfg.MongodbURL, "moodlist")
	if err != nil {
		slog.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer db.Close(context.Background())

	if err := db.CreateIndexes(ctx); err != nil {
		slog.Error("Failed to create database indexes", "error", err)
		os.Exit(1)
	}

	appCache, err := cache.NewMultiLevelCache(cfg.ValkeyURL, 10000)
	if err != nil {
		slog.Error("Failed to connect to Valkey", "error", err)
		os.Exit(1)
	}
	defer appCache.Close()

	completion, err := services.NewGeminiCompletion(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		slog.Error("Failed to initialize completion client", "error", err)
		os.Exit(1)
	}
	defer completion.Close()

	// Provider chain in fallback order: official API first, mirrors after
	var providers []search.VideoProvider
	if len(cfg.YouTubeAPIKeys) > 0 {
		creds := search.NewRandomSelector(cfg.YouTubeAPIKeys)
		providers = append(providers, search.NewYouTubeProvider(creds, ""))
	}
	if len(cfg.InvidiousInstances) > 0 {
		providers = append(providers, search.NewInvidiousProvider(cfg.InvidiousInstances))
	}
	if len(cfg.PipedInstances) > 0 {
		providers = append(providers, search.NewPipedProvider(cfg.PipedInstances))
	}

	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	resolver := search.NewResolver(providers, appCache, cacheTTL)

	repo := repositories.NewCachedPlaylistRepository(
		repositories.NewMongoPlaylistRepository(db),
		appCache,
	)

	suggester := services.NewSuggestionGenerator(completion)
	filter := services.NewContentFilter(completion)
	assembler := playlist.NewAssembler(repo)
	generator := playlist.NewGenerator(suggester, resolver, filter, assembler,
		cfg.SuggestionCount, cfg.ResolveConcurrency)

	playlistHandler := handlers.NewPlaylistHandler(generator, repo)
	healthHandler := handlers.NewHealthHandler(db, appCache)

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", healthHandler.Health)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/playlists/generate", playlistHandler.GeneratePlaylist)
		v1.GET("/playlists", playlistHandler.ListPlaylists)
		v1.GET("/playlists/:id", playlistHandler.GetPlaylist)
		v1.DELETE("/playlists/:id", playlistHandler.DeletePlaylist)
	}

	slog.Info("Starting server", "port", cfg.Port, "providers", len(providers))
	if err := router.Run(":" + cfg.Port); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
