package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the application
type Config struct {
	// Application settings
	Port       string `envconfig:"PORT" default:"8080"`
	GinMode    string `envconfig:"GIN_MODE" default:"debug"`
	MongodbURL string `envconfig:"MONGODB_URL" required:"true"`
	ValkeyURL  string `envconfig:"VALKEY_URL" required:"true"`

	// Completion service
	GeminiAPIKey string `envconfig:"GEMINI_API_KEY" required:"true"`
	GeminiModel  string `envconfig:"GEMINI_MODEL" default:"gemini-1.5-flash"`

	// Video providers. The primary tier needs at least one API key; when several
	// are configured one is chosen per call to spread quota consumption. The
	// mirror tiers work without credentials.
	YouTubeAPIKeys     []string `envconfig:"YOUTUBE_API_KEYS"`
	InvidiousInstances []string `envconfig:"INVIDIOUS_INSTANCES" default:"https://yewtu.be,https://inv.nadeko.net"`
	PipedInstances     []string `envconfig:"PIPED_INSTANCES" default:"https://pipedapi.kavin.rocks,https://api.piped.yt"`

	// Pipeline tuning
	SuggestionCount    int `envconfig:"SUGGESTION_COUNT" default:"15"`
	ResolveConcurrency int `envconfig:"RESOLVE_CONCURRENCY" default:"0"` // 0 = one task per suggestion
	CacheTTLSeconds    int `envconfig:"CACHE_TTL_SECONDS" default:"3600"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks configuration constraints that envconfig tags cannot express
func (c *Config) Validate() error {
	if c.SuggestionCount < 1 {
		return fmt.Errorf("SUGGESTION_COUNT must be at least 1, got %d", c.SuggestionCount)
	}
	if c.ResolveConcurrency < 0 {
		return fmt.Errorf("RESOLVE_CONCURRENCY cannot be negative, got %d", c.ResolveConcurrency)
	}
	if c.CacheTTLSeconds < 0 {
		return fmt.Errorf("CACHE_TTL_SECONDS cannot be negative, got %d", c.CacheTTLSeconds)
	}
	if len(c.InvidiousInstances) == 0 && len(c.PipedInstances) == 0 && len(c.YouTubeAPIKeys) == 0 {
		return fmt.Errorf("no video providers configured")
	}
	return nil
}
