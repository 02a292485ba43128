// internal/config/config.go
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	LogLevel            string        `mapstructure:"LOG_LEVEL"`
	DBURL               string        `mapstructure:"DB_URL"`
	HTTPAddr            string        `mapstructure:"HTTP_ADDR"`
	GithubToken         string        `mapstructure:"GITHUB_TOKEN"`
	ReposToBackfill     []string      `mapstructure:"REPOS_TO_BACKFILL"`
	BackfillInterval    time.Duration `mapstructure:"BACKFILL_INTERVAL"`
	BackfillSinceDate   string        `mapstructure:"BACKFILL_SINCE_DATE"`
	BackfillSinceTime   time.Time     `mapstructure:"-"`
	RecentActivityLimit int           `mapstructure:"RECENT_ACTIVITY_LIMIT"`
	TopRepositoryLimit  int           `mapstructure:"TOP_REPOSITORIES_LIMIT"`
	HeatmapMonths       int           `mapstructure:"HEATMAP_MONTHS"`
}

// LoadConfig reads configuration from file and/or environment variables.
func LoadConfig() (*Config, error) {
	// Set default values
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("HTTP_ADDR", ":8080")
	viper.SetDefault("BACKFILL_INTERVAL", "1h")
	viper.SetDefault("BACKFILL_SINCE_DATE", "2024-01-01T00:00:00Z")
	viper.SetDefault("RECENT_ACTIVITY_LIMIT", 15)
	viper.SetDefault("TOP_REPOSITORIES_LIMIT", 10)
	viper.SetDefault("HEATMAP_MONTHS", 4)

	// Load from .env file if it exists
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	_ = viper.ReadInConfig() // Ignore error if file not found

	// Bind environment variables
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Parse BackfillSinceDate
	parsedTime, err := time.Parse(time.RFC3339, cfg.BackfillSinceDate)
	if err != nil {
		return nil, errors.New("BACKFILL_SINCE_DATE must be in RFC3339 format (e.g. 2024-01-01T00:00:00Z)")
	}
	cfg.BackfillSinceTime = parsedTime

	// Validate required fields
	if cfg.DBURL == "" {
		return nil, errors.New("DB_URL is a required configuration field")
	}
	if len(cfg.ReposToBackfill) > 0 && cfg.GithubToken == "" {
		return nil, errors.New("GITHUB_TOKEN is required when REPOS_TO_BACKFILL is set")
	}
	if cfg.RecentActivityLimit <= 0 || cfg.TopRepositoryLimit <= 0 || cfg.HeatmapMonths <= 0 {
		return nil, errors.New("RECENT_ACTIVITY_LIMIT, TOP_REPOSITORIES_LIMIT and HEATMAP_MONTHS must be positive")
	}

	return &cfg, nil
}
