package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"puckval/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	League   LeagueConfig
	Source   SourceConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DatabaseConfig holds snapshot store settings. An empty URL disables
// snapshot persistence; the rest of the app works without it.
type DatabaseConfig struct {
	URL string
}

// LeagueConfig holds the roster math and scoring defaults. Query
// parameters override these per request.
type LeagueConfig struct {
	Teams                 int
	SlotsPerTeam          int
	DepthBuffer           float64
	ReplacementPercentile float64
	Categories            []string
}

// SourceConfig holds fetch collaborator settings
type SourceConfig struct {
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
	CSVPath  string // fallback local file when no live source is configured
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			GinMode: getEnv("GIN_MODE", "debug"),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		League: LeagueConfig{
			Teams:                 getEnvInt("LEAGUE_TEAMS", 12),
			SlotsPerTeam:          getEnvInt("LEAGUE_SKATERS_PER_TEAM", 15),
			DepthBuffer:           getEnvFloat("LEAGUE_DEPTH_BUFFER", 0.30),
			ReplacementPercentile: getEnvFloat("LEAGUE_REPLACEMENT_PERCENTILE", 15),
			Categories:            getEnvList("LEAGUE_CATEGORIES", []string{"G", "A", "PPP", "SOG", "SHP", "HITS", "BLKS", "FW"}),
		},
		Source: SourceConfig{
			BaseURL:  getEnv("STATS_API_URL", ""),
			Timeout:  getEnvDuration("STATS_API_TIMEOUT", 20*time.Second),
			CacheTTL: getEnvDuration("STATS_CACHE_TTL", 10*time.Minute),
			CSVPath:  getEnv("STATS_CSV_PATH", "data/skaters_season.csv"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.League.Teams <= 0 {
		return errors.ConfigInvalid("LEAGUE_TEAMS must be positive")
	}
	if c.League.SlotsPerTeam <= 0 {
		return errors.ConfigInvalid("LEAGUE_SKATERS_PER_TEAM must be positive")
	}
	if c.League.DepthBuffer < 0 {
		return errors.ConfigInvalid("LEAGUE_DEPTH_BUFFER must not be negative")
	}
	if c.League.ReplacementPercentile < 0 || c.League.ReplacementPercentile > 100 {
		return errors.ConfigInvalid("LEAGUE_REPLACEMENT_PERCENTILE must be in [0, 100]")
	}
	if len(c.League.Categories) == 0 {
		return errors.ConfigInvalid("LEAGUE_CATEGORIES must not be empty")
	}
	if c.Source.BaseURL == "" && c.Source.CSVPath == "" {
		return errors.ConfigInvalid("either STATS_API_URL or STATS_CSV_PATH is required")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return fallback
}
