package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dgallion1/pinetree/internal/pine"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Rendering
	ClassPrefix string
	IndentWidth int

	// Sessions
	WidgetTTL  time.Duration
	MaxWidgets int
	MaxRecords int
	MaxDepth   int

	// Upload limits
	MaxUploadBytes int64
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("PINE_API_KEY"),

		ClassPrefix: envOr("PINE_CLASS_PREFIX", "pine"),
		IndentWidth: envInt("PINE_INDENT_WIDTH", 4),

		WidgetTTL:  envDuration("WIDGET_TTL", 1*time.Hour),
		MaxWidgets: envInt("MAX_WIDGETS", 1000),
		MaxRecords: envInt("MAX_RECORDS", 10000),
		MaxDepth:   envInt("MAX_DEPTH", 512),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 10485760), // 10MB
	}

	if cfg.IndentWidth <= 0 {
		cfg.IndentWidth = 4
	}
	if cfg.WidgetTTL <= 0 {
		cfg.WidgetTTL = 1 * time.Hour
	}
	if cfg.MaxWidgets <= 0 {
		cfg.MaxWidgets = 1000
	}
	if cfg.MaxRecords <= 0 {
		cfg.MaxRecords = 10000
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = 512
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10485760
	}

	return cfg
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("PINE_API_KEY is required")
	}
	if err := pine.ValidatePrefix(c.ClassPrefix); err != nil {
		return fmt.Errorf("PINE_CLASS_PREFIX: %w", err)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
