// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host     string
	Port     string
	Env      string // "development", "production", "testing"
	LogLevel slog.Level

	// SiteRoot is the storefront checkout holding public/ and src/data/.
	SiteRoot string

	// Uploads and browser access
	MaxUploadBytes int64
	CORSOrigin     string

	// Valkey (Redis-compatible cache). Disabled when ValkeyHost is empty.
	ValkeyHost      string
	ValkeyPort      string
	ValkeyPassword  string
	CatalogCacheTTL time.Duration
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error for malformed values
// and for settings that are unsafe in production.
func Load() (*Config, error) {
	cfg := &Config{
		Host:       envOrDefault("APP_HOST", "0.0.0.0"),
		Port:       envOrDefault("APP_PORT", "3001"),
		Env:        envOrDefault("APP_ENV", "development"),
		SiteRoot:   envOrDefault("SITE_ROOT", "."),
		CORSOrigin: envOrDefault("CORS_ORIGIN", "*"),

		ValkeyHost:     os.Getenv("VALKEY_HOST"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),
	}

	level, err := parseLevel(os.Getenv("LOG_LEVEL"), cfg.Env)
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	mb, err := strconv.ParseInt(envOrDefault("MAX_UPLOAD_MB", "10"), 10, 64)
	if err != nil || mb <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_MB must be a positive integer")
	}
	cfg.MaxUploadBytes = mb << 20

	ttl, err := time.ParseDuration(envOrDefault("CATALOG_CACHE_TTL", "5m"))
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("CATALOG_CACHE_TTL must be a positive duration")
	}
	cfg.CatalogCacheTTL = ttl

	if cfg.Env == "production" {
		if cfg.CORSOrigin == "*" {
			return nil, fmt.Errorf("CORS_ORIGIN must be set in production")
		}
	}

	return cfg, nil
}

func parseLevel(v, env string) (slog.Level, error) {
	if v == "" {
		if env == "development" {
			return slog.LevelDebug, nil
		}
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(v))); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL %q: %w", v, err)
	}
	return level, nil
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// ValkeyEnabled reports whether a Valkey server is configured.
func (c *Config) ValkeyEnabled() bool {
	return c.ValkeyHost != ""
}

// PublicDir is the statically served directory.
func (c *Config) PublicDir() string {
	return filepath.Join(c.SiteRoot, "public")
}

// ImagesDir holds the inventory folders, the upload holding area and the
// custom product images.
func (c *Config) ImagesDir() string {
	return filepath.Join(c.PublicDir(), "images")
}

// OverridesFile is the generated override module.
func (c *Config) OverridesFile() string {
	return filepath.Join(c.SiteRoot, "src", "data", "productOverrides.ts")
}

// ProductDataFile is the module holding the product data blob.
func (c *Config) ProductDataFile() string {
	return filepath.Join(c.SiteRoot, "src", "data", "products.ts")
}

// ImagePathsFile is the generated image-path module.
func (c *Config) ImagePathsFile() string {
	return filepath.Join(c.SiteRoot, "src", "data", "imagePaths.ts")
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
