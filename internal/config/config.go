// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host     string `env:"APP_HOST" env-default:"0.0.0.0"`
	Port     string `env:"APP_PORT" env-default:"8080"`
	Env      string `env:"APP_ENV" env-default:"development"` // "development", "production", "testing"
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`

	// PostgreSQL connection
	DBHost     string `env:"POSTGRES_HOST" env-default:"localhost"`
	DBPort     string `env:"POSTGRES_PORT" env-default:"5432"`
	DBUser     string `env:"POSTGRES_USER" env-default:"infogen"`
	DBPassword string `env:"POSTGRES_PASSWORD" env-default:"changeme"`
	DBName     string `env:"POSTGRES_DB" env-default:"infogen"`

	// Valkey (Redis-compatible cache)
	ValkeyHost     string        `env:"VALKEY_HOST" env-default:"localhost"`
	ValkeyPort     string        `env:"VALKEY_PORT" env-default:"6379"`
	ValkeyPassword string        `env:"VALKEY_PASSWORD"`
	TemplateTTL    time.Duration `env:"TEMPLATE_CACHE_TTL" env-default:"10m"`
	SessionTTL     time.Duration `env:"SESSION_TTL" env-default:"24h"`

	// S3-compatible object storage for export manifests. Storage is disabled
	// when S3_ENDPOINT is empty.
	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3Region    string `env:"S3_REGION" env-default:"fsn1"`
	S3AccessKey string `env:"S3_ACCESS_KEY"`
	S3SecretKey string `env:"S3_SECRET_KEY"`
	S3Bucket    string `env:"S3_BUCKET" env-default:"infogen-exports"`
	S3PublicURL string `env:"S3_PUBLIC_URL"`

	// Comma-separated list of origins allowed to call the API from a browser.
	CORSOrigins string `env:"CORS_ALLOWED_ORIGINS" env-default:"*"`

	// Generation endpoints share a per-client request budget.
	RateLimit       int           `env:"RATE_LIMIT" env-default:"30"`
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW" env-default:"1m"`

	// Set only behind a reverse proxy that overwrites X-Forwarded-For and
	// X-Real-IP; otherwise clients could pick their own rate-limit key.
	TrustProxy bool `env:"TRUST_PROXY" env-default:"false"`
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. A .env file in the working directory
// is loaded first when present; variables already set in the environment
// take precedence over it. Returns an error if critical values are missing
// in production mode.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if cfg.Env == "production" {
		if cfg.DBPassword == "changeme" || cfg.DBPassword == "" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
	}

	return &cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// AllowedOrigins splits CORSOrigins into trimmed, non-empty entries.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// SlogLevel maps LogLevel onto a slog.Level. Unknown values fall back to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
