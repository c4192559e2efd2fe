// Copyright (c) 2026 Ascender. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct. In development an optional .env file is loaded first with
'joho/godotenv'; variables already present in the environment always win.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Once loaded, configuration is read-only and passed to components through their
constructors.
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// # Configuration Schema

// Config holds all runtime configuration for the Ascender API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL      string `env:"DATABASE_URL,required"`
	DatabaseMaxConns int32  `env:"DATABASE_MAX_CONNS" envDefault:"20"`
	DatabaseMinConns int32  `env:"DATABASE_MIN_CONNS" envDefault:"2"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath  string `env:"MIGRATION_PATH"   envDefault:"./data/migrations"`
	MigrateOnStart bool   `env:"MIGRATE_ON_START" envDefault:"true"`

	// Key-Value store (Redis). Only required when RateLimitBackend is "redis".
	RedisURL      string `env:"REDIS_URL"`
	RedisPoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"20"`

	// RateLimitBackend selects where fixed-window counters live: memory or redis.
	RateLimitBackend string `env:"RATE_LIMIT_BACKEND" envDefault:"memory"`

	// SessionSecret keys the client IP digest.
	SessionSecret string `env:"SESSION_SECRET,required"`

	// OpenID identity provider (Google sign-in)
	IdentityIssuer        string `env:"IDENTITY_ISSUER"          envDefault:"https://accounts.google.com,accounts.google.com"`
	IdentityAudience      string `env:"IDENTITY_AUDIENCE"`
	IdentityPublicKeyPath string `env:"IDENTITY_PUBLIC_KEY_PATH"`

	// OwnerExternalID is promoted to super_admin on login.
	OwnerExternalID string `env:"OWNER_EXTERNAL_ID"`

	// Cross-Origin Resource Sharing
	SiteURL      string `env:"SITE_URL"`
	ExtraOrigins string `env:"EXTRA_ORIGINS"`

	// Background jobs
	SessionCleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"6h"`
	WeeklyResetEnabled     bool          `env:"WEEKLY_RESET_ENABLED"     envDefault:"false"`

	// MetricsEnabled exposes /metrics for Prometheus scraping.
	MetricsEnabled bool `env:"METRICS_ENABLED" envDefault:"true"`
}

// # Configuration Loading

// Load reads an optional .env file and parses environment variables into a [Config].
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to read .env file: %w", err)
	}
	return Parse()
}

// Parse maps the current environment onto a [Config] and validates it.
func Parse() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate enforces cross-field rules that struct tags cannot express.
func (c *Config) Validate() error {
	var problems []string

	if len(c.SessionSecret) < 32 {
		problems = append(problems, "SESSION_SECRET must be at least 32 characters")
	}

	switch c.RateLimitBackend {
	case "memory":
	case "redis":
		if c.RedisURL == "" {
			problems = append(problems, "REDIS_URL is required when RATE_LIMIT_BACKEND=redis")
		}
	default:
		problems = append(problems, fmt.Sprintf("RATE_LIMIT_BACKEND must be memory or redis, got %q", c.RateLimitBackend))
	}

	if c.IsProduction() {
		if c.SiteURL == "" {
			problems = append(problems, "SITE_URL is required in production")
		}
		if c.IdentityPublicKeyPath == "" || c.IdentityAudience == "" {
			problems = append(problems, "IDENTITY_PUBLIC_KEY_PATH and IDENTITY_AUDIENCE are required in production")
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// AllowedOrigins returns SITE_URL followed by EXTRA_ORIGINS.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	if c.SiteURL != "" {
		origins = append(origins, strings.TrimRight(c.SiteURL, "/"))
	}
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
