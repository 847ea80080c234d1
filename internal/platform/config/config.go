// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (stores, verifiers) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Backend Identifiers

const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"

	CredentialBackendStatic   = "static"
	CredentialBackendPostgres = "postgres"
)

// # Configuration Schema

// Config holds all runtime configuration for the portal API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Session storage. A zero TTL keeps sessions until logout.
	SessionBackend         string        `env:"SESSION_BACKEND"          envDefault:"memory"`
	SessionTTL             time.Duration `env:"SESSION_TTL"              envDefault:"24h"`
	SessionCleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"1m"`

	// Key-Value Cache (Redis), required when SessionBackend is "redis"
	RedisURL string `env:"REDIS_URL"`

	// Identity backend
	CredentialBackend string `env:"CREDENTIAL_BACKEND" envDefault:"static"`

	// Relational Database (PostgreSQL), required when CredentialBackend is "postgres"
	DatabaseURL string `env:"DATABASE_URL"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./migrations"`

	// Demo account served by the static backend and seeded into Postgres.
	DemoUserID       string `env:"DEMO_USER_ID"       envDefault:"1"`
	DemoUserEmail    string `env:"DEMO_USER_EMAIL"    envDefault:"user@example.com"`
	DemoUserPassword string `env:"DEMO_USER_PASSWORD" envDefault:"password"`
	DemoUserName     string `env:"DEMO_USER_NAME"     envDefault:"Demo User"`

	// Upstream REST API proxied by the users and posts handlers
	UpstreamBaseURL string        `env:"UPSTREAM_BASE_URL" envDefault:"https://jsonplaceholder.typicode.com"`
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT"  envDefault:"10s"`

	// Cross-Origin Resource Sharing, comma separated
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct and validates
// the backend selections.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// validate checks cross-field rules that struct tags cannot express.
func (c *Config) validate() error {
	var problems []error

	switch c.SessionBackend {
	case SessionBackendMemory:
	case SessionBackendRedis:
		if c.RedisURL == "" {
			problems = append(problems, errors.New("REDIS_URL is required when SESSION_BACKEND=redis"))
		}
	default:
		problems = append(problems, fmt.Errorf("unknown SESSION_BACKEND %q", c.SessionBackend))
	}

	switch c.CredentialBackend {
	case CredentialBackendStatic:
	case CredentialBackendPostgres:
		if c.DatabaseURL == "" {
			problems = append(problems, errors.New("DATABASE_URL is required when CREDENTIAL_BACKEND=postgres"))
		}
	default:
		problems = append(problems, fmt.Errorf("unknown CREDENTIAL_BACKEND %q", c.CredentialBackend))
	}

	if c.SessionTTL < 0 {
		problems = append(problems, errors.New("SESSION_TTL must not be negative"))
	}
	if c.SessionCleanupInterval <= 0 {
		problems = append(problems, errors.New("SESSION_CLEANUP_INTERVAL must be positive"))
	}
	if c.UpstreamTimeout <= 0 {
		problems = append(problems, errors.New("UPSTREAM_TIMEOUT must be positive"))
	}

	return errors.Join(problems...)
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins returns the parsed EXTRA_ORIGINS list.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
