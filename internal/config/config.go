// Norwood Storefront - Catalog, Cart, and Recommendations Backend
// Copyright 2026 Norwood House
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/norwoodhouse/storefront

// Package config loads and validates service configuration via koanf v2
// with layered sources (highest priority wins):
//
//  1. Environment variables (STORE_ prefix, e.g. STORE_SERVER_PORT)
//  2. Config file (config.yaml)
//  3. Built-in defaults
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the storefront service.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Store     StoreConfig     `koanf:"store"`
	Auth      AuthConfig      `koanf:"auth"`
	Recommend RecommendConfig `koanf:"recommend"`
	Payments  PaymentsConfig  `koanf:"payments"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	// Host is the bind address.
	Host string `koanf:"host"`

	// Port is the listen port.
	Port int `koanf:"port"`

	// ReadTimeout bounds request reads.
	ReadTimeout time.Duration `koanf:"read_timeout"`

	// WriteTimeout bounds response writes.
	WriteTimeout time.Duration `koanf:"write_timeout"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// RateLimitReqs is the per-IP request budget per RateLimitWindow.
	// Zero disables rate limiting.
	RateLimitReqs int `koanf:"rate_limit_reqs"`

	// RateLimitWindow is the rate limit window.
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`

	// CORSOrigins lists allowed browser origins.
	CORSOrigins []string `koanf:"cors_origins"`
}

// StoreConfig configures the embedded document store.
type StoreConfig struct {
	// Path is the BadgerDB data directory.
	Path string `koanf:"path"`

	// InMemory runs the store without disk persistence (tests, demos).
	InMemory bool `koanf:"in_memory"`
}

// AuthConfig configures session authentication.
type AuthConfig struct {
	// JWTSecret signs session tokens (HS256). Minimum 32 characters.
	JWTSecret string `koanf:"jwt_secret"`

	// SessionTTL is how long issued sessions stay valid.
	SessionTTL time.Duration `koanf:"session_ttl"`

	// CookieName is the session cookie name.
	CookieName string `koanf:"cookie_name"`

	// CookieSecure marks the session cookie Secure (HTTPS only).
	CookieSecure bool `koanf:"cookie_secure"`

	// AdminUsername, if set together with AdminPassword, bootstraps an
	// admin account on startup when no such user exists.
	AdminUsername string `koanf:"admin_username"`

	// AdminPassword is the bootstrap admin password (8+ characters).
	AdminPassword string `koanf:"admin_password"`
}

// RecommendConfig configures the recommendation core.
type RecommendConfig struct {
	// CacheTTL is how long a computed co-occurrence matrix is reused
	// before a full rebuild.
	CacheTTL time.Duration `koanf:"cache_ttl"`

	// MaxRecommendations caps the co-occurrence shelf size.
	MaxRecommendations int `koanf:"max_recommendations"`
}

// PaymentsConfig configures the payment-intent collaborator.
type PaymentsConfig struct {
	// Enabled toggles payment intent creation at checkout. When false,
	// orders are placed without an intent.
	Enabled bool `koanf:"enabled"`

	// IntentURL is the collaborator endpoint for creating intents.
	IntentURL string `koanf:"intent_url"`

	// APIKey authenticates against the collaborator.
	APIKey string `koanf:"api_key"`

	// Timeout bounds a single intent-creation call.
	Timeout time.Duration `koanf:"timeout"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is the minimum level: debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller includes caller file:line in log events.
	Caller bool `koanf:"caller"`
}

// Validate checks the configuration for values that would prevent the
// service from operating correctly.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1-65535, got %d", c.Server.Port)
	}
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters")
	}
	if c.Auth.SessionTTL <= 0 {
		return fmt.Errorf("auth.session_ttl must be positive")
	}
	if !c.Store.InMemory && c.Store.Path == "" {
		return fmt.Errorf("store.path is required unless store.in_memory is set")
	}
	if c.Recommend.CacheTTL <= 0 {
		return fmt.Errorf("recommend.cache_ttl must be positive")
	}
	if c.Recommend.MaxRecommendations < 1 {
		return fmt.Errorf("recommend.max_recommendations must be at least 1")
	}
	if c.Auth.AdminUsername != "" && len(c.Auth.AdminPassword) < 8 {
		return fmt.Errorf("auth.admin_password must be at least 8 characters")
	}
	if c.Payments.Enabled && c.Payments.IntentURL == "" {
		return fmt.Errorf("payments.intent_url is required when payments.enabled is set")
	}
	return nil
}
