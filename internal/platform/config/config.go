// Copyright (c) 2026 DreamWeaver Studio. All rights reserved.

/*
Package config maps environment variables onto a typed [Config].

It leverages 'caarlos0/env' for parsing, defaults and required-field checks.
Both binaries import 'joho/godotenv/autoload', so a local .env file is read
before [Load] runs.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Optional collaborators (object storage, Gemini, Stripe) are switched on by
their credentials being present; see [Config.StorageEnabled] and friends.
*/
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the studio API.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis)
	RedisURL        string        `env:"REDIS_URL,required"`
	DefaultCacheTTL time.Duration `env:"DEFAULT_CACHE_TTL" envDefault:"10m"`

	// Identity provider token verification
	AuthPublicKeyPath string `env:"AUTH_PUBLIC_KEY_PATH,required"`
	AuthIssuer        string `env:"AUTH_ISSUER"`
	AuthAudience      string `env:"AUTH_AUDIENCE"`

	// Object Storage (S3-compatible) for style preview images
	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3Region    string `env:"S3_REGION"     envDefault:"auto"`
	S3AccessKey string `env:"S3_ACCESS_KEY"`
	S3SecretKey string `env:"S3_SECRET_KEY"`
	S3Bucket    string `env:"S3_BUCKET"`
	S3PublicURL string `env:"S3_PUBLIC_URL"`

	// Generative collaborator (Google Gemini)
	GeminiAPIKey     string `env:"GEMINI_API_KEY"`
	GeminiBaseURL    string `env:"GEMINI_BASE_URL"    envDefault:"https://generativelanguage.googleapis.com"`
	GeminiModel      string `env:"GEMINI_MODEL"       envDefault:"gemini-2.5-flash"`
	GeminiImageModel string `env:"GEMINI_IMAGE_MODEL" envDefault:"gemini-2.5-flash-image"`

	// Billing collaborator (Stripe)
	StripeSecretKey string `env:"STRIPE_SECRET_KEY"`
	StripeBaseURL   string `env:"STRIPE_BASE_URL" envDefault:"https://api.stripe.com"`

	// Cross-Origin Resource Sharing, comma separated
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {
	cfg := &Config{}

	// Fails if any field marked 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins returns the trimmed, non-empty entries of EXTRA_ORIGINS.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// StorageEnabled reports whether preview uploads can be served.
func (c *Config) StorageEnabled() bool {
	return c.S3Endpoint != "" && c.S3AccessKey != "" && c.S3SecretKey != "" && c.S3Bucket != ""
}

// GeminiEnabled reports whether the generative endpoints can be served.
func (c *Config) GeminiEnabled() bool {
	return c.GeminiAPIKey != ""
}

// BillingEnabled reports whether the balance endpoint can be served.
func (c *Config) BillingEnabled() bool {
	return c.StripeSecretKey != ""
}
