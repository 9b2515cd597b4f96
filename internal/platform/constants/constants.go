// Copyright (c) 2026 DreamWeaver Studio. All rights reserved.

/*
Package constants provides centralized, immutable values for the studio API.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Headers: Names of the headers the middleware chain reads and writes.
  - Cache: Redis key taxonomy.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "dreamweaver-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	// Style bodies may carry an embedded preview image, hence the generous value.
	DefaultReadTimeout = 15 * time.Second

	// DefaultWriteTimeout must cover a full Gemini image generation.
	DefaultWriteTimeout = 150 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for catalog requests.
	GlobalRequestTimeout = 30 * time.Second

	// GenerationRequestTimeout is the deadline for routes that call Gemini.
	GenerationRequestTimeout = 140 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Request Limits

const (
	// MaxBodyBytes bounds JSON bodies; a base64 preview image fits comfortably.
	MaxBodyBytes = 12 << 20
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 20.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 40

	// RateLimitCleanupInterval is how often idle IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderAuthorization = "Authorization"
)

// # JSON Field Identifiers

const (
	FieldError = "error"
	FieldCode  = "code"
)

// # Database Schemas

const (
	SchemaCatalog = "catalog"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	// RedisPrefixDefault holds the JSON of the current default record per kind.
	RedisPrefixDefault = "catalog:default:"
)
