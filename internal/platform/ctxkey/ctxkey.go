// Copyright (c) 2026 DreamWeaver Studio. All rights reserved.

// Package ctxkey defines typed context keys used by middleware and handlers.
//
// Keys use an unexported type so they cannot collide with string keys set by
// other packages.
package ctxkey

type key string

const (
	// KeyRequestID is the context key for the X-Request-ID correlation value.
	KeyRequestID key = "request_id"

	// KeyUser is the context key for the verified bearer-token claims.
	KeyUser key = "user"

	// KeyLogger is the context key for the per-request [*log/slog.Logger].
	KeyLogger key = "logger"
)
