// Copyright (c) 2026 DreamWeaver Studio. All rights reserved.

package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/constants"
)

// # Default Cache

// DefaultCache stores the JSON of the current default record per kind.
//
// A miss is reported as found=false with a nil error. Services fall back to
// the repository on a miss or an error and never fail a request because the
// cache is unavailable.
type DefaultCache interface {
	Get(ctx context.Context, kind Kind, target any) (bool, error)
	Set(ctx context.Context, kind Kind, value any) error
	Invalidate(ctx context.Context, kind Kind) error
}

// RedisDefaultCache is a [DefaultCache] backed by Redis string keys.
type RedisDefaultCache struct {
	client redis.UniversalClient
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisDefaultCache creates a Redis-backed cache with the given TTL.
func NewRedisDefaultCache(client redis.UniversalClient, ttl time.Duration, logger *slog.Logger) *RedisDefaultCache {
	return &RedisDefaultCache{client: client, ttl: ttl, logger: logger}
}

func defaultKey(kind Kind) string {
	return constants.RedisPrefixDefault + string(kind)
}

// Get decodes the cached default for kind into target.
func (cache *RedisDefaultCache) Get(ctx context.Context, kind Kind, target any) (bool, error) {
	raw, err := cache.client.Get(ctx, defaultKey(kind)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(raw, target); err != nil {
		// A corrupt entry is dropped so the next read repopulates it.
		cache.logger.WarnContext(ctx, "default_cache_corrupt", slog.String("kind", string(kind)))
		_ = cache.client.Del(ctx, defaultKey(kind)).Err()
		return false, nil
	}
	return true, nil
}

// Set stores value as the default for kind.
func (cache *RedisDefaultCache) Set(ctx context.Context, kind Kind, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return cache.client.Set(ctx, defaultKey(kind), raw, cache.ttl).Err()
}

// Invalidate removes the cached default for kind.
func (cache *RedisDefaultCache) Invalidate(ctx context.Context, kind Kind) error {
	return cache.client.Del(ctx, defaultKey(kind)).Err()
}

// NoopDefaultCache never stores anything.
type NoopDefaultCache struct{}

func (NoopDefaultCache) Get(context.Context, Kind, any) (bool, error) { return false, nil }
func (NoopDefaultCache) Set(context.Context, Kind, any) error         { return nil }
func (NoopDefaultCache) Invalidate(context.Context, Kind) error       { return nil }
