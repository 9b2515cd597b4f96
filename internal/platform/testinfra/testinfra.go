// Copyright (c) 2026 DreamWeaver Studio. All rights reserved.

//go:build integration

// Package testinfra starts throwaway PostgreSQL and Redis containers for the
// integration tests. It requires a running Docker daemon.
package testinfra

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/migration"
	pgstore "github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/postgres"
	redisstore "github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/redis"
)

// Logger discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MigrationsPath returns the absolute path of data/migrations.
func MigrationsPath() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "data", "migrations")
}

// Postgres starts a PostgreSQL container, applies every migration and
// returns a pool. The container is terminated when the test ends.
func Postgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("studio"),
		postgres.WithUsername("studio"),
		postgres.WithPassword("studio"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "start postgres container")
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminate postgres container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, migration.RunUp(dsn, MigrationsPath(), Logger()), "apply migrations")

	pool, err := pgstore.NewPool(ctx, dsn, Logger())
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pool
}

// Redis starts a Redis container and returns a connected client.
func Redis(t *testing.T) *goredis.Client {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "start redis container")
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminate redis container: %v", err)
		}
	})

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	client, err := redisstore.NewClient(ctx, "redis://"+endpoint, Logger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return client
}
