// Copyright (c) 2026 DreamWeaver Studio. All rights reserved.

/*
Package cli implements studioctl, the operator command line for the studio
catalog.

Commands:

  - migrate up | down --steps N | version
  - seed --file catalog.yaml
  - defaults

Connection settings come from the same environment variables as the API
(DATABASE_URL, MIGRATION_PATH, REDIS_URL) and can be overridden by flags.
REDIS_URL is optional here; when set, catalog writes invalidate the cached
defaults the API serves.
*/
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/catalog"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/catalog/pagetemplate"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/catalog/style"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/constants"
	pgstore "github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/postgres"
	redisstore "github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/redis"
)

// Settings holds the connection settings shared by every command.
type Settings struct {
	DatabaseURL     string        `env:"DATABASE_URL"`
	MigrationPath   string        `env:"MIGRATION_PATH" envDefault:"./data/migrations"`
	RedisURL        string        `env:"REDIS_URL"`
	DefaultCacheTTL time.Duration `env:"DEFAULT_CACHE_TTL" envDefault:"10m"`
}

// NewRootCommand builds the studioctl command tree.
func NewRootCommand(logger *slog.Logger) *cobra.Command {
	settings := &Settings{}

	root := &cobra.Command{
		Use:           "studioctl",
		Short:         "Operate the DreamWeaver studio catalog",
		Version:       constants.AppVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return loadSettings(cmd, settings)
		},
	}

	root.PersistentFlags().String("database-url", "", "PostgreSQL URL (defaults to $DATABASE_URL)")
	root.PersistentFlags().String("migrations-dir", "", "Migrations directory (defaults to $MIGRATION_PATH)")
	root.PersistentFlags().String("redis-url", "", "Redis URL used to invalidate cached defaults (defaults to $REDIS_URL)")

	root.AddCommand(
		newMigrateCommand(settings, logger),
		newSeedCommand(settings, logger),
		newDefaultsCommand(settings, logger),
	)

	return root
}

// loadSettings reads the environment, then lets explicit flags win.
func loadSettings(cmd *cobra.Command, settings *Settings) error {
	if err := env.Parse(settings); err != nil {
		return fmt.Errorf("studioctl: failed to parse environment variables: %w", err)
	}

	overrides := map[string]*string{
		"database-url":   &settings.DatabaseURL,
		"migrations-dir": &settings.MigrationPath,
		"redis-url":      &settings.RedisURL,
	}
	for name, target := range overrides {
		if flag := cmd.Flags().Lookup(name); flag != nil && flag.Changed {
			*target = flag.Value.String()
		}
	}

	if settings.DatabaseURL == "" {
		return fmt.Errorf("studioctl: --database-url or DATABASE_URL is required")
	}
	return nil
}

// catalogServices is the service pair the catalog commands operate on.
type catalogServices struct {
	templates *pagetemplate.Service
	styles    *style.Service
	close     func()
}

// openCatalog connects to PostgreSQL (and Redis when configured) and builds
// the catalog services. Preview uploads are not available from the CLI.
func openCatalog(context context.Context, settings *Settings, logger *slog.Logger) (*catalogServices, error) {
	pool, err := pgstore.NewPool(context, settings.DatabaseURL, logger)
	if err != nil {
		return nil, err
	}

	var (
		cache  catalog.DefaultCache = catalog.NoopDefaultCache{}
		client *redis.Client
	)
	if settings.RedisURL != "" {
		client, err = redisstore.NewClient(context, settings.RedisURL, logger)
		if err != nil {
			pool.Close()
			return nil, err
		}
		cache = catalog.NewRedisDefaultCache(client, settings.DefaultCacheTTL, logger)
	}

	return &catalogServices{
		templates: pagetemplate.NewService(pagetemplate.NewPostgresRepository(pool), cache, logger),
		styles:    style.NewService(style.NewPostgresRepository(pool), cache, nil, logger),
		close: func() {
			pool.Close()
			if client != nil {
				_ = client.Close()
			}
		},
	}, nil
}

// printf writes to the command output, ignoring write errors.
func printf(writer io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(writer, format, args...)
}
