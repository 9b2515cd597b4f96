// Copyright (c) 2026 DreamWeaver Studio. All rights reserved.

package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/migration"
)

func newMigrateCommand(settings *Settings, logger *slog.Logger) *cobra.Command {
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the catalog schema",
		Long: `Manage the catalog schema with the SQL files under the migrations directory.

Subcommands:
  up       - Apply pending migrations
  down     - Roll back migrations
  version  - Show the applied version`,
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return migration.RunUp(settings.DatabaseURL, settings.MigrationPath, logger)
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		Long: `Roll back applied migrations.

Examples:
  studioctl migrate down              # Roll back the last migration
  studioctl migrate down --steps 2    # Roll back the last two`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			runner, err := migration.Open(settings.DatabaseURL, settings.MigrationPath, logger)
			if err != nil {
				return err
			}
			defer runner.Close()

			return runner.Down(steps)
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "Number of migrations to roll back")

	version := &cobra.Command{
		Use:   "version",
		Short: "Show the applied migration version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			runner, err := migration.Open(settings.DatabaseURL, settings.MigrationPath, logger)
			if err != nil {
				return err
			}
			defer runner.Close()

			current, dirty, err := runner.Version()
			if err != nil {
				return err
			}

			printf(cmd.OutOrStdout(), "version %d", current)
			if dirty {
				printf(cmd.OutOrStdout(), " (dirty)")
			}
			printf(cmd.OutOrStdout(), "\n")
			return nil
		},
	}

	migrate.AddCommand(up, down, version)
	return migrate
}
