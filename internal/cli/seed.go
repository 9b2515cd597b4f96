// Copyright (c) 2026 DreamWeaver Studio. All rights reserved.

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/catalog/pagetemplate"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/catalog/style"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/apperr"
)

// # Seed File

// SeedFile is a catalog seed. Entries use the same field names as the HTTP
// API, and every entry needs a key so reruns update instead of duplicating.
//
//	pageTemplates:
//	  - key: grid-2x2
//	    name: Grid 2x2
//	    layout: grid
//	styles:
//	  - key: noir
//	    name: Noir
//	    visualStyle:
//	      medium: ink
type SeedFile struct {
	PageTemplates []pagetemplate.Input
	Styles        []style.Input
}

type rawSeedFile struct {
	PageTemplates []map[string]any `yaml:"pageTemplates"`
	Styles        []map[string]any `yaml:"styles"`
}

// ParseSeed decodes a YAML seed document.
func ParseSeed(reader io.Reader) (*SeedFile, error) {
	var raw rawSeedFile
	if err := yaml.NewDecoder(reader).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return &SeedFile{}, nil
		}
		return nil, fmt.Errorf("seed: invalid YAML: %w", err)
	}

	seed := &SeedFile{
		PageTemplates: make([]pagetemplate.Input, 0, len(raw.PageTemplates)),
		Styles:        make([]style.Input, 0, len(raw.Styles)),
	}

	for index, entry := range raw.PageTemplates {
		var input pagetemplate.Input
		if err := convertEntry(entry, &input); err != nil {
			return nil, fmt.Errorf("seed: pageTemplates[%d]: %w", index, err)
		}
		if input.Key == nil || strings.TrimSpace(*input.Key) == "" {
			return nil, fmt.Errorf("seed: pageTemplates[%d]: key is required", index)
		}
		seed.PageTemplates = append(seed.PageTemplates, input)
	}

	for index, entry := range raw.Styles {
		var input style.Input
		if err := convertEntry(entry, &input); err != nil {
			return nil, fmt.Errorf("seed: styles[%d]: %w", index, err)
		}
		if input.Key == nil || strings.TrimSpace(*input.Key) == "" {
			return nil, fmt.Errorf("seed: styles[%d]: key is required", index)
		}
		seed.Styles = append(seed.Styles, input)
	}

	return seed, nil
}

// convertEntry routes a YAML mapping through the JSON field names of target.
func convertEntry(entry map[string]any, target any) error {
	encoded, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return json.Unmarshal(encoded, target)
}

// # Seeder

// TemplateCatalog is the page template surface the seeder writes through.
type TemplateCatalog interface {
	FindByKey(ctx context.Context, key string) (*pagetemplate.PageTemplate, error)
	Create(ctx context.Context, input pagetemplate.Input) (*pagetemplate.PageTemplate, error)
	Update(ctx context.Context, id string, patch pagetemplate.Input) (*pagetemplate.PageTemplate, error)
}

// StyleCatalog is the style surface the seeder writes through.
type StyleCatalog interface {
	FindByKey(ctx context.Context, key string) (*style.Style, error)
	Create(ctx context.Context, input style.Input) (*style.Style, error)
	Update(ctx context.Context, id string, patch style.Input) (*style.Style, error)
}

// SeedReport counts what a seed run changed.
type SeedReport struct {
	Created int
	Updated int
}

// Seeder upserts seed entries by key.
type Seeder struct {
	templates TemplateCatalog
	styles    StyleCatalog
	logger    *slog.Logger
}

// NewSeeder creates a [Seeder].
func NewSeeder(templates TemplateCatalog, styles StyleCatalog, logger *slog.Logger) *Seeder {
	return &Seeder{templates: templates, styles: styles, logger: logger}
}

/*
Run applies every entry of the seed in file order.

Description: An entry whose key already exists is applied as a partial
update, so fields missing from the seed keep their stored values. Other
entries are created. The first failure stops the run.

Returns:
  - SeedReport: What was written before the run stopped
  - error: The failing entry, with field details for validation errors
*/
func (seeder *Seeder) Run(context context.Context, seed *SeedFile) (SeedReport, error) {
	var report SeedReport

	for _, input := range seed.PageTemplates {
		key := strings.TrimSpace(*input.Key)

		existing, err := seeder.templates.FindByKey(context, key)
		if err != nil {
			return report, describe("page template", key, err)
		}

		if existing == nil {
			_, err = seeder.templates.Create(context, input)
			report.Created += countIf(err == nil)
		} else {
			_, err = seeder.templates.Update(context, existing.ID, input)
			report.Updated += countIf(err == nil)
		}
		if err != nil {
			return report, describe("page template", key, err)
		}
		seeder.logger.InfoContext(context, "seed_entry_applied",
			slog.String("kind", "page_template"),
			slog.String("key", key),
			slog.Bool("created", existing == nil),
		)
	}

	for _, input := range seed.Styles {
		key := strings.TrimSpace(*input.Key)

		existing, err := seeder.styles.FindByKey(context, key)
		if err != nil {
			return report, describe("style", key, err)
		}

		if existing == nil {
			_, err = seeder.styles.Create(context, input)
			report.Created += countIf(err == nil)
		} else {
			_, err = seeder.styles.Update(context, existing.ID, input)
			report.Updated += countIf(err == nil)
		}
		if err != nil {
			return report, describe("style", key, err)
		}
		seeder.logger.InfoContext(context, "seed_entry_applied",
			slog.String("kind", "style"),
			slog.String("key", key),
			slog.Bool("created", existing == nil),
		)
	}

	return report, nil
}

func countIf(ok bool) int {
	if ok {
		return 1
	}
	return 0
}

// describe names the failing entry and flattens validation details.
func describe(kind, key string, err error) error {
	if appErr := apperr.As(err); appErr != nil && len(appErr.Details) > 0 {
		fields := make([]string, 0, len(appErr.Details))
		for _, detail := range appErr.Details {
			fields = append(fields, detail.Field+": "+detail.Message)
		}
		return fmt.Errorf("%s %q: %s (%s)", kind, key, appErr.Message, strings.Join(fields, "; "))
	}
	return fmt.Errorf("%s %q: %w", kind, key, err)
}

// # Command

func newSeedCommand(settings *Settings, logger *slog.Logger) *cobra.Command {
	var path string

	seed := &cobra.Command{
		Use:   "seed",
		Short: "Create or update catalog entries from a YAML file",
		Long: `Create or update page templates and styles from a YAML file.

Entries are matched by key. Existing entries receive only the fields present
in the file.

Examples:
  studioctl seed --file data/seed/catalog.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			file, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			defer file.Close()

			parsed, err := ParseSeed(file)
			if err != nil {
				return err
			}

			services, err := openCatalog(cmd.Context(), settings, logger)
			if err != nil {
				return err
			}
			defer services.close()

			report, err := NewSeeder(services.templates, services.styles, logger).Run(cmd.Context(), parsed)
			printf(cmd.OutOrStdout(), "created %d, updated %d\n", report.Created, report.Updated)
			return err
		},
	}

	seed.Flags().StringVarP(&path, "file", "f", "", "Path to the YAML seed file")
	_ = seed.MarkFlagRequired("file")

	return seed
}
