// Copyright (c) 2026 DreamWeaver Studio. All rights reserved.

package cli

import (
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/catalog"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/dashboard"
)

func newDefaultsCommand(settings *Settings, logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "defaults",
		Short: "Show catalog totals and the current defaults",
		RunE: func(cmd *cobra.Command, _ []string) error {
			services, err := openCatalog(cmd.Context(), settings, logger)
			if err != nil {
				return err
			}
			defer services.close()

			summary, err := dashboard.NewService(services.templates, services.styles).Summary(cmd.Context())
			if err != nil {
				return err
			}
			return WriteSummary(cmd.OutOrStdout(), summary)
		},
	}
}

// WriteSummary renders a catalog summary as an aligned table.
func WriteSummary(writer io.Writer, summary *dashboard.Summary) error {
	table := tabwriter.NewWriter(writer, 0, 0, 2, ' ', 0)

	printf(table, "KIND\tTOTAL\tACTIVE\tARCHIVED\tDEFAULT\n")
	for _, row := range []struct {
		kind    string
		summary dashboard.KindSummary
	}{
		{"page-template", summary.PageTemplates},
		{"style", summary.Styles},
	} {
		defaultID := "-"
		if row.summary.DefaultID != nil {
			defaultID = *row.summary.DefaultID
		}
		printf(table, "%s\t%d\t%d\t%d\t%s\n",
			row.kind,
			row.summary.Total,
			row.summary.ByStatus[catalog.StatusActive],
			row.summary.ByStatus[catalog.StatusArchived],
			defaultID,
		)
	}

	if err := table.Flush(); err != nil {
		return fmt.Errorf("defaults: %w", err)
	}
	return nil
}
