// Copyright (c) 2026 DreamWeaver Studio. All rights reserved.

package pagetemplate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/catalog"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/catalog/pagetemplate"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/apperr"
	"github.com/nicolomanni/dreamweaverstudio-sub000/pkg/pointer"
)

/*
TestBuildDraft_Empty fills every field with its default.
*/
func TestBuildDraft_Empty(t *testing.T) {
	draft := pagetemplate.BuildDraft(nil)

	assert.Equal(t, pagetemplate.EmptyDraft(), draft)
	assert.Equal(t, pagetemplate.TypeStory, draft.Type)
	assert.Equal(t, pagetemplate.OrientationPortrait, draft.Orientation)
	assert.Equal(t, "2:3", draft.AspectRatio)
	assert.Equal(t, pagetemplate.LayoutSingle, draft.Layout)
	assert.Equal(t, pagetemplate.Resolution1K, draft.ResolutionTier)
	assert.Equal(t, 1, draft.Rows)
	assert.Equal(t, 1, draft.Cols)
	assert.Equal(t, 1, draft.PanelCount)
	assert.Equal(t, 12, draft.Gutter)
	assert.Equal(t, 24, draft.SafeArea)
	assert.Equal(t, catalog.StatusActive, draft.Status)
	assert.False(t, draft.IsDefault)
	assert.Empty(t, draft.ID)
}

/*
TestBuildDraft_KeepsExplicitZero only replaces absent fields.
*/
func TestBuildDraft_KeepsExplicitZero(t *testing.T) {
	draft := pagetemplate.BuildDraft(&pagetemplate.Input{
		Name:       pointer.To("Splash"),
		Rows:       pointer.To(0),
		PanelCount: pointer.To(0),
		Gutter:     pointer.To(0),
	})

	assert.Equal(t, "Splash", draft.Name)
	assert.Equal(t, 0, draft.Rows)
	assert.Equal(t, 1, draft.Cols)
	assert.Equal(t, 0, draft.PanelCount)
	assert.Equal(t, 0, draft.Gutter)
	assert.Equal(t, 24, draft.SafeArea)
}

/*
TestDraftFromEntity carries the id and every stored value.
*/
func TestDraftFromEntity(t *testing.T) {
	template := &pagetemplate.PageTemplate{
		ID:             "0190c0de-0000-7000-8000-000000000001",
		Key:            pointer.To("cover-wide"),
		Name:           "Wide cover",
		Type:           pagetemplate.TypeCover,
		Orientation:    pagetemplate.OrientationLandscape,
		AspectRatio:    "16:9",
		ResolutionTier: pagetemplate.Resolution2K,
		Layout:         pagetemplate.LayoutSingle,
		Rows:           1,
		Cols:           1,
		PanelCount:     1,
		Status:         catalog.StatusArchived,
		IsDefault:      true,
	}

	draft := pagetemplate.DraftFromEntity(template)

	assert.Equal(t, template.ID, draft.ID)
	assert.Equal(t, "cover-wide", draft.Key)
	assert.Empty(t, draft.Description)
	assert.Equal(t, pagetemplate.OrientationLandscape, draft.Orientation)
	assert.Equal(t, "16:9", draft.AspectRatio)
	assert.Equal(t, 0, draft.Gutter)
	assert.True(t, draft.IsDefault)

	assert.Equal(t, pagetemplate.EmptyDraft(), pagetemplate.DraftFromEntity(nil))
}

/*
TestBuildPayload_PanelCount covers the grid derivation and the floors.
*/
func TestBuildPayload_PanelCount(t *testing.T) {
	tests := []struct {
		name       string
		layout     pagetemplate.Layout
		rows, cols int
		panelCount int
		wantRows   int
		wantCols   int
		wantPanels int
	}{
		{"grid_derives_from_rows_and_cols", pagetemplate.LayoutGrid, 3, 2, 99, 3, 2, 6},
		{"grid_floors_rows_before_deriving", pagetemplate.LayoutGrid, 0, 4, 1, 1, 4, 4},
		{"custom_keeps_explicit_count", pagetemplate.LayoutCustom, 2, 2, 5, 2, 2, 5},
		{"custom_floors_count", pagetemplate.LayoutCustom, 2, 2, 0, 2, 2, 1},
		{"single_keeps_count", pagetemplate.LayoutSingle, 1, 1, 1, 1, 1, 1},
		{"negative_values_floor_to_one", pagetemplate.LayoutSingle, -2, -3, -1, 1, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := pagetemplate.EmptyDraft()
			draft.Layout = tt.layout
			draft.Rows = tt.rows
			draft.Cols = tt.cols
			draft.PanelCount = tt.panelCount

			payload := pagetemplate.BuildPayload(draft)

			assert.Equal(t, tt.wantRows, payload.Rows)
			assert.Equal(t, tt.wantCols, payload.Cols)
			assert.Equal(t, tt.wantPanels, payload.PanelCount)
		})
	}
}

/*
TestBuildPayload_Normalization trims strings, drops empty ones and defaults
empty enumerations.
*/
func TestBuildPayload_Normalization(t *testing.T) {
	draft := pagetemplate.EmptyDraft()
	draft.Name = "  Four panel  "
	draft.Key = "   "
	draft.Description = " Classic strip "
	draft.AspectRatio = " 4:5 "
	draft.Type = ""
	draft.Layout = ""
	draft.Status = ""
	draft.Gutter = -4
	draft.SafeArea = -1

	payload := pagetemplate.BuildPayload(draft)

	assert.Equal(t, "Four panel", payload.Name)
	assert.Nil(t, payload.Key)
	require.NotNil(t, payload.Description)
	assert.Equal(t, "Classic strip", *payload.Description)
	require.NotNil(t, payload.AspectRatio)
	assert.Equal(t, "4:5", *payload.AspectRatio)
	assert.Equal(t, pagetemplate.TypeStory, payload.Type)
	assert.Equal(t, pagetemplate.LayoutSingle, payload.Layout)
	assert.Equal(t, catalog.StatusActive, payload.Status)
	assert.Equal(t, 0, payload.Gutter)
	assert.Equal(t, 0, payload.SafeArea)

	draft.Name = "   "
	assert.Equal(t, "", pagetemplate.BuildPayload(draft).Name)
}

/*
TestBuildPayload_RoundTrip checks that building a draft from a payload and
normalizing again is stable.
*/
func TestBuildPayload_RoundTrip(t *testing.T) {
	drafts := []pagetemplate.Draft{
		pagetemplate.EmptyDraft(),
		func() pagetemplate.Draft {
			draft := pagetemplate.EmptyDraft()
			draft.Name = " Grid "
			draft.Key = " grid-3x2 "
			draft.Description = "  "
			draft.Layout = pagetemplate.LayoutGrid
			draft.Rows = 3
			draft.Cols = 2
			draft.PanelCount = 1
			draft.IsDefault = true
			return draft
		}(),
		func() pagetemplate.Draft {
			draft := pagetemplate.EmptyDraft()
			draft.Name = "Custom"
			draft.Key = "custom"
			draft.Layout = pagetemplate.LayoutCustom
			draft.Rows = 2
			draft.Cols = 2
			draft.PanelCount = 5
			draft.Orientation = pagetemplate.OrientationSquare
			draft.AspectRatio = "1:1"
			return draft
		}(),
	}

	for _, draft := range drafts {
		payload := pagetemplate.BuildPayload(draft)
		again := pagetemplate.BuildPayload(pagetemplate.BuildDraft(payload.Input()))
		assert.Equal(t, payload, again)
	}
}

/*
TestValidate_MissingFields lists exactly the missing required fields.
*/
func TestValidate_MissingFields(t *testing.T) {
	draft := pagetemplate.EmptyDraft()
	draft.Name = ""
	draft.Key = ""
	draft.AspectRatio = ""
	draft.PanelCount = 0

	result := pagetemplate.Validate(draft)

	assert.False(t, result.Valid)
	assert.ElementsMatch(t, []string{"name", "key", "aspectRatio", "panelCount"}, result.Missing)

	ae := apperr.As(result.Err())
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	assert.Len(t, ae.Details, 4)
}

/*
TestValidate_LayoutRules checks that rows and cols only matter for grid and
custom layouts, while panelCount is checked for every layout.
*/
func TestValidate_LayoutRules(t *testing.T) {
	tests := []struct {
		name        string
		layout      pagetemplate.Layout
		rows, cols  int
		panelCount  int
		wantMissing []string
	}{
		{"single_ignores_grid", pagetemplate.LayoutSingle, 0, 0, 1, nil},
		{"grid_needs_rows_and_cols", pagetemplate.LayoutGrid, 0, 0, 1, []string{"rows", "cols"}},
		{"custom_needs_cols", pagetemplate.LayoutCustom, 2, 0, 3, []string{"cols"}},
		{"grid_still_checks_panel_count", pagetemplate.LayoutGrid, 2, 2, 0, []string{"panelCount"}},
		{"valid_grid", pagetemplate.LayoutGrid, 3, 2, 6, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := pagetemplate.EmptyDraft()
			draft.Name = "Page"
			draft.Key = "page"
			draft.Layout = tt.layout
			draft.Rows = tt.rows
			draft.Cols = tt.cols
			draft.PanelCount = tt.panelCount

			result := pagetemplate.Validate(draft)

			assert.Equal(t, len(tt.wantMissing) == 0, result.Valid)
			assert.ElementsMatch(t, tt.wantMissing, result.Missing)
			if result.Valid {
				assert.NoError(t, result.Err())
			}
		})
	}
}

/*
TestInput_Merge overlays only the fields set in the patch.
*/
func TestInput_Merge(t *testing.T) {
	base := pagetemplate.Input{
		Name:   pointer.To("Base"),
		Key:    pointer.To("base"),
		Rows:   pointer.To(2),
		Layout: pointer.To(pagetemplate.LayoutGrid),
	}

	merged := base.Merge(pagetemplate.Input{
		Name: pointer.To("Patched"),
		Rows: pointer.To(4),
	})

	assert.Equal(t, "Patched", *merged.Name)
	assert.Equal(t, "base", *merged.Key)
	assert.Equal(t, 4, *merged.Rows)
	assert.Equal(t, pagetemplate.LayoutGrid, *merged.Layout)
	assert.Nil(t, merged.Cols)
}

/*
TestInput_Check rejects malformed values at the boundary.
*/
func TestInput_Check(t *testing.T) {
	tests := []struct {
		name      string
		input     pagetemplate.Input
		wantField string
	}{
		{"empty_is_fine", pagetemplate.Input{}, ""},
		{"bad_type", pagetemplate.Input{Type: pointer.To(pagetemplate.Type("poster"))}, "type"},
		{"bad_layout", pagetemplate.Input{Layout: pointer.To(pagetemplate.Layout("spiral"))}, "layout"},
		{"bad_tier", pagetemplate.Input{ResolutionTier: pointer.To(pagetemplate.ResolutionTier("8K"))}, "resolutionTier"},
		{"bad_status", pagetemplate.Input{Status: pointer.To(catalog.Status("deleted"))}, "status"},
		{"zero_rows", pagetemplate.Input{Rows: pointer.To(0)}, "rows"},
		{"negative_gutter", pagetemplate.Input{Gutter: pointer.To(-1)}, "gutter"},
		{"bad_key", pagetemplate.Input{Key: pointer.To("Not A Slug")}, "key"},
		{"blank_key_is_fine", pagetemplate.Input{Key: pointer.To("  ")}, ""},
		{
			"ratio_outside_orientation",
			pagetemplate.Input{Orientation: pointer.To(pagetemplate.OrientationPortrait), AspectRatio: pointer.To("16:9")},
			"aspectRatio",
		},
		{
			"ratio_matches_orientation",
			pagetemplate.Input{Orientation: pointer.To(pagetemplate.OrientationLandscape), AspectRatio: pointer.To("16:9")},
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Check()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			ae := apperr.As(err)
			require.NotNil(t, ae)
			require.Len(t, ae.Details, 1)
			assert.Equal(t, tt.wantField, ae.Details[0].Field)
		})
	}
}

/*
TestAspectRatios returns a copy of each orientation's set.
*/
func TestAspectRatios(t *testing.T) {
	assert.Equal(t, []string{"1:1"}, pagetemplate.AspectRatios(pagetemplate.OrientationSquare))
	assert.Nil(t, pagetemplate.AspectRatios("diagonal"))

	ratios := pagetemplate.AspectRatios(pagetemplate.OrientationPortrait)
	ratios[0] = "changed"
	assert.True(t, pagetemplate.AspectRatioAllowed(pagetemplate.OrientationPortrait, "2:3"))
}
