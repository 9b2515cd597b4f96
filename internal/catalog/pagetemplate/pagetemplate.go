// Copyright (c) 2026 DreamWeaver Studio. All rights reserved.

/*
Package pagetemplate manages the page templates of the studio catalog.

A page template fixes the format of a comic page (orientation, aspect ratio,
output resolution) and its panel layout. Project editors start from the
template flagged as default.

Core Responsibility:

  - Drafts: [BuildDraft] fills every unset field with a fixed default.
  - Payloads: [BuildPayload] trims, clamps and derives the panel count.
  - Validation: [Validate] lists the required fields a draft is missing.
  - Persistence: at most one template is the default at any time.
*/
package pagetemplate

import (
	"slices"
	"time"

	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/catalog"
)

// # Domain Enums

// Type classifies what a page is used for.
type Type string

const (
	TypeStory     Type = "story"
	TypeCover     Type = "cover"
	TypeCharacter Type = "character"
	TypeOther     Type = "other"
)

// Orientation is the page orientation. It restricts the allowed aspect ratios.
type Orientation string

const (
	OrientationPortrait  Orientation = "portrait"
	OrientationLandscape Orientation = "landscape"
	OrientationSquare    Orientation = "square"
)

// Layout describes how panels are arranged on the page.
type Layout string

const (
	// LayoutSingle is one full-page panel.
	LayoutSingle Layout = "single"

	// LayoutGrid is a regular rows x cols grid; the panel count is derived.
	LayoutGrid Layout = "grid"

	// LayoutCustom uses rows and cols as a guide with a free panel count.
	LayoutCustom Layout = "custom"
)

// ResolutionTier is the output resolution requested from the image model.
type ResolutionTier string

const (
	Resolution1K ResolutionTier = "1K"
	Resolution2K ResolutionTier = "2K"
	Resolution4K ResolutionTier = "4K"
)

// Defaults applied by [BuildDraft] and [BuildPayload].
const (
	DefaultType           = TypeStory
	DefaultOrientation    = OrientationPortrait
	DefaultAspectRatio    = "2:3"
	DefaultLayout         = LayoutSingle
	DefaultResolutionTier = Resolution1K
	DefaultGutter         = 12
	DefaultSafeArea       = 24
)

var (
	types           = []string{string(TypeStory), string(TypeCover), string(TypeCharacter), string(TypeOther)}
	orientations    = []string{string(OrientationPortrait), string(OrientationLandscape), string(OrientationSquare)}
	layouts         = []string{string(LayoutSingle), string(LayoutGrid), string(LayoutCustom)}
	resolutionTiers = []string{string(Resolution1K), string(Resolution2K), string(Resolution4K)}
)

// aspectRatios lists the ratios offered for each orientation.
var aspectRatios = map[Orientation][]string{
	OrientationPortrait:  {"2:3", "3:4", "4:5", "9:16"},
	OrientationLandscape: {"3:2", "4:3", "5:4", "16:9", "21:9"},
	OrientationSquare:    {"1:1"},
}

// AspectRatios returns the ratios allowed for orientation, or nil when the
// orientation is unknown.
func AspectRatios(orientation Orientation) []string {
	return slices.Clone(aspectRatios[orientation])
}

// AspectRatioAllowed reports whether ratio may be used with orientation.
func AspectRatioAllowed(orientation Orientation, ratio string) bool {
	return slices.Contains(aspectRatios[orientation], ratio)
}

// # Entity

// PageTemplate is a persisted page template.
type PageTemplate struct {
	ID             string         `json:"id"`
	Key            *string        `json:"key,omitempty"`
	Name           string         `json:"name"`
	Description    *string        `json:"description,omitempty"`
	Type           Type           `json:"type"`
	Orientation    Orientation    `json:"orientation"`
	AspectRatio    string         `json:"aspectRatio"`
	ResolutionTier ResolutionTier `json:"resolutionTier"`
	Layout         Layout         `json:"layout"`
	Rows           int            `json:"rows"`
	Cols           int            `json:"cols"`
	PanelCount     int            `json:"panelCount"`
	Gutter         int            `json:"gutter"`
	SafeArea       int            `json:"safeArea"`
	Status         catalog.Status `json:"status"`
	IsDefault      bool           `json:"isDefault"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// Field names used in validation details.
const (
	FieldName           = "name"
	FieldKey            = "key"
	FieldDescription    = "description"
	FieldType           = "type"
	FieldOrientation    = "orientation"
	FieldAspectRatio    = "aspectRatio"
	FieldResolutionTier = "resolutionTier"
	FieldLayout         = "layout"
	FieldRows           = "rows"
	FieldCols           = "cols"
	FieldPanelCount     = "panelCount"
	FieldGutter         = "gutter"
	FieldSafeArea       = "safeArea"
	FieldStatus         = "status"
)
