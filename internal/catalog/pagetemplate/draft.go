// Copyright (c) 2026 DreamWeaver Studio. All rights reserved.

package pagetemplate

import (
	"slices"
	"strings"

	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/catalog"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/validate"
	"github.com/nicolomanni/dreamweaverstudio-sub000/pkg/pointer"
)

// maxNameLength bounds the display name.
const maxNameLength = 200

// # Input

// Input is a partial page template as sent by a client. A nil field was not
// provided.
type Input struct {
	Key            *string         `json:"key"`
	Name           *string         `json:"name"`
	Description    *string         `json:"description"`
	Type           *Type           `json:"type"`
	Orientation    *Orientation    `json:"orientation"`
	AspectRatio    *string         `json:"aspectRatio"`
	ResolutionTier *ResolutionTier `json:"resolutionTier"`
	Layout         *Layout         `json:"layout"`
	Rows           *int            `json:"rows"`
	Cols           *int            `json:"cols"`
	PanelCount     *int            `json:"panelCount"`
	Gutter         *int            `json:"gutter"`
	SafeArea       *int            `json:"safeArea"`
	Status         *catalog.Status `json:"status"`
	IsDefault      *bool           `json:"isDefault"`
}

// Merge returns in with every field set in patch overlaid on top.
func (in Input) Merge(patch Input) Input {
	return Input{
		Key:            pointer.Or(patch.Key, in.Key),
		Name:           pointer.Or(patch.Name, in.Name),
		Description:    pointer.Or(patch.Description, in.Description),
		Type:           pointer.Or(patch.Type, in.Type),
		Orientation:    pointer.Or(patch.Orientation, in.Orientation),
		AspectRatio:    pointer.Or(patch.AspectRatio, in.AspectRatio),
		ResolutionTier: pointer.Or(patch.ResolutionTier, in.ResolutionTier),
		Layout:         pointer.Or(patch.Layout, in.Layout),
		Rows:           pointer.Or(patch.Rows, in.Rows),
		Cols:           pointer.Or(patch.Cols, in.Cols),
		PanelCount:     pointer.Or(patch.PanelCount, in.PanelCount),
		Gutter:         pointer.Or(patch.Gutter, in.Gutter),
		SafeArea:       pointer.Or(patch.SafeArea, in.SafeArea),
		Status:         pointer.Or(patch.Status, in.Status),
		IsDefault:      pointer.Or(patch.IsDefault, in.IsDefault),
	}
}

/*
Check rejects malformed values before they reach the service.

Description: Enumerations must be members of their set, counts must be
positive and spacings non-negative. The aspect ratio is only checked here
when the orientation is part of the same input; the service checks the
final combination after merging.

Returns:
  - error: VALIDATION_ERROR with one detail per rejected field, or nil
*/
func (in Input) Check() error {
	validator := &validate.Validator{}

	if in.Name != nil {
		validator.MaxLen(FieldName, *in.Name, maxNameLength)
	}
	if in.Key != nil && strings.TrimSpace(*in.Key) != "" {
		validator.Slug(FieldKey, strings.TrimSpace(*in.Key))
	}
	if in.Type != nil {
		validator.OneOf(FieldType, string(*in.Type), types...)
	}
	if in.Orientation != nil {
		validator.OneOf(FieldOrientation, string(*in.Orientation), orientations...)
	}
	if in.ResolutionTier != nil {
		validator.OneOf(FieldResolutionTier, string(*in.ResolutionTier), resolutionTiers...)
	}
	if in.Layout != nil {
		validator.OneOf(FieldLayout, string(*in.Layout), layouts...)
	}
	if in.Status != nil {
		validator.OneOf(FieldStatus, string(*in.Status), catalog.Statuses()...)
	}
	if in.Rows != nil {
		validator.Min(FieldRows, *in.Rows, 1)
	}
	if in.Cols != nil {
		validator.Min(FieldCols, *in.Cols, 1)
	}
	if in.PanelCount != nil {
		validator.Min(FieldPanelCount, *in.PanelCount, 1)
	}
	if in.Gutter != nil {
		validator.Min(FieldGutter, *in.Gutter, 0)
	}
	if in.SafeArea != nil {
		validator.Min(FieldSafeArea, *in.SafeArea, 0)
	}
	if in.Orientation != nil && in.AspectRatio != nil {
		checkAspectRatio(validator, *in.Orientation, *in.AspectRatio)
	}

	return validator.Err()
}

func checkAspectRatio(validator *validate.Validator, orientation Orientation, ratio string) {
	ratio = strings.TrimSpace(ratio)
	if ratio == "" || !slices.Contains(orientations, string(orientation)) {
		return
	}
	validator.Custom(FieldAspectRatio, !AspectRatioAllowed(orientation, ratio),
		"Not available for the "+string(orientation)+" orientation")
}

// # Draft

// Draft is a fully populated edit buffer. ID is empty for new templates.
type Draft struct {
	ID             string
	Key            string
	Name           string
	Description    string
	Type           Type
	Orientation    Orientation
	AspectRatio    string
	ResolutionTier ResolutionTier
	Layout         Layout
	Rows           int
	Cols           int
	PanelCount     int
	Gutter         int
	SafeArea       int
	Status         catalog.Status
	IsDefault      bool
}

// EmptyDraft returns the draft used for a brand new template.
func EmptyDraft() Draft {
	return Draft{
		Type:           DefaultType,
		Orientation:    DefaultOrientation,
		AspectRatio:    DefaultAspectRatio,
		ResolutionTier: DefaultResolutionTier,
		Layout:         DefaultLayout,
		Rows:           1,
		Cols:           1,
		PanelCount:     1,
		Gutter:         DefaultGutter,
		SafeArea:       DefaultSafeArea,
		Status:         catalog.DefaultStatus,
	}
}

// BuildDraft takes every field from source when set and from [EmptyDraft]
// otherwise. A nil source yields the empty draft. It never fails.
func BuildDraft(source *Input) Draft {
	draft := EmptyDraft()
	if source == nil {
		return draft
	}

	return Draft{
		Key:            pointer.Fallback(source.Key, draft.Key),
		Name:           pointer.Fallback(source.Name, draft.Name),
		Description:    pointer.Fallback(source.Description, draft.Description),
		Type:           pointer.Fallback(source.Type, draft.Type),
		Orientation:    pointer.Fallback(source.Orientation, draft.Orientation),
		AspectRatio:    pointer.Fallback(source.AspectRatio, draft.AspectRatio),
		ResolutionTier: pointer.Fallback(source.ResolutionTier, draft.ResolutionTier),
		Layout:         pointer.Fallback(source.Layout, draft.Layout),
		Rows:           pointer.Fallback(source.Rows, draft.Rows),
		Cols:           pointer.Fallback(source.Cols, draft.Cols),
		PanelCount:     pointer.Fallback(source.PanelCount, draft.PanelCount),
		Gutter:         pointer.Fallback(source.Gutter, draft.Gutter),
		SafeArea:       pointer.Fallback(source.SafeArea, draft.SafeArea),
		Status:         pointer.Fallback(source.Status, draft.Status),
		IsDefault:      pointer.Fallback(source.IsDefault, draft.IsDefault),
	}
}

// DraftFromEntity builds the draft for editing an existing template.
func DraftFromEntity(template *PageTemplate) Draft {
	if template == nil {
		return EmptyDraft()
	}

	draft := BuildDraft(InputFromEntity(template))
	draft.ID = template.ID
	return draft
}

// InputFromEntity converts a stored template into a complete [Input].
func InputFromEntity(template *PageTemplate) *Input {
	return &Input{
		Key:            template.Key,
		Name:           pointer.To(template.Name),
		Description:    template.Description,
		Type:           pointer.To(template.Type),
		Orientation:    pointer.To(template.Orientation),
		AspectRatio:    pointer.To(template.AspectRatio),
		ResolutionTier: pointer.To(template.ResolutionTier),
		Layout:         pointer.To(template.Layout),
		Rows:           pointer.To(template.Rows),
		Cols:           pointer.To(template.Cols),
		PanelCount:     pointer.To(template.PanelCount),
		Gutter:         pointer.To(template.Gutter),
		SafeArea:       pointer.To(template.SafeArea),
		Status:         pointer.To(template.Status),
		IsDefault:      pointer.To(template.IsDefault),
	}
}

// # Payload

// Payload is the normalized, persistence-ready form of a draft. Optional
// strings are nil when empty.
type Payload struct {
	Key            *string
	Name           string
	Description    *string
	Type           Type
	Orientation    Orientation
	AspectRatio    *string
	ResolutionTier ResolutionTier
	Layout         Layout
	Rows           int
	Cols           int
	PanelCount     int
	Gutter         int
	SafeArea       int
	Status         catalog.Status
	IsDefault      bool
}

/*
BuildPayload normalizes a draft for persistence.

Description: Strings are trimmed and empty ones dropped, except the name.
Rows and cols are floored at 1. A grid derives its panel count from
rows x cols; other layouts keep the draft's count floored at 1. Spacings are
clamped at 0 and empty enumerations take their default. It never fails;
callers run [Validate] first.
*/
func BuildPayload(draft Draft) Payload {
	rows := max(draft.Rows, 1)
	cols := max(draft.Cols, 1)

	panelCount := max(draft.PanelCount, 1)
	if draft.Layout == LayoutGrid {
		panelCount = rows * cols
	}

	return Payload{
		Key:            catalog.CleanValue(draft.Key),
		Name:           strings.TrimSpace(draft.Name),
		Description:    catalog.CleanValue(draft.Description),
		Type:           orDefault(draft.Type, DefaultType),
		Orientation:    orDefault(draft.Orientation, DefaultOrientation),
		AspectRatio:    catalog.CleanValue(draft.AspectRatio),
		ResolutionTier: orDefault(draft.ResolutionTier, DefaultResolutionTier),
		Layout:         orDefault(draft.Layout, DefaultLayout),
		Rows:           rows,
		Cols:           cols,
		PanelCount:     panelCount,
		Gutter:         max(draft.Gutter, 0),
		SafeArea:       max(draft.SafeArea, 0),
		Status:         orDefault(draft.Status, catalog.DefaultStatus),
		IsDefault:      draft.IsDefault,
	}
}

// Input converts the payload back into a complete [Input].
func (payload Payload) Input() *Input {
	return &Input{
		Key:            payload.Key,
		Name:           pointer.To(payload.Name),
		Description:    payload.Description,
		Type:           pointer.To(payload.Type),
		Orientation:    pointer.To(payload.Orientation),
		AspectRatio:    payload.AspectRatio,
		ResolutionTier: pointer.To(payload.ResolutionTier),
		Layout:         pointer.To(payload.Layout),
		Rows:           pointer.To(payload.Rows),
		Cols:           pointer.To(payload.Cols),
		PanelCount:     pointer.To(payload.PanelCount),
		Gutter:         pointer.To(payload.Gutter),
		SafeArea:       pointer.To(payload.SafeArea),
		Status:         pointer.To(payload.Status),
		IsDefault:      pointer.To(payload.IsDefault),
	}
}

func orDefault[T ~string](value, fallback T) T {
	if strings.TrimSpace(string(value)) == "" {
		return fallback
	}
	return value
}

// # Validation

// ValidationResult lists the required fields a draft is missing.
type ValidationResult struct {
	Valid   bool
	Missing []string
}

// Err converts the result into a VALIDATION_ERROR, or nil when valid.
func (result ValidationResult) Err() error {
	validator := &validate.Validator{}
	validator.Missing(result.Missing...)
	return validator.ErrWithMessage("Missing required fields")
}

/*
Validate lists the required fields the draft is missing.

Rules:
  - name, key and aspectRatio must be non-blank.
  - rows and cols must be non-zero for grid and custom layouts.
  - panelCount must be at least 1, whatever the layout.
*/
func Validate(draft Draft) ValidationResult {
	var missing []string

	if strings.TrimSpace(draft.Name) == "" {
		missing = append(missing, FieldName)
	}
	if strings.TrimSpace(draft.Key) == "" {
		missing = append(missing, FieldKey)
	}
	if strings.TrimSpace(draft.AspectRatio) == "" {
		missing = append(missing, FieldAspectRatio)
	}

	needsGrid := draft.Layout == LayoutGrid || draft.Layout == LayoutCustom
	if needsGrid && draft.Rows == 0 {
		missing = append(missing, FieldRows)
	}
	if needsGrid && draft.Cols == 0 {
		missing = append(missing, FieldCols)
	}
	if draft.PanelCount < 1 {
		missing = append(missing, FieldPanelCount)
	}

	return ValidationResult{Valid: len(missing) == 0, Missing: missing}
}
