// Copyright (c) 2026 DreamWeaver Studio. All rights reserved.

package style

import (
	"net/url"
	"strings"

	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/catalog"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/validate"
	"github.com/nicolomanni/dreamweaverstudio-sub000/pkg/pointer"
)

const maxNameLength = 200

// # Input

// VisualStyleInput is a partial [VisualStyle].
type VisualStyleInput struct {
	StyleName *string `json:"styleName"`
	Medium    *string `json:"medium"`
	Lineart   *string `json:"lineart"`
	Coloring  *string `json:"coloring"`
	Lighting  *string `json:"lighting"`
	Anatomy   *string `json:"anatomy"`
}

// SafetyInput is a partial [Safety].
type SafetyInput struct {
	SFWOnly *bool `json:"sfwOnly"`
}

// Input is a partial style as sent by a client. A nil field was not provided.
type Input struct {
	Key                 *string           `json:"key"`
	Name                *string           `json:"name"`
	Description         *string           `json:"description"`
	VisualStyle         *VisualStyleInput `json:"visualStyle"`
	SystemPrompt        *string           `json:"systemPrompt"`
	PromptTemplate      *string           `json:"promptTemplate"`
	TechnicalTags       *string           `json:"technicalTags"`
	NegativePrompt      *string           `json:"negativePrompt"`
	ContinuityRules     *string           `json:"continuityRules"`
	FormatGuidelines    *string           `json:"formatGuidelines"`
	InteractionLanguage *string           `json:"interactionLanguage"`
	PromptLanguage      *string           `json:"promptLanguage"`
	Safety              *SafetyInput      `json:"safety"`
	PreviewImageURL     *string           `json:"previewImageUrl"`
	Status              *catalog.Status   `json:"status"`
	IsDefault           *bool             `json:"isDefault"`
}

// Merge returns in with every field set in patch overlaid on top. Nested
// objects are merged field by field.
func (in Input) Merge(patch Input) Input {
	return Input{
		Key:                 pointer.Or(patch.Key, in.Key),
		Name:                pointer.Or(patch.Name, in.Name),
		Description:         pointer.Or(patch.Description, in.Description),
		VisualStyle:         mergeVisual(in.VisualStyle, patch.VisualStyle),
		SystemPrompt:        pointer.Or(patch.SystemPrompt, in.SystemPrompt),
		PromptTemplate:      pointer.Or(patch.PromptTemplate, in.PromptTemplate),
		TechnicalTags:       pointer.Or(patch.TechnicalTags, in.TechnicalTags),
		NegativePrompt:      pointer.Or(patch.NegativePrompt, in.NegativePrompt),
		ContinuityRules:     pointer.Or(patch.ContinuityRules, in.ContinuityRules),
		FormatGuidelines:    pointer.Or(patch.FormatGuidelines, in.FormatGuidelines),
		InteractionLanguage: pointer.Or(patch.InteractionLanguage, in.InteractionLanguage),
		PromptLanguage:      pointer.Or(patch.PromptLanguage, in.PromptLanguage),
		Safety:              mergeSafety(in.Safety, patch.Safety),
		PreviewImageURL:     pointer.Or(patch.PreviewImageURL, in.PreviewImageURL),
		Status:              pointer.Or(patch.Status, in.Status),
		IsDefault:           pointer.Or(patch.IsDefault, in.IsDefault),
	}
}

func mergeVisual(base, patch *VisualStyleInput) *VisualStyleInput {
	if base == nil {
		return patch
	}
	if patch == nil {
		return base
	}
	return &VisualStyleInput{
		StyleName: pointer.Or(patch.StyleName, base.StyleName),
		Medium:    pointer.Or(patch.Medium, base.Medium),
		Lineart:   pointer.Or(patch.Lineart, base.Lineart),
		Coloring:  pointer.Or(patch.Coloring, base.Coloring),
		Lighting:  pointer.Or(patch.Lighting, base.Lighting),
		Anatomy:   pointer.Or(patch.Anatomy, base.Anatomy),
	}
}

func mergeSafety(base, patch *SafetyInput) *SafetyInput {
	if base == nil {
		return patch
	}
	if patch == nil {
		return base
	}
	return &SafetyInput{SFWOnly: pointer.Or(patch.SFWOnly, base.SFWOnly)}
}

/*
Check rejects malformed values before they reach the service.

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
	if in.Status != nil {
		validator.OneOf(FieldStatus, string(*in.Status), catalog.Statuses()...)
	}
	if in.PreviewImageURL != nil {
		value := strings.TrimSpace(*in.PreviewImageURL)
		validator.Custom(FieldPreviewImageURL, value != "" && !IsEmbeddedImage(value) && !isWebURL(value),
			"Must be an http(s) URL or an embedded base64 image")
	}

	return validator.Err()
}

// IsEmbeddedImage reports whether value is a base64 image data URL that still
// has to be uploaded.
func IsEmbeddedImage(value string) bool {
	return strings.HasPrefix(value, "data:image/") && strings.Contains(value, ";base64,")
}

func isWebURL(value string) bool {
	parsed, err := url.Parse(value)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

// # Draft

// VisualDraft is the fully populated visual direction of a [Draft].
type VisualDraft struct {
	StyleName string
	Medium    string
	Lineart   string
	Coloring  string
	Lighting  string
	Anatomy   string
}

// SafetyDraft is the fully populated safety block of a [Draft].
type SafetyDraft struct {
	SFWOnly bool
}

// Draft is a fully populated edit buffer. ID is empty for new styles.
type Draft struct {
	ID                  string
	Key                 string
	Name                string
	Description         string
	VisualStyle         VisualDraft
	SystemPrompt        string
	PromptTemplate      string
	TechnicalTags       string
	NegativePrompt      string
	ContinuityRules     string
	FormatGuidelines    string
	InteractionLanguage string
	PromptLanguage      string
	Safety              SafetyDraft
	PreviewImageURL     string
	Status              catalog.Status
	IsDefault           bool
}

// EmptyDraft returns the draft used for a brand new style.
func EmptyDraft() Draft {
	return Draft{
		InteractionLanguage: DefaultInteractionLanguage,
		PromptLanguage:      DefaultPromptLanguage,
		Safety:              SafetyDraft{SFWOnly: DefaultSFWOnly},
		Status:              catalog.DefaultStatus,
	}
}

// BuildDraft takes every field from source when set and from [EmptyDraft]
// otherwise. A partial visualStyle or safety object only replaces the
// fields it carries. It never fails.
func BuildDraft(source *Input) Draft {
	draft := EmptyDraft()
	if source == nil {
		return draft
	}

	visual := pointer.Fallback(source.VisualStyle, VisualStyleInput{})
	safety := pointer.Fallback(source.Safety, SafetyInput{})

	return Draft{
		Key:         pointer.Fallback(source.Key, draft.Key),
		Name:        pointer.Fallback(source.Name, draft.Name),
		Description: pointer.Fallback(source.Description, draft.Description),
		VisualStyle: VisualDraft{
			StyleName: pointer.Fallback(visual.StyleName, draft.VisualStyle.StyleName),
			Medium:    pointer.Fallback(visual.Medium, draft.VisualStyle.Medium),
			Lineart:   pointer.Fallback(visual.Lineart, draft.VisualStyle.Lineart),
			Coloring:  pointer.Fallback(visual.Coloring, draft.VisualStyle.Coloring),
			Lighting:  pointer.Fallback(visual.Lighting, draft.VisualStyle.Lighting),
			Anatomy:   pointer.Fallback(visual.Anatomy, draft.VisualStyle.Anatomy),
		},
		SystemPrompt:        pointer.Fallback(source.SystemPrompt, draft.SystemPrompt),
		PromptTemplate:      pointer.Fallback(source.PromptTemplate, draft.PromptTemplate),
		TechnicalTags:       pointer.Fallback(source.TechnicalTags, draft.TechnicalTags),
		NegativePrompt:      pointer.Fallback(source.NegativePrompt, draft.NegativePrompt),
		ContinuityRules:     pointer.Fallback(source.ContinuityRules, draft.ContinuityRules),
		FormatGuidelines:    pointer.Fallback(source.FormatGuidelines, draft.FormatGuidelines),
		InteractionLanguage: pointer.Fallback(source.InteractionLanguage, draft.InteractionLanguage),
		PromptLanguage:      pointer.Fallback(source.PromptLanguage, draft.PromptLanguage),
		Safety:              SafetyDraft{SFWOnly: pointer.Fallback(safety.SFWOnly, draft.Safety.SFWOnly)},
		PreviewImageURL:     pointer.Fallback(source.PreviewImageURL, draft.PreviewImageURL),
		Status:              pointer.Fallback(source.Status, draft.Status),
		IsDefault:           pointer.Fallback(source.IsDefault, draft.IsDefault),
	}
}

// DraftFromEntity builds the draft for editing an existing style.
func DraftFromEntity(style *Style) Draft {
	if style == nil {
		return EmptyDraft()
	}

	draft := BuildDraft(InputFromEntity(style))
	draft.ID = style.ID
	return draft
}

// InputFromEntity converts a stored style into a complete [Input].
func InputFromEntity(style *Style) *Input {
	return &Input{
		Key:         style.Key,
		Name:        pointer.To(style.Name),
		Description: style.Description,
		VisualStyle: &VisualStyleInput{
			StyleName: style.VisualStyle.StyleName,
			Medium:    style.VisualStyle.Medium,
			Lineart:   style.VisualStyle.Lineart,
			Coloring:  style.VisualStyle.Coloring,
			Lighting:  style.VisualStyle.Lighting,
			Anatomy:   style.VisualStyle.Anatomy,
		},
		SystemPrompt:        style.SystemPrompt,
		PromptTemplate:      style.PromptTemplate,
		TechnicalTags:       style.TechnicalTags,
		NegativePrompt:      style.NegativePrompt,
		ContinuityRules:     style.ContinuityRules,
		FormatGuidelines:    style.FormatGuidelines,
		InteractionLanguage: pointer.To(style.InteractionLanguage),
		PromptLanguage:      pointer.To(style.PromptLanguage),
		Safety:              &SafetyInput{SFWOnly: pointer.To(style.Safety.SFWOnly)},
		PreviewImageURL:     style.PreviewImageURL,
		Status:              pointer.To(style.Status),
		IsDefault:           pointer.To(style.IsDefault),
	}
}

// # Payload

// Payload is the normalized, persistence-ready form of a draft.
type Payload struct {
	Key                 *string
	Name                string
	Description         *string
	VisualStyle         VisualStyle
	SystemPrompt        *string
	PromptTemplate      *string
	TechnicalTags       *string
	NegativePrompt      *string
	ContinuityRules     *string
	FormatGuidelines    *string
	InteractionLanguage string
	PromptLanguage      string
	Safety              Safety
	PreviewImageURL     *string
	Status              catalog.Status
	IsDefault           bool
}

/*
BuildPayload normalizes a draft for persistence.

Description: Every optional string goes through [catalog.CleanValue]. The
name is trimmed and always kept. Empty languages fall back to Italian and
English. It never fails; callers run [Validate] first.
*/
func BuildPayload(draft Draft) Payload {
	status := draft.Status
	if strings.TrimSpace(string(status)) == "" {
		status = catalog.DefaultStatus
	}

	return Payload{
		Key:         catalog.CleanValue(draft.Key),
		Name:        strings.TrimSpace(draft.Name),
		Description: catalog.CleanValue(draft.Description),
		VisualStyle: VisualStyle{
			StyleName: catalog.CleanValue(draft.VisualStyle.StyleName),
			Medium:    catalog.CleanValue(draft.VisualStyle.Medium),
			Lineart:   catalog.CleanValue(draft.VisualStyle.Lineart),
			Coloring:  catalog.CleanValue(draft.VisualStyle.Coloring),
			Lighting:  catalog.CleanValue(draft.VisualStyle.Lighting),
			Anatomy:   catalog.CleanValue(draft.VisualStyle.Anatomy),
		},
		SystemPrompt:        catalog.CleanValue(draft.SystemPrompt),
		PromptTemplate:      catalog.CleanValue(draft.PromptTemplate),
		TechnicalTags:       catalog.CleanValue(draft.TechnicalTags),
		NegativePrompt:      catalog.CleanValue(draft.NegativePrompt),
		ContinuityRules:     catalog.CleanValue(draft.ContinuityRules),
		FormatGuidelines:    catalog.CleanValue(draft.FormatGuidelines),
		InteractionLanguage: pointer.Fallback(catalog.CleanValue(draft.InteractionLanguage), DefaultInteractionLanguage),
		PromptLanguage:      pointer.Fallback(catalog.CleanValue(draft.PromptLanguage), DefaultPromptLanguage),
		Safety:              Safety{SFWOnly: draft.Safety.SFWOnly},
		PreviewImageURL:     catalog.CleanValue(draft.PreviewImageURL),
		Status:              status,
		IsDefault:           draft.IsDefault,
	}
}

// Input converts the payload back into a complete [Input].
func (payload Payload) Input() *Input {
	return &Input{
		Key:         payload.Key,
		Name:        pointer.To(payload.Name),
		Description: payload.Description,
		VisualStyle: &VisualStyleInput{
			StyleName: payload.VisualStyle.StyleName,
			Medium:    payload.VisualStyle.Medium,
			Lineart:   payload.VisualStyle.Lineart,
			Coloring:  payload.VisualStyle.Coloring,
			Lighting:  payload.VisualStyle.Lighting,
			Anatomy:   payload.VisualStyle.Anatomy,
		},
		SystemPrompt:        payload.SystemPrompt,
		PromptTemplate:      payload.PromptTemplate,
		TechnicalTags:       payload.TechnicalTags,
		NegativePrompt:      payload.NegativePrompt,
		ContinuityRules:     payload.ContinuityRules,
		FormatGuidelines:    payload.FormatGuidelines,
		InteractionLanguage: pointer.To(payload.InteractionLanguage),
		PromptLanguage:      pointer.To(payload.PromptLanguage),
		Safety:              &SafetyInput{SFWOnly: pointer.To(payload.Safety.SFWOnly)},
		PreviewImageURL:     payload.PreviewImageURL,
		Status:              pointer.To(payload.Status),
		IsDefault:           pointer.To(payload.IsDefault),
	}
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

// Validate lists the required fields the draft leaves blank.
func Validate(draft Draft) ValidationResult {
	required := []struct {
		field string
		value string
	}{
		{FieldName, draft.Name},
		{FieldKey, draft.Key},
		{FieldStyleName, draft.VisualStyle.StyleName},
		{FieldMedium, draft.VisualStyle.Medium},
		{FieldLineart, draft.VisualStyle.Lineart},
		{FieldColoring, draft.VisualStyle.Coloring},
		{FieldLighting, draft.VisualStyle.Lighting},
		{FieldPromptTemplate, draft.PromptTemplate},
		{FieldTechnicalTags, draft.TechnicalTags},
		{FieldNegativePrompt, draft.NegativePrompt},
		{FieldInteractionLanguage, draft.InteractionLanguage},
		{FieldPromptLanguage, draft.PromptLanguage},
	}

	var missing []string
	for _, entry := range required {
		if strings.TrimSpace(entry.value) == "" {
			missing = append(missing, entry.field)
		}
	}

	return ValidationResult{Valid: len(missing) == 0, Missing: missing}
}
