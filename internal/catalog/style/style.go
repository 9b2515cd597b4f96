// Copyright (c) 2026 DreamWeaver Studio. All rights reserved.

/*
Package style manages the comic styles of the studio catalog.

A style bundles the visual direction of a comic (medium, line art, coloring,
lighting) with the prompt material sent to the image model. The style
flagged as default is preselected for new projects.

Core Responsibility:

  - Drafts: [BuildDraft] merges nested objects field by field onto defaults.
  - Payloads: [BuildPayload] cleans every optional string.
  - Validation: [Validate] lists the required fields a draft is missing.
  - Media: embedded preview images are uploaded before the record is stored.
*/
package style

import (
	"time"

	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/catalog"
)

// Defaults applied by [BuildDraft] and [BuildPayload].
const (
	DefaultInteractionLanguage = "Italian"
	DefaultPromptLanguage      = "English"
	DefaultSFWOnly             = true
)

// # Entity

// VisualStyle is the visual direction of a style.
type VisualStyle struct {
	StyleName *string `json:"styleName,omitempty"`
	Medium    *string `json:"medium,omitempty"`
	Lineart   *string `json:"lineart,omitempty"`
	Coloring  *string `json:"coloring,omitempty"`
	Lighting  *string `json:"lighting,omitempty"`
	Anatomy   *string `json:"anatomy,omitempty"`
}

// Safety holds the content restrictions of a style.
type Safety struct {
	SFWOnly bool `json:"sfwOnly"`
}

// Style is a persisted comic style.
type Style struct {
	ID                  string         `json:"id"`
	Key                 *string        `json:"key,omitempty"`
	Name                string         `json:"name"`
	Description         *string        `json:"description,omitempty"`
	VisualStyle         VisualStyle    `json:"visualStyle"`
	SystemPrompt        *string        `json:"systemPrompt,omitempty"`
	PromptTemplate      *string        `json:"promptTemplate,omitempty"`
	TechnicalTags       *string        `json:"technicalTags,omitempty"`
	NegativePrompt      *string        `json:"negativePrompt,omitempty"`
	ContinuityRules     *string        `json:"continuityRules,omitempty"`
	FormatGuidelines    *string        `json:"formatGuidelines,omitempty"`
	InteractionLanguage string         `json:"interactionLanguage"`
	PromptLanguage      string         `json:"promptLanguage"`
	Safety              Safety         `json:"safety"`
	PreviewImageURL     *string        `json:"previewImageUrl,omitempty"`
	Status              catalog.Status `json:"status"`
	IsDefault           bool           `json:"isDefault"`
	CreatedAt           time.Time      `json:"createdAt"`
	UpdatedAt           time.Time      `json:"updatedAt"`
}

// Field names used in validation details. Visual fields are reported by
// their own key, without the visualStyle prefix.
const (
	FieldName                = "name"
	FieldKey                 = "key"
	FieldStyleName           = "styleName"
	FieldMedium              = "medium"
	FieldLineart             = "lineart"
	FieldColoring            = "coloring"
	FieldLighting            = "lighting"
	FieldPromptTemplate      = "promptTemplate"
	FieldTechnicalTags       = "technicalTags"
	FieldNegativePrompt      = "negativePrompt"
	FieldInteractionLanguage = "interactionLanguage"
	FieldPromptLanguage      = "promptLanguage"
	FieldPreviewImageURL     = "previewImageUrl"
	FieldStatus              = "status"
)
