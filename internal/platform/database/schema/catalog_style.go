// Copyright (c) 2026 DreamWeaver Studio. All rights reserved.

package schema

// CatalogStyleTable represents the 'catalog.style' table.
//
// The visual attributes and the safety flag are nested objects in the API
// and flat columns here.
type CatalogStyleTable struct {
	Table               string
	ID                  string
	Key                 string
	Name                string
	Description         string
	StyleName           string
	Medium              string
	Lineart             string
	Coloring            string
	Lighting            string
	Anatomy             string
	SystemPrompt        string
	PromptTemplate      string
	TechnicalTags       string
	NegativePrompt      string
	ContinuityRules     string
	FormatGuidelines    string
	InteractionLanguage string
	PromptLanguage      string
	SFWOnly             string
	PreviewImageURL     string
	Status              string
	IsDefault           string
	CreatedAt           string
	UpdatedAt           string
}

// CatalogStyle is the schema definition for catalog.style.
var CatalogStyle = CatalogStyleTable{
	Table:               "catalog.style",
	ID:                  "id",
	Key:                 "key",
	Name:                "name",
	Description:         "description",
	StyleName:           "stylename",
	Medium:              "medium",
	Lineart:             "lineart",
	Coloring:            "coloring",
	Lighting:            "lighting",
	Anatomy:             "anatomy",
	SystemPrompt:        "systemprompt",
	PromptTemplate:      "prompttemplate",
	TechnicalTags:       "technicaltags",
	NegativePrompt:      "negativeprompt",
	ContinuityRules:     "continuityrules",
	FormatGuidelines:    "formatguidelines",
	InteractionLanguage: "interactionlanguage",
	PromptLanguage:      "promptlanguage",
	SFWOnly:             "sfwonly",
	PreviewImageURL:     "previewimageurl",
	Status:              "status",
	IsDefault:           "isdefault",
	CreatedAt:           "createdat",
	UpdatedAt:           "updatedat",
}

// Columns returns every column in scan order.
func (t CatalogStyleTable) Columns() []string {
	return []string{
		t.ID, t.Key, t.Name, t.Description,
		t.StyleName, t.Medium, t.Lineart, t.Coloring, t.Lighting, t.Anatomy,
		t.SystemPrompt, t.PromptTemplate, t.TechnicalTags, t.NegativePrompt,
		t.ContinuityRules, t.FormatGuidelines,
		t.InteractionLanguage, t.PromptLanguage, t.SFWOnly, t.PreviewImageURL,
		t.Status, t.IsDefault, t.CreatedAt, t.UpdatedAt,
	}
}
