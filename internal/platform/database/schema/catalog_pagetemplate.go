// Copyright (c) 2026 DreamWeaver Studio. All rights reserved.

package schema

// CatalogPageTemplateTable represents the 'catalog.pagetemplate' table.
type CatalogPageTemplateTable struct {
	Table          string
	ID             string
	Key            string
	Name           string
	Description    string
	Type           string
	Orientation    string
	AspectRatio    string
	ResolutionTier string
	Layout         string
	Rows           string
	Cols           string
	PanelCount     string
	Gutter         string
	SafeArea       string
	Status         string
	IsDefault      string
	CreatedAt      string
	UpdatedAt      string
}

// CatalogPageTemplate is the schema definition for catalog.pagetemplate.
var CatalogPageTemplate = CatalogPageTemplateTable{
	Table:          "catalog.pagetemplate",
	ID:             "id",
	Key:            "key",
	Name:           "name",
	Description:    "description",
	Type:           "type",
	Orientation:    "orientation",
	AspectRatio:    "aspectratio",
	ResolutionTier: "resolutiontier",
	Layout:         "layout",
	Rows:           "rows",
	Cols:           "cols",
	PanelCount:     "panelcount",
	Gutter:         "gutter",
	SafeArea:       "safearea",
	Status:         "status",
	IsDefault:      "isdefault",
	CreatedAt:      "createdat",
	UpdatedAt:      "updatedat",
}

// Columns returns every column in scan order.
func (t CatalogPageTemplateTable) Columns() []string {
	return []string{
		t.ID, t.Key, t.Name, t.Description, t.Type, t.Orientation, t.AspectRatio,
		t.ResolutionTier, t.Layout, t.Rows, t.Cols, t.PanelCount, t.Gutter,
		t.SafeArea, t.Status, t.IsDefault, t.CreatedAt, t.UpdatedAt,
	}
}
