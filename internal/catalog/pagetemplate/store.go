// Copyright (c) 2026 DreamWeaver Studio. All rights reserved.

package pagetemplate

import (
	"context"

	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/catalog"
)

// Repository persists page templates.
//
// Lookups and Update return a nil template with a nil error when no row
// matches. Create and Update clear the default flag on every other template
// when the written one is the default.
type Repository interface {
	List(context context.Context, params catalog.ListParams) ([]*PageTemplate, int, error)
	FindByID(context context.Context, id string) (*PageTemplate, error)
	FindByKey(context context.Context, key string) (*PageTemplate, error)
	FindDefault(context context.Context) (*PageTemplate, error)
	Create(context context.Context, payload Payload) (*PageTemplate, error)
	Update(context context.Context, id string, payload Payload) (*PageTemplate, error)
	Delete(context context.Context, id string) (bool, error)
	CountByStatus(context context.Context) (map[catalog.Status]int, error)
}
