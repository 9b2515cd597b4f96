// Copyright (c) 2026 DreamWeaver Studio. All rights reserved.

package style

import (
	"context"

	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/catalog"
)

// Repository persists styles.
//
// Lookups and Update return a nil style with a nil error when no row
// matches. Create and Update clear the default flag on every other style
// when the written one is the default.
type Repository interface {
	List(context context.Context, params catalog.ListParams) ([]*Style, int, error)
	FindByID(context context.Context, id string) (*Style, error)
	FindByKey(context context.Context, key string) (*Style, error)
	FindDefault(context context.Context) (*Style, error)
	Create(context context.Context, payload Payload) (*Style, error)
	Update(context context.Context, id string, payload Payload) (*Style, error)
	Delete(context context.Context, id string) (bool, error)
	CountByStatus(context context.Context) (map[catalog.Status]int, error)
}

// PreviewUploader stores an embedded preview image and returns its public URL.
// DeleteURL removes an upload whose row was never written.
type PreviewUploader interface {
	UploadDataURL(context context.Context, name, dataURL string) (string, error)
	DeleteURL(context context.Context, url string) error
}
