// Copyright (c) 2026 DreamWeaver Studio. All rights reserved.

package style

import (
	"context"
	"log/slog"

	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/catalog"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/apperr"
	"github.com/nicolomanni/dreamweaverstudio-sub000/pkg/slug"
	"github.com/nicolomanni/dreamweaverstudio-sub000/pkg/uuid"
)

// # Service Layer

// Service orchestrates draft building, validation, preview upload and
// persistence of styles.
type Service struct {
	repo     Repository
	cache    catalog.DefaultCache
	uploader PreviewUploader
	logger   *slog.Logger
}

// NewService constructs a new [Service]. A nil cache disables caching and a
// nil uploader rejects embedded preview images.
func NewService(repo Repository, cache catalog.DefaultCache, uploader PreviewUploader, logger *slog.Logger) *Service {
	if cache == nil {
		cache = catalog.NoopDefaultCache{}
	}
	return &Service{
		repo:     repo,
		cache:    cache,
		uploader: uploader,
		logger:   logger,
	}
}

func errNotFound() error {
	return apperr.NotFound("Style")
}

// # Lookups

// List returns one page of styles.
func (service *Service) List(context context.Context, params catalog.ListParams) (catalog.ListResult[*Style], error) {
	styles, total, err := service.repo.List(context, params)
	if err != nil {
		return catalog.ListResult[*Style]{}, err
	}
	return catalog.NewListResult(styles, total, params), nil
}

// Get returns a style by id. Unknown or malformed ids are NOT_FOUND.
func (service *Service) Get(context context.Context, id string) (*Style, error) {
	if !uuid.Valid(id) {
		return nil, errNotFound()
	}

	style, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if style == nil {
		return nil, errNotFound()
	}
	return style, nil
}

// GetDefault returns the current default style, from the cache when warm.
func (service *Service) GetDefault(context context.Context) (*Style, error) {
	cached := &Style{}
	found, err := service.cache.Get(context, catalog.KindStyle, cached)
	if err != nil {
		service.logger.WarnContext(context, "default_cache_read_failed",
			slog.String("kind", string(catalog.KindStyle)),
			slog.Any("error", err),
		)
	}
	if found {
		return cached, nil
	}

	style, err := service.repo.FindDefault(context)
	if err != nil {
		return nil, err
	}
	if style == nil {
		return nil, apperr.NotFound("Default style")
	}

	if err := service.cache.Set(context, catalog.KindStyle, style); err != nil {
		service.logger.WarnContext(context, "default_cache_write_failed",
			slog.String("kind", string(catalog.KindStyle)),
			slog.Any("error", err),
		)
		return style, nil
	}

	// A write committed between the lookup and the Set has already run its
	// invalidation, so the entry is confirmed against a second lookup.
	current, err := service.repo.FindDefault(context)
	if err != nil || !sameRevision(style, current) {
		service.invalidateDefault(context)
		service.logger.InfoContext(context, "default_cache_fill_discarded",
			slog.String("kind", string(catalog.KindStyle)),
		)
	}
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, apperr.NotFound("Default style")
	}
	return current, nil
}

// sameRevision reports whether two reads returned the same stored row.
func sameRevision(a, b *Style) bool {
	return a != nil && b != nil && a.ID == b.ID && a.UpdatedAt.Equal(b.UpdatedAt)
}

// FindByKey returns the style with the given key, or nil when none exists.
func (service *Service) FindByKey(context context.Context, key string) (*Style, error) {
	return service.repo.FindByKey(context, key)
}

// CountByStatus returns the number of styles per status.
func (service *Service) CountByStatus(context context.Context) (map[catalog.Status]int, error) {
	return service.repo.CountByStatus(context)
}

// # Mutations

/*
Create validates and stores a new style.

Description: The input becomes a draft with defaults, is checked for
missing fields and normalized. An embedded preview image is uploaded and
replaced with its public URL before the row is written.

Parameters:
  - context: context.Context
  - input: Input (the request body)

Returns:
  - *Style: The stored style
  - error: VALIDATION_ERROR, CONFLICT, UPSTREAM_ERROR on upload failure
*/
func (service *Service) Create(context context.Context, input Input) (*Style, error) {
	payload, uploaded, err := service.prepare(context, BuildDraft(&input))
	if err != nil {
		return nil, err
	}

	style, err := service.repo.Create(context, payload)
	if err != nil {
		service.discardPreview(context, uploaded)
		return nil, err
	}

	service.afterWrite(context, style)
	service.logger.InfoContext(context, "style_created",
		slog.String("style_id", style.ID),
		slog.String("key", keyOf(style)),
		slog.Bool("is_default", style.IsDefault),
	)

	return style, nil
}

/*
Update merges a partial input over an existing style and stores it.

Description: Nested visualStyle and safety objects only replace the
fields they carry.

Returns:
  - *Style: The stored style
  - error: NOT_FOUND, VALIDATION_ERROR, CONFLICT or UPSTREAM_ERROR
*/
func (service *Service) Update(context context.Context, id string, patch Input) (*Style, error) {
	existing, err := service.Get(context, id)
	if err != nil {
		return nil, err
	}

	merged := InputFromEntity(existing).Merge(patch)
	payload, uploaded, err := service.prepare(context, BuildDraft(&merged))
	if err != nil {
		return nil, err
	}

	style, err := service.repo.Update(context, id, payload)
	if err != nil || style == nil {
		service.discardPreview(context, uploaded)
	}
	if err != nil {
		return nil, err
	}
	if style == nil {
		return nil, errNotFound()
	}

	service.afterWrite(context, style)
	service.logger.InfoContext(context, "style_updated",
		slog.String("style_id", style.ID),
		slog.Bool("is_default", style.IsDefault),
	)

	return style, nil
}

// Delete removes a style. Unknown ids are NOT_FOUND.
func (service *Service) Delete(context context.Context, id string) error {
	if !uuid.Valid(id) {
		return errNotFound()
	}

	removed, err := service.repo.Delete(context, id)
	if err != nil {
		return err
	}
	if !removed {
		return errNotFound()
	}

	service.invalidateDefault(context)
	service.logger.WarnContext(context, "style_deleted", slog.String("style_id", id))
	return nil
}

// prepare validates a draft, builds its payload and uploads an embedded
// preview image. The returned URL is set only when an upload happened.
func (service *Service) prepare(context context.Context, draft Draft) (Payload, string, error) {
	if result := Validate(draft); !result.Valid {
		return Payload{}, "", result.Err()
	}

	payload := BuildPayload(draft)
	if payload.PreviewImageURL == nil || !IsEmbeddedImage(*payload.PreviewImageURL) {
		return payload, "", nil
	}

	if service.uploader == nil {
		return Payload{}, "", apperr.ServiceUnavailable("Image storage is not configured")
	}

	name := slug.From(payload.Name)
	if payload.Key != nil {
		name = *payload.Key
	}

	url, err := service.uploader.UploadDataURL(context, name, *payload.PreviewImageURL)
	if err != nil {
		if apperr.IsAppError(err) {
			return Payload{}, "", err
		}
		return Payload{}, "", apperr.BadGateway("Preview image upload failed", err)
	}

	service.logger.InfoContext(context, "style_preview_uploaded",
		slog.String("key", name),
		slog.String("url", url),
	)

	payload.PreviewImageURL = &url
	return payload, url, nil
}

// discardPreview deletes a preview uploaded for a write that did not land.
func (service *Service) discardPreview(context context.Context, url string) {
	if url == "" {
		return
	}
	if err := service.uploader.DeleteURL(context, url); err != nil {
		service.logger.WarnContext(context, "style_preview_orphaned",
			slog.String("url", url),
			slog.Any("error", err),
		)
		return
	}
	service.logger.InfoContext(context, "style_preview_discarded", slog.String("url", url))
}

func (service *Service) afterWrite(context context.Context, style *Style) {
	service.invalidateDefault(context)
	if style.IsDefault {
		service.logger.InfoContext(context, "style_default_changed",
			slog.String("style_id", style.ID),
		)
	}
}

func (service *Service) invalidateDefault(context context.Context) {
	if err := service.cache.Invalidate(context, catalog.KindStyle); err != nil {
		service.logger.WarnContext(context, "default_cache_invalidate_failed",
			slog.String("kind", string(catalog.KindStyle)),
			slog.Any("error", err),
		)
	}
}

func keyOf(style *Style) string {
	if style.Key == nil {
		return ""
	}
	return *style.Key
}
