// Copyright (c) 2026 DreamWeaver Studio. All rights reserved.

package pagetemplate

import (
	"context"
	"log/slog"

	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/catalog"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/apperr"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/validate"
	"github.com/nicolomanni/dreamweaverstudio-sub000/pkg/uuid"
)

// # Service Layer

// Service orchestrates draft building, validation and persistence of page
// templates.
type Service struct {
	repo   Repository
	cache  catalog.DefaultCache
	logger *slog.Logger
}

// NewService constructs a new [Service]. A nil cache disables caching.
func NewService(repo Repository, cache catalog.DefaultCache, logger *slog.Logger) *Service {
	if cache == nil {
		cache = catalog.NoopDefaultCache{}
	}
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

func errNotFound() error {
	return apperr.NotFound("Page template")
}

// # Lookups

// List returns one page of templates.
func (service *Service) List(context context.Context, params catalog.ListParams) (catalog.ListResult[*PageTemplate], error) {
	templates, total, err := service.repo.List(context, params)
	if err != nil {
		return catalog.ListResult[*PageTemplate]{}, err
	}
	return catalog.NewListResult(templates, total, params), nil
}

// Get returns a template by id. Unknown or malformed ids are NOT_FOUND.
func (service *Service) Get(context context.Context, id string) (*PageTemplate, error) {
	if !uuid.Valid(id) {
		return nil, errNotFound()
	}

	template, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, errNotFound()
	}
	return template, nil
}

/*
GetDefault returns the current default template.

Description: The cache is consulted first; on a miss the repository is
queried and the result cached. Cache failures are logged and ignored.

Returns:
  - *PageTemplate: The default template
  - error: NOT_FOUND when no template is the default
*/
func (service *Service) GetDefault(context context.Context) (*PageTemplate, error) {
	cached := &PageTemplate{}
	found, err := service.cache.Get(context, catalog.KindPageTemplate, cached)
	if err != nil {
		service.logger.WarnContext(context, "default_cache_read_failed",
			slog.String("kind", string(catalog.KindPageTemplate)),
			slog.Any("error", err),
		)
	}
	if found {
		return cached, nil
	}

	template, err := service.repo.FindDefault(context)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, apperr.NotFound("Default page template")
	}

	if err := service.cache.Set(context, catalog.KindPageTemplate, template); err != nil {
		service.logger.WarnContext(context, "default_cache_write_failed",
			slog.String("kind", string(catalog.KindPageTemplate)),
			slog.Any("error", err),
		)
		return template, nil
	}

	// A write committed between the lookup and the Set has already run its
	// invalidation, so the entry is confirmed against a second lookup.
	current, err := service.repo.FindDefault(context)
	if err != nil || !sameRevision(template, current) {
		service.invalidateDefault(context)
		service.logger.InfoContext(context, "default_cache_fill_discarded",
			slog.String("kind", string(catalog.KindPageTemplate)),
		)
	}
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, apperr.NotFound("Default page template")
	}
	return current, nil
}

// sameRevision reports whether two reads returned the same stored row.
func sameRevision(a, b *PageTemplate) bool {
	return a != nil && b != nil && a.ID == b.ID && a.UpdatedAt.Equal(b.UpdatedAt)
}

// FindByKey returns the template with the given key, or nil when none exists.
func (service *Service) FindByKey(context context.Context, key string) (*PageTemplate, error) {
	return service.repo.FindByKey(context, key)
}

// CountByStatus returns the number of templates per status.
func (service *Service) CountByStatus(context context.Context) (map[catalog.Status]int, error) {
	return service.repo.CountByStatus(context)
}

// # Mutations

/*
Create validates and stores a new template.

Description: The input is turned into a draft with defaults, checked for
missing fields and for an aspect ratio matching the orientation, then
normalized into a payload.

Parameters:
  - context: context.Context
  - input: Input (the request body)

Returns:
  - *PageTemplate: The stored template
  - error: VALIDATION_ERROR listing missing fields, CONFLICT on duplicate key
*/
func (service *Service) Create(context context.Context, input Input) (*PageTemplate, error) {
	payload, err := prepare(BuildDraft(&input))
	if err != nil {
		return nil, err
	}

	template, err := service.repo.Create(context, payload)
	if err != nil {
		return nil, err
	}

	service.afterWrite(context, template)
	service.logger.InfoContext(context, "page_template_created",
		slog.String("page_template_id", template.ID),
		slog.String("key", keyOf(template)),
		slog.Bool("is_default", template.IsDefault),
	)

	return template, nil
}

/*
Update merges a partial input over an existing template and stores it.

Parameters:
  - context: context.Context
  - id: string
  - patch: Input (only set fields change)

Returns:
  - *PageTemplate: The stored template
  - error: NOT_FOUND, VALIDATION_ERROR or CONFLICT
*/
func (service *Service) Update(context context.Context, id string, patch Input) (*PageTemplate, error) {
	existing, err := service.Get(context, id)
	if err != nil {
		return nil, err
	}

	merged := InputFromEntity(existing).Merge(patch)
	payload, err := prepare(BuildDraft(&merged))
	if err != nil {
		return nil, err
	}

	template, err := service.repo.Update(context, id, payload)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, errNotFound()
	}

	service.afterWrite(context, template)
	service.logger.InfoContext(context, "page_template_updated",
		slog.String("page_template_id", template.ID),
		slog.Bool("is_default", template.IsDefault),
	)

	return template, nil
}

// Delete removes a template. Unknown ids are NOT_FOUND.
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
	service.logger.WarnContext(context, "page_template_deleted", slog.String("page_template_id", id))
	return nil
}

// prepare validates a draft and returns its payload.
func prepare(draft Draft) (Payload, error) {
	if result := Validate(draft); !result.Valid {
		return Payload{}, result.Err()
	}

	validator := &validate.Validator{}
	checkAspectRatio(validator, draft.Orientation, draft.AspectRatio)
	if err := validator.Err(); err != nil {
		return Payload{}, err
	}

	return BuildPayload(draft), nil
}

func (service *Service) afterWrite(context context.Context, template *PageTemplate) {
	service.invalidateDefault(context)
	if template.IsDefault {
		service.logger.InfoContext(context, "page_template_default_changed",
			slog.String("page_template_id", template.ID),
		)
	}
}

func (service *Service) invalidateDefault(context context.Context) {
	if err := service.cache.Invalidate(context, catalog.KindPageTemplate); err != nil {
		service.logger.WarnContext(context, "default_cache_invalidate_failed",
			slog.String("kind", string(catalog.KindPageTemplate)),
			slog.Any("error", err),
		)
	}
}

func keyOf(template *PageTemplate) string {
	if template.Key == nil {
		return ""
	}
	return *template.Key
}
