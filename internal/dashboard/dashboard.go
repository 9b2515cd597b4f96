// Copyright (c) 2026 DreamWeaver Studio. All rights reserved.

/*
Package dashboard aggregates catalog analytics for the studio home page.

The summary reports, per catalog kind, how many records exist in each
status and which record is the current default.
*/
package dashboard

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/catalog"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/catalog/pagetemplate"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/catalog/style"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/apperr"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/middleware"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/respond"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/sec"
)

// PageTemplates is the page template source of the summary.
type PageTemplates interface {
	CountByStatus(context context.Context) (map[catalog.Status]int, error)
	GetDefault(context context.Context) (*pagetemplate.PageTemplate, error)
}

// Styles is the style source of the summary.
type Styles interface {
	CountByStatus(context context.Context) (map[catalog.Status]int, error)
	GetDefault(context context.Context) (*style.Style, error)
}

// KindSummary describes one catalog kind.
type KindSummary struct {
	Total     int                    `json:"total"`
	ByStatus  map[catalog.Status]int `json:"byStatus"`
	DefaultID *string                `json:"defaultId"`
}

// Summary is the dashboard body.
type Summary struct {
	PageTemplates KindSummary `json:"pageTemplates"`
	Styles        KindSummary `json:"styles"`
}

// Service builds the dashboard summary.
type Service struct {
	templates PageTemplates
	styles    Styles
}

// NewService constructs a new [Service].
func NewService(templates PageTemplates, styles Styles) *Service {
	return &Service{templates: templates, styles: styles}
}

/*
Summary collects counts and defaults for both kinds concurrently.

Returns:
  - *Summary: Every status is present, with zero when no record has it
  - error: The first repository failure
*/
func (service *Service) Summary(context context.Context) (*Summary, error) {
	summary := &Summary{}
	group, ctx := errgroup.WithContext(context)

	group.Go(func() error {
		counts, err := service.templates.CountByStatus(ctx)
		summary.PageTemplates.Total, summary.PageTemplates.ByStatus = fill(counts)
		return err
	})
	group.Go(func() error {
		counts, err := service.styles.CountByStatus(ctx)
		summary.Styles.Total, summary.Styles.ByStatus = fill(counts)
		return err
	})
	group.Go(func() error {
		template, err := service.templates.GetDefault(ctx)
		if err != nil {
			return ignoreNotFound(err)
		}
		summary.PageTemplates.DefaultID = &template.ID
		return nil
	})
	group.Go(func() error {
		current, err := service.styles.GetDefault(ctx)
		if err != nil {
			return ignoreNotFound(err)
		}
		summary.Styles.DefaultID = &current.ID
		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return summary, nil
}

// fill returns the total and a copy of counts with every status present.
func fill(counts map[catalog.Status]int) (int, map[catalog.Status]int) {
	total := 0
	filled := make(map[catalog.Status]int, len(catalog.Statuses()))
	for _, status := range catalog.Statuses() {
		filled[catalog.Status(status)] = counts[catalog.Status(status)]
		total += counts[catalog.Status(status)]
	}
	return total, filled
}

func ignoreNotFound(err error) error {
	if apperr.HasCode(err, "NOT_FOUND") {
		return nil
	}
	return err
}

// # HTTP

// Handler implements the HTTP layer for the dashboard.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with GET /summary.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.With(middleware.RequireRole(sec.RoleViewer)).Get("/summary", handler.summary)
	return router
}

func (handler *Handler) summary(writer http.ResponseWriter, request *http.Request) {
	summary, err := handler.service.Summary(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, summary)
}
