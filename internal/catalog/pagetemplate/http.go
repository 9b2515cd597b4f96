// Copyright (c) 2026 DreamWeaver Studio. All rights reserved.

package pagetemplate

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/catalog"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/middleware"
	requestutil "github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/request"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/respond"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/sec"
)

// # Handler Implementation

// Handler implements the HTTP layer for page templates.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the page template endpoints.
//
// Reads need the viewer role, writes the editor role.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(read chi.Router) {
		read.Use(middleware.RequireRole(sec.RoleViewer))

		read.Get("/", handler.list)
		read.Get("/default", handler.getDefault)
		read.Get("/{id}", handler.get)
	})

	router.Group(func(write chi.Router) {
		write.Use(middleware.RequireRole(sec.RoleEditor))

		write.Post("/", handler.create)
		write.Put("/{id}", handler.update)
		write.Patch("/{id}", handler.update)
		write.Delete("/{id}", handler.delete)
	})

	return router
}

/*
GET /api/v1/page-templates.

Request:
  - q: string (matched against name, key, description)
  - status: string (active, archived)
  - page: int (default 1)
  - pageSize: int (default 10, max 50)

Response:
  - 200: {data, total, page, pageSize}
  - 400: VALIDATION_ERROR: Unknown status
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params, err := catalog.ListParamsFromRequest(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.List(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.JSON(writer, http.StatusOK, result)
}

/*
GET /api/v1/page-templates/default.

Response:
  - 200: PageTemplate
  - 404: NOT_FOUND: No default template
*/
func (handler *Handler) getDefault(writer http.ResponseWriter, request *http.Request) {
	template, err := handler.service.GetDefault(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, template)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	template, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, template)
}

/*
POST /api/v1/page-templates.

Request:
  - body: Input

Response:
  - 201: PageTemplate
  - 400: VALIDATION_ERROR: Malformed body or missing fields
  - 409: CONFLICT: Key already used
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := input.Check(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	template, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, template)
}

/*
PUT|PATCH /api/v1/page-templates/{id}.

Description: Both verbs merge the provided fields over the stored record.

Response:
  - 200: PageTemplate
  - 400: VALIDATION_ERROR
  - 404: NOT_FOUND
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := input.Check(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	template, err := handler.service.Update(request.Context(), requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, template)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
