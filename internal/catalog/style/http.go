// Copyright (c) 2026 DreamWeaver Studio. All rights reserved.

package style

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/catalog"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/middleware"
	requestutil "github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/request"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/respond"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/sec"
)

// Handler implements the HTTP layer for styles.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the style endpoints.
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
GET /api/v1/styles.

Request:
  - q: string (matched against name, key, description)
  - status: string (active, archived)
  - page, pageSize: int

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

func (handler *Handler) getDefault(writer http.ResponseWriter, request *http.Request) {
	style, err := handler.service.GetDefault(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, style)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	style, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, style)
}

/*
POST /api/v1/styles.

Request:
  - body: Input (previewImageUrl may be a base64 data URL)

Response:
  - 201: Style
  - 400: VALIDATION_ERROR
  - 409: CONFLICT: Key already used
  - 502: UPSTREAM_ERROR: Preview upload failed
  - 503: SERVICE_UNAVAILABLE: Image storage not configured
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

	style, err := handler.service.Create(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, style)
}

// update serves both PUT and PATCH; each merges over the stored record.
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

	style, err := handler.service.Update(request.Context(), requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, style)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
