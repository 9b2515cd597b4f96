// Copyright (c) 2026 DreamWeaver Studio. All rights reserved.

package studio

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/apperr"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/middleware"
	requestutil "github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/request"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/respond"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/sec"
)

// Handler implements the HTTP layer for the studio tools.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterStyleTools adds POST /extract and POST /preview to the style
// router. Both need the editor role. Other methods on these paths answer
// 405 instead of being read as a style id.
func (handler *Handler) RegisterStyleTools(router chi.Router) {
	router.Handle("/extract", http.HandlerFunc(postOnly))
	router.Handle("/preview", http.HandlerFunc(postOnly))

	router.Group(func(write chi.Router) {
		write.Use(middleware.RequireRole(sec.RoleEditor))

		write.Post("/extract", handler.extract)
		write.Post("/preview", handler.preview)
	})
}

func postOnly(writer http.ResponseWriter, request *http.Request) {
	writer.Header().Set("Allow", http.MethodPost)
	respond.Error(writer, request, apperr.MethodNotAllowed())
}

// BillingRoutes returns a [chi.Router] with the billing endpoints.
func (handler *Handler) BillingRoutes() chi.Router {
	router := chi.NewRouter()
	router.With(middleware.RequireRole(sec.RoleViewer)).Get("/balance", handler.balance)
	return router
}

/*
POST /api/v1/styles/extract.

Request:
  - prompt: string
  - referenceImage: string (optional base64 data URL)

Response:
  - 200: partial style fields with a suggested key
  - 400: VALIDATION_ERROR
  - 502: UPSTREAM_ERROR
  - 503: SERVICE_UNAVAILABLE
*/
func (handler *Handler) extract(writer http.ResponseWriter, request *http.Request) {
	var body ExtractRequest
	if err := requestutil.DecodeJSON(writer, request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	suggestion, err := handler.service.ExtractStyle(request.Context(), body)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, suggestion)
}

/*
POST /api/v1/styles/preview.

Request:
  - prompt: string
  - style: object (optional style fields)

Response:
  - 200: {image: data URL}
*/
func (handler *Handler) preview(writer http.ResponseWriter, request *http.Request) {
	var body PreviewRequest
	if err := requestutil.DecodeJSON(writer, request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	preview, err := handler.service.GeneratePreview(request.Context(), body)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, preview)
}

func (handler *Handler) balance(writer http.ResponseWriter, request *http.Request) {
	balance, err := handler.service.Balance(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, balance)
}
