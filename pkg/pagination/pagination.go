// Copyright (c) 2026 DreamWeaver Studio. All rights reserved.

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// Catalog lists are requested with "page" and "pageSize" query parameters and
// answered with a flat {data, total, page, pageSize} body. This package owns
// the clamping rules so every list endpoint behaves identically.
package pagination

import (
	"math"
	"net/http"

	"github.com/nicolomanni/dreamweaverstudio-sub000/pkg/convert"
)

const (
	// DefaultPageSize is the number of items per page if not specified.
	DefaultPageSize = 10
	// MaxPageSize is the upper bound for items per page.
	MaxPageSize = 50
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
	// MaxPage keeps (Page-1)*PageSize within int for every page size.
	MaxPage = math.MaxInt / MaxPageSize
)

// Params holds a clamped page and page size.
type Params struct {
	Page     int
	PageSize int
}

// New clamps raw values into valid [Params].
//
// # Clamping
//
// A zero page or page size means "not provided" and takes the default.
// The page is then clamped to [1, MaxPage] and the page size to
// [1, MaxPageSize], so page=0 becomes 1, pageSize=1000 becomes 50 and
// pageSize=-3 becomes 1. A page past the last one yields an empty list.
func New(page, pageSize int) Params {
	if page == 0 {
		page = DefaultPage
	}
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}

	return Params{
		Page:     min(max(page, 1), MaxPage),
		PageSize: min(max(pageSize, 1), MaxPageSize),
	}
}

// Offset returns the SQL OFFSET value derived from Page and PageSize.
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// FromRequest parses "page" and "pageSize" query parameters from an HTTP request.
//
// Unparseable values are treated as absent.
func FromRequest(r *http.Request) Params {
	query := r.URL.Query()
	return New(
		convert.ToIntD(query.Get("page"), 0),
		convert.ToIntD(query.Get("pageSize"), 0),
	)
}
