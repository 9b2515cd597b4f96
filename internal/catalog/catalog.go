// Copyright (c) 2026 DreamWeaver Studio. All rights reserved.

/*
Package catalog holds the vocabulary shared by the two studio catalog kinds,
page templates and comic styles.

Core Responsibility:

  - Lifecycle: the [Status] enum both kinds carry.
  - Listing: [ListParams] clamping and the [ListResult] body.
  - Normalization: [CleanValue], the trim-or-unset rule for optional strings.
  - Defaults: the [DefaultCache] holding the current default record per kind.

Each kind lives in its own sub-package and owns its draft, payload,
validation and persistence rules.
*/
package catalog

import (
	"strings"

	"github.com/nicolomanni/dreamweaverstudio-sub000/pkg/pagination"
)

// # Lifecycle

// Status represents the lifecycle state of a catalog record.
type Status string

const (
	// StatusActive records are offered in the project editors.
	StatusActive Status = "active"

	// StatusArchived records stay in the catalog but are hidden from pickers.
	StatusArchived Status = "archived"
)

// DefaultStatus is used when a draft carries no status.
const DefaultStatus = StatusActive

// IsValid reports whether s is a recognised [Status] value.
func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusArchived
}

// Statuses lists every [Status] as strings, for boundary checks.
func Statuses() []string {
	return []string{string(StatusActive), string(StatusArchived)}
}

// Kind names a catalog entity kind. It doubles as the cache key suffix.
type Kind string

const (
	KindPageTemplate Kind = "pagetemplate"
	KindStyle        Kind = "style"
)

// # Listing

// ListParams are the list query options shared by both kinds.
type ListParams struct {
	pagination.Params

	// Search is matched case-insensitively against name, key and description.
	Search string

	// Status, when set, is matched exactly.
	Status Status
}

// NewListParams clamps raw paging values and trims the search term.
//
// An unknown status is dropped; the HTTP layer rejects it before this point.
func NewListParams(page, pageSize int, search string, status Status) ListParams {
	params := ListParams{
		Params: pagination.New(page, pageSize),
		Search: strings.TrimSpace(search),
	}
	if status.IsValid() {
		params.Status = status
	}
	return params
}

// ListResult is the page of records returned by a list operation.
type ListResult[T any] struct {
	Data     []T `json:"data"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

// NewListResult wraps a page of records. A nil slice is replaced by an empty
// one so the JSON body never carries "data": null.
func NewListResult[T any](data []T, total int, params ListParams) ListResult[T] {
	if data == nil {
		data = []T{}
	}
	return ListResult[T]{
		Data:     data,
		Total:    total,
		Page:     params.Page,
		PageSize: params.PageSize,
	}
}

// # Normalization

// CleanValue trims s and returns nil when nothing is left.
func CleanValue(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// CleanPtr is [CleanValue] for an optional input.
func CleanPtr(s *string) *string {
	if s == nil {
		return nil
	}
	return CleanValue(*s)
}

// EscapeLike escapes the LIKE wildcards in a user-provided search term so it
// is matched literally.
func EscapeLike(term string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(term)
}
