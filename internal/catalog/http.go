// Copyright (c) 2026 DreamWeaver Studio. All rights reserved.

package catalog

import (
	"net/http"
	"strings"

	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/validate"
	"github.com/nicolomanni/dreamweaverstudio-sub000/pkg/pagination"
)

// ListParamsFromRequest reads page, pageSize, q and status from the query
// string. Paging values are clamped; an unknown status is a VALIDATION_ERROR.
func ListParamsFromRequest(request *http.Request) (ListParams, error) {
	query := request.URL.Query()
	status := strings.TrimSpace(query.Get("status"))

	if status != "" {
		validator := &validate.Validator{}
		if err := validator.OneOf("status", status, Statuses()...).Err(); err != nil {
			return ListParams{}, err
		}
	}

	paging := pagination.FromRequest(request)
	return NewListParams(paging.Page, paging.PageSize, query.Get("q"), Status(status)), nil
}
