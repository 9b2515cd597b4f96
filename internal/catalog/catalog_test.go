// Copyright (c) 2026 DreamWeaver Studio. All rights reserved.

package catalog_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/catalog"
)

/*
TestNewListParams_Clamping checks page and page size bounds.
*/
func TestNewListParams_Clamping(t *testing.T) {
	tests := []struct {
		name             string
		page, pageSize   int
		wantPage, wantPS int
	}{
		{"defaults", 0, 0, 1, 10},
		{"page_zero", 0, 20, 1, 20},
		{"negative_page", -4, 10, 1, 10},
		{"oversized_page_size", 2, 1000, 2, 50},
		{"negative_page_size", 1, -3, 1, 1},
		{"in_range", 3, 25, 3, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := catalog.NewListParams(tt.page, tt.pageSize, "", "")
			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantPS, params.PageSize)
		})
	}
}

/*
TestNewListParams_Filters trims the search term and drops unknown statuses.
*/
func TestNewListParams_Filters(t *testing.T) {
	params := catalog.NewListParams(1, 10, "  neon  ", catalog.StatusArchived)
	assert.Equal(t, "neon", params.Search)
	assert.Equal(t, catalog.StatusArchived, params.Status)

	params = catalog.NewListParams(1, 10, "", catalog.Status("deleted"))
	assert.Empty(t, params.Status)
}

/*
TestNewListResult_EmptyData serializes an empty page as [] rather than null.
*/
func TestNewListResult_EmptyData(t *testing.T) {
	result := catalog.NewListResult[string](nil, 0, catalog.NewListParams(0, 0, "", ""))

	body, err := json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[],"total":0,"page":1,"pageSize":10}`, string(body))
}

/*
TestCleanValue verifies the trim-or-unset rule.
*/
func TestCleanValue(t *testing.T) {
	assert.Nil(t, catalog.CleanValue(""))
	assert.Nil(t, catalog.CleanValue("   \t"))

	cleaned := catalog.CleanValue("  ink wash ")
	require.NotNil(t, cleaned)
	assert.Equal(t, "ink wash", *cleaned)

	assert.Nil(t, catalog.CleanPtr(nil))
}

/*
TestEscapeLike makes wildcard characters literal.
*/
func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, catalog.EscapeLike("100%"))
	assert.Equal(t, `a\_b`, catalog.EscapeLike("a_b"))
	assert.Equal(t, `c\\d`, catalog.EscapeLike(`c\d`))
}

/*
TestStatus_IsValid covers the lifecycle enum.
*/
func TestStatus_IsValid(t *testing.T) {
	assert.True(t, catalog.StatusActive.IsValid())
	assert.True(t, catalog.StatusArchived.IsValid())
	assert.False(t, catalog.Status("").IsValid())
	assert.False(t, catalog.Status("ACTIVE").IsValid())
}
