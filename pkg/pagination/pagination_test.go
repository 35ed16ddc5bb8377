// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"math"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/movielens/internal/platform/apperr"
	"github.com/taibuivan/movielens/pkg/pagination"
	"github.com/taibuivan/movielens/pkg/pointer"
)

/*
TestResolve_Defaults checks limit=20, offset=0 and id ascending.
*/
func TestResolve_Defaults(t *testing.T) {
	resolved, err := pagination.Resolve(pagination.Request{})
	require.NoError(t, err)

	assert.Equal(t, 20, resolved.Limit)
	assert.Equal(t, 0, resolved.Offset)
	assert.Equal(t, 1, resolved.Page)
	assert.Equal(t, "id", resolved.Column)
	assert.Equal(t, pagination.Asc, resolved.Direction)
}

/*
TestResolve_Offset checks offset = (page-1)*limit.
*/
func TestResolve_Offset(t *testing.T) {
	tests := []struct {
		name   string
		page   *int
		limit  *int
		offset int
		size   int
	}{
		{"first_page", pointer.To(1), pointer.To(10), 0, 10},
		{"third_page", pointer.To(3), pointer.To(10), 20, 10},
		{"page_default_limit", pointer.To(2), nil, 20, 20},
		{"limit_without_page", nil, pointer.To(5), 0, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolved, err := pagination.Resolve(pagination.Request{Page: tt.page, Limit: tt.limit})
			require.NoError(t, err)

			assert.Equal(t, tt.offset, resolved.Offset)
			assert.Equal(t, tt.size, resolved.Limit)
		})
	}
}

/*
TestResolve_Sort parses column and direction.
*/
func TestResolve_Sort(t *testing.T) {
	tests := []struct {
		name      string
		sort      string
		column    string
		direction pagination.Direction
	}{
		{"asc", "name:asc", "name", pagination.Asc},
		{"desc_upper", "revenue:DESC", "revenue", pagination.Desc},
		{"no_direction", "runtime", "runtime", pagination.Asc},
		{"camel_column", "voteAverage:desc", "voteAverage", pagination.Desc},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolved, err := pagination.Resolve(pagination.Request{Sort: tt.sort})
			require.NoError(t, err)

			assert.Equal(t, tt.column, resolved.Column)
			assert.Equal(t, tt.direction, resolved.Direction)
		})
	}
}

/*
TestResolve_Invalid rejects non-positive values, unknown directions and
pages whose offset would overflow.
*/
func TestResolve_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		request pagination.Request
		field   string
	}{
		{"zero_limit", pagination.Request{Limit: pointer.To(0)}, "limit"},
		{"negative_page", pagination.Request{Page: pointer.To(-1)}, "page"},
		{"bad_direction", pagination.Request{Sort: "name:sideways"}, "sort"},
		{"empty_column", pagination.Request{Sort: ":asc"}, "sort"},
		{"offset_overflow", pagination.Request{Page: pointer.To(math.MaxInt / 2), Limit: pointer.To(4)}, "page"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pagination.Resolve(tt.request)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, apperr.CodeValidation, ae.Code)
			require.Len(t, ae.Details, 1)
			assert.Equal(t, tt.field, ae.Details[0].Field)
		})
	}
}

/*
TestResolve_Deterministic resolves identical requests identically.
*/
func TestResolve_Deterministic(t *testing.T) {
	request := pagination.Request{Page: pointer.To(4), Limit: pointer.To(7), Sort: "name:desc"}

	first, err := pagination.Resolve(request)
	require.NoError(t, err)
	second, err := pagination.Resolve(request)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 21, first.Offset)
}

/*
TestFromRequest parses query parameters.
*/
func TestFromRequest(t *testing.T) {
	request := httptest.NewRequest("GET", "/movies?page=2&limit=15&sort=name:desc", nil)

	resolved, err := pagination.FromRequest(request)
	require.NoError(t, err)

	assert.Equal(t, 15, resolved.Limit)
	assert.Equal(t, 15, resolved.Offset)
	assert.Equal(t, "name", resolved.Column)
	assert.Equal(t, pagination.Desc, resolved.Direction)
}

/*
TestFromRequest_Malformed reports both malformed integers at once.
*/
func TestFromRequest_Malformed(t *testing.T) {
	request := httptest.NewRequest("GET", "/movies?page=one&limit=x", nil)

	_, err := pagination.FromRequest(request)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Len(t, ae.Details, 2)
}

/*
TestNewMeta calculates the page count.
*/
func TestNewMeta(t *testing.T) {
	assert.Equal(t, 3, pagination.NewMeta(1, 20, 41).TotalPages)
	assert.Equal(t, 0, pagination.NewMeta(1, 20, 0).TotalPages)
	assert.Equal(t, 0, pagination.NewMeta(1, 0, 10).TotalPages)
}
