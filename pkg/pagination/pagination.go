// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how page-based navigation is requested via query parameters
// (page, limit, sort), how those parameters are resolved into concrete
// LIMIT/OFFSET/ORDER BY values, and how the resulting metadata is delivered in
// the API response envelope.
//
// Sortable column names are NOT checked here. The store that turns a
// [Resolved] into SQL owns the whitelist for its table.
package pagination

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/taibuivan/movielens/internal/platform/apperr"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 20
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
	// DefaultColumn is the sort column used when no sort is requested.
	DefaultColumn = "id"
)

// Direction is a SQL sort direction.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// Query parameter names.
const (
	ParamPage  = "page"
	ParamLimit = "limit"
	ParamSort  = "sort"
)

// Request holds the raw, optional paging fields of an inbound list call.
type Request struct {
	Page  *int
	Limit *int
	// Sort has the form "<column>:<asc|desc>"; the direction may be omitted.
	Sort string
}

// Resolved is the concrete paging window derived from a [Request].
type Resolved struct {
	Page      int
	Limit     int
	Offset    int
	Column    string
	Direction Direction
}

// Default returns the window used when a request carries no paging fields.
func Default() Resolved {
	return Resolved{
		Page:      DefaultPage,
		Limit:     DefaultLimit,
		Offset:    0,
		Column:    DefaultColumn,
		Direction: Asc,
	}
}

// Resolve normalizes a [Request] into limit, offset and ordering.
//
// # Rules
//
//   - limit defaults to [DefaultLimit] and must be positive.
//   - offset is (page-1)*limit when page is present, otherwise 0; a page whose
//     offset would overflow int is rejected.
//   - sort defaults to "id:asc"; the direction must be asc or desc.
func Resolve(request Request) (Resolved, error) {
	resolved := Default()
	var details []apperr.FieldError

	// Limit
	if request.Limit != nil {
		if *request.Limit < 1 {
			details = append(details, apperr.FieldError{Field: ParamLimit, Message: "Must be a positive integer"})
		} else {
			resolved.Limit = *request.Limit
		}
	}

	// Page
	if request.Page != nil {
		if *request.Page < 1 {
			details = append(details, apperr.FieldError{Field: ParamPage, Message: "Must be a positive integer"})
		} else {
			resolved.Page = *request.Page
		}
	}

	// Sort
	if request.Sort != "" {
		column, direction, err := parseSort(request.Sort)
		if err != nil {
			details = append(details, *err)
		} else {
			resolved.Column = column
			resolved.Direction = direction
		}
	}

	// Offset must stay representable
	if len(details) == 0 && resolved.Page-1 > math.MaxInt/resolved.Limit {
		details = append(details, apperr.FieldError{Field: ParamPage, Message: "Page is out of range"})
	}

	if len(details) > 0 {
		return Resolved{}, apperr.ValidationError("Invalid pagination parameters", details...)
	}

	resolved.Offset = (resolved.Page - 1) * resolved.Limit
	return resolved, nil
}

// parseSort splits "<column>:<direction>" on ':'.
func parseSort(raw string) (string, Direction, *apperr.FieldError) {
	column, direction, _ := strings.Cut(raw, ":")
	column = strings.TrimSpace(column)

	if column == "" {
		return "", "", &apperr.FieldError{Field: ParamSort, Message: "Sort column is required"}
	}

	switch strings.ToLower(strings.TrimSpace(direction)) {
	case "", "asc":
		return column, Asc, nil
	case "desc":
		return column, Desc, nil
	default:
		return "", "", &apperr.FieldError{Field: ParamSort, Message: "Sort direction must be asc or desc"}
	}
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewMeta constructs pagination metadata for a response.
//
// It automatically calculates the TotalPages based on the total count and limit.
func NewMeta(page, limit, total int) Meta {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// FromRequest parses "page", "limit" and "sort" query parameters and resolves them.
//
// Unlike a clamping parser, malformed values are reported as a validation
// error so clients learn about typos instead of silently getting page one.
func FromRequest(r *http.Request) (Resolved, error) {
	query := r.URL.Query()
	request := Request{Sort: query.Get(ParamSort)}

	page, pageErr := parseIntParam(query.Get(ParamPage), ParamPage)
	limit, limitErr := parseIntParam(query.Get(ParamLimit), ParamLimit)

	var details []apperr.FieldError
	for _, fieldErr := range []*apperr.FieldError{pageErr, limitErr} {
		if fieldErr != nil {
			details = append(details, *fieldErr)
		}
	}
	if len(details) > 0 {
		return Resolved{}, apperr.ValidationError("Invalid pagination parameters", details...)
	}

	request.Page = page
	request.Limit = limit
	return Resolve(request)
}

// parseIntParam parses a single optional integer query parameter.
func parseIntParam(raw, key string) (*int, *apperr.FieldError) {
	if raw == "" {
		return nil, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &apperr.FieldError{Field: key, Message: "Must be an integer"}
	}

	return &n, nil
}
