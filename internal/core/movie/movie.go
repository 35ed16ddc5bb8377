// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package movie defines the Movie Lens catalogue aggregate and its data access.

A movie is one core row in 'movies' plus rows in eight tables it owns
(abstract, countries, categories, keywords, casts, languages, trailers,
links). Those rows have no lifecycle of their own: they are written, replaced
and removed only through the movie's write operations.

Core Responsibility:

  - Read Model: listings, detail, cast and crew, keyword ranking.
  - Write Model: transactional create, update and delete of the aggregate.
  - Identity: the canonical int64 [ID] accepted as a JSON number or string.

Field names on the wire are camelCase; the column names they map to are
listed in the schema package.
*/
package movie

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/taibuivan/movielens/internal/platform/apperr"
)

// # Identity

// ID is the canonical movie identifier.
type ID int64

/*
ParseID normalizes an external identifier (path segment, query value) into an [ID].

Parameters:
  - raw: string (decimal digits, surrounding spaces ignored)

Returns:
  - ID: The parsed identifier
  - error: ValidationError when raw is not a positive integer
*/
func ParseID(raw string) (ID, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || value < 1 {
		return 0, apperr.ValidationError("Invalid movie id", apperr.FieldError{
			Field:   FieldID,
			Message: "Must be a positive integer",
		})
	}
	return ID(value), nil
}

// UnmarshalJSON accepts either a JSON number or a numeric string. A JSON null
// leaves the identifier unset.
func (id *ID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	raw := string(data)
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = unquoted
	}

	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return fmt.Errorf("movie id %s is not an integer", data)
	}

	*id = ID(value)
	return nil
}

// String returns the decimal form of the identifier.
func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// # Errors

// ErrNotFound is returned by lookups and writes that match no movie row.
var ErrNotFound = apperr.NotFound("Movie")

// NotFoundError builds the client-facing 404 for a specific movie id.
func NotFoundError(id ID) *apperr.AppError {
	return &apperr.AppError{
		Code:       apperr.CodeNotFound,
		Message:    fmt.Sprintf("Movie with id %d not found.", id),
		HTTPStatus: ErrNotFound.HTTPStatus,
		Cause:      ErrNotFound,
	}
}

// # Read Model

// Movie is the read view returned by listings and detail lookups.
//
// YoutubeTrailerKey, Abstract and Category are joined from the trailer,
// English abstract and category tables.
type Movie struct {
	ID                ID      `json:"id"`
	Name              string  `json:"name"`
	Date              *string `json:"date"`
	Kind              string  `json:"kind"`
	Runtime           *int32  `json:"runtime"`
	Budget            *string `json:"budget"`
	Revenue           *string `json:"revenue"`
	Homepage          *string `json:"homepage"`
	VoteAverage       *string `json:"voteAverage"`
	VotesCount        *int64  `json:"votesCount"`
	YoutubeTrailerKey *string `json:"youtubeTrailerKey"`
	Abstract          *string `json:"abstract"`
	Category          *string `json:"category"`
}

// MovieWithKeywordCount is one row of the keyword ranking.
type MovieWithKeywordCount struct {
	ID           ID      `json:"id"`
	Name         string  `json:"name"`
	Date         *string `json:"date"`
	Kind         string  `json:"kind"`
	Runtime      *int32  `json:"runtime"`
	Budget       *string `json:"budget"`
	Revenue      *string `json:"revenue"`
	VoteAverage  *string `json:"voteAverage"`
	VotesCount   *int64  `json:"votesCount"`
	Category     *string `json:"category"`
	TotalKeyword int64   `json:"totalKeyword"`
}

// CastMember is a person credited on a movie together with their job.
type CastMember struct {
	ID         int64  `json:"id"`
	PersonName string `json:"personName"`
	Role       string `json:"role"`
	JobName    string `json:"jobName"`
	Position   int32  `json:"position"`
}

// # Write Model

// Core holds the columns of the 'movies' row.
//
// Money and vote average travel as exact decimal strings; Date is an ISO
// calendar date (YYYY-MM-DD).
type Core struct {
	ID          ID      `json:"id"`
	Name        string  `json:"name"`
	ParentID    int64   `json:"parentId"`
	Date        *string `json:"date"`
	SeriesID    *int64  `json:"seriesId"`
	Kind        string  `json:"kind"`
	Runtime     *int32  `json:"runtime"`
	Budget      *string `json:"budget"`
	Revenue     *string `json:"revenue"`
	Homepage    *string `json:"homepage"`
	VoteAverage *string `json:"voteAverage"`
	VotesCount  *int64  `json:"votesCount"`
}

// EnAbstract is the English synopsis, at most one per movie.
type EnAbstract struct {
	Abstract string `json:"abstract"`
}

// Country is a production country of the movie.
type Country struct {
	Country string `json:"country"`
}

// CategoryRef links the movie to a category. It is used for both categories
// and keywords, which live in separate tables.
type CategoryRef struct {
	CategoryID int64 `json:"categoryId"`
}

// Cast credits a person with a job on the movie.
type Cast struct {
	PersonID int64  `json:"personId"`
	JobID    int64  `json:"jobId"`
	Role     string `json:"role"`
	Position int32  `json:"position"`
}

// Language is a spoken language of the movie.
type Language struct {
	Language string `json:"language"`
}

// Trailer is a video for the movie. TrailerID is generated when omitted.
type Trailer struct {
	TrailerID *int64 `json:"trailerId"`
	Key       string `json:"key"`
	Language  string `json:"language"`
	Source    string `json:"source"`
}

// Link is an external reference for the movie.
type Link struct {
	Key      string `json:"key"`
	Language string `json:"language"`
	Source   string `json:"source"`
}

// Aggregate is a movie with every row it owns.
//
// As a write result the values are the ones returned by the database, in
// input order per section.
type Aggregate struct {
	Core
	EnAbstract *EnAbstract   `json:"enAbstract"`
	Countries  []Country     `json:"countries"`
	Categories []CategoryRef `json:"categories"`
	Keywords   []CategoryRef `json:"keywords"`
	Casts      []Cast        `json:"casts"`
	Languages  []Language    `json:"languages"`
	Trailers   []Trailer     `json:"trailers"`
	Links      []Link        `json:"links"`
}

// NewMovie is the create and update payload; it has the aggregate's shape.
type NewMovie = Aggregate

// MarshalJSON renders nil sections as empty arrays.
func (aggregate Aggregate) MarshalJSON() ([]byte, error) {
	type plain Aggregate
	out := plain(aggregate)

	out.Countries = orEmpty(out.Countries)
	out.Categories = orEmpty(out.Categories)
	out.Keywords = orEmpty(out.Keywords)
	out.Casts = orEmpty(out.Casts)
	out.Languages = orEmpty(out.Languages)
	out.Trailers = orEmpty(out.Trailers)
	out.Links = orEmpty(out.Links)

	return json.Marshal(out)
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

// # Field Identifiers

// Field identifiers used in validation details.
const (
	FieldID          = "id"
	FieldName        = "name"
	FieldParentID    = "parentId"
	FieldDate        = "date"
	FieldSeriesID    = "seriesId"
	FieldKind        = "kind"
	FieldRuntime     = "runtime"
	FieldBudget      = "budget"
	FieldRevenue     = "revenue"
	FieldHomepage    = "homepage"
	FieldVoteAverage = "voteAverage"
	FieldVotesCount  = "votesCount"
	FieldEnAbstract  = "enAbstract"
	FieldCountries   = "countries"
	FieldCategories  = "categories"
	FieldKeywords    = "keywords"
	FieldCasts       = "casts"
	FieldLanguages   = "languages"
	FieldTrailers    = "trailers"
	FieldLinks       = "links"
)
