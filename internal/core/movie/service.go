// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/taibuivan/movielens/internal/platform/ctxutil"
	"github.com/taibuivan/movielens/internal/platform/validate"
	"github.com/taibuivan/movielens/pkg/pagination"
	"github.com/taibuivan/movielens/pkg/pointer"
)

// decimalPattern matches the exact decimal strings accepted for money and votes.
var decimalPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)

// dateLayout is the wire format of movie dates.
const dateLayout = time.DateOnly

// # Service Layer

// Service orchestrates the business rules of the movie catalogue.
type Service struct {
	store Store
}

// NewService constructs a new [Service] on top of a [Store].
func NewService(store Store) *Service {
	return &Service{store: store}
}

// # Lookups

// ListMovies returns one page of movies and the total count.
func (service *Service) ListMovies(context context.Context, page pagination.Resolved) ([]*Movie, int, error) {
	return service.store.ListMovies(context, page)
}

// GetMovie returns a movie by id, or [ErrNotFound].
func (service *Service) GetMovie(context context.Context, id ID) (*Movie, error) {
	return service.store.FindByID(context, id)
}

// ListCastAndCrew returns the credits of a movie; an empty slice is a valid result.
func (service *Service) ListCastAndCrew(context context.Context, id ID) ([]*CastMember, error) {
	return service.store.ListCastAndCrew(context, id)
}

// ListTopByKeywordCount returns the keyword ranking page.
func (service *Service) ListTopByKeywordCount(context context.Context, page pagination.Resolved) ([]*MovieWithKeywordCount, error) {
	return service.store.ListTopByKeywordCount(context, page)
}

// # Management

/*
CreateMovie validates the payload and persists the aggregate.

Description: The payload id is required: movie ids come from the catalogue
source rather than a sequence. Dates are normalized to YYYY-MM-DD.

Parameters:
  - context: context.Context
  - movie: *NewMovie

Returns:
  - *Aggregate: The stored aggregate
  - error: ValidationError, Conflict, TransactionAborted
*/
func (service *Service) CreateMovie(context context.Context, movie *NewMovie) (*Aggregate, error) {
	if err := normalize(movie); err != nil {
		return nil, err
	}
	if err := validatePayload(movie); err != nil {
		return nil, err
	}

	created, err := service.store.Create(context, movie)
	if err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "movie_created",
		slog.Int64("movie_id", int64(created.ID)),
		slog.Int("casts", len(created.Casts)),
		slog.Int("trailers", len(created.Trailers)),
	)
	return created, nil
}

/*
UpdateMovie validates the payload and replaces the stored aggregate.

Description: The id is immutable: a payload id, when present, must equal the
path id. The path id is authoritative for the write.

Returns:
  - *Aggregate: The stored aggregate
  - error: ValidationError, ErrNotFound, Conflict, TransactionAborted
*/
func (service *Service) UpdateMovie(context context.Context, id ID, movie *NewMovie) (*Aggregate, error) {
	if movie.ID != 0 && movie.ID != id {
		return nil, validate.RequiredError(FieldID, fmt.Sprintf("Must match the path id %d", id))
	}
	movie.ID = id

	if err := normalize(movie); err != nil {
		return nil, err
	}
	if err := validatePayload(movie); err != nil {
		return nil, err
	}

	updated, err := service.store.Update(context, id, movie)
	if err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "movie_updated", slog.Int64("movie_id", int64(id)))
	return updated, nil
}

// DeleteMovie removes a movie and every row it owns.
func (service *Service) DeleteMovie(context context.Context, id ID) (ID, error) {
	deleted, err := service.store.Delete(context, id)
	if err != nil {
		return 0, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "movie_deleted", slog.Int64("movie_id", int64(deleted)))
	return deleted, nil
}

// # Validation

// normalize composes free text to Unicode NFC, so that visually equal names
// compare equal in SQL, and rewrites the release date to YYYY-MM-DD. Full
// timestamps are accepted and truncated to their calendar date.
func normalize(movie *NewMovie) error {
	movie.Name = text(movie.Name)
	movie.Kind = text(movie.Kind)
	if movie.EnAbstract != nil {
		movie.EnAbstract.Abstract = norm.NFC.String(movie.EnAbstract.Abstract)
	}
	for index := range movie.Casts {
		movie.Casts[index].Role = text(movie.Casts[index].Role)
	}

	raw := strings.TrimSpace(pointer.Val(movie.Date))
	if raw == "" {
		movie.Date = nil
		return nil
	}

	for _, layout := range []string{dateLayout, time.RFC3339Nano} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			movie.Date = pointer.To(parsed.Format(dateLayout))
			return nil
		}
	}

	return validate.RequiredError(FieldDate, "Must be a date in YYYY-MM-DD format")
}

// validatePayload checks the shape rules the database cannot express.
func validatePayload(movie *NewMovie) error {
	validator := &validate.Validator{}

	// Core row
	validator.Positive(FieldID, int64(movie.ID)).
		Required(FieldName, movie.Name).
		Required(FieldKind, movie.Kind).
		NonNegative(FieldParentID, movie.ParentID)

	if movie.Runtime != nil {
		validator.NonNegative(FieldRuntime, int64(*movie.Runtime))
	}
	if movie.VotesCount != nil {
		validator.NonNegative(FieldVotesCount, *movie.VotesCount)
	}
	checkDecimal(validator, FieldBudget, movie.Budget)
	checkDecimal(validator, FieldRevenue, movie.Revenue)
	checkDecimal(validator, FieldVoteAverage, movie.VoteAverage)

	// Abstract
	validator.Custom(FieldEnAbstract, movie.EnAbstract == nil, "This field is required")

	// Owned sections
	for index, country := range movie.Countries {
		validator.Required(element(FieldCountries, index, "country"), country.Country)
	}
	for index, category := range movie.Categories {
		validator.Positive(element(FieldCategories, index, "categoryId"), category.CategoryID)
	}
	for index, keyword := range movie.Keywords {
		validator.Positive(element(FieldKeywords, index, "categoryId"), keyword.CategoryID)
	}
	for index, cast := range movie.Casts {
		validator.Positive(element(FieldCasts, index, "personId"), cast.PersonID).
			Positive(element(FieldCasts, index, "jobId"), cast.JobID)
	}
	for index, language := range movie.Languages {
		validator.Required(element(FieldLanguages, index, "language"), language.Language)
	}
	for index, trailer := range movie.Trailers {
		if trailer.TrailerID != nil {
			validator.Positive(element(FieldTrailers, index, "trailerId"), *trailer.TrailerID)
		}
		validator.Required(element(FieldTrailers, index, "key"), trailer.Key).
			Required(element(FieldTrailers, index, "source"), trailer.Source)
	}
	for index, link := range movie.Links {
		validator.Required(element(FieldLinks, index, "key"), link.Key).
			Required(element(FieldLinks, index, "source"), link.Source)
	}

	return validator.Err()
}

// text trims and composes a single-line value.
func text(value string) string {
	return norm.NFC.String(strings.TrimSpace(value))
}

func checkDecimal(validator *validate.Validator, field string, value *string) {
	if value == nil {
		return
	}
	validator.Custom(field, !decimalPattern.MatchString(*value), "Must be a decimal number")
}

func element(section string, index int, field string) string {
	return fmt.Sprintf("%s[%d].%s", section, index, field)
}

// notFound converts the store sentinel into the client-facing 404 for id.
func notFound(err error, id ID) error {
	if isNotFound(err) {
		return NotFoundError(id)
	}
	return err
}
