// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package movie provides the HTTP interface for the movie catalogue.

# Routing Strategy

  - Discovery: listings, detail, cast and crew, keyword ranking (GET).
  - Management: create, replace and delete of the aggregate (POST, PUT, DELETE).

Every response uses the {message, data} envelope of the respond package.
*/
package movie

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/movielens/internal/platform/request"
	"github.com/taibuivan/movielens/internal/platform/respond"
	"github.com/taibuivan/movielens/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for the movie catalogue.
type Handler struct {
	service *Service
}

// NewHandler constructs a new movie [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the movie endpoints.
// Static segments such as /top-keyword take precedence over /{id}.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Discovery
	router.Get("/", handler.listMovies)
	router.Get("/top-keyword", handler.listTopByKeyword)
	router.Get("/{id}", handler.getMovie)
	router.Get("/{id}/cast", handler.listCastAndCrew)

	// ## Management
	router.Post("/", handler.createMovie)
	router.Put("/{id}", handler.updateMovie)
	router.Delete("/{id}", handler.deleteMovie)

	return router
}

// # Discovery Endpoints

/*
GET /api/v1/movies.

Request:
  - page: int (optional, positive)
  - limit: int (optional, positive, default 20)
  - sort: string (optional, "<column>:<asc|desc>", default "id:asc")

Response:
  - 200: []Movie with pagination meta
  - 400: Validation: malformed paging or unknown sort column
*/
func (handler *Handler) listMovies(writer http.ResponseWriter, request *http.Request) {
	page, err := pagination.FromRequest(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	movies, total, err := handler.service.ListMovies(request.Context(), page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, "Movies retrieved successfully.", movies, pagination.NewMeta(page.Page, page.Limit, total))
}

/*
GET /api/v1/movies/top-keyword.

Response:
  - 200: []MovieWithKeywordCount, highest keyword count first
*/
func (handler *Handler) listTopByKeyword(writer http.ResponseWriter, request *http.Request) {
	page, err := pagination.FromRequest(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	movies, err := handler.service.ListTopByKeywordCount(request.Context(), page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Movies with most keyword retrieved successfully.", movies)
}

/*
GET /api/v1/movies/{id}.

Response:
  - 200: Movie
  - 400: Validation: id is not a positive integer
  - 404: NotFound: no movie (with a YouTube trailer) has this id
*/
func (handler *Handler) getMovie(writer http.ResponseWriter, request *http.Request) {
	id, err := ParseID(requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	movie, err := handler.service.GetMovie(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, notFound(err, id))
		return
	}

	respond.OK(writer, fmt.Sprintf("Movie with id %d retrieved successfully.", id), movie)
}

/*
GET /api/v1/movies/{id}/cast.

Description: An unknown movie yields an empty list rather than a 404; the
credits table is read without checking the movie row.

Response:
  - 200: []CastMember
*/
func (handler *Handler) listCastAndCrew(writer http.ResponseWriter, request *http.Request) {
	id, err := ParseID(requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	members, err := handler.service.ListCastAndCrew(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, fmt.Sprintf("Cast and crew for movie with id %d retrieved successfully.", id), members)
}

// # Mutation Endpoints

/*
POST /api/v1/movies.

Request (Body):
  - NewMovie: core fields plus enAbstract, countries, categories, keywords,
    casts, languages, trailers and links

Response:
  - 200: Aggregate: the stored values
  - 400: Validation: malformed payload or rejected reference
  - 409: Conflict: duplicate movie or trailer id
*/
func (handler *Handler) createMovie(writer http.ResponseWriter, request *http.Request) {
	var input NewMovie
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.CreateMovie(request.Context(), &input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Movie created successfully.", created)
}

/*
PUT /api/v1/movies/{id}.

Description: Replaces the movie and every section it owns with the payload.

Response:
  - 200: Aggregate: the stored values
  - 400: Validation: malformed payload or id mismatch
  - 404: NotFound: no movie has this id
*/
func (handler *Handler) updateMovie(writer http.ResponseWriter, request *http.Request) {
	id, err := ParseID(requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input NewMovie
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.UpdateMovie(request.Context(), id, &input)
	if err != nil {
		respond.Error(writer, request, notFound(err, id))
		return
	}

	respond.OK(writer, fmt.Sprintf("Movie with id %d updated successfully.", id), updated)
}

// deletedMovie is the body of a successful delete.
type deletedMovie struct {
	ID ID `json:"id"`
}

/*
DELETE /api/v1/movies/{id}.

Response:
  - 200: {id}
  - 404: NotFound: no movie has this id
*/
func (handler *Handler) deleteMovie(writer http.ResponseWriter, request *http.Request) {
	id, err := ParseID(requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	deleted, err := handler.service.DeleteMovie(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, notFound(err, id))
		return
	}

	respond.OK(writer, fmt.Sprintf("Movie with id %d deleted successfully.", id), deletedMovie{ID: deleted})
}
