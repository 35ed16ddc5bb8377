// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie

import (
	"context"

	"github.com/taibuivan/movielens/pkg/pagination"
)

// # Movie Data Access

// Reader defines the read-side contract for the movie catalogue.
type Reader interface {

	/*
		ListMovies returns one page of movies and the total row count.

		Parameters:
		  - context: context.Context
		  - page: pagination.Resolved (limit, offset, sort column and direction)

		Returns:
		  - []*Movie: Rows in the requested order
		  - int: Total rows matching the listing, also when the page is past the end
		  - error: ValidationError for an unknown sort column, storage failures
	*/
	ListMovies(context context.Context, page pagination.Resolved) ([]*Movie, int, error)

	/*
		FindByID returns the movie with the given id.

		Parameters:
		  - context: context.Context
		  - id: ID

		Returns:
		  - *Movie: The joined read view
		  - error: ErrNotFound if no row matches
	*/
	FindByID(context context.Context, id ID) (*Movie, error)

	/*
		ListCastAndCrew returns the people credited on a movie.

		The movie's existence is not checked: an unknown id yields an empty slice.

		Parameters:
		  - context: context.Context
		  - id: ID

		Returns:
		  - []*CastMember: Credits ordered by position
		  - error: Storage failures
	*/
	ListCastAndCrew(context context.Context, id ID) ([]*CastMember, error)

	/*
		ListTopByKeywordCount ranks movies by their number of keyword rows.

		Parameters:
		  - context: context.Context
		  - page: pagination.Resolved (only limit and offset apply)

		Returns:
		  - []*MovieWithKeywordCount: Highest count first
		  - error: Storage failures
	*/
	ListTopByKeywordCount(context context.Context, page pagination.Resolved) ([]*MovieWithKeywordCount, error)
}

// Writer defines the transactional write contract for the movie aggregate.
type Writer interface {

	/*
		Create persists the core row and every owned row in one transaction.

		Parameters:
		  - context: context.Context
		  - movie: *NewMovie

		Returns:
		  - *Aggregate: The values returned by the database
		  - error: Conflict, ValidationError, TransactionAborted
	*/
	Create(context context.Context, movie *NewMovie) (*Aggregate, error)

	/*
		Update rewrites the core row and replaces every owned section.

		Parameters:
		  - context: context.Context
		  - id: ID (path identifier)
		  - movie: *NewMovie

		Returns:
		  - *Aggregate: The values returned by the database
		  - error: ErrNotFound, Conflict, ValidationError, TransactionAborted
	*/
	Update(context context.Context, id ID, movie *NewMovie) (*Aggregate, error)

	/*
		Delete removes the movie and every row it owns.

		Parameters:
		  - context: context.Context
		  - id: ID

		Returns:
		  - ID: The deleted identifier
		  - error: ErrNotFound if no row matched
	*/
	Delete(context context.Context, id ID) (ID, error)
}

// Store is the full data access contract used by the [Service].
type Store interface {
	Reader
	Writer
}
