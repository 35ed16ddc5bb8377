// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie

import (
	"context"
	"fmt"

	"github.com/taibuivan/movielens/internal/platform/database/schema"
	"github.com/taibuivan/movielens/pkg/pagination"
)

// # Read Queries

// movieReadColumns is the select list shared by listing and detail.
const movieReadColumns = `
		m.id, m.name, to_char(m.date, 'YYYY-MM-DD'), m.kind, m.runtime,
		m.budget::text, m.revenue::text, m.homepage, m.vote_average::text, m.votes_count,
		t.key AS youtube_trailer_key, a.abstract, c.name AS category`

// movieReadJoins only keeps rows that have a YouTube trailer: the trailer
// predicate sits in WHERE after a LEFT JOIN, which makes the join required.
const movieReadJoins = `
	FROM movies m
	LEFT JOIN trailers t ON m.id = t.movie_id
	LEFT JOIN movie_abstracts_en a ON m.id = a.movie_id
	LEFT JOIN categories c ON m.parent_id = c.parent_id
	WHERE t.source = '` + schema.SourceYouTube + `'`

// joinedRowOrder orders the rows one movie produces through its joins.
const joinedRowOrder = ", t.trailer_id ASC, c.id ASC"

const listMoviesQuery = `
	SELECT ` + movieReadColumns + `,
		COUNT(*) OVER() AS total_count
	` + movieReadJoins + `
	ORDER BY %s
	LIMIT $1 OFFSET $2`

const findMovieQuery = `
	SELECT ` + movieReadColumns + `
	` + movieReadJoins + `
	AND m.id = $1
	ORDER BY t.trailer_id ASC, c.id ASC
	LIMIT 1`

// countMoviesQuery recounts the listing when the requested page is past the end.
const countMoviesQuery = `
	SELECT COUNT(*)
	` + movieReadJoins

const listCastQuery = `
	SELECT p.id, p.name, c.role, j.name AS job, c.position
	FROM people p
	INNER JOIN casts c ON p.id = c.person_id
	INNER JOIN jobs j ON c.job_id = j.id
	WHERE c.movie_id = $1
	ORDER BY c.position ASC, p.id ASC`

const topKeywordQuery = `
	SELECT
		m.id, m.name, to_char(m.date, 'YYYY-MM-DD'), m.kind, m.runtime,
		m.budget::text, m.revenue::text, m.vote_average::text, m.votes_count,
		c.name AS category, COUNT(c.id) AS total_keyword
	FROM movies m
	INNER JOIN movie_keywords mk ON m.id = mk.movie_id
	INNER JOIN categories c ON mk.category_id = c.id
	GROUP BY m.id, c.name
	ORDER BY total_keyword DESC, m.id ASC, c.name ASC
	LIMIT $1 OFFSET $2`

// movieTargets lists the scan destinations matching movieReadColumns.
func movieTargets(movie *Movie) []any {
	return []any{
		&movie.ID, &movie.Name, &movie.Date, &movie.Kind, &movie.Runtime,
		&movie.Budget, &movie.Revenue, &movie.Homepage, &movie.VoteAverage, &movie.VotesCount,
		&movie.YoutubeTrailerKey, &movie.Abstract, &movie.Category,
	}
}

/*
ListMovies returns one page of movies with their YouTube trailer key.

Description: The total is computed with a window function in the same round
trip. A page past the last row carries no window value, so the total is then
counted separately. Movies without a YouTube trailer are not listed.

Parameters:
  - context: context.Context
  - page: pagination.Resolved

Returns:
  - []*Movie: Page rows (never nil)
  - int: Total rows across all pages
  - error: ValidationError for unknown sort columns, storage failures
*/
func (repository *repository) ListMovies(context context.Context, page pagination.Resolved) ([]*Movie, int, error) {
	order, err := orderBy(page)
	if err != nil {
		return nil, 0, err
	}

	rows, err := repository.db.Query(context, fmt.Sprintf(listMoviesQuery, order), page.Limit, page.Offset)
	if err != nil {
		return nil, 0, repository.fail(context, "ListMovies", err)
	}
	defer rows.Close()

	movies := []*Movie{}
	var total int

	for rows.Next() {
		movie := &Movie{}
		if err := rows.Scan(append(movieTargets(movie), &total)...); err != nil {
			return nil, 0, repository.fail(context, "ListMovies", err)
		}
		movies = append(movies, movie)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, repository.fail(context, "ListMovies", err)
	}

	if len(movies) == 0 && page.Offset > 0 {
		if err := repository.db.QueryRow(context, countMoviesQuery).Scan(&total); err != nil {
			return nil, 0, repository.fail(context, "ListMovies", err)
		}
	}

	return movies, total, nil
}

/*
FindByID retrieves a single movie by primary key.

Returns:
  - *Movie: The joined read view
  - error: ErrNotFound when no row matches (including movies without a YouTube trailer)
*/
func (repository *repository) FindByID(context context.Context, id ID) (*Movie, error) {
	movie := &Movie{}

	err := repository.db.QueryRow(context, findMovieQuery, int64(id)).Scan(movieTargets(movie)...)
	if err != nil {
		wrapped := repository.fail(context, "FindMovieByID", err)
		if isNotFound(wrapped) {
			return nil, ErrNotFound
		}
		return nil, wrapped
	}

	return movie, nil
}

// ListCastAndCrew returns the credits of a movie ordered by cast position.
func (repository *repository) ListCastAndCrew(context context.Context, id ID) ([]*CastMember, error) {
	rows, err := repository.db.Query(context, listCastQuery, int64(id))
	if err != nil {
		return nil, repository.fail(context, "ListCastAndCrew", err)
	}
	defer rows.Close()

	members := []*CastMember{}
	for rows.Next() {
		member := &CastMember{}
		if err := rows.Scan(&member.ID, &member.PersonName, &member.Role, &member.JobName, &member.Position); err != nil {
			return nil, repository.fail(context, "ListCastAndCrew", err)
		}
		members = append(members, member)
	}

	if err := rows.Err(); err != nil {
		return nil, repository.fail(context, "ListCastAndCrew", err)
	}

	return members, nil
}

/*
ListTopByKeywordCount ranks movies by their keyword rows.

Description: Keyword rows are counted per movie and category name, highest
count first. Ties are broken by movie id so that pages never overlap.
*/
func (repository *repository) ListTopByKeywordCount(context context.Context, page pagination.Resolved) ([]*MovieWithKeywordCount, error) {
	rows, err := repository.db.Query(context, topKeywordQuery, page.Limit, page.Offset)
	if err != nil {
		return nil, repository.fail(context, "ListTopByKeywordCount", err)
	}
	defer rows.Close()

	movies := []*MovieWithKeywordCount{}
	for rows.Next() {
		movie := &MovieWithKeywordCount{}
		err := rows.Scan(
			&movie.ID, &movie.Name, &movie.Date, &movie.Kind, &movie.Runtime,
			&movie.Budget, &movie.Revenue, &movie.VoteAverage, &movie.VotesCount,
			&movie.Category, &movie.TotalKeyword,
		)
		if err != nil {
			return nil, repository.fail(context, "ListTopByKeywordCount", err)
		}
		movies = append(movies, movie)
	}

	if err := rows.Err(); err != nil {
		return nil, repository.fail(context, "ListTopByKeywordCount", err)
	}

	return movies, nil
}
