// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/movielens/internal/platform/ctxutil"
	"github.com/taibuivan/movielens/internal/platform/database/schema"
	"github.com/taibuivan/movielens/internal/platform/postgres"
)

// # Write Statements

// coreReturning reads back the core row in the shape of [Core].
const coreReturning = `
	RETURNING id, name, parent_id, to_char(date, 'YYYY-MM-DD'), series_id, kind, runtime,
		budget::text, revenue::text, homepage, vote_average::text, votes_count`

const insertMovieQuery = `
	INSERT INTO movies (id, name, parent_id, date, series_id, kind, runtime, budget, revenue, homepage, vote_average, votes_count)
	VALUES ($1, $2, $3, $4::text::date, $5, $6, $7, $8::text::numeric, $9::text::numeric, $10, $11::text::numeric, $12)` + coreReturning

const updateMovieQuery = `
	UPDATE movies SET
		name = $2, parent_id = $3, date = $4::text::date, series_id = $5, kind = $6, runtime = $7,
		budget = $8::text::numeric, revenue = $9::text::numeric, homepage = $10,
		vote_average = $11::text::numeric, votes_count = $12
	WHERE id = $1` + coreReturning

const insertAbstractQuery = `
	INSERT INTO movie_abstracts_en (movie_id, abstract)
	VALUES ($1, $2)
	RETURNING abstract`

const upsertAbstractQuery = `
	INSERT INTO movie_abstracts_en (movie_id, abstract)
	VALUES ($1, $2)
	ON CONFLICT (movie_id) DO UPDATE SET abstract = EXCLUDED.abstract
	RETURNING abstract`

const insertCountryQuery = `
	INSERT INTO movie_countries (movie_id, country)
	VALUES ($1, $2)
	RETURNING country`

const insertCategoryQuery = `
	INSERT INTO movie_categories (movie_id, category_id)
	VALUES ($1, $2)
	RETURNING category_id`

const insertKeywordQuery = `
	INSERT INTO movie_keywords (movie_id, category_id)
	VALUES ($1, $2)
	RETURNING category_id`

const insertCastQuery = `
	INSERT INTO casts (movie_id, person_id, job_id, role, position)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING person_id, job_id, role, position`

const insertLanguageQuery = `
	INSERT INTO movie_languages (movie_id, language)
	VALUES ($1, $2)
	RETURNING language`

// insertTrailerQuery draws the id from the trailers sequence when the caller omits it.
const insertTrailerQuery = `
	INSERT INTO trailers (trailer_id, movie_id, key, language, source)
	VALUES (COALESCE($1, nextval(pg_get_serial_sequence('trailers', 'trailer_id'))), $2, $3, $4, $5)
	RETURNING trailer_id, key, language, source`

const insertLinkQuery = `
	INSERT INTO movie_links (movie_id, key, language, source)
	VALUES ($1, $2, $3, $4)
	RETURNING key, language, source`

const deleteOwnedQuery = `DELETE FROM %s WHERE movie_id = $1`

const deleteMovieQuery = `DELETE FROM movies WHERE id = $1 RETURNING id`

// coreArgs lists the core row parameters in statement order.
func coreArgs(id ID, core *Core) []any {
	return []any{
		int64(id), core.Name, core.ParentID, core.Date, core.SeriesID, core.Kind, core.Runtime,
		core.Budget, core.Revenue, core.Homepage, core.VoteAverage, core.VotesCount,
	}
}

// coreTargets lists the scan destinations matching coreReturning.
func coreTargets(core *Core) []any {
	return []any{
		&core.ID, &core.Name, &core.ParentID, &core.Date, &core.SeriesID, &core.Kind, &core.Runtime,
		&core.Budget, &core.Revenue, &core.Homepage, &core.VoteAverage, &core.VotesCount,
	}
}

// # Write Operations

/*
Create persists a movie and every row it owns in one transaction.

Description: Statements run in a fixed order: core row, abstract, countries,
categories, keywords, casts, languages, trailers, links. Each RETURNING row
is collected, so the result reflects what the database stored. Any failure
rolls the whole transaction back.

Parameters:
  - context: context.Context
  - movie: *NewMovie

Returns:
  - *Aggregate: Stored values in input order
  - error: Conflict on duplicate keys, ValidationError on rejected references,
    TransactionAborted otherwise
*/
func (repository *repository) Create(context context.Context, movie *NewMovie) (*Aggregate, error) {
	created := &Aggregate{}

	err := postgres.WithTx(context, repository.db, ctxutil.GetLogger(context), "CreateMovie", func(transaction pgx.Tx) error {

		// 1. Core row
		if err := transaction.QueryRow(context, insertMovieQuery, coreArgs(movie.ID, &movie.Core)...).Scan(coreTargets(&created.Core)...); err != nil {
			return err
		}

		// 2. Abstract
		abstract, err := writeAbstract(context, transaction, insertAbstractQuery, created.ID, movie.EnAbstract)
		if err != nil {
			return err
		}
		created.EnAbstract = abstract

		// 3. Owned sections
		return writeSections(context, transaction, created.ID, movie, created, false)
	})
	if err != nil {
		return nil, repository.fail(context, "CreateMovie", err)
	}

	return created, nil
}

/*
Update rewrites a movie and replaces every section it owns in one transaction.

Description: The core row is updated in place and must exist. The abstract
is upserted. Each section is cleared by movie id and re-inserted from the
payload, in the same order as [repository.Create].

Returns:
  - *Aggregate: Stored values in input order
  - error: ErrNotFound when the movie does not exist
*/
func (repository *repository) Update(context context.Context, id ID, movie *NewMovie) (*Aggregate, error) {
	updated := &Aggregate{}

	err := postgres.WithTx(context, repository.db, ctxutil.GetLogger(context), "UpdateMovie", func(transaction pgx.Tx) error {

		// 1. Core row
		err := transaction.QueryRow(context, updateMovieQuery, coreArgs(id, &movie.Core)...).Scan(coreTargets(&updated.Core)...)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		// 2. Abstract
		abstract, err := writeAbstract(context, transaction, upsertAbstractQuery, id, movie.EnAbstract)
		if err != nil {
			return err
		}
		updated.EnAbstract = abstract

		// 3. Owned sections
		return writeSections(context, transaction, id, movie, updated, true)
	})
	if err != nil {
		return nil, repository.fail(context, "UpdateMovie", err)
	}

	return updated, nil
}

/*
Delete removes a movie together with every row it owns.

Description: Owned tables are cleared explicitly before the core row, so the
result does not depend on the foreign keys being declared with ON DELETE
CASCADE.
*/
func (repository *repository) Delete(context context.Context, id ID) (ID, error) {
	var deleted int64

	err := postgres.WithTx(context, repository.db, ctxutil.GetLogger(context), "DeleteMovie", func(transaction pgx.Tx) error {
		for _, table := range schema.MovieOwnedTables() {
			if _, err := transaction.Exec(context, fmt.Sprintf(deleteOwnedQuery, table), int64(id)); err != nil {
				return err
			}
		}

		err := transaction.QueryRow(context, deleteMovieQuery, int64(id)).Scan(&deleted)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	})
	if err != nil {
		return 0, repository.fail(context, "DeleteMovie", err)
	}

	return ID(deleted), nil
}

// # Section Writers

// writeAbstract stores the English abstract when the payload carries one.
func writeAbstract(context context.Context, transaction pgx.Tx, query string, id ID, abstract *EnAbstract) (*EnAbstract, error) {
	if abstract == nil {
		return nil, nil
	}

	stored := &EnAbstract{}
	if err := transaction.QueryRow(context, query, int64(id), abstract.Abstract).Scan(&stored.Abstract); err != nil {
		return nil, err
	}
	return stored, nil
}

/*
writeSections inserts the owned rows of every 1:N section, one statement at
a time. With replace set, each section's existing rows are deleted first.
*/
func writeSections(context context.Context, transaction pgx.Tx, id ID, movie *NewMovie, out *Aggregate, replace bool) error {
	movieID := int64(id)

	reset := func(table string) error {
		if !replace {
			return nil
		}
		_, err := transaction.Exec(context, fmt.Sprintf(deleteOwnedQuery, table), movieID)
		return err
	}

	// Countries
	if err := reset(schema.MovieCountries.Table); err != nil {
		return err
	}
	out.Countries = make([]Country, 0, len(movie.Countries))
	for _, country := range movie.Countries {
		var stored Country
		if err := transaction.QueryRow(context, insertCountryQuery, movieID, country.Country).Scan(&stored.Country); err != nil {
			return err
		}
		out.Countries = append(out.Countries, stored)
	}

	// Categories
	if err := reset(schema.MovieCategories.Table); err != nil {
		return err
	}
	out.Categories = make([]CategoryRef, 0, len(movie.Categories))
	for _, category := range movie.Categories {
		var stored CategoryRef
		if err := transaction.QueryRow(context, insertCategoryQuery, movieID, category.CategoryID).Scan(&stored.CategoryID); err != nil {
			return err
		}
		out.Categories = append(out.Categories, stored)
	}

	// Keywords
	if err := reset(schema.MovieKeywords.Table); err != nil {
		return err
	}
	out.Keywords = make([]CategoryRef, 0, len(movie.Keywords))
	for _, keyword := range movie.Keywords {
		var stored CategoryRef
		if err := transaction.QueryRow(context, insertKeywordQuery, movieID, keyword.CategoryID).Scan(&stored.CategoryID); err != nil {
			return err
		}
		out.Keywords = append(out.Keywords, stored)
	}

	// Casts
	if err := reset(schema.Casts.Table); err != nil {
		return err
	}
	out.Casts = make([]Cast, 0, len(movie.Casts))
	for _, cast := range movie.Casts {
		var stored Cast
		err := transaction.QueryRow(context, insertCastQuery, movieID, cast.PersonID, cast.JobID, cast.Role, cast.Position).
			Scan(&stored.PersonID, &stored.JobID, &stored.Role, &stored.Position)
		if err != nil {
			return err
		}
		out.Casts = append(out.Casts, stored)
	}

	// Languages
	if err := reset(schema.MovieLanguages.Table); err != nil {
		return err
	}
	out.Languages = make([]Language, 0, len(movie.Languages))
	for _, language := range movie.Languages {
		var stored Language
		if err := transaction.QueryRow(context, insertLanguageQuery, movieID, language.Language).Scan(&stored.Language); err != nil {
			return err
		}
		out.Languages = append(out.Languages, stored)
	}

	// Trailers
	if err := reset(schema.Trailers.Table); err != nil {
		return err
	}
	out.Trailers = make([]Trailer, 0, len(movie.Trailers))
	for _, trailer := range movie.Trailers {
		var stored Trailer
		var trailerID int64
		err := transaction.QueryRow(context, insertTrailerQuery, trailer.TrailerID, movieID, trailer.Key, trailer.Language, trailer.Source).
			Scan(&trailerID, &stored.Key, &stored.Language, &stored.Source)
		if err != nil {
			return err
		}
		stored.TrailerID = &trailerID
		out.Trailers = append(out.Trailers, stored)
	}

	// Links
	if err := reset(schema.MovieLinks.Table); err != nil {
		return err
	}
	out.Links = make([]Link, 0, len(movie.Links))
	for _, link := range movie.Links {
		var stored Link
		if err := transaction.QueryRow(context, insertLinkQuery, movieID, link.Key, link.Language, link.Source).Scan(&stored.Key, &stored.Language, &stored.Source); err != nil {
			return err
		}
		out.Links = append(out.Links, stored)
	}

	return nil
}
