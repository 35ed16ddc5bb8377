// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package movie_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/movielens/internal/core/movie"
	"github.com/taibuivan/movielens/internal/platform/apperr"
	"github.com/taibuivan/movielens/pkg/pagination"
	"github.com/taibuivan/movielens/pkg/pointer"
)

var (
	movieColumns = []string{
		"id", "name", "date", "kind", "runtime", "budget", "revenue", "homepage",
		"vote_average", "votes_count", "youtube_trailer_key", "abstract", "category",
	}
	coreColumns = []string{
		"id", "name", "parent_id", "date", "series_id", "kind", "runtime",
		"budget", "revenue", "homepage", "vote_average", "votes_count",
	}
	ownedTables = []string{
		"movie_abstracts_en", "movie_countries", "movie_categories", "movie_keywords",
		"casts", "movie_languages", "trailers", "movie_links",
	}
)

func newStore(t *testing.T) (pgxmock.PgxPoolIface, movie.Store) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, movie.NewRepository(mock)
}

func heatRow(rows *pgxmock.Rows) *pgxmock.Rows {
	return rows.AddRow(
		movie.ID(1), "Heat", pointer.To("1995-12-15"), "movie", pointer.To(int32(170)),
		pointer.To("60000000.00"), pointer.To("187436818.00"), (*string)(nil), pointer.To("7.9"), pointer.To(int64(1000)),
		pointer.To("trailer-key"), pointer.To("A heist."), pointer.To("Crime"),
	)
}

func coreRow(id movie.ID, name string) *pgxmock.Rows {
	return pgxmock.NewRows(coreColumns).AddRow(
		id, name, int64(0), pointer.To("1995-12-15"), (*int64)(nil), "movie", pointer.To(int32(170)),
		pointer.To("1000.00"), (*string)(nil), (*string)(nil), (*string)(nil), (*int64)(nil),
	)
}

func match(fragment string) string {
	return regexp.QuoteMeta(fragment)
}

// # Reads

func TestListMovies_FiltersYouTubeAndBreaksTies(t *testing.T) {
	mock, store := newStore(t)
	page := pagination.Resolved{Page: 1, Limit: 20, Offset: 0, Column: "name", Direction: pagination.Desc}

	rows := pgxmock.NewRows(append(movieColumns, "total_count")).AddRow(
		movie.ID(1), "Heat", pointer.To("1995-12-15"), "movie", pointer.To(int32(170)),
		pointer.To("60000000.00"), pointer.To("187436818.00"), (*string)(nil), pointer.To("7.9"), pointer.To(int64(1000)),
		pointer.To("trailer-key"), pointer.To("A heist."), pointer.To("Crime"), 41,
	)
	mock.ExpectQuery(match("WHERE t.source = 'youtube'") + ".*" + match("ORDER BY m.name DESC, m.id ASC, t.trailer_id ASC, c.id ASC LIMIT $1 OFFSET $2")).
		WithArgs(20, 0).
		WillReturnRows(rows)

	movies, total, err := store.ListMovies(context.Background(), page)

	require.NoError(t, err)
	assert.Equal(t, 41, total)
	require.Len(t, movies, 1)
	assert.Equal(t, "Heat", movies[0].Name)
	assert.Equal(t, "187436818.00", *movies[0].Revenue)
	assert.Nil(t, movies[0].Homepage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListMovies_DefaultOrderBreaksTiesOnJoinedRows(t *testing.T) {
	mock, store := newStore(t)

	mock.ExpectQuery(match("ORDER BY m.id ASC, t.trailer_id ASC, c.id ASC LIMIT $1")).
		WithArgs(pagination.DefaultLimit, 0).
		WillReturnRows(pgxmock.NewRows(append(movieColumns, "total_count")))

	movies, total, err := store.ListMovies(context.Background(), pagination.Default())

	require.NoError(t, err)
	assert.NotNil(t, movies)
	assert.Empty(t, movies)
	assert.Zero(t, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListMovies_PastLastPageKeepsTotal(t *testing.T) {
	mock, store := newStore(t)
	page := pagination.Resolved{Page: 9, Limit: 10, Offset: 80, Column: "id", Direction: pagination.Asc}

	mock.ExpectQuery(match("COUNT(*) OVER()")).
		WithArgs(10, 80).
		WillReturnRows(pgxmock.NewRows(append(movieColumns, "total_count")))
	mock.ExpectQuery(match("SELECT COUNT(*) FROM movies m")).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(41))

	movies, total, err := store.ListMovies(context.Background(), page)

	require.NoError(t, err)
	assert.Empty(t, movies)
	assert.Equal(t, 41, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListMovies_UnknownSortColumn(t *testing.T) {
	_, store := newStore(t)
	page := pagination.Default()
	page.Column = "name; DROP TABLE movies"

	_, _, err := store.ListMovies(context.Background(), page)

	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperr.CodeValidation, appErr.Code)
	assert.Equal(t, pagination.ParamSort, appErr.Details[0].Field)
}

func TestFindByID(t *testing.T) {
	mock, store := newStore(t)

	mock.ExpectQuery(match("AND m.id = $1 ORDER BY t.trailer_id ASC, c.id ASC LIMIT 1")).
		WithArgs(int64(1)).
		WillReturnRows(heatRow(pgxmock.NewRows(movieColumns)))

	found, err := store.FindByID(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, movie.ID(1), found.ID)
	assert.Equal(t, "trailer-key", *found.YoutubeTrailerKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByID_NotFound(t *testing.T) {
	mock, store := newStore(t)

	mock.ExpectQuery(match("AND m.id = $1")).
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)

	_, err := store.FindByID(context.Background(), 99)

	assert.ErrorIs(t, err, movie.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByID_StorageFailure(t *testing.T) {
	mock, store := newStore(t)

	mock.ExpectQuery(match("AND m.id = $1")).
		WithArgs(int64(1)).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.AdminShutdown})

	_, err := store.FindByID(context.Background(), 1)

	assert.True(t, apperr.HasCode(err, apperr.CodeStorage))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListCastAndCrew_EmptyIsNotNil(t *testing.T) {
	mock, store := newStore(t)

	mock.ExpectQuery(match("WHERE c.movie_id = $1 ORDER BY c.position ASC, p.id ASC")).
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "role", "job", "position"}))

	members, err := store.ListCastAndCrew(context.Background(), 5)

	require.NoError(t, err)
	assert.NotNil(t, members)
	assert.Empty(t, members)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListCastAndCrew(t *testing.T) {
	mock, store := newStore(t)

	mock.ExpectQuery(match("FROM people p")).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "role", "job", "position"}).
			AddRow(int64(10), "Al Pacino", "Vincent Hanna", "Actor", int32(0)).
			AddRow(int64(11), "Michael Mann", "", "Director", int32(1)))

	members, err := store.ListCastAndCrew(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "Al Pacino", members[0].PersonName)
	assert.Equal(t, "Director", members[1].JobName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListTopByKeywordCount(t *testing.T) {
	mock, store := newStore(t)

	mock.ExpectQuery(match("GROUP BY m.id, c.name ORDER BY total_keyword DESC, m.id ASC, c.name ASC LIMIT $1 OFFSET $2")).
		WithArgs(10, 10).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "date", "kind", "runtime", "budget", "revenue", "vote_average", "votes_count", "category", "total_keyword",
		}).AddRow(
			movie.ID(3), "Alien", pointer.To("1979-05-25"), "movie", pointer.To(int32(117)),
			(*string)(nil), (*string)(nil), pointer.To("8.1"), pointer.To(int64(900)), pointer.To("space"), int64(12),
		))

	movies, err := store.ListTopByKeywordCount(context.Background(), pagination.Resolved{Page: 2, Limit: 10, Offset: 10})

	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, int64(12), movies[0].TotalKeyword)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// # Writes

func heatPayload() *movie.NewMovie {
	return &movie.NewMovie{
		Core: movie.Core{
			ID: 1, Name: "Heat", Kind: "movie",
			Date: pointer.To("1995-12-15"), Runtime: pointer.To(int32(170)), Budget: pointer.To("1000.00"),
		},
		EnAbstract: &movie.EnAbstract{Abstract: "A heist."},
		Countries:  []movie.Country{{Country: "US"}},
		Trailers:   []movie.Trailer{{Key: "abc", Language: "en", Source: "youtube"}},
	}
}

func TestCreate(t *testing.T) {
	mock, store := newStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(match("INSERT INTO movies")).WillReturnRows(coreRow(1, "Heat"))
	mock.ExpectQuery(match("INSERT INTO movie_abstracts_en")).
		WithArgs(int64(1), "A heist.").
		WillReturnRows(pgxmock.NewRows([]string{"abstract"}).AddRow("A heist."))
	mock.ExpectQuery(match("INSERT INTO movie_countries")).
		WithArgs(int64(1), "US").
		WillReturnRows(pgxmock.NewRows([]string{"country"}).AddRow("US"))
	mock.ExpectQuery(match("INSERT INTO trailers")).
		WillReturnRows(pgxmock.NewRows([]string{"trailer_id", "key", "language", "source"}).AddRow(int64(500), "abc", "en", "youtube"))
	mock.ExpectCommit()

	created, err := store.Create(context.Background(), heatPayload())

	require.NoError(t, err)
	assert.Equal(t, movie.ID(1), created.ID)
	assert.Equal(t, "1000.00", *created.Budget)
	assert.Equal(t, "A heist.", created.EnAbstract.Abstract)
	assert.Equal(t, []movie.Country{{Country: "US"}}, created.Countries)
	require.Len(t, created.Trailers, 1)
	assert.Equal(t, int64(500), *created.Trailers[0].TrailerID)
	assert.Empty(t, created.Casts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_RollsBackOnLateFailure(t *testing.T) {
	mock, store := newStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(match("INSERT INTO movies")).WillReturnRows(coreRow(1, "Heat"))
	mock.ExpectQuery(match("INSERT INTO movie_abstracts_en")).
		WillReturnRows(pgxmock.NewRows([]string{"abstract"}).AddRow("A heist."))
	mock.ExpectQuery(match("INSERT INTO movie_countries")).
		WillReturnRows(pgxmock.NewRows([]string{"country"}).AddRow("US"))
	mock.ExpectQuery(match("INSERT INTO trailers")).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ColumnName: "trailer_id"})
	mock.ExpectRollback()

	created, err := store.Create(context.Background(), heatPayload())

	assert.Nil(t, created)
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_UnknownReferenceIsValidation(t *testing.T) {
	mock, store := newStore(t)
	payload := heatPayload()
	payload.Countries = nil
	payload.Trailers = nil
	payload.Casts = []movie.Cast{{PersonID: 404, JobID: 1, Role: "Lead"}}

	mock.ExpectBegin()
	mock.ExpectQuery(match("INSERT INTO movies")).WillReturnRows(coreRow(1, "Heat"))
	mock.ExpectQuery(match("INSERT INTO movie_abstracts_en")).
		WillReturnRows(pgxmock.NewRows([]string{"abstract"}).AddRow("A heist."))
	mock.ExpectQuery(match("INSERT INTO casts")).
		WithArgs(int64(1), int64(404), int64(1), "Lead", int32(0)).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation})
	mock.ExpectRollback()

	_, err := store.Create(context.Background(), payload)

	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_ReplacesSections(t *testing.T) {
	mock, store := newStore(t)
	payload := heatPayload()
	payload.Countries = []movie.Country{{Country: "FR"}}
	payload.Trailers = nil

	mock.ExpectBegin()
	mock.ExpectQuery(match("UPDATE movies SET")).WillReturnRows(coreRow(1, "Heat"))
	mock.ExpectQuery(match("ON CONFLICT (movie_id) DO UPDATE")).
		WithArgs(int64(1), "A heist.").
		WillReturnRows(pgxmock.NewRows([]string{"abstract"}).AddRow("A heist."))
	mock.ExpectExec(match("DELETE FROM movie_countries WHERE movie_id = $1")).
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectQuery(match("INSERT INTO movie_countries")).
		WithArgs(int64(1), "FR").
		WillReturnRows(pgxmock.NewRows([]string{"country"}).AddRow("FR"))
	for _, table := range []string{"movie_categories", "movie_keywords", "casts", "movie_languages", "trailers", "movie_links"} {
		mock.ExpectExec(match("DELETE FROM " + table + " WHERE movie_id = $1")).
			WithArgs(int64(1)).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
	}
	mock.ExpectCommit()

	updated, err := store.Update(context.Background(), 1, payload)

	require.NoError(t, err)
	assert.Equal(t, []movie.Country{{Country: "FR"}}, updated.Countries)
	assert.Empty(t, updated.Trailers)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_RollsBackOnLateFailure(t *testing.T) {
	mock, store := newStore(t)
	payload := heatPayload()
	payload.Trailers = nil
	payload.Casts = []movie.Cast{{PersonID: 404, JobID: 1, Role: "Lead"}}

	mock.ExpectBegin()
	mock.ExpectQuery(match("UPDATE movies SET")).WillReturnRows(coreRow(1, "Heat"))
	mock.ExpectQuery(match("ON CONFLICT (movie_id) DO UPDATE")).
		WillReturnRows(pgxmock.NewRows([]string{"abstract"}).AddRow("A heist."))
	mock.ExpectExec(match("DELETE FROM movie_countries WHERE movie_id = $1")).
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectQuery(match("INSERT INTO movie_countries")).
		WillReturnRows(pgxmock.NewRows([]string{"country"}).AddRow("US"))
	for _, table := range []string{"movie_categories", "movie_keywords", "casts"} {
		mock.ExpectExec(match("DELETE FROM " + table + " WHERE movie_id = $1")).
			WithArgs(int64(1)).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
	}
	mock.ExpectQuery(match("INSERT INTO casts")).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation})
	mock.ExpectRollback()

	updated, err := store.Update(context.Background(), 1, payload)

	assert.Nil(t, updated)
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_NotFound(t *testing.T) {
	mock, store := newStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(match("UPDATE movies SET")).WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	_, err := store.Update(context.Background(), 77, heatPayload())

	assert.ErrorIs(t, err, movie.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	mock, store := newStore(t)

	mock.ExpectBegin()
	for _, table := range ownedTables {
		mock.ExpectExec(match("DELETE FROM " + table + " WHERE movie_id = $1")).
			WithArgs(int64(1)).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
	}
	mock.ExpectQuery(match("DELETE FROM movies WHERE id = $1 RETURNING id")).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectCommit()

	deleted, err := store.Delete(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, movie.ID(1), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_NotFoundRollsBack(t *testing.T) {
	mock, store := newStore(t)

	mock.ExpectBegin()
	for _, table := range ownedTables {
		mock.ExpectExec(match("DELETE FROM " + table)).
			WithArgs(int64(8)).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
	}
	mock.ExpectQuery(match("DELETE FROM movies")).
		WithArgs(int64(8)).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	_, err := store.Delete(context.Background(), 8)

	assert.ErrorIs(t, err, movie.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
