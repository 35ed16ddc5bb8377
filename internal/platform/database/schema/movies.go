// Package schema lists the physical tables and columns of the Movie Lens
// database. Queries are assembled from these definitions so that a column
// rename touches exactly one place.
package schema

import (
	"github.com/taibuivan/movielens/pkg/casing"
)

// MoviesTable represents the 'movies' table
type MoviesTable struct {
	Table       string
	ID          string
	Name        string
	ParentID    string
	Date        string
	SeriesID    string
	Kind        string
	Runtime     string
	Budget      string
	Revenue     string
	Homepage    string
	VoteAverage string
	VotesCount  string
}

// Movies is the schema definition for movies
var Movies = MoviesTable{
	Table:       "movies",
	ID:          "id",
	Name:        "name",
	ParentID:    "parent_id",
	Date:        "date",
	SeriesID:    "series_id",
	Kind:        "kind",
	Runtime:     "runtime",
	Budget:      "budget",
	Revenue:     "revenue",
	Homepage:    "homepage",
	VoteAverage: "vote_average",
	VotesCount:  "votes_count",
}

// Columns lists every movies column in table order.
func (t MoviesTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.ParentID, t.Date, t.SeriesID, t.Kind, t.Runtime,
		t.Budget, t.Revenue, t.Homepage, t.VoteAverage, t.VotesCount,
	}
}

// sortAliases maps API names that do not follow the plain casing rule.
var sortAliases = map[string]string{
	"releaseDate":  "date",
	"release_date": "date",
}

// SortColumn resolves a client supplied sort key, given either as the API
// (camelCase) name or the column name, to a sortable movies column.
// It reports false for anything that is not a known column.
func (t MoviesTable) SortColumn(key string) (string, bool) {
	if alias, ok := sortAliases[key]; ok {
		return alias, true
	}

	column := casing.ToSnake(key)
	for _, known := range t.Columns() {
		if known == column {
			return column, true
		}
	}

	return "", false
}

// MovieAbstractsENTable represents the 'movie_abstracts_en' table
type MovieAbstractsENTable struct {
	Table    string
	MovieID  string
	Abstract string
}

// MovieAbstractsEN is the schema definition for movie_abstracts_en
var MovieAbstractsEN = MovieAbstractsENTable{
	Table:    "movie_abstracts_en",
	MovieID:  "movie_id",
	Abstract: "abstract",
}

// CategoriesTable represents the 'categories' table
type CategoriesTable struct {
	Table    string
	ID       string
	Name     string
	ParentID string
}

// Categories is the schema definition for categories
var Categories = CategoriesTable{
	Table:    "categories",
	ID:       "id",
	Name:     "name",
	ParentID: "parent_id",
}
