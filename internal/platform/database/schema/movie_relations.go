package schema

// MovieCountriesTable represents the 'movie_countries' table
type MovieCountriesTable struct {
	Table   string
	MovieID string
	Country string
}

// MovieCountries is the schema definition for movie_countries
var MovieCountries = MovieCountriesTable{
	Table:   "movie_countries",
	MovieID: "movie_id",
	Country: "country",
}

// MovieCategoriesTable represents the 'movie_categories' table
type MovieCategoriesTable struct {
	Table      string
	MovieID    string
	CategoryID string
}

// MovieCategories is the schema definition for movie_categories
var MovieCategories = MovieCategoriesTable{
	Table:      "movie_categories",
	MovieID:    "movie_id",
	CategoryID: "category_id",
}

// MovieKeywords is the schema definition for movie_keywords.
// Keywords are category associations stored apart from movie_categories.
var MovieKeywords = MovieCategoriesTable{
	Table:      "movie_keywords",
	MovieID:    "movie_id",
	CategoryID: "category_id",
}

// MovieLanguagesTable represents the 'movie_languages' table
type MovieLanguagesTable struct {
	Table    string
	MovieID  string
	Language string
}

// MovieLanguages is the schema definition for movie_languages
var MovieLanguages = MovieLanguagesTable{
	Table:    "movie_languages",
	MovieID:  "movie_id",
	Language: "language",
}

// TrailersTable represents the 'trailers' table
type TrailersTable struct {
	Table     string
	TrailerID string
	MovieID   string
	Key       string
	Language  string
	Source    string
}

// Trailers is the schema definition for trailers
var Trailers = TrailersTable{
	Table:     "trailers",
	TrailerID: "trailer_id",
	MovieID:   "movie_id",
	Key:       "key",
	Language:  "language",
	Source:    "source",
}

// SourceYouTube is the trailer source surfaced on movie read paths.
const SourceYouTube = "youtube"

// MovieLinksTable represents the 'movie_links' table
type MovieLinksTable struct {
	Table    string
	MovieID  string
	Key      string
	Language string
	Source   string
}

// MovieLinks is the schema definition for movie_links
var MovieLinks = MovieLinksTable{
	Table:    "movie_links",
	MovieID:  "movie_id",
	Key:      "key",
	Language: "language",
	Source:   "source",
}

// MovieOwnedTables lists every table whose rows belong to exactly one movie,
// keyed by their movie_id column. Order matches the write path.
func MovieOwnedTables() []string {
	return []string{
		MovieAbstractsEN.Table,
		MovieCountries.Table,
		MovieCategories.Table,
		MovieKeywords.Table,
		Casts.Table,
		MovieLanguages.Table,
		Trailers.Table,
		MovieLinks.Table,
	}
}
