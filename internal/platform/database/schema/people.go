package schema

// PeopleTable represents the 'people' table
type PeopleTable struct {
	Table    string
	ID       string
	Name     string
	Birthday string
	Deathday string
	Gender   string
}

// People is the schema definition for people
var People = PeopleTable{
	Table:    "people",
	ID:       "id",
	Name:     "name",
	Birthday: "birthday",
	Deathday: "deathday",
	Gender:   "gender",
}

// CastsTable represents the 'casts' table
type CastsTable struct {
	Table    string
	MovieID  string
	PersonID string
	JobID    string
	Role     string
	Position string
}

// Casts is the schema definition for casts
var Casts = CastsTable{
	Table:    "casts",
	MovieID:  "movie_id",
	PersonID: "person_id",
	JobID:    "job_id",
	Role:     "role",
	Position: "position",
}

// JobsTable represents the 'jobs' table
type JobsTable struct {
	Table string
	ID    string
	Name  string
}

// Jobs is the schema definition for jobs
var Jobs = JobsTable{
	Table: "jobs",
	ID:    "id",
	Name:  "name",
}
