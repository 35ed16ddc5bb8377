// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package person

import (
	"context"
	"log/slog"

	"github.com/taibuivan/movielens/internal/platform/ctxutil"
	"github.com/taibuivan/movielens/internal/platform/dberr"
	"github.com/taibuivan/movielens/internal/platform/postgres"
	"github.com/taibuivan/movielens/pkg/pagination"
)

// topRevenueQuery sums revenue over every credit, so a person credited twice
// on one movie counts that movie twice.
const topRevenueQuery = `
	SELECT
		p.id, p.name, to_char(p.birthday, 'YYYY-MM-DD'), to_char(p.deathday, 'YYYY-MM-DD'), p.gender,
		SUM(m.revenue)::text AS total_revenue
	FROM movies m
	INNER JOIN casts c ON m.id = c.movie_id
	INNER JOIN people p ON c.person_id = p.id
	GROUP BY p.id
	ORDER BY SUM(m.revenue) DESC NULLS LAST, p.id ASC
	LIMIT $1 OFFSET $2`

type repository struct {
	db postgres.DB
}

// NewRepository constructs a PostgreSQL backed person store.
func NewRepository(db postgres.DB) Store {
	return &repository{db: db}
}

func (repository *repository) ListTopByRevenue(context context.Context, page pagination.Resolved) ([]*PersonWithRevenue, error) {
	rows, err := repository.db.Query(context, topRevenueQuery, page.Limit, page.Offset)
	if err != nil {
		return nil, repository.fail(context, err)
	}
	defer rows.Close()

	people := []*PersonWithRevenue{}
	for rows.Next() {
		person := &PersonWithRevenue{}
		if err := rows.Scan(&person.ID, &person.Name, &person.Birthday, &person.Deathday, &person.Gender, &person.TotalRevenue); err != nil {
			return nil, repository.fail(context, err)
		}
		people = append(people, person)
	}

	if err := rows.Err(); err != nil {
		return nil, repository.fail(context, err)
	}

	return people, nil
}

func (repository *repository) fail(context context.Context, err error) error {
	ctxutil.GetLogger(context).ErrorContext(context, "person_store_failed",
		slog.String("operation", "ListTopByRevenue"),
		slog.Any("error", err),
	)
	return dberr.Wrap(err, "ListTopByRevenue")
}
