// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package person

import (
	"context"

	"github.com/taibuivan/movielens/pkg/pagination"
)

// Store defines the read contract for people.
type Store interface {
	// ListTopByRevenue ranks people by the summed revenue of their movies,
	// highest first. People whose movies have no revenue come last.
	ListTopByRevenue(context context.Context, page pagination.Resolved) ([]*PersonWithRevenue, error)
}
