// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package person

import (
	"context"

	"github.com/taibuivan/movielens/pkg/pagination"
)

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (service *Service) ListTopByRevenue(context context.Context, page pagination.Resolved) ([]*PersonWithRevenue, error) {
	return service.store.ListTopByRevenue(context, page)
}
