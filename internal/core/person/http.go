// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package person

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/movielens/internal/platform/respond"
	"github.com/taibuivan/movielens/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/top-revenue", handler.listTopByRevenue)
}

/*
GET /api/v1/people/top-revenue.

Response:
  - 200: []PersonWithRevenue, highest total revenue first
  - 400: Validation: malformed paging
*/
func (handler *Handler) listTopByRevenue(writer http.ResponseWriter, request *http.Request) {
	page, err := pagination.FromRequest(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	people, err := handler.service.ListTopByRevenue(request.Context(), page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "People with most revenue retrieved successfully.", people)
}
