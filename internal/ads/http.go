// Copyright (c) 2026 Fabula. All rights reserved.
// Author: phong.nvt.dev@gmail.com

package ads

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nvtphong/fabula/internal/platform/middleware"
	requestutil "github.com/nvtphong/fabula/internal/platform/request"
	"github.com/nvtphong/fabula/internal/platform/respond"
	"github.com/nvtphong/fabula/internal/platform/sec"
)

// Handler implements the HTTP layer for ad placements.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the public feed and the admin inventory.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	api.Get("/ads", handler.ListActive)

	api.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))
		admin.Get("/admin/ads", handler.ListAll)
		admin.Post("/admin/ads", handler.CreateAd)
		admin.Put("/admin/ads/{adID}", handler.UpdateAd)
		admin.Delete("/admin/ads/{adID}", handler.DeleteAd)
	})
}

/*
GET /api/v1/ads?placement=.

Response:
  - 200: []Ad: active ads for the placement, newest first
  - 400: Validation: unknown placement value
*/
func (handler *Handler) ListActive(writer http.ResponseWriter, request *http.Request) {
	placement := request.URL.Query().Get("placement")

	activeAds, err := handler.service.ListActive(request.Context(), placement)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, activeAds)
}

// GET /api/v1/admin/ads.
func (handler *Handler) ListAll(writer http.ResponseWriter, request *http.Request) {
	inventory, err := handler.service.ListAll(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, inventory)
}

// POST /api/v1/admin/ads.
func (handler *Handler) CreateAd(writer http.ResponseWriter, request *http.Request) {
	var input WriteInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	ad, err := handler.service.CreateAd(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, ad)
}

// PUT /api/v1/admin/ads/{adID}.
func (handler *Handler) UpdateAd(writer http.ResponseWriter, request *http.Request) {
	adID := requestutil.ID(request, "adID")

	var input WriteInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	ad, err := handler.service.UpdateAd(request.Context(), adID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ad)
}

// DELETE /api/v1/admin/ads/{adID}.
func (handler *Handler) DeleteAd(writer http.ResponseWriter, request *http.Request) {
	adID := requestutil.ID(request, "adID")

	if err := handler.service.DeleteAd(request.Context(), adID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
