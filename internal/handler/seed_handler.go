package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"greenboard/internal/errors"
	"greenboard/internal/service"
)

// SeedHandler exposes catalog seeding over HTTP for staff.
type SeedHandler struct {
	svc service.CatalogService
}

// NewSeedHandler creates a new seed handler.
func NewSeedHandler(svc service.CatalogService) *SeedHandler {
	return &SeedHandler{svc: svc}
}

// SeedResponse reports how many catalog rows were inserted.
type SeedResponse struct {
	Message string `json:"message"`
	Tasks   int    `json:"tasks"`
	Chances int    `json:"chances"`
}

// SeedCatalogs godoc
// @Summary Populate empty task and chance catalogs with the default decks
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} SeedResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/seed-catalogs/ [post]
func (h *SeedHandler) SeedCatalogs(c echo.Context) error {
	tasks, chances, err := h.svc.SeedDefaults(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to seed catalogs",
			Code:  "SEED_FAILED",
		})
	}
	return c.JSON(http.StatusOK, SeedResponse{
		Message: "catalogs seeded",
		Tasks:   tasks,
		Chances: chances,
	})
}
