package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"greenboard/internal/errors"
	"greenboard/internal/model"
	"greenboard/internal/service"
)

// ChanceHandler handles the chance card catalog endpoints.
type ChanceHandler struct {
	svc service.CatalogService
}

// NewChanceHandler creates a new chance handler.
func NewChanceHandler(svc service.CatalogService) *ChanceHandler {
	return &ChanceHandler{svc: svc}
}

// ChanceRequest is the write payload for the chance catalog.
type ChanceRequest struct {
	Description  string `json:"description" validate:"required"`
	ScoreToAward int    `json:"score_to_award"`
}

// List godoc
// @Summary List all chance cards
// @Tags chances
// @Produce json
// @Success 200 {array} model.Chance
// @Router /chances/ [get]
func (h *ChanceHandler) List(c echo.Context) error {
	chances, err := h.svc.ListChances(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, chances)
}

// Get godoc
// @Summary Get a chance card by id
// @Tags chances
// @Produce json
// @Param id path int true "Chance ID"
// @Success 200 {object} model.Chance
// @Failure 404 {object} errors.ErrorResponse
// @Router /chances/{id}/ [get]
func (h *ChanceHandler) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	chance, err := h.svc.GetChance(c.Request().Context(), uint(id))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, chance)
}

// Create godoc
// @Summary Create a chance card
// @Tags chances
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body ChanceRequest true "Chance payload"
// @Success 201 {object} model.Chance
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /chances/ [post]
func (h *ChanceHandler) Create(c echo.Context) error {
	var req ChanceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	chance := &model.Chance{
		Description:  req.Description,
		ScoreToAward: req.ScoreToAward,
	}
	if err := h.svc.CreateChance(c.Request().Context(), chance); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, chance)
}

// Update godoc
// @Summary Update a chance card
// @Tags chances
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Chance ID"
// @Param request body ChanceRequest true "Chance payload"
// @Success 200 {object} model.Chance
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /chances/{id}/ [put]
func (h *ChanceHandler) Update(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req ChanceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	chance, err := h.svc.UpdateChance(c.Request().Context(), uint(id), &model.Chance{
		Description:  req.Description,
		ScoreToAward: req.ScoreToAward,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, chance)
}

// Delete godoc
// @Summary Delete a chance card
// @Tags chances
// @Security BearerAuth
// @Param id path int true "Chance ID"
// @Success 204
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /chances/{id}/ [delete]
func (h *ChanceHandler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteChance(c.Request().Context(), uint(id)); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.NoContent(http.StatusNoContent)
}
