package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"greenboard/internal/errors"
	"greenboard/internal/service"
)

// UserHandler handles profile and leaderboard endpoints.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Me godoc
// @Summary Get the caller's profile and game stats
// @Tags accounts
// @Security BearerAuth
// @Produce json
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Router /accounts/me/ [get]
func (h *UserHandler) Me(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	user, err := h.svc.GetUser(c.Request().Context(), claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateMe godoc
// @Summary Partially update the caller's profile and game stats
// @Tags accounts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body service.UserUpdate true "Fields to update"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /accounts/me/ [patch]
func (h *UserHandler) UpdateMe(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var update service.UserUpdate
	if err := c.Bind(&update); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	// Object scoping comes from the token, never from the payload; the
	// staff flag cannot be self-assigned here.
	user, err := h.svc.UpdateUser(c.Request().Context(), claims.UserID, &update, false)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, user)
}

// RankedUsers godoc
// @Summary List all users ordered by descending score
// @Tags accounts
// @Produce json
// @Param limit query int false "Max results"
// @Param offset query int false "Results to skip"
// @Success 200 {array} model.User
// @Router /accounts/ranked-users/ [get]
func (h *UserHandler) RankedUsers(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	users, err := h.svc.RankedUsers(c.Request().Context(), limit, offset)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, users)
}
