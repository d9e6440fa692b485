package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"greenboard/internal/auth"
)

func staffContext(isStaff bool) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/tasks/1/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user", jwt.NewWithClaims(jwt.SigningMethodHS256, &auth.Claims{
		UserID:   1,
		Username: "caller",
		IsStaff:  isStaff,
	}))
	return c, rec
}

func TestRequireStaff(t *testing.T) {
	next := func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}

	t.Run("staff caller passes through", func(t *testing.T) {
		c, rec := staffContext(true)
		err := RequireStaff(next)(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("non-staff caller gets forbidden", func(t *testing.T) {
		c, _ := staffContext(false)
		err := RequireStaff(next)(c)

		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusForbidden, httpErr.Code)
	})

	t.Run("missing token gets unauthorized", func(t *testing.T) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodDelete, "/tasks/1/", nil)
		c := e.NewContext(req, httptest.NewRecorder())

		err := RequireStaff(next)(c)
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})
}
