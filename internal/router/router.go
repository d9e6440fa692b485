package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"greenboard/internal/auth"
	"greenboard/internal/config"
	apperrors "greenboard/internal/errors"
	"greenboard/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	taskHandler *handler.TaskHandler,
	chanceHandler *handler.ChanceHandler,
	adminHandler *handler.AdminHandler,
	seedHandler *handler.SeedHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	jwtMiddleware := echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	})

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Account lifecycle
	accounts := e.Group("/accounts")
	accounts.POST("/user/register/", authHandler.Register)
	accounts.POST("/token/", authHandler.Token)
	accounts.POST("/token/refresh/", authHandler.Refresh)
	accounts.POST("/logout/", authHandler.Logout)
	accounts.POST("/forgot-password-request/", authHandler.ForgotPassword)
	accounts.POST("/reset-password/", authHandler.ResetPassword)
	accounts.GET("/ranked-users/", userHandler.RankedUsers)

	// Catalog list aliases under /accounts/ for front-end compatibility.
	accounts.GET("/tasks/", taskHandler.List)
	accounts.GET("/chances/", chanceHandler.List)

	secured := accounts.Group("", jwtMiddleware)
	secured.GET("/me/", userHandler.Me)
	secured.PATCH("/me/", userHandler.UpdateMe)
	secured.POST("/change-password/", authHandler.ChangePassword)
	secured.DELETE("/delete/", authHandler.DeleteAccount)

	// Task catalog: open reads, staff writes
	tasks := e.Group("/tasks")
	tasks.GET("/", taskHandler.List)
	tasks.GET("/:id/", taskHandler.Get)
	taskWrites := tasks.Group("", jwtMiddleware, RequireStaff)
	taskWrites.POST("/", taskHandler.Create)
	taskWrites.PUT("/:id/", taskHandler.Update)
	taskWrites.DELETE("/:id/", taskHandler.Delete)

	// Chance catalog: open reads, staff writes
	chances := e.Group("/chances")
	chances.GET("/", chanceHandler.List)
	chances.GET("/:id/", chanceHandler.Get)
	chanceWrites := chances.Group("", jwtMiddleware, RequireStaff)
	chanceWrites.POST("/", chanceHandler.Create)
	chanceWrites.PUT("/:id/", chanceHandler.Update)
	chanceWrites.DELETE("/:id/", chanceHandler.Delete)

	// User administration: staff only, full CRUD
	admin := e.Group("/admin", jwtMiddleware, RequireStaff)
	admin.GET("/users/", adminHandler.ListUsers)
	admin.GET("/users/:id/", adminHandler.GetUser)
	admin.POST("/users/", adminHandler.CreateUser)
	admin.PATCH("/users/:id/", adminHandler.UpdateUser)
	admin.DELETE("/users/:id/", adminHandler.DeleteUser)
	admin.POST("/seed-catalogs/", seedHandler.SeedCatalogs)
}

// RequireStaff rejects authenticated callers whose token does not carry
// the staff flag.
func RequireStaff(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := c.Get("user").(*jwt.Token)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
		claims, ok := token.Claims.(*auth.Claims)
		if !ok || !claims.IsStaff {
			return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrorResponse{
				Error: "staff access required",
				Code:  "FORBIDDEN",
			})
		}
		return next(c)
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
