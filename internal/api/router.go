package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/campusops/college-roster/internal/api/handler"
	"github.com/campusops/college-roster/internal/api/middleware"
	"github.com/campusops/college-roster/internal/core/domain"
	healthhandlers "github.com/campusops/college-roster/internal/infrastructure/http/handlers"
)

// RouterConfig carries the constructed handlers and collaborators the router
// wires together. Keeping construction out of the router makes the full route
// table exercisable with stubs in tests.
type RouterConfig struct {
	AuthHandler *handler.AuthHandler
	UserHandler *handler.UserHandler
	Health      *healthhandlers.HealthHandler
	Ready       *healthhandlers.HealthDependenciesHandler

	Verifier middleware.TokenVerifier
	Store    middleware.CredentialStore

	// CORSOrigins is the allowed origin list; empty means allow any.
	CORSOrigins []string
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("roster"))

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	}))

	authRequired := middleware.Auth(cfg.Verifier, cfg.Store)
	adminForbidden := middleware.RequireRole(domain.RoleAdmin, middleware.DenyForbidden)
	adminEmptyList := middleware.RequireRole(domain.RoleAdmin, middleware.DenyEmptyList)

	// --- Public routes ---
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"Hello": "World"})
	})
	e.POST("/auth/register", cfg.AuthHandler.Register)
	e.POST("/auth/token", cfg.AuthHandler.Token)

	// --- Roster routes ---
	// Each admin-gated route declares its denial policy explicitly: list
	// reads mask denials as an empty result, mutations and the CSV export
	// reject with 403.
	v1 := e.Group("/api/v1", authRequired)
	v1.GET("/read-all-users", cfg.UserHandler.List, adminEmptyList)
	v1.GET("/read-all-users-dataframe", cfg.UserHandler.Records, adminEmptyList)
	v1.GET("/users-csv", cfg.UserHandler.ExportCSV, adminForbidden)
	v1.POST("/create-user", cfg.UserHandler.Create, adminForbidden)
	v1.PUT("/update-user/:email_address", cfg.UserHandler.Update, adminForbidden)
	v1.DELETE("/delete-user/:email_address", cfg.UserHandler.Delete, adminForbidden)
	v1.GET("/read-user/:email_address", cfg.UserHandler.GetByEmail)
	v1.GET("/users/me", cfg.UserHandler.Me)

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Health probes (no auth required) ---
	if cfg.Health != nil {
		e.GET("/health", cfg.Health.Liveness)
	}
	if cfg.Ready != nil {
		e.GET("/health/ready", cfg.Ready.Readiness)
	}

	return e
}
