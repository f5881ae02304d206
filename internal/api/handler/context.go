package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusops/college-roster/internal/api/middleware"
	"github.com/campusops/college-roster/internal/core/domain"
)

// ctxPrincipal extracts the principal injected by the Auth middleware. Its
// absence means the route was wired without the middleware; fail closed.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return p, nil
}
