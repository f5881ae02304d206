package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusops/college-roster/internal/api/metrics"
	"github.com/campusops/college-roster/internal/core/domain"
)

// DenialPolicy selects what a role gate returns when the principal lacks the
// required role. Both behaviors exist in the original endpoints; each route
// declares its policy explicitly instead of unifying them.
type DenialPolicy int

const (
	// DenyForbidden rejects with an explicit 403 error envelope.
	DenyForbidden DenialPolicy = iota
	// DenyEmptyList masks the denial as a 200 with an empty JSON array.
	DenyEmptyList
)

// RequireRole gates a route on a single required role with the given denial
// policy. A missing principal means the Auth middleware did not run or did
// not pass; that is always a 401 regardless of policy.
func RequireRole(role domain.Role, policy DenialPolicy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := PrincipalFrom(c)
			if !ok {
				return unauthorized(c, "invalid")
			}

			if !principal.HasRole(role) {
				if policy == DenyEmptyList {
					metrics.RoleDenialsTotal.WithLabelValues("empty").Inc()
					return c.JSON(http.StatusOK, []any{})
				}
				metrics.RoleDenialsTotal.WithLabelValues("forbidden").Inc()
				return c.JSON(http.StatusForbidden, map[string]string{"error": "access forbidden"})
			}

			return next(c)
		}
	}
}
