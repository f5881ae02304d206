package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/campusops/college-roster/internal/api/metrics"
	"github.com/campusops/college-roster/internal/core/domain"
	"github.com/campusops/college-roster/internal/core/service"
)

// principalKey is the echo context key the resolved principal is stored under.
const principalKey = "principal"

// unauthorizedMessage is the single message returned for every verification
// failure. Callers must not be able to tell a bad signature from an expired
// token or an unknown username.
const unauthorizedMessage = "could not validate credentials"

// TokenVerifier validates a bearer token and recovers its claims.
type TokenVerifier interface {
	Verify(token string) (*service.TokenClaims, error)
}

// CredentialStore resolves a token subject to a stored credential record.
type CredentialStore interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}

// Auth validates the bearer token, resolves the subject against the
// credential store, and injects the resulting Principal into the context.
// Every failure collapses into one generic 401 with a WWW-Authenticate
// header; the specific cause is only visible in metrics.
func Auth(verifier TokenVerifier, store CredentialStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return unauthorized(c, "invalid")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return unauthorized(c, "invalid")
			}

			claims, err := verifier.Verify(parts[1])
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrTokenExpired):
					return unauthorized(c, "expired")
				default:
					return unauthorized(c, "invalid")
				}
			}

			user, err := store.FindByUsername(c.Request().Context(), claims.Subject)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return unauthorized(c, "unknown_principal")
				}
				return err
			}

			metrics.TokenVerificationsTotal.WithLabelValues("success").Inc()
			c.Set(principalKey, domain.Principal{
				Username: user.Username,
				Roles:    user.Roles,
			})

			return next(c)
		}
	}
}

// PrincipalFrom returns the principal injected by Auth, if any.
func PrincipalFrom(c echo.Context) (domain.Principal, bool) {
	p, ok := c.Get(principalKey).(domain.Principal)
	return p, ok
}

func unauthorized(c echo.Context, reason string) error {
	metrics.TokenVerificationsTotal.WithLabelValues(reason).Inc()
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return echo.NewHTTPError(http.StatusUnauthorized, unauthorizedMessage)
}
