package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/consultorio-juridico/portal-session/internal/core/domain"
)

// Context keys set by RequireSession.
const (
	ContextRole = "role"
	ContextUser = "user"
)

// SessionReader exposes the current session snapshot.
type SessionReader interface {
	Snapshot() domain.Session
}

// BridgeToken checks the static bearer token shared with the UI shell.
// An empty token disables the check.
func BridgeToken(token string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if token == "" {
			return next
		}
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}
			if subtle.ConstantTimeCompare([]byte(parts[1]), []byte(token)) != 1 {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			return next(c)
		}
	}
}

// RequireSession rejects requests while no user is logged in and injects
// the session user and role into the context.
func RequireSession(sessions SessionReader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s := sessions.Snapshot()
			if !s.IsAuthenticated || s.User == nil {
				return domain.ErrNotAuthenticated
			}
			c.Set(ContextUser, s.User)
			c.Set(ContextRole, s.User.Role)
			return next(c)
		}
	}
}
