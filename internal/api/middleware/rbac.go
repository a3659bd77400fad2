package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/consultorio-juridico/portal-session/internal/core/domain"
)

// RBAC admits only session users holding one of allowedRoles. It must run
// after RequireSession.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, _ := c.Get(ContextUser).(*domain.User)
			if user == nil {
				return fmt.Errorf("%w: no session user", domain.ErrForbidden)
			}
			role, _ := c.Get(ContextRole).(string)
			if _, ok := allowed[role]; !ok {
				return fmt.Errorf("%w: role %q", domain.ErrForbidden, role)
			}
			return next(c)
		}
	}
}
