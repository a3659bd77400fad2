package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/consultorio-juridico/portal-session/internal/core/domain"
)

func rbacContext(user *domain.User) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	if user != nil {
		c.Set(ContextUser, user)
		c.Set(ContextRole, user.Role)
	}
	return c
}

func TestRBAC_Allows(t *testing.T) {
	c := rbacContext(&domain.User{ID: 1, Role: domain.RoleCoordinator})

	called := false
	handler := RBAC(domain.RoleCoordinator)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
}

func TestRBAC_Forbids(t *testing.T) {
	cases := map[string]*domain.User{
		"student":    {ID: 2, Role: domain.RoleStudent},
		"empty role": {ID: 3},
		"no user":    nil,
	}
	for name, user := range cases {
		t.Run(name, func(t *testing.T) {
			handler := RBAC(domain.RoleCoordinator)(func(c echo.Context) error {
				t.Fatalf("should not reach next handler")
				return nil
			})

			if err := handler(rbacContext(user)); !errors.Is(err, domain.ErrForbidden) {
				t.Fatalf("expected ErrForbidden, got %v", err)
			}
		})
	}
}
