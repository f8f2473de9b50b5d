package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/cuna-app/cuna/internal/core/domain"
)

func contextWithPrincipal(u domain.CurrentUser) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(principalKey, u)
	return c
}

func member() domain.CurrentUser {
	return domain.CurrentUser{ID: 7, Username: "marta", Roles: []domain.Role{domain.RoleUser}, Active: true}
}

func admin() domain.CurrentUser {
	return domain.CurrentUser{ID: 8, Username: "root", Roles: []domain.Role{domain.RoleAdmin, domain.RoleUser}, Active: true}
}

func TestAuthenticated_AllowsMember(t *testing.T) {
	c := contextWithPrincipal(member())

	called := false
	err := Authenticated()(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)

	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatal("next handler not called")
	}
}

func TestAuthenticated_RefusesGuest(t *testing.T) {
	c := contextWithPrincipal(domain.Guest())

	err := Authenticated()(func(c echo.Context) error {
		t.Fatal("should not reach next handler")
		return nil
	})(c)

	if !errors.Is(err, domain.ErrLoginRequired) {
		t.Errorf("expected ErrLoginRequired, got %v", err)
	}
}

func TestAdmin_RefusesNonAdmins(t *testing.T) {
	if err := Admin()(noopNext)(contextWithPrincipal(domain.Guest())); !errors.Is(err, domain.ErrLoginRequired) {
		t.Errorf("guest: expected ErrLoginRequired, got %v", err)
	}
	if err := Admin()(noopNext)(contextWithPrincipal(member())); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("member: expected ErrForbidden, got %v", err)
	}
	if err := Admin()(noopNext)(contextWithPrincipal(admin())); err != nil {
		t.Errorf("admin: unexpected error %v", err)
	}
}

// A request that never went through the Session middleware carries no
// principal and must degrade to guest rather than panic.
func TestPrincipal_MissingDefaultsToGuest(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	u := principal(c)
	if !u.Anonymous || u.ID != domain.AnonymousID {
		t.Errorf("expected guest fallback, got %+v", u)
	}
}

func noopNext(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}
