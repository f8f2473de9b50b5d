package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/cuna-app/cuna/internal/core/domain"
)

// principal returns the CurrentUser resolved by the Session middleware,
// falling back to guest when the middleware did not run.
func principal(c echo.Context) domain.CurrentUser {
	if u, ok := c.Get(principalKey).(domain.CurrentUser); ok {
		return u
	}
	return domain.Guest()
}

// Authenticated refuses anonymous principals.
func Authenticated() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if principal(c).Anonymous {
				return domain.ErrLoginRequired
			}
			return next(c)
		}
	}
}

// Admin refuses everyone without the admin role. Anonymous principals get
// the login prompt rather than a forbidden.
func Admin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u := principal(c)
			if u.Anonymous {
				return domain.ErrLoginRequired
			}
			if !u.IsAdmin() {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
