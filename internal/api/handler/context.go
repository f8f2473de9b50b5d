package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/cuna-app/cuna/internal/core/domain"
)

// Principal returns the CurrentUser the Session middleware attached to the
// request. A request that somehow bypassed the middleware is treated as a
// guest, which every gate predicate refuses where it matters.
func Principal(c echo.Context) domain.CurrentUser {
	if u, ok := c.Get("principal").(domain.CurrentUser); ok {
		return u
	}
	return domain.Guest()
}
