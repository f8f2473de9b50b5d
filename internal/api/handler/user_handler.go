package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/cuna-app/cuna/internal/core/domain"
	"github.com/cuna-app/cuna/internal/core/ports"
)

// UserHandler serves profile reads and self-service updates.
type UserHandler struct {
	accounts ports.AccountService
}

func NewUserHandler(accounts ports.AccountService) *UserHandler {
	return &UserHandler{accounts: accounts}
}

type profilePatchRequest struct {
	Email   *string `json:"email,omitempty"`
	Name    *string `json:"name,omitempty"`
	Surname *string `json:"surname,omitempty"`
}

// Get handles GET /user/:id. Visible to the owner and to admins.
func (h *UserHandler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return &domain.InvalidValueError{Detail: "user id must be an integer"}
	}

	user, err := h.accounts.GetUser(c.Request().Context(), Principal(c), id)
	if err != nil {
		return err
	}
	return record(c, http.StatusOK, newUserDto(user))
}

// Patch handles PATCH /user/:id. Owner only.
func (h *UserHandler) Patch(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return &domain.InvalidValueError{Detail: "user id must be an integer"}
	}

	var req profilePatchRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrEmptyBody
	}

	user, err := h.accounts.UpdateProfile(c.Request().Context(), Principal(c), id, domain.ProfilePatch{
		Email:   req.Email,
		Name:    req.Name,
		Surname: req.Surname,
	})
	if err != nil {
		return err
	}
	return record(c, http.StatusOK, newUserDto(user))
}
