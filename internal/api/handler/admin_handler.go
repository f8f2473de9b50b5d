package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/cuna-app/cuna/internal/core/domain"
	"github.com/cuna-app/cuna/internal/core/ports"
)

// purgeEntry is the ?entry sentinel selecting the inactive-account purge
// instead of a single user.
const purgeEntry = "old"

// AdminHandler serves the admin surface: stats, role management, user
// management and baby sharing.
type AdminHandler struct {
	admin ports.AdminService
}

func NewAdminHandler(admin ports.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// Stats handles GET /admin/stats.
func (h *AdminHandler) Stats(c echo.Context) error {
	counts, err := h.admin.Stats(c.Request().Context(), Principal(c))
	if err != nil {
		return err
	}
	return record(c, http.StatusOK, counts)
}

// Roles handles GET /admin/roles.
func (h *AdminHandler) Roles(c echo.Context) error {
	counts, err := h.admin.Roles(c.Request().Context(), Principal(c))
	if err != nil {
		return err
	}
	return record(c, http.StatusOK, counts)
}

type roleChangeRequest struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// GrantRole handles PUT /admin/roles.
func (h *AdminHandler) GrantRole(c echo.Context) error {
	var req roleChangeRequest
	if err := c.Bind(&req); err != nil || req.Username == "" || req.Role == "" {
		return domain.ErrEmptyBody
	}

	if err := h.admin.GrantRole(c.Request().Context(), Principal(c), req.Username, req.Role); err != nil {
		return err
	}
	return message(c, http.StatusOK, "Role granted",
		fmt.Sprintf("user %q now carries role %q", req.Username, req.Role))
}

// RevokeRole handles DELETE /admin/roles.
func (h *AdminHandler) RevokeRole(c echo.Context) error {
	var req roleChangeRequest
	if err := c.Bind(&req); err != nil || req.Username == "" || req.Role == "" {
		return domain.ErrEmptyBody
	}

	if err := h.admin.RevokeRole(c.Request().Context(), Principal(c), req.Username, req.Role); err != nil {
		return err
	}
	return message(c, http.StatusOK, "Role revoked",
		fmt.Sprintf("user %q no longer carries role %q", req.Username, req.Role))
}

// GetUser handles GET /admin/user. With ?entry it returns one user;
// without, a paginated listing.
func (h *AdminHandler) GetUser(c echo.Context) error {
	entry := c.QueryParam("entry")
	if entry == "" {
		p := pagination(c)
		users, count, err := h.admin.ListUsers(c.Request().Context(), Principal(c), p)
		if err != nil {
			return err
		}

		dtos := make([]UserDto, 0, len(users))
		for i := range users {
			dtos = append(dtos, newUserDto(&users[i]))
		}
		return paged(c, dtos, domain.NewPageInfo(p.Page, p.TotalPages(uint32(count))))
	}

	id, err := strconv.ParseInt(entry, 10, 64)
	if err != nil {
		return &domain.InvalidValueError{Detail: "entry must be a user id"}
	}
	user, err := h.admin.FindUser(c.Request().Context(), Principal(c), id)
	if err != nil {
		return err
	}
	return record(c, http.StatusOK, newUserDto(user))
}

// DeleteUser handles DELETE /admin/user. ?entry=old purges deactivated
// accounts past retention; a numeric entry deletes that user.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	entry := c.QueryParam("entry")
	if entry == "" {
		return domain.ErrEmptyQuery
	}

	if entry == purgeEntry {
		removed, err := h.admin.PurgeInactive(c.Request().Context(), Principal(c))
		if err != nil {
			return err
		}
		return message(c, http.StatusOK, "Users purged",
			fmt.Sprintf("%d inactive accounts removed", removed))
	}

	id, err := strconv.ParseInt(entry, 10, 64)
	if err != nil {
		return &domain.InvalidValueError{Detail: "entry must be a user id"}
	}
	if err := h.admin.DeleteUser(c.Request().Context(), Principal(c), id); err != nil {
		return err
	}
	return message(c, http.StatusOK, "User deleted", fmt.Sprintf("user %d removed", id))
}

// PatchUser handles PATCH /admin/user?entry=<id>: toggles the active flag.
func (h *AdminHandler) PatchUser(c echo.Context) error {
	entry := c.QueryParam("entry")
	if entry == "" {
		return domain.ErrEmptyQuery
	}
	id, err := strconv.ParseInt(entry, 10, 64)
	if err != nil {
		return &domain.InvalidValueError{Detail: "entry must be a user id"}
	}

	active, err := h.admin.ToggleActive(c.Request().Context(), Principal(c), id)
	if err != nil {
		return err
	}

	state := "deactivated"
	if active {
		state = "activated"
	}
	return message(c, http.StatusOK, "User updated", fmt.Sprintf("user %d %s", id, state))
}

type shareBabyRequest struct {
	Username string `json:"username"`
	BabyUUID string `json:"baby_uuid"`
}

// ShareBaby handles PUT /admin/baby: grants a user access to a baby and
// refreshes their cached projection.
func (h *AdminHandler) ShareBaby(c echo.Context) error {
	var req shareBabyRequest
	if err := c.Bind(&req); err != nil || req.Username == "" || req.BabyUUID == "" {
		return domain.ErrEmptyBody
	}
	babyUUID, err := uuid.Parse(req.BabyUUID)
	if err != nil {
		return &domain.InvalidValueError{Detail: "malformed baby identifier"}
	}

	if err := h.admin.ShareBaby(c.Request().Context(), Principal(c), req.Username, babyUUID); err != nil {
		return err
	}
	return message(c, http.StatusOK, "Baby shared",
		fmt.Sprintf("user %q can now access baby %s", req.Username, babyUUID))
}
