package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/cuna-app/cuna/internal/core/domain"
	"github.com/cuna-app/cuna/internal/core/ports"
)

// BabyHandler serves baby registration and removal.
type BabyHandler struct {
	babies ports.BabyService
}

func NewBabyHandler(babies ports.BabyService) *BabyHandler {
	return &BabyHandler{babies: babies}
}

type createBabyRequest struct {
	Name      string `json:"name"`
	Birthdate string `json:"birthdate"`
}

// Create handles POST /baby.
func (h *BabyHandler) Create(c echo.Context) error {
	var req createBabyRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrEmptyBody
	}
	birthdate, err := domain.ParseDate(req.Birthdate)
	if err != nil {
		return err
	}

	baby, err := h.babies.Create(c.Request().Context(), Principal(c), req.Name, birthdate)
	if err != nil {
		return err
	}
	return record(c, http.StatusCreated, newBabyDto(*baby))
}

// Delete handles DELETE /baby/:uuid. Direct owner only.
func (h *BabyHandler) Delete(c echo.Context) error {
	babyUUID, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		return &domain.InvalidValueError{Detail: "malformed baby identifier"}
	}

	if err := h.babies.Delete(c.Request().Context(), Principal(c), babyUUID); err != nil {
		return err
	}
	return message(c, http.StatusOK, "Baby removed", "the baby and its records were deleted")
}

// babyParam parses the :uuid path segment shared by the activity routes.
func babyParam(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		return uuid.Nil, &domain.InvalidValueError{Detail: "malformed baby identifier"}
	}
	return id, nil
}
