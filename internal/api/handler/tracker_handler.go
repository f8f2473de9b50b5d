package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/cuna-app/cuna/internal/api/metrics"
	"github.com/cuna-app/cuna/internal/core/domain"
	"github.com/cuna-app/cuna/internal/core/ports"
)

// TrackerHandler serves the per-baby activity routes: meals, dreams and
// weights.
type TrackerHandler struct {
	tracker ports.TrackerService
}

func NewTrackerHandler(tracker ports.TrackerService) *TrackerHandler {
	return &TrackerHandler{tracker: tracker}
}

// pagination reads ?page and ?per_page, defaulting where absent.
func pagination(c echo.Context) domain.Pagination {
	p := domain.DefaultPagination()
	if raw := c.QueryParam("page"); raw != "" {
		if v, err := strconv.ParseUint(raw, 10, 32); err == nil && v >= 1 {
			p.Page = uint32(v)
		}
	}
	if raw := c.QueryParam("per_page"); raw != "" {
		if v, err := strconv.ParseUint(raw, 10, 32); err == nil && v >= 1 {
			p.PerPage = uint32(v)
		}
	}
	return p
}

// --- Meals ---

type addMealRequest struct {
	Date     string `json:"date,omitempty"`
	Quantity *int16 `json:"quantity,omitempty"`
	Elapsed  *int16 `json:"elapsed,omitempty"`
}

// ListMeals handles GET /baby/:uuid/meals. With ?date it returns that
// day's meals; otherwise a paginated listing, newest first.
func (h *TrackerHandler) ListMeals(c echo.Context) error {
	babyUUID, err := babyParam(c)
	if err != nil {
		return err
	}

	if raw := c.QueryParam("date"); raw != "" {
		day, err := domain.ParseDate(raw)
		if err != nil {
			return err
		}
		meals, err := h.tracker.MealsByDay(c.Request().Context(), Principal(c), babyUUID, day)
		if err != nil {
			return err
		}
		return record(c, http.StatusOK, newMealDtos(meals))
	}

	meals, err := h.tracker.ListMeals(c.Request().Context(), Principal(c), babyUUID, pagination(c))
	if err != nil {
		return err
	}
	return record(c, http.StatusOK, newMealDtos(meals))
}

// AddMeal handles POST /baby/:uuid/meals.
func (h *TrackerHandler) AddMeal(c echo.Context) error {
	babyUUID, err := babyParam(c)
	if err != nil {
		return err
	}

	var req addMealRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrEmptyBody
	}

	input := ports.MealInput{Quantity: req.Quantity, Elapsed: req.Elapsed}
	if req.Date != "" {
		ts, err := domain.ParseTimestamp(req.Date)
		if err != nil {
			return err
		}
		input.Date = &ts
	}

	meal, err := h.tracker.AddMeal(c.Request().Context(), Principal(c), babyUUID, input)
	if err != nil {
		return err
	}
	metrics.ActivityWritesTotal.WithLabelValues("meal").Inc()
	return record(c, http.StatusCreated, newMealDto(*meal))
}

// --- Dreams ---

type addDreamRequest struct {
	FromDate string `json:"from_date,omitempty"`
	ToDate   string `json:"to_date,omitempty"`
}

// ListDreams handles GET /baby/:uuid/dreams.
func (h *TrackerHandler) ListDreams(c echo.Context) error {
	babyUUID, err := babyParam(c)
	if err != nil {
		return err
	}

	dreams, err := h.tracker.ListDreams(c.Request().Context(), Principal(c), babyUUID, pagination(c))
	if err != nil {
		return err
	}
	return record(c, http.StatusOK, newDreamDtos(dreams))
}

// AddDream handles POST /baby/:uuid/dreams: start, stop, or a complete
// past interval depending on which bounds the body carries.
func (h *TrackerHandler) AddDream(c echo.Context) error {
	babyUUID, err := babyParam(c)
	if err != nil {
		return err
	}

	var req addDreamRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrEmptyBody
	}

	var input ports.DreamInput
	if req.FromDate != "" {
		from, err := domain.ParseTimestamp(req.FromDate)
		if err != nil {
			return err
		}
		input.From = &from
	}
	if req.ToDate != "" {
		to, err := domain.ParseTimestamp(req.ToDate)
		if err != nil {
			return err
		}
		input.To = &to
	}

	dream, err := h.tracker.AddDream(c.Request().Context(), Principal(c), babyUUID, input)
	if err != nil {
		return err
	}
	metrics.ActivityWritesTotal.WithLabelValues("dream").Inc()
	return record(c, http.StatusCreated, newDreamDto(*dream))
}

// --- Weights ---

type addWeightRequest struct {
	Date  string  `json:"date,omitempty"`
	Value float64 `json:"value"`
}

type patchWeightRequest struct {
	ID    int64    `json:"id"`
	Date  *string  `json:"date,omitempty"`
	Value *float64 `json:"value,omitempty"`
}

// ListWeights handles GET /baby/:uuid/weights.
func (h *TrackerHandler) ListWeights(c echo.Context) error {
	babyUUID, err := babyParam(c)
	if err != nil {
		return err
	}

	weights, err := h.tracker.ListWeights(c.Request().Context(), Principal(c), babyUUID, pagination(c))
	if err != nil {
		return err
	}
	return record(c, http.StatusOK, newWeightDtos(weights))
}

// AddWeight handles POST /baby/:uuid/weights.
func (h *TrackerHandler) AddWeight(c echo.Context) error {
	babyUUID, err := babyParam(c)
	if err != nil {
		return err
	}

	var req addWeightRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrEmptyBody
	}

	input := ports.WeightInput{Value: req.Value}
	if req.Date != "" {
		day, err := domain.ParseDate(req.Date)
		if err != nil {
			return err
		}
		input.Date = &day
	}

	weight, err := h.tracker.AddWeight(c.Request().Context(), Principal(c), babyUUID, input)
	if err != nil {
		return err
	}
	metrics.ActivityWritesTotal.WithLabelValues("weight").Inc()
	return record(c, http.StatusCreated, newWeightDto(*weight))
}

// PatchWeight handles PATCH /baby/:uuid/weights. The body names the row.
func (h *TrackerHandler) PatchWeight(c echo.Context) error {
	babyUUID, err := babyParam(c)
	if err != nil {
		return err
	}

	var req patchWeightRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrEmptyBody
	}
	if req.ID <= 0 {
		return &domain.InvalidValueError{Detail: "weight id must be a positive integer"}
	}

	patch := domain.WeightPatch{Value: req.Value}
	if req.Date != nil {
		day, err := domain.ParseDate(*req.Date)
		if err != nil {
			return err
		}
		patch.Date = &day
	}

	weight, err := h.tracker.PatchWeight(c.Request().Context(), Principal(c), babyUUID, req.ID, patch)
	if err != nil {
		return err
	}
	return record(c, http.StatusOK, newWeightDto(*weight))
}
