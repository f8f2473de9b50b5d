package handler

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cuna-app/cuna/internal/api/metrics"
	"github.com/cuna-app/cuna/internal/core/domain"
	"github.com/cuna-app/cuna/internal/core/ports"
)

// SummaryHandler serves the daily roll-up routes for dreams and meals.
//
// The plain summary route accepts ?date (a single day) or ?last_days; with
// neither it covers the baby's whole recorded span. The /range variant
// requires both ?from and ?to.
type SummaryHandler struct {
	summaries ports.SummaryService
}

func NewSummaryHandler(summaries ports.SummaryService) *SummaryHandler {
	return &SummaryHandler{summaries: summaries}
}

// DreamSummary handles GET /baby/:uuid/dreams/summary.
func (h *SummaryHandler) DreamSummary(c echo.Context) error {
	babyUUID, err := babyParam(c)
	if err != nil {
		return err
	}
	u, p := Principal(c), pagination(c)

	var out *ports.PagedDreamSummaries
	switch {
	case c.QueryParam("date") != "":
		day, err := domain.ParseDate(c.QueryParam("date"))
		if err != nil {
			return err
		}
		out, err = h.summaries.DreamRange(c.Request().Context(), u, babyUUID, day, day, p)
		if err != nil {
			return err
		}
	case c.QueryParam("last_days") != "":
		days, err := parseDays(c.QueryParam("last_days"))
		if err != nil {
			return err
		}
		out, err = h.summaries.DreamLastDays(c.Request().Context(), u, babyUUID, days, p)
		if err != nil {
			return err
		}
	default:
		out, err = h.summaries.DreamAll(c.Request().Context(), u, babyUUID, p)
		if err != nil {
			return err
		}
	}

	metrics.SummariesComputedTotal.WithLabelValues("dream").Inc()
	return paged(c, out.Data, out.PageInfo)
}

// DreamSummaryRange handles GET /baby/:uuid/dreams/summary/range.
func (h *SummaryHandler) DreamSummaryRange(c echo.Context) error {
	babyUUID, err := babyParam(c)
	if err != nil {
		return err
	}
	from, to, err := rangeParams(c)
	if err != nil {
		return err
	}

	out, err := h.summaries.DreamRange(c.Request().Context(), Principal(c), babyUUID, from, to, pagination(c))
	if err != nil {
		return err
	}

	metrics.SummariesComputedTotal.WithLabelValues("dream").Inc()
	metrics.SummaryWindowDays.Observe(to.Sub(from).Hours()/24 + 1)
	return paged(c, out.Data, out.PageInfo)
}

// MealSummary handles GET /baby/:uuid/meals/summary.
func (h *SummaryHandler) MealSummary(c echo.Context) error {
	babyUUID, err := babyParam(c)
	if err != nil {
		return err
	}
	u, p := Principal(c), pagination(c)

	var out *ports.PagedMealSummaries
	switch {
	case c.QueryParam("date") != "":
		day, err := domain.ParseDate(c.QueryParam("date"))
		if err != nil {
			return err
		}
		out, err = h.summaries.MealRange(c.Request().Context(), u, babyUUID, day, day, p)
		if err != nil {
			return err
		}
	case c.QueryParam("last_days") != "":
		days, err := parseDays(c.QueryParam("last_days"))
		if err != nil {
			return err
		}
		out, err = h.summaries.MealLastDays(c.Request().Context(), u, babyUUID, days, p)
		if err != nil {
			return err
		}
	default:
		out, err = h.summaries.MealAll(c.Request().Context(), u, babyUUID, p)
		if err != nil {
			return err
		}
	}

	metrics.SummariesComputedTotal.WithLabelValues("meal").Inc()
	return paged(c, out.Data, out.PageInfo)
}

// MealSummaryRange handles GET /baby/:uuid/meals/summary/range.
func (h *SummaryHandler) MealSummaryRange(c echo.Context) error {
	babyUUID, err := babyParam(c)
	if err != nil {
		return err
	}
	from, to, err := rangeParams(c)
	if err != nil {
		return err
	}

	out, err := h.summaries.MealRange(c.Request().Context(), Principal(c), babyUUID, from, to, pagination(c))
	if err != nil {
		return err
	}

	metrics.SummariesComputedTotal.WithLabelValues("meal").Inc()
	metrics.SummaryWindowDays.Observe(to.Sub(from).Hours()/24 + 1)
	return paged(c, out.Data, out.PageInfo)
}

// rangeParams requires both ?from and ?to on the /range routes.
func rangeParams(c echo.Context) (time.Time, time.Time, error) {
	rawFrom, rawTo := c.QueryParam("from"), c.QueryParam("to")
	if rawFrom == "" || rawTo == "" {
		return time.Time{}, time.Time{}, domain.ErrEmptyQuery
	}
	from, err := domain.ParseDate(rawFrom)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := domain.ParseDate(rawTo)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

func parseDays(raw string) (int, error) {
	days, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &domain.InvalidValueError{Detail: "last_days must be an integer"}
	}
	return days, nil
}
