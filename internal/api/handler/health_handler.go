package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const probeTimeout = 3 * time.Second

// HealthHandler serves the liveness and readiness probes. Liveness only
// confirms the process answers; Readiness pings the record store and the
// session cache.
type HealthHandler struct {
	db    *sqlx.DB
	cache *redis.Client
}

func NewHealthHandler(db *sqlx.DB, cache *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type probeReport struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func (h *HealthHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), probeTimeout)
	defer cancel()

	report := probeReport{Status: "ok", Checks: map[string]string{}}
	code := http.StatusOK

	fail := func(name string, err error) {
		report.Checks[name] = err.Error()
		report.Status = "degraded"
		code = http.StatusServiceUnavailable
	}

	if err := h.db.PingContext(ctx); err != nil {
		fail("postgres", err)
	} else {
		report.Checks["postgres"] = "ok"
	}
	if err := h.cache.Ping(ctx).Err(); err != nil {
		fail("redis", err)
	} else {
		report.Checks["redis"] = "ok"
	}

	return c.JSON(code, report)
}
