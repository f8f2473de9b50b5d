package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cuna-app/cuna/internal/core/domain"
)

// errorBody is the canonical error envelope for all API failures.
type errorBody struct {
	Code   int    `json:"code"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

type errorEnvelope struct {
	Errors errorBody `json:"errors"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs store failures internally without leaking details to the client.
//   - Renders the consistent envelope {"errors": {code, title, detail}}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, title, detail := resolveError(err, log, c)
		_ = c.JSON(code, errorEnvelope{Errors: errorBody{Code: code, Title: title, Detail: detail}})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (code int, title, detail string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, http.StatusText(he.Code), fmt.Sprintf("%v", he.Message)
	}

	// Known sentinel errors → deterministic codes.
	switch {
	case errors.Is(err, domain.ErrEmptyBody):
		return http.StatusBadRequest, "Empty body", "the request body carries no usable fields"
	case errors.Is(err, domain.ErrEmptyQuery):
		return http.StatusBadRequest, "Empty query", "a required query parameter is missing"
	case errors.Is(err, domain.ErrDuplicateUser):
		return http.StatusBadRequest, "Duplicate user", "the username is already taken"
	case errors.Is(err, domain.ErrIncorrectPassword):
		return http.StatusBadRequest, "Incorrect password", "the credentials do not match"
	case errors.Is(err, domain.ErrDatesUnordered):
		return http.StatusBadRequest, "Dates unordered", "`from` must not be after `to`"
	case errors.Is(err, domain.ErrNoActiveUser):
		return http.StatusUnauthorized, "No active user", "the account is deactivated"
	case errors.Is(err, domain.ErrLoginRequired):
		return http.StatusUnauthorized, "Login required", "authenticate to access this resource"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "Forbidden", "the resource is outside your grant"
	case errors.Is(err, domain.ErrNoUser):
		return http.StatusNotFound, "No user", "no such user"
	case errors.Is(err, domain.ErrNoEntryFound):
		return http.StatusNotFound, "No entry found", "no such record"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "Not found", "no such resource"
	}

	// Typed errors carrying request-specific detail.
	var oob *domain.OutOfBoundsError
	if errors.As(err, &oob) {
		return http.StatusBadRequest, "Out of bounds", oob.Error()
	}
	var inv *domain.InvalidValueError
	if errors.As(err, &inv) {
		return http.StatusBadRequest, "Invalid value", inv.Detail
	}
	var df *domain.DateFormatError
	if errors.As(err, &df) {
		return http.StatusBadRequest, "Date format", df.Detail
	}
	var nr *domain.NoRecordError
	if errors.As(err, &nr) {
		return http.StatusNotFound, "No record", nr.Error()
	}
	var br *domain.BadRequestError
	if errors.As(err, &br) {
		return http.StatusBadRequest, "Bad request", br.Msg
	}

	// Store failures: log the cause, hide it from the client.
	var se *domain.StoreError
	if errors.As(err, &se) {
		log.Error().Err(se.Err).Str("op", se.Op).Str("path", c.Path()).Msg("record store failure")
		return http.StatusInternalServerError, "Store error", "the record store failed"
	}
	var sse *domain.SessionStoreError
	if errors.As(err, &sse) {
		log.Error().Err(sse.Err).Str("op", sse.Op).Str("path", c.Path()).Msg("session store failure")
		return http.StatusInternalServerError, "Session store error", "the session store failed"
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Internal error", "internal server error"
}
