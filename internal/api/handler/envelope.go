package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cuna-app/cuna/internal/core/domain"
)

// The three success envelopes. The embedded status of a message envelope
// always mirrors the HTTP status.

type recordEnvelope struct {
	Data any `json:"data"`
}

type pagedEnvelope struct {
	Data     any             `json:"data"`
	PageInfo domain.PageInfo `json:"page_info"`
}

type messageBody struct {
	Status int    `json:"status"`
	Title  string `json:"title"`
	Type   string `json:"type"`
	Detail string `json:"detail"`
}

type messageEnvelope struct {
	Message messageBody `json:"message"`
}

func record(c echo.Context, status int, data any) error {
	return c.JSON(status, recordEnvelope{Data: data})
}

func paged(c echo.Context, data any, info domain.PageInfo) error {
	return c.JSON(http.StatusOK, pagedEnvelope{Data: data, PageInfo: info})
}

func message(c echo.Context, status int, title, detail string) error {
	return c.JSON(status, messageEnvelope{Message: messageBody{
		Status: status,
		Title:  title,
		Type:   "message",
		Detail: detail,
	}})
}
