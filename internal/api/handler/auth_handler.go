package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cuna-app/cuna/internal/api/metrics"
	"github.com/cuna-app/cuna/internal/api/middleware"
	"github.com/cuna-app/cuna/internal/core/domain"
	"github.com/cuna-app/cuna/internal/core/ports"
)

// AuthHandler serves registration, login, logout and session inspection.
type AuthHandler struct {
	accounts ports.AccountService
	sessions ports.SessionManager
	babies   ports.BabyService
	codec    *middleware.CookieCodec
}

func NewAuthHandler(accounts ports.AccountService, sessions ports.SessionManager, babies ports.BabyService, codec *middleware.CookieCodec) *AuthHandler {
	return &AuthHandler{accounts: accounts, sessions: sessions, babies: babies, codec: codec}
}

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Name     string `json:"name,omitempty"`
	Surname  string `json:"surname,omitempty"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register handles POST /auth/register: creates the account and opens a
// session in the same request.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrEmptyBody
	}
	if err := c.Validate(&req); err != nil {
		return &domain.BadRequestError{Msg: err.Error()}
	}

	user, err := h.accounts.Register(c.Request().Context(), ports.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Name:     req.Name,
		Surname:  req.Surname,
	})
	if err != nil {
		return err
	}

	projection, err := h.sessions.Login(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	if err := h.codec.Issue(c, user.ID); err != nil {
		return err
	}

	return record(c, http.StatusCreated, newSessionDto(projection, nil))
}

// Login handles POST /auth/login: verifies credentials, caches the
// projection and binds the session cookie.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrEmptyBody
	}

	user, err := h.accounts.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		return err
	}

	projection, err := h.sessions.Login(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	if err := h.codec.Issue(c, user.ID); err != nil {
		return err
	}
	metrics.LoginsTotal.WithLabelValues("ok").Inc()

	babies, err := h.babies.ListOwn(c.Request().Context(), projection)
	if err != nil {
		return err
	}
	return record(c, http.StatusOK, newSessionDto(projection, babies))
}

// Logout handles POST /auth/logout: drops the cached projection and the
// cookie binding.
func (h *AuthHandler) Logout(c echo.Context) error {
	u := Principal(c)
	if u.Anonymous {
		return domain.ErrLoginRequired
	}

	if err := h.sessions.Logout(c.Request().Context(), u.ID); err != nil {
		return err
	}
	h.codec.Clear(c)

	return message(c, http.StatusOK, "Logged out", "the session has been closed")
}

// Session handles GET /auth/session: returns the current identity, guest
// included.
func (h *AuthHandler) Session(c echo.Context) error {
	u := Principal(c)

	babies, err := h.babies.ListOwn(c.Request().Context(), u)
	if err != nil {
		return err
	}
	return record(c, http.StatusOK, newSessionDto(u, babies))
}
