package middleware

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cuna-app/cuna/internal/api/metrics"
	"github.com/cuna-app/cuna/internal/core/domain"
	"github.com/cuna-app/cuna/internal/core/ports"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "cuna_session"

// CookieCodec issues and reads the session cookie. The payload is an
// HS256-signed token carrying the user id; a missing, expired or tampered
// cookie degrades to the anonymous principal rather than failing the
// request.
type CookieCodec struct {
	secret []byte
	ttl    time.Duration
}

func NewCookieCodec(secret string, ttl time.Duration) *CookieCodec {
	return &CookieCodec{secret: []byte(secret), ttl: ttl}
}

// Issue binds the cookie session to userID for the configured lifetime.
func (cc *CookieCodec) Issue(c echo.Context, userID int64) error {
	claims := jwt.MapClaims{
		"uid": userID,
		"exp": time.Now().Add(cc.ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(cc.secret)
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(cc.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear unbinds the cookie session.
func (cc *CookieCodec) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// UserID extracts the bound user id, or the anonymous sentinel when the
// cookie is absent or does not verify.
func (cc *CookieCodec) UserID(c echo.Context) int64 {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return domain.AnonymousID
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return cc.secret, nil
	})
	if err != nil || !token.Valid {
		return domain.AnonymousID
	}

	uid, ok := claims["uid"].(float64)
	if !ok || uid <= 0 {
		return domain.AnonymousID
	}
	return int64(uid)
}

// principalKey is the context slot holding the resolved CurrentUser.
const principalKey = "principal"

// Session resolves the request principal before any handler runs and
// stores it in the Echo context. Resolution failures (a cookie outliving
// its account, a dead record store) degrade to the guest principal so the
// request still reaches the gate.
func Session(codec *CookieCodec, sessions ports.SessionManager, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID := codec.UserID(c)

			u, err := sessions.Resolve(c.Request().Context(), userID)
			if err != nil {
				log.Warn().Err(err).Int64("user_id", userID).Msg("principal resolution failed, serving as guest")
				u = domain.Guest()
			}

			if u.Anonymous {
				metrics.SessionResolutionsTotal.WithLabelValues("guest").Inc()
			} else {
				metrics.SessionResolutionsTotal.WithLabelValues("user").Inc()
			}

			c.Set(principalKey, u)
			return next(c)
		}
	}
}
