package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aarogyasaathi/medrecords-api/internal/session"
)

// CookieName is the cookie carrying the session token.
const CookieName = "session_token"

// Session resolves the session cookie against the registry and injects the
// caller's identity into context. A missing, unknown or expired token is
// rejected with 401; the registry purges expired entries on lookup.
func Session(registry *session.Registry) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(CookieName)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
			}

			sess, ok := registry.Get(cookie.Value)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "session expired or invalid")
			}

			c.Set("subject_id", sess.SubjectID)
			c.Set("role", sess.Role)
			c.Set("session_token", cookie.Value)

			return next(c)
		}
	}
}
