package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxClaims extracts the identity injected by the Session middleware and
// performs a fast-fail check before any service call: a non-empty role
// proves the middleware ran, and every session carries a subject ID.
func ctxClaims(c echo.Context) (subjectID int64, role string, err error) {
	role, _ = c.Get("role").(string)
	if role == "" {
		return 0, "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	subjectID, ok := c.Get("subject_id").(int64)
	if !ok || subjectID == 0 {
		return 0, "", echo.NewHTTPError(http.StatusUnauthorized, "session missing subject identity")
	}

	return subjectID, role, nil
}
