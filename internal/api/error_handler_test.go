package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/aarogyasaathi/medrecords-api/internal/core/domain"
)

func invokeErrorHandler(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)
	return rec
}

func TestHTTPErrorHandler_UnexpectedError(t *testing.T) {
	rec := invokeErrorHandler(t,
		fmt.Errorf("find user by email: dial tcp 127.0.0.1:5432: connect: connection refused"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Error != "internal server error" {
		t.Fatalf("unexpected message: %q", resp.Error)
	}
	if strings.Contains(rec.Body.String(), "dial tcp") {
		t.Fatalf("internal error text leaked: %s", rec.Body.String())
	}
}

func TestHTTPErrorHandler_WrappedSentinel(t *testing.T) {
	// Repositories wrap sentinel errors; errors.Is must still match them.
	rec := invokeErrorHandler(t, fmt.Errorf("login: %w", domain.ErrInvalidCredentials))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestHTTPErrorHandler_DomainMappings(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrTooManyAttempts, http.StatusTooManyRequests},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrUserExists, http.StatusConflict},
		{domain.ErrPatientNotFound, http.StatusNotFound},
		{domain.ErrNotAPatient, http.StatusBadRequest},
		{domain.ErrTitleRequired, http.StatusBadRequest},
	}

	for _, tc := range cases {
		rec := invokeErrorHandler(t, tc.err)
		if rec.Code != tc.code {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.code, rec.Code)
		}
	}
}

func TestHTTPErrorHandler_EchoError(t *testing.T) {
	rec := invokeErrorHandler(t, echo.NewHTTPError(http.StatusNotFound, "not found"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
