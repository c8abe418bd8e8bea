package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/aarogyasaathi/medrecords-api/internal/api/middleware"
	"github.com/aarogyasaathi/medrecords-api/internal/core/domain"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, email, password, role string) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (string, *domain.User, error)
	loggedOut  []string
}

func (s *stubAuthService) Register(ctx context.Context, email, password, role string) (*domain.User, error) {
	return s.registerFn(ctx, email, password, role)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Logout(_ context.Context, token string) {
	s.loggedOut = append(s.loggedOut, token)
}

func newAuthTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, email, password, role string) (*domain.User, error) {
			if email != "alice@example.com" || role != "patient" {
				t.Fatalf("unexpected args: %s %s", email, role)
			}
			return &domain.User{ID: 1, Email: email, Role: role}, nil
		},
	}
	handler := NewAuthHandler(stub, 24*time.Hour)

	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/register",
		`{"email":"alice@example.com","password":"secret1","role":"patient"}`)

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["email"] != "alice@example.com" || user["role"] != "patient" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
}

func TestAuthHandler_Register_UserExists(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, email, password, role string) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	handler := NewAuthHandler(stub, 24*time.Hour)

	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/register",
		`{"email":"bob@example.com","password":"secret1","role":"doctor"}`)

	_ = handler.Register(c)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, email, password, role string) (*domain.User, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub, 24*time.Hour)

	// Role outside the doctor/patient set is rejected by validation.
	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/register",
		`{"email":"bob@example.com","password":"secret1","role":"admin"}`)

	_ = handler.Register(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_UnexpectedError(t *testing.T) {
	repoErr := fmt.Errorf("insert user: dial tcp 127.0.0.1:5432: connect: connection refused")
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, email, password, role string) (*domain.User, error) {
			return nil, repoErr
		},
	}
	handler := NewAuthHandler(stub, 24*time.Hour)

	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/register",
		`{"email":"bob@example.com","password":"secret1","role":"doctor"}`)

	// Infrastructure failures must reach the central error handler intact,
	// not be written here with their internal text.
	err := handler.Register(c)
	if !errors.Is(err, repoErr) {
		t.Fatalf("expected the repository error to propagate, got %v", err)
	}
	if c.Response().Committed {
		t.Fatalf("handler wrote a response for an unexpected error")
	}
	if strings.Contains(rec.Body.String(), "dial tcp") {
		t.Fatalf("internal error text leaked: %s", rec.Body.String())
	}
}

func TestAuthHandler_Login_SetsSessionCookie(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			return "tok-123", &domain.User{ID: 9, Email: email, Role: "doctor"}, nil
		},
	}
	handler := NewAuthHandler(stub, 24*time.Hour)

	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"carol@example.com","password":"s3cret1"}`)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	cookies := rec.Result().Cookies()
	var found *http.Cookie
	for _, ck := range cookies {
		if ck.Name == middleware.CookieName {
			found = ck
		}
	}
	if found == nil {
		t.Fatalf("session cookie not set")
	}
	if found.Value != "tok-123" {
		t.Fatalf("unexpected cookie value: %s", found.Value)
	}
	if !found.HttpOnly {
		t.Fatalf("cookie must be HttpOnly")
	}
	if found.SameSite != http.SameSiteLaxMode {
		t.Fatalf("cookie must be SameSite=Lax")
	}
	if found.MaxAge != int((24 * time.Hour).Seconds()) {
		t.Fatalf("unexpected cookie MaxAge: %d", found.MaxAge)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub, 24*time.Hour)

	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"carol@example.com","password":"wrong-1"}`)

	_ = handler.Login(c)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_Throttled(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			return "", nil, domain.ErrTooManyAttempts
		},
	}
	handler := NewAuthHandler(stub, 24*time.Hour)

	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"carol@example.com","password":"wrong-1"}`)

	_ = handler.Login(c)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_UnexpectedError(t *testing.T) {
	repoErr := fmt.Errorf("find user by email: dial tcp 127.0.0.1:5432: connect: connection refused")
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			return "", nil, repoErr
		},
	}
	handler := NewAuthHandler(stub, 24*time.Hour)

	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"carol@example.com","password":"s3cret1"}`)

	err := handler.Login(c)
	if !errors.Is(err, repoErr) {
		t.Fatalf("expected the repository error to propagate, got %v", err)
	}
	if c.Response().Committed {
		t.Fatalf("handler wrote a response for an unexpected error")
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("cookie set despite failed login")
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	stub := &stubAuthService{}
	handler := NewAuthHandler(stub, 24*time.Hour)

	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/logout", "")
	c.Set("session_token", "tok-123")

	if err := handler.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if len(stub.loggedOut) != 1 || stub.loggedOut[0] != "tok-123" {
		t.Fatalf("token not revoked: %+v", stub.loggedOut)
	}

	// The cookie is expired on the client.
	var found *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.CookieName {
			found = ck
		}
	}
	if found == nil {
		t.Fatalf("expiring cookie not set")
	}
	if found.Value != "" || found.MaxAge >= 0 {
		t.Fatalf("cookie not expired: value=%q maxage=%d", found.Value, found.MaxAge)
	}
}
