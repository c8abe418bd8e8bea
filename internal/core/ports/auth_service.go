package ports

import (
	"context"

	"github.com/aarogyasaathi/medrecords-api/internal/core/domain"
)

// AuthService implements registration, login and logout.
type AuthService interface {
	Register(ctx context.Context, email, password, role string) (*domain.User, error)
	// Login verifies credentials and mints a session token on success.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Logout revokes the session token. Revoking an unknown token is a no-op.
	Logout(ctx context.Context, token string)
}

// LoginThrottle limits repeated failed logins per account.
type LoginThrottle interface {
	// TooMany reports whether the account has exhausted its failed-attempt
	// budget within the current window.
	TooMany(ctx context.Context, email string) (bool, error)
	// RecordFailure counts one failed attempt against the account.
	RecordFailure(ctx context.Context, email string) error
	// Reset clears the account's failure counter after a successful login.
	Reset(ctx context.Context, email string) error
}
