package service

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/aarogyasaathi/medrecords-api/internal/api/metrics"
	"github.com/aarogyasaathi/medrecords-api/internal/core/domain"
	"github.com/aarogyasaathi/medrecords-api/internal/core/ports"
	"github.com/aarogyasaathi/medrecords-api/internal/credential"
	"github.com/aarogyasaathi/medrecords-api/internal/session"
)

const minPasswordLen = 6

// AuthService implements registration, login and logout on top of the
// credential store and the session registry.
type AuthService struct {
	users    ports.UserRepository
	sessions *session.Registry
	throttle ports.LoginThrottle
	logger   zerolog.Logger
}

// NewAuthService wires an AuthService. throttle may be nil, in which case
// failed logins are not rate-limited.
func NewAuthService(users ports.UserRepository, sessions *session.Registry, throttle ports.LoginThrottle, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, sessions: sessions, throttle: throttle, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, email, password, role string) (*domain.User, error) {
	email = normalizeEmail(email)

	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if len(password) < minPasswordLen {
		return nil, domain.ErrPasswordTooShort
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: credential.Hash(password),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	metrics.RegistrationsTotal.WithLabelValues(role).Inc()
	s.logger.Info().Str("email", created.Email).Str("role", created.Role).Msg("user registered")
	return created, nil
}

// Login verifies credentials and mints a session token. Unknown emails and
// wrong passwords both report ErrInvalidCredentials so the response never
// reveals which half was wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if throttled := s.checkThrottle(ctx, email); throttled {
		metrics.LoginsThrottledTotal.Inc()
		return "", nil, domain.ErrTooManyAttempts
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			s.recordFailure(ctx, email)
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !credential.Verify(password, user.PasswordHash) {
		s.recordFailure(ctx, email)
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, email); err != nil {
			s.logger.Warn().Err(err).Msg("resetting login throttle")
		}
	}

	token := s.sessions.Create(user.ID, user.Role)
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Int64("user_id", user.ID).Str("role", user.Role).Msg("user logged in")
	return token, user, nil
}

// Logout revokes the token. It never fails: revoking an unknown or expired
// token is indistinguishable from revoking a live one.
func (s *AuthService) Logout(_ context.Context, token string) {
	s.sessions.Delete(token)
}

// checkThrottle is fail-open: if the throttle backend is unreachable the
// login proceeds to credential verification.
func (s *AuthService) checkThrottle(ctx context.Context, email string) bool {
	if s.throttle == nil {
		return false
	}
	over, err := s.throttle.TooMany(ctx, email)
	if err != nil {
		s.logger.Warn().Err(err).Msg("checking login throttle")
		return false
	}
	return over
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, email); err != nil {
		s.logger.Warn().Err(err).Msg("recording failed login")
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
