package services

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/showcaseworks/showcase-go/internal/infrastructure/observability/logging"
	"github.com/showcaseworks/showcase-go/internal/infrastructure/security"
)

// ErrInvalidCredentials is returned for any failed login attempt. The
// caller gets no hint whether auth is unconfigured or the password was
// wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService verifies the admin password and issues session tokens
// for the protected endpoints.
type AuthService struct {
	jwtSecret    string
	passwordHash string
	tokenTTL     time.Duration
	logger       *logging.ChanneledLogger
}

// NewAuthService creates the auth service from the configured secret,
// bcrypt hash, and token lifetime.
func NewAuthService(jwtSecret, passwordHash string, tokenTTL time.Duration, logger *logging.ChanneledLogger) *AuthService {
	return &AuthService{
		jwtSecret:    jwtSecret,
		passwordHash: passwordHash,
		tokenTTL:     tokenTTL,
		logger:       logger,
	}
}

// Login checks the password against the configured bcrypt hash and
// returns a signed admin token.
func (s *AuthService) Login(password string) (string, error) {
	if s.jwtSecret == "" || s.passwordHash == "" {
		s.logger.Auth().Warn("Login attempted but admin auth is not configured")
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		s.logger.Auth().Warn("Admin login rejected")
		return "", ErrInvalidCredentials
	}

	token, err := security.GenerateAdminToken(s.jwtSecret, s.tokenTTL)
	if err != nil {
		return "", err
	}
	s.logger.Auth().Info("Admin login succeeded")
	return token, nil
}
