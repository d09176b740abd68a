package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/SscSPs/library_management_app/internal/apperrors"
	portssvc "github.com/SscSPs/library_management_app/internal/core/ports/services"
	"github.com/SscSPs/library_management_app/internal/utils"
)

// authService authenticates the single operator account configured for the API.
type authService struct {
	BaseService
	username     string
	passwordHash string
	jwtSecret    string
	jwtExpiry    time.Duration
	jwtIssuer    string
}

// AuthConfig carries the operator credentials and token settings.
type AuthConfig struct {
	Username  string
	Password  string
	JWTSecret string
	JWTExpiry time.Duration
	JWTIssuer string
}

// NewAuthService hashes the configured password once so requests compare against a bcrypt hash.
// An empty password disables credential login.
func NewAuthService(cfg AuthConfig, opts ...ServiceOption) (portssvc.AuthSvc, error) {
	s := &authService{
		BaseService: newBaseService(opts),
		username:    cfg.Username,
		jwtSecret:   cfg.JWTSecret,
		jwtExpiry:   cfg.JWTExpiry,
		jwtIssuer:   cfg.JWTIssuer,
	}
	if cfg.Password != "" {
		hash, err := utils.HashPassword(cfg.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash operator password: %w", err)
		}
		s.passwordHash = hash
	}
	return s, nil
}

var _ portssvc.AuthSvc = (*authService)(nil)

func (s *authService) VerifyCredentials(ctx context.Context, username, password string) error {
	if s.passwordHash == "" {
		return apperrors.ErrInvalidCredentials
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passOK := utils.CheckPasswordHash(password, s.passwordHash)
	if !userOK || !passOK {
		s.LogWarn(ctx, "Rejected operator credentials")
		return apperrors.ErrInvalidCredentials
	}
	return nil
}

func (s *authService) IssueToken(ctx context.Context, username, password string) (string, time.Time, error) {
	if err := s.VerifyCredentials(ctx, username, password); err != nil {
		return "", time.Time{}, err
	}
	token, expiresAt, err := utils.GenerateJWT(username, s.jwtSecret, s.jwtIssuer, s.Now(), s.jwtExpiry)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign JWT token")
		return "", time.Time{}, fmt.Errorf("failed to generate token: %w", err)
	}
	return token, expiresAt, nil
}

func (s *authService) ParseToken(ctx context.Context, token string) (string, error) {
	subject, err := utils.ParseAndValidateJWT(token, s.jwtSecret, s.jwtIssuer, s.Now)
	if err != nil {
		s.LogDebug(ctx, "Invalid bearer token", "error", err.Error())
		return "", apperrors.ErrInvalidCredentials.WithCause(err)
	}
	return subject, nil
}
