package services

import (
	"context"
	"time"
)

// AuthSvc authenticates the operator account.
type AuthSvc interface {
	// VerifyCredentials returns apperrors.ErrInvalidCredentials on mismatch.
	VerifyCredentials(ctx context.Context, username, password string) error

	// IssueToken verifies the credentials and signs a bearer token for them.
	IssueToken(ctx context.Context, username, password string) (string, time.Time, error)

	// ParseToken validates a bearer token and returns its subject.
	ParseToken(ctx context.Context, token string) (string, error)
}
