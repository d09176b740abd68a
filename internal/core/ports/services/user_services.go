package services

import (
	"context"

	"github.com/SscSPs/library_management_app/internal/core/domain"
	"github.com/SscSPs/library_management_app/internal/dto"
	"github.com/google/uuid"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUser retrieves a user by key.
	GetUser(ctx context.Context, userKey uuid.UUID) (*domain.User, error)

	// ListUsers retrieves a paginated list of users.
	ListUsers(ctx context.Context, page domain.Page) ([]domain.User, error)

	// ListUserLoans retrieves the loans of one user, newest first.
	ListUserLoans(ctx context.Context, userKey uuid.UUID, page domain.Page) ([]domain.Loan, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// CreateUser registers a new active user.
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)

	// UpdateUser changes name and/or email.
	UpdateUser(ctx context.Context, userKey uuid.UUID, req dto.UpdateUserRequest) (*domain.User, error)

	// SetUserStatus moves the user to the status named by enumerator.
	SetUserStatus(ctx context.Context, userKey uuid.UUID, enumerator string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
}
