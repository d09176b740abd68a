package repositories

import (
	"context"

	"github.com/SscSPs/library_management_app/internal/core/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByKey retrieves a user by its external key.
	FindUserByKey(ctx context.Context, userKey uuid.UUID) (*domain.User, error)

	// FindUserByEmail retrieves a user by normalized email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUsers retrieves a paginated list of users.
	FindUsers(ctx context.Context, page domain.Page) ([]domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// FindUserByKeyForUpdate retrieves and row-locks a user. Must be called within a transaction.
	FindUserByKeyForUpdate(ctx context.Context, tx pgx.Tx, userKey uuid.UUID) (*domain.User, error)

	// SaveUser inserts a new user and fills in its ID and CreatedAt.
	SaveUser(ctx context.Context, tx pgx.Tx, user *domain.User) error

	// UpdateUser updates name and email.
	UpdateUser(ctx context.Context, user domain.User) error

	// UpdateUserStatus points the user at a new status row.
	UpdateUserStatus(ctx context.Context, tx pgx.Tx, userID int64, status domain.Status) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
