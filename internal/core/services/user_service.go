package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/SscSPs/library_management_app/internal/apperrors"
	"github.com/SscSPs/library_management_app/internal/core/domain"
	"github.com/SscSPs/library_management_app/internal/core/ports/infra"
	portsrepo "github.com/SscSPs/library_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/library_management_app/internal/core/ports/services"
	"github.com/SscSPs/library_management_app/internal/dto"
)

type userService struct {
	BaseService
	txManager portsrepo.TransactionManager
	userRepo  portsrepo.UserRepositoryFacade
	loanRepo  portsrepo.LoanReader
	eventRepo portsrepo.EventRepository
	statuses  portssvc.StatusCatalogSvc
}

// NewUserService creates a new UserService.
func NewUserService(repos portsrepo.RepositoryProvider, statuses portssvc.StatusCatalogSvc, opts ...ServiceOption) portssvc.UserSvcFacade {
	return &userService{
		BaseService: newBaseService(opts),
		txManager:   repos.TxManager,
		userRepo:    repos.UserRepo,
		loanRepo:    repos.LoanRepo,
		eventRepo:   repos.EventRepo,
		statuses:    statuses,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// NormalizeEmail lower-cases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	email := NormalizeEmail(req.Email)
	if err := s.ensureEmailFree(ctx, email, 0); err != nil {
		return nil, err
	}

	active, err := s.statuses.Resolve(ctx, domain.EntityUser, domain.UserStatusActive)
	if err != nil {
		return nil, err
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.txManager.Rollback(ctx, tx)

	user := &domain.User{
		UserKey: uuid.New(),
		Name:    strings.TrimSpace(req.Name),
		Email:   email,
		Status:  active,
	}
	if err := s.userRepo.SaveUser(ctx, tx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.ErrEmailAlreadyRegistered
		}
		s.LogError(ctx, err, "Failed to save user")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	if err := appendEvents(ctx, s.eventRepo, tx,
		domain.NewStatusEvent(domain.EntityUser, user.ID, nil, active, s.Now()),
	); err != nil {
		return nil, err
	}
	if err := s.txManager.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "User created", slog.String("user_key", user.UserKey.String()))
	return user, nil
}

func (s *userService) GetUser(ctx context.Context, userKey uuid.UUID) (*domain.User, error) {
	return cached(&s.BaseService, infra.DetailsKey(string(domain.EntityUser), userKey.String()), func() (*domain.User, error) {
		user, err := s.userRepo.FindUserByKey(ctx, userKey)
		if err != nil {
			return nil, notFoundAs(err, apperrors.ErrUserNotFound, "failed to load user")
		}
		return user, nil
	})
}

func (s *userService) ListUsers(ctx context.Context, page domain.Page) ([]domain.User, error) {
	if err := validatePage(page); err != nil {
		return nil, err
	}
	users, err := s.userRepo.FindUsers(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *userService) ListUserLoans(ctx context.Context, userKey uuid.UUID, page domain.Page) ([]domain.Loan, error) {
	if err := validatePage(page); err != nil {
		return nil, err
	}
	user, err := s.GetUser(ctx, userKey)
	if err != nil {
		return nil, err
	}
	loans, err := s.loanRepo.FindLoans(ctx, domain.LoanFilter{UserKey: &user.UserKey, Now: s.Now(), Page: page})
	if err != nil {
		return nil, fmt.Errorf("failed to list user loans: %w", err)
	}
	return loans, nil
}

func (s *userService) UpdateUser(ctx context.Context, userKey uuid.UUID, req dto.UpdateUserRequest) (*domain.User, error) {
	user, err := s.userRepo.FindUserByKey(ctx, userKey)
	if err != nil {
		return nil, notFoundAs(err, apperrors.ErrUserNotFound, "failed to load user")
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		email := NormalizeEmail(*req.Email)
		if email != user.Email {
			if err := s.ensureEmailFree(ctx, email, user.ID); err != nil {
				return nil, err
			}
			user.Email = email
		}
	}

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.ErrEmailAlreadyRegistered
		}
		return nil, notFoundAs(err, apperrors.ErrUserNotFound, "failed to update user")
	}

	s.invalidate(domain.EntityUser, user.UserKey.String())
	return user, nil
}

func (s *userService) SetUserStatus(ctx context.Context, userKey uuid.UUID, enumerator string) (*domain.User, error) {
	next, err := s.statuses.Resolve(ctx, domain.EntityUser, enumerator)
	if err != nil {
		return nil, err
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.txManager.Rollback(ctx, tx)

	user, err := s.userRepo.FindUserByKeyForUpdate(ctx, tx, userKey)
	if err != nil {
		return nil, notFoundAs(err, apperrors.ErrUserNotFound, "failed to load user")
	}
	if user.Status.ID == next.ID {
		return user, nil
	}

	previous := user.Status
	if err := s.userRepo.UpdateUserStatus(ctx, tx, user.ID, next); err != nil {
		return nil, fmt.Errorf("failed to update user status: %w", err)
	}
	if err := appendEvents(ctx, s.eventRepo, tx,
		domain.NewStatusEvent(domain.EntityUser, user.ID, &previous, next, s.Now()),
	); err != nil {
		return nil, err
	}
	if err := s.txManager.Commit(ctx, tx); err != nil {
		return nil, err
	}

	user.Status = next
	s.invalidate(domain.EntityUser, user.UserKey.String())
	s.LogInfo(ctx, "User status changed",
		slog.String("user_key", user.UserKey.String()),
		slog.String("from", previous.Enumerator),
		slog.String("to", next.Enumerator))
	return user, nil
}

// ensureEmailFree fails with ErrEmailAlreadyRegistered when email belongs to a user other than ownerID.
func (s *userService) ensureEmailFree(ctx context.Context, email string, ownerID int64) error {
	existing, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check email: %w", err)
	}
	if existing.ID != ownerID {
		return apperrors.ErrEmailAlreadyRegistered
	}
	return nil
}
