package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/SscSPs/library_management_app/internal/apperrors"
	"github.com/SscSPs/library_management_app/internal/core/domain"
	"github.com/SscSPs/library_management_app/internal/core/ports/infra"
	portsrepo "github.com/SscSPs/library_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/library_management_app/internal/core/ports/services"
)

// reservationService runs the reservation state machine.
// cancelled and completed are terminal.
type reservationService struct {
	BaseService
	txManager       portsrepo.TransactionManager
	userRepo        portsrepo.UserReader
	bookRepo        portsrepo.BookRepositoryFacade
	reservationRepo portsrepo.ReservationRepositoryFacade
	eventRepo       portsrepo.EventRepository
	statuses        portssvc.StatusCatalogSvc
	expiry          time.Duration
}

// NewReservationService creates a new ReservationService. New reservations expire after expiry.
func NewReservationService(repos portsrepo.RepositoryProvider, statuses portssvc.StatusCatalogSvc, expiry time.Duration, opts ...ServiceOption) portssvc.ReservationSvcFacade {
	return &reservationService{
		BaseService:     newBaseService(opts),
		txManager:       repos.TxManager,
		userRepo:        repos.UserRepo,
		bookRepo:        repos.BookRepo,
		reservationRepo: repos.ReservationRepo,
		eventRepo:       repos.EventRepo,
		statuses:        statuses,
		expiry:          expiry,
	}
}

var _ portssvc.ReservationSvcFacade = (*reservationService)(nil)

func (s *reservationService) CreateReservation(ctx context.Context, userKey, bookKey uuid.UUID) (_ *domain.Reservation, err error) {
	ctx, span := s.StartSpan(ctx, "reservation.create",
		attribute.String("user.key", userKey.String()),
		attribute.String("book.key", bookKey.String()))
	defer func() { err = EndSpan(span, err) }()

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.txManager.Rollback(ctx, tx)

	user, err := s.userRepo.FindUserByKey(ctx, userKey)
	if err != nil {
		return nil, notFoundAs(err, apperrors.ErrUserNotFound, "failed to load user")
	}

	// The book lock serializes the duplicate check below per book.
	book, err := s.bookRepo.FindBookByKeyForUpdate(ctx, tx, bookKey)
	if err != nil {
		return nil, notFoundAs(err, apperrors.ErrBookNotFound, "failed to load book")
	}
	if book.IsAvailable() {
		return nil, apperrors.ErrCannotReserveAvailableBook
	}

	active, err := s.statuses.Resolve(ctx, domain.EntityReservation, domain.ReservationStatusActive)
	if err != nil {
		return nil, err
	}
	exists, err := s.reservationRepo.ExistsReservation(ctx, tx, user.ID, book.ID, active.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing reservations: %w", err)
	}
	if exists {
		return nil, apperrors.ErrDuplicateActiveReservation
	}

	now := s.Now()
	reservation := &domain.Reservation{
		ReservationKey: uuid.New(),
		UserID:         user.ID,
		UserKey:        user.UserKey,
		UserName:       user.Name,
		BookID:         book.ID,
		BookKey:        book.BookKey,
		BookTitle:      book.Title,
		Status:         active,
		ReservedAt:     now,
		ExpiresAt:      now.Add(s.expiry),
	}
	if err := s.reservationRepo.SaveReservation(ctx, tx, reservation); err != nil {
		return nil, fmt.Errorf("failed to save reservation: %w", err)
	}
	if err := appendEvents(ctx, s.eventRepo, tx,
		domain.NewStatusEvent(domain.EntityReservation, reservation.ID, nil, active, now),
	); err != nil {
		return nil, err
	}

	if err := s.txManager.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Reservation created",
		slog.String("reservation_key", reservation.ReservationKey.String()),
		slog.String("user_key", user.UserKey.String()),
		slog.String("book_key", book.BookKey.String()))
	return reservation, nil
}

func (s *reservationService) CancelReservation(ctx context.Context, reservationKey uuid.UUID) (*domain.Reservation, error) {
	return s.transition(ctx, "reservation.cancel", reservationKey, domain.ReservationStatusCancelled,
		func(r *domain.Reservation, _ time.Time) error {
			switch {
			case r.Status.Is(domain.ReservationStatusCancelled):
				return apperrors.ErrReservationAlreadyCancelled
			case r.Status.Is(domain.ReservationStatusCompleted):
				return apperrors.ErrCannotCancelCompletedReservation
			}
			return nil
		})
}

func (s *reservationService) CompleteReservation(ctx context.Context, reservationKey uuid.UUID) (*domain.Reservation, error) {
	return s.transition(ctx, "reservation.complete", reservationKey, domain.ReservationStatusCompleted,
		func(r *domain.Reservation, now time.Time) error {
			if !r.IsActive() {
				return apperrors.ErrCannotCompleteInactiveReservation
			}
			r.CompletedAt = &now
			return nil
		})
}

// transition locks the reservation, lets guard reject or adjust it, then moves
// it to target and records the event.
func (s *reservationService) transition(ctx context.Context, spanName string, reservationKey uuid.UUID, target string,
	guard func(r *domain.Reservation, now time.Time) error) (_ *domain.Reservation, err error) {
	ctx, span := s.StartSpan(ctx, spanName, attribute.String("reservation.key", reservationKey.String()))
	defer func() { err = EndSpan(span, err) }()

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.txManager.Rollback(ctx, tx)

	reservation, err := s.reservationRepo.FindReservationByKeyForUpdate(ctx, tx, reservationKey)
	if err != nil {
		return nil, notFoundAs(err, apperrors.ErrReservationNotFound, "failed to load reservation")
	}

	now := s.Now()
	if err := guard(reservation, now); err != nil {
		return nil, err
	}

	next, err := s.statuses.Resolve(ctx, domain.EntityReservation, target)
	if err != nil {
		return nil, err
	}
	previous := reservation.Status
	reservation.Status = next

	if err := s.reservationRepo.UpdateReservation(ctx, tx, *reservation); err != nil {
		return nil, fmt.Errorf("failed to update reservation: %w", err)
	}
	if err := appendEvents(ctx, s.eventRepo, tx,
		domain.NewStatusEvent(domain.EntityReservation, reservation.ID, &previous, next, now),
	); err != nil {
		return nil, err
	}

	if err := s.txManager.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.invalidate(domain.EntityReservation, reservation.ReservationKey.String())
	s.LogInfo(ctx, "Reservation status changed",
		slog.String("reservation_key", reservation.ReservationKey.String()),
		slog.String("from", previous.Enumerator),
		slog.String("to", next.Enumerator))
	return reservation, nil
}

func (s *reservationService) GetReservation(ctx context.Context, reservationKey uuid.UUID) (*domain.Reservation, error) {
	return cached(&s.BaseService, infra.DetailsKey(string(domain.EntityReservation), reservationKey.String()), func() (*domain.Reservation, error) {
		r, err := s.reservationRepo.FindReservationByKey(ctx, reservationKey)
		if err != nil {
			return nil, notFoundAs(err, apperrors.ErrReservationNotFound, "failed to load reservation")
		}
		return r, nil
	})
}

func (s *reservationService) ListReservations(ctx context.Context, filter domain.ReservationFilter) ([]domain.Reservation, error) {
	if err := validatePage(filter.Page); err != nil {
		return nil, err
	}
	if filter.Status != "" {
		if _, err := s.statuses.Resolve(ctx, domain.EntityReservation, filter.Status); err != nil {
			return nil, err
		}
	}
	reservations, err := s.reservationRepo.FindReservations(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list reservations")
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	return reservations, nil
}
