package repositories

import (
	"context"

	"github.com/SscSPs/library_management_app/internal/core/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ReservationReader defines read operations for reservation data
type ReservationReader interface {
	// FindReservationByKey retrieves a reservation by its external key.
	FindReservationByKey(ctx context.Context, reservationKey uuid.UUID) (*domain.Reservation, error)

	// FindReservations retrieves a filtered list ordered by reservation time.
	FindReservations(ctx context.Context, filter domain.ReservationFilter) ([]domain.Reservation, error)
}

// ReservationWriter defines write operations for reservation data. All methods must run within a transaction.
type ReservationWriter interface {
	// FindReservationByKeyForUpdate retrieves and row-locks a reservation.
	FindReservationByKeyForUpdate(ctx context.Context, tx pgx.Tx, reservationKey uuid.UUID) (*domain.Reservation, error)

	// ExistsReservation reports whether the user holds a reservation for the book in the given status.
	ExistsReservation(ctx context.Context, tx pgx.Tx, userID, bookID, statusID int64) (bool, error)

	// SaveReservation inserts a new reservation and fills in its ID.
	SaveReservation(ctx context.Context, tx pgx.Tx, reservation *domain.Reservation) error

	// UpdateReservation persists status and completion time.
	UpdateReservation(ctx context.Context, tx pgx.Tx, reservation domain.Reservation) error
}

// ReservationRepositoryFacade combines all reservation-related repository interfaces
type ReservationRepositoryFacade interface {
	ReservationReader
	ReservationWriter
}
