package services

import (
	"context"

	"github.com/SscSPs/library_management_app/internal/core/domain"
	"github.com/google/uuid"
)

// ReservationLifecycleSvc drives the reservation state machine.
type ReservationLifecycleSvc interface {
	CreateReservation(ctx context.Context, userKey, bookKey uuid.UUID) (*domain.Reservation, error)
	CancelReservation(ctx context.Context, reservationKey uuid.UUID) (*domain.Reservation, error)
	CompleteReservation(ctx context.Context, reservationKey uuid.UUID) (*domain.Reservation, error)
}

// ReservationReaderSvc defines read operations for reservations
type ReservationReaderSvc interface {
	GetReservation(ctx context.Context, reservationKey uuid.UUID) (*domain.Reservation, error)
	ListReservations(ctx context.Context, filter domain.ReservationFilter) ([]domain.Reservation, error)
}

// ReservationSvcFacade combines all reservation-related service interfaces
type ReservationSvcFacade interface {
	ReservationLifecycleSvc
	ReservationReaderSvc
}
