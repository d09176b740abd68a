package domain

import (
	"time"

	"github.com/google/uuid"
)

// Reservation holds a user's place for a book that is currently unavailable.
type Reservation struct {
	ID             int64      `json:"-"`
	ReservationKey uuid.UUID  `json:"reservationKey"`
	UserID         int64      `json:"-"`
	UserKey        uuid.UUID  `json:"userKey"`
	UserName       string     `json:"userName"`
	BookID         int64      `json:"-"`
	BookKey        uuid.UUID  `json:"bookKey"`
	BookTitle      string     `json:"bookTitle"`
	Status         Status     `json:"status"`
	ReservedAt     time.Time  `json:"reservedAt"`
	ExpiresAt      time.Time  `json:"expiresAt"`
	CompletedAt    *time.Time `json:"completedAt"`
}

// IsActive reports whether the reservation can still be cancelled or completed.
func (r Reservation) IsActive() bool {
	return r.Status.Is(ReservationStatusActive)
}

// ReservationFilter narrows a reservation listing.
type ReservationFilter struct {
	UserKey *uuid.UUID
	BookKey *uuid.UUID
	Status  string // status enumerator; empty means any
	Page
}
