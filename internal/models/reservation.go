package models

import (
	"time"

	"github.com/google/uuid"
)

// Reservation is a row of reservations joined with its status, user and book.
type Reservation struct {
	ID             int64      `db:"id"`
	ReservationKey uuid.UUID  `db:"reservation_key"`
	UserID         int64      `db:"user_id"`
	UserKey        uuid.UUID  `db:"user_key"`
	UserName       string     `db:"user_name"`
	BookID         int64      `db:"book_id"`
	BookKey        uuid.UUID  `db:"book_key"`
	BookTitle      string     `db:"book_title"`
	ReservedAt     time.Time  `db:"reserved_at"`
	ExpiresAt      time.Time  `db:"expires_at"`
	CompletedAt    *time.Time `db:"completed_at"`
	StatusRef
}
