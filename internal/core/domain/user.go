package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a library patron.
type User struct {
	ID        int64     `json:"-"`
	UserKey   uuid.UUID `json:"userKey"`
	Name      string    `json:"name"`
	Email     string    `json:"email"` // stored lower-cased, unique
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsActive reports whether the user may borrow books.
func (u User) IsActive() bool {
	return u.Status.Is(UserStatusActive)
}
