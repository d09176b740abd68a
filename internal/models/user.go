package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a row of users joined with its user_status.
type User struct {
	ID        int64     `db:"id"`
	UserKey   uuid.UUID `db:"user_key"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	StatusRef           // Joined status columns
	CreatedAt time.Time `db:"created_at"`
}
