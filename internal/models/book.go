package models

import (
	"time"

	"github.com/google/uuid"
)

// Book is a row of books joined with its book_status.
type Book struct {
	ID      int64     `db:"id"`
	BookKey uuid.UUID `db:"book_key"`
	Title   string    `db:"title"`
	Author  string    `db:"author"`
	Genre   string    `db:"genre"`
	StatusRef
	CreatedAt time.Time `db:"created_at"`
}
