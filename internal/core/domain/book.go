package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultGenre is assigned to books created without a genre.
const DefaultGenre = "General"

// Book represents a single lendable copy in the catalog.
type Book struct {
	ID        int64     `json:"-"`
	BookKey   uuid.UUID `json:"bookKey"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Genre     string    `json:"genre"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsAvailable reports whether the book can be borrowed right now.
func (b Book) IsAvailable() bool {
	return b.Status.Is(BookStatusAvailable)
}

// BookFilter narrows a book listing.
type BookFilter struct {
	Genre string // matched case-insensitively; empty means any
	Page
}

// BookAvailability answers "can I borrow this book, and if not, when is it due back".
type BookAvailability struct {
	Available          bool       `json:"available"`
	Status             string     `json:"status"`
	ExpectedReturnDate *time.Time `json:"expectedReturnDate"`
}
