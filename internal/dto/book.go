package dto

import (
	"time"

	"github.com/SscSPs/library_management_app/internal/core/domain"
)

// CreateBookRequest defines the data needed to add a book to the catalog.
type CreateBookRequest struct {
	Title  string `json:"title" binding:"required,max=255"`
	Author string `json:"author" binding:"required,max=255"`
	Genre  string `json:"genre" binding:"max=100"` // Optional, defaults to "General"
}

// UpdateBookRequest defines the data allowed for updating a book.
type UpdateBookRequest struct {
	Title  *string `json:"title" binding:"omitempty,min=1,max=255"`
	Author *string `json:"author" binding:"omitempty,min=1,max=255"`
	Genre  *string `json:"genre" binding:"omitempty,min=1,max=100"`
}

// ListBooksParams defines query parameters for listing books.
type ListBooksParams struct {
	ListParams
	Genre string `form:"genre"`
}

// BookResponse defines the data returned for a book.
type BookResponse struct {
	BookKey   string    `json:"bookKey"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Genre     string    `json:"genre"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListBooksResponse wraps the list of books.
type ListBooksResponse struct {
	Books   []BookResponse `json:"books"`
	Page    int            `json:"page"`
	PerPage int            `json:"perPage"`
}

// GenresResponse lists the distinct genres in the catalog.
type GenresResponse struct {
	Genres []string `json:"genres"`
}

// AvailabilityResponse answers whether a book can be borrowed now.
type AvailabilityResponse struct {
	Available          bool       `json:"available"`
	Status             string     `json:"status"`
	ExpectedReturnDate *time.Time `json:"expectedReturnDate"`
}

// ToBookResponse converts a domain.Book to BookResponse DTO
func ToBookResponse(book *domain.Book) BookResponse {
	return BookResponse{
		BookKey:   book.BookKey.String(),
		Title:     book.Title,
		Author:    book.Author,
		Genre:     book.Genre,
		Status:    book.Status.Enumerator,
		CreatedAt: book.CreatedAt,
	}
}

// ToListBookResponse converts a slice of domain.Book to ListBooksResponse DTO
func ToListBookResponse(books []domain.Book, page domain.Page) ListBooksResponse {
	out := make([]BookResponse, len(books))
	for i := range books {
		out[i] = ToBookResponse(&books[i])
	}
	return ListBooksResponse{Books: out, Page: page.Page, PerPage: page.PerPage}
}

// ToAvailabilityResponse converts a domain.BookAvailability.
func ToAvailabilityResponse(a domain.BookAvailability) AvailabilityResponse {
	return AvailabilityResponse{
		Available:          a.Available,
		Status:             a.Status,
		ExpectedReturnDate: a.ExpectedReturnDate,
	}
}
