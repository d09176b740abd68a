package services

import (
	"context"

	"github.com/SscSPs/library_management_app/internal/core/domain"
	"github.com/SscSPs/library_management_app/internal/dto"
	"github.com/google/uuid"
)

// BookReaderSvc defines read operations for the catalog
type BookReaderSvc interface {
	GetBook(ctx context.Context, bookKey uuid.UUID) (*domain.Book, error)
	ListBooks(ctx context.Context, filter domain.BookFilter) ([]domain.Book, error)
	ListGenres(ctx context.Context) ([]string, error)

	// CheckAvailability reports whether the book can be borrowed and, if loaned, when it is due back.
	CheckAvailability(ctx context.Context, bookKey uuid.UUID) (*domain.BookAvailability, error)
}

// BookWriterSvc defines write operations for the catalog
type BookWriterSvc interface {
	CreateBook(ctx context.Context, req dto.CreateBookRequest) (*domain.Book, error)
	UpdateBook(ctx context.Context, bookKey uuid.UUID, req dto.UpdateBookRequest) (*domain.Book, error)
	SetBookStatus(ctx context.Context, bookKey uuid.UUID, enumerator string) (*domain.Book, error)
}

// BookSvcFacade combines all book-related service interfaces
type BookSvcFacade interface {
	BookReaderSvc
	BookWriterSvc
}
