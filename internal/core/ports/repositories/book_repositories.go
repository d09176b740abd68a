package repositories

import (
	"context"

	"github.com/SscSPs/library_management_app/internal/core/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// BookReader defines read operations for book data
type BookReader interface {
	// FindBookByKey retrieves a book by its external key.
	FindBookByKey(ctx context.Context, bookKey uuid.UUID) (*domain.Book, error)

	// FindBooks retrieves a filtered, paginated list of books.
	FindBooks(ctx context.Context, filter domain.BookFilter) ([]domain.Book, error)

	// FindGenres lists the distinct non-empty genres, sorted.
	FindGenres(ctx context.Context) ([]string, error)
}

// BookWriter defines write operations for book data
type BookWriter interface {
	// FindBookByKeyForUpdate retrieves and row-locks a book. Must be called within a transaction.
	FindBookByKeyForUpdate(ctx context.Context, tx pgx.Tx, bookKey uuid.UUID) (*domain.Book, error)

	// SaveBook inserts a new book and fills in its ID and CreatedAt.
	SaveBook(ctx context.Context, tx pgx.Tx, book *domain.Book) error

	// UpdateBook updates title, author and genre.
	UpdateBook(ctx context.Context, book domain.Book) error

	// UpdateBookStatus points the book at a new status row.
	UpdateBookStatus(ctx context.Context, tx pgx.Tx, bookID int64, status domain.Status) error
}

// BookRepositoryFacade combines all book-related repository interfaces
type BookRepositoryFacade interface {
	BookReader
	BookWriter
}
