package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/library_management_app/internal/apperrors"
	"github.com/SscSPs/library_management_app/internal/core/domain"
	"github.com/SscSPs/library_management_app/internal/core/ports/infra"
	portsrepo "github.com/SscSPs/library_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/library_management_app/internal/core/ports/services"
	"github.com/SscSPs/library_management_app/internal/dto"
)

type bookService struct {
	BaseService
	txManager portsrepo.TransactionManager
	bookRepo  portsrepo.BookRepositoryFacade
	loanRepo  portsrepo.LoanRepositoryFacade
	eventRepo portsrepo.EventRepository
	statuses  portssvc.StatusCatalogSvc
}

// NewBookService creates a new BookService.
func NewBookService(repos portsrepo.RepositoryProvider, statuses portssvc.StatusCatalogSvc, opts ...ServiceOption) portssvc.BookSvcFacade {
	return &bookService{
		BaseService: newBaseService(opts),
		txManager:   repos.TxManager,
		bookRepo:    repos.BookRepo,
		loanRepo:    repos.LoanRepo,
		eventRepo:   repos.EventRepo,
		statuses:    statuses,
	}
}

var _ portssvc.BookSvcFacade = (*bookService)(nil)

func (s *bookService) CreateBook(ctx context.Context, req dto.CreateBookRequest) (*domain.Book, error) {
	available, err := s.statuses.Resolve(ctx, domain.EntityBook, domain.BookStatusAvailable)
	if err != nil {
		return nil, err
	}

	genre := strings.TrimSpace(req.Genre)
	if genre == "" {
		genre = domain.DefaultGenre
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.txManager.Rollback(ctx, tx)

	book := &domain.Book{
		BookKey: uuid.New(),
		Title:   strings.TrimSpace(req.Title),
		Author:  strings.TrimSpace(req.Author),
		Genre:   genre,
		Status:  available,
	}
	if err := s.bookRepo.SaveBook(ctx, tx, book); err != nil {
		s.LogError(ctx, err, "Failed to save book")
		return nil, fmt.Errorf("failed to create book: %w", err)
	}
	if err := appendEvents(ctx, s.eventRepo, tx,
		domain.NewStatusEvent(domain.EntityBook, book.ID, nil, available, s.Now()),
	); err != nil {
		return nil, err
	}
	if err := s.txManager.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Book created", slog.String("book_key", book.BookKey.String()))
	return book, nil
}

func (s *bookService) GetBook(ctx context.Context, bookKey uuid.UUID) (*domain.Book, error) {
	return cached(&s.BaseService, infra.DetailsKey(string(domain.EntityBook), bookKey.String()), func() (*domain.Book, error) {
		book, err := s.bookRepo.FindBookByKey(ctx, bookKey)
		if err != nil {
			return nil, notFoundAs(err, apperrors.ErrBookNotFound, "failed to load book")
		}
		return book, nil
	})
}

func (s *bookService) ListBooks(ctx context.Context, filter domain.BookFilter) ([]domain.Book, error) {
	if err := validatePage(filter.Page); err != nil {
		return nil, err
	}
	filter.Genre = strings.TrimSpace(filter.Genre)
	books, err := s.bookRepo.FindBooks(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return books, nil
}

func (s *bookService) ListGenres(ctx context.Context) ([]string, error) {
	genres, err := s.bookRepo.FindGenres(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	return genres, nil
}

func (s *bookService) UpdateBook(ctx context.Context, bookKey uuid.UUID, req dto.UpdateBookRequest) (*domain.Book, error) {
	book, err := s.bookRepo.FindBookByKey(ctx, bookKey)
	if err != nil {
		return nil, notFoundAs(err, apperrors.ErrBookNotFound, "failed to load book")
	}

	if req.Title != nil {
		book.Title = strings.TrimSpace(*req.Title)
	}
	if req.Author != nil {
		book.Author = strings.TrimSpace(*req.Author)
	}
	if req.Genre != nil {
		book.Genre = strings.TrimSpace(*req.Genre)
	}

	if err := s.bookRepo.UpdateBook(ctx, *book); err != nil {
		return nil, notFoundAs(err, apperrors.ErrBookNotFound, "failed to update book")
	}

	s.invalidate(domain.EntityBook, book.BookKey.String())
	return book, nil
}

func (s *bookService) SetBookStatus(ctx context.Context, bookKey uuid.UUID, enumerator string) (*domain.Book, error) {
	next, err := s.statuses.Resolve(ctx, domain.EntityBook, enumerator)
	if err != nil {
		return nil, err
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.txManager.Rollback(ctx, tx)

	book, err := s.bookRepo.FindBookByKeyForUpdate(ctx, tx, bookKey)
	if err != nil {
		return nil, notFoundAs(err, apperrors.ErrBookNotFound, "failed to load book")
	}
	if book.Status.ID == next.ID {
		return book, nil
	}
	if book.Status.Is(domain.BookStatusLoaned) {
		if err := s.ensureNoActiveLoan(ctx, tx, book.ID); err != nil {
			return nil, err
		}
	}

	previous := book.Status
	if err := s.bookRepo.UpdateBookStatus(ctx, tx, book.ID, next); err != nil {
		return nil, fmt.Errorf("failed to update book status: %w", err)
	}
	if err := appendEvents(ctx, s.eventRepo, tx,
		domain.NewStatusEvent(domain.EntityBook, book.ID, &previous, next, s.Now()),
	); err != nil {
		return nil, err
	}
	if err := s.txManager.Commit(ctx, tx); err != nil {
		return nil, err
	}

	book.Status = next
	s.invalidate(domain.EntityBook, book.BookKey.String())
	s.LogInfo(ctx, "Book status changed",
		slog.String("book_key", book.BookKey.String()),
		slog.String("from", previous.Enumerator),
		slog.String("to", next.Enumerator))
	return book, nil
}

// ensureNoActiveLoan locks the active loan of a book, if any, and refuses the change.
// Lock order matches ReturnBook: book row first, then its loan.
func (s *bookService) ensureNoActiveLoan(ctx context.Context, tx pgx.Tx, bookID int64) error {
	active, err := s.statuses.Resolve(ctx, domain.EntityLoan, domain.LoanStatusActive)
	if err != nil {
		return err
	}
	loan, err := s.loanRepo.FindLoanByBookAndStatusForUpdate(ctx, tx, bookID, active.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load active loan: %w", err)
	}
	s.LogWarn(ctx, "Refused status change of a lent book", slog.String("loan_key", loan.LoanKey.String()))
	return apperrors.ErrBookHasActiveLoan
}

func (s *bookService) CheckAvailability(ctx context.Context, bookKey uuid.UUID) (*domain.BookAvailability, error) {
	book, err := s.bookRepo.FindBookByKey(ctx, bookKey)
	if err != nil {
		return nil, notFoundAs(err, apperrors.ErrBookNotFound, "failed to load book")
	}

	availability := &domain.BookAvailability{
		Available: book.IsAvailable(),
		Status:    book.Status.Enumerator,
	}
	if !book.Status.Is(domain.BookStatusLoaned) {
		return availability, nil
	}

	active, err := s.statuses.Resolve(ctx, domain.EntityLoan, domain.LoanStatusActive)
	if err != nil {
		return nil, err
	}
	loan, err := s.loanRepo.FindLoanByBookAndStatus(ctx, book.ID, active.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// loaned by a manual status change, no loan to report a due date from
			return availability, nil
		}
		return nil, fmt.Errorf("failed to load active loan: %w", err)
	}
	due := loan.DueDate
	availability.ExpectedReturnDate = &due
	return availability, nil
}
