package repositories

import (
	"context"

	"github.com/SscSPs/library_management_app/internal/core/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// LoanReader defines read operations for loan data
type LoanReader interface {
	// FindLoanByKey retrieves a loan by its external key.
	FindLoanByKey(ctx context.Context, loanKey uuid.UUID) (*domain.Loan, error)

	// FindLoanByBookAndStatus returns the most recent loan of a book in the given status.
	FindLoanByBookAndStatus(ctx context.Context, bookID int64, statusID int64) (*domain.Loan, error)

	// FindLoans retrieves a filtered, paginated list of loans.
	FindLoans(ctx context.Context, filter domain.LoanFilter) ([]domain.Loan, error)
}

// LoanWriter defines write operations for loan data. All methods must run within a transaction.
type LoanWriter interface {
	// FindLoanByKeyForUpdate retrieves and row-locks a loan.
	FindLoanByKeyForUpdate(ctx context.Context, tx pgx.Tx, loanKey uuid.UUID) (*domain.Loan, error)

	// FindLoanByBookAndStatusForUpdate retrieves and row-locks the loan of a book in the given status.
	FindLoanByBookAndStatusForUpdate(ctx context.Context, tx pgx.Tx, bookID int64, statusID int64) (*domain.Loan, error)

	// CountLoansByUserAndStatus counts a user's loans in the given status.
	CountLoansByUserAndStatus(ctx context.Context, tx pgx.Tx, userID int64, statusID int64) (int, error)

	// SaveLoan inserts a new loan and fills in its ID.
	SaveLoan(ctx context.Context, tx pgx.Tx, loan *domain.Loan) error

	// UpdateLoan persists status, due date, return date, fine and renewal count.
	UpdateLoan(ctx context.Context, tx pgx.Tx, loan domain.Loan) error
}

// LoanRepositoryFacade combines all loan-related repository interfaces
type LoanRepositoryFacade interface {
	LoanReader
	LoanWriter
}
