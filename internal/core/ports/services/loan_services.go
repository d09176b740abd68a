package services

import (
	"context"

	"github.com/SscSPs/library_management_app/internal/core/domain"
	"github.com/google/uuid"
)

// LoanLifecycleSvc drives the loan state machine.
type LoanLifecycleSvc interface {
	// CreateLoan lends the book to the user.
	CreateLoan(ctx context.Context, userKey, bookKey uuid.UUID) (*domain.Loan, error)

	// ReturnBook closes the active loan of the book and computes its fine.
	ReturnBook(ctx context.Context, bookKey uuid.UUID) (*domain.Loan, error)

	// RenewLoan extends the due date of an active, not overdue loan.
	RenewLoan(ctx context.Context, loanKey uuid.UUID) (*domain.Loan, error)
}

// LoanReaderSvc defines read operations for loans
type LoanReaderSvc interface {
	// GetLoan retrieves a loan together with its status history.
	GetLoan(ctx context.Context, loanKey uuid.UUID) (*domain.Loan, error)

	// ListLoans retrieves a filtered, paginated list of loans.
	ListLoans(ctx context.Context, filter domain.LoanFilter) ([]domain.Loan, error)
}

// LoanSvcFacade combines all loan-related service interfaces
type LoanSvcFacade interface {
	LoanLifecycleSvc
	LoanReaderSvc
}
