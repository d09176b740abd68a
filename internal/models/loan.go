package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Loan is a row of loans joined with its status, borrower and book.
type Loan struct {
	ID           int64           `db:"id"`
	LoanKey      uuid.UUID       `db:"loan_key"`
	UserID       int64           `db:"user_id"`
	UserKey      uuid.UUID       `db:"user_key"`
	UserEmail    string          `db:"user_email"`
	BookID       int64           `db:"book_id"`
	BookKey      uuid.UUID       `db:"book_key"`
	BookTitle    string          `db:"book_title"`
	StartDate    time.Time       `db:"start_date"`
	DueDate      time.Time       `db:"due_date"`
	ReturnDate   *time.Time      `db:"return_date"`
	FineAmount   decimal.Decimal `db:"fine_amount"`
	RenewalCount int             `db:"renewal_count"`
	StatusRef
}
