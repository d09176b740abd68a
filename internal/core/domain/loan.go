package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Loan is one borrowing of a book by a user.
type Loan struct {
	ID           int64           `json:"-"`
	LoanKey      uuid.UUID       `json:"loanKey"`
	UserID       int64           `json:"-"`
	UserKey      uuid.UUID       `json:"userKey"`
	UserEmail    string          `json:"-"`
	BookID       int64           `json:"-"`
	BookKey      uuid.UUID       `json:"bookKey"`
	BookTitle    string          `json:"bookTitle"`
	Status       Status          `json:"status"`
	StartDate    time.Time       `json:"startDate"`
	DueDate      time.Time       `json:"dueDate"`
	ReturnDate   *time.Time      `json:"returnDate"`
	FineAmount   decimal.Decimal `json:"fineAmount"`
	RenewalCount int             `json:"renewalCount"`
	Events       []StatusEvent   `json:"events,omitempty"`
}

// IsActive reports whether the loan has not been returned yet.
func (l Loan) IsActive() bool {
	return l.Status.Is(LoanStatusActive)
}

// IsOverdue reports whether an active loan is past its due date at now.
func (l Loan) IsOverdue(now time.Time) bool {
	return l.IsActive() && l.DueDate.Before(now)
}

// LoanFilter narrows a loan listing.
type LoanFilter struct {
	Status  string     // status enumerator; empty means any
	Overdue bool       // only active loans whose due date has passed
	UserKey *uuid.UUID // restrict to one borrower
	Now     time.Time  // reference instant for Overdue
	Page
}

// LoanPolicy holds the tunables of the lending rules.
type LoanPolicy struct {
	LoanPeriod       time.Duration
	RenewalExtension time.Duration
	MaxActiveLoans   int
	MaxRenewals      int // 0 means unlimited
	FinePerDay       decimal.Decimal
}

// DefaultLoanPolicy mirrors the values the library has always used.
func DefaultLoanPolicy() LoanPolicy {
	return LoanPolicy{
		LoanPeriod:       14 * 24 * time.Hour,
		RenewalExtension: 7 * 24 * time.Hour,
		MaxActiveLoans:   3,
		MaxRenewals:      0,
		FinePerDay:       decimal.NewFromFloat(2.0),
	}
}

// DaysLate returns the number of whole 24h periods elapsed between due and returned.
// Partial days are dropped: returning 23h late is 0 days, 25h late is 1 day.
func DaysLate(due, returned time.Time) int64 {
	late := returned.UTC().Sub(due.UTC())
	if late <= 0 {
		return 0
	}
	return int64(late / (24 * time.Hour))
}

// CalculateFine returns the fine owed for returning a loan due at due on returned.
func (p LoanPolicy) CalculateFine(due, returned time.Time) decimal.Decimal {
	days := DaysLate(due, returned)
	if days == 0 {
		return decimal.Zero
	}
	return p.FinePerDay.Mul(decimal.NewFromInt(days))
}

// CanRenewAgain reports whether a loan renewed count times may be renewed once more.
func (p LoanPolicy) CanRenewAgain(count int) bool {
	return p.MaxRenewals <= 0 || count < p.MaxRenewals
}
