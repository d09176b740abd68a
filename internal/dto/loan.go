package dto

import (
	"time"

	"github.com/SscSPs/library_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLoanRequest lends a book to a user.
type CreateLoanRequest struct {
	UserKey string `json:"userKey" binding:"required"`
	BookKey string `json:"bookKey" binding:"required"`
}

// ReturnLoanRequest closes the active loan of a book.
type ReturnLoanRequest struct {
	BookKey string `json:"bookKey" binding:"required"`
}

// ListLoansParams defines query parameters for listing loans.
type ListLoansParams struct {
	ListParams
	Status  string `form:"status"`
	Overdue bool   `form:"overdue"`
	UserKey string `form:"user_key"`
}

// LoanResponse defines the data returned for a loan.
type LoanResponse struct {
	LoanKey      string          `json:"loanKey"`
	UserKey      string          `json:"userKey"`
	BookKey      string          `json:"bookKey"`
	BookTitle    string          `json:"bookTitle"`
	Status       string          `json:"status"`
	StartDate    time.Time       `json:"startDate"`
	DueDate      time.Time       `json:"dueDate"`
	ReturnDate   *time.Time      `json:"returnDate"`
	FineAmount   decimal.Decimal `json:"fineAmount"`
	RenewalCount int             `json:"renewalCount"`
	Events       []EventResponse `json:"events,omitempty"`
}

// ListLoansResponse wraps the list of loans.
type ListLoansResponse struct {
	Loans   []LoanResponse `json:"loans"`
	Page    int            `json:"page"`
	PerPage int            `json:"perPage"`
}

// ToLoanResponse converts a domain.Loan to LoanResponse DTO
func ToLoanResponse(loan *domain.Loan) LoanResponse {
	return LoanResponse{
		LoanKey:      loan.LoanKey.String(),
		UserKey:      loan.UserKey.String(),
		BookKey:      loan.BookKey.String(),
		BookTitle:    loan.BookTitle,
		Status:       loan.Status.Enumerator,
		StartDate:    loan.StartDate,
		DueDate:      loan.DueDate,
		ReturnDate:   loan.ReturnDate,
		FineAmount:   loan.FineAmount,
		RenewalCount: loan.RenewalCount,
		Events:       toEventResponses(loan.Events),
	}
}

// ToListLoanResponse converts a slice of domain.Loan to ListLoansResponse DTO
func ToListLoanResponse(loans []domain.Loan, page domain.Page) ListLoansResponse {
	out := make([]LoanResponse, len(loans))
	for i := range loans {
		out[i] = ToLoanResponse(&loans[i])
	}
	return ListLoansResponse{Loans: out, Page: page.Page, PerPage: page.PerPage}
}
