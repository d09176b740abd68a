package services

import (
	"context"

	"github.com/SscSPs/library_management_app/internal/core/domain"
	"github.com/SscSPs/library_management_app/internal/platform/report"
)

// ReportSvc renders exports of the library's records.
// format is "csv" or "pdf"; anything else yields apperrors.ErrInvalidExportFormat.
type ReportSvc interface {
	ExportLoans(ctx context.Context, filter domain.LoanFilter, format string) (*report.Document, error)
	ExportUsers(ctx context.Context, format string) (*report.Document, error)
	ExportBooks(ctx context.Context, filter domain.BookFilter, format string) (*report.Document, error)
	ExportReservations(ctx context.Context, filter domain.ReservationFilter, format string) (*report.Document, error)
}
