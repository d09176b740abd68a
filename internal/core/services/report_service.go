package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/library_management_app/internal/apperrors"
	"github.com/SscSPs/library_management_app/internal/core/domain"
	portssvc "github.com/SscSPs/library_management_app/internal/core/ports/services"
	"github.com/SscSPs/library_management_app/internal/platform/report"
)

// exportPageSize is the batch size used to walk a listing while exporting it.
const exportPageSize = 1000

type reportService struct {
	BaseService
	users        portssvc.UserReaderSvc
	books        portssvc.BookReaderSvc
	loans        portssvc.LoanReaderSvc
	reservations portssvc.ReservationReaderSvc
}

// NewReportService creates a report service reading through the other services.
func NewReportService(users portssvc.UserReaderSvc, books portssvc.BookReaderSvc, loans portssvc.LoanReaderSvc, reservations portssvc.ReservationReaderSvc, opts ...ServiceOption) portssvc.ReportSvc {
	return &reportService{
		BaseService:  newBaseService(opts),
		users:        users,
		books:        books,
		loans:        loans,
		reservations: reservations,
	}
}

var _ portssvc.ReportSvc = (*reportService)(nil)

func (s *reportService) ExportLoans(ctx context.Context, filter domain.LoanFilter, format string) (*report.Document, error) {
	f, err := parseFormat(format)
	if err != nil {
		return nil, err
	}
	rows, err := collect(func(page domain.Page) ([]domain.Loan, error) {
		filter.Page = page
		return s.loans.ListLoans(ctx, filter)
	}, func(l domain.Loan) []string {
		fine := l.FineAmount.StringFixed(2)
		return []string{
			l.LoanKey.String(), l.UserKey.String(), l.BookKey.String(), l.Status.Enumerator,
			formatTime(l.StartDate), formatTime(l.DueDate), formatTimePtr(l.ReturnDate), fine,
		}
	})
	if err != nil {
		return nil, err
	}
	return s.render(ctx, report.Table{
		Name:    "loans",
		Title:   "Loan Report",
		Headers: []string{"loan_key", "user_key", "book_key", "status", "start_date", "due_date", "return_date", "fine_amount"},
		Rows:    rows,
	}, f)
}

func (s *reportService) ExportUsers(ctx context.Context, format string) (*report.Document, error) {
	f, err := parseFormat(format)
	if err != nil {
		return nil, err
	}
	rows, err := collect(func(page domain.Page) ([]domain.User, error) {
		return s.users.ListUsers(ctx, page)
	}, func(u domain.User) []string {
		return []string{u.UserKey.String(), u.Name, u.Email, u.Status.Enumerator, formatTime(u.CreatedAt)}
	})
	if err != nil {
		return nil, err
	}
	return s.render(ctx, report.Table{
		Name:    "users",
		Title:   "Users Report",
		Headers: []string{"user_key", "name", "email", "status", "created_at"},
		Rows:    rows,
	}, f)
}

func (s *reportService) ExportBooks(ctx context.Context, filter domain.BookFilter, format string) (*report.Document, error) {
	f, err := parseFormat(format)
	if err != nil {
		return nil, err
	}
	rows, err := collect(func(page domain.Page) ([]domain.Book, error) {
		filter.Page = page
		return s.books.ListBooks(ctx, filter)
	}, func(b domain.Book) []string {
		return []string{b.BookKey.String(), b.Title, b.Author, b.Genre, b.Status.Enumerator, formatTime(b.CreatedAt)}
	})
	if err != nil {
		return nil, err
	}
	return s.render(ctx, report.Table{
		Name:    "books",
		Title:   "Books Report",
		Headers: []string{"book_key", "title", "author", "genre", "status", "created_at"},
		Rows:    rows,
	}, f)
}

func (s *reportService) ExportReservations(ctx context.Context, filter domain.ReservationFilter, format string) (*report.Document, error) {
	f, err := parseFormat(format)
	if err != nil {
		return nil, err
	}
	rows, err := collect(func(page domain.Page) ([]domain.Reservation, error) {
		filter.Page = page
		return s.reservations.ListReservations(ctx, filter)
	}, func(r domain.Reservation) []string {
		return []string{
			r.ReservationKey.String(), r.UserKey.String(), r.UserName, r.BookKey.String(), r.BookTitle,
			r.Status.Enumerator, formatTime(r.ReservedAt), formatTime(r.ExpiresAt), formatTimePtr(r.CompletedAt),
		}
	})
	if err != nil {
		return nil, err
	}
	return s.render(ctx, report.Table{
		Name:    "reservations",
		Title:   "Reservations Report",
		Headers: []string{"reservation_key", "user_key", "user_name", "book_key", "book_title", "status", "reserved_at", "expires_at", "completed_at"},
		Rows:    rows,
	}, f)
}

func (s *reportService) render(ctx context.Context, table report.Table, format report.Format) (*report.Document, error) {
	doc, err := report.Render(table, format)
	if err != nil {
		s.LogError(ctx, err, "Failed to render report", slog.String("report", table.Name))
		return nil, fmt.Errorf("failed to render %s report: %w", table.Name, err)
	}
	s.LogInfo(ctx, "Report exported",
		slog.String("report", table.Name),
		slog.String("format", string(format)),
		slog.Int("rows", len(table.Rows)))
	return doc, nil
}

func parseFormat(format string) (report.Format, error) {
	f, ok := report.ParseFormat(format)
	if !ok {
		return "", apperrors.ErrInvalidExportFormat
	}
	return f, nil
}

// collect walks every page of a listing and converts each item to a row.
func collect[T any](list func(domain.Page) ([]T, error), toRow func(T) []string) ([][]string, error) {
	var rows [][]string
	for page := 1; ; page++ {
		items, err := list(domain.Page{Page: page, PerPage: exportPageSize})
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			rows = append(rows, toRow(item))
		}
		if len(items) < exportPageSize {
			return rows, nil
		}
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}
