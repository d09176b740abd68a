package handlers_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/library_management_app/internal/core/domain"
	portssvc "github.com/SscSPs/library_management_app/internal/core/ports/services"
	"github.com/SscSPs/library_management_app/internal/dto"
	"github.com/SscSPs/library_management_app/internal/platform/report"
)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUser(ctx context.Context, userKey uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, userKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) ListUsers(ctx context.Context, page domain.Page) ([]domain.User, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserService) ListUserLoans(ctx context.Context, userKey uuid.UUID, page domain.Page) ([]domain.Loan, error) {
	args := m.Called(ctx, userKey, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}
func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) UpdateUser(ctx context.Context, userKey uuid.UUID, req dto.UpdateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, userKey, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) SetUserStatus(ctx context.Context, userKey uuid.UUID, enumerator string) (*domain.User, error) {
	args := m.Called(ctx, userKey, enumerator)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock BookService ---
type MockBookService struct {
	mock.Mock
}

func (m *MockBookService) GetBook(ctx context.Context, bookKey uuid.UUID) (*domain.Book, error) {
	args := m.Called(ctx, bookKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}
func (m *MockBookService) ListBooks(ctx context.Context, filter domain.BookFilter) ([]domain.Book, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Book), args.Error(1)
}
func (m *MockBookService) ListGenres(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
func (m *MockBookService) CheckAvailability(ctx context.Context, bookKey uuid.UUID) (*domain.BookAvailability, error) {
	args := m.Called(ctx, bookKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookAvailability), args.Error(1)
}
func (m *MockBookService) CreateBook(ctx context.Context, req dto.CreateBookRequest) (*domain.Book, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}
func (m *MockBookService) UpdateBook(ctx context.Context, bookKey uuid.UUID, req dto.UpdateBookRequest) (*domain.Book, error) {
	args := m.Called(ctx, bookKey, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}
func (m *MockBookService) SetBookStatus(ctx context.Context, bookKey uuid.UUID, enumerator string) (*domain.Book, error) {
	args := m.Called(ctx, bookKey, enumerator)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}

var _ portssvc.BookSvcFacade = (*MockBookService)(nil)

// --- Mock LoanService ---
type MockLoanService struct {
	mock.Mock
}

func (m *MockLoanService) CreateLoan(ctx context.Context, userKey, bookKey uuid.UUID) (*domain.Loan, error) {
	args := m.Called(ctx, userKey, bookKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLoanService) ReturnBook(ctx context.Context, bookKey uuid.UUID) (*domain.Loan, error) {
	args := m.Called(ctx, bookKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLoanService) RenewLoan(ctx context.Context, loanKey uuid.UUID) (*domain.Loan, error) {
	args := m.Called(ctx, loanKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLoanService) GetLoan(ctx context.Context, loanKey uuid.UUID) (*domain.Loan, error) {
	args := m.Called(ctx, loanKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLoanService) ListLoans(ctx context.Context, filter domain.LoanFilter) ([]domain.Loan, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}

var _ portssvc.LoanSvcFacade = (*MockLoanService)(nil)

// --- Mock ReservationService ---
type MockReservationService struct {
	mock.Mock
}

func (m *MockReservationService) CreateReservation(ctx context.Context, userKey, bookKey uuid.UUID) (*domain.Reservation, error) {
	args := m.Called(ctx, userKey, bookKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationService) CancelReservation(ctx context.Context, reservationKey uuid.UUID) (*domain.Reservation, error) {
	args := m.Called(ctx, reservationKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationService) CompleteReservation(ctx context.Context, reservationKey uuid.UUID) (*domain.Reservation, error) {
	args := m.Called(ctx, reservationKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationService) GetReservation(ctx context.Context, reservationKey uuid.UUID) (*domain.Reservation, error) {
	args := m.Called(ctx, reservationKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationService) ListReservations(ctx context.Context, filter domain.ReservationFilter) ([]domain.Reservation, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

var _ portssvc.ReservationSvcFacade = (*MockReservationService)(nil)

// --- Mock ReportService ---
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) ExportLoans(ctx context.Context, filter domain.LoanFilter, format string) (*report.Document, error) {
	args := m.Called(ctx, filter, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.Document), args.Error(1)
}
func (m *MockReportService) ExportUsers(ctx context.Context, format string) (*report.Document, error) {
	args := m.Called(ctx, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.Document), args.Error(1)
}
func (m *MockReportService) ExportBooks(ctx context.Context, filter domain.BookFilter, format string) (*report.Document, error) {
	args := m.Called(ctx, filter, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.Document), args.Error(1)
}
func (m *MockReportService) ExportReservations(ctx context.Context, filter domain.ReservationFilter, format string) (*report.Document, error) {
	args := m.Called(ctx, filter, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.Document), args.Error(1)
}

var _ portssvc.ReportSvc = (*MockReportService)(nil)

// --- Mock StatusCatalog ---
type MockStatusCatalog struct {
	mock.Mock
}

func (m *MockStatusCatalog) Resolve(ctx context.Context, entityType domain.EntityType, enumerator string) (domain.Status, error) {
	args := m.Called(ctx, entityType, enumerator)
	return args.Get(0).(domain.Status), args.Error(1)
}
func (m *MockStatusCatalog) List(ctx context.Context, entityType domain.EntityType) ([]domain.Status, error) {
	args := m.Called(ctx, entityType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Status), args.Error(1)
}

var _ portssvc.StatusCatalogSvc = (*MockStatusCatalog)(nil)

// --- Mock HealthService ---
type MockHealthService struct {
	mock.Mock
}

func (m *MockHealthService) Check(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

var _ portssvc.HealthSvc = (*MockHealthService)(nil)

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) VerifyCredentials(ctx context.Context, username, password string) error {
	return m.Called(ctx, username, password).Error(0)
}
func (m *MockAuthService) IssueToken(ctx context.Context, username, password string) (string, time.Time, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}
func (m *MockAuthService) ParseToken(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

var _ portssvc.AuthSvc = (*MockAuthService)(nil)
