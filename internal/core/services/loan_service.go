package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"github.com/SscSPs/library_management_app/internal/apperrors"
	"github.com/SscSPs/library_management_app/internal/core/domain"
	"github.com/SscSPs/library_management_app/internal/core/ports/infra"
	portsrepo "github.com/SscSPs/library_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/library_management_app/internal/core/ports/services"
)

// loanService runs the loan state machine. Every transition happens inside one
// transaction holding row locks on the rows whose state it depends on.
type loanService struct {
	BaseService
	txManager portsrepo.TransactionManager
	userRepo  portsrepo.UserRepositoryFacade
	bookRepo  portsrepo.BookRepositoryFacade
	loanRepo  portsrepo.LoanRepositoryFacade
	eventRepo portsrepo.EventRepository
	statuses  portssvc.StatusCatalogSvc
	policy    domain.LoanPolicy
}

// NewLoanService creates a new LoanService.
func NewLoanService(repos portsrepo.RepositoryProvider, statuses portssvc.StatusCatalogSvc, policy domain.LoanPolicy, opts ...ServiceOption) portssvc.LoanSvcFacade {
	return &loanService{
		BaseService: newBaseService(opts),
		txManager:   repos.TxManager,
		userRepo:    repos.UserRepo,
		bookRepo:    repos.BookRepo,
		loanRepo:    repos.LoanRepo,
		eventRepo:   repos.EventRepo,
		statuses:    statuses,
		policy:      policy,
	}
}

var _ portssvc.LoanSvcFacade = (*loanService)(nil)

func (s *loanService) CreateLoan(ctx context.Context, userKey, bookKey uuid.UUID) (_ *domain.Loan, err error) {
	ctx, span := s.StartSpan(ctx, "loan.create",
		attribute.String("user.key", userKey.String()),
		attribute.String("book.key", bookKey.String()))
	defer func() { err = EndSpan(span, err) }()

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.txManager.Rollback(ctx, tx)

	// Locking the user serializes concurrent borrows by the same user around the cap check.
	user, err := s.userRepo.FindUserByKeyForUpdate(ctx, tx, userKey)
	if err != nil {
		return nil, notFoundAs(err, apperrors.ErrUserNotFound, "failed to load user")
	}
	if !user.IsActive() {
		return nil, apperrors.ErrUserNotActive
	}

	activeLoan, err := s.statuses.Resolve(ctx, domain.EntityLoan, domain.LoanStatusActive)
	if err != nil {
		return nil, err
	}
	activeCount, err := s.loanRepo.CountLoansByUserAndStatus(ctx, tx, user.ID, activeLoan.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count active loans: %w", err)
	}
	if activeCount >= s.policy.MaxActiveLoans {
		return nil, apperrors.ErrMaxActiveLoansReached
	}

	book, err := s.bookRepo.FindBookByKeyForUpdate(ctx, tx, bookKey)
	if err != nil {
		return nil, notFoundAs(err, apperrors.ErrBookNotFound, "failed to load book")
	}
	if !book.IsAvailable() {
		return nil, apperrors.ErrBookNotAvailable
	}

	loaned, err := s.statuses.Resolve(ctx, domain.EntityBook, domain.BookStatusLoaned)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	loan := &domain.Loan{
		LoanKey:    uuid.New(),
		UserID:     user.ID,
		UserKey:    user.UserKey,
		UserEmail:  user.Email,
		BookID:     book.ID,
		BookKey:    book.BookKey,
		BookTitle:  book.Title,
		Status:     activeLoan,
		StartDate:  now,
		DueDate:    now.Add(s.policy.LoanPeriod),
		FineAmount: decimal.Zero,
	}
	if err := s.loanRepo.SaveLoan(ctx, tx, loan); err != nil {
		return nil, fmt.Errorf("failed to save loan: %w", err)
	}
	if err := s.bookRepo.UpdateBookStatus(ctx, tx, book.ID, loaned); err != nil {
		return nil, fmt.Errorf("failed to mark book loaned: %w", err)
	}
	if err := appendEvents(ctx, s.eventRepo, tx,
		domain.NewStatusEvent(domain.EntityLoan, loan.ID, nil, activeLoan, now),
		domain.NewStatusEvent(domain.EntityBook, book.ID, &book.Status, loaned, now),
	); err != nil {
		return nil, err
	}

	if err := s.txManager.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.invalidate(domain.EntityBook, book.BookKey.String())
	s.LogInfo(ctx, "Loan created",
		slog.String("loan_key", loan.LoanKey.String()),
		slog.String("user_key", user.UserKey.String()),
		slog.String("book_key", book.BookKey.String()),
		slog.Time("due_date", loan.DueDate))
	s.notifyDueDate(ctx, *loan)
	return loan, nil
}

func (s *loanService) ReturnBook(ctx context.Context, bookKey uuid.UUID) (_ *domain.Loan, err error) {
	ctx, span := s.StartSpan(ctx, "loan.return", attribute.String("book.key", bookKey.String()))
	defer func() { err = EndSpan(span, err) }()

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.txManager.Rollback(ctx, tx)

	book, err := s.bookRepo.FindBookByKeyForUpdate(ctx, tx, bookKey)
	if err != nil {
		return nil, notFoundAs(err, apperrors.ErrBookNotFound, "failed to load book")
	}

	activeLoan, err := s.statuses.Resolve(ctx, domain.EntityLoan, domain.LoanStatusActive)
	if err != nil {
		return nil, err
	}
	loan, err := s.loanRepo.FindLoanByBookAndStatusForUpdate(ctx, tx, book.ID, activeLoan.ID)
	if err != nil {
		return nil, notFoundAs(err, apperrors.ErrActiveLoanNotFound, "failed to load active loan")
	}

	returned, err := s.statuses.Resolve(ctx, domain.EntityLoan, domain.LoanStatusReturned)
	if err != nil {
		return nil, err
	}
	available, err := s.statuses.Resolve(ctx, domain.EntityBook, domain.BookStatusAvailable)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	previous := loan.Status
	loan.Status = returned
	loan.ReturnDate = &now
	loan.FineAmount = s.policy.CalculateFine(loan.DueDate, now)

	if err := s.loanRepo.UpdateLoan(ctx, tx, *loan); err != nil {
		return nil, fmt.Errorf("failed to update loan: %w", err)
	}
	if err := s.bookRepo.UpdateBookStatus(ctx, tx, book.ID, available); err != nil {
		return nil, fmt.Errorf("failed to mark book available: %w", err)
	}
	if err := appendEvents(ctx, s.eventRepo, tx,
		domain.NewStatusEvent(domain.EntityLoan, loan.ID, &previous, returned, now),
		domain.NewStatusEvent(domain.EntityBook, book.ID, &book.Status, available, now),
	); err != nil {
		return nil, err
	}

	if err := s.txManager.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.invalidate(domain.EntityBook, book.BookKey.String())
	s.invalidate(domain.EntityLoan, loan.LoanKey.String())
	s.LogInfo(ctx, "Book returned",
		slog.String("loan_key", loan.LoanKey.String()),
		slog.String("book_key", book.BookKey.String()),
		slog.String("fine", loan.FineAmount.StringFixed(2)))
	return loan, nil
}

func (s *loanService) RenewLoan(ctx context.Context, loanKey uuid.UUID) (_ *domain.Loan, err error) {
	ctx, span := s.StartSpan(ctx, "loan.renew", attribute.String("loan.key", loanKey.String()))
	defer func() { err = EndSpan(span, err) }()

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.txManager.Rollback(ctx, tx)

	loan, err := s.loanRepo.FindLoanByKeyForUpdate(ctx, tx, loanKey)
	if err != nil {
		return nil, notFoundAs(err, apperrors.ErrLoanNotFound, "failed to load loan")
	}
	if !loan.IsActive() {
		return nil, apperrors.ErrCannotRenewInactiveLoan
	}
	now := s.Now()
	if !loan.DueDate.After(now) {
		return nil, apperrors.ErrCannotRenewOverdueLoan
	}
	if !s.policy.CanRenewAgain(loan.RenewalCount) {
		return nil, apperrors.ErrRenewalLimitReached
	}

	loan.DueDate = loan.DueDate.Add(s.policy.RenewalExtension)
	loan.RenewalCount++

	if err := s.loanRepo.UpdateLoan(ctx, tx, *loan); err != nil {
		return nil, fmt.Errorf("failed to update loan: %w", err)
	}
	if err := appendEvents(ctx, s.eventRepo, tx,
		domain.NewStatusEvent(domain.EntityLoan, loan.ID, &loan.Status, loan.Status, now),
	); err != nil {
		return nil, err
	}

	if err := s.txManager.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.invalidate(domain.EntityLoan, loan.LoanKey.String())
	s.LogInfo(ctx, "Loan renewed",
		slog.String("loan_key", loan.LoanKey.String()),
		slog.Int("renewal_count", loan.RenewalCount),
		slog.Time("due_date", loan.DueDate))
	return loan, nil
}

func (s *loanService) GetLoan(ctx context.Context, loanKey uuid.UUID) (*domain.Loan, error) {
	return cached(&s.BaseService, infra.DetailsKey(string(domain.EntityLoan), loanKey.String()), func() (*domain.Loan, error) {
		loan, err := s.loanRepo.FindLoanByKey(ctx, loanKey)
		if err != nil {
			return nil, notFoundAs(err, apperrors.ErrLoanNotFound, "failed to load loan")
		}
		events, err := s.eventRepo.FindEvents(ctx, domain.EntityLoan, loan.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load loan history: %w", err)
		}
		loan.Events = events
		return loan, nil
	})
}

func (s *loanService) ListLoans(ctx context.Context, filter domain.LoanFilter) ([]domain.Loan, error) {
	if err := validatePage(filter.Page); err != nil {
		return nil, err
	}
	if filter.Status != "" {
		if _, err := s.statuses.Resolve(ctx, domain.EntityLoan, filter.Status); err != nil {
			return nil, err
		}
	}
	if filter.Now.IsZero() {
		filter.Now = s.Now()
	}
	loans, err := s.loanRepo.FindLoans(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list loans")
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	return loans, nil
}

// notifyDueDate tells the notifier about a new loan without blocking the caller.
// Failures are logged and otherwise ignored.
func (s *loanService) notifyDueDate(ctx context.Context, loan domain.Loan) {
	if s.notifier == nil {
		return
	}
	logger := s.GetLogger(ctx)
	notice := infra.DueDateNotice{
		Type:      infra.NoticeTypeLoanDueDate,
		LoanKey:   loan.LoanKey.String(),
		UserEmail: loan.UserEmail,
		BookTitle: loan.BookTitle,
		DueDate:   loan.DueDate,
	}
	go func() {
		nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.notifyTimeout)
		defer cancel()
		if err := s.notifier.NotifyDueDate(nctx, notice); err != nil {
			logger.Warn("Failed to send due date notification",
				slog.String("loan_key", notice.LoanKey),
				slog.String("error", err.Error()))
		}
	}()
}
