package pgsql

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/library_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/library_management_app/internal/core/ports/repositories"
	"github.com/SscSPs/library_management_app/internal/models"
)

type PgxLoanRepository struct {
	pool *pgxpool.Pool
}

func newPgxLoanRepository(pool *pgxpool.Pool) portsrepo.LoanRepositoryFacade {
	return &PgxLoanRepository{pool: pool}
}

var _ portsrepo.LoanRepositoryFacade = (*PgxLoanRepository)(nil)

func toDomainLoan(m models.Loan) domain.Loan {
	return domain.Loan{
		ID:           m.ID,
		LoanKey:      m.LoanKey,
		UserID:       m.UserID,
		UserKey:      m.UserKey,
		UserEmail:    m.UserEmail,
		BookID:       m.BookID,
		BookKey:      m.BookKey,
		BookTitle:    m.BookTitle,
		Status:       refToDomainStatus(m.StatusRef),
		StartDate:    m.StartDate,
		DueDate:      m.DueDate,
		ReturnDate:   m.ReturnDate,
		FineAmount:   m.FineAmount,
		RenewalCount: m.RenewalCount,
	}
}

func toDomainLoanSlice(ms []models.Loan) []domain.Loan {
	ds := make([]domain.Loan, len(ms))
	for i, m := range ms {
		ds[i] = toDomainLoan(m)
	}
	return ds
}

func loanSelect() *goqu.SelectDataset {
	cols := append([]any{
		goqu.I("l.id"), goqu.I("l.loan_key"),
		goqu.I("l.user_id"), goqu.I("u.user_key"), goqu.I("u.email").As("user_email"),
		goqu.I("l.book_id"), goqu.I("b.book_key"), goqu.I("b.title").As("book_title"),
		goqu.I("l.start_date"), goqu.I("l.due_date"), goqu.I("l.return_date"),
		goqu.I("l.fine_amount"), goqu.I("l.renewal_count"),
	}, statusColumns("s")...)
	return dialect.From(goqu.T("loans").As("l")).
		Join(goqu.T(statusTable(domain.EntityLoan)).As("s"), goqu.On(goqu.I("s.id").Eq(goqu.I("l.status_id")))).
		Join(goqu.T("users").As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("l.user_id")))).
		Join(goqu.T("books").As("b"), goqu.On(goqu.I("b.id").Eq(goqu.I("l.book_id")))).
		Select(cols...)
}

func (r *PgxLoanRepository) findOne(ctx context.Context, q querier, ds *goqu.SelectDataset) (*domain.Loan, error) {
	m, err := queryOne[models.Loan](ctx, q, ds, "failed to find loan")
	if err != nil {
		return nil, err
	}
	loan := toDomainLoan(*m)
	return &loan, nil
}

func byBookAndStatus(bookID, statusID int64) *goqu.SelectDataset {
	return loanSelect().
		Where(goqu.I("l.book_id").Eq(bookID), goqu.I("l.status_id").Eq(statusID)).
		Order(goqu.I("l.start_date").Desc(), goqu.I("l.id").Desc()).
		Limit(1)
}

func (r *PgxLoanRepository) FindLoanByKey(ctx context.Context, loanKey uuid.UUID) (*domain.Loan, error) {
	return r.findOne(ctx, r.pool, loanSelect().Where(goqu.I("l.loan_key").Eq(loanKey)))
}

func (r *PgxLoanRepository) FindLoanByKeyForUpdate(ctx context.Context, tx pgx.Tx, loanKey uuid.UUID) (*domain.Loan, error) {
	ds := loanSelect().Where(goqu.I("l.loan_key").Eq(loanKey)).ForUpdate(exp.Wait, goqu.T("l"))
	return r.findOne(ctx, tx, ds)
}

func (r *PgxLoanRepository) FindLoanByBookAndStatus(ctx context.Context, bookID int64, statusID int64) (*domain.Loan, error) {
	return r.findOne(ctx, r.pool, byBookAndStatus(bookID, statusID))
}

func (r *PgxLoanRepository) FindLoanByBookAndStatusForUpdate(ctx context.Context, tx pgx.Tx, bookID int64, statusID int64) (*domain.Loan, error) {
	return r.findOne(ctx, tx, byBookAndStatus(bookID, statusID).ForUpdate(exp.Wait, goqu.T("l")))
}

func (r *PgxLoanRepository) CountLoansByUserAndStatus(ctx context.Context, tx pgx.Tx, userID int64, statusID int64) (int, error) {
	query := `
        SELECT COUNT(*)
        FROM loans
        WHERE user_id = $1 AND status_id = $2;
    `
	var count int
	if err := tx.QueryRow(ctx, query, userID, statusID).Scan(&count); err != nil {
		return 0, translateError(err, "failed to count loans")
	}
	return count, nil
}

// FindLoans lists loans newest first. Overdue restricts to active loans due before filter.Now.
func (r *PgxLoanRepository) FindLoans(ctx context.Context, filter domain.LoanFilter) ([]domain.Loan, error) {
	ds := loanSelect()
	if filter.Status != "" {
		ds = ds.Where(goqu.I("s.enumerator").Eq(filter.Status))
	}
	if filter.Overdue {
		ds = ds.Where(
			goqu.I("s.enumerator").Eq(domain.LoanStatusActive),
			goqu.I("l.due_date").Lt(filter.Now),
		)
	}
	if filter.UserKey != nil {
		ds = ds.Where(goqu.I("u.user_key").Eq(*filter.UserKey))
	}
	ds = paginate(ds.Order(goqu.I("l.id").Desc()), filter.Page)

	ms, err := queryAll[models.Loan](ctx, r.pool, ds, "failed to query loans")
	if err != nil {
		return nil, err
	}
	return toDomainLoanSlice(ms), nil
}

func (r *PgxLoanRepository) SaveLoan(ctx context.Context, tx pgx.Tx, loan *domain.Loan) error {
	query := `
        INSERT INTO loans (loan_key, user_id, book_id, status_id, start_date, due_date, fine_amount, renewal_count)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id;
    `
	err := tx.QueryRow(ctx, query,
		loan.LoanKey,
		loan.UserID,
		loan.BookID,
		loan.Status.ID,
		loan.StartDate,
		loan.DueDate,
		loan.FineAmount,
		loan.RenewalCount,
	).Scan(&loan.ID)
	if err != nil {
		return translateError(err, "failed to save loan")
	}
	return nil
}

func (r *PgxLoanRepository) UpdateLoan(ctx context.Context, tx pgx.Tx, loan domain.Loan) error {
	query := `
        UPDATE loans
        SET status_id = $1, due_date = $2, return_date = $3, fine_amount = $4, renewal_count = $5, updated_at = NOW()
        WHERE id = $6;
    `
	return execOne(ctx, tx, "failed to update loan", query,
		loan.Status.ID,
		loan.DueDate,
		loan.ReturnDate,
		loan.FineAmount,
		loan.RenewalCount,
		loan.ID,
	)
}
