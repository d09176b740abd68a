package pgsql

import (
	"context"
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/library_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/library_management_app/internal/core/ports/repositories"
	"github.com/SscSPs/library_management_app/internal/models"
)

type PgxBookRepository struct {
	pool *pgxpool.Pool
}

func newPgxBookRepository(pool *pgxpool.Pool) portsrepo.BookRepositoryFacade {
	return &PgxBookRepository{pool: pool}
}

var _ portsrepo.BookRepositoryFacade = (*PgxBookRepository)(nil)

func toDomainBook(m models.Book) domain.Book {
	return domain.Book{
		ID:        m.ID,
		BookKey:   m.BookKey,
		Title:     m.Title,
		Author:    m.Author,
		Genre:     m.Genre,
		Status:    refToDomainStatus(m.StatusRef),
		CreatedAt: m.CreatedAt,
	}
}

func bookSelect() *goqu.SelectDataset {
	cols := append([]any{
		goqu.I("b.id"), goqu.I("b.book_key"), goqu.I("b.title"), goqu.I("b.author"), goqu.I("b.genre"), goqu.I("b.created_at"),
	}, statusColumns("s")...)
	return dialect.From(goqu.T("books").As("b")).
		Join(goqu.T(statusTable(domain.EntityBook)).As("s"), goqu.On(goqu.I("s.id").Eq(goqu.I("b.status_id")))).
		Select(cols...)
}

func (r *PgxBookRepository) findOne(ctx context.Context, q querier, ds *goqu.SelectDataset) (*domain.Book, error) {
	m, err := queryOne[models.Book](ctx, q, ds, "failed to find book")
	if err != nil {
		return nil, err
	}
	book := toDomainBook(*m)
	return &book, nil
}

func (r *PgxBookRepository) FindBookByKey(ctx context.Context, bookKey uuid.UUID) (*domain.Book, error) {
	return r.findOne(ctx, r.pool, bookSelect().Where(goqu.I("b.book_key").Eq(bookKey)))
}

// FindBookByKeyForUpdate locks only the books row, not the joined status row.
func (r *PgxBookRepository) FindBookByKeyForUpdate(ctx context.Context, tx pgx.Tx, bookKey uuid.UUID) (*domain.Book, error) {
	ds := bookSelect().Where(goqu.I("b.book_key").Eq(bookKey)).ForUpdate(exp.Wait, goqu.T("b"))
	return r.findOne(ctx, tx, ds)
}

func (r *PgxBookRepository) FindBooks(ctx context.Context, filter domain.BookFilter) ([]domain.Book, error) {
	ds := bookSelect()
	if filter.Genre != "" {
		ds = ds.Where(goqu.Func("LOWER", goqu.I("b.genre")).Eq(strings.ToLower(filter.Genre)))
	}
	ds = paginate(ds.Order(goqu.I("b.id").Asc()), filter.Page)

	ms, err := queryAll[models.Book](ctx, r.pool, ds, "failed to query books")
	if err != nil {
		return nil, err
	}
	books := make([]domain.Book, len(ms))
	for i, m := range ms {
		books[i] = toDomainBook(m)
	}
	return books, nil
}

func (r *PgxBookRepository) FindGenres(ctx context.Context) ([]string, error) {
	query := `
        SELECT DISTINCT genre
        FROM books
        WHERE genre <> ''
        ORDER BY genre;
    `
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, translateError(err, "failed to query genres")
	}
	genres, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, translateError(err, "failed to scan genres")
	}
	return genres, nil
}

func (r *PgxBookRepository) SaveBook(ctx context.Context, tx pgx.Tx, book *domain.Book) error {
	query := `
        INSERT INTO books (book_key, title, author, genre, status_id)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at;
    `
	err := tx.QueryRow(ctx, query, book.BookKey, book.Title, book.Author, book.Genre, book.Status.ID).
		Scan(&book.ID, &book.CreatedAt)
	if err != nil {
		return translateError(err, "failed to save book")
	}
	return nil
}

func (r *PgxBookRepository) UpdateBook(ctx context.Context, book domain.Book) error {
	query := `
        UPDATE books
        SET title = $1, author = $2, genre = $3, updated_at = NOW()
        WHERE id = $4;
    `
	return execOne(ctx, r.pool, "failed to update book", query, book.Title, book.Author, book.Genre, book.ID)
}

func (r *PgxBookRepository) UpdateBookStatus(ctx context.Context, tx pgx.Tx, bookID int64, status domain.Status) error {
	query := `
        UPDATE books
        SET status_id = $1, updated_at = NOW()
        WHERE id = $2;
    `
	return execOne(ctx, tx, "failed to update book status", query, status.ID, bookID)
}
