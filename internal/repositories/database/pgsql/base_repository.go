package pgsql

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // registers the postgres dialect
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/library_management_app/internal/apperrors"
	"github.com/SscSPs/library_management_app/internal/core/domain"
)

const uniqueViolation = "23505"

// dialect builds the dynamic list queries. Statements are always prepared so
// values travel as pgx arguments, never interpolated.
var dialect = goqu.Dialect("postgres")

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to rollback transaction", err)
	}
	return nil
}

// Ping checks that the pool can reach the database.
func (r *BaseRepository) Ping(ctx context.Context) error {
	return r.Pool.Ping(ctx)
}

// translateError maps driver errors onto the generic repository sentinels.
func translateError(err error, op string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", apperrors.ErrDuplicate, pgErr.ConstraintName)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// statusTable and eventTable name the per-entity catalog and log tables.
func statusTable(entityType domain.EntityType) string {
	return string(entityType) + "_status"
}

func eventTable(entityType domain.EntityType) string {
	return string(entityType) + "_event"
}

// statusColumns selects the joined status row under the StatusRef column names.
func statusColumns(alias string) []any {
	return []any{
		goqu.I(alias + ".id").As("status_id"),
		goqu.I(alias + ".enumerator").As("status_enumerator"),
		goqu.I(alias + ".translation").As("status_translation"),
		goqu.I(alias + ".created_at").As("status_created_at"),
	}
}

// paginate applies limit and offset of a page.
func paginate(ds *goqu.SelectDataset, page domain.Page) *goqu.SelectDataset {
	return ds.Limit(uint(page.Limit())).Offset(uint(page.Offset()))
}

// queryAll runs a goqu select and collects every row into T.
func queryAll[T any](ctx context.Context, q querier, ds *goqu.SelectDataset, op string) ([]T, error) {
	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("%s: build query: %w", op, err)
	}
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, op)
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, translateError(err, op)
	}
	return out, nil
}

// queryOne runs a goqu select expected to yield exactly one row.
// A missing row is reported as apperrors.ErrNotFound.
func queryOne[T any](ctx context.Context, q querier, ds *goqu.SelectDataset, op string) (*T, error) {
	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("%s: build query: %w", op, err)
	}
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, op)
	}
	out, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[T])
	if err != nil {
		return nil, translateError(err, op)
	}
	return out, nil
}

// execOne runs a statement that must touch exactly one row.
func execOne(ctx context.Context, q querier, op, query string, args ...any) error {
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return translateError(err, op)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
