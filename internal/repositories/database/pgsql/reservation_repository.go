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

type PgxReservationRepository struct {
	pool *pgxpool.Pool
}

func newPgxReservationRepository(pool *pgxpool.Pool) portsrepo.ReservationRepositoryFacade {
	return &PgxReservationRepository{pool: pool}
}

var _ portsrepo.ReservationRepositoryFacade = (*PgxReservationRepository)(nil)

func toDomainReservation(m models.Reservation) domain.Reservation {
	return domain.Reservation{
		ID:             m.ID,
		ReservationKey: m.ReservationKey,
		UserID:         m.UserID,
		UserKey:        m.UserKey,
		UserName:       m.UserName,
		BookID:         m.BookID,
		BookKey:        m.BookKey,
		BookTitle:      m.BookTitle,
		Status:         refToDomainStatus(m.StatusRef),
		ReservedAt:     m.ReservedAt,
		ExpiresAt:      m.ExpiresAt,
		CompletedAt:    m.CompletedAt,
	}
}

func reservationSelect() *goqu.SelectDataset {
	cols := append([]any{
		goqu.I("r.id"), goqu.I("r.reservation_key"),
		goqu.I("r.user_id"), goqu.I("u.user_key"), goqu.I("u.name").As("user_name"),
		goqu.I("r.book_id"), goqu.I("b.book_key"), goqu.I("b.title").As("book_title"),
		goqu.I("r.reserved_at"), goqu.I("r.expires_at"), goqu.I("r.completed_at"),
	}, statusColumns("s")...)
	return dialect.From(goqu.T("reservations").As("r")).
		Join(goqu.T(statusTable(domain.EntityReservation)).As("s"), goqu.On(goqu.I("s.id").Eq(goqu.I("r.status_id")))).
		Join(goqu.T("users").As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("r.user_id")))).
		Join(goqu.T("books").As("b"), goqu.On(goqu.I("b.id").Eq(goqu.I("r.book_id")))).
		Select(cols...)
}

func (r *PgxReservationRepository) findOne(ctx context.Context, q querier, ds *goqu.SelectDataset) (*domain.Reservation, error) {
	m, err := queryOne[models.Reservation](ctx, q, ds, "failed to find reservation")
	if err != nil {
		return nil, err
	}
	reservation := toDomainReservation(*m)
	return &reservation, nil
}

func (r *PgxReservationRepository) FindReservationByKey(ctx context.Context, reservationKey uuid.UUID) (*domain.Reservation, error) {
	return r.findOne(ctx, r.pool, reservationSelect().Where(goqu.I("r.reservation_key").Eq(reservationKey)))
}

func (r *PgxReservationRepository) FindReservationByKeyForUpdate(ctx context.Context, tx pgx.Tx, reservationKey uuid.UUID) (*domain.Reservation, error) {
	ds := reservationSelect().Where(goqu.I("r.reservation_key").Eq(reservationKey)).ForUpdate(exp.Wait, goqu.T("r"))
	return r.findOne(ctx, tx, ds)
}

func (r *PgxReservationRepository) FindReservations(ctx context.Context, filter domain.ReservationFilter) ([]domain.Reservation, error) {
	ds := reservationSelect()
	if filter.UserKey != nil {
		ds = ds.Where(goqu.I("u.user_key").Eq(*filter.UserKey))
	}
	if filter.BookKey != nil {
		ds = ds.Where(goqu.I("b.book_key").Eq(*filter.BookKey))
	}
	if filter.Status != "" {
		ds = ds.Where(goqu.I("s.enumerator").Eq(filter.Status))
	}
	ds = paginate(ds.Order(goqu.I("r.reserved_at").Asc(), goqu.I("r.id").Asc()), filter.Page)

	ms, err := queryAll[models.Reservation](ctx, r.pool, ds, "failed to query reservations")
	if err != nil {
		return nil, err
	}
	reservations := make([]domain.Reservation, len(ms))
	for i, m := range ms {
		reservations[i] = toDomainReservation(m)
	}
	return reservations, nil
}

func (r *PgxReservationRepository) ExistsReservation(ctx context.Context, tx pgx.Tx, userID, bookID, statusID int64) (bool, error) {
	query := `
        SELECT EXISTS (
            SELECT 1 FROM reservations
            WHERE user_id = $1 AND book_id = $2 AND status_id = $3
        );
    `
	var exists bool
	if err := tx.QueryRow(ctx, query, userID, bookID, statusID).Scan(&exists); err != nil {
		return false, translateError(err, "failed to check reservation")
	}
	return exists, nil
}

func (r *PgxReservationRepository) SaveReservation(ctx context.Context, tx pgx.Tx, reservation *domain.Reservation) error {
	query := `
        INSERT INTO reservations (reservation_key, user_id, book_id, status_id, reserved_at, expires_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id;
    `
	err := tx.QueryRow(ctx, query,
		reservation.ReservationKey,
		reservation.UserID,
		reservation.BookID,
		reservation.Status.ID,
		reservation.ReservedAt,
		reservation.ExpiresAt,
	).Scan(&reservation.ID)
	if err != nil {
		return translateError(err, "failed to save reservation")
	}
	return nil
}

func (r *PgxReservationRepository) UpdateReservation(ctx context.Context, tx pgx.Tx, reservation domain.Reservation) error {
	query := `
        UPDATE reservations
        SET status_id = $1, completed_at = $2, updated_at = NOW()
        WHERE id = $3;
    `
	return execOne(ctx, tx, "failed to update reservation", query,
		reservation.Status.ID,
		reservation.CompletedAt,
		reservation.ID,
	)
}
