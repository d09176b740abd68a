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

type PgxUserRepository struct {
	db *pgxpool.Pool
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{db: db}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func toDomainUser(m models.User) domain.User {
	return domain.User{
		ID:        m.ID,
		UserKey:   m.UserKey,
		Name:      m.Name,
		Email:     m.Email,
		Status:    refToDomainStatus(m.StatusRef),
		CreatedAt: m.CreatedAt,
	}
}

func userSelect() *goqu.SelectDataset {
	cols := append([]any{
		goqu.I("u.id"), goqu.I("u.user_key"), goqu.I("u.name"), goqu.I("u.email"), goqu.I("u.created_at"),
	}, statusColumns("s")...)
	return dialect.From(goqu.T("users").As("u")).
		Join(goqu.T(statusTable(domain.EntityUser)).As("s"), goqu.On(goqu.I("s.id").Eq(goqu.I("u.status_id")))).
		Select(cols...)
}

func (r *PgxUserRepository) findOne(ctx context.Context, q querier, ds *goqu.SelectDataset) (*domain.User, error) {
	m, err := queryOne[models.User](ctx, q, ds, "failed to find user")
	if err != nil {
		return nil, err
	}
	user := toDomainUser(*m)
	return &user, nil
}

func (r *PgxUserRepository) FindUserByKey(ctx context.Context, userKey uuid.UUID) (*domain.User, error) {
	return r.findOne(ctx, r.db, userSelect().Where(goqu.I("u.user_key").Eq(userKey)))
}

func (r *PgxUserRepository) FindUserByKeyForUpdate(ctx context.Context, tx pgx.Tx, userKey uuid.UUID) (*domain.User, error) {
	ds := userSelect().Where(goqu.I("u.user_key").Eq(userKey)).ForUpdate(exp.Wait, goqu.T("u"))
	return r.findOne(ctx, tx, ds)
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, r.db, userSelect().Where(goqu.I("u.email").Eq(email)))
}

func (r *PgxUserRepository) FindUsers(ctx context.Context, page domain.Page) ([]domain.User, error) {
	ds := paginate(userSelect().Order(goqu.I("u.id").Asc()), page)
	ms, err := queryAll[models.User](ctx, r.db, ds, "failed to query users")
	if err != nil {
		return nil, err
	}
	users := make([]domain.User, len(ms))
	for i, m := range ms {
		users[i] = toDomainUser(m)
	}
	return users, nil
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, tx pgx.Tx, user *domain.User) error {
	query := `
        INSERT INTO users (user_key, name, email, status_id)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at;
    `
	err := tx.QueryRow(ctx, query, user.UserKey, user.Name, user.Email, user.Status.ID).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return translateError(err, "failed to save user")
	}
	return nil
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	query := `
        UPDATE users
        SET name = $1, email = $2, updated_at = NOW()
        WHERE id = $3;
    `
	return execOne(ctx, r.db, "failed to update user", query, user.Name, user.Email, user.ID)
}

func (r *PgxUserRepository) UpdateUserStatus(ctx context.Context, tx pgx.Tx, userID int64, status domain.Status) error {
	query := `
        UPDATE users
        SET status_id = $1, updated_at = NOW()
        WHERE id = $2;
    `
	return execOne(ctx, tx, "failed to update user status", query, status.ID, userID)
}
