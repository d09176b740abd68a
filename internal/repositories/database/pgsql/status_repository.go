package pgsql

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/library_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/library_management_app/internal/core/ports/repositories"
	"github.com/SscSPs/library_management_app/internal/models"
)

type PgxStatusRepository struct {
	pool *pgxpool.Pool
}

func newPgxStatusRepository(pool *pgxpool.Pool) portsrepo.StatusRepository {
	return &PgxStatusRepository{pool: pool}
}

var _ portsrepo.StatusRepository = (*PgxStatusRepository)(nil)

func toDomainStatus(m models.Status) domain.Status {
	return domain.Status{
		ID:          m.ID,
		Enumerator:  m.Enumerator,
		Translation: m.Translation,
		CreatedAt:   m.CreatedAt,
	}
}

func refToDomainStatus(m models.StatusRef) domain.Status {
	return domain.Status{
		ID:          m.StatusID,
		Enumerator:  m.StatusEnumerator,
		Translation: m.StatusTranslation,
		CreatedAt:   m.StatusCreatedAt,
	}
}

func statusSelect(entityType domain.EntityType) *goqu.SelectDataset {
	return dialect.From(statusTable(entityType)).
		Select("id", "enumerator", "translation", "created_at")
}

func (r *PgxStatusRepository) FindStatusByEnumerator(ctx context.Context, entityType domain.EntityType, enumerator string) (*domain.Status, error) {
	if !entityType.Valid() {
		return nil, fmt.Errorf("unknown entity type %q", entityType)
	}
	ds := statusSelect(entityType).Where(goqu.C("enumerator").Eq(enumerator))
	m, err := queryOne[models.Status](ctx, r.pool, ds, "failed to find status")
	if err != nil {
		return nil, err
	}
	status := toDomainStatus(*m)
	return &status, nil
}

func (r *PgxStatusRepository) FindStatuses(ctx context.Context, entityType domain.EntityType) ([]domain.Status, error) {
	if !entityType.Valid() {
		return nil, fmt.Errorf("unknown entity type %q", entityType)
	}
	ms, err := queryAll[models.Status](ctx, r.pool, statusSelect(entityType).Order(goqu.C("id").Asc()), "failed to list statuses")
	if err != nil {
		return nil, err
	}
	statuses := make([]domain.Status, len(ms))
	for i, m := range ms {
		statuses[i] = toDomainStatus(m)
	}
	return statuses, nil
}
