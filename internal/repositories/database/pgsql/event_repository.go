package pgsql

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/library_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/library_management_app/internal/core/ports/repositories"
	"github.com/SscSPs/library_management_app/internal/models"
)

// PgxEventRepository writes to the append-only {entity}_event tables.
// Rows are never updated or deleted.
type PgxEventRepository struct {
	pool *pgxpool.Pool
}

func newPgxEventRepository(pool *pgxpool.Pool) portsrepo.EventRepository {
	return &PgxEventRepository{pool: pool}
}

var _ portsrepo.EventRepository = (*PgxEventRepository)(nil)

func entityColumn(entityType domain.EntityType) string {
	return string(entityType) + "_id"
}

func (r *PgxEventRepository) AppendEvent(ctx context.Context, tx pgx.Tx, event domain.StatusEvent) error {
	if !event.EntityType.Valid() {
		return fmt.Errorf("unknown entity type %q", event.EntityType)
	}
	query, args, err := dialect.Insert(eventTable(event.EntityType)).
		Rows(goqu.Record{
			entityColumn(event.EntityType): event.EntityID,
			"old_status_id":                event.OldStatusID,
			"new_status_id":                event.NewStatusID,
			"created_at":                   event.CreatedAt,
		}).
		Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build event insert: %w", err)
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return translateError(err, "failed to append event")
	}
	return nil
}

func (r *PgxEventRepository) FindEvents(ctx context.Context, entityType domain.EntityType, entityID int64) ([]domain.StatusEvent, error) {
	if !entityType.Valid() {
		return nil, fmt.Errorf("unknown entity type %q", entityType)
	}
	statuses := statusTable(entityType)
	ds := dialect.From(goqu.T(eventTable(entityType)).As("e")).
		LeftJoin(goqu.T(statuses).As("o"), goqu.On(goqu.I("o.id").Eq(goqu.I("e.old_status_id")))).
		Join(goqu.T(statuses).As("n"), goqu.On(goqu.I("n.id").Eq(goqu.I("e.new_status_id")))).
		Select(
			goqu.I("e.id"),
			goqu.I("e."+entityColumn(entityType)).As("entity_id"),
			goqu.I("e.old_status_id"),
			goqu.I("e.new_status_id"),
			goqu.I("o.enumerator").As("old_status"),
			goqu.I("n.enumerator").As("new_status"),
			goqu.I("e.created_at"),
		).
		Where(goqu.I("e."+entityColumn(entityType)).Eq(entityID)).
		Order(goqu.I("e.created_at").Asc(), goqu.I("e.id").Asc())

	ms, err := queryAll[models.Event](ctx, r.pool, ds, "failed to list events")
	if err != nil {
		return nil, err
	}
	events := make([]domain.StatusEvent, len(ms))
	for i, m := range ms {
		events[i] = domain.StatusEvent{
			ID:          m.ID,
			EntityType:  entityType,
			EntityID:    m.EntityID,
			OldStatusID: m.OldStatusID,
			NewStatusID: m.NewStatusID,
			OldStatus:   m.OldStatus,
			NewStatus:   m.NewStatus,
			CreatedAt:   m.CreatedAt,
		}
	}
	return events, nil
}
