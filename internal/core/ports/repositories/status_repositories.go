package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/library_management_app/internal/core/domain"
)

// StatusRepository reads the per-entity status catalogs.
type StatusRepository interface {
	// FindStatusByEnumerator returns apperrors.ErrNotFound when no row matches.
	FindStatusByEnumerator(ctx context.Context, entityType domain.EntityType, enumerator string) (*domain.Status, error)

	// FindStatuses lists the whole catalog of one entity type.
	FindStatuses(ctx context.Context, entityType domain.EntityType) ([]domain.Status, error)
}

// EventRepository appends to and reads the status event logs.
type EventRepository interface {
	// AppendEvent inserts the event into the log of event.EntityType within tx.
	AppendEvent(ctx context.Context, tx pgx.Tx, event domain.StatusEvent) error

	// FindEvents returns the events of one entity ordered by creation time.
	FindEvents(ctx context.Context, entityType domain.EntityType, entityID int64) ([]domain.StatusEvent, error)
}
