package services

import (
	"context"

	"github.com/SscSPs/library_management_app/internal/core/domain"
)

// StatusCatalogSvc resolves status enumerators to catalog rows.
type StatusCatalogSvc interface {
	// Resolve returns apperrors.ErrUnknownStatus when the enumerator does not exist for entityType.
	Resolve(ctx context.Context, entityType domain.EntityType, enumerator string) (domain.Status, error)

	// List returns the catalog of entityType.
	List(ctx context.Context, entityType domain.EntityType) ([]domain.Status, error)
}

// HealthSvc reports whether the service can reach its database.
type HealthSvc interface {
	Check(ctx context.Context) error
}
