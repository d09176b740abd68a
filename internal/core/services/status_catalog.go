package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/library_management_app/internal/apperrors"
	"github.com/SscSPs/library_management_app/internal/core/domain"
	"github.com/SscSPs/library_management_app/internal/core/ports/infra"
	portsrepo "github.com/SscSPs/library_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/library_management_app/internal/core/ports/services"
)

// statusCatalog resolves enumerators through a read-through cache.
type statusCatalog struct {
	BaseService
	statusRepo portsrepo.StatusRepository
	statusTTL  time.Duration
}

// NewStatusCatalog creates the status catalog. Entries are cached for statusTTL.
func NewStatusCatalog(statusRepo portsrepo.StatusRepository, statusTTL time.Duration, opts ...ServiceOption) portssvc.StatusCatalogSvc {
	return &statusCatalog{
		BaseService: newBaseService(opts),
		statusRepo:  statusRepo,
		statusTTL:   statusTTL,
	}
}

var _ portssvc.StatusCatalogSvc = (*statusCatalog)(nil)

func (s *statusCatalog) Resolve(ctx context.Context, entityType domain.EntityType, enumerator string) (domain.Status, error) {
	if !entityType.Valid() {
		return domain.Status{}, fmt.Errorf("%w: unknown entity type %q", apperrors.ErrValidation, entityType)
	}

	key := infra.StatusKey(string(entityType), enumerator)
	if v, ok := s.cache.Get(key); ok {
		if status, ok := v.(domain.Status); ok {
			return status, nil
		}
	}

	status, err := s.statusRepo.FindStatusByEnumerator(ctx, entityType, enumerator)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "Unknown status requested",
				slog.String("entity_type", string(entityType)),
				slog.String("status", enumerator))
			return domain.Status{}, apperrors.ErrUnknownStatus.WithCause(
				fmt.Errorf("%s has no status %q", entityType, enumerator))
		}
		s.LogError(ctx, err, "Failed to resolve status", slog.String("entity_type", string(entityType)))
		return domain.Status{}, fmt.Errorf("failed to resolve %s status %q: %w", entityType, enumerator, err)
	}

	s.cache.Set(key, *status, s.statusTTL)
	return *status, nil
}

func (s *statusCatalog) List(ctx context.Context, entityType domain.EntityType) ([]domain.Status, error) {
	if !entityType.Valid() {
		return nil, fmt.Errorf("%w: unknown entity type %q", apperrors.ErrValidation, entityType)
	}
	statuses, err := s.statusRepo.FindStatuses(ctx, entityType)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s statuses: %w", entityType, err)
	}
	return statuses, nil
}
