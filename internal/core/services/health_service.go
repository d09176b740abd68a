package services

import (
	"context"
	"time"

	portsrepo "github.com/SscSPs/library_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/library_management_app/internal/core/ports/services"
)

const healthCheckTimeout = 2 * time.Second

type healthService struct {
	BaseService
	checker portsrepo.HealthChecker
}

// NewHealthService creates a health service pinging the given store.
func NewHealthService(checker portsrepo.HealthChecker, opts ...ServiceOption) portssvc.HealthSvc {
	return &healthService{BaseService: newBaseService(opts), checker: checker}
}

func (s *healthService) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()
	if err := s.checker.Ping(ctx); err != nil {
		s.LogError(ctx, err, "Database health check failed")
		return err
	}
	return nil
}
