package services

import (
	"fmt"

	"github.com/SscSPs/library_management_app/internal/core/ports/infra"
	portsrepo "github.com/SscSPs/library_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/library_management_app/internal/core/ports/services"
	"github.com/SscSPs/library_management_app/internal/platform/cache"
	"github.com/SscSPs/library_management_app/internal/platform/config"
	"github.com/SscSPs/library_management_app/internal/platform/notify"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// The cache and notifier are built from cfg; opts are applied after them and may replace either.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, opts ...ServiceOption) (*portssvc.ServiceContainer, error) {
	var notifier infra.Notifier = notify.Nop{}
	if cfg.NotifyWebhookURL != "" {
		notifier = notify.NewWebhook(cfg.NotifyWebhookURL, cfg.NotifyTimeout, cfg.NotifyRatePerMinute)
	}

	// One cache instance is shared by every service so invalidations are seen everywhere.
	common := append([]ServiceOption{
		WithCache(cache.NewMemory(cfg.CacheMaxSize), cfg.CacheEntityTTL),
		WithNotifier(notifier, cfg.NotifyTimeout),
	}, opts...)

	container := &portssvc.ServiceContainer{}

	// The status catalog comes first since every other service resolves statuses through it
	container.Status = NewStatusCatalog(repos.StatusRepo, cfg.CacheStatusTTL, common...)

	container.User = NewUserService(repos, container.Status, common...)
	container.Book = NewBookService(repos, container.Status, common...)
	container.Loan = NewLoanService(repos, container.Status, cfg.LoanPolicy(), common...)
	container.Reservation = NewReservationService(repos, container.Status, cfg.ReservationExpiry(), common...)
	container.Report = NewReportService(container.User, container.Book, container.Loan, container.Reservation, common...)
	container.Health = NewHealthService(repos.HealthRepo, common...)

	auth, err := NewAuthService(AuthConfig{
		Username:  cfg.AuthUsername,
		Password:  cfg.AuthPassword,
		JWTSecret: cfg.JWTSecret,
		JWTExpiry: cfg.JWTExpiryDuration,
		JWTIssuer: cfg.JWTIssuer,
	}, common...)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}
	container.Auth = auth

	return container, nil
}
