package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/SscSPs/library_management_app/internal/apperrors"
	"github.com/SscSPs/library_management_app/internal/core/domain"
	"github.com/SscSPs/library_management_app/internal/core/ports/infra"
	portsrepo "github.com/SscSPs/library_management_app/internal/core/ports/repositories"
	"github.com/SscSPs/library_management_app/internal/middleware"
	"github.com/SscSPs/library_management_app/internal/platform/cache"
)

const tracerName = "github.com/SscSPs/library_management_app/internal/core/services"

var pageValidator = validator.New()

// BaseService provides common functionality for all services
type BaseService struct {
	cache         infra.Cache
	entityTTL     time.Duration
	notifier      infra.Notifier
	notifyTimeout time.Duration
	now           func() time.Time
}

// ServiceOption is a functional option for configuring a service
type ServiceOption func(*BaseService)

// WithCache sets the cache used for entity lookups and how long entries live.
func WithCache(c infra.Cache, entityTTL time.Duration) ServiceOption {
	return func(s *BaseService) {
		s.cache = c
		s.entityTTL = entityTTL
	}
}

// WithNotifier sets the collaborator told about new loans and its per-call timeout.
func WithNotifier(n infra.Notifier, timeout time.Duration) ServiceOption {
	return func(s *BaseService) {
		s.notifier = n
		s.notifyTimeout = timeout
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.now = now
	}
}

func newBaseService(opts []ServiceOption) BaseService {
	b := BaseService{
		cache:         cache.Nop{},
		entityTTL:     60 * time.Second,
		notifyTimeout: 3 * time.Second,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs a warning with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// Now returns the current instant in UTC.
func (s *BaseService) Now() time.Time {
	return s.now().UTC()
}

// StartSpan opens a tracing span on the services tracer.
func (s *BaseService) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, name, trace.WithAttributes(attrs...))
}

// EndSpan records err (if any) on span and ends it. It returns err unchanged.
func EndSpan(span trace.Span, err error) error {
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			span.SetAttributes(attribute.String("error.code", appErr.Code))
		}
		if !errors.As(err, &appErr) || appErr.Kind == apperrors.KindInternal {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}
	span.End()
	return err
}

// cached returns the entity stored under key, loading and storing it on a miss.
// The cache holds values, so every caller gets its own copy.
func cached[T any](s *BaseService, key string, load func() (*T, error)) (*T, error) {
	if v, ok := s.cache.Get(key); ok {
		if stored, ok := v.(T); ok {
			return &stored, nil
		}
	}
	v, err := load()
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, *v, s.entityTTL)
	return v, nil
}

// invalidate drops the details entries of the given entity keys.
func (s *BaseService) invalidate(entityType domain.EntityType, keys ...string) {
	for _, key := range keys {
		s.cache.Invalidate(infra.DetailsKey(string(entityType), key))
	}
}

// notFoundAs maps a repository not-found error to the domain error target
// and wraps anything else with msg.
func notFoundAs(err error, target *apperrors.AppError, msg string) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return target
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// validatePage rejects pages outside 1..n and per-page sizes outside 1..1000.
func validatePage(p domain.Page) error {
	if err := pageValidator.Struct(p); err != nil {
		return apperrors.ErrInvalidPagination.WithCause(err)
	}
	return nil
}

// appendEvents writes events to their logs within tx, in order.
func appendEvents(ctx context.Context, repo portsrepo.EventRepository, tx pgx.Tx, events ...domain.StatusEvent) error {
	for _, ev := range events {
		if err := repo.AppendEvent(ctx, tx, ev); err != nil {
			return fmt.Errorf("failed to append %s event: %w", ev.EntityType, err)
		}
	}
	return nil
}
