package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/library_management_app/internal/apperrors"
	"github.com/SscSPs/library_management_app/internal/core/domain"
	portssvc "github.com/SscSPs/library_management_app/internal/core/ports/services"
	"github.com/SscSPs/library_management_app/internal/core/services"
	"github.com/SscSPs/library_management_app/internal/platform/cache"
)

type ReservationServiceTestSuite struct {
	suite.Suite
	store   *fakeStore
	clock   *testClock
	service portssvc.ReservationSvcFacade
	ctx     context.Context
}

func (suite *ReservationServiceTestSuite) SetupTest() {
	suite.store = newFakeStore()
	suite.clock = newTestClock()
	suite.ctx = context.Background()
	opts := []services.ServiceOption{
		services.WithCache(cache.NewMemory(100), time.Minute),
		services.WithClock(suite.clock.Now),
	}
	statuses := services.NewStatusCatalog(suite.store, time.Minute, opts...)
	suite.service = services.NewReservationService(suite.store.provider(), statuses, 7*24*time.Hour, opts...)
}

func TestReservationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReservationServiceTestSuite))
}

func (suite *ReservationServiceTestSuite) TestCreateReservation_Success() {
	user := suite.store.seedUser("Ana", "ana@example.com", domain.UserStatusActive)
	book := suite.store.seedBook("Dune", domain.BookStatusLoaned)

	r, err := suite.service.CreateReservation(suite.ctx, user.UserKey, book.BookKey)

	suite.Require().NoError(err)
	suite.Equal(domain.ReservationStatusActive, r.Status.Enumerator)
	suite.Equal(suite.clock.Now(), r.ReservedAt)
	suite.Equal(r.ReservedAt.Add(7*24*time.Hour), r.ExpiresAt)
	suite.Nil(r.CompletedAt)
	suite.Equal("Ana", r.UserName)
	suite.Equal("Dune", r.BookTitle)

	events := suite.store.eventsOf(domain.EntityReservation, r.ID)
	suite.Require().Len(events, 1)
	suite.Nil(events[0].OldStatus)
	suite.Equal(domain.ReservationStatusActive, events[0].NewStatus)
}

func (suite *ReservationServiceTestSuite) TestCreateReservation_Failures() {
	user := suite.store.seedUser("Ana", "ana@example.com", domain.UserStatusActive)
	available := suite.store.seedBook("Emma", domain.BookStatusAvailable)
	loaned := suite.store.seedBook("Dune", domain.BookStatusLoaned)

	_, err := suite.service.CreateReservation(suite.ctx, uuid.New(), loaned.BookKey)
	suite.ErrorIs(err, apperrors.ErrUserNotFound)

	_, err = suite.service.CreateReservation(suite.ctx, user.UserKey, uuid.New())
	suite.ErrorIs(err, apperrors.ErrBookNotFound)

	_, err = suite.service.CreateReservation(suite.ctx, user.UserKey, available.BookKey)
	suite.ErrorIs(err, apperrors.ErrCannotReserveAvailableBook)

	_, err = suite.service.CreateReservation(suite.ctx, user.UserKey, loaned.BookKey)
	suite.Require().NoError(err)
	_, err = suite.service.CreateReservation(suite.ctx, user.UserKey, loaned.BookKey)
	suite.ErrorIs(err, apperrors.ErrDuplicateActiveReservation)
}

func (suite *ReservationServiceTestSuite) TestCreateReservation_AllowedAgainAfterCancel() {
	user := suite.store.seedUser("Ana", "ana@example.com", domain.UserStatusActive)
	book := suite.store.seedBook("Dune", domain.BookStatusLoaned)
	first, err := suite.service.CreateReservation(suite.ctx, user.UserKey, book.BookKey)
	suite.Require().NoError(err)
	_, err = suite.service.CancelReservation(suite.ctx, first.ReservationKey)
	suite.Require().NoError(err)

	second, err := suite.service.CreateReservation(suite.ctx, user.UserKey, book.BookKey)

	suite.Require().NoError(err)
	suite.NotEqual(first.ReservationKey, second.ReservationKey)
}

func (suite *ReservationServiceTestSuite) TestCancelReservation() {
	user := suite.store.seedUser("Ana", "ana@example.com", domain.UserStatusActive)
	book := suite.store.seedBook("Dune", domain.BookStatusLoaned)
	active := suite.store.seedReservation(user, book, domain.ReservationStatusActive)
	completed := suite.store.seedReservation(user, book, domain.ReservationStatusCompleted)

	cancelled, err := suite.service.CancelReservation(suite.ctx, active.ReservationKey)
	suite.Require().NoError(err)
	suite.Equal(domain.ReservationStatusCancelled, cancelled.Status.Enumerator)
	suite.Nil(cancelled.CompletedAt)

	events := suite.store.eventsOf(domain.EntityReservation, active.ID)
	suite.Require().Len(events, 1)
	suite.Equal(domain.ReservationStatusActive, *events[0].OldStatus)
	suite.Equal(domain.ReservationStatusCancelled, events[0].NewStatus)

	_, err = suite.service.CancelReservation(suite.ctx, active.ReservationKey)
	suite.ErrorIs(err, apperrors.ErrReservationAlreadyCancelled)

	_, err = suite.service.CancelReservation(suite.ctx, completed.ReservationKey)
	suite.ErrorIs(err, apperrors.ErrCannotCancelCompletedReservation)

	_, err = suite.service.CancelReservation(suite.ctx, uuid.New())
	suite.ErrorIs(err, apperrors.ErrReservationNotFound)
}

func (suite *ReservationServiceTestSuite) TestCompleteReservation() {
	user := suite.store.seedUser("Ana", "ana@example.com", domain.UserStatusActive)
	book := suite.store.seedBook("Dune", domain.BookStatusLoaned)
	active := suite.store.seedReservation(user, book, domain.ReservationStatusActive)
	cancelled := suite.store.seedReservation(user, book, domain.ReservationStatusCancelled)

	completed, err := suite.service.CompleteReservation(suite.ctx, active.ReservationKey)
	suite.Require().NoError(err)
	suite.Equal(domain.ReservationStatusCompleted, completed.Status.Enumerator)
	suite.Require().NotNil(completed.CompletedAt)
	suite.Equal(suite.clock.Now(), *completed.CompletedAt)

	_, err = suite.service.CompleteReservation(suite.ctx, active.ReservationKey)
	suite.ErrorIs(err, apperrors.ErrCannotCompleteInactiveReservation)

	_, err = suite.service.CompleteReservation(suite.ctx, cancelled.ReservationKey)
	suite.ErrorIs(err, apperrors.ErrCannotCompleteInactiveReservation)

	_, err = suite.service.CompleteReservation(suite.ctx, uuid.New())
	suite.ErrorIs(err, apperrors.ErrReservationNotFound)
}

func (suite *ReservationServiceTestSuite) TestGetReservation_ReflectsTransitions() {
	user := suite.store.seedUser("Ana", "ana@example.com", domain.UserStatusActive)
	book := suite.store.seedBook("Dune", domain.BookStatusLoaned)
	active := suite.store.seedReservation(user, book, domain.ReservationStatusActive)

	got, err := suite.service.GetReservation(suite.ctx, active.ReservationKey)
	suite.Require().NoError(err)
	suite.Equal(domain.ReservationStatusActive, got.Status.Enumerator)

	_, err = suite.service.CancelReservation(suite.ctx, active.ReservationKey)
	suite.Require().NoError(err)

	got, err = suite.service.GetReservation(suite.ctx, active.ReservationKey)
	suite.Require().NoError(err)
	suite.Equal(domain.ReservationStatusCancelled, got.Status.Enumerator)
}

func (suite *ReservationServiceTestSuite) TestListReservations() {
	ana := suite.store.seedUser("Ana", "ana@example.com", domain.UserStatusActive)
	bia := suite.store.seedUser("Bia", "bia@example.com", domain.UserStatusActive)
	dune := suite.store.seedBook("Dune", domain.BookStatusLoaned)
	emma := suite.store.seedBook("Emma", domain.BookStatusLoaned)
	suite.store.seedReservation(ana, dune, domain.ReservationStatusActive)
	suite.store.seedReservation(ana, emma, domain.ReservationStatusCancelled)
	suite.store.seedReservation(bia, dune, domain.ReservationStatusActive)
	page := domain.Page{Page: 1, PerPage: 50}

	all, err := suite.service.ListReservations(suite.ctx, domain.ReservationFilter{Page: page})
	suite.Require().NoError(err)
	suite.Len(all, 3)

	anas, err := suite.service.ListReservations(suite.ctx, domain.ReservationFilter{UserKey: &ana.UserKey, Page: page})
	suite.Require().NoError(err)
	suite.Len(anas, 2)

	duneActive, err := suite.service.ListReservations(suite.ctx, domain.ReservationFilter{
		BookKey: &dune.BookKey, Status: domain.ReservationStatusActive, Page: page,
	})
	suite.Require().NoError(err)
	suite.Len(duneActive, 2)

	_, err = suite.service.ListReservations(suite.ctx, domain.ReservationFilter{Status: "expired", Page: page})
	suite.ErrorIs(err, apperrors.ErrUnknownStatus)

	_, err = suite.service.ListReservations(suite.ctx, domain.ReservationFilter{Page: domain.Page{Page: -1, PerPage: 10}})
	suite.ErrorIs(err, apperrors.ErrInvalidPagination)
}
