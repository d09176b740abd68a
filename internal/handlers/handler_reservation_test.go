package handlers_test

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/library_management_app/internal/apperrors"
	"github.com/SscSPs/library_management_app/internal/core/domain"
	"github.com/SscSPs/library_management_app/internal/dto"
)

func newReservation(user *domain.User, book *domain.Book) *domain.Reservation {
	return &domain.Reservation{
		ID:             21,
		ReservationKey: uuid.New(),
		UserID:         user.ID,
		UserKey:        user.UserKey,
		UserName:       user.Name,
		BookID:         book.ID,
		BookKey:        book.BookKey,
		BookTitle:      book.Title,
		Status:         status(domain.ReservationStatusActive),
		ReservedAt:     testNow,
		ExpiresAt:      testNow.AddDate(0, 0, 7),
	}
}

func (suite *HandlerTestSuite) TestCreateReservation() {
	user, book := newUser(), newBook()
	reservation := newReservation(user, book)
	suite.reservation.On("CreateReservation", mock.Anything, user.UserKey, book.BookKey).Return(reservation, nil).Once()
	suite.reservation.On("CreateReservation", mock.Anything, user.UserKey, book.BookKey).
		Return(nil, apperrors.ErrDuplicateActiveReservation).Once()
	req := dto.CreateReservationRequest{UserKey: user.UserKey.String(), BookKey: book.BookKey.String()}

	w := suite.do(http.MethodPost, "/reservations", req)
	suite.Equal(http.StatusCreated, w.Code)
	var body dto.ReservationResponse
	suite.decode(w, &body)
	suite.Equal(reservation.ReservationKey.String(), body.ReservationKey)
	suite.Equal("Ada Lovelace", body.UserName)
	suite.Equal("Dune", body.BookTitle)
	suite.True(reservation.ExpiresAt.Equal(body.ExpiresAt))

	w = suite.do(http.MethodPost, "/reservations", req)
	suite.assertError(w, http.StatusBadRequest, "LBS011")
}

func (suite *HandlerTestSuite) TestCancelAndCompleteReservation() {
	reservation := newReservation(newUser(), newBook())
	key := reservation.ReservationKey
	cancelled := *reservation
	cancelled.Status = status(domain.ReservationStatusCancelled)
	suite.reservation.On("CancelReservation", mock.Anything, key).Return(&cancelled, nil).Once()
	suite.reservation.On("CancelReservation", mock.Anything, key).Return(nil, apperrors.ErrReservationAlreadyCancelled).Once()
	suite.reservation.On("CompleteReservation", mock.Anything, key).Return(nil, apperrors.ErrCannotCompleteInactiveReservation).Once()

	w := suite.do(http.MethodDelete, "/reservations/"+key.String(), nil)
	suite.Equal(http.StatusOK, w.Code)
	var body dto.ReservationResponse
	suite.decode(w, &body)
	suite.Equal("cancelled", body.Status)

	w = suite.do(http.MethodDelete, "/reservations/"+key.String(), nil)
	suite.assertError(w, http.StatusBadRequest, "LBS012")

	w = suite.do(http.MethodPost, "/reservations/"+key.String()+"/complete", nil)
	suite.assertError(w, http.StatusBadRequest, "LBS014")
}

func (suite *HandlerTestSuite) TestGetReservation_NotFound() {
	key := uuid.New()
	suite.reservation.On("GetReservation", mock.Anything, key).Return(nil, apperrors.ErrReservationNotFound).Once()

	w := suite.do(http.MethodGet, "/reservations/"+key.String(), nil)
	suite.assertError(w, http.StatusNotFound, "LBS009")
}

func (suite *HandlerTestSuite) TestListReservations_Filters() {
	bookKey := uuid.New()
	suite.reservation.On("ListReservations", mock.Anything, mock.MatchedBy(func(f domain.ReservationFilter) bool {
		return f.UserKey == nil && f.BookKey != nil && *f.BookKey == bookKey && f.Status == "active"
	})).Return([]domain.Reservation{*newReservation(newUser(), newBook())}, nil).Once()

	w := suite.do(http.MethodGet, "/reservations?status=active&book_key="+bookKey.String(), nil)
	suite.Equal(http.StatusOK, w.Code)
	var body dto.ListReservationsResponse
	suite.decode(w, &body)
	suite.Len(body.Reservations, 1)
}
