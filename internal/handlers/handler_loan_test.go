package handlers_test

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/library_management_app/internal/apperrors"
	"github.com/SscSPs/library_management_app/internal/core/domain"
	"github.com/SscSPs/library_management_app/internal/dto"
)

func newLoan(user *domain.User, book *domain.Book) *domain.Loan {
	return &domain.Loan{
		ID:         11,
		LoanKey:    uuid.New(),
		UserID:     user.ID,
		UserKey:    user.UserKey,
		BookID:     book.ID,
		BookKey:    book.BookKey,
		BookTitle:  book.Title,
		Status:     status(domain.LoanStatusActive),
		StartDate:  testNow,
		DueDate:    testNow.AddDate(0, 0, 14),
		FineAmount: decimal.Zero,
	}
}

func (suite *HandlerTestSuite) TestCreateLoan_Success() {
	user, book := newUser(), newBook()
	loan := newLoan(user, book)
	suite.loans.On("CreateLoan", mock.Anything, user.UserKey, book.BookKey).Return(loan, nil).Once()

	w := suite.do(http.MethodPost, "/loans", dto.CreateLoanRequest{
		UserKey: user.UserKey.String(),
		BookKey: book.BookKey.String(),
	})

	suite.Equal(http.StatusCreated, w.Code)
	var body dto.LoanResponse
	suite.decode(w, &body)
	suite.Equal(loan.LoanKey.String(), body.LoanKey)
	suite.Equal("active", body.Status)
	suite.True(loan.DueDate.Equal(body.DueDate))
	suite.Nil(body.ReturnDate)
}

func (suite *HandlerTestSuite) TestCreateLoan_Failures() {
	user, book := newUser(), newBook()
	req := dto.CreateLoanRequest{UserKey: user.UserKey.String(), BookKey: book.BookKey.String()}

	cases := []struct {
		err    *apperrors.AppError
		status int
	}{
		{apperrors.ErrUserNotFound, http.StatusNotFound},
		{apperrors.ErrUserNotActive, http.StatusBadRequest},
		{apperrors.ErrMaxActiveLoansReached, http.StatusBadRequest},
		{apperrors.ErrBookNotFound, http.StatusNotFound},
		{apperrors.ErrBookNotAvailable, http.StatusBadRequest},
	}
	for _, tc := range cases {
		suite.loans.On("CreateLoan", mock.Anything, user.UserKey, book.BookKey).Return(nil, tc.err).Once()
		w := suite.do(http.MethodPost, "/loans", req)
		suite.assertError(w, tc.status, tc.err.Code)
	}
}

func (suite *HandlerTestSuite) TestCreateLoan_InvalidKeys() {
	w := suite.do(http.MethodPost, "/loans", dto.CreateLoanRequest{UserKey: "42", BookKey: uuid.NewString()})
	suite.assertError(w, http.StatusBadRequest, "VAL001")

	w = suite.do(http.MethodPost, "/loans", map[string]string{"userKey": uuid.NewString()})
	suite.assertError(w, http.StatusBadRequest, "VAL005")
	suite.loans.AssertNotCalled(suite.T(), "CreateLoan", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestReturnBook() {
	user, book := newUser(), newBook()
	loan := newLoan(user, book)
	returned := testNow.AddDate(0, 0, 19)
	loan.Status = status(domain.LoanStatusReturned)
	loan.ReturnDate = &returned
	loan.FineAmount = decimal.RequireFromString("10.00")
	suite.loans.On("ReturnBook", mock.Anything, book.BookKey).Return(loan, nil).Once()

	w := suite.do(http.MethodPost, "/loans/return", dto.ReturnLoanRequest{BookKey: book.BookKey.String()})

	suite.Equal(http.StatusOK, w.Code)
	var body dto.LoanResponse
	suite.decode(w, &body)
	suite.Equal("returned", body.Status)
	suite.True(decimal.NewFromInt(10).Equal(body.FineAmount))
	suite.Require().NotNil(body.ReturnDate)
}

func (suite *HandlerTestSuite) TestReturnBook_NoActiveLoan() {
	book := newBook()
	suite.loans.On("ReturnBook", mock.Anything, book.BookKey).Return(nil, apperrors.ErrActiveLoanNotFound).Once()

	w := suite.do(http.MethodPost, "/loans/return", dto.ReturnLoanRequest{BookKey: book.BookKey.String()})
	suite.assertError(w, http.StatusNotFound, "LBS007")
}

func (suite *HandlerTestSuite) TestRenewLoan() {
	loan := newLoan(newUser(), newBook())
	renewed := *loan
	renewed.DueDate = loan.DueDate.AddDate(0, 0, 7)
	renewed.RenewalCount = 1
	suite.loans.On("RenewLoan", mock.Anything, loan.LoanKey).Return(&renewed, nil).Once()
	suite.loans.On("RenewLoan", mock.Anything, loan.LoanKey).Return(nil, apperrors.ErrCannotRenewOverdueLoan).Once()

	w := suite.do(http.MethodPost, "/loans/"+loan.LoanKey.String()+"/renew", nil)
	suite.Equal(http.StatusOK, w.Code)
	var body dto.LoanResponse
	suite.decode(w, &body)
	suite.Equal(1, body.RenewalCount)
	suite.True(renewed.DueDate.Equal(body.DueDate))

	w = suite.do(http.MethodPost, "/loans/"+loan.LoanKey.String()+"/renew", nil)
	suite.assertError(w, http.StatusBadRequest, "LBS016")
}

func (suite *HandlerTestSuite) TestGetLoan_WithHistory() {
	loan := newLoan(newUser(), newBook())
	loan.Events = []domain.StatusEvent{
		domain.NewStatusEvent(domain.EntityLoan, loan.ID, nil, status(domain.LoanStatusActive), testNow),
	}
	suite.loans.On("GetLoan", mock.Anything, loan.LoanKey).Return(loan, nil).Once()

	w := suite.do(http.MethodGet, "/loans/"+loan.LoanKey.String(), nil)
	suite.Equal(http.StatusOK, w.Code)
	var body dto.LoanResponse
	suite.decode(w, &body)
	suite.Require().Len(body.Events, 1)
	suite.Nil(body.Events[0].OldStatus)
	suite.Equal("active", body.Events[0].NewStatus)
}

func (suite *HandlerTestSuite) TestListLoans_Filters() {
	userKey := uuid.New()
	suite.loans.On("ListLoans", mock.Anything, mock.MatchedBy(func(f domain.LoanFilter) bool {
		return f.Status == "active" && f.Overdue && f.UserKey != nil && *f.UserKey == userKey &&
			f.Page == domain.Page{Page: 1, PerPage: 50}
	})).Return([]domain.Loan{}, nil).Once()

	w := suite.do(http.MethodGet, "/loans?status=active&overdue=true&per_page=50&user_key="+userKey.String(), nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"loans":[],"page":1,"perPage":50}`, w.Body.String())

	w = suite.do(http.MethodGet, "/loans?user_key=nope", nil)
	suite.assertError(w, http.StatusBadRequest, "VAL001")
}

func (suite *HandlerTestSuite) TestListLoans_MalformedFilterIsNotPagination() {
	w := suite.do(http.MethodGet, "/loans?overdue=maybe", nil)
	suite.assertError(w, http.StatusBadRequest, "VAL005")

	w = suite.do(http.MethodGet, "/loans?overdue=maybe&per_page=ten", nil)
	suite.assertError(w, http.StatusBadRequest, "VAL004")

	w = suite.do(http.MethodGet, "/reports/loans/export?overdue=yes", nil)
	suite.assertError(w, http.StatusBadRequest, "VAL005")
	suite.loans.AssertNotCalled(suite.T(), "ListLoans", mock.Anything, mock.Anything)
	suite.reports.AssertNotCalled(suite.T(), "ExportLoans", mock.Anything, mock.Anything, mock.Anything)
}
