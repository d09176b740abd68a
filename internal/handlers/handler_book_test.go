package handlers_test

import (
	"net/http"

	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/library_management_app/internal/apperrors"
	"github.com/SscSPs/library_management_app/internal/core/domain"
	"github.com/SscSPs/library_management_app/internal/dto"
)

func (suite *HandlerTestSuite) TestCreateBook() {
	book := newBook()
	req := dto.CreateBookRequest{Title: "Dune", Author: "Frank Herbert"}
	suite.books.On("CreateBook", mock.Anything, req).Return(book, nil).Once()

	w := suite.do(http.MethodPost, "/books", req)
	suite.Equal(http.StatusCreated, w.Code)
	var body dto.BookResponse
	suite.decode(w, &body)
	suite.Equal(book.BookKey.String(), body.BookKey)
	suite.Equal("available", body.Status)

	w = suite.do(http.MethodPost, "/books", map[string]string{"title": "No author"})
	suite.assertError(w, http.StatusBadRequest, "VAL005")
}

func (suite *HandlerTestSuite) TestListBooks_GenreFilter() {
	suite.books.On("ListBooks", mock.Anything, domain.BookFilter{
		Genre: "science fiction",
		Page:  domain.Page{Page: 1, PerPage: 100},
	}).Return([]domain.Book{*newBook()}, nil).Once()

	w := suite.do(http.MethodGet, "/books?genre=science+fiction", nil)
	suite.Equal(http.StatusOK, w.Code)
	var body dto.ListBooksResponse
	suite.decode(w, &body)
	suite.Len(body.Books, 1)
}

func (suite *HandlerTestSuite) TestListGenres() {
	suite.books.On("ListGenres", mock.Anything).Return(nil, nil).Once()

	w := suite.do(http.MethodGet, "/books/genres", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"genres":[]}`, w.Body.String())
}

func (suite *HandlerTestSuite) TestGetAndUpdateBook() {
	book := newBook()
	suite.books.On("GetBook", mock.Anything, book.BookKey).Return(book, nil).Once()
	suite.books.On("UpdateBook", mock.Anything, book.BookKey, mock.MatchedBy(func(r dto.UpdateBookRequest) bool {
		return r.Genre != nil && *r.Genre == "Classics" && r.Title == nil
	})).Return(book, nil).Once()

	w := suite.do(http.MethodGet, "/books/"+book.BookKey.String(), nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodPatch, "/books/"+book.BookKey.String(), map[string]string{"genre": "Classics"})
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestGetBook_NotFound() {
	book := newBook()
	suite.books.On("GetBook", mock.Anything, book.BookKey).Return(nil, apperrors.ErrBookNotFound).Once()

	w := suite.do(http.MethodGet, "/books/"+book.BookKey.String(), nil)
	suite.assertError(w, http.StatusNotFound, "LBS001")
}

func (suite *HandlerTestSuite) TestSetBookStatus() {
	book := newBook()
	book.Status = status(domain.BookStatusLoaned)
	suite.books.On("SetBookStatus", mock.Anything, book.BookKey, "loaned").Return(book, nil).Once()

	w := suite.do(http.MethodPatch, "/books/"+book.BookKey.String()+"/status", dto.UpdateStatusRequest{Status: "loaned"})
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodPatch, "/books/"+book.BookKey.String()+"/status", map[string]string{})
	suite.assertError(w, http.StatusBadRequest, "VAL005")
}

func (suite *HandlerTestSuite) TestCheckAvailability() {
	book := newBook()
	due := testNow.AddDate(0, 0, 14)
	suite.books.On("CheckAvailability", mock.Anything, book.BookKey).Return(&domain.BookAvailability{
		Available:          false,
		Status:             domain.BookStatusLoaned,
		ExpectedReturnDate: &due,
	}, nil).Once()

	w := suite.do(http.MethodGet, "/books/"+book.BookKey.String()+"/availability", nil)
	suite.Equal(http.StatusOK, w.Code)
	var body dto.AvailabilityResponse
	suite.decode(w, &body)
	suite.False(body.Available)
	suite.Equal("loaned", body.Status)
	suite.Require().NotNil(body.ExpectedReturnDate)
	suite.True(due.Equal(*body.ExpectedReturnDate))
}
