package handlers_test

import (
	"net/http"

	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/library_management_app/internal/apperrors"
	"github.com/SscSPs/library_management_app/internal/core/domain"
	"github.com/SscSPs/library_management_app/internal/dto"
)

func (suite *HandlerTestSuite) TestCreateUser_Success() {
	user := newUser()
	req := dto.CreateUserRequest{Name: "Ada Lovelace", Email: "Ada@Example.com"}
	suite.users.On("CreateUser", mock.Anything, req).Return(user, nil).Once()

	w := suite.do(http.MethodPost, "/users", req)

	suite.Equal(http.StatusCreated, w.Code)
	var body dto.UserResponse
	suite.decode(w, &body)
	suite.Equal(user.UserKey.String(), body.UserKey)
	suite.Equal("ada@example.com", body.Email)
	suite.Equal("active", body.Status)
}

func (suite *HandlerTestSuite) TestCreateUser_InvalidBody() {
	w := suite.do(http.MethodPost, "/users", map[string]string{"name": "No Email"})
	suite.assertError(w, http.StatusBadRequest, "VAL005")

	w = suite.do(http.MethodPost, "/users", map[string]string{"name": "Bad", "email": "not-an-email"})
	suite.assertError(w, http.StatusBadRequest, "VAL005")
}

func (suite *HandlerTestSuite) TestCreateUser_DuplicateEmail() {
	req := dto.CreateUserRequest{Name: "Ada", Email: "ada@example.com"}
	suite.users.On("CreateUser", mock.Anything, req).Return(nil, apperrors.ErrEmailAlreadyRegistered).Once()

	w := suite.do(http.MethodPost, "/users", req)
	suite.assertError(w, http.StatusBadRequest, "LBS003")
}

func (suite *HandlerTestSuite) TestGetUser() {
	user := newUser()
	suite.users.On("GetUser", mock.Anything, user.UserKey).Return(user, nil).Once()

	w := suite.do(http.MethodGet, "/users/"+user.UserKey.String(), nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodGet, "/users/not-a-uuid", nil)
	suite.assertError(w, http.StatusBadRequest, "VAL001")
}

func (suite *HandlerTestSuite) TestGetUser_NotFound() {
	user := newUser()
	suite.users.On("GetUser", mock.Anything, user.UserKey).Return(nil, apperrors.ErrUserNotFound).Once()

	w := suite.do(http.MethodGet, "/users/"+user.UserKey.String(), nil)
	suite.assertError(w, http.StatusNotFound, "LBS002")
}

func (suite *HandlerTestSuite) TestListUsers_Pagination() {
	suite.users.On("ListUsers", mock.Anything, domain.Page{Page: 2, PerPage: 10}).
		Return([]domain.User{*newUser()}, nil).Once()
	suite.users.On("ListUsers", mock.Anything, domain.Page{Page: 1, PerPage: 5000}).
		Return(nil, apperrors.ErrInvalidPagination).Once()

	w := suite.do(http.MethodGet, "/users?page=2&per_page=10", nil)
	suite.Equal(http.StatusOK, w.Code)
	var body dto.ListUsersResponse
	suite.decode(w, &body)
	suite.Len(body.Users, 1)
	suite.Equal(2, body.Page)
	suite.Equal(10, body.PerPage)

	w = suite.do(http.MethodGet, "/users?per_page=5000", nil)
	suite.assertError(w, http.StatusBadRequest, "VAL004")

	w = suite.do(http.MethodGet, "/users?page=abc", nil)
	suite.assertError(w, http.StatusBadRequest, "VAL004")
}

func (suite *HandlerTestSuite) TestUpdateUser() {
	user := newUser()
	name := "Augusta Ada King"
	suite.users.On("UpdateUser", mock.Anything, user.UserKey, mock.MatchedBy(func(r dto.UpdateUserRequest) bool {
		return r.Name != nil && *r.Name == name && r.Email == nil
	})).Return(user, nil).Once()

	w := suite.do(http.MethodPatch, "/users/"+user.UserKey.String(), map[string]string{"name": name})
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestSetUserStatus() {
	user := newUser()
	user.Status = status(domain.UserStatusSuspended)
	suite.users.On("SetUserStatus", mock.Anything, user.UserKey, "suspended").Return(user, nil).Once()
	suite.users.On("SetUserStatus", mock.Anything, user.UserKey, "banned").Return(nil, apperrors.ErrUnknownStatus).Once()

	w := suite.do(http.MethodPatch, "/users/"+user.UserKey.String()+"/status", dto.UpdateStatusRequest{Status: "suspended"})
	suite.Equal(http.StatusOK, w.Code)
	var body dto.UserResponse
	suite.decode(w, &body)
	suite.Equal("suspended", body.Status)

	w = suite.do(http.MethodPatch, "/users/"+user.UserKey.String()+"/status", dto.UpdateStatusRequest{Status: "banned"})
	suite.assertError(w, http.StatusBadRequest, "VAL002")
}

func (suite *HandlerTestSuite) TestListUserLoans() {
	user := newUser()
	suite.users.On("ListUserLoans", mock.Anything, user.UserKey, domain.Page{Page: 1, PerPage: 100}).
		Return([]domain.Loan{*newLoan(user, newBook())}, nil).Once()

	w := suite.do(http.MethodGet, "/users/"+user.UserKey.String()+"/loans", nil)
	suite.Equal(http.StatusOK, w.Code)
	var body dto.ListLoansResponse
	suite.decode(w, &body)
	suite.Require().Len(body.Loans, 1)
	suite.Equal(user.UserKey.String(), body.Loans[0].UserKey)
}
