package handlers_test

import (
	"net/http"

	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/library_management_app/internal/apperrors"
	"github.com/SscSPs/library_management_app/internal/core/domain"
	"github.com/SscSPs/library_management_app/internal/platform/report"
)

func (suite *HandlerTestSuite) TestExportLoans_CSV() {
	doc := &report.Document{Content: []byte("loan_key,user_key\n"), ContentType: "text/csv", Filename: "loans.csv"}
	suite.reports.On("ExportLoans", mock.Anything, mock.MatchedBy(func(f domain.LoanFilter) bool {
		return f.Overdue && f.Status == ""
	}), "csv").Return(doc, nil).Once()

	w := suite.do(http.MethodGet, "/reports/loans/export?overdue=true", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("text/csv", w.Header().Get("Content-Type"))
	suite.Equal(`attachment; filename="loans.csv"`, w.Header().Get("Content-Disposition"))
	suite.Equal("loan_key,user_key\n", w.Body.String())
}

func (suite *HandlerTestSuite) TestExportBooks_PDF() {
	doc := &report.Document{Content: []byte("%PDF-1.3"), ContentType: "application/pdf", Filename: "books.pdf"}
	suite.reports.On("ExportBooks", mock.Anything, domain.BookFilter{Genre: "Poetry"}, "pdf").Return(doc, nil).Once()

	w := suite.do(http.MethodGet, "/reports/books/export?format=pdf&genre=Poetry", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("application/pdf", w.Header().Get("Content-Type"))
	suite.Contains(w.Header().Get("Content-Disposition"), "books.pdf")
}

func (suite *HandlerTestSuite) TestExport_InvalidFormat() {
	suite.reports.On("ExportUsers", mock.Anything, "xlsx").Return(nil, apperrors.ErrInvalidExportFormat).Once()

	w := suite.do(http.MethodGet, "/reports/users/export?format=xlsx", nil)
	suite.assertError(w, http.StatusBadRequest, "VAL003")
	suite.Empty(w.Header().Get("Content-Disposition"))
}

func (suite *HandlerTestSuite) TestExportReservations_InvalidKey() {
	w := suite.do(http.MethodGet, "/reports/reservations/export?user_key=123", nil)
	suite.assertError(w, http.StatusBadRequest, "VAL001")
}
