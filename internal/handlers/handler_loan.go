package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/library_management_app/internal/core/domain"
	portssvc "github.com/SscSPs/library_management_app/internal/core/ports/services"
	"github.com/SscSPs/library_management_app/internal/dto"
	"github.com/SscSPs/library_management_app/internal/middleware"
)

// loanHandler handles the loan lifecycle endpoints.
type loanHandler struct {
	loanService portssvc.LoanSvcFacade
}

func newLoanHandler(ls portssvc.LoanSvcFacade) *loanHandler {
	return &loanHandler{loanService: ls}
}

func registerLoanRoutes(rg *gin.RouterGroup, loanService portssvc.LoanSvcFacade) {
	h := newLoanHandler(loanService)

	loans := rg.Group("/loans")
	{
		loans.POST("", h.createLoan)
		loans.GET("", h.listLoans)
		loans.POST("/return", h.returnBook)
		loans.GET("/:key", h.getLoan)
		loans.POST("/:key/renew", h.renewLoan)
	}
}

// createLoan godoc
// @Summary Borrow a book
// @Description Lends an available book to an active user who is below the active loan limit.
// @Tags loans
// @Accept  json
// @Produce  json
// @Param   loan body dto.CreateLoanRequest true "Borrower and book"
// @Success 201 {object} dto.LoanResponse
// @Failure 400 {object} dto.ErrorResponse "User not active, book not available or loan limit reached"
// @Failure 404 {object} dto.ErrorResponse "User or book not found"
// @Security BasicAuth
// @Security BearerAuth
// @Router /loans [post]
func (h *loanHandler) createLoan(c *gin.Context) {
	var req dto.CreateLoanRequest
	if !bindJSON(c, &req) {
		return
	}
	userKey, err := parseKey(req.UserKey)
	if err != nil {
		respondError(c, err)
		return
	}
	bookKey, err := parseKey(req.BookKey)
	if err != nil {
		respondError(c, err)
		return
	}

	loan, err := h.loanService.CreateLoan(c.Request.Context(), userKey, bookKey)
	if err != nil {
		respondError(c, err)
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Loan created", slog.String("loan_key", loan.LoanKey.String()))
	c.JSON(http.StatusCreated, dto.ToLoanResponse(loan))
}

// returnBook godoc
// @Summary Return a book
// @Description Closes the active loan of the book and records any late fine.
// @Tags loans
// @Accept  json
// @Produce  json
// @Param   loan body dto.ReturnLoanRequest true "Book being returned"
// @Success 200 {object} dto.LoanResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Book not found or not on loan"
// @Security BasicAuth
// @Security BearerAuth
// @Router /loans/return [post]
func (h *loanHandler) returnBook(c *gin.Context) {
	var req dto.ReturnLoanRequest
	if !bindJSON(c, &req) {
		return
	}
	bookKey, err := parseKey(req.BookKey)
	if err != nil {
		respondError(c, err)
		return
	}

	loan, err := h.loanService.ReturnBook(c.Request.Context(), bookKey)
	if err != nil {
		respondError(c, err)
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Book returned",
		slog.String("loan_key", loan.LoanKey.String()),
		slog.String("fine", loan.FineAmount.StringFixed(2)))
	c.JSON(http.StatusOK, dto.ToLoanResponse(loan))
}

// renewLoan godoc
// @Summary Renew a loan
// @Tags loans
// @Produce  json
// @Param   key path string true "Loan key"
// @Success 200 {object} dto.LoanResponse
// @Failure 400 {object} dto.ErrorResponse "Loan not active, overdue or out of renewals"
// @Failure 404 {object} dto.ErrorResponse
// @Security BasicAuth
// @Security BearerAuth
// @Router /loans/{key}/renew [post]
func (h *loanHandler) renewLoan(c *gin.Context) {
	key, ok := keyParam(c)
	if !ok {
		return
	}
	loan, err := h.loanService.RenewLoan(c.Request.Context(), key)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToLoanResponse(loan))
}

// getLoan godoc
// @Summary Get a loan
// @Description Returns the loan with its status history.
// @Tags loans
// @Produce  json
// @Param   key path string true "Loan key"
// @Success 200 {object} dto.LoanResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BasicAuth
// @Security BearerAuth
// @Router /loans/{key} [get]
func (h *loanHandler) getLoan(c *gin.Context) {
	key, ok := keyParam(c)
	if !ok {
		return
	}
	loan, err := h.loanService.GetLoan(c.Request.Context(), key)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToLoanResponse(loan))
}

// listLoans godoc
// @Summary List loans
// @Tags loans
// @Produce  json
// @Param   status query string false "Status enumerator"
// @Param   overdue query bool false "Only active loans past their due date"
// @Param   user_key query string false "Borrower key"
// @Param   page query int false "Page number" default(1)
// @Param   per_page query int false "Page size (max 1000)" default(100)
// @Success 200 {object} dto.ListLoansResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BasicAuth
// @Security BearerAuth
// @Router /loans [get]
func (h *loanHandler) listLoans(c *gin.Context) {
	var params dto.ListLoansParams
	if !bindQuery(c, &params) {
		return
	}
	userKey, err := parseOptionalKey(params.UserKey)
	if err != nil {
		respondError(c, err)
		return
	}

	loans, err := h.loanService.ListLoans(c.Request.Context(), domain.LoanFilter{
		Status:  params.Status,
		Overdue: params.Overdue,
		UserKey: userKey,
		Page:    params.ToPage(),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListLoanResponse(loans, params.ToPage()))
}
