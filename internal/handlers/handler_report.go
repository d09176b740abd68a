package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/library_management_app/internal/core/domain"
	portssvc "github.com/SscSPs/library_management_app/internal/core/ports/services"
	"github.com/SscSPs/library_management_app/internal/dto"
	"github.com/SscSPs/library_management_app/internal/middleware"
	"github.com/SscSPs/library_management_app/internal/platform/report"
)

// reportHandler streams CSV and PDF exports.
type reportHandler struct {
	reportService portssvc.ReportSvc
}

func newReportHandler(rs portssvc.ReportSvc) *reportHandler {
	return &reportHandler{reportService: rs}
}

// registerReportRoutes registers the export endpoints.
func registerReportRoutes(rg *gin.RouterGroup, reportService portssvc.ReportSvc) {
	h := newReportHandler(reportService)

	reports := rg.Group("/reports")
	{
		reports.GET("/loans/export", h.exportLoans)
		reports.GET("/users/export", h.exportUsers)
		reports.GET("/books/export", h.exportBooks)
		reports.GET("/reservations/export", h.exportReservations)
	}
}

// exportLoans godoc
// @Summary Export loans
// @Tags reports
// @Produce text/csv,application/pdf
// @Param format query string false "csv or pdf" default(csv)
// @Param status query string false "Status enumerator"
// @Param overdue query bool false "Only overdue loans"
// @Param user_key query string false "Borrower key"
// @Success 200 {file} file
// @Failure 400 {object} dto.ErrorResponse
// @Security BasicAuth
// @Security BearerAuth
// @Router /reports/loans/export [get]
func (h *reportHandler) exportLoans(c *gin.Context) {
	var params dto.ExportLoansParams
	if !bindQuery(c, &params) {
		return
	}
	userKey, err := parseOptionalKey(params.UserKey)
	if err != nil {
		respondError(c, err)
		return
	}
	doc, err := h.reportService.ExportLoans(c.Request.Context(), domain.LoanFilter{
		Status:  params.Status,
		Overdue: params.Overdue,
		UserKey: userKey,
	}, params.Format)
	h.send(c, doc, err)
}

// exportUsers godoc
// @Summary Export users
// @Tags reports
// @Produce text/csv,application/pdf
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} dto.ErrorResponse
// @Security BasicAuth
// @Security BearerAuth
// @Router /reports/users/export [get]
func (h *reportHandler) exportUsers(c *gin.Context) {
	var params dto.ExportParams
	if !bindQuery(c, &params) {
		return
	}
	doc, err := h.reportService.ExportUsers(c.Request.Context(), params.Format)
	h.send(c, doc, err)
}

// exportBooks godoc
// @Summary Export books
// @Tags reports
// @Produce text/csv,application/pdf
// @Param format query string false "csv or pdf" default(csv)
// @Param genre query string false "Genre"
// @Success 200 {file} file
// @Failure 400 {object} dto.ErrorResponse
// @Security BasicAuth
// @Security BearerAuth
// @Router /reports/books/export [get]
func (h *reportHandler) exportBooks(c *gin.Context) {
	var params dto.ExportBooksParams
	if !bindQuery(c, &params) {
		return
	}
	doc, err := h.reportService.ExportBooks(c.Request.Context(), domain.BookFilter{Genre: params.Genre}, params.Format)
	h.send(c, doc, err)
}

// exportReservations godoc
// @Summary Export reservations
// @Tags reports
// @Produce text/csv,application/pdf
// @Param format query string false "csv or pdf" default(csv)
// @Param status query string false "Status enumerator"
// @Param user_key query string false "User key"
// @Param book_key query string false "Book key"
// @Success 200 {file} file
// @Failure 400 {object} dto.ErrorResponse
// @Security BasicAuth
// @Security BearerAuth
// @Router /reports/reservations/export [get]
func (h *reportHandler) exportReservations(c *gin.Context) {
	var params dto.ExportReservationsParams
	if !bindQuery(c, &params) {
		return
	}
	filter, err := reservationFilter(params.UserKey, params.BookKey, params.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	doc, err := h.reportService.ExportReservations(c.Request.Context(), filter, params.Format)
	h.send(c, doc, err)
}

func (h *reportHandler) send(c *gin.Context, doc *report.Document, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Report exported",
		slog.String("filename", doc.Filename), slog.Int("bytes", len(doc.Content)))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	c.Data(http.StatusOK, doc.ContentType, doc.Content)
}
