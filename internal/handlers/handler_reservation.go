package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/library_management_app/internal/core/domain"
	portssvc "github.com/SscSPs/library_management_app/internal/core/ports/services"
	"github.com/SscSPs/library_management_app/internal/dto"
)

type reservationHandler struct {
	reservationService portssvc.ReservationSvcFacade
}

func newReservationHandler(rs portssvc.ReservationSvcFacade) *reservationHandler {
	return &reservationHandler{reservationService: rs}
}

func registerReservationRoutes(rg *gin.RouterGroup, reservationService portssvc.ReservationSvcFacade) {
	h := newReservationHandler(reservationService)

	reservations := rg.Group("/reservations")
	{
		reservations.POST("", h.createReservation)
		reservations.GET("", h.listReservations)
		reservations.GET("/:key", h.getReservation)
		reservations.DELETE("/:key", h.cancelReservation)
		reservations.POST("/:key/complete", h.completeReservation)
	}
}

// createReservation godoc
// @Summary Reserve a book
// @Description Places a hold on a book that is currently not available.
// @Tags reservations
// @Accept  json
// @Produce  json
// @Param   reservation body dto.CreateReservationRequest true "User and book"
// @Success 201 {object} dto.ReservationResponse
// @Failure 400 {object} dto.ErrorResponse "Book available or duplicate reservation"
// @Failure 404 {object} dto.ErrorResponse
// @Security BasicAuth
// @Security BearerAuth
// @Router /reservations [post]
func (h *reservationHandler) createReservation(c *gin.Context) {
	var req dto.CreateReservationRequest
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
	reservation, err := h.reservationService.CreateReservation(c.Request.Context(), userKey, bookKey)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToReservationResponse(reservation))
}

// getReservation godoc
// @Summary Get a reservation
// @Tags reservations
// @Produce  json
// @Param   key path string true "Reservation key"
// @Success 200 {object} dto.ReservationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BasicAuth
// @Security BearerAuth
// @Router /reservations/{key} [get]
func (h *reservationHandler) getReservation(c *gin.Context) {
	key, ok := keyParam(c)
	if !ok {
		return
	}
	reservation, err := h.reservationService.GetReservation(c.Request.Context(), key)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToReservationResponse(reservation))
}

// cancelReservation godoc
// @Summary Cancel a reservation
// @Tags reservations
// @Produce  json
// @Param   key path string true "Reservation key"
// @Success 200 {object} dto.ReservationResponse
// @Failure 400 {object} dto.ErrorResponse "Already cancelled or completed"
// @Failure 404 {object} dto.ErrorResponse
// @Security BasicAuth
// @Security BearerAuth
// @Router /reservations/{key} [delete]
func (h *reservationHandler) cancelReservation(c *gin.Context) {
	key, ok := keyParam(c)
	if !ok {
		return
	}
	reservation, err := h.reservationService.CancelReservation(c.Request.Context(), key)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToReservationResponse(reservation))
}

// completeReservation godoc
// @Summary Complete a reservation
// @Description Marks an active reservation as fulfilled.
// @Tags reservations
// @Produce  json
// @Param   key path string true "Reservation key"
// @Success 200 {object} dto.ReservationResponse
// @Failure 400 {object} dto.ErrorResponse "Reservation not active"
// @Failure 404 {object} dto.ErrorResponse
// @Security BasicAuth
// @Security BearerAuth
// @Router /reservations/{key}/complete [post]
func (h *reservationHandler) completeReservation(c *gin.Context) {
	key, ok := keyParam(c)
	if !ok {
		return
	}
	reservation, err := h.reservationService.CompleteReservation(c.Request.Context(), key)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToReservationResponse(reservation))
}

// listReservations godoc
// @Summary List reservations
// @Tags reservations
// @Produce  json
// @Param   user_key query string false "User key"
// @Param   book_key query string false "Book key"
// @Param   status query string false "Status enumerator"
// @Param   page query int false "Page number" default(1)
// @Param   per_page query int false "Page size (max 1000)" default(100)
// @Success 200 {object} dto.ListReservationsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BasicAuth
// @Security BearerAuth
// @Router /reservations [get]
func (h *reservationHandler) listReservations(c *gin.Context) {
	var params dto.ListReservationsParams
	if !bindQuery(c, &params) {
		return
	}
	filter, err := reservationFilter(params.UserKey, params.BookKey, params.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	filter.Page = params.ToPage()

	reservations, err := h.reservationService.ListReservations(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListReservationResponse(reservations, params.ToPage()))
}

func reservationFilter(userKey, bookKey, status string) (domain.ReservationFilter, error) {
	user, err := parseOptionalKey(userKey)
	if err != nil {
		return domain.ReservationFilter{}, err
	}
	book, err := parseOptionalKey(bookKey)
	if err != nil {
		return domain.ReservationFilter{}, err
	}
	return domain.ReservationFilter{UserKey: user, BookKey: book, Status: status}, nil
}
