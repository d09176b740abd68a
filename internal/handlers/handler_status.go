package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/library_management_app/internal/apperrors"
	"github.com/SscSPs/library_management_app/internal/core/domain"
	portssvc "github.com/SscSPs/library_management_app/internal/core/ports/services"
	"github.com/SscSPs/library_management_app/internal/dto"
)

type statusHandler struct {
	statusService portssvc.StatusCatalogSvc
}

func registerStatusRoutes(rg *gin.RouterGroup, statusService portssvc.StatusCatalogSvc) {
	h := &statusHandler{statusService: statusService}
	rg.GET("/statuses/:entity", h.listStatuses)
}

// listStatuses godoc
// @Summary List a status catalog
// @Description Lists the statuses an entity can be in
// @Tags statuses
// @Produce json
// @Param entity path string true "Entity type" Enums(user, book, loan, reservation)
// @Success 200 {array} dto.StatusResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BasicAuth
// @Security BearerAuth
// @Router /statuses/{entity} [get]
func (h *statusHandler) listStatuses(c *gin.Context) {
	entity := domain.EntityType(strings.ToLower(c.Param("entity")))
	if !entity.Valid() {
		respondError(c, apperrors.ErrUnknownStatus)
		return
	}
	statuses, err := h.statusService.List(c.Request.Context(), entity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToStatusResponses(statuses))
}
