package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/library_management_app/internal/core/ports/services"
	"github.com/SscSPs/library_management_app/internal/dto"
	"github.com/SscSPs/library_management_app/internal/middleware"
)

type healthHandler struct {
	healthService portssvc.HealthSvc
}

// healthcheck godoc
// @Summary Health check
// @Description Reports whether the service can reach its database
// @Tags health
// @Produce  json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /healthcheck [get]
func (h *healthHandler) healthcheck(c *gin.Context) {
	if err := h.healthService.Check(c.Request.Context()); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Database health check failed", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, dto.HealthResponse{
			Status:   "unavailable",
			Database: "disconnected",
			Message:  "Database is not reachable",
		})
		return
	}
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:   "available",
		Database: "connected",
		Message:  "Library management API is running",
	})
}
