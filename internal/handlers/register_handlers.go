package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/SscSPs/library_management_app/cmd/docs"
	portssvc "github.com/SscSPs/library_management_app/internal/core/ports/services"
	"github.com/SscSPs/library_management_app/internal/middleware"
	"github.com/SscSPs/library_management_app/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// A nil metrics handler leaves /metrics unmounted.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	metrics http.Handler,
) {
	// Public routes
	health := &healthHandler{healthService: services.Health}
	r.GET("/healthcheck", health.healthcheck)
	if metrics != nil {
		r.GET("/metrics", gin.WrapH(metrics))
	}
	registerAuthRoutes(r, services.Auth)

	setupAPIRoutes(r, services)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIRoutes configures the authenticated group and delegates to specific entity route registrations.
// Basic credentials are tried first; requests without them must carry a bearer token.
func setupAPIRoutes(r *gin.Engine, service *portssvc.ServiceContainer) {
	api := r.Group("", middleware.BasicAuth(service.Auth), middleware.AuthMiddleware(service.Auth))

	registerStatusRoutes(api, service.Status)
	registerUserRoutes(api, service.User)
	registerBookRoutes(api, service.Book)
	registerLoanRoutes(api, service.Loan)
	registerReservationRoutes(api, service.Reservation)
	registerReportRoutes(api, service.Report)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
