package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/library_management_app/internal/apperrors"
	"github.com/SscSPs/library_management_app/internal/core/ports/services"
	"github.com/SscSPs/library_management_app/internal/dto"
)

const basicRealm = `Basic realm="library"`

// BasicAuth authenticates requests carrying HTTP Basic credentials for the operator account.
// Requests without Basic credentials are left for AuthMiddleware to handle.
func BasicAuth(authSvc services.AuthSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip authentication for public routes
		if IsPublicRoute(c.Request.URL.Path) {
			c.Next()
			return
		}

		username, password, ok := c.Request.BasicAuth()
		if !ok {
			c.Next()
			return
		}

		if err := authSvc.VerifyCredentials(c.Request.Context(), username, password); err != nil {
			GetLoggerFromCtx(c.Request.Context()).Warn("Basic auth rejected", "username", username)
			c.Header("WWW-Authenticate", basicRealm)
			abortWithError(c, apperrors.ErrInvalidCredentials)
			return
		}

		setPrincipal(c, username, "basic")
		c.Next()
	}
}

// IsPublicRoute reports whether path is served without authentication.
func IsPublicRoute(path string) bool {
	switch path {
	case "/healthcheck", "/auth/token":
		return true
	}
	return strings.HasPrefix(path, "/swagger/")
}

func abortWithError(c *gin.Context, err *apperrors.AppError) {
	c.AbortWithStatusJSON(err.Status, dto.NewErrorResponse(err))
}
