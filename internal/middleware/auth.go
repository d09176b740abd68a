package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/library_management_app/internal/apperrors"
	"github.com/SscSPs/library_management_app/internal/core/ports/services"
)

// AuthMiddleware creates a Gin middleware handler that validates bearer JWT tokens.
// Requests already authenticated by BasicAuth pass straight through.
func AuthMiddleware(authSvc services.AuthSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())
		if IsPublicRoute(c.Request.URL.Path) {
			c.Next()
			return
		}
		// if auth is already done, skip this middleware
		if authMethod, exists := c.Get(authMethodKey); exists {
			logger.Debug("Auth already done", "authMethod", authMethod)
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.Header("WWW-Authenticate", basicRealm)
			abortWithError(c, apperrors.ErrMissingCredentials)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
			logger.Warn("Authorization header format invalid")
			abortWithError(c, apperrors.ErrInvalidCredentials)
			return
		}

		subject, err := authSvc.ParseToken(c.Request.Context(), parts[1])
		if err != nil {
			logger.Warn("Invalid token", "error", err)
			abortWithError(c, apperrors.ErrInvalidCredentials)
			return
		}

		setPrincipal(c, subject, "bearer")
		c.Next()
	}
}
