package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// principalKey stores the authenticated operator name.
const principalKey = contextKey("principal")

// authMethodKey records which scheme authenticated the request ("basic" or "bearer").
const authMethodKey = "authMethod"

// GetPrincipalFromContext retrieves the authenticated principal from the Gin context.
// It returns the principal and a boolean indicating if it was found.
func GetPrincipalFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(principalKey)); exists {
		principal, ok := v.(string)
		return principal, ok
	}
	return GetPrincipalFromCtx(c.Request.Context())
}

// GetPrincipalFromCtx retrieves the authenticated principal from a standard context.
func GetPrincipalFromCtx(ctx context.Context) (string, bool) {
	principal, ok := ctx.Value(principalKey).(string)
	return principal, ok && principal != ""
}

func setPrincipal(c *gin.Context, principal, method string) {
	c.Set(string(principalKey), principal)
	c.Set(authMethodKey, method)
	ctx := context.WithValue(c.Request.Context(), principalKey, principal)
	ctx = WithLogger(ctx, GetLoggerFromCtx(ctx).With("principal", principal))
	c.Request = c.Request.WithContext(ctx)
}
