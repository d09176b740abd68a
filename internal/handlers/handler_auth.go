package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/SscSPs/library_management_app/internal/core/ports/services"
	"github.com/SscSPs/library_management_app/internal/dto"
	"github.com/SscSPs/library_management_app/internal/middleware"
)

// tokenRate bounds credential guessing on the token endpoint, on top of the global limit.
const tokenRate = "5-M"

// authHandler exchanges operator credentials for bearer tokens.
type authHandler struct {
	authService portssvc.AuthSvc
}

func newAuthHandler(as portssvc.AuthSvc) *authHandler {
	return &authHandler{authService: as}
}

// registerAuthRoutes sets up the public authentication routes.
func registerAuthRoutes(r *gin.Engine, authService portssvc.AuthSvc) {
	h := newAuthHandler(authService)

	rate, _ := limiter.NewRateFromFormatted(tokenRate)
	limitMiddleware := limitergin.NewMiddleware(limiter.New(memory.NewStore(), rate))

	auth := r.Group("/auth")
	{
		auth.POST("/token", limitMiddleware, h.issueToken)
	}
}

// issueToken godoc
// @Summary Issue a bearer token
// @Description Exchanges the operator credentials for a signed JWT.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.TokenRequest true "Operator credentials"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 429 {object} map[string]string
// @Router /auth/token [post]
func (h *authHandler) issueToken(c *gin.Context) {
	var req dto.TokenRequest
	if !bindJSON(c, &req) {
		return
	}

	token, expiresAt, err := h.authService.IssueToken(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Token request rejected", slog.String("username", req.Username))
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	})
}
