package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/SscSPs/library_management_app/internal/apperrors"
	"github.com/SscSPs/library_management_app/internal/dto"
	"github.com/SscSPs/library_management_app/internal/middleware"
)

// respondError writes err as an error body. AppErrors keep their own status;
// anything else is logged and reported as an internal error.
func respondError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		logger.Error("Unhandled error", slog.String("error", err.Error()))
		appErr = apperrors.NewAppError(http.StatusInternalServerError, "An unexpected error occurred", err)
	}
	if appErr.Status >= http.StatusInternalServerError {
		logger.Error("Request failed", slog.String("code", appErr.Code), slog.String("error", appErr.Error()))
	} else {
		logger.Debug("Request rejected", slog.String("code", appErr.Code))
	}
	c.AbortWithStatusJSON(appErr.Status, dto.NewErrorResponse(appErr))
}

// parseKey parses a required UUID, rejecting anything else with ErrInvalidKey.
func parseKey(raw string) (uuid.UUID, error) {
	key, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, apperrors.ErrInvalidKey.WithCause(err)
	}
	return key, nil
}

// parseOptionalKey returns nil for an empty filter value.
func parseOptionalKey(raw string) (*uuid.UUID, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	key, err := parseKey(raw)
	if err != nil {
		return nil, err
	}
	return &key, nil
}

// keyParam reads the :key path parameter.
func keyParam(c *gin.Context) (uuid.UUID, bool) {
	key, err := parseKey(c.Param("key"))
	if err != nil {
		respondError(c, err)
		return uuid.Nil, false
	}
	return key, true
}

func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind JSON request", slog.String("error", err.Error()))
		respondError(c, apperrors.ErrInvalidRequest.WithCause(err))
		return false
	}
	return true
}

// bindQuery reports non-numeric paging as ErrInvalidPagination and any other
// malformed filter as ErrInvalidRequest.
func bindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind query parameters", slog.String("error", err.Error()))
		if malformedPaging(c) {
			respondError(c, apperrors.ErrInvalidPagination.WithCause(err))
		} else {
			respondError(c, apperrors.ErrInvalidRequest.WithCause(err))
		}
		return false
	}
	return true
}

func malformedPaging(c *gin.Context) bool {
	for _, name := range []string{"page", "per_page"} {
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		if _, err := strconv.Atoi(raw); err != nil {
			return true
		}
	}
	return false
}
