package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/library_management_app/internal/core/ports/services"
	"github.com/SscSPs/library_management_app/internal/dto"
	"github.com/SscSPs/library_management_app/internal/middleware"
)

// userHandler handles HTTP requests related to library patrons.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

// newUserHandler creates a new userHandler.
func newUserHandler(us portssvc.UserSvcFacade) *userHandler {
	return &userHandler{
		userService: us,
	}
}

// registerUserRoutes registers all user-related routes.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService)

	users := rg.Group("/users")
	{
		users.POST("", h.createUser)
		users.GET("", h.listUsers)
		users.GET("/:key", h.getUser)
		users.PATCH("/:key", h.updateUser)
		users.PATCH("/:key/status", h.setUserStatus)
		users.GET("/:key/loans", h.listUserLoans)
	}
}

// createUser godoc
// @Summary Register a user
// @Description Registers a new active patron. Emails are unique, ignoring case.
// @Tags users
// @Accept  json
// @Produce  json
// @Param   user body dto.CreateUserRequest true "User details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input or email already registered"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BasicAuth
// @Security BearerAuth
// @Router /users [post]
func (h *userHandler) createUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	createdUser, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("User created successfully", slog.String("user_key", createdUser.UserKey.String()))
	c.JSON(http.StatusCreated, dto.ToUserResponse(createdUser))
}

// getUser godoc
// @Summary Get a user
// @Tags users
// @Produce  json
// @Param   key path string true "User key"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid key"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Security BasicAuth
// @Security BearerAuth
// @Router /users/{key} [get]
func (h *userHandler) getUser(c *gin.Context) {
	key, ok := keyParam(c)
	if !ok {
		return
	}
	user, err := h.userService.GetUser(c.Request.Context(), key)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// listUsers godoc
// @Summary List users
// @Tags users
// @Produce  json
// @Param   page query int false "Page number" default(1)
// @Param   per_page query int false "Page size (max 1000)" default(100)
// @Success 200 {object} dto.ListUsersResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BasicAuth
// @Security BearerAuth
// @Router /users [get]
func (h *userHandler) listUsers(c *gin.Context) {
	var params dto.ListParams
	if !bindQuery(c, &params) {
		return
	}
	users, err := h.userService.ListUsers(c.Request.Context(), params.ToPage())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListUserResponse(users, params.ToPage()))
}

// updateUser godoc
// @Summary Update a user
// @Description Changes name and/or email. Omitted fields are left untouched.
// @Tags users
// @Accept  json
// @Produce  json
// @Param   key path string true "User key"
// @Param   user body dto.UpdateUserRequest true "Fields to update"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BasicAuth
// @Security BearerAuth
// @Router /users/{key} [patch]
func (h *userHandler) updateUser(c *gin.Context) {
	key, ok := keyParam(c)
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.userService.UpdateUser(c.Request.Context(), key, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// setUserStatus godoc
// @Summary Change a user's status
// @Tags users
// @Accept  json
// @Produce  json
// @Param   key path string true "User key"
// @Param   status body dto.UpdateStatusRequest true "Target status enumerator"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse "Unknown status"
// @Failure 404 {object} dto.ErrorResponse
// @Security BasicAuth
// @Security BearerAuth
// @Router /users/{key}/status [patch]
func (h *userHandler) setUserStatus(c *gin.Context) {
	key, ok := keyParam(c)
	if !ok {
		return
	}
	var req dto.UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.userService.SetUserStatus(c.Request.Context(), key, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// listUserLoans godoc
// @Summary List a user's loans
// @Tags users
// @Produce  json
// @Param   key path string true "User key"
// @Param   page query int false "Page number" default(1)
// @Param   per_page query int false "Page size (max 1000)" default(100)
// @Success 200 {object} dto.ListLoansResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BasicAuth
// @Security BearerAuth
// @Router /users/{key}/loans [get]
func (h *userHandler) listUserLoans(c *gin.Context) {
	key, ok := keyParam(c)
	if !ok {
		return
	}
	var params dto.ListParams
	if !bindQuery(c, &params) {
		return
	}
	loans, err := h.userService.ListUserLoans(c.Request.Context(), key, params.ToPage())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListLoanResponse(loans, params.ToPage()))
}
