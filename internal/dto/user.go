package dto

import (
	"time"

	"github.com/SscSPs/library_management_app/internal/core/domain"
)

// CreateUserRequest defines the data needed to register a patron.
type CreateUserRequest struct {
	Name  string `json:"name" binding:"required,max=255"`
	Email string `json:"email" binding:"required,email"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=255"`
	Email *string `json:"email" binding:"omitempty,email"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserKey   string    `json:"userKey"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users   []UserResponse `json:"users"`
	Page    int            `json:"page"`
	PerPage int            `json:"perPage"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserKey:   user.UserKey.String(),
		Name:      user.Name,
		Email:     user.Email,
		Status:    user.Status.Enumerator,
		CreatedAt: user.CreatedAt,
	}
}

// ToListUserResponse converts a slice of domain.User to ListUsersResponse DTO
func ToListUserResponse(users []domain.User, page domain.Page) ListUsersResponse {
	userResponses := make([]UserResponse, len(users))
	for i := range users {
		userResponses[i] = ToUserResponse(&users[i])
	}
	return ListUsersResponse{
		Users:   userResponses,
		Page:    page.Page,
		PerPage: page.PerPage,
	}
}
