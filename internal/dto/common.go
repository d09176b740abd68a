package dto

import (
	"time"

	"github.com/SscSPs/library_management_app/internal/apperrors"
	"github.com/SscSPs/library_management_app/internal/core/domain"
)

// ListParams defines the pagination query parameters shared by every listing.
type ListParams struct {
	Page    int `form:"page,default=1"`
	PerPage int `form:"per_page,default=100"`
}

// ToPage converts the query parameters to a domain page request.
func (p ListParams) ToPage() domain.Page {
	return domain.Page{Page: p.Page, PerPage: p.PerPage}
}

// UpdateStatusRequest moves an entity to the status with the given enumerator.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// StatusResponse is one entry of a status catalog.
type StatusResponse struct {
	Enumerator  string    `json:"enumerator"`
	Translation string    `json:"translation"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToStatusResponse converts a domain.Status to StatusResponse DTO
func ToStatusResponse(s domain.Status) StatusResponse {
	return StatusResponse{
		Enumerator:  s.Enumerator,
		Translation: s.Translation,
		CreatedAt:   s.CreatedAt,
	}
}

// ToStatusResponses converts a status catalog.
func ToStatusResponses(statuses []domain.Status) []StatusResponse {
	out := make([]StatusResponse, len(statuses))
	for i, s := range statuses {
		out[i] = ToStatusResponse(s)
	}
	return out
}

// EventResponse is one entry of an entity's status history.
type EventResponse struct {
	OldStatus *string   `json:"oldStatus"`
	NewStatus string    `json:"newStatus"`
	CreatedAt time.Time `json:"createdAt"`
}

func toEventResponses(events []domain.StatusEvent) []EventResponse {
	if len(events) == 0 {
		return nil
	}
	out := make([]EventResponse, len(events))
	for i, ev := range events {
		out[i] = EventResponse{OldStatus: ev.OldStatus, NewStatus: ev.NewStatus, CreatedAt: ev.CreatedAt}
	}
	return out
}

// ErrorDetail mirrors the public fields of apperrors.AppError for API docs.
type ErrorDetail struct {
	Code        string `json:"code"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Translation string `json:"translation"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Detail ErrorDetail `json:"detail"`
}

// HealthResponse reports service and database reachability.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Message  string `json:"message"`
}

// NewErrorResponse builds the error body for an AppError.
func NewErrorResponse(err *apperrors.AppError) ErrorResponse {
	return ErrorResponse{Detail: ErrorDetail{
		Code:        err.Code,
		Title:       err.Title,
		Description: err.Description,
		Translation: err.Translation,
	}}
}
