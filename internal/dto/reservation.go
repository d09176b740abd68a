package dto

import (
	"time"

	"github.com/SscSPs/library_management_app/internal/core/domain"
)

// CreateReservationRequest places a hold on an unavailable book.
type CreateReservationRequest struct {
	UserKey string `json:"userKey" binding:"required"`
	BookKey string `json:"bookKey" binding:"required"`
}

// ListReservationsParams defines query parameters for listing reservations.
type ListReservationsParams struct {
	ListParams
	UserKey string `form:"user_key"`
	BookKey string `form:"book_key"`
	Status  string `form:"status"`
}

// ReservationResponse defines the data returned for a reservation.
type ReservationResponse struct {
	ReservationKey string     `json:"reservationKey"`
	UserKey        string     `json:"userKey"`
	UserName       string     `json:"userName"`
	BookKey        string     `json:"bookKey"`
	BookTitle      string     `json:"bookTitle"`
	Status         string     `json:"status"`
	ReservedAt     time.Time  `json:"reservedAt"`
	ExpiresAt      time.Time  `json:"expiresAt"`
	CompletedAt    *time.Time `json:"completedAt"`
}

// ListReservationsResponse wraps the list of reservations.
type ListReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	Page         int                   `json:"page"`
	PerPage      int                   `json:"perPage"`
}

// ToReservationResponse converts a domain.Reservation to ReservationResponse DTO
func ToReservationResponse(r *domain.Reservation) ReservationResponse {
	return ReservationResponse{
		ReservationKey: r.ReservationKey.String(),
		UserKey:        r.UserKey.String(),
		UserName:       r.UserName,
		BookKey:        r.BookKey.String(),
		BookTitle:      r.BookTitle,
		Status:         r.Status.Enumerator,
		ReservedAt:     r.ReservedAt,
		ExpiresAt:      r.ExpiresAt,
		CompletedAt:    r.CompletedAt,
	}
}

// ToListReservationResponse converts a slice of domain.Reservation.
func ToListReservationResponse(rs []domain.Reservation, page domain.Page) ListReservationsResponse {
	out := make([]ReservationResponse, len(rs))
	for i := range rs {
		out[i] = ToReservationResponse(&rs[i])
	}
	return ListReservationsResponse{Reservations: out, Page: page.Page, PerPage: page.PerPage}
}
