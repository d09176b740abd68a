package domain

import "time"

// EntityType names the entity family a status or event belongs to.
// The value doubles as the table prefix in storage and as the cache key segment.
type EntityType string

const (
	EntityUser        EntityType = "user"
	EntityBook        EntityType = "book"
	EntityLoan        EntityType = "loan"
	EntityReservation EntityType = "reservation"
)

// Valid reports whether t is one of the known entity types.
func (t EntityType) Valid() bool {
	switch t {
	case EntityUser, EntityBook, EntityLoan, EntityReservation:
		return true
	}
	return false
}

// Status enumerators seeded by the migrations.
const (
	UserStatusActive      = "active"
	UserStatusSuspended   = "suspended"
	UserStatusDeactivated = "deactivated"

	BookStatusAvailable = "available"
	BookStatusLoaned    = "loaned"

	LoanStatusActive   = "active"
	LoanStatusReturned = "returned"

	ReservationStatusActive    = "active"
	ReservationStatusCancelled = "cancelled"
	ReservationStatusCompleted = "completed"
)

// Status is a row of one of the status catalogs.
// Enumerator is the stable wire value; ID is only meaningful to storage.
type Status struct {
	ID          int64     `json:"-"`
	Enumerator  string    `json:"enumerator"`
	Translation string    `json:"translation"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Is reports whether the status carries the given enumerator.
func (s Status) Is(enumerator string) bool {
	return s.Enumerator == enumerator
}

// StatusEvent is an append-only audit record of a status transition.
// OldStatusID is nil for the event written when the entity is created.
type StatusEvent struct {
	ID          int64      `json:"-"`
	EntityType  EntityType `json:"entityType"`
	EntityID    int64      `json:"-"`
	OldStatusID *int64     `json:"-"`
	NewStatusID int64      `json:"-"`
	OldStatus   *string    `json:"oldStatus"`
	NewStatus   string     `json:"newStatus"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// NewStatusEvent builds the event for a transition from old (may be nil) to next.
func NewStatusEvent(entityType EntityType, entityID int64, old *Status, next Status, at time.Time) StatusEvent {
	ev := StatusEvent{
		EntityType:  entityType,
		EntityID:    entityID,
		NewStatusID: next.ID,
		NewStatus:   next.Enumerator,
		CreatedAt:   at,
	}
	if old != nil {
		oldID, oldName := old.ID, old.Enumerator
		ev.OldStatusID = &oldID
		ev.OldStatus = &oldName
	}
	return ev
}

// Page describes a 1-based page request.
type Page struct {
	Page    int `json:"page" validate:"gte=1"`
	PerPage int `json:"perPage" validate:"gte=1,lte=1000"`
}

// Offset returns the number of rows to skip.
func (p Page) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Limit returns the maximum number of rows to return.
func (p Page) Limit() int {
	return p.PerPage
}
