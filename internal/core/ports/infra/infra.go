package infra

import (
	"context"
	"time"
)

// Cache is a small key/value store for read-through lookups.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value stored under key and whether it was present and fresh.
	Get(key string) (any, bool)

	// Set stores value under key for ttl.
	Set(key string, value any, ttl time.Duration)

	// Invalidate drops key. Missing keys are ignored.
	Invalidate(key string)
}

// DueDateNotice is the payload sent when a loan is opened.
type DueDateNotice struct {
	Type      string    `json:"type"`
	LoanKey   string    `json:"loan_key"`
	UserEmail string    `json:"user_email"`
	BookTitle string    `json:"book_title"`
	DueDate   time.Time `json:"due_date"`
}

// NoticeTypeLoanDueDate is the Type of every DueDateNotice.
const NoticeTypeLoanDueDate = "loan_due_date"

// Notifier delivers best-effort notices to an external collaborator.
type Notifier interface {
	NotifyDueDate(ctx context.Context, notice DueDateNotice) error
}

// Cache key builders shared by the services.

func StatusKey(entityType, enumerator string) string {
	return "status:" + entityType + ":" + enumerator + ":id"
}

func DetailsKey(entityType, key string) string {
	return entityType + ":" + key + ":details"
}
