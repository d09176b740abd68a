package models

import "time"

// Status is a row of one of the *_status catalog tables.
type Status struct {
	ID          int64     `db:"id"`
	Enumerator  string    `db:"enumerator"`
	Translation string    `db:"translation"`
	CreatedAt   time.Time `db:"created_at"`
}

// StatusRef holds the status columns joined onto an entity row.
type StatusRef struct {
	StatusID          int64     `db:"status_id"`
	StatusEnumerator  string    `db:"status_enumerator"`
	StatusTranslation string    `db:"status_translation"`
	StatusCreatedAt   time.Time `db:"status_created_at"`
}

// Event is a row of one of the *_event tables, with both statuses resolved.
type Event struct {
	ID          int64     `db:"id"`
	EntityID    int64     `db:"entity_id"`
	OldStatusID *int64    `db:"old_status_id"`
	NewStatusID int64     `db:"new_status_id"`
	OldStatus   *string   `db:"old_status"`
	NewStatus   string    `db:"new_status"`
	CreatedAt   time.Time `db:"created_at"`
}
