package models

import "time"

// Activity actions.
const (
	ActivityCreate = "create"
	ActivityUpdate = "update"
	ActivityDelete = "delete"
)

// Activity statuses.
const (
	ActivitySucceeded = "succeeded"
	ActivityFailed    = "failed"
)

// Activity records one mutation attempt against the seminar store.
type Activity struct {
	ID           int64     `json:"id"`
	SeminarID    ID        `json:"seminar_id"`
	Action       string    `json:"action"`
	Status       string    `json:"status"`
	Title        string    `json:"title,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
