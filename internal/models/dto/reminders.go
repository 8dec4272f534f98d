package dto

import "time"

// ReminderRequest is shared by create and update. Status is optional on
// create and defaults to open.
type ReminderRequest struct {
	Content   string    `json:"content"`
	ExpiresAt time.Time `json:"expires_at"`
	Status    string    `json:"status,omitempty"`
}
