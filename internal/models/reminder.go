package models

import (
	"time"

	"github.com/google/uuid"
)

// Reminder lifecycle states.
const (
	ReminderOpen   = "open"
	ReminderClosed = "closed"
)

// Reminder is a free-standing note owned by the user who created it.
// It has no relation to the finance entities.
type Reminder struct {
	ID        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	ExpiresAt time.Time `json:"expires_at"`
	Status    string    `json:"status"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
