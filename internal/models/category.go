package models

import "github.com/google/uuid"

// Category is an expense category. Names are unique, matched
// case-sensitively.
type Category struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
