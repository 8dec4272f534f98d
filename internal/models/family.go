package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Membership roles. The creator of a family is its owner; users joining
// an existing family are plain members. No operation is currently gated
// on the distinction.
const (
	RoleOwner  = "owner"
	RoleMember = "member"
)

// Family is a shared-balance group of users. Balance never goes below
// zero; every mutation happens through the ledger service.
type Family struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
}

// FamilyMember is the relation authorizing a user to act on a family's
// balance. Its existence is checked before every family-scoped mutation.
type FamilyMember struct {
	FamilyID uuid.UUID `json:"family_id"`
	UserID   uuid.UUID `json:"user_id"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}
