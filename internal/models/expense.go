package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense records a family purchase. Creating one debits the family
// balance by the same amount in the same transaction.
type Expense struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	CategoryID  uuid.UUID       `json:"category_id"`
	UserID      uuid.UUID       `json:"user_id"`
	FamilyID    uuid.UUID       `json:"family_id"`
	CreatedAt   time.Time       `json:"created_at"`
}
