package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/famfin/famfin-be/internal/models"
)

// BalanceMutationRequest is the shared payload for deposits and
// withdrawals.
type BalanceMutationRequest struct {
	Amount decimal.Decimal `json:"amount"`
	UserID uuid.UUID       `json:"userId"`
}

// BalanceMutationResponse reports the balance after the mutation.
type BalanceMutationResponse struct {
	Message string          `json:"message"`
	Balance decimal.Decimal `json:"balance"`
}

type BalanceResponse struct {
	Balance  decimal.Decimal `json:"balance"`
	FamilyID uuid.UUID       `json:"familyId"`
}

type ExpenseRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	CategoryID  uuid.UUID       `json:"categoryId"`
	UserID      uuid.UUID       `json:"userId"`
}

type ExpenseResponse struct {
	Message        string          `json:"message"`
	Expense        models.Expense  `json:"expense"`
	UpdatedBalance decimal.Decimal `json:"updatedBalance"`
}

type CategoryRequest struct {
	Category string `json:"category"`
}

type CategoryResponse struct {
	Message  string          `json:"message"`
	Category models.Category `json:"category"`
}
