// Package ledger implements the balance-mutation core: every operation
// that touches a family balance goes through here. The shared protocol
// is validate amount, load the family, check the caller's membership,
// then apply the mutation through the store.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/famfin/famfin-be/internal/models"
	"github.com/famfin/famfin-be/internal/storage"
)

// ErrInvalidAmount rejects non-positive amounts before any lookup.
var ErrInvalidAmount = errors.New("amount must be positive")

// ErrFamilyNotFound indicates the target family does not exist.
var ErrFamilyNotFound = errors.New("family not found")

// ErrNotAMember indicates the acting user has no membership in the
// target family.
var ErrNotAMember = errors.New("user does not belong to this family")

// ErrCategoryNotFound indicates the referenced expense category does
// not exist.
var ErrCategoryNotFound = errors.New("category not found")

// ErrInsufficientFunds indicates a withdrawal or expense larger than the
// current balance.
var ErrInsufficientFunds = errors.New("insufficient funds")

// Service coordinates ledger operations over the family and category
// stores.
type Service struct {
	families   storage.FamilyStore
	categories storage.CategoryStore
}

// NewService constructs the ledger service.
func NewService(families storage.FamilyStore, categories storage.CategoryStore) *Service {
	return &Service{families: families, categories: categories}
}

// ExpenseInput carries everything needed to record an expense.
type ExpenseInput struct {
	FamilyID    uuid.UUID
	UserID      uuid.UUID
	CategoryID  uuid.UUID
	Title       string
	Description string
	Amount      decimal.Decimal
}

// Deposit adds amount to the family balance and returns the new balance.
func (s *Service) Deposit(ctx context.Context, familyID, userID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	if err := s.authorize(ctx, familyID, userID, amount); err != nil {
		return decimal.Decimal{}, err
	}
	balance, err := s.families.Credit(ctx, familyID, amount)
	if err != nil {
		return decimal.Decimal{}, s.translate(err)
	}
	return balance, nil
}

// Withdraw removes amount from the family balance. The store performs
// the funds check and the decrement as one atomic step, so concurrent
// withdrawals cannot overdraw.
func (s *Service) Withdraw(ctx context.Context, familyID, userID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	if err := s.authorize(ctx, familyID, userID, amount); err != nil {
		return decimal.Decimal{}, err
	}
	balance, err := s.families.Debit(ctx, familyID, amount)
	if err != nil {
		return decimal.Decimal{}, s.translate(err)
	}
	return balance, nil
}

// RecordExpense stores the expense and debits the family balance as one
// unit: if either write fails the other does not persist.
func (s *Service) RecordExpense(ctx context.Context, in ExpenseInput) (models.Expense, decimal.Decimal, error) {
	if err := s.authorize(ctx, in.FamilyID, in.UserID, in.Amount); err != nil {
		return models.Expense{}, decimal.Decimal{}, err
	}
	if _, err := s.categories.GetCategory(ctx, in.CategoryID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Expense{}, decimal.Decimal{}, ErrCategoryNotFound
		}
		return models.Expense{}, decimal.Decimal{}, fmt.Errorf("load category: %w", err)
	}

	expense := models.Expense{
		Title:       in.Title,
		Description: in.Description,
		Amount:      in.Amount,
		CategoryID:  in.CategoryID,
		UserID:      in.UserID,
		FamilyID:    in.FamilyID,
	}
	created, balance, err := s.families.CreateExpense(ctx, expense)
	if err != nil {
		return models.Expense{}, decimal.Decimal{}, s.translate(err)
	}
	return created, balance, nil
}

// Balance reports the family's current balance. No membership check:
// the balance route is unauthenticated read-only, matching deposit
// semantics where anyone can look but only members can move money.
func (s *Service) Balance(ctx context.Context, familyID uuid.UUID) (decimal.Decimal, error) {
	family, err := s.families.GetFamily(ctx, familyID)
	if err != nil {
		return decimal.Decimal{}, s.translate(err)
	}
	return family.Balance, nil
}

// authorize runs the shared precondition protocol: amount validity
// first (fail fast, nothing loaded), then family existence, then
// membership.
func (s *Service) authorize(ctx context.Context, familyID, userID uuid.UUID, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if _, err := s.families.GetFamily(ctx, familyID); err != nil {
		return s.translate(err)
	}
	if _, err := s.families.GetMember(ctx, familyID, userID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotAMember
		}
		return fmt.Errorf("load membership: %w", err)
	}
	return nil
}

func (s *Service) translate(err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return ErrFamilyNotFound
	case errors.Is(err, storage.ErrInsufficientFunds):
		return ErrInsufficientFunds
	}
	return err
}
