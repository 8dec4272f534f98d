package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/famfin/famfin-be/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// ErrInsufficientFunds indicates a debit would take a family balance
// below zero. The conditional update that produces it is the lost-update
// guard: two concurrent debits cannot both pass the funds check.
var ErrInsufficientFunds = errors.New("insufficient funds")

// UserStore captures user persistence needed by the auth handlers.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}

// FamilyStore persists families, memberships, balances, and expenses.
// Credit and Debit return the balance after the mutation; Debit and
// CreateExpense fail with ErrInsufficientFunds rather than letting the
// balance go negative, and CreateExpense persists the expense row and
// the debit as one unit.
type FamilyStore interface {
	CreateFamily(ctx context.Context, family models.Family, owner models.FamilyMember) (models.Family, error)
	GetFamily(ctx context.Context, id uuid.UUID) (models.Family, error)
	AddMember(ctx context.Context, member models.FamilyMember) error
	GetMember(ctx context.Context, familyID, userID uuid.UUID) (models.FamilyMember, error)
	Credit(ctx context.Context, familyID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error)
	Debit(ctx context.Context, familyID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error)
	CreateExpense(ctx context.Context, expense models.Expense) (models.Expense, decimal.Decimal, error)
}

// CategoryStore persists the flat category set.
type CategoryStore interface {
	CreateCategory(ctx context.Context, name string) (models.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (models.Category, error)
}

// ReminderStore persists reminders scoped to their owning user. Lookups
// by id are also scoped: another user's reminder reads as not found.
type ReminderStore interface {
	ListReminders(ctx context.Context, userID uuid.UUID) ([]models.Reminder, error)
	GetReminder(ctx context.Context, id, userID uuid.UUID) (models.Reminder, error)
	CreateReminder(ctx context.Context, reminder models.Reminder) (models.Reminder, error)
	UpdateReminder(ctx context.Context, reminder models.Reminder) (models.Reminder, error)
	DeleteReminder(ctx context.Context, id, userID uuid.UUID) error
}

// Store is the full persistence surface the server wires up.
type Store interface {
	UserStore
	FamilyStore
	CategoryStore
	ReminderStore
}
