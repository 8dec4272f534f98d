package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/famfin/famfin-be/internal/models"
	"github.com/famfin/famfin-be/internal/storage"
)

// CreateFamily inserts the family and its owner membership in one
// transaction, so a family can never exist without its creator.
func (s *Store) CreateFamily(ctx context.Context, family models.Family, owner models.FamilyMember) (models.Family, error) {
	if family.ID == uuid.Nil {
		family.ID = uuid.New()
	}
	owner.FamilyID = family.ID

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return models.Family{}, err
	}
	defer tx.Rollback(ctx)

	const insertFamily = `
		INSERT INTO families (id, name, balance)
		VALUES ($1, $2, $3)
		RETURNING created_at;
	`
	if err := tx.QueryRow(ctx, insertFamily, family.ID, family.Name, family.Balance.String()).Scan(&family.CreatedAt); err != nil {
		return models.Family{}, err
	}

	const insertMember = `
		INSERT INTO family_members (family_id, user_id, role)
		VALUES ($1, $2, $3);
	`
	if _, err := tx.Exec(ctx, insertMember, owner.FamilyID, owner.UserID, owner.Role); err != nil {
		return models.Family{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Family{}, err
	}
	return family, nil
}

// GetFamily fetches a family by id.
func (s *Store) GetFamily(ctx context.Context, id uuid.UUID) (models.Family, error) {
	const query = `
		SELECT id, name, balance::text, created_at
		FROM families
		WHERE id = $1;
	`
	var family models.Family
	var rawBalance string
	err := s.pool.QueryRow(ctx, query, id).Scan(&family.ID, &family.Name, &rawBalance, &family.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Family{}, storage.ErrNotFound
		}
		return models.Family{}, err
	}
	if family.Balance, err = parseNumeric(rawBalance); err != nil {
		return models.Family{}, err
	}
	return family, nil
}

// AddMember inserts a membership row.
func (s *Store) AddMember(ctx context.Context, member models.FamilyMember) error {
	const query = `
		INSERT INTO family_members (family_id, user_id, role)
		VALUES ($1, $2, $3);
	`
	if _, err := s.pool.Exec(ctx, query, member.FamilyID, member.UserID, member.Role); err != nil {
		switch {
		case isUniqueViolation(err):
			return storage.ErrAlreadyExists
		case isForeignKeyViolation(err):
			return storage.ErrNotFound
		}
		return err
	}
	return nil
}

// GetMember fetches the membership row for (familyID, userID).
func (s *Store) GetMember(ctx context.Context, familyID, userID uuid.UUID) (models.FamilyMember, error) {
	const query = `
		SELECT family_id, user_id, role, joined_at
		FROM family_members
		WHERE family_id = $1 AND user_id = $2;
	`
	var member models.FamilyMember
	err := s.pool.QueryRow(ctx, query, familyID, userID).Scan(
		&member.FamilyID, &member.UserID, &member.Role, &member.JoinedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.FamilyMember{}, storage.ErrNotFound
		}
		return models.FamilyMember{}, err
	}
	return member, nil
}

// Credit increments the family balance and returns the new balance.
func (s *Store) Credit(ctx context.Context, familyID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	const query = `
		UPDATE families
		SET balance = balance + $2
		WHERE id = $1
		RETURNING balance::text;
	`
	var raw string
	err := s.pool.QueryRow(ctx, query, familyID, amount.String()).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Decimal{}, storage.ErrNotFound
		}
		return decimal.Decimal{}, err
	}
	return parseNumeric(raw)
}

// Debit decrements the family balance if funds suffice. The funds check
// and the decrement are a single conditional UPDATE, so two concurrent
// debits cannot both succeed against a stale balance.
func (s *Store) Debit(ctx context.Context, familyID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	const query = `
		UPDATE families
		SET balance = balance - $2
		WHERE id = $1 AND balance >= $2
		RETURNING balance::text;
	`
	var raw string
	err := s.pool.QueryRow(ctx, query, familyID, amount.String()).Scan(&raw)
	if err == nil {
		return parseNumeric(raw)
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return decimal.Decimal{}, err
	}
	// No row updated: either the family is gone or the balance is short.
	if _, err := s.GetFamily(ctx, familyID); err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.Decimal{}, storage.ErrInsufficientFunds
}

// CreateExpense inserts the expense row and debits the family balance in
// the same transaction: both persist or neither does.
func (s *Store) CreateExpense(ctx context.Context, expense models.Expense) (models.Expense, decimal.Decimal, error) {
	if expense.ID == uuid.Nil {
		expense.ID = uuid.New()
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return models.Expense{}, decimal.Decimal{}, err
	}
	defer tx.Rollback(ctx)

	const debit = `
		UPDATE families
		SET balance = balance - $2
		WHERE id = $1 AND balance >= $2
		RETURNING balance::text;
	`
	var raw string
	if err := tx.QueryRow(ctx, debit, expense.FamilyID, expense.Amount.String()).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if _, err := s.GetFamily(ctx, expense.FamilyID); err != nil {
				return models.Expense{}, decimal.Decimal{}, err
			}
			return models.Expense{}, decimal.Decimal{}, storage.ErrInsufficientFunds
		}
		return models.Expense{}, decimal.Decimal{}, err
	}
	balance, err := parseNumeric(raw)
	if err != nil {
		return models.Expense{}, decimal.Decimal{}, err
	}

	const insert = `
		INSERT INTO expenses (id, title, description, amount, category_id, user_id, family_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at;
	`
	err = tx.QueryRow(ctx, insert,
		expense.ID, expense.Title, expense.Description, expense.Amount.String(),
		expense.CategoryID, expense.UserID, expense.FamilyID,
	).Scan(&expense.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return models.Expense{}, decimal.Decimal{}, storage.ErrNotFound
		}
		return models.Expense{}, decimal.Decimal{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Expense{}, decimal.Decimal{}, err
	}
	return expense, balance, nil
}
