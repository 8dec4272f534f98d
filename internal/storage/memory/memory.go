// Package memory holds an in-memory storage.Store used by tests. It
// mirrors the Postgres store's semantics, including the conditional
// debit and the all-or-nothing expense insert.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/famfin/famfin-be/internal/models"
	"github.com/famfin/famfin-be/internal/storage"
)

var _ storage.Store = (*Store)(nil)

type Store struct {
	mu         sync.Mutex
	users      map[uuid.UUID]models.User
	families   map[uuid.UUID]models.Family
	members    map[uuid.UUID]map[uuid.UUID]models.FamilyMember
	categories map[uuid.UUID]models.Category
	expenses   []models.Expense
	reminders  []models.Reminder
}

func New() *Store {
	return &Store{
		users:      map[uuid.UUID]models.User{},
		families:   map[uuid.UUID]models.Family{},
		members:    map[uuid.UUID]map[uuid.UUID]models.FamilyMember{},
		categories: map[uuid.UUID]models.Category{},
	}
}

func (s *Store) CreateUser(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return models.User{}, storage.ErrAlreadyExists
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	s.users[user.ID] = user
	return user, nil
}

func (s *Store) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

func (s *Store) UpdatePassword(_ context.Context, email, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, user := range s.users {
		if user.Email == email {
			user.PasswordHash = passwordHash
			s.users[id] = user
			return nil
		}
	}
	return storage.ErrNotFound
}

func (s *Store) CreateFamily(_ context.Context, family models.Family, owner models.FamilyMember) (models.Family, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if family.ID == uuid.Nil {
		family.ID = uuid.New()
	}
	family.CreatedAt = time.Now()
	owner.FamilyID = family.ID
	owner.JoinedAt = family.CreatedAt
	s.families[family.ID] = family
	s.members[family.ID] = map[uuid.UUID]models.FamilyMember{owner.UserID: owner}
	return family, nil
}

func (s *Store) GetFamily(_ context.Context, id uuid.UUID) (models.Family, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	family, ok := s.families[id]
	if !ok {
		return models.Family{}, storage.ErrNotFound
	}
	return family, nil
}

func (s *Store) AddMember(_ context.Context, member models.FamilyMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.families[member.FamilyID]; !ok {
		return storage.ErrNotFound
	}
	byUser := s.members[member.FamilyID]
	if byUser == nil {
		byUser = map[uuid.UUID]models.FamilyMember{}
		s.members[member.FamilyID] = byUser
	}
	if _, ok := byUser[member.UserID]; ok {
		return storage.ErrAlreadyExists
	}
	member.JoinedAt = time.Now()
	byUser[member.UserID] = member
	return nil
}

func (s *Store) GetMember(_ context.Context, familyID, userID uuid.UUID) (models.FamilyMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	member, ok := s.members[familyID][userID]
	if !ok {
		return models.FamilyMember{}, storage.ErrNotFound
	}
	return member, nil
}

func (s *Store) Credit(_ context.Context, familyID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	family, ok := s.families[familyID]
	if !ok {
		return decimal.Decimal{}, storage.ErrNotFound
	}
	family.Balance = family.Balance.Add(amount)
	s.families[familyID] = family
	return family.Balance, nil
}

func (s *Store) Debit(_ context.Context, familyID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.debitLocked(familyID, amount)
}

// debitLocked applies the check-and-decrement under the store lock, the
// in-memory stand-in for the conditional UPDATE.
func (s *Store) debitLocked(familyID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	family, ok := s.families[familyID]
	if !ok {
		return decimal.Decimal{}, storage.ErrNotFound
	}
	if family.Balance.LessThan(amount) {
		return decimal.Decimal{}, storage.ErrInsufficientFunds
	}
	family.Balance = family.Balance.Sub(amount)
	s.families[familyID] = family
	return family.Balance, nil
}

func (s *Store) CreateExpense(_ context.Context, expense models.Expense) (models.Expense, decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Debit first; the expense row is only appended once the debit has
	// succeeded, so a failed debit leaves no trace.
	balance, err := s.debitLocked(expense.FamilyID, expense.Amount)
	if err != nil {
		return models.Expense{}, decimal.Decimal{}, err
	}
	if expense.ID == uuid.Nil {
		expense.ID = uuid.New()
	}
	expense.CreatedAt = time.Now()
	s.expenses = append(s.expenses, expense)
	return expense, balance, nil
}

// Expenses returns a copy of the stored expenses, for test assertions.
func (s *Store) Expenses() []models.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Expense(nil), s.expenses...)
}

func (s *Store) CreateCategory(_ context.Context, name string) (models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, category := range s.categories {
		if category.Name == name {
			return models.Category{}, storage.ErrAlreadyExists
		}
	}
	category := models.Category{ID: uuid.New(), Name: name}
	s.categories[category.ID] = category
	return category, nil
}

func (s *Store) GetCategory(_ context.Context, id uuid.UUID) (models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	category, ok := s.categories[id]
	if !ok {
		return models.Category{}, storage.ErrNotFound
	}
	return category, nil
}

func (s *Store) ListReminders(_ context.Context, userID uuid.UUID) ([]models.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Insertion order doubles as created_at ascending.
	var out []models.Reminder
	for _, r := range s.reminders {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Store) GetReminder(_ context.Context, id, userID uuid.UUID) (models.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.reminders {
		if r.ID == id && r.UserID == userID {
			return r, nil
		}
	}
	return models.Reminder{}, storage.ErrNotFound
}

func (s *Store) CreateReminder(_ context.Context, reminder models.Reminder) (models.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if reminder.ID == uuid.Nil {
		reminder.ID = uuid.New()
	}
	reminder.CreatedAt = time.Now()
	s.reminders = append(s.reminders, reminder)
	return reminder, nil
}

func (s *Store) UpdateReminder(_ context.Context, reminder models.Reminder) (models.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.reminders {
		if existing.ID == reminder.ID && existing.UserID == reminder.UserID {
			existing.Content = reminder.Content
			existing.ExpiresAt = reminder.ExpiresAt
			existing.Status = reminder.Status
			s.reminders[i] = existing
			return existing, nil
		}
	}
	return models.Reminder{}, storage.ErrNotFound
}

func (s *Store) DeleteReminder(_ context.Context, id, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.reminders {
		if existing.ID == id && existing.UserID == userID {
			s.reminders = append(s.reminders[:i], s.reminders[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}
