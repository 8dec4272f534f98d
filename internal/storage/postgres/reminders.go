package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/famfin/famfin-be/internal/models"
	"github.com/famfin/famfin-be/internal/storage"
)

// ListReminders returns the user's reminders ordered by creation time.
func (s *Store) ListReminders(ctx context.Context, userID uuid.UUID) ([]models.Reminder, error) {
	const query = `
		SELECT id, content, expires_at, status, user_id, created_at
		FROM reminders
		WHERE user_id = $1
		ORDER BY created_at ASC;
	`
	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []models.Reminder
	for rows.Next() {
		var r models.Reminder
		if err := rows.Scan(&r.ID, &r.Content, &r.ExpiresAt, &r.Status, &r.UserID, &r.CreatedAt); err != nil {
			return nil, err
		}
		reminders = append(reminders, r)
	}
	return reminders, rows.Err()
}

// GetReminder fetches a reminder owned by the given user.
func (s *Store) GetReminder(ctx context.Context, id, userID uuid.UUID) (models.Reminder, error) {
	const query = `
		SELECT id, content, expires_at, status, user_id, created_at
		FROM reminders
		WHERE id = $1 AND user_id = $2;
	`
	var r models.Reminder
	err := s.pool.QueryRow(ctx, query, id, userID).Scan(
		&r.ID, &r.Content, &r.ExpiresAt, &r.Status, &r.UserID, &r.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Reminder{}, storage.ErrNotFound
		}
		return models.Reminder{}, err
	}
	return r, nil
}

// CreateReminder inserts a reminder row.
func (s *Store) CreateReminder(ctx context.Context, reminder models.Reminder) (models.Reminder, error) {
	if reminder.ID == uuid.Nil {
		reminder.ID = uuid.New()
	}
	const query = `
		INSERT INTO reminders (id, content, expires_at, status, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at;
	`
	err := s.pool.QueryRow(ctx, query,
		reminder.ID, reminder.Content, reminder.ExpiresAt, reminder.Status, reminder.UserID,
	).Scan(&reminder.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return models.Reminder{}, storage.ErrNotFound
		}
		return models.Reminder{}, err
	}
	return reminder, nil
}

// UpdateReminder rewrites content, expiry, and status of the user's
// reminder.
func (s *Store) UpdateReminder(ctx context.Context, reminder models.Reminder) (models.Reminder, error) {
	const query = `
		UPDATE reminders
		SET content = $3, expires_at = $4, status = $5
		WHERE id = $1 AND user_id = $2
		RETURNING created_at;
	`
	err := s.pool.QueryRow(ctx, query,
		reminder.ID, reminder.UserID, reminder.Content, reminder.ExpiresAt, reminder.Status,
	).Scan(&reminder.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Reminder{}, storage.ErrNotFound
		}
		return models.Reminder{}, err
	}
	return reminder, nil
}

// DeleteReminder removes the user's reminder.
func (s *Store) DeleteReminder(ctx context.Context, id, userID uuid.UUID) error {
	const query = `DELETE FROM reminders WHERE id = $1 AND user_id = $2;`
	tag, err := s.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
