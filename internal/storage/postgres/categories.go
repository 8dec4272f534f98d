package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/famfin/famfin-be/internal/models"
	"github.com/famfin/famfin-be/internal/storage"
)

// CreateCategory inserts a category, relying on the unique index for the
// duplicate-name check.
func (s *Store) CreateCategory(ctx context.Context, name string) (models.Category, error) {
	category := models.Category{ID: uuid.New(), Name: name}
	const query = `INSERT INTO categories (id, name) VALUES ($1, $2);`
	if _, err := s.pool.Exec(ctx, query, category.ID, category.Name); err != nil {
		if isUniqueViolation(err) {
			return models.Category{}, storage.ErrAlreadyExists
		}
		return models.Category{}, err
	}
	return category, nil
}

// GetCategory fetches a category by id.
func (s *Store) GetCategory(ctx context.Context, id uuid.UUID) (models.Category, error) {
	const query = `SELECT id, name FROM categories WHERE id = $1;`
	var category models.Category
	err := s.pool.QueryRow(ctx, query, id).Scan(&category.ID, &category.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Category{}, storage.ErrNotFound
		}
		return models.Category{}, err
	}
	return category, nil
}
