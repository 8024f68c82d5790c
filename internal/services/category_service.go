package services

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/isdelr/todo-be/internal/database"
	"github.com/isdelr/todo-be/internal/models"
	"github.com/jmoiron/sqlx"
)

// CategoryServiceProvider defines the interface for category services.
type CategoryServiceProvider interface {
	List(ctx context.Context, userID int64) ([]string, error)
	Add(ctx context.Context, userID int64, name string) (string, error)
	Delete(ctx context.Context, userID int64, name string) error
}

// CategoryService manages the per-user category names.
type CategoryService struct {
	db *database.DB
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(db *database.DB) *CategoryService {
	return &CategoryService{db: db}
}

// List returns the names of the user's categories in creation order.
func (s *CategoryService) List(ctx context.Context, userID int64) ([]string, error) {
	query, args, err := s.db.Builder.Select("id", "name", "user_id").
		From("categories").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}

	var categories []models.Category
	if err := s.db.SelectContext(ctx, &categories, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}
	return names, nil
}

// Add creates a category for the user. The same name may exist for other users.
func (s *CategoryService) Add(ctx context.Context, userID int64, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: category name is required", ErrValidation)
	}

	err := s.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		var count int
		query, args, err := s.db.Builder.Select("COUNT(*)").
			From("categories").
			Where(sq.Eq{"user_id": userID, "name": name}).
			ToSql()
		if err != nil {
			return err
		}
		if err := tx.GetContext(ctx, &count, query, args...); err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: category %q", ErrConflict, name)
		}

		query, args, err = s.db.Builder.Insert("categories").
			Columns("name", "user_id").
			Values(name, userID).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			if database.IsUniqueViolation(err) {
				return fmt.Errorf("%w: category %q", ErrConflict, name)
			}
			return fmt.Errorf("failed to insert category: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return name, nil
}

// Delete removes the user's category by name. Todos keep their category text.
func (s *CategoryService) Delete(ctx context.Context, userID int64, name string) error {
	return s.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		query, args, err := s.db.Builder.Delete("categories").
			Where(sq.Eq{"user_id": userID, "name": name}).
			ToSql()
		if err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("category %q: %w", name, ErrNotFound)
		}
		return nil
	})
}
