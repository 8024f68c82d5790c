package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/isdelr/todo-be/internal/database"
	"github.com/isdelr/todo-be/internal/models"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

var todoColumns = []string{"id", "content", "is_done", "category", "user_id", "start_date", "deadline"}

// TodoServiceProvider defines the interface for todo services.
type TodoServiceProvider interface {
	List(ctx context.Context, userID int64, category string) ([]models.Todo, error)
	Create(ctx context.Context, userID int64, input CreateTodoInput) (models.Todo, error)
	Toggle(ctx context.Context, userID, todoID int64) (models.Todo, error)
	Delete(ctx context.Context, userID, todoID int64) error
}

// CreateTodoInput carries the raw fields of a new todo. Dates are YYYY-MM-DD
// strings; anything that does not parse is stored as no date.
type CreateTodoInput struct {
	Content   string
	Category  string
	StartDate string
	Deadline  string
}

// TodoService provides business logic for todo management.
type TodoService struct {
	db *database.DB
}

// NewTodoService creates a new TodoService.
func NewTodoService(db *database.DB) *TodoService {
	return &TodoService{db: db}
}

// List returns the user's todos in insertion order. An empty category or
// models.CategoryAll returns all of them.
func (s *TodoService) List(ctx context.Context, userID int64, category string) ([]models.Todo, error) {
	builder := s.db.Builder.Select(todoColumns...).
		From("todos").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("id")
	if category != "" && category != models.CategoryAll {
		builder = builder.Where(sq.Eq{"category": category})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	todos := []models.Todo{}
	if err := s.db.SelectContext(ctx, &todos, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}

// Create stores a new todo for the user.
func (s *TodoService) Create(ctx context.Context, userID int64, input CreateTodoInput) (models.Todo, error) {
	if input.Content == "" {
		return models.Todo{}, fmt.Errorf("%w: content is required", ErrValidation)
	}

	todo := models.Todo{
		Content:   input.Content,
		Category:  input.Category,
		UserID:    userID,
		StartDate: parseDateField("start_date", input.StartDate),
		Deadline:  parseDateField("deadline", input.Deadline),
	}
	if todo.Category == "" {
		todo.Category = models.CategoryAll
	}

	err := s.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		query, args, err := s.db.Builder.Insert("todos").
			Columns("content", "is_done", "category", "user_id", "start_date", "deadline").
			Values(todo.Content, todo.IsDone, todo.Category, todo.UserID, todo.StartDate, todo.Deadline).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return err
		}
		return tx.GetContext(ctx, &todo.ID, query, args...)
	})
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to save todo")
		return models.Todo{}, fmt.Errorf("failed to create todo: %w", err)
	}
	return todo, nil
}

// Toggle flips the done flag of a todo owned by the user.
func (s *TodoService) Toggle(ctx context.Context, userID, todoID int64) (models.Todo, error) {
	var todo models.Todo
	err := s.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		todo, err = s.getOwned(ctx, tx, userID, todoID)
		if err != nil {
			return err
		}

		todo.IsDone = !todo.IsDone
		query, args, err := s.db.Builder.Update("todos").
			Set("is_done", todo.IsDone).
			Where(sq.Eq{"id": todo.ID}).
			ToSql()
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		return models.Todo{}, err
	}
	return todo, nil
}

// Delete removes a todo owned by the user.
func (s *TodoService) Delete(ctx context.Context, userID, todoID int64) error {
	return s.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		todo, err := s.getOwned(ctx, tx, userID, todoID)
		if err != nil {
			return err
		}

		query, args, err := s.db.Builder.Delete("todos").Where(sq.Eq{"id": todo.ID}).ToSql()
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, query, args...)
		return err
	})
}

// getOwned loads a todo and checks that userID owns it. A todo that does
// not exist is ErrNotFound; one owned by someone else is ErrForbidden.
func (s *TodoService) getOwned(ctx context.Context, tx *sqlx.Tx, userID, todoID int64) (models.Todo, error) {
	query, args, err := s.db.Builder.Select(todoColumns...).
		From("todos").
		Where(sq.Eq{"id": todoID}).
		ToSql()
	if err != nil {
		return models.Todo{}, err
	}

	var todo models.Todo
	if err := tx.GetContext(ctx, &todo, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Todo{}, fmt.Errorf("todo %d: %w", todoID, ErrNotFound)
		}
		return models.Todo{}, err
	}
	if todo.UserID != userID {
		return models.Todo{}, fmt.Errorf("todo %d: %w", todoID, ErrForbidden)
	}
	return todo, nil
}

func parseDateField(field, value string) models.Date {
	date, err := models.ParseDate(value)
	if err != nil {
		log.Warn().Err(err).Str("field", field).Str("value", value).Msg("Ignoring unparsable date")
	}
	return date
}
