package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/isdelr/todo-be/internal/auth"
	"github.com/isdelr/todo-be/internal/database"
	"github.com/isdelr/todo-be/internal/models"
	"github.com/jmoiron/sqlx"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Register(ctx context.Context, email, password string) (models.User, error)
	Authenticate(ctx context.Context, email, password string) (models.User, error)
}

// UserService provides registration and credential checks.
type UserService struct {
	db *database.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *database.DB) *UserService {
	return &UserService{db: db}
}

// Register creates a new user, hashing their password. Emails are compared
// exactly as given.
func (s *UserService) Register(ctx context.Context, email, password string) (models.User, error) {
	if email == "" || password == "" {
		return models.User{}, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	user := models.User{Email: email, PasswordHash: hashed}

	err = s.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		var count int
		query, args, err := s.db.Builder.Select("COUNT(*)").From("users").Where(sq.Eq{"email": email}).ToSql()
		if err != nil {
			return err
		}
		if err := tx.GetContext(ctx, &count, query, args...); err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: email %s is already registered", ErrConflict, email)
		}

		query, args, err = s.db.Builder.Insert("users").
			Columns("email", "password_hash").
			Values(user.Email, user.PasswordHash).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return err
		}
		if err := tx.GetContext(ctx, &user.ID, query, args...); err != nil {
			if database.IsUniqueViolation(err) {
				return fmt.Errorf("%w: email %s is already registered", ErrConflict, email)
			}
			return fmt.Errorf("failed to insert user: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.User{}, err
	}

	// Return user without password hash
	user.PasswordHash = ""
	return user, nil
}

// GetUserByEmail retrieves a single user by their email, including the password hash.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	query, args, err := s.db.Builder.Select("id", "email", "password_hash").
		From("users").
		Where(sq.Eq{"email": email}).
		ToSql()
	if err != nil {
		return models.User{}, err
	}
	if err := s.db.GetContext(ctx, &user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, fmt.Errorf("user with email %s: %w", email, ErrNotFound)
		}
		return models.User{}, err
	}
	return user, nil
}

// Authenticate verifies a user's credentials. Unknown emails and wrong
// passwords fail with the same ErrUnauthorized.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	if email == "" || password == "" {
		return models.User{}, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	user, err := s.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.User{}, ErrUnauthorized
		}
		return models.User{}, err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return models.User{}, ErrUnauthorized
	}

	// Don't send the password hash to the client
	user.PasswordHash = ""
	return user, nil
}
