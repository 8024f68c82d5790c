package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/isdelr/todo-be/internal/database"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	ctx := context.Background()
	db, err := database.Open(ctx, database.DriverSQLite, filepath.Join(t.TempDir(), "todo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate(ctx))
	return db
}

// registerUser creates a user and returns its id.
func registerUser(t *testing.T, users *UserService, email string) int64 {
	t.Helper()
	user, err := users.Register(context.Background(), email, "password")
	require.NoError(t, err)
	return user.ID
}
