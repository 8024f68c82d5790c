package services

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/isdelr/todo-be/internal/database"
	"github.com/isdelr/todo-be/internal/models"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTodoDefaults(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	owner := registerUser(t, NewUserService(db), "a@x.com")
	todos := NewTodoService(db)

	todo, err := todos.Create(ctx, owner, CreateTodoInput{Content: "buy milk"})
	require.NoError(t, err)
	assert.Positive(t, todo.ID)
	assert.Equal(t, "buy milk", todo.Content)
	assert.False(t, todo.IsDone)
	assert.Equal(t, models.CategoryAll, todo.Category)
	assert.False(t, todo.StartDate.Valid)
	assert.False(t, todo.Deadline.Valid)
}

func TestCreateTodoDates(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	owner := registerUser(t, NewUserService(db), "a@x.com")
	todos := NewTodoService(db)

	todo, err := todos.Create(ctx, owner, CreateTodoInput{
		Content:   "report",
		Category:  "work",
		StartDate: "2025-01-10",
		Deadline:  "next friday",
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-01-10", todo.StartDate.String())
	assert.False(t, todo.Deadline.Valid, "unparsable dates are stored as no date")

	list, err := todos.List(ctx, owner, "work")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "2025-01-10", list[0].StartDate.String())
	assert.False(t, list[0].Deadline.Valid)
}

func TestCreateTodoRequiresContent(t *testing.T) {
	db := newTestDB(t)
	owner := registerUser(t, NewUserService(db), "a@x.com")

	_, err := NewTodoService(db).Create(context.Background(), owner, CreateTodoInput{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestListTodosByCategory(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	owner := registerUser(t, NewUserService(db), "a@x.com")
	todos := NewTodoService(db)

	for _, in := range []CreateTodoInput{
		{Content: "one"},
		{Content: "two", Category: "work"},
		{Content: "three", Category: "home"},
		{Content: "four", Category: "work"},
	} {
		_, err := todos.Create(ctx, owner, in)
		require.NoError(t, err)
	}

	all, err := todos.List(ctx, owner, models.CategoryAll)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "three", "four"}, contents(all))

	unfiltered, err := todos.List(ctx, owner, "")
	require.NoError(t, err)
	assert.Len(t, unfiltered, 4)

	work, err := todos.List(ctx, owner, "work")
	require.NoError(t, err)
	assert.Equal(t, []string{"two", "four"}, contents(work))

	none, err := todos.List(ctx, owner, "missing")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestToggleTodoTwiceRestores(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	owner := registerUser(t, NewUserService(db), "a@x.com")
	todos := NewTodoService(db)

	todo, err := todos.Create(ctx, owner, CreateTodoInput{Content: "flip"})
	require.NoError(t, err)

	toggled, err := todos.Toggle(ctx, owner, todo.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsDone)

	list, err := todos.List(ctx, owner, "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].IsDone, "toggle is persisted")

	restored, err := todos.Toggle(ctx, owner, todo.ID)
	require.NoError(t, err)
	assert.False(t, restored.IsDone)
}

func TestTodoOwnershipIsolation(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserService(db)
	alice := registerUser(t, users, "alice@x.com")
	bob := registerUser(t, users, "bob@x.com")
	todos := NewTodoService(db)

	todo, err := todos.Create(ctx, alice, CreateTodoInput{Content: "private"})
	require.NoError(t, err)

	bobs, err := todos.List(ctx, bob, "")
	require.NoError(t, err)
	assert.Empty(t, bobs)

	_, err = todos.Toggle(ctx, bob, todo.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	err = todos.Delete(ctx, bob, todo.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	// Alice's todo is untouched.
	list, err := todos.List(ctx, alice, "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].IsDone)
}

func TestDeleteTodo(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	owner := registerUser(t, NewUserService(db), "a@x.com")
	todos := NewTodoService(db)

	todo, err := todos.Create(ctx, owner, CreateTodoInput{Content: "gone soon"})
	require.NoError(t, err)

	require.NoError(t, todos.Delete(ctx, owner, todo.ID))

	err = todos.Delete(ctx, owner, todo.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = todos.Toggle(ctx, owner, todo.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = todos.Delete(ctx, owner, 12345)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateTodoRollsBackOnFailure(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()
	db := database.New(sqlx.NewDb(mockDB, database.DriverSQLite), database.DriverSQLite)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO todos \(content,is_done,category,user_id,start_date,deadline\) VALUES \(\?,\?,\?,\?,\?,\?\) RETURNING id`).
		WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	_, err = NewTodoService(db).Create(context.Background(), 1, CreateTodoInput{Content: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk I/O error")
	assert.NotErrorIs(t, err, ErrValidation)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestToggleTodoRollsBackOnUpdateFailure(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()
	db := database.New(sqlx.NewDb(mockDB, database.DriverSQLite), database.DriverSQLite)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM todos WHERE id = \?`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(todoColumns).AddRow(3, "x", false, models.CategoryAll, 1, nil, nil))
	mock.ExpectExec(`UPDATE todos SET is_done = \? WHERE id = \?`).
		WithArgs(true, int64(3)).
		WillReturnError(errors.New("database is locked"))
	mock.ExpectRollback()

	_, err = NewTodoService(db).Toggle(context.Background(), 1, 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is locked")

	require.NoError(t, mock.ExpectationsWereMet())
}

func contents(todos []models.Todo) []string {
	out := make([]string, 0, len(todos))
	for _, todo := range todos {
		out = append(out, todo.Content)
	}
	return out
}
