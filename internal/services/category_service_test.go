package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAndListCategories(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	owner := registerUser(t, NewUserService(db), "a@x.com")
	categories := NewCategoryService(db)

	empty, err := categories.List(ctx, owner)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for _, name := range []string{"work", "home", "공부"} {
		got, err := categories.Add(ctx, owner, name)
		require.NoError(t, err)
		assert.Equal(t, name, got)
	}

	names, err := categories.List(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, []string{"work", "home", "공부"}, names)
}

func TestAddCategoryValidationAndConflict(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserService(db)
	alice := registerUser(t, users, "alice@x.com")
	bob := registerUser(t, users, "bob@x.com")
	categories := NewCategoryService(db)

	_, err := categories.Add(ctx, alice, "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = categories.Add(ctx, alice, "work")
	require.NoError(t, err)

	_, err = categories.Add(ctx, alice, "work")
	assert.ErrorIs(t, err, ErrConflict)

	// Names are only unique per user.
	_, err = categories.Add(ctx, bob, "work")
	assert.NoError(t, err)

	names, err := categories.List(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, []string{"work"}, names)
}

func TestDeleteCategory(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserService(db)
	alice := registerUser(t, users, "alice@x.com")
	bob := registerUser(t, users, "bob@x.com")
	categories := NewCategoryService(db)
	todos := NewTodoService(db)

	_, err := categories.Add(ctx, alice, "work")
	require.NoError(t, err)
	_, err = todos.Create(ctx, alice, CreateTodoInput{Content: "report", Category: "work"})
	require.NoError(t, err)

	// Bob cannot delete Alice's category.
	err = categories.Delete(ctx, bob, "work")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, categories.Delete(ctx, alice, "work"))

	err = categories.Delete(ctx, alice, "work")
	assert.ErrorIs(t, err, ErrNotFound)

	names, err := categories.List(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, names)

	// Todos keep their free-text category after the category is gone.
	work, err := todos.List(ctx, alice, "work")
	require.NoError(t, err)
	require.Len(t, work, 1)
	assert.Equal(t, "work", work[0].Category)
}
