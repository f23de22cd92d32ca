package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/cmsdash/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuRepo_CRUD(t *testing.T) {
	repo := NewSQLiteMenuRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	m := testutil.NewTestMenu("Main", testutil.WithSlug("main"))
	require.NoError(t, repo.Create(ctx, m))

	got, err := repo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Main", got.Name)
	assert.Equal(t, "main", got.Slug)

	bySlug, err := repo.GetBySlug(ctx, "main")
	require.NoError(t, err)
	assert.Equal(t, m.ID, bySlug.ID)

	m.Name = "Primary"
	require.NoError(t, repo.Update(ctx, m))
	got, err = repo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Primary", got.Name)

	require.NoError(t, repo.Delete(ctx, m.ID))
	_, err = repo.GetByID(ctx, m.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, m.ID), ErrNotFound)
}

func TestMenuRepo_ListSortedByName(t *testing.T) {
	repo := NewSQLiteMenuRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	for _, name := range []string{"Footer", "Alpha", "Main"} {
		require.NoError(t, repo.Create(ctx, testutil.NewTestMenu(name)))
	}

	menus, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, menus, 3)
	assert.Equal(t, "Alpha", menus[0].Name)
	assert.Equal(t, "Footer", menus[1].Name)
	assert.Equal(t, "Main", menus[2].Name)
}

func TestMenuRepo_SlugUnique(t *testing.T) {
	repo := NewSQLiteMenuRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestMenu("A", testutil.WithSlug("same"))))
	err := repo.Create(ctx, testutil.NewTestMenu("B", testutil.WithSlug("same")))
	assert.Error(t, err)
}

func TestMenuRepo_DeleteCascadesItems(t *testing.T) {
	database := testutil.NewTestDB(t)
	menus := NewSQLiteMenuRepo(database)
	items := NewSQLiteMenuItemRepo(database)
	ctx := context.Background()

	m := testutil.NewTestMenu("Main")
	require.NoError(t, menus.Create(ctx, m))
	require.NoError(t, items.Create(ctx, testutil.NewTestMenuItem(m.ID, "Home")))

	require.NoError(t, menus.Delete(ctx, m.ID))

	left, err := items.ListByMenu(ctx, m.ID)
	require.NoError(t, err)
	assert.Empty(t, left)
}
