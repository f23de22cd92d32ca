package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/cmsdash/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlideRepo_CRUD(t *testing.T) {
	repo := NewSQLiteSlideRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	s := testutil.NewTestSlide("Spring sale", testutil.WithSlideOrder(2))
	s.LinkURL = "https://example.com/sale"
	require.NoError(t, repo.Create(ctx, s))

	got, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Spring sale", got.Title)
	assert.Equal(t, s.ImageURL, got.ImageURL)
	assert.Equal(t, "https://example.com/sale", got.LinkURL)
	assert.Equal(t, 2, got.Order)
	assert.True(t, got.Active)

	s.Active = false
	s.Order = 5
	require.NoError(t, repo.Update(ctx, s))
	got, err = repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
	assert.Equal(t, 5, got.Order)

	require.NoError(t, repo.Delete(ctx, s.ID))
	_, err = repo.GetByID(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSlideRepo_List(t *testing.T) {
	repo := NewSQLiteSlideRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	empty, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, repo.Create(ctx, testutil.NewTestSlide("one")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestSlide("two", testutil.Inactive())))

	slides, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, slides, 2)
	assert.Equal(t, "one", slides[0].Title)
	assert.False(t, slides[1].Active)
}
