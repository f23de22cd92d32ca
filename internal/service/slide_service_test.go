package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/cmsdash/internal/domain"
	"github.com/alexanderramin/cmsdash/internal/repository"
	"github.com/alexanderramin/cmsdash/internal/testutil"
	"github.com/alexanderramin/cmsdash/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSlideService(t *testing.T) SlideService {
	t.Helper()
	return NewSlideService(repository.NewSQLiteSlideRepo(testutil.NewTestDB(t)))
}

func slideTitles(slides []domain.Slide) []string {
	out := make([]string, 0, len(slides))
	for _, s := range slides {
		out = append(out, s.Title)
	}
	return out
}

func TestSlideService_AddAppendsAndOrders(t *testing.T) {
	svc := setupSlideService(t)
	ctx := context.Background()

	first := testutil.NewTestSlide("first")
	require.NoError(t, svc.Add(ctx, first, nil))
	second := testutil.NewTestSlide("second")
	require.NoError(t, svc.Add(ctx, second, nil))
	front := testutil.NewTestSlide("front")
	require.NoError(t, svc.Add(ctx, front, intPtr(-1)))
	tie := testutil.NewTestSlide("tie")
	require.NoError(t, svc.Add(ctx, tie, intPtr(0)))

	assert.Equal(t, 0, first.Order)
	assert.Equal(t, 1, second.Order)

	slides, err := svc.List(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"front", "first", "tie", "second"}, slideTitles(slides))
}

func TestSlideService_ActiveOnlyAndMove(t *testing.T) {
	svc := setupSlideService(t)
	ctx := context.Background()

	a := testutil.NewTestSlide("a")
	b := testutil.NewTestSlide("b", testutil.Inactive())
	c := testutil.NewTestSlide("c")
	for _, s := range []*domain.Slide{a, b, c} {
		require.NoError(t, svc.Add(ctx, s, nil))
	}

	active, err := svc.List(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, slideTitles(active))

	require.NoError(t, svc.Move(ctx, c.ID, -1))
	require.NoError(t, svc.SetActive(ctx, b.ID, true))
	all, err := svc.List(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, slideTitles(all))

	assert.ErrorIs(t, svc.Move(ctx, "missing", 1), repository.ErrNotFound)
}

func TestSlideService_Validation(t *testing.T) {
	svc := setupSlideService(t)
	ctx := context.Background()

	noImage := testutil.NewTestSlide("x")
	noImage.ImageURL = ""
	err := svc.Add(ctx, noImage, nil)
	require.ErrorIs(t, err, validation.ErrInvalid)

	badLink := testutil.NewTestSlide("y")
	badLink.LinkURL = "not a link"
	assert.ErrorIs(t, svc.Add(ctx, badLink, nil), validation.ErrInvalid)
}

func TestSlideService_Remove(t *testing.T) {
	svc := setupSlideService(t)
	ctx := context.Background()

	s := testutil.NewTestSlide("gone")
	require.NoError(t, svc.Add(ctx, s, nil))
	require.NoError(t, svc.Remove(ctx, s.ID))

	_, err := svc.Get(ctx, s.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, svc.Remove(ctx, s.ID), repository.ErrNotFound)
}
