package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/cmsdash/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRepo_CreateAndGet(t *testing.T) {
	repo := NewSQLiteEventRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	e := testutil.NewTestEvent("Standup", start, testutil.WithEnd(start.Add(15*time.Minute)))
	e.Location = "Room 1"
	require.NoError(t, repo.Create(ctx, e))

	got, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, e.UID, got.UID)
	assert.Equal(t, "Room 1", got.Location)
	assert.True(t, start.Equal(got.Start))
	assert.True(t, start.Add(15*time.Minute).Equal(got.End))

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEventRepo_StoresEffectiveEnd(t *testing.T) {
	repo := NewSQLiteEventRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	e := testutil.NewTestEvent("Holiday", start, testutil.AllDay(), testutil.WithEnd(time.Time{}))
	require.NoError(t, repo.Create(ctx, e))

	got, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.True(t, got.AllDay)
	assert.True(t, start.AddDate(0, 0, 1).Equal(got.End))
}

func TestEventRepo_ListBetween(t *testing.T) {
	repo := NewSQLiteEventRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	before := testutil.NewTestEvent("before", day.Add(-2*time.Hour))
	straddle := testutil.NewTestEvent("straddle", day.Add(-30*time.Minute))
	inside := testutil.NewTestEvent("inside", day.Add(10*time.Hour))
	after := testutil.NewTestEvent("after", day.AddDate(0, 0, 1))
	require.NoError(t, repo.Create(ctx, after))
	require.NoError(t, repo.Create(ctx, inside))
	require.NoError(t, repo.Create(ctx, before))
	require.NoError(t, repo.Create(ctx, straddle))

	events, err := repo.ListBetween(ctx, day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "straddle", events[0].Title)
	assert.Equal(t, "inside", events[1].Title)
}

func TestEventRepo_UpdateDelete(t *testing.T) {
	repo := NewSQLiteEventRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	e := testutil.NewTestEvent("Review", start)
	require.NoError(t, repo.Create(ctx, e))

	e.Title = "Design review"
	e.Start = start.Add(time.Hour)
	e.End = start.Add(3 * time.Hour)
	require.NoError(t, repo.Update(ctx, e))

	got, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Design review", got.Title)
	assert.True(t, start.Add(time.Hour).Equal(got.Start))

	require.NoError(t, repo.Delete(ctx, e.ID))
	assert.ErrorIs(t, repo.Delete(ctx, e.ID), ErrNotFound)
}
