package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/cmsdash/internal/calendar"
	"github.com/alexanderramin/cmsdash/internal/domain"
	"github.com/alexanderramin/cmsdash/internal/repository"
	"github.com/alexanderramin/cmsdash/internal/testutil"
	"github.com/alexanderramin/cmsdash/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSource struct{}

func (failingSource) Name() string { return "remote.ics" }

func (failingSource) Events(context.Context, time.Time, time.Time) ([]domain.CalendarEvent, error) {
	return nil, errors.New("no such file")
}

func setupCalendarService(t *testing.T, extra ...calendar.Source) CalendarService {
	t.Helper()
	events := repository.NewSQLiteEventRepo(testutil.NewTestDB(t))
	sources := append([]calendar.Source{calendar.NewStoreSource(events)}, extra...)
	agg := calendar.NewAggregator(nil, time.UTC, sources...)
	return NewCalendarService(events, agg)
}

var monday = time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

func TestCalendarService_AddAndAgenda(t *testing.T) {
	svc := setupCalendarService(t, failingSource{})
	ctx := context.Background()

	late := &domain.CalendarEvent{Title: "Retro", Start: monday.Add(16 * time.Hour)}
	early := &domain.CalendarEvent{Title: " Standup ", Start: monday.Add(9 * time.Hour), End: monday.Add(9*time.Hour + 15*time.Minute)}
	require.NoError(t, svc.AddEvent(ctx, late))
	require.NoError(t, svc.AddEvent(ctx, early))

	assert.NotEmpty(t, late.ID)
	assert.True(t, strings.HasSuffix(late.UID, "@cmsdash"))
	assert.True(t, late.Start.Add(domain.DefaultEventDuration).Equal(late.End))
	assert.Equal(t, "Standup", early.Title)

	agenda, err := svc.Agenda(ctx, monday, monday.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, agenda.Events, 2)
	assert.Equal(t, "Standup", agenda.Events[0].Title)
	assert.Equal(t, "Retro", agenda.Events[1].Title)
	require.Len(t, agenda.Failures, 1)
	assert.Equal(t, "remote.ics", agenda.Failures[0].Source)
}

func TestCalendarService_AddRejects(t *testing.T) {
	svc := setupCalendarService(t)
	ctx := context.Background()

	err := svc.AddEvent(ctx, &domain.CalendarEvent{Title: "", Start: monday})
	assert.ErrorIs(t, err, validation.ErrInvalid)

	err = svc.AddEvent(ctx, &domain.CalendarEvent{Title: "No start"})
	assert.ErrorIs(t, err, validation.ErrInvalid)

	err = svc.AddEvent(ctx, &domain.CalendarEvent{Title: "Backwards", Start: monday, End: monday.Add(-time.Hour)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ends before it starts")

	_, err = svc.Agenda(ctx, monday, monday)
	assert.Error(t, err)
}

func TestCalendarService_RemoveAndExport(t *testing.T) {
	svc := setupCalendarService(t)
	ctx := context.Background()

	keep := &domain.CalendarEvent{Title: "Launch", Start: monday.Add(10 * time.Hour)}
	drop := &domain.CalendarEvent{Title: "Cancelled", Start: monday.Add(11 * time.Hour)}
	require.NoError(t, svc.AddEvent(ctx, keep))
	require.NoError(t, svc.AddEvent(ctx, drop))
	require.NoError(t, svc.RemoveEvent(ctx, drop.ID))
	assert.ErrorIs(t, svc.RemoveEvent(ctx, drop.ID), repository.ErrNotFound)

	var buf bytes.Buffer
	n, err := svc.Export(ctx, &buf, monday, monday.AddDate(0, 0, 7))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Contains(t, buf.String(), "SUMMARY:Launch")
	assert.NotContains(t, buf.String(), "Cancelled")

	var empty bytes.Buffer
	_, err = svc.Export(ctx, &empty, monday.AddDate(1, 0, 0), monday.AddDate(1, 0, 1))
	assert.ErrorIs(t, err, calendar.ErrNothingToExport)
}

func TestCalendarService_AddAllDayStoresCalendarDate(t *testing.T) {
	sydney, err := time.LoadLocation("Australia/Sydney")
	require.NoError(t, err)
	svc := setupCalendarService(t)
	ctx := context.Background()

	// Local midnight in Sydney is still the previous day in UTC.
	e := &domain.CalendarEvent{Title: "Open day", Start: time.Date(2026, 10, 19, 0, 0, 0, 0, sydney), AllDay: true}
	require.NoError(t, svc.AddEvent(ctx, e))
	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), e.Start)
	assert.Equal(t, time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC), e.End)

	agenda, err := svc.Agenda(ctx, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, agenda.Events, 1)
}
