package calendar

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/cmsdash/internal/domain"
	"github.com/alexanderramin/cmsdash/internal/repository"
	"github.com/alexanderramin/cmsdash/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	name   string
	events []domain.CalendarEvent
	err    error
}

func (s staticSource) Name() string { return s.name }

func (s staticSource) Events(context.Context, time.Time, time.Time) ([]domain.CalendarEvent, error) {
	return s.events, s.err
}

func ev(uid, title string, start time.Time) domain.CalendarEvent {
	return domain.CalendarEvent{UID: uid, Title: title, Start: start}
}

func titles(events []domain.CalendarEvent) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.Title)
	}
	return out
}

var day = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func TestAgenda_MergesAndSorts(t *testing.T) {
	a := NewAggregator(nil, time.UTC,
		staticSource{name: "one", events: []domain.CalendarEvent{
			ev("1", "late", day.Add(15*time.Hour)),
			ev("2", "b-early", day.Add(9*time.Hour)),
		}},
		staticSource{name: "two", events: []domain.CalendarEvent{
			ev("3", "a-early", day.Add(9*time.Hour)),
			ev("4", "first", day.Add(7*time.Hour)),
		}},
	)

	agenda, err := a.Agenda(context.Background(), day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Empty(t, agenda.Failures)
	assert.Equal(t, []string{"first", "a-early", "b-early", "late"}, titles(agenda.Events))
}

func TestAgenda_TiesKeepSourceOrder(t *testing.T) {
	at := day.Add(9 * time.Hour)
	a := NewAggregator(nil, time.UTC,
		staticSource{name: "one", events: []domain.CalendarEvent{ev("1", "same", at)}},
		staticSource{name: "two", events: []domain.CalendarEvent{ev("2", "same", at)}},
	)

	agenda, err := a.Agenda(context.Background(), day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, agenda.Events, 2)
	assert.Equal(t, "1", agenda.Events[0].UID)
	assert.Equal(t, "2", agenda.Events[1].UID)
}

func TestAgenda_DedupesByUIDFirstSourceWins(t *testing.T) {
	at := day.Add(9 * time.Hour)
	a := NewAggregator(nil, time.UTC,
		staticSource{name: "store", events: []domain.CalendarEvent{ev("dup", "from store", at)}},
		staticSource{name: "ics", events: []domain.CalendarEvent{ev("dup", "from ics", at), ev("", "no uid", at), ev("", "no uid", at)}},
	)

	agenda, err := a.Agenda(context.Background(), day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, []string{"from store", "no uid", "no uid"}, titles(agenda.Events))
}

func TestAgenda_ToleratesFailingSource(t *testing.T) {
	boom := errors.New("unreachable")
	a := NewAggregator(nil, time.UTC,
		staticSource{name: "broken", err: boom},
		staticSource{name: "ok", events: []domain.CalendarEvent{ev("1", "kept", day.Add(time.Hour))}},
	)

	agenda, err := a.Agenda(context.Background(), day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, []string{"kept"}, titles(agenda.Events))
	require.Len(t, agenda.Failures, 1)
	assert.Equal(t, "broken", agenda.Failures[0].Source)
	assert.ErrorIs(t, agenda.Failures[0].Err, boom)
}

func TestAgenda_Normalizes(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	start := day.Add(9 * time.Hour)
	backwards := domain.CalendarEvent{UID: "x", Title: "  padded  ", Start: start, End: start.Add(-time.Hour)}
	a := NewAggregator(nil, tokyo, staticSource{name: "s", events: []domain.CalendarEvent{backwards}})

	agenda, err := a.Agenda(context.Background(), day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, agenda.Events, 1)

	got := agenda.Events[0]
	assert.Equal(t, "padded", got.Title)
	assert.Equal(t, tokyo, got.Start.Location())
	assert.True(t, start.Equal(got.Start))
	assert.True(t, start.Add(domain.DefaultEventDuration).Equal(got.End))
}

func TestAgenda_EmptyAndCancelled(t *testing.T) {
	a := NewAggregator(nil, nil)
	agenda, err := a.Agenda(context.Background(), day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.NotNil(t, agenda.Events)
	assert.Empty(t, agenda.Events)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewAggregator(nil, nil, staticSource{name: "s"}).Agenda(ctx, day, day)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSources_StoreAndICSFile(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewSQLiteEventRepo(testutil.NewTestDB(t))
	stored := testutil.NewTestEvent("Stored", day.Add(8*time.Hour), testutil.WithUID("launch@example.com"))
	require.NoError(t, repo.Create(ctx, stored))

	path := filepath.Join(t.TempDir(), "team.ics")
	require.NoError(t, os.WriteFile(path, []byte(sampleICS), 0o644))

	file := NewICSFileSource(path, time.UTC)
	assert.Equal(t, "team.ics", file.Name())

	a := NewAggregator(nil, time.UTC, NewStoreSource(repo), file)
	agenda, err := a.Agenda(ctx, day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	// The file's copy of launch@example.com loses to the stored one, and
	// the events on later days fall outside the range.
	assert.Equal(t, []string{"Stored"}, titles(agenda.Events))

	week, err := a.Agenda(ctx, day, day.AddDate(0, 0, 7))
	require.NoError(t, err)
	assert.Equal(t, []string{"Stored", "Floating", "Holiday"}, titles(week.Events))
}

func TestICSFileSource_MissingFile(t *testing.T) {
	src := NewICSFileSource(filepath.Join(t.TempDir(), "nope.ics"), nil)
	_, err := src.Events(context.Background(), day, day.AddDate(0, 0, 1))
	assert.Error(t, err)
}

const allDayICS = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//example//dates//EN\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:fair@example.com\r\n" +
	"DTSTAMP:20261001T000000Z\r\n" +
	"DTSTART;VALUE=DATE:20261019\r\n" +
	"DTEND;VALUE=DATE:20261020\r\n" +
	"SUMMARY:Book fair\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func TestAgenda_AllDayKeepsCalendarDateInZone(t *testing.T) {
	sydney, err := time.LoadLocation("Australia/Sydney")
	require.NoError(t, err)
	ctx := context.Background()

	repo := repository.NewSQLiteEventRepo(testutil.NewTestDB(t))
	oct19 := testutil.NewTestEvent("Open day", time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), testutil.AllDay())
	oct20 := testutil.NewTestEvent("Staff day", time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC), testutil.AllDay())
	require.NoError(t, repo.Create(ctx, oct19))
	require.NoError(t, repo.Create(ctx, oct20))

	path := filepath.Join(t.TempDir(), "dates.ics")
	require.NoError(t, os.WriteFile(path, []byte(allDayICS), 0o644))

	a := NewAggregator(nil, sydney, NewStoreSource(repo), NewICSFileSource(path, sydney))

	midnight19 := time.Date(2026, 10, 19, 0, 0, 0, 0, sydney)
	agenda, err := a.Agenda(ctx, midnight19, midnight19.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, []string{"Book fair", "Open day"}, titles(agenda.Events))
	for _, e := range agenda.Events {
		assert.True(t, midnight19.Equal(e.Start), e.Title)
		assert.True(t, midnight19.AddDate(0, 0, 1).Equal(e.End), e.Title)
	}

	midnight20 := midnight19.AddDate(0, 0, 1)
	agenda, err = a.Agenda(ctx, midnight20, midnight20.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, []string{"Staff day"}, titles(agenda.Events))
}

func TestAgenda_AllDayFoundBehindUTC(t *testing.T) {
	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	ctx := context.Background()

	repo := repository.NewSQLiteEventRepo(testutil.NewTestDB(t))
	e := testutil.NewTestEvent("Open day", time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), testutil.AllDay())
	require.NoError(t, repo.Create(ctx, e))

	a := NewAggregator(nil, newYork, NewStoreSource(repo))

	// 20:00 to midnight New York lies after the stored UTC day has ended.
	evening := time.Date(2026, 10, 19, 20, 0, 0, 0, newYork)
	agenda, err := a.Agenda(ctx, evening, evening.Add(4*time.Hour))
	require.NoError(t, err)
	require.Len(t, agenda.Events, 1)
	assert.True(t, time.Date(2026, 10, 19, 0, 0, 0, 0, newYork).Equal(agenda.Events[0].Start))

	// Early on the 20th in New York is still the 19th in UTC.
	next := time.Date(2026, 10, 20, 0, 0, 0, 0, newYork)
	agenda, err = a.Agenda(ctx, next, next.Add(time.Hour))
	require.NoError(t, err)
	assert.Empty(t, agenda.Events)
}

func TestAgenda_DropsEventsOutsideRange(t *testing.T) {
	a := NewAggregator(nil, time.UTC, staticSource{name: "s", events: []domain.CalendarEvent{
		ev("1", "yesterday", day.Add(-3*time.Hour)),
		ev("2", "today", day.Add(3*time.Hour)),
		ev("3", "tomorrow", day.AddDate(0, 0, 1)),
	}})

	agenda, err := a.Agenda(context.Background(), day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, []string{"today"}, titles(agenda.Events))
}
