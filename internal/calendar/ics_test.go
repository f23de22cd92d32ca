package calendar

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/cmsdash/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// crlf turns a readable fixture into wire-format iCalendar text.
func crlf(lines ...string) string {
	return strings.Join(lines, "\r\n") + "\r\n"
}

var sampleICS = crlf(
	"BEGIN:VCALENDAR",
	"VERSION:2.0",
	"PRODID:-//test//EN",
	"BEGIN:VEVENT",
	"UID:launch@example.com",
	"DTSTAMP:20260301T000000Z",
	"SUMMARY:Site launch",
	"LOCATION:HQ",
	"DTSTART:20260310T090000Z",
	"DTEND:20260310T100000Z",
	"END:VEVENT",
	"BEGIN:VEVENT",
	"UID:holiday@example.com",
	"DTSTAMP:20260301T000000Z",
	"SUMMARY:Holiday",
	"DTSTART;VALUE=DATE:20260312",
	"END:VEVENT",
	"BEGIN:VEVENT",
	"UID:floating@example.com",
	"DTSTAMP:20260301T000000Z",
	"SUMMARY:Floating",
	"DTSTART:20260311T140000",
	"END:VEVENT",
	"END:VCALENDAR",
)

func TestDecodeICS(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	events, err := DecodeICS(strings.NewReader(sampleICS), berlin)
	require.NoError(t, err)
	require.Len(t, events, 3)

	launch := events[0]
	assert.Equal(t, "launch@example.com", launch.UID)
	assert.Equal(t, "Site launch", launch.Title)
	assert.Equal(t, "HQ", launch.Location)
	assert.Equal(t, domain.SourceICS, launch.Source)
	assert.False(t, launch.AllDay)
	assert.True(t, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC).Equal(launch.Start))
	assert.True(t, time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC).Equal(launch.End))

	holiday := events[1]
	assert.True(t, holiday.AllDay)
	assert.Equal(t, 12, holiday.Start.Day())
	assert.Equal(t, 13, holiday.EffectiveEnd().Day())

	floating := events[2]
	assert.True(t, time.Date(2026, 3, 11, 14, 0, 0, 0, berlin).Equal(floating.Start))
	assert.True(t, floating.Start.Add(domain.DefaultEventDuration).Equal(floating.EffectiveEnd()))
}

func TestDecodeICS_MissingStart(t *testing.T) {
	doc := crlf(
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//test//EN",
		"BEGIN:VEVENT",
		"UID:broken",
		"DTSTAMP:20260301T000000Z",
		"SUMMARY:No start",
		"END:VEVENT",
		"END:VCALENDAR",
	)
	_, err := DecodeICS(strings.NewReader(doc), time.UTC)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing DTSTART")
}

func TestDecodeICS_Malformed(t *testing.T) {
	_, err := DecodeICS(strings.NewReader("BEGIN:VCALENDAR\r\nnot a property\r\n"), time.UTC)
	assert.Error(t, err)
}

func TestEncodeICS_ReadsBack(t *testing.T) {
	start := time.Date(2026, 5, 1, 8, 30, 0, 0, time.UTC)
	events := []domain.CalendarEvent{
		{UID: "a@cmsdash", Title: "Editorial", Location: "Room 2", Start: start, End: start.Add(45 * time.Minute)},
		{UID: "b@cmsdash", Title: "Press day", Start: time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC), AllDay: true},
	}

	var buf bytes.Buffer
	require.NoError(t, EncodeICS(&buf, events))
	assert.Contains(t, buf.String(), "PRODID:"+productID)
	assert.Contains(t, buf.String(), "DTSTART;VALUE=DATE:20260502")

	back, err := DecodeICS(&buf, time.UTC)
	require.NoError(t, err)
	require.Len(t, back, 2)
	assert.Equal(t, "Editorial", back[0].Title)
	assert.Equal(t, "Room 2", back[0].Location)
	assert.True(t, start.Equal(back[0].Start))
	assert.True(t, start.Add(45*time.Minute).Equal(back[0].End))
	assert.True(t, back[1].AllDay)
}

func TestEncodeICS_Empty(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, EncodeICS(&buf, nil), ErrNothingToExport)
	assert.Zero(t, buf.Len())
}
