package calendar

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alexanderramin/cmsdash/internal/domain"
	"github.com/emersion/go-ical"
)

const productID = "-//cmsdash//EN"

// ErrNothingToExport is returned by EncodeICS for an empty event list; a
// VCALENDAR must carry at least one component.
var ErrNothingToExport = errors.New("no events to export")

// DecodeICS reads every VEVENT from r. Floating times are read in loc.
func DecodeICS(r io.Reader, loc *time.Location) ([]domain.CalendarEvent, error) {
	dec := ical.NewDecoder(r)
	var events []domain.CalendarEvent
	for {
		cal, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding calendar: %w", err)
		}
		for _, ev := range cal.Events() {
			e, err := fromICal(ev, loc)
			if err != nil {
				return nil, err
			}
			events = append(events, e)
		}
	}
	return events, nil
}

func fromICal(ev ical.Event, loc *time.Location) (domain.CalendarEvent, error) {
	var e domain.CalendarEvent
	uid, err := ev.Props.Text(ical.PropUID)
	if err != nil {
		return e, fmt.Errorf("reading UID: %w", err)
	}
	e.UID = uid
	e.ID = uid
	e.Source = domain.SourceICS

	if e.Title, err = ev.Props.Text(ical.PropSummary); err != nil {
		return e, fmt.Errorf("event %q: reading SUMMARY: %w", uid, err)
	}
	if e.Description, err = ev.Props.Text(ical.PropDescription); err != nil {
		return e, fmt.Errorf("event %q: reading DESCRIPTION: %w", uid, err)
	}
	if e.Location, err = ev.Props.Text(ical.PropLocation); err != nil {
		return e, fmt.Errorf("event %q: reading LOCATION: %w", uid, err)
	}

	start := ev.Props.Get(ical.PropDateTimeStart)
	if start == nil {
		return e, fmt.Errorf("event %q: missing DTSTART", uid)
	}
	e.AllDay = start.ValueType() == ical.ValueDate
	if e.Start, err = ev.DateTimeStart(loc); err != nil {
		return e, fmt.Errorf("event %q: reading DTSTART: %w", uid, err)
	}
	if e.End, err = ev.DateTimeEnd(loc); err != nil {
		return e, fmt.Errorf("event %q: reading DTEND: %w", uid, err)
	}
	return e, nil
}

// EncodeICS writes events as one VCALENDAR. All-day events keep DATE
// values; timed events are written in UTC.
func EncodeICS(w io.Writer, events []domain.CalendarEvent) error {
	if len(events) == 0 {
		return ErrNothingToExport
	}
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	stamp := time.Now().UTC()
	for _, e := range events {
		cal.Children = append(cal.Children, toICal(e, stamp))
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("encoding calendar: %w", err)
	}
	return nil
}

func toICal(e domain.CalendarEvent, stamp time.Time) *ical.Component {
	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, e.UID)
	ve.Props.SetText(ical.PropSummary, e.Title)
	ve.Props.SetDateTime(ical.PropDateTimeStamp, stamp)

	if e.AllDay {
		ve.Props.SetDate(ical.PropDateTimeStart, e.Start)
		ve.Props.SetDate(ical.PropDateTimeEnd, e.EffectiveEnd())
	} else {
		ve.Props.SetDateTime(ical.PropDateTimeStart, e.Start.UTC())
		ve.Props.SetDateTime(ical.PropDateTimeEnd, e.EffectiveEnd().UTC())
	}

	if e.Description != "" {
		ve.Props.SetText(ical.PropDescription, e.Description)
	}
	if loc := strings.TrimSpace(e.Location); loc != "" {
		ve.Props.SetText(ical.PropLocation, loc)
	}
	return ve
}
