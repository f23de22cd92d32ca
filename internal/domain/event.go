package domain

import (
	"fmt"
	"time"
)

// CalendarEvent is a single agenda entry, either stored locally or read
// from an iCalendar source.
type CalendarEvent struct {
	ID          string      `json:"id"`
	UID         string      `json:"uid"`
	Title       string      `json:"title" validate:"required,max=200"`
	Description string      `json:"description"`
	Location    string      `json:"location"`
	Start       time.Time   `json:"start" validate:"required"`
	End         time.Time   `json:"end"`
	AllDay      bool        `json:"all_day"`
	Source      EventSource `json:"source"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// DefaultEventDuration is applied to timed events that have no usable end.
const DefaultEventDuration = time.Hour

// CalendarDate returns midnight of t's calendar date in loc. All-day events
// are stored on UTC midnight and re-anchored to the viewer's zone for display.
func CalendarDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// AnchorAllDay moves an all-day event's dates to midnight in loc, keeping
// their calendar dates. End becomes the effective end. Timed events are
// left alone.
func (e *CalendarEvent) AnchorAllDay(loc *time.Location) {
	if !e.AllDay {
		return
	}
	end := e.EffectiveEnd()
	e.Start = CalendarDate(e.Start, loc)
	e.End = CalendarDate(end, loc)
	if !e.End.After(e.Start) {
		e.End = e.Start.AddDate(0, 0, 1)
	}
}

// ValidateSpan checks that End is not before Start. A zero End is allowed.
func (e *CalendarEvent) ValidateSpan() error {
	if !e.End.IsZero() && e.End.Before(e.Start) {
		return fmt.Errorf("event %q ends before it starts", e.Title)
	}
	return nil
}

// EffectiveEnd returns End, or a default end derived from Start when End
// is missing or not after Start. All-day events default to the next day.
func (e *CalendarEvent) EffectiveEnd() time.Time {
	if e.End.After(e.Start) {
		return e.End
	}
	if e.AllDay {
		return e.Start.AddDate(0, 0, 1)
	}
	return e.Start.Add(DefaultEventDuration)
}

// Overlaps reports whether the event intersects the half-open range [from, to).
func (e *CalendarEvent) Overlaps(from, to time.Time) bool {
	return e.Start.Before(to) && e.EffectiveEnd().After(from)
}
