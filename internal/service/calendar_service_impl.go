package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alexanderramin/cmsdash/internal/calendar"
	"github.com/alexanderramin/cmsdash/internal/domain"
	"github.com/alexanderramin/cmsdash/internal/repository"
	"github.com/alexanderramin/cmsdash/internal/validation"
	"github.com/google/uuid"
)

const uidDomain = "@cmsdash"

type calendarService struct {
	events     repository.EventRepo
	aggregator *calendar.Aggregator
	observer   UseCaseObserver
}

func NewCalendarService(events repository.EventRepo, aggregator *calendar.Aggregator, observers ...UseCaseObserver) CalendarService {
	return &calendarService{events: events, aggregator: aggregator, observer: useCaseObserverOrNoop(observers)}
}

func (s *calendarService) AddEvent(ctx context.Context, e *domain.CalendarEvent) (err error) {
	defer observe(ctx, s.observer, "add-event", map[string]any{"title": e.Title})(&err)

	e.Title = strings.TrimSpace(e.Title)
	if err = validation.Struct(e); err != nil {
		return err
	}
	if err = e.ValidateSpan(); err != nil {
		return err
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.UID == "" {
		e.UID = e.ID + uidDomain
	}
	e.Source = domain.SourceStore
	e.AnchorAllDay(time.UTC)
	e.End = e.EffectiveEnd()
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now
	return s.events.Create(ctx, e)
}

func (s *calendarService) RemoveEvent(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "remove-event", map[string]any{"event_id": id})(&err)
	return s.events.Delete(ctx, id)
}

func (s *calendarService) Agenda(ctx context.Context, from, to time.Time) (agenda calendar.Agenda, err error) {
	fields := map[string]any{"from": from.Format(time.DateOnly), "to": to.Format(time.DateOnly)}
	defer observe(ctx, s.observer, "agenda", fields)(&err)

	if !to.After(from) {
		return calendar.Agenda{}, fmt.Errorf("agenda range ends before it starts")
	}
	agenda, err = s.aggregator.Agenda(ctx, from, to)
	if err != nil {
		return calendar.Agenda{}, err
	}
	fields["events"] = len(agenda.Events)
	fields["failed_sources"] = len(agenda.Failures)
	return agenda, nil
}

// Export writes the merged agenda for [from, to) as iCalendar and returns
// the number of events written.
func (s *calendarService) Export(ctx context.Context, w io.Writer, from, to time.Time) (int, error) {
	agenda, err := s.Agenda(ctx, from, to)
	if err != nil {
		return 0, err
	}
	if err := calendar.EncodeICS(w, agenda.Events); err != nil {
		return 0, err
	}
	return len(agenda.Events), nil
}
