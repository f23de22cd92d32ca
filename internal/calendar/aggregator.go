package calendar

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/cmsdash/internal/domain"
)

// SourceFailure records a source that could not be read.
type SourceFailure struct {
	Source string
	Err    error
}

// Agenda is the merged, ordered view over all sources.
type Agenda struct {
	Events   []domain.CalendarEvent
	Failures []SourceFailure
}

// Aggregator merges sources into a single agenda.
type Aggregator struct {
	sources []Source
	loc     *time.Location
	logger  *slog.Logger
}

func NewAggregator(logger *slog.Logger, loc *time.Location, sources ...Source) *Aggregator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Aggregator{sources: sources, loc: loc, logger: logger}
}

// allDaySlack widens the range asked of sources. An all-day event is a
// calendar date, so its instants move by up to a UTC offset once anchored
// to the aggregator's zone.
const allDaySlack = 24 * time.Hour

// Agenda loads [from, to) from every source. A failing source is logged and
// reported in Failures; the others still contribute. Events sharing a UID
// keep the copy from the earliest source. The result is ordered by start,
// then title, then source order.
func (a *Aggregator) Agenda(ctx context.Context, from, to time.Time) (Agenda, error) {
	var out Agenda
	seen := make(map[string]bool)

	for _, src := range a.sources {
		if err := ctx.Err(); err != nil {
			return Agenda{}, err
		}
		events, err := src.Events(ctx, from.Add(-allDaySlack), to.Add(allDaySlack))
		if err != nil {
			a.logger.Warn("calendar source failed", "source", src.Name(), "error", err)
			out.Failures = append(out.Failures, SourceFailure{Source: src.Name(), Err: err})
			continue
		}
		for _, e := range events {
			e = a.normalize(e)
			if !e.Overlaps(from, to) {
				continue
			}
			if e.UID != "" {
				if seen[e.UID] {
					a.logger.Debug("duplicate event skipped", "uid", e.UID, "source", src.Name())
					continue
				}
				seen[e.UID] = true
			}
			out.Events = append(out.Events, e)
		}
	}

	sort.SliceStable(out.Events, func(i, j int) bool {
		ei, ej := out.Events[i], out.Events[j]
		if !ei.Start.Equal(ej.Start) {
			return ei.Start.Before(ej.Start)
		}
		return ei.Title < ej.Title
	})
	if out.Events == nil {
		out.Events = []domain.CalendarEvent{}
	}
	return out, nil
}

// normalize puts timed events in the aggregator's zone and anchors all-day
// events to midnight of their own dates in that zone.
func (a *Aggregator) normalize(e domain.CalendarEvent) domain.CalendarEvent {
	e.Title = strings.TrimSpace(e.Title)
	e.Location = strings.TrimSpace(e.Location)
	if e.AllDay {
		e.AnchorAllDay(a.loc)
		return e
	}
	e.End = e.EffectiveEnd().In(a.loc)
	e.Start = e.Start.In(a.loc)
	return e
}
