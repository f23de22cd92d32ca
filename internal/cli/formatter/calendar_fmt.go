package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/cmsdash/internal/calendar"
	"github.com/alexanderramin/cmsdash/internal/domain"
)

// FormatAgenda renders events grouped by local day. Failed sources are
// listed after the events.
func FormatAgenda(agenda calendar.Agenda, loc *time.Location, now time.Time) string {
	var b strings.Builder
	if len(agenda.Events) == 0 {
		b.WriteString(Dim("Nothing scheduled.") + "\n")
	}

	var day time.Time
	for i, e := range agenda.Events {
		start := e.Start.In(loc)
		if e.AllDay {
			start = domain.CalendarDate(e.Start, loc)
		}
		if i == 0 || !sameDay(start, day) {
			if i > 0 {
				b.WriteString("\n")
			}
			day = start
			b.WriteString(Bold(HumanDate(start, now.In(loc))) + "\n")
		}
		fmt.Fprintf(&b, "  %s  %s", StyleBlue.Render(EventSpan(e, loc)), e.Title)
		if e.Location != "" {
			b.WriteString(Dim(" @ " + e.Location))
		}
		if e.Source != domain.SourceStore {
			b.WriteString(" " + Dim("["+string(e.Source)+"]"))
		}
		b.WriteString("\n")
	}

	if len(agenda.Failures) > 0 {
		b.WriteString("\n")
		for _, f := range agenda.Failures {
			b.WriteString(Warn(fmt.Sprintf("%s unavailable: %v", f.Source, f.Err)) + "\n")
		}
	}
	return b.String()
}

// EventSpan formats the time range of an event in loc. All-day events
// render as a fixed-width label.
func EventSpan(e domain.CalendarEvent, loc *time.Location) string {
	if e.AllDay {
		return "all day    "
	}
	return fmt.Sprintf("%s–%s", e.Start.In(loc).Format("15:04"), e.EffectiveEnd().In(loc).Format("15:04"))
}
