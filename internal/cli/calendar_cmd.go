package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alexanderramin/cmsdash/internal/cli/formatter"
	"github.com/alexanderramin/cmsdash/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Accepted --start/--end/--from layouts, tried in order.
var timeLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	time.RFC3339,
	"2006-01-02",
}

func newCalendarCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "Manage and view the events calendar",
	}

	cmd.AddCommand(
		newCalendarAddCmd(app),
		newCalendarRemoveCmd(app),
		newCalendarAgendaCmd(app),
		newCalendarExportCmd(app),
	)

	return cmd
}

func newCalendarAddCmd(app *App) *cobra.Command {
	var title, start, end, location, description string
	var allDay bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an event to the local calendar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loc := app.location()
			startAt, err := parseTime(start, loc)
			if err != nil {
				return fmt.Errorf("--start: %w", err)
			}
			e := &domain.CalendarEvent{
				Title:       title,
				Description: description,
				Location:    location,
				Start:       startAt,
				AllDay:      allDay,
			}
			if end != "" {
				if e.End, err = parseTime(end, loc); err != nil {
					return fmt.Errorf("--end: %w", err)
				}
			}

			if err := app.Calendar.AddEvent(cmd.Context(), e); err != nil {
				return err
			}
			day := e.Start.In(loc)
			if e.AllDay {
				day = domain.CalendarDate(e.Start, loc)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added event %s on %s (%s)\n",
				e.Title, day.Format("Mon Jan 2"), formatter.ShortID(e.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Event title")
	cmd.Flags().StringVar(&start, "start", "", "Start, e.g. \"2026-03-10 14:00\" or 2026-03-10")
	cmd.Flags().StringVar(&end, "end", "", "End (default: one hour, or one day for --all-day)")
	cmd.Flags().BoolVar(&allDay, "all-day", false, "Whole-day event; the end date is exclusive")
	cmd.Flags().StringVar(&location, "location", "", "Where the event takes place")
	cmd.Flags().StringVar(&description, "description", "", "Free text shown with the event")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}

func newCalendarRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a local event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Calendar.RemoveEvent(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed event %s\n", formatter.ShortID(args[0]))
			return nil
		},
	}
}

// windowFlags holds the --from/--days pair shared by agenda and export.
type windowFlags struct {
	from string
	days int
}

func (w *windowFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&w.from, "from", "", "First day of the window (default: today)")
	fs.IntVar(&w.days, "days", 0, "Window length in days (default: configured horizon)")
}

func (w *windowFlags) resolve(app *App) (time.Time, time.Time, error) {
	loc := app.location()
	var from time.Time
	if w.from == "" {
		y, m, d := app.now().In(loc).Date()
		from = time.Date(y, m, d, 0, 0, 0, 0, loc)
	} else {
		t, err := parseTime(w.from, loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("--from: %w", err)
		}
		from = t
	}
	days := w.days
	if days == 0 {
		days = app.HorizonDays
	}
	if days <= 0 {
		return time.Time{}, time.Time{}, fmt.Errorf("--days must be positive, got %d", days)
	}
	return from, from.AddDate(0, 0, days), nil
}

func newCalendarAgendaCmd(app *App) *cobra.Command {
	var window windowFlags

	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "Show upcoming events from every calendar source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := window.resolve(app)
			if err != nil {
				return err
			}
			agenda, err := app.Calendar.Agenda(cmd.Context(), from, to)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAgenda(agenda, app.location(), app.now()))
			return nil
		},
	}

	window.register(cmd.Flags())

	return cmd
}

func newCalendarExportCmd(app *App) *cobra.Command {
	var window windowFlags
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the merged agenda as an iCalendar file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := window.resolve(app)
			if err != nil {
				return err
			}
			if outPath == "" {
				_, err := app.Calendar.Export(cmd.Context(), cmd.OutOrStdout(), from, to)
				return err
			}

			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("creating %s: %w", outPath, err)
			}
			n, err := app.Calendar.Export(cmd.Context(), f, from, to)
			if err != nil {
				f.Close()
				os.Remove(outPath)
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("writing %s: %w", outPath, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d event(s) to %s\n", n, outPath)
			return nil
		},
	}

	window.register(cmd.Flags())
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default stdout)")

	return cmd
}

func parseTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot read %q as a date or time", s)
}
