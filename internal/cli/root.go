package cli

import (
	"time"

	"github.com/alexanderramin/cmsdash/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Menus    service.MenuService
	Transfer service.MenuTransferService
	Slides   service.SlideService
	Calendar service.CalendarService

	// Location is used to read and print calendar times.
	Location *time.Location
	// HorizonDays is the default agenda window.
	HorizonDays int
	// Now is overridable for tests.
	Now func() time.Time

	// IsInteractive reports whether stdin is a terminal. Commands that
	// need one refuse to run when it returns false.
	IsInteractive func() bool
}

func (a *App) location() *time.Location {
	if a.Location == nil {
		return time.UTC
	}
	return a.Location
}

func (a *App) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "cmsdash" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "cmsdash",
		Short:         "Manage site menus, home page slides and the events calendar",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newMenuCmd(app),
		newSlideCmd(app),
		newCalendarCmd(app),
	)

	return root
}
