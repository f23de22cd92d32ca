package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/cmsdash/internal/calendar"
	"github.com/alexanderramin/cmsdash/internal/cli"
	"github.com/alexanderramin/cmsdash/internal/config"
	"github.com/alexanderramin/cmsdash/internal/db"
	"github.com/alexanderramin/cmsdash/internal/repository"
	"github.com/alexanderramin/cmsdash/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.LoadOptions{ConfigFile: os.Getenv("CMSDASH_CONFIG")})
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := cfg.NewLogger(os.Stderr)

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	menuRepo := repository.NewSQLiteMenuRepo(database)
	itemRepo := repository.NewSQLiteMenuItemRepo(database)
	slideRepo := repository.NewSQLiteSlideRepo(database)
	eventRepo := repository.NewSQLiteEventRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// Local events first so their copies win over imported duplicates.
	loc := cfg.Location()
	sources := []calendar.Source{calendar.NewStoreSource(eventRepo)}
	for _, path := range cfg.Calendar.ICSSources {
		sources = append(sources, calendar.NewICSFileSource(path, loc))
	}
	aggregator := calendar.NewAggregator(logger, loc, sources...)

	// Wire services
	observer := service.NewLogUseCaseObserver(logger)
	menus := service.NewMenuService(menuRepo, itemRepo, uow, logger, observer)

	app := &cli.App{
		Menus:       menus,
		Transfer:    service.NewMenuTransferService(menus, uow, observer),
		Slides:      service.NewSlideService(slideRepo, observer),
		Calendar:    service.NewCalendarService(eventRepo, aggregator, observer),
		Location:    loc,
		HorizonDays: cfg.Calendar.HorizonDays,
	}

	// Detect interactive terminal for the form and browser commands.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
