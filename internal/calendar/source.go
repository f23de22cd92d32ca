// Package calendar merges agenda entries from the local store and from
// iCalendar files into one ordered list.
package calendar

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alexanderramin/cmsdash/internal/domain"
	"github.com/alexanderramin/cmsdash/internal/repository"
)

// Source yields the events that overlap [from, to).
type Source interface {
	Name() string
	Events(ctx context.Context, from, to time.Time) ([]domain.CalendarEvent, error)
}

// StoreSource serves events saved in the database.
type StoreSource struct {
	repo repository.EventRepo
}

func NewStoreSource(repo repository.EventRepo) *StoreSource {
	return &StoreSource{repo: repo}
}

func (s *StoreSource) Name() string { return "store" }

func (s *StoreSource) Events(ctx context.Context, from, to time.Time) ([]domain.CalendarEvent, error) {
	return s.repo.ListBetween(ctx, from, to)
}

// ICSFileSource reads an .ics file on every call, so edits to the file show
// up without a restart.
type ICSFileSource struct {
	path string
	loc  *time.Location
}

func NewICSFileSource(path string, loc *time.Location) *ICSFileSource {
	if loc == nil {
		loc = time.UTC
	}
	return &ICSFileSource{path: path, loc: loc}
}

func (s *ICSFileSource) Name() string { return filepath.Base(s.path) }

func (s *ICSFileSource) Events(ctx context.Context, from, to time.Time) ([]domain.CalendarEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", s.path, err)
	}
	defer f.Close()

	all, err := DecodeICS(f, s.loc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	var out []domain.CalendarEvent
	for _, e := range all {
		if e.Overlaps(from, to) {
			out = append(out, e)
		}
	}
	return out, nil
}
