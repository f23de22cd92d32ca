package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/cmsdash/internal/domain"
	"github.com/google/uuid"
)

var testSlugCounter atomic.Int64

// Menu options
type MenuOption func(*domain.Menu)

func WithSlug(slug string) MenuOption {
	return func(m *domain.Menu) {
		m.Slug = slug
	}
}

func NewTestMenu(name string, opts ...MenuOption) *domain.Menu {
	now := time.Now().UTC()
	m := &domain.Menu{
		ID:        uuid.New().String(),
		Name:      name,
		Slug:      fmt.Sprintf("menu-%d", testSlugCounter.Add(1)),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// MenuItem options
type ItemOption func(*domain.MenuItem)

func WithParent(id string) ItemOption {
	return func(i *domain.MenuItem) {
		i.ParentID = &id
	}
}

func WithOrder(order int) ItemOption {
	return func(i *domain.MenuItem) {
		i.Order = order
	}
}

func WithURL(url string) ItemOption {
	return func(i *domain.MenuItem) {
		i.URL = url
	}
}

func WithTarget(t domain.LinkTarget) ItemOption {
	return func(i *domain.MenuItem) {
		i.Target = t
	}
}

func WithTranslation(locale, title string) ItemOption {
	return func(i *domain.MenuItem) {
		if i.Translations == nil {
			i.Translations = map[string]string{}
		}
		i.Translations[locale] = title
	}
}

func NewTestMenuItem(menuID, title string, opts ...ItemOption) *domain.MenuItem {
	now := time.Now().UTC()
	i := &domain.MenuItem{
		ID:        uuid.New().String(),
		MenuID:    menuID,
		Title:     title,
		Target:    domain.TargetSelf,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Slide options
type SlideOption func(*domain.Slide)

func WithSlideOrder(order int) SlideOption {
	return func(s *domain.Slide) {
		s.Order = order
	}
}

func Inactive() SlideOption {
	return func(s *domain.Slide) {
		s.Active = false
	}
}

func NewTestSlide(title string, opts ...SlideOption) *domain.Slide {
	now := time.Now().UTC()
	s := &domain.Slide{
		ID:        uuid.New().String(),
		Title:     title,
		ImageURL:  "https://cdn.example.com/" + uuid.NewString() + ".jpg",
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Event options
type EventOption func(*domain.CalendarEvent)

func WithEnd(end time.Time) EventOption {
	return func(e *domain.CalendarEvent) {
		e.End = end
	}
}

// AllDay makes the event span the whole calendar day of its start.
func AllDay() EventOption {
	return func(e *domain.CalendarEvent) {
		e.AllDay = true
		e.Start = domain.CalendarDate(e.Start, time.UTC)
		e.End = e.Start.AddDate(0, 0, 1)
	}
}

func WithUID(uid string) EventOption {
	return func(e *domain.CalendarEvent) {
		e.UID = uid
	}
}

func NewTestEvent(title string, start time.Time, opts ...EventOption) *domain.CalendarEvent {
	now := time.Now().UTC()
	id := uuid.New().String()
	e := &domain.CalendarEvent{
		ID:        id,
		UID:       id + "@cmsdash",
		Title:     title,
		Start:     start.UTC(),
		End:       start.UTC().Add(domain.DefaultEventDuration),
		Source:    domain.SourceStore,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
