package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/cmsdash/internal/domain"
)

// ErrNotFound is wrapped by every lookup that matches no row.
var ErrNotFound = errors.New("not found")

type MenuRepo interface {
	Create(ctx context.Context, m *domain.Menu) error
	GetByID(ctx context.Context, id string) (*domain.Menu, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Menu, error)
	List(ctx context.Context) ([]*domain.Menu, error)
	Update(ctx context.Context, m *domain.Menu) error
	Delete(ctx context.Context, id string) error
}

// MenuItemRepo stores menu items as a flat collection. Callers assemble the
// hierarchy with the tree package.
type MenuItemRepo interface {
	Create(ctx context.Context, item *domain.MenuItem) error
	GetByID(ctx context.Context, id string) (*domain.MenuItem, error)
	ListByMenu(ctx context.Context, menuID string) ([]domain.MenuItem, error)
	Update(ctx context.Context, item *domain.MenuItem) error
	UpdateOrder(ctx context.Context, id string, order int) error
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) (int, error)
}

type SlideRepo interface {
	Create(ctx context.Context, s *domain.Slide) error
	GetByID(ctx context.Context, id string) (*domain.Slide, error)
	List(ctx context.Context) ([]domain.Slide, error)
	Update(ctx context.Context, s *domain.Slide) error
	Delete(ctx context.Context, id string) error
}

type EventRepo interface {
	Create(ctx context.Context, e *domain.CalendarEvent) error
	GetByID(ctx context.Context, id string) (*domain.CalendarEvent, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]domain.CalendarEvent, error)
	Update(ctx context.Context, e *domain.CalendarEvent) error
	Delete(ctx context.Context, id string) error
}
