package service

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/alexanderramin/cmsdash/internal/calendar"
	"github.com/alexanderramin/cmsdash/internal/domain"
	"github.com/alexanderramin/cmsdash/internal/importer"
	"github.com/alexanderramin/cmsdash/internal/tree"
)

var (
	// ErrInvalidMove is returned when an item would become its own ancestor.
	ErrInvalidMove = errors.New("invalid move")
	// ErrInvalidParent is returned when a parent is missing or belongs to
	// another menu.
	ErrInvalidParent = errors.New("invalid parent")
	// ErrSlugTaken is returned when a menu slug is already in use.
	ErrSlugTaken = errors.New("slug already in use")
)

type MenuService interface {
	CreateMenu(ctx context.Context, m *domain.Menu) error
	// GetMenu resolves ref as a menu id first, then as a slug.
	GetMenu(ctx context.Context, ref string) (*domain.Menu, error)
	ListMenus(ctx context.Context) ([]*domain.Menu, error)
	RemoveMenu(ctx context.Context, ref string) error

	// AddItem stores a new item. A nil order places it after its last sibling.
	AddItem(ctx context.Context, item *domain.MenuItem, order *int) error
	GetItem(ctx context.Context, id string) (*domain.MenuItem, error)
	UpdateItem(ctx context.Context, item *domain.MenuItem) error
	MoveItem(ctx context.Context, id string, newParent *string, order *int) error
	// RemoveItem deletes the item and its whole subtree, returning the
	// number of items removed.
	RemoveItem(ctx context.Context, id string) (int, error)
	Reorder(ctx context.Context, menuID string, parentID *string) error

	Tree(ctx context.Context, menuID string) ([]*tree.Node[domain.MenuItem], error)
	Flat(ctx context.Context, menuID string) ([]tree.Entry[domain.MenuItem], error)
	// Depth reports the item's depth and whether it is reachable in the
	// built tree. Unreachable items report tree.NotFound.
	Depth(ctx context.Context, menuID, itemID string) (int, bool, error)
	Breadcrumbs(ctx context.Context, menuID, itemID string) ([]domain.MenuItem, error)
	Search(ctx context.Context, menuID, query string) ([]SearchResult, error)
}

// SearchResult is one fuzzy match over a menu's item titles.
type SearchResult struct {
	Item           domain.MenuItem
	Path           []domain.MenuItem
	MatchedIndexes []int
	Score          int
}

// ImportResult holds the outcome of a menu import.
type ImportResult struct {
	Menu      *domain.Menu
	ItemCount int
}

type MenuTransferService interface {
	Export(ctx context.Context, menuRef string, w io.Writer) error
	Import(ctx context.Context, path string) (*ImportResult, error)
	ImportDocument(ctx context.Context, doc *importer.MenuDocument) (*ImportResult, error)
}

type SlideService interface {
	// Add stores a new slide. A nil order places it last.
	Add(ctx context.Context, s *domain.Slide, order *int) error
	Get(ctx context.Context, id string) (*domain.Slide, error)
	List(ctx context.Context, activeOnly bool) ([]domain.Slide, error)
	Move(ctx context.Context, id string, order int) error
	SetActive(ctx context.Context, id string, active bool) error
	Remove(ctx context.Context, id string) error
}

type CalendarService interface {
	AddEvent(ctx context.Context, e *domain.CalendarEvent) error
	RemoveEvent(ctx context.Context, id string) error
	Agenda(ctx context.Context, from, to time.Time) (calendar.Agenda, error)
	Export(ctx context.Context, w io.Writer, from, to time.Time) (int, error)
}
