package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/alexanderramin/cmsdash/internal/db"
	"github.com/alexanderramin/cmsdash/internal/domain"
	"github.com/alexanderramin/cmsdash/internal/repository"
	"github.com/alexanderramin/cmsdash/internal/tree"
	"github.com/alexanderramin/cmsdash/internal/validation"
	"github.com/google/uuid"
	"github.com/sahilm/fuzzy"
)

type menuService struct {
	menus    repository.MenuRepo
	items    repository.MenuItemRepo
	uow      db.UnitOfWork
	logger   *slog.Logger
	observer UseCaseObserver
}

func NewMenuService(
	menus repository.MenuRepo,
	items repository.MenuItemRepo,
	uow db.UnitOfWork,
	logger *slog.Logger,
	observers ...UseCaseObserver,
) MenuService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &menuService{
		menus:    menus,
		items:    items,
		uow:      uow,
		logger:   logger,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *menuService) CreateMenu(ctx context.Context, m *domain.Menu) (err error) {
	defer observe(ctx, s.observer, "create-menu", map[string]any{"slug": m.Slug})(&err)

	m.Name = strings.TrimSpace(m.Name)
	if err = validation.Struct(m); err != nil {
		return err
	}
	if _, lookupErr := s.menus.GetBySlug(ctx, m.Slug); lookupErr == nil {
		return fmt.Errorf("menu %q: %w", m.Slug, ErrSlugTaken)
	} else if !errors.Is(lookupErr, repository.ErrNotFound) {
		return lookupErr
	}

	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now
	return s.menus.Create(ctx, m)
}

func (s *menuService) GetMenu(ctx context.Context, ref string) (*domain.Menu, error) {
	m, err := s.menus.GetByID(ctx, ref)
	if err == nil || !errors.Is(err, repository.ErrNotFound) {
		return m, err
	}
	return s.menus.GetBySlug(ctx, ref)
}

func (s *menuService) ListMenus(ctx context.Context) ([]*domain.Menu, error) {
	return s.menus.List(ctx)
}

// RemoveMenu deletes the menu; its items go with it through the cascade.
func (s *menuService) RemoveMenu(ctx context.Context, ref string) (err error) {
	defer observe(ctx, s.observer, "remove-menu", map[string]any{"menu": ref})(&err)

	m, err := s.GetMenu(ctx, ref)
	if err != nil {
		return err
	}
	return s.menus.Delete(ctx, m.ID)
}

func (s *menuService) AddItem(ctx context.Context, item *domain.MenuItem, order *int) (err error) {
	defer observe(ctx, s.observer, "add-menu-item", map[string]any{"menu_id": item.MenuID})(&err)

	item.Title = strings.TrimSpace(item.Title)
	if item.Target == "" {
		item.Target = domain.TargetSelf
	}
	if err = validation.Struct(item); err != nil {
		return err
	}
	if _, err = s.menus.GetByID(ctx, item.MenuID); err != nil {
		return err
	}

	siblings, err := s.items.ListByMenu(ctx, item.MenuID)
	if err != nil {
		return err
	}
	if item.ParentID != nil {
		if err = s.checkParent(ctx, item.MenuID, *item.ParentID); err != nil {
			return err
		}
	}

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if order != nil {
		item.Order = *order
	} else {
		item.Order = nextOrder(siblings, item.ParentID, item.ID)
	}
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now
	return s.items.Create(ctx, item)
}

func (s *menuService) checkParent(ctx context.Context, menuID, parentID string) error {
	parent, err := s.items.GetByID(ctx, parentID)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("parent %q does not exist: %w", parentID, ErrInvalidParent)
	}
	if err != nil {
		return err
	}
	if parent.MenuID != menuID {
		return fmt.Errorf("parent %q belongs to another menu: %w", parentID, ErrInvalidParent)
	}
	return nil
}

func (s *menuService) GetItem(ctx context.Context, id string) (*domain.MenuItem, error) {
	return s.items.GetByID(ctx, id)
}

// UpdateItem saves title, link and translation changes. Placement is
// changed through MoveItem, so ParentID and Order are kept as stored.
func (s *menuService) UpdateItem(ctx context.Context, item *domain.MenuItem) (err error) {
	defer observe(ctx, s.observer, "update-menu-item", map[string]any{"item_id": item.ID})(&err)

	current, err := s.items.GetByID(ctx, item.ID)
	if err != nil {
		return err
	}
	item.MenuID = current.MenuID
	item.ParentID = current.ParentID
	item.Order = current.Order
	item.CreatedAt = current.CreatedAt
	item.Title = strings.TrimSpace(item.Title)
	if item.Target == "" {
		item.Target = domain.TargetSelf
	}
	if err = validation.Struct(item); err != nil {
		return err
	}
	item.UpdatedAt = time.Now().UTC()
	return s.items.Update(ctx, item)
}

func (s *menuService) MoveItem(ctx context.Context, id string, newParent *string, order *int) (err error) {
	defer observe(ctx, s.observer, "move-menu-item", map[string]any{"item_id": id})(&err)

	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return err
	}
	items, err := s.items.ListByMenu(ctx, item.MenuID)
	if err != nil {
		return err
	}

	if newParent != nil {
		if *newParent == id {
			return fmt.Errorf("item %q under itself: %w", id, ErrInvalidMove)
		}
		if err = s.checkParent(ctx, item.MenuID, *newParent); err != nil {
			return err
		}
		below, subErr := subtree(items, id)
		if subErr != nil {
			return fmt.Errorf("loading subtree: %w", subErr)
		}
		if slices.Contains(below, *newParent) {
			return fmt.Errorf("item %q under its descendant %q: %w", id, *newParent, ErrInvalidMove)
		}
	}

	item.ParentID = newParent
	if order != nil {
		item.Order = *order
	} else {
		item.Order = nextOrder(items, newParent, id)
	}
	item.UpdatedAt = time.Now().UTC()
	return s.items.Update(ctx, item)
}

func (s *menuService) RemoveItem(ctx context.Context, id string) (removed int, err error) {
	fields := map[string]any{"item_id": id}
	defer observe(ctx, s.observer, "remove-menu-item", fields)(&err)

	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	items, err := s.items.ListByMenu(ctx, item.MenuID)
	if err != nil {
		return 0, err
	}
	below, err := subtree(items, id)
	if err != nil {
		return 0, fmt.Errorf("loading subtree: %w", err)
	}
	ids := append([]string{id}, below...)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		n, err := repository.NewSQLiteMenuItemRepo(tx).DeleteMany(ctx, ids)
		if err != nil {
			return err
		}
		removed = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	fields["removed"] = removed
	return removed, nil
}

// Reorder renumbers the children of parentID (roots when nil) to 0..n-1,
// keeping their current relative order.
func (s *menuService) Reorder(ctx context.Context, menuID string, parentID *string) (err error) {
	defer observe(ctx, s.observer, "reorder-menu", map[string]any{"menu_id": menuID})(&err)

	forest, err := s.Tree(ctx, menuID)
	if err != nil {
		return err
	}
	siblings := forest
	if parentID != nil {
		parent := tree.Find(*parentID, forest)
		if parent == nil {
			return fmt.Errorf("parent %q: %w", *parentID, repository.ErrNotFound)
		}
		siblings = parent.Children
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txItems := repository.NewSQLiteMenuItemRepo(tx)
		for i, n := range siblings {
			if n.Item.Order == i {
				continue
			}
			if err := txItems.UpdateOrder(ctx, n.ID(), i); err != nil {
				return fmt.Errorf("renumbering %q: %w", n.Item.Title, err)
			}
		}
		return nil
	})
}

// Tree builds the menu's forest. Items hanging off a missing parent are
// left out and logged.
func (s *menuService) Tree(ctx context.Context, menuID string) ([]*tree.Node[domain.MenuItem], error) {
	if _, err := s.menus.GetByID(ctx, menuID); err != nil {
		return nil, err
	}
	items, err := s.items.ListByMenu(ctx, menuID)
	if err != nil {
		return nil, err
	}
	forest, err := tree.Build(items)
	if err != nil {
		return nil, fmt.Errorf("menu %s: %w", menuID, err)
	}
	for _, it := range tree.Unreachable(items, forest) {
		s.logger.WarnContext(ctx, "menu item unreachable",
			"menu_id", menuID, "item_id", it.ID, "title", it.Title,
			"parent_id", domain.StrOrEmpty(it.ParentID))
	}
	return forest, nil
}

func (s *menuService) Flat(ctx context.Context, menuID string) ([]tree.Entry[domain.MenuItem], error) {
	forest, err := s.Tree(ctx, menuID)
	if err != nil {
		return nil, err
	}
	return tree.FlattenWithDepth(forest), nil
}

func (s *menuService) Depth(ctx context.Context, menuID, itemID string) (int, bool, error) {
	forest, err := s.Tree(ctx, menuID)
	if err != nil {
		return tree.NotFound, false, err
	}
	depth, ok := tree.DepthOf(itemID, forest)
	return depth, ok, nil
}

func (s *menuService) Breadcrumbs(ctx context.Context, menuID, itemID string) ([]domain.MenuItem, error) {
	forest, err := s.Tree(ctx, menuID)
	if err != nil {
		return nil, err
	}
	path := tree.Path(itemID, forest)
	if path == nil {
		return nil, fmt.Errorf("menu item %q: %w", itemID, repository.ErrNotFound)
	}
	return path, nil
}

// menuTitles adapts flattened entries to fuzzy.Source.
type menuTitles []tree.Entry[domain.MenuItem]

func (t menuTitles) String(i int) string { return t[i].Item.Title }
func (t menuTitles) Len() int            { return len(t) }

// Search fuzzy-matches query against the titles of every reachable item,
// best match first.
func (s *menuService) Search(ctx context.Context, menuID, query string) ([]SearchResult, error) {
	forest, err := s.Tree(ctx, menuID)
	if err != nil {
		return nil, err
	}
	results := []SearchResult{}
	query = strings.TrimSpace(query)
	if query == "" {
		return results, nil
	}

	entries := menuTitles(tree.FlattenWithDepth(forest))
	for _, m := range fuzzy.FindFrom(query, entries) {
		item := entries[m.Index].Item
		results = append(results, SearchResult{
			Item:           item,
			Path:           tree.Path(item.ID, forest),
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		})
	}
	return results, nil
}
