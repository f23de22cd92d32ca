package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/cmsdash/internal/domain"
	"github.com/alexanderramin/cmsdash/internal/repository"
)

// resolveItemID resolves an item identifier within a menu. The input can be
// a full id or a unique id prefix, as printed by the tree and table views.
func resolveItemID(ctx context.Context, app *App, menuID, input string) (string, error) {
	flat, err := app.Menus.Flat(ctx, menuID)
	if err != nil {
		return "", err
	}
	items := make([]domain.MenuItem, 0, len(flat))
	for _, e := range flat {
		items = append(items, e.Item)
	}
	id, err := matchID(input, items, func(it domain.MenuItem) string { return it.ID })
	if err == nil || !errors.Is(err, repository.ErrNotFound) {
		return id, err
	}
	// Unreachable items are absent from the flat view but can still be
	// addressed by full id.
	item, getErr := app.Menus.GetItem(ctx, input)
	if getErr != nil || item.MenuID != menuID {
		return "", err
	}
	return item.ID, nil
}

// resolveSlideID resolves a full slide id or a unique prefix.
func resolveSlideID(ctx context.Context, app *App, input string) (string, error) {
	slides, err := app.Slides.List(ctx, false)
	if err != nil {
		return "", err
	}
	return matchID(input, slides, func(s domain.Slide) string { return s.ID })
}

func matchID[T any](input string, items []T, id func(T) string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("empty id")
	}
	var matches []string
	for _, it := range items {
		candidate := id(it)
		if candidate == input {
			return candidate, nil
		}
		if strings.HasPrefix(candidate, input) {
			matches = append(matches, candidate)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%q: %w", input, repository.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("id prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
