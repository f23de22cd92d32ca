package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/cmsdash/internal/domain"
	"github.com/alexanderramin/cmsdash/internal/tree"
)

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}

// observe reports one use case to obs when the returned func runs. Callers
// defer it with a pointer to their named error.
func observe(ctx context.Context, obs UseCaseObserver, name string, fields map[string]any) func(err *error) {
	startedAt := time.Now().UTC()
	return func(err *error) {
		obs.ObserveUseCase(ctx, UseCaseEvent{
			Name:      name,
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   *err == nil,
			Err:       *err,
			Fields:    fields,
		})
	}
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// nextOrder returns one past the highest order among items under parent,
// skipping the item with id skip.
func nextOrder(items []domain.MenuItem, parent *string, skip string) int {
	next := 0
	for _, it := range items {
		if it.ID == skip || !sameParent(it.ParentID, parent) {
			continue
		}
		if it.Order >= next {
			next = it.Order + 1
		}
	}
	return next
}

// subtree returns the ids below id, reachable or not. The item is detached
// to a root before building so that items under a dangling parent still
// resolve their descendants.
func subtree(items []domain.MenuItem, id string) ([]string, error) {
	detached := make([]domain.MenuItem, len(items))
	copy(detached, items)
	for i := range detached {
		if detached[i].ID == id {
			detached[i].ParentID = nil
		}
	}
	forest, err := tree.Build(detached)
	if err != nil {
		return nil, err
	}
	below := tree.Descendants(id, forest)
	ids := make([]string, 0, len(below))
	for _, it := range below {
		ids = append(ids, it.ID)
	}
	return ids, nil
}
