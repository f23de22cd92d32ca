package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/cmsdash/internal/domain"
	"github.com/alexanderramin/cmsdash/internal/repository"
	"github.com/alexanderramin/cmsdash/internal/tree"
	"github.com/alexanderramin/cmsdash/internal/validation"
	"github.com/google/uuid"
)

type slideService struct {
	slides   repository.SlideRepo
	observer UseCaseObserver
}

func NewSlideService(slides repository.SlideRepo, observers ...UseCaseObserver) SlideService {
	return &slideService{slides: slides, observer: useCaseObserverOrNoop(observers)}
}

func (s *slideService) Add(ctx context.Context, sl *domain.Slide, order *int) (err error) {
	defer observe(ctx, s.observer, "add-slide", map[string]any{"title": sl.Title})(&err)

	sl.Title = strings.TrimSpace(sl.Title)
	if err = validation.Struct(sl); err != nil {
		return err
	}
	if order != nil {
		sl.Order = *order
	} else {
		existing, listErr := s.slides.List(ctx)
		if listErr != nil {
			return listErr
		}
		sl.Order = 0
		for _, other := range existing {
			if other.Order >= sl.Order {
				sl.Order = other.Order + 1
			}
		}
	}
	if sl.ID == "" {
		sl.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	sl.CreatedAt = now
	sl.UpdatedAt = now
	return s.slides.Create(ctx, sl)
}

func (s *slideService) Get(ctx context.Context, id string) (*domain.Slide, error) {
	return s.slides.GetByID(ctx, id)
}

// List returns slides in carousel order. Slides share the menu sibling
// rules: ascending order, ties in insertion order.
func (s *slideService) List(ctx context.Context, activeOnly bool) ([]domain.Slide, error) {
	all, err := s.slides.List(ctx)
	if err != nil {
		return nil, err
	}
	forest, err := tree.Build(all)
	if err != nil {
		return nil, fmt.Errorf("ordering slides: %w", err)
	}
	ordered := tree.Flatten(forest)
	if !activeOnly {
		return ordered, nil
	}
	active := make([]domain.Slide, 0, len(ordered))
	for _, sl := range ordered {
		if sl.Active {
			active = append(active, sl)
		}
	}
	return active, nil
}

func (s *slideService) Move(ctx context.Context, id string, order int) (err error) {
	defer observe(ctx, s.observer, "move-slide", map[string]any{"slide_id": id, "order": order})(&err)

	sl, err := s.slides.GetByID(ctx, id)
	if err != nil {
		return err
	}
	sl.Order = order
	sl.UpdatedAt = time.Now().UTC()
	return s.slides.Update(ctx, sl)
}

func (s *slideService) SetActive(ctx context.Context, id string, active bool) error {
	sl, err := s.slides.GetByID(ctx, id)
	if err != nil {
		return err
	}
	sl.Active = active
	sl.UpdatedAt = time.Now().UTC()
	return s.slides.Update(ctx, sl)
}

func (s *slideService) Remove(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "remove-slide", map[string]any{"slide_id": id})(&err)
	return s.slides.Delete(ctx, id)
}
