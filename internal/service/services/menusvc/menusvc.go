package menusvc

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/corray333/pos-core/internal/service/errs"
	"github.com/corray333/pos-core/internal/service/models/category"
	"github.com/corray333/pos-core/internal/service/models/menuitem"
	"github.com/corray333/pos-core/internal/service/models/syncop"
	"github.com/corray333/pos-core/internal/store"
	"github.com/google/uuid"
)

// syncQueue accepts queued write-throughs to the remote collaborator.
type syncQueue interface {
	Enqueue(op syncop.Op)
}

// MenuService manages the menu catalog: active items, temporary serving
// suspensions, and the soft-delete trash.
type MenuService struct {
	store *store.Store
	queue syncQueue
}

// option is a function that configures the MenuService.
type option func(*MenuService)

// MustNewMenuService creates a new MenuService.
func MustNewMenuService(opts ...option) *MenuService {
	s := &MenuService{}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		panic("menusvc: store is required")
	}

	return s
}

// WithStore sets the shared state store.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithStore(st *store.Store) option {
	return func(s *MenuService) {
		s.store = st
	}
}

// WithSyncQueue sets the remote write-through queue.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithSyncQueue(q syncQueue) option {
	return func(s *MenuService) {
		s.queue = q
	}
}

// ListActive returns all non-deleted items ordered by category then name.
// Suspended items are included; callers use Orderable to grey them out.
func (s *MenuService) ListActive() []menuitem.MenuItem {
	all := s.store.MenuItems()
	items := make([]menuitem.MenuItem, 0, len(all))
	for _, m := range all {
		if !m.IsDeleted {
			items = append(items, m)
		}
	}

	return items
}

// ListTrash returns soft-deleted items awaiting restore or permanent
// cleanup.
func (s *MenuService) ListTrash() []menuitem.MenuItem {
	all := s.store.MenuItems()
	items := make([]menuitem.MenuItem, 0)
	for _, m := range all {
		if m.IsDeleted {
			items = append(items, m)
		}
	}

	return items
}

// ToggleAvailability flips the serving flag. Unknown ids are a silent
// no-op. Toggling a deleted item changes only the stored flag; the item
// stays out of ordering until restored.
func (s *MenuService) ToggleAvailability(ctx context.Context, itemID string) {
	item, ok := s.store.MenuItem(itemID)
	if !ok {
		slog.Warn("Toggle availability for unknown menu item", "item_id", itemID)

		return
	}

	item.IsAvailable = !item.IsAvailable
	item.UpdatedAt = time.Now()
	s.store.PutMenuItem(item)
	s.enqueueUpsert(item)
}

// SoftDelete moves the item into the trash. The availability flag is left
// untouched so a restore brings the item back exactly as it was.
func (s *MenuService) SoftDelete(ctx context.Context, itemID string) error {
	item, ok := s.store.MenuItem(itemID)
	if !ok {
		return fmt.Errorf("soft delete menu item %q: %w", itemID, errs.ErrNotFound)
	}

	now := time.Now()
	item.Mark.Delete(now)
	item.UpdatedAt = now
	s.store.PutMenuItem(item)
	s.enqueueUpsert(item)

	return nil
}

// Restore clears the deletion mark; the item reappears in ListActive with
// its prior availability.
func (s *MenuService) Restore(ctx context.Context, itemID string) error {
	item, ok := s.store.MenuItem(itemID)
	if !ok {
		return fmt.Errorf("restore menu item %q: %w", itemID, errs.ErrNotFound)
	}

	item.Mark.Restore()
	item.UpdatedAt = time.Now()
	s.store.PutMenuItem(item)
	s.enqueueUpsert(item)

	return nil
}

// Create adds a new item to the catalog.
func (s *MenuService) Create(ctx context.Context, model menuitem.CreateModel) (menuitem.MenuItem, error) {
	if model.Name == "" {
		return menuitem.MenuItem{}, fmt.Errorf("create menu item: name is required: %w", errs.ErrValidation)
	}
	if model.Price <= 0 {
		return menuitem.MenuItem{}, fmt.Errorf("create menu item: price must be positive: %w", errs.ErrValidation)
	}
	if _, err := category.ParseCategory(model.Category.String()); err != nil {
		return menuitem.MenuItem{}, fmt.Errorf("create menu item: %w: %w", err, errs.ErrValidation)
	}

	now := time.Now()
	item := menuitem.MenuItem{
		ID:          uuid.NewString(),
		Name:        model.Name,
		Price:       model.Price,
		Category:    model.Category,
		Description: model.Description,
		ImageURL:    model.ImageURL,
		IsAvailable: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.store.PutMenuItem(item)
	s.enqueueUpsert(item)

	return item, nil
}

// Update applies a partial edit under the same constraints as Create.
func (s *MenuService) Update(ctx context.Context, itemID string, patch menuitem.UpdateModel) (menuitem.MenuItem, error) {
	item, ok := s.store.MenuItem(itemID)
	if !ok {
		return menuitem.MenuItem{}, fmt.Errorf("update menu item %q: %w", itemID, errs.ErrNotFound)
	}

	if patch.Name != nil {
		if *patch.Name == "" {
			return menuitem.MenuItem{}, fmt.Errorf("update menu item: name is required: %w", errs.ErrValidation)
		}
		item.Name = *patch.Name
	}
	if patch.Price != nil {
		if *patch.Price <= 0 {
			return menuitem.MenuItem{}, fmt.Errorf("update menu item: price must be positive: %w", errs.ErrValidation)
		}
		item.Price = *patch.Price
	}
	if patch.Category != nil {
		if _, err := category.ParseCategory(patch.Category.String()); err != nil {
			return menuitem.MenuItem{}, fmt.Errorf("update menu item: %w: %w", err, errs.ErrValidation)
		}
		item.Category = *patch.Category
	}
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	if patch.ImageURL != nil {
		item.ImageURL = *patch.ImageURL
	}

	item.UpdatedAt = time.Now()
	s.store.PutMenuItem(item)
	s.enqueueUpsert(item)

	return item, nil
}

func (s *MenuService) enqueueUpsert(item menuitem.MenuItem) {
	if s.queue == nil {
		return
	}
	s.queue.Enqueue(syncop.Op{
		Kind:       syncop.KindUpsertMenuItem,
		MenuItem:   &item,
		EnqueuedAt: time.Now(),
	})
}
