package menusvc

import (
	"context"
	"errors"
	"testing"

	"github.com/corray333/pos-core/internal/service/errs"
	"github.com/corray333/pos-core/internal/service/models/category"
	"github.com/corray333/pos-core/internal/service/models/menuitem"
	"github.com/corray333/pos-core/internal/service/models/syncop"
	"github.com/corray333/pos-core/internal/store"
)

type mockQueue struct {
	ops []syncop.Op
}

func (m *mockQueue) Enqueue(op syncop.Op) {
	m.ops = append(m.ops, op)
}

func newTestService() (*MenuService, *store.Store, *mockQueue) {
	st := store.NewStore()
	q := &mockQueue{}
	svc := MustNewMenuService(
		WithStore(st),
		WithSyncQueue(q),
	)

	return svc, st, q
}

func TestCreate(t *testing.T) {
	svc, st, q := newTestService()

	item, err := svc.Create(context.Background(), menuitem.CreateModel{
		Name:     "Set A",
		Price:    980,
		Category: category.CategorySetMeal,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if item.ID == "" {
		t.Error("expected generated id")
	}
	if !item.IsAvailable {
		t.Error("expected new items to start available")
	}

	if _, ok := st.MenuItem(item.ID); !ok {
		t.Error("expected item committed to the store")
	}
	if len(q.ops) != 1 || q.ops[0].Kind != syncop.KindUpsertMenuItem {
		t.Errorf("expected one upsert op, got %+v", q.ops)
	}
}

func TestCreateValidation(t *testing.T) {
	svc, _, _ := newTestService()

	tests := []struct {
		name  string
		model menuitem.CreateModel
	}{
		{"missing name", menuitem.CreateModel{Price: 100, Category: category.CategoryDrink}},
		{"zero price", menuitem.CreateModel{Name: "Tea", Category: category.CategoryDrink}},
		{"negative price", menuitem.CreateModel{Name: "Tea", Price: -1, Category: category.CategoryDrink}},
		{"unknown category", menuitem.CreateModel{Name: "Tea", Price: 100, Category: "sushi"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), tt.model); !errors.Is(err, errs.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestToggleAvailability(t *testing.T) {
	svc, st, _ := newTestService()
	item, _ := svc.Create(context.Background(), menuitem.CreateModel{
		Name: "Tea", Price: 200, Category: category.CategoryDrink,
	})

	svc.ToggleAvailability(context.Background(), item.ID)

	got, _ := st.MenuItem(item.ID)
	if got.IsAvailable {
		t.Error("expected item suspended after toggle")
	}

	svc.ToggleAvailability(context.Background(), item.ID)
	got, _ = st.MenuItem(item.ID)
	if !got.IsAvailable {
		t.Error("expected item available after second toggle")
	}

	// Unknown ids are a silent no-op.
	svc.ToggleAvailability(context.Background(), "no-such-item")
}

func TestSoftDeleteAndRestore(t *testing.T) {
	svc, _, _ := newTestService()
	item, _ := svc.Create(context.Background(), menuitem.CreateModel{
		Name: "Tea", Price: 200, Category: category.CategoryDrink,
	})
	svc.ToggleAvailability(context.Background(), item.ID)

	if err := svc.SoftDelete(context.Background(), item.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(svc.ListActive()) != 0 {
		t.Error("expected deleted item out of the active list")
	}
	trash := svc.ListTrash()
	if len(trash) != 1 || trash[0].DeletedAt == nil {
		t.Errorf("expected one trashed item with a deletion time, got %+v", trash)
	}

	if err := svc.Restore(context.Background(), item.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	active := svc.ListActive()
	if len(active) != 1 {
		t.Fatal("expected restored item back in the active list")
	}
	if active[0].IsAvailable {
		t.Error("expected suspension to survive delete and restore")
	}
	if active[0].DeletedAt != nil {
		t.Error("expected deletion time cleared on restore")
	}
}

func TestSoftDeleteUnknown(t *testing.T) {
	svc, _, _ := newTestService()

	if err := svc.SoftDelete(context.Background(), "missing"); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := svc.Restore(context.Background(), "missing"); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdate(t *testing.T) {
	svc, _, _ := newTestService()
	item, _ := svc.Create(context.Background(), menuitem.CreateModel{
		Name: "Tea", Price: 200, Category: category.CategoryDrink, Description: "hot",
	})

	newPrice := int64(250)
	updated, err := svc.Update(context.Background(), item.ID, menuitem.UpdateModel{Price: &newPrice})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.Price != 250 {
		t.Errorf("expected price 250, got %d", updated.Price)
	}
	if updated.Name != "Tea" || updated.Description != "hot" {
		t.Error("expected unset fields to stay unchanged")
	}

	empty := ""
	if _, err := svc.Update(context.Background(), item.ID, menuitem.UpdateModel{Name: &empty}); !errors.Is(err, errs.ErrValidation) {
		t.Errorf("expected ErrValidation for empty name, got %v", err)
	}

	if _, err := svc.Update(context.Background(), "missing", menuitem.UpdateModel{}); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
