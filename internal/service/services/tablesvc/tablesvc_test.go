package tablesvc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/corray333/pos-core/internal/service/errs"
	"github.com/corray333/pos-core/internal/service/models/orderline"
	"github.com/corray333/pos-core/internal/service/models/syncop"
	"github.com/corray333/pos-core/internal/service/models/table"
	"github.com/corray333/pos-core/internal/store"
)

type mockQueue struct {
	ops []syncop.Op
}

func (m *mockQueue) Enqueue(op syncop.Op) {
	m.ops = append(m.ops, op)
}

func newTestService() (*TableService, *store.Store, *mockQueue) {
	st := store.NewStore()
	q := &mockQueue{}
	svc := MustNewTableService(
		WithStore(st),
		WithSyncQueue(q),
	)

	return svc, st, q
}

func TestCreate(t *testing.T) {
	svc, _, q := newTestService()

	created, err := svc.Create(context.Background(), "5", 4)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if created.Status != table.StatusAvailable {
		t.Errorf("expected new table available, got %s", created.Status)
	}
	if created.TotalAmount != 0 || len(created.Orders) != 0 {
		t.Error("expected new table with zero total and no orders")
	}
	if len(q.ops) != 1 || q.ops[0].Kind != syncop.KindUpsertTable {
		t.Errorf("expected one upsert op, got %+v", q.ops)
	}
}

func TestCreateDuplicateNumber(t *testing.T) {
	svc, _, _ := newTestService()
	_, _ = svc.Create(context.Background(), "5", 4)

	if _, err := svc.Create(context.Background(), "5", 2); !errors.Is(err, errs.ErrConflict) {
		t.Errorf("expected ErrConflict for duplicate number, got %v", err)
	}
}

func TestCreateValidation(t *testing.T) {
	svc, _, _ := newTestService()

	if _, err := svc.Create(context.Background(), "", 4); !errors.Is(err, errs.ErrValidation) {
		t.Errorf("expected ErrValidation for empty number, got %v", err)
	}
	if _, err := svc.Create(context.Background(), "5", 0); !errors.Is(err, errs.ErrValidation) {
		t.Errorf("expected ErrValidation for zero seats, got %v", err)
	}
}

func TestRename(t *testing.T) {
	svc, _, _ := newTestService()
	a, _ := svc.Create(context.Background(), "5", 4)
	_, _ = svc.Create(context.Background(), "6", 2)

	renamed, err := svc.Rename(context.Background(), a.ID, "7")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if renamed.Number != "7" {
		t.Errorf("expected number 7, got %s", renamed.Number)
	}

	// Renaming to a number held by another table conflicts.
	if _, err := svc.Rename(context.Background(), a.ID, "6"); !errors.Is(err, errs.ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}

	// Renaming to the table's own number is allowed.
	if _, err := svc.Rename(context.Background(), a.ID, "7"); err != nil {
		t.Errorf("expected self-rename to pass, got %v", err)
	}

	if _, err := svc.Rename(context.Background(), "missing", "9"); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteOccupiedRefused(t *testing.T) {
	svc, st, _ := newTestService()
	created, _ := svc.Create(context.Background(), "5", 4)

	occupied, _ := st.Table(created.ID)
	occupied.Occupy([]orderline.Line{{ItemID: "a", UnitPrice: 500, Quantity: 1}}, time.Now())
	st.PutTable(occupied)

	err := svc.Delete(context.Background(), created.ID, false)
	if !errors.Is(err, errs.ErrConflict) {
		t.Fatalf("expected ErrConflict for occupied table, got %v", err)
	}
	if _, ok := st.Table(created.ID); !ok {
		t.Error("expected refused delete to leave the table in place")
	}
}

func TestForceDeleteOccupied(t *testing.T) {
	svc, st, q := newTestService()
	created, _ := svc.Create(context.Background(), "5", 4)

	occupied, _ := st.Table(created.ID)
	occupied.Occupy([]orderline.Line{{ItemID: "a", UnitPrice: 500, Quantity: 1}}, time.Now())
	st.PutTable(occupied)
	q.ops = nil

	if err := svc.Delete(context.Background(), created.ID, true); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, ok := st.Table(created.ID); ok {
		t.Error("expected table removed")
	}

	// A forced delete must clear the table's lines remotely before the row.
	if len(q.ops) != 2 || q.ops[0].Kind != syncop.KindDeleteOrderLines || q.ops[1].Kind != syncop.KindDeleteTable {
		t.Errorf("expected delete lines then delete table, got %+v", q.ops)
	}
}

func TestDeleteUnknown(t *testing.T) {
	svc, _, _ := newTestService()

	if err := svc.Delete(context.Background(), "missing", false); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
