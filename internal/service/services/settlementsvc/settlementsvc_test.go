package settlementsvc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/corray333/pos-core/internal/service/errs"
	"github.com/corray333/pos-core/internal/service/models/category"
	"github.com/corray333/pos-core/internal/service/models/menuitem"
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

func (m *mockQueue) kinds() []syncop.Kind {
	kinds := make([]syncop.Kind, len(m.ops))
	for i, op := range m.ops {
		kinds[i] = op.Kind
	}

	return kinds
}

func newTestService(now time.Time) (*SettlementService, *store.Store, *mockQueue) {
	st := store.NewStore()
	st.PutTable(table.Table{ID: "t1", Number: "5", Seats: 4, Status: table.StatusAvailable})
	st.PutMenuItem(menuitem.MenuItem{
		ID: "item-set-a", Name: "Set A", Price: 980,
		Category: category.CategorySetMeal, IsAvailable: true,
	})
	st.PutMenuItem(menuitem.MenuItem{
		ID: "item-tea", Name: "Tea", Price: 200,
		Category: category.CategoryDrink, IsAvailable: true,
	})

	q := &mockQueue{}
	svc := MustNewSettlementService(
		WithStore(st),
		WithSyncQueue(q),
		WithClock(func() time.Time { return now }),
	)

	return svc, st, q
}

func TestConfirmOccupiesTable(t *testing.T) {
	now := time.Date(2026, 1, 15, 18, 0, 0, 0, time.UTC)
	svc, st, q := newTestService(now)

	c := svc.NewCart()
	_ = c.Add("item-set-a")
	_ = c.Add("item-set-a")

	confirmed, err := svc.Confirm(context.Background(), "t1", c)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if confirmed.Status != table.StatusOccupied {
		t.Errorf("expected occupied, got %s", confirmed.Status)
	}
	if confirmed.CustomerCount != 1 {
		t.Errorf("expected customer count 1, got %d", confirmed.CustomerCount)
	}
	if confirmed.TotalAmount != 1960 {
		t.Errorf("expected total 1960, got %d", confirmed.TotalAmount)
	}
	if !c.Empty() {
		t.Error("expected cart cleared after confirm")
	}

	got, _ := st.Table("t1")
	if got.TotalAmount != 1960 {
		t.Errorf("expected committed total 1960, got %d", got.TotalAmount)
	}

	want := []syncop.Kind{syncop.KindInsertOrderLines, syncop.KindUpsertTable}
	got2 := q.kinds()
	if len(got2) != len(want) || got2[0] != want[0] || got2[1] != want[1] {
		t.Errorf("expected ops %v, got %v", want, got2)
	}
}

func TestConfirmFollowUpOrderMergesAndKeepsStartTime(t *testing.T) {
	first := time.Date(2026, 1, 15, 18, 0, 0, 0, time.UTC)
	svc, st, _ := newTestService(first)

	c := svc.NewCart()
	_ = c.Add("item-set-a")
	_ = c.Add("item-set-a")
	if _, err := svc.Confirm(context.Background(), "t1", c); err != nil {
		t.Fatalf("first confirm: %v", err)
	}

	c2 := svc.NewCart()
	_ = c2.Add("item-tea")
	confirmed, err := svc.Confirm(context.Background(), "t1", c2)
	if err != nil {
		t.Fatalf("second confirm: %v", err)
	}

	if confirmed.TotalAmount != 2160 {
		t.Errorf("expected total 2160 after follow-up, got %d", confirmed.TotalAmount)
	}
	if len(confirmed.Orders) != 2 {
		t.Errorf("expected two lines, got %+v", confirmed.Orders)
	}
	if confirmed.OrderStartTime == nil || !confirmed.OrderStartTime.Equal(first) {
		t.Errorf("expected original start time preserved, got %v", confirmed.OrderStartTime)
	}

	got, _ := st.Table("t1")
	if got.CustomerCount != 1 {
		t.Errorf("expected customer count preserved, got %d", got.CustomerCount)
	}
}

func TestConfirmEmptyCart(t *testing.T) {
	svc, _, _ := newTestService(time.Now())

	if _, err := svc.Confirm(context.Background(), "t1", svc.NewCart()); !errors.Is(err, errs.ErrEmptyOrder) {
		t.Errorf("expected ErrEmptyOrder, got %v", err)
	}
	if _, err := svc.Confirm(context.Background(), "t1", nil); !errors.Is(err, errs.ErrEmptyOrder) {
		t.Errorf("expected ErrEmptyOrder for nil cart, got %v", err)
	}
}

func TestConfirmUnknownTable(t *testing.T) {
	svc, _, _ := newTestService(time.Now())

	c := svc.NewCart()
	_ = c.Add("item-tea")

	if _, err := svc.Confirm(context.Background(), "missing", c); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if c.Empty() {
		t.Error("expected cart kept after a failed confirm")
	}
}

func TestPaySnapshotsAndFreesTable(t *testing.T) {
	now := time.Date(2026, 1, 15, 19, 30, 0, 0, time.UTC)
	svc, st, q := newTestService(now)

	c := svc.NewCart()
	_ = c.Add("item-set-a")
	_ = c.Add("item-set-a")
	_ = c.Add("item-tea")
	if _, err := svc.Confirm(context.Background(), "t1", c); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	q.ops = nil

	record, err := svc.Pay(context.Background(), "t1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if record.TableNumber != "5" {
		t.Errorf("expected table number 5, got %s", record.TableNumber)
	}
	if record.TotalAmount != 2160 {
		t.Errorf("expected total 2160, got %d", record.TotalAmount)
	}
	if len(record.Items) != 2 {
		t.Fatalf("expected two snapshot items, got %+v", record.Items)
	}
	if record.Items[0].Name != "Set A" || record.Items[0].Quantity != 2 || record.Items[0].UnitPrice != 980 {
		t.Errorf("unexpected first snapshot item: %+v", record.Items[0])
	}
	if !record.CompletedAt.Equal(now) {
		t.Errorf("expected completed at %v, got %v", now, record.CompletedAt)
	}

	got, _ := st.Table("t1")
	if got.Status != table.StatusAvailable || got.TotalAmount != 0 || len(got.Orders) != 0 {
		t.Errorf("expected table fully reset, got %+v", got)
	}

	if len(st.History()) != 1 {
		t.Error("expected one ledger record")
	}

	want := []syncop.Kind{
		syncop.KindInsertHistory,
		syncop.KindDeleteOrderLines,
		syncop.KindUpsertTable,
		syncop.KindPublishSettlement,
	}
	kinds := q.kinds()
	if len(kinds) != len(want) {
		t.Fatalf("expected ops %v, got %v", want, kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("op %d: expected %s, got %s", i, want[i], kinds[i])
		}
	}
}

func TestPayWithoutOrders(t *testing.T) {
	svc, _, _ := newTestService(time.Now())

	if _, err := svc.Pay(context.Background(), "t1"); !errors.Is(err, errs.ErrNoOrders) {
		t.Errorf("expected ErrNoOrders, got %v", err)
	}
	if _, err := svc.Pay(context.Background(), "missing"); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSettledTotalSurvivesMenuChanges(t *testing.T) {
	svc, st, _ := newTestService(time.Now())

	c := svc.NewCart()
	_ = c.Add("item-tea")
	if _, err := svc.Confirm(context.Background(), "t1", c); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	// A price change after confirmation must not move the bill.
	st.PutMenuItem(menuitem.MenuItem{
		ID: "item-tea", Name: "Tea", Price: 999,
		Category: category.CategoryDrink, IsAvailable: true,
	})

	record, err := svc.Pay(context.Background(), "t1")
	if err != nil {
		t.Fatalf("pay: %v", err)
	}
	if record.TotalAmount != 200 {
		t.Errorf("expected settled total 200, got %d", record.TotalAmount)
	}
}

func TestRelease(t *testing.T) {
	svc, st, _ := newTestService(time.Now())

	occupied, _ := st.Table("t1")
	occupied.Status = table.StatusOccupied
	occupied.CustomerCount = 1
	st.PutTable(occupied)

	released, err := svc.Release(context.Background(), "t1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if released.Status != table.StatusAvailable {
		t.Errorf("expected available, got %s", released.Status)
	}
	if len(st.History()) != 0 {
		t.Error("expected no ledger record for a release")
	}
}

func TestReleaseWithOrdersRefused(t *testing.T) {
	svc, _, _ := newTestService(time.Now())

	c := svc.NewCart()
	_ = c.Add("item-tea")
	if _, err := svc.Confirm(context.Background(), "t1", c); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	if _, err := svc.Release(context.Background(), "t1"); !errors.Is(err, errs.ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
}
