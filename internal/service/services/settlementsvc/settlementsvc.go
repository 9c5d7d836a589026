package settlementsvc

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/corray333/pos-core/internal/service/errs"
	"github.com/corray333/pos-core/internal/service/models/cart"
	"github.com/corray333/pos-core/internal/service/models/history"
	"github.com/corray333/pos-core/internal/service/models/syncop"
	"github.com/corray333/pos-core/internal/service/models/table"
	"github.com/corray333/pos-core/internal/store"
	"github.com/google/uuid"
)

// syncQueue accepts queued write-throughs to the remote collaborator.
type syncQueue interface {
	Enqueue(op syncop.Op)
}

// SettlementService is the state-transition authority for tables: it merges
// carts into confirmed orders and finalizes payments into the history
// ledger. All mutations commit to the in-memory store first; remote writes
// are queued behind it.
type SettlementService struct {
	store *store.Store
	queue syncQueue
	now   func() time.Time
}

// option is a function that configures the SettlementService.
type option func(*SettlementService)

// MustNewSettlementService creates a new SettlementService.
func MustNewSettlementService(opts ...option) *SettlementService {
	s := &SettlementService{
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		panic("settlementsvc: store is required")
	}

	return s
}

// WithStore sets the shared state store.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithStore(st *store.Store) option {
	return func(s *SettlementService) {
		s.store = st
	}
}

// WithSyncQueue sets the remote write-through queue.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithSyncQueue(q syncQueue) option {
	return func(s *SettlementService) {
		s.queue = q
	}
}

// WithClock overrides the time source. Used by tests.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithClock(now func() time.Time) option {
	return func(s *SettlementService) {
		s.now = now
	}
}

// NewCart opens a composition session backed by the live catalog, so adds
// re-validate availability at add-time.
func (s *SettlementService) NewCart() *cart.Cart {
	return cart.NewCart(s.store)
}

// Confirm merges the cart into the table's confirmed orders and occupies
// the table. Quantities merge for item ids already on the table; the
// seating start time survives re-confirms. The cart is cleared only after
// the merge commits, and a failed confirm changes nothing.
func (s *SettlementService) Confirm(ctx context.Context, tableID string, c *cart.Cart) (table.Table, error) {
	if c == nil || c.Empty() {
		return table.Table{}, fmt.Errorf("confirm order for table %q: %w", tableID, errs.ErrEmptyOrder)
	}

	t, ok := s.store.Table(tableID)
	if !ok {
		return table.Table{}, fmt.Errorf("confirm order: table %q: %w", tableID, errs.ErrNotFound)
	}

	lines := c.Lines()
	t.Occupy(lines, s.now())
	s.store.PutTable(t)
	c.Clear()

	if s.queue != nil {
		now := s.now()
		s.queue.Enqueue(syncop.Op{
			Kind:       syncop.KindInsertOrderLines,
			TableID:    t.ID,
			Lines:      lines,
			EnqueuedAt: now,
		})
		s.queue.Enqueue(syncop.Op{
			Kind:       syncop.KindUpsertTable,
			Table:      &t,
			EnqueuedAt: now,
		})
	}

	slog.Info("Order confirmed",
		"table_id", t.ID,
		"number", t.Number,
		"lines", len(lines),
		"total_amount", t.TotalAmount,
	)

	return t, nil
}

// Pay finalizes the table's bill: it snapshots the confirmed lines into an
// immutable history record, appends it to the ledger, and frees the table,
// as one unit. A table with no confirmed lines cannot be paid; callers use
// Release for that affordance.
func (s *SettlementService) Pay(ctx context.Context, tableID string) (history.Record, error) {
	t, ok := s.store.Table(tableID)
	if !ok {
		return history.Record{}, fmt.Errorf("pay table %q: %w", tableID, errs.ErrNotFound)
	}
	if len(t.Orders) == 0 {
		return history.Record{}, fmt.Errorf("pay table %q: %w", t.Number, errs.ErrNoOrders)
	}

	now := s.now()
	record := history.Record{
		ID:          uuid.NewString(),
		TableNumber: t.Number,
		Items:       history.Snapshot(t.Orders),
		TotalAmount: t.TotalAmount,
		CompletedAt: now,
	}

	t.Reset(now)
	s.store.CompleteSettlement(t, record)

	if s.queue != nil {
		s.queue.Enqueue(syncop.Op{
			Kind:       syncop.KindInsertHistory,
			Record:     &record,
			EnqueuedAt: now,
		})
		s.queue.Enqueue(syncop.Op{
			Kind:       syncop.KindDeleteOrderLines,
			TableID:    t.ID,
			EnqueuedAt: now,
		})
		s.queue.Enqueue(syncop.Op{
			Kind:       syncop.KindUpsertTable,
			Table:      &t,
			EnqueuedAt: now,
		})
		s.queue.Enqueue(syncop.Op{
			Kind:       syncop.KindPublishSettlement,
			Record:     &record,
			EnqueuedAt: now,
		})
	}

	slog.Info("Settlement completed",
		"table_id", t.ID,
		"number", record.TableNumber,
		"total_amount", record.TotalAmount,
	)

	return record, nil
}

// Release returns a table with no confirmed orders to available without
// writing a history record. Tables with orders must go through Pay; a
// release would silently lose their bill.
func (s *SettlementService) Release(ctx context.Context, tableID string) (table.Table, error) {
	t, ok := s.store.Table(tableID)
	if !ok {
		return table.Table{}, fmt.Errorf("release table %q: %w", tableID, errs.ErrNotFound)
	}
	if len(t.Orders) > 0 {
		return table.Table{}, fmt.Errorf("release table %q: table has confirmed orders: %w", t.Number, errs.ErrConflict)
	}

	t.Reset(s.now())
	s.store.PutTable(t)
	s.enqueueUpsert(t)

	slog.Info("Table released without payment", "table_id", t.ID, "number", t.Number)

	return t, nil
}

func (s *SettlementService) enqueueUpsert(t table.Table) {
	if s.queue == nil {
		return
	}
	s.queue.Enqueue(syncop.Op{
		Kind:       syncop.KindUpsertTable,
		Table:      &t,
		EnqueuedAt: s.now(),
	})
}
