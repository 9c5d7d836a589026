package tablesvc

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/corray333/pos-core/internal/service/errs"
	"github.com/corray333/pos-core/internal/service/models/syncop"
	"github.com/corray333/pos-core/internal/service/models/table"
	"github.com/corray333/pos-core/internal/store"
	"github.com/google/uuid"
)

// syncQueue accepts queued write-throughs to the remote collaborator.
type syncQueue interface {
	Enqueue(op syncop.Op)
}

// TableService owns the canonical lifecycle of every table on the board.
type TableService struct {
	store *store.Store
	queue syncQueue
}

// option is a function that configures the TableService.
type option func(*TableService)

// MustNewTableService creates a new TableService.
func MustNewTableService(opts ...option) *TableService {
	s := &TableService{}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		panic("tablesvc: store is required")
	}

	return s
}

// WithStore sets the shared state store.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithStore(st *store.Store) option {
	return func(s *TableService) {
		s.store = st
	}
}

// WithSyncQueue sets the remote write-through queue.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithSyncQueue(q syncQueue) option {
	return func(s *TableService) {
		s.queue = q
	}
}

// List returns all tables ordered by display number.
func (s *TableService) List() []table.Table {
	return s.store.Tables()
}

// Get returns one table.
func (s *TableService) Get(tableID string) (table.Table, error) {
	t, ok := s.store.Table(tableID)
	if !ok {
		return table.Table{}, fmt.Errorf("get table %q: %w", tableID, errs.ErrNotFound)
	}

	return t, nil
}

// Create adds a new table. New tables always start available with a zero
// total.
func (s *TableService) Create(ctx context.Context, number string, seats int) (table.Table, error) {
	if number == "" {
		return table.Table{}, fmt.Errorf("create table: number is required: %w", errs.ErrValidation)
	}
	if seats <= 0 {
		return table.Table{}, fmt.Errorf("create table: seats must be positive: %w", errs.ErrValidation)
	}
	if _, exists := s.store.TableByNumber(number); exists {
		return table.Table{}, fmt.Errorf("create table: number %q already in use: %w", number, errs.ErrConflict)
	}

	now := time.Now()
	t := table.Table{
		ID:        uuid.NewString(),
		Number:    number,
		Seats:     seats,
		Status:    table.StatusAvailable,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.store.PutTable(t)
	s.enqueueUpsert(t)

	return t, nil
}

// Rename changes the display number. Numbers are unique across live tables.
func (s *TableService) Rename(ctx context.Context, tableID, newNumber string) (table.Table, error) {
	if newNumber == "" {
		return table.Table{}, fmt.Errorf("rename table: number is required: %w", errs.ErrValidation)
	}

	t, ok := s.store.Table(tableID)
	if !ok {
		return table.Table{}, fmt.Errorf("rename table %q: %w", tableID, errs.ErrNotFound)
	}

	if other, exists := s.store.TableByNumber(newNumber); exists && other.ID != tableID {
		return table.Table{}, fmt.Errorf("rename table: number %q already in use: %w", newNumber, errs.ErrConflict)
	}

	t.Number = newNumber
	t.UpdatedAt = time.Now()
	s.store.PutTable(t)
	s.enqueueUpsert(t)

	return t, nil
}

// Delete removes an available table. Occupied tables are refused unless
// force is set; a forced delete discards any in-flight order data and is
// irreversible, so it is logged loudly.
func (s *TableService) Delete(ctx context.Context, tableID string, force bool) error {
	t, ok := s.store.Table(tableID)
	if !ok {
		return fmt.Errorf("delete table %q: %w", tableID, errs.ErrNotFound)
	}

	if t.Occupied() && !force {
		return fmt.Errorf("delete table %q: table is occupied: %w", t.Number, errs.ErrConflict)
	}

	if t.Occupied() {
		slog.Warn("Force deleting occupied table, discarding order data",
			"table_id", t.ID,
			"number", t.Number,
			"orders", len(t.Orders),
			"total_amount", t.TotalAmount,
		)
		if s.queue != nil {
			s.queue.Enqueue(syncop.Op{
				Kind:       syncop.KindDeleteOrderLines,
				TableID:    t.ID,
				EnqueuedAt: time.Now(),
			})
		}
	}

	s.store.RemoveTable(tableID)
	if s.queue != nil {
		s.queue.Enqueue(syncop.Op{
			Kind:       syncop.KindDeleteTable,
			TableID:    tableID,
			EnqueuedAt: time.Now(),
		})
	}

	return nil
}

func (s *TableService) enqueueUpsert(t table.Table) {
	if s.queue == nil {
		return
	}
	s.queue.Enqueue(syncop.Op{
		Kind:       syncop.KindUpsertTable,
		Table:      &t,
		EnqueuedAt: time.Now(),
	})
}
