package historysvc

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/corray333/pos-core/internal/service/errs"
	"github.com/corray333/pos-core/internal/service/models/history"
	"github.com/corray333/pos-core/internal/service/models/syncop"
	"github.com/corray333/pos-core/internal/store"
)

// syncQueue accepts queued write-throughs to the remote collaborator.
type syncQueue interface {
	Enqueue(op syncop.Op)
}

// HistoryService is the append-only ledger of completed settlements.
// Reporting views group and filter its output; the ledger itself does no
// aggregation.
type HistoryService struct {
	store *store.Store
	queue syncQueue
}

// option is a function that configures the HistoryService.
type option func(*HistoryService)

// MustNewHistoryService creates a new HistoryService.
func MustNewHistoryService(opts ...option) *HistoryService {
	s := &HistoryService{}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		panic("historysvc: store is required")
	}

	return s
}

// WithStore sets the shared state store.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithStore(st *store.Store) option {
	return func(s *HistoryService) {
		s.store = st
	}
}

// WithSyncQueue sets the remote write-through queue.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithSyncQueue(q syncQueue) option {
	return func(s *HistoryService) {
		s.queue = q
	}
}

// List returns visible records, newest first.
func (s *HistoryService) List() []history.Record {
	all := s.store.History()
	records := make([]history.Record, 0, len(all))
	for _, r := range all {
		if !r.IsDeleted {
			records = append(records, r)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CompletedAt.After(records[j].CompletedAt)
	})

	return records
}

// SoftDelete hides a record from subsequent listings without physically
// removing it.
func (s *HistoryService) SoftDelete(ctx context.Context, recordID string) error {
	var target *history.Record
	for _, r := range s.store.History() {
		if r.ID == recordID {
			target = &r

			break
		}
	}
	if target == nil {
		return fmt.Errorf("soft delete history record %q: %w", recordID, errs.ErrNotFound)
	}

	target.Mark.Delete(time.Now())
	s.store.UpdateHistory(*target)

	if s.queue != nil {
		s.queue.Enqueue(syncop.Op{
			Kind:       syncop.KindSoftDeleteHistory,
			RecordID:   recordID,
			EnqueuedAt: time.Now(),
		})
	}

	return nil
}
