package historysvc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/corray333/pos-core/internal/service/errs"
	"github.com/corray333/pos-core/internal/service/models/history"
	"github.com/corray333/pos-core/internal/service/models/syncop"
	"github.com/corray333/pos-core/internal/store"
)

type mockQueue struct {
	ops []syncop.Op
}

func (m *mockQueue) Enqueue(op syncop.Op) {
	m.ops = append(m.ops, op)
}

func newTestService() (*HistoryService, *store.Store, *mockQueue) {
	st := store.NewStore()
	q := &mockQueue{}
	svc := MustNewHistoryService(
		WithStore(st),
		WithSyncQueue(q),
	)

	return svc, st, q
}

func TestListNewestFirst(t *testing.T) {
	svc, st, _ := newTestService()
	base := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	st.AppendHistory(history.Record{ID: "r1", CompletedAt: base})
	st.AppendHistory(history.Record{ID: "r2", CompletedAt: base.Add(time.Hour)})

	records := svc.List()
	if len(records) != 2 {
		t.Fatalf("expected two records, got %d", len(records))
	}
	if records[0].ID != "r2" || records[1].ID != "r1" {
		t.Errorf("expected newest first, got %s then %s", records[0].ID, records[1].ID)
	}
}

func TestListExcludesDeleted(t *testing.T) {
	svc, st, _ := newTestService()
	st.AppendHistory(history.Record{ID: "r1", CompletedAt: time.Now()})

	deleted := history.Record{ID: "r2", CompletedAt: time.Now()}
	deleted.Delete(time.Now())
	st.AppendHistory(deleted)

	records := svc.List()
	if len(records) != 1 || records[0].ID != "r1" {
		t.Errorf("expected only the visible record, got %+v", records)
	}
}

func TestSoftDelete(t *testing.T) {
	svc, st, q := newTestService()
	st.AppendHistory(history.Record{ID: "r1", CompletedAt: time.Now()})

	if err := svc.SoftDelete(context.Background(), "r1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(svc.List()) != 0 {
		t.Error("expected record hidden after soft delete")
	}
	// The row survives for audit purposes.
	if len(st.History()) != 1 {
		t.Error("expected underlying record kept")
	}

	if len(q.ops) != 1 || q.ops[0].Kind != syncop.KindSoftDeleteHistory || q.ops[0].RecordID != "r1" {
		t.Errorf("expected one soft delete op for r1, got %+v", q.ops)
	}
}

func TestSoftDeleteUnknown(t *testing.T) {
	svc, _, _ := newTestService()

	if err := svc.SoftDelete(context.Background(), "missing"); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
