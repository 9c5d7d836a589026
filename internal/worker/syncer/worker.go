package syncer

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/corray333/pos-core/internal/dal/interfaces/ihistoryrepo"
	"github.com/corray333/pos-core/internal/dal/interfaces/imenurepo"
	"github.com/corray333/pos-core/internal/dal/interfaces/iorderlinerepo"
	"github.com/corray333/pos-core/internal/dal/interfaces/itablerepo"
	"github.com/corray333/pos-core/internal/service/models/history"
	"github.com/corray333/pos-core/internal/service/models/syncop"
	"github.com/corray333/pos-core/internal/store"
	"github.com/spf13/viper"
)

// settlementPublisher publishes completed settlements to the broker.
type settlementPublisher interface {
	PublishSettlements(ctx context.Context, records []history.Record) error
}

// Worker replays queued remote writes against the persistence collaborator.
// The in-memory store commits first and stays authoritative; the worker
// drains the queue in order, backing off on failure and flagging degraded
// mode until the backlog clears. It never blocks the user-facing path.
type Worker struct {
	store      *store.Store
	tables     itablerepo.ITableRepository
	menu       imenurepo.IMenuRepository
	orderLines iorderlinerepo.IOrderLineRepository
	history    ihistoryrepo.IHistoryRepository
	publisher  settlementPublisher

	mu           sync.Mutex
	queue        []syncop.Op
	syncDegraded bool

	pollInterval  time.Duration
	retryInterval time.Duration
	kickCh        chan struct{}
	stopCh        chan struct{}
}

// Option configures the Worker.
type Option func(*Worker)

// NewWorker creates a new sync worker. Repositories may be nil when the
// remote store is unreachable at startup; ops queue up and the store is
// flagged degraded until a restart brings the backends back.
func NewWorker(st *store.Store, opts ...Option) *Worker {
	pollIntervalSeconds := viper.GetInt("syncer.poll_interval_seconds")
	if pollIntervalSeconds == 0 {
		pollIntervalSeconds = 5
	}

	retryIntervalSeconds := viper.GetInt("syncer.retry_interval_seconds")
	if retryIntervalSeconds == 0 {
		retryIntervalSeconds = 10
	}

	w := &Worker{
		store:         st,
		pollInterval:  time.Duration(pollIntervalSeconds) * time.Second,
		retryInterval: time.Duration(retryIntervalSeconds) * time.Second,
		kickCh:        make(chan struct{}, 1),
		stopCh:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	return w
}

// WithTableRepository sets the table repository.
func WithTableRepository(repo itablerepo.ITableRepository) Option {
	return func(w *Worker) {
		w.tables = repo
	}
}

// WithMenuRepository sets the menu repository.
func WithMenuRepository(repo imenurepo.IMenuRepository) Option {
	return func(w *Worker) {
		w.menu = repo
	}
}

// WithOrderLineRepository sets the order line repository.
func WithOrderLineRepository(repo iorderlinerepo.IOrderLineRepository) Option {
	return func(w *Worker) {
		w.orderLines = repo
	}
}

// WithHistoryRepository sets the history repository.
func WithHistoryRepository(repo ihistoryrepo.IHistoryRepository) Option {
	return func(w *Worker) {
		w.history = repo
	}
}

// WithSettlementPublisher sets the settlement event publisher.
func WithSettlementPublisher(p settlementPublisher) Option {
	return func(w *Worker) {
		w.publisher = p
	}
}

// Enqueue adds a write-through op and wakes the worker. Never blocks.
func (w *Worker) Enqueue(op syncop.Op) {
	w.mu.Lock()
	w.queue = append(w.queue, op)
	w.mu.Unlock()

	select {
	case w.kickCh <- struct{}{}:
	default:
	}
}

// Pending reports the current backlog size.
func (w *Worker) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	return len(w.queue)
}

// Start begins draining the queue until the context is canceled or Stop is
// called.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	slog.Info("Sync worker started", "poll_interval", w.pollInterval)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Sync worker shutting down")

			return
		case <-w.stopCh:
			slog.Info("Sync worker stopped")

			return
		case <-w.kickCh:
			w.process(ctx)
		case <-ticker.C:
			w.process(ctx)
		}
	}
}

// Stop stops the worker.
func (w *Worker) Stop() {
	close(w.stopCh)
}

// process drains ready ops in order. Ops stay strictly FIFO: a failing op
// blocks the ones behind it, otherwise a later upsert could overtake an
// earlier delete.
//
// The worker only clears degradation it caused itself. A failed startup
// hydration also flags the store, and an empty queue says nothing about
// that: the board is still stale until a restart rehydrates it.
func (w *Worker) process(ctx context.Context) {
	if w.tables == nil {
		if w.Pending() > 0 {
			w.markDegraded()
		}

		return
	}

	for {
		w.mu.Lock()
		if len(w.queue) == 0 {
			recovered := w.syncDegraded
			w.syncDegraded = false
			w.mu.Unlock()
			if recovered {
				w.store.SetDegraded(false)
			}

			return
		}
		op := w.queue[0]
		w.mu.Unlock()

		if time.Now().Before(op.NextRetryAt) {
			return
		}

		if err := w.apply(ctx, op); err != nil {
			w.markDegraded()

			retryCount := op.RetryCount + 1
			backoffSeconds := math.Pow(2, float64(retryCount)) * w.retryInterval.Seconds()
			nextRetryAt := time.Now().Add(time.Duration(backoffSeconds) * time.Second)

			slog.Warn("Failed to sync op, will retry",
				"kind", op.Kind,
				"retry_count", retryCount,
				"next_retry", nextRetryAt,
				"error", err,
			)

			w.mu.Lock()
			w.queue[0].RetryCount = retryCount
			w.queue[0].LastError = err.Error()
			w.queue[0].NextRetryAt = nextRetryAt
			w.mu.Unlock()

			return
		}

		w.mu.Lock()
		w.queue = w.queue[1:]
		w.mu.Unlock()
	}
}

// markDegraded flags the store and remembers that this degradation came
// from a stuck backlog, so draining the queue may later clear it.
func (w *Worker) markDegraded() {
	w.mu.Lock()
	w.syncDegraded = true
	w.mu.Unlock()

	w.store.SetDegraded(true)
}

func (w *Worker) apply(ctx context.Context, op syncop.Op) error {
	switch op.Kind {
	case syncop.KindUpsertTable:
		return w.tables.Upsert(ctx, *op.Table)
	case syncop.KindDeleteTable:
		return w.tables.Delete(ctx, op.TableID)
	case syncop.KindUpsertMenuItem:
		return w.menu.Upsert(ctx, *op.MenuItem)
	case syncop.KindInsertOrderLines:
		return w.orderLines.Insert(ctx, op.TableID, op.Lines)
	case syncop.KindDeleteOrderLines:
		return w.orderLines.DeleteByTable(ctx, op.TableID)
	case syncop.KindInsertHistory:
		return w.history.Insert(ctx, *op.Record)
	case syncop.KindSoftDeleteHistory:
		return w.history.SoftDelete(ctx, op.RecordID, time.Now())
	case syncop.KindPublishSettlement:
		if w.publisher == nil {
			// No broker configured; settlement events are best-effort.
			return nil
		}

		return w.publisher.PublishSettlements(ctx, []history.Record{*op.Record})
	default:
		slog.Error("Unknown sync op kind, dropping", "kind", op.Kind)

		return nil
	}
}
