package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/corray333/pos-core/internal/dal/postgres"
	"github.com/corray333/pos-core/internal/dal/rabbitmq"
	"github.com/corray333/pos-core/internal/dal/repositories/audit"
	historyrepo "github.com/corray333/pos-core/internal/dal/repositories/history/postgres"
	menurepo "github.com/corray333/pos-core/internal/dal/repositories/menuitem/postgres"
	orderlinerepo "github.com/corray333/pos-core/internal/dal/repositories/orderline/postgres"
	tablerepo "github.com/corray333/pos-core/internal/dal/repositories/table/postgres"
	"github.com/corray333/pos-core/internal/otel"
	"github.com/corray333/pos-core/internal/service/services/historysvc"
	"github.com/corray333/pos-core/internal/service/services/menusvc"
	"github.com/corray333/pos-core/internal/service/services/settlementsvc"
	"github.com/corray333/pos-core/internal/service/services/tablesvc"
	"github.com/corray333/pos-core/internal/store"
	httptransport "github.com/corray333/pos-core/internal/transport/http"
	"github.com/corray333/pos-core/internal/worker/syncer"
)

// App represents the application. The in-memory store is authoritative;
// Postgres and RabbitMQ are collaborators that may be down, in which case
// the app starts in degraded local-only mode and the sync worker catches
// up once they return.
type App struct {
	store          *store.Store
	syncWorker     *syncer.Worker
	transport      *httptransport.HTTPTransport
	postgresClient *postgres.Client
	rabbitClient   *rabbitmq.Client
	otelController *otel.OtelController
	cancelWorker   context.CancelFunc
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	otelController := otel.MustInitOtel()

	st := store.NewStore()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	postgresClient, err := postgres.NewClient(ctx)
	if err != nil {
		slog.Warn("Postgres unavailable, starting in local-only mode", "error", err)
		postgresClient = nil
	}

	rabbitClient, err := rabbitmq.NewClient()
	if err != nil {
		slog.Warn("RabbitMQ unavailable, settlement events will queue locally", "error", err)
		rabbitClient = nil
	}

	syncWorker := buildSyncWorker(st, postgresClient, rabbitClient)

	if postgresClient != nil {
		hydrate(ctx, st, postgresClient)
	} else {
		st.SetDegraded(true)
	}

	menuSvc := menusvc.MustNewMenuService(
		menusvc.WithStore(st),
		menusvc.WithSyncQueue(syncWorker),
	)
	tableSvc := tablesvc.MustNewTableService(
		tablesvc.WithStore(st),
		tablesvc.WithSyncQueue(syncWorker),
	)
	settlementSvc := settlementsvc.MustNewSettlementService(
		settlementsvc.WithStore(st),
		settlementsvc.WithSyncQueue(syncWorker),
	)
	historySvc := historysvc.MustNewHistoryService(
		historysvc.WithStore(st),
		historysvc.WithSyncQueue(syncWorker),
	)

	transport := httptransport.NewHTTPTransport(tableSvc, menuSvc, settlementSvc, historySvc)
	transport.RegisterRoutes()

	return &App{
		store:          st,
		syncWorker:     syncWorker,
		transport:      transport,
		postgresClient: postgresClient,
		rabbitClient:   rabbitClient,
		otelController: otelController,
	}
}

func buildSyncWorker(st *store.Store, pg *postgres.Client, rabbit *rabbitmq.Client) *syncer.Worker {
	opts := []syncer.Option{}

	if pg != nil {
		opts = append(opts,
			syncer.WithTableRepository(tablerepo.NewTableRepository(pg)),
			syncer.WithMenuRepository(menurepo.NewMenuRepository(pg)),
			syncer.WithOrderLineRepository(orderlinerepo.NewOrderLineRepository(pg)),
			syncer.WithHistoryRepository(historyrepo.NewHistoryRepository(pg)),
		)
	}

	if rabbit != nil {
		publisher, err := audit.NewAuditRabbitMQRepository(rabbit)
		if err != nil {
			slog.Warn("Failed to set up settlement publisher", "error", err)
		} else {
			opts = append(opts, syncer.WithSettlementPublisher(publisher))
		}
	}

	return syncer.NewWorker(st, opts...)
}

// hydrate loads the authoritative snapshot from Postgres. A partial failure
// leaves whatever loaded and flags degraded mode so the operator knows the
// board may be stale.
func hydrate(ctx context.Context, st *store.Store, pg *postgres.Client) {
	tables, err := tablerepo.NewTableRepository(pg).List(ctx)
	if err != nil {
		slog.Warn("Failed to load tables, starting empty", "error", err)
		st.SetDegraded(true)

		return
	}

	lines, err := orderlinerepo.NewOrderLineRepository(pg).ListByTable(ctx)
	if err != nil {
		slog.Warn("Failed to load order lines, starting empty", "error", err)
		st.SetDegraded(true)

		return
	}
	for i := range tables {
		tables[i].Orders = lines[tables[i].ID]
		tables[i].RecalcTotal()
	}

	items, err := menurepo.NewMenuRepository(pg).List(ctx)
	if err != nil {
		slog.Warn("Failed to load menu, starting empty", "error", err)
		st.SetDegraded(true)

		return
	}

	records, err := historyrepo.NewHistoryRepository(pg).List(ctx)
	if err != nil {
		slog.Warn("Failed to load history, starting empty", "error", err)
		st.SetDegraded(true)

		return
	}

	st.Load(tables, items, records)
	slog.Info("Store hydrated",
		"tables", len(tables),
		"menu_items", len(items),
		"history_records", len(records),
	)
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	a.cancelWorker = cancelWorker
	go a.syncWorker.Start(workerCtx)

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	<-stop
	slog.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	a.cancelWorker()
	if pending := a.syncWorker.Pending(); pending > 0 {
		slog.Warn("Shutting down with unsynced local changes", "pending", pending)
	}

	if a.postgresClient != nil {
		a.postgresClient.Close()
		slog.Info("Database connection closed gracefully")
	}

	if a.rabbitClient != nil {
		if err := a.rabbitClient.Close(); err != nil {
			slog.Error("RabbitMQ connection close error", "error", err)
		} else {
			slog.Info("RabbitMQ connection closed gracefully")
		}
	}

	if err := a.otelController.Shutdown(); err != nil {
		slog.Error("Trace provider shutdown error", "error", err)
	}

	slog.Info("Application shutdown complete")
}
