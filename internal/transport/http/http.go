package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/corray333/pos-core/internal/service/models/cart"
	"github.com/corray333/pos-core/internal/service/models/history"
	"github.com/corray333/pos-core/internal/service/models/menuitem"
	"github.com/corray333/pos-core/internal/service/models/table"
	historyhandler "github.com/corray333/pos-core/internal/transport/http/history"
	menuhandler "github.com/corray333/pos-core/internal/transport/http/menu"
	orderinghandler "github.com/corray333/pos-core/internal/transport/http/ordering"
	tableshandler "github.com/corray333/pos-core/internal/transport/http/tables"
	"github.com/corray333/pos-core/pkg/http/middleware/trace"
	"github.com/corray333/pos-core/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
)

type tableService interface {
	List() []table.Table
	Create(ctx context.Context, number string, seats int) (table.Table, error)
	Rename(ctx context.Context, tableID, newNumber string) (table.Table, error)
	Delete(ctx context.Context, tableID string, force bool) error
}

type menuService interface {
	ListActive() []menuitem.MenuItem
	ListTrash() []menuitem.MenuItem
	ToggleAvailability(ctx context.Context, itemID string)
	SoftDelete(ctx context.Context, itemID string) error
	Restore(ctx context.Context, itemID string) error
	Create(ctx context.Context, model menuitem.CreateModel) (menuitem.MenuItem, error)
	Update(ctx context.Context, itemID string, patch menuitem.UpdateModel) (menuitem.MenuItem, error)
}

type settlementService interface {
	NewCart() *cart.Cart
	Confirm(ctx context.Context, tableID string, c *cart.Cart) (table.Table, error)
	Pay(ctx context.Context, tableID string) (history.Record, error)
	Release(ctx context.Context, tableID string) (table.Table, error)
}

type historyService interface {
	List() []history.Record
	SoftDelete(ctx context.Context, recordID string) error
}

type HTTPTransport struct {
	server     *http.Server
	router     *chi.Mux
	tables     tableService
	menu       menuService
	settlement settlementService
	history    historyService
}

func NewHTTPTransport(
	tables tableService,
	menu menuService,
	settlement settlementService,
	hist historyService,
) *HTTPTransport {
	router := newRouter()
	server := newServer(router)

	return &HTTPTransport{
		server:     server,
		router:     router,
		tables:     tables,
		menu:       menu,
		settlement: settlement,
		history:    hist,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Route("/api", func(r chi.Router) {
		r.Get("/tables", h.listTables)
		r.Post("/tables", h.createTable)
		r.Patch("/tables/{tableID}", h.renameTable)
		r.Delete("/tables/{tableID}", h.deleteTable)
		r.Post("/tables/{tableID}/orders", h.confirmOrder)
		r.Post("/tables/{tableID}/payment", h.payTable)
		r.Post("/tables/{tableID}/release", h.releaseTable)

		r.Get("/menu", h.listMenu)
		r.Post("/menu", h.createMenuItem)
		r.Patch("/menu/{itemID}", h.updateMenuItem)
		r.Post("/menu/{itemID}/toggle", h.toggleMenuItem)
		r.Delete("/menu/{itemID}", h.deleteMenuItem)
		r.Post("/menu/{itemID}/restore", h.restoreMenuItem)

		r.Get("/history", h.listHistory)
		r.Delete("/history/{recordID}", h.deleteHistory)
	})
}

func (h *HTTPTransport) listTables(w http.ResponseWriter, r *http.Request) {
	tableshandler.List(w, r, h.tables)
}

func (h *HTTPTransport) createTable(w http.ResponseWriter, r *http.Request) {
	tableshandler.Create(w, r, h.tables)
}

func (h *HTTPTransport) renameTable(w http.ResponseWriter, r *http.Request) {
	tableshandler.Rename(w, r, h.tables)
}

func (h *HTTPTransport) deleteTable(w http.ResponseWriter, r *http.Request) {
	tableshandler.Delete(w, r, h.tables)
}

func (h *HTTPTransport) confirmOrder(w http.ResponseWriter, r *http.Request) {
	orderinghandler.Confirm(w, r, h.settlement)
}

func (h *HTTPTransport) payTable(w http.ResponseWriter, r *http.Request) {
	orderinghandler.Pay(w, r, h.settlement)
}

func (h *HTTPTransport) releaseTable(w http.ResponseWriter, r *http.Request) {
	orderinghandler.Release(w, r, h.settlement)
}

func (h *HTTPTransport) listMenu(w http.ResponseWriter, r *http.Request) {
	menuhandler.List(w, r, h.menu)
}

func (h *HTTPTransport) createMenuItem(w http.ResponseWriter, r *http.Request) {
	menuhandler.Create(w, r, h.menu)
}

func (h *HTTPTransport) updateMenuItem(w http.ResponseWriter, r *http.Request) {
	menuhandler.Update(w, r, h.menu)
}

func (h *HTTPTransport) toggleMenuItem(w http.ResponseWriter, r *http.Request) {
	menuhandler.Toggle(w, r, h.menu)
}

func (h *HTTPTransport) deleteMenuItem(w http.ResponseWriter, r *http.Request) {
	menuhandler.SoftDelete(w, r, h.menu)
}

func (h *HTTPTransport) restoreMenuItem(w http.ResponseWriter, r *http.Request) {
	menuhandler.Restore(w, r, h.menu)
}

func (h *HTTPTransport) listHistory(w http.ResponseWriter, r *http.Request) {
	historyhandler.List(w, r, h.history)
}

func (h *HTTPTransport) deleteHistory(w http.ResponseWriter, r *http.Request) {
	historyhandler.SoftDelete(w, r, h.history)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(trace.NewTraceMiddleware)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
