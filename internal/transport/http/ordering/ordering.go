package ordering

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/corray333/pos-core/internal/service/models/cart"
	"github.com/corray333/pos-core/internal/service/models/history"
	"github.com/corray333/pos-core/internal/service/models/table"
	"github.com/corray333/pos-core/internal/transport/http/httperr"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// service is an interface for the service layer.
type service interface {
	NewCart() *cart.Cart
	Confirm(ctx context.Context, tableID string, c *cart.Cart) (table.Table, error)
	Pay(ctx context.Context, tableID string) (history.Record, error)
	Release(ctx context.Context, tableID string) (table.Table, error)
}

// confirmRequest represents an order confirmation request.
type confirmRequest struct {
	Items []confirmItem `json:"items" validate:"required,min=1,dive"`
}

type confirmItem struct {
	ItemID   string `json:"itemId"   validate:"required"`
	Quantity int    `json:"quantity" validate:"gt=0"`
}

// Confirm handles an order confirmation. The request carries the staged
// selection; each line is re-validated against the current menu before
// the table is committed.
func Confirm(w http.ResponseWriter, r *http.Request, service service) {
	req := confirmRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for confirm order", "error", err)

		return
	}

	if err := validator.New().Struct(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for confirm order", "error", err)

		return
	}

	c := service.NewCart()
	for _, item := range req.Items {
		for i := 0; i < item.Quantity; i++ {
			if err := c.Add(item.ItemID); err != nil {
				httperr.Write(w, err)
				slog.Error("Error staging order line", "error", err, "item_id", item.ItemID)

				return
			}
		}
	}

	confirmed, err := service.Confirm(r.Context(), chi.URLParam(r, "tableID"), c)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error confirming order", "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(confirmed); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response for confirm order", "error", err)
	}
}

// Pay handles a settlement request.
func Pay(w http.ResponseWriter, r *http.Request, service service) {
	record, err := service.Pay(r.Context(), chi.URLParam(r, "tableID"))
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error settling table", "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(record); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response for pay", "error", err)
	}
}

// Release frees an occupied table that has no confirmed orders.
func Release(w http.ResponseWriter, r *http.Request, service service) {
	released, err := service.Release(r.Context(), chi.URLParam(r, "tableID"))
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error releasing table", "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(released); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response for release", "error", err)
	}
}
