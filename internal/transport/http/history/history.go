package history

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	historymodel "github.com/corray333/pos-core/internal/service/models/history"
	"github.com/corray333/pos-core/internal/transport/http/httperr"
	"github.com/go-chi/chi/v5"
)

// service is an interface for the service layer.
type service interface {
	List() []historymodel.Record
	SoftDelete(ctx context.Context, recordID string) error
}

// List returns settlement records, newest first.
func List(w http.ResponseWriter, r *http.Request, service service) {
	if err := json.NewEncoder(w).Encode(service.List()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response for list history", "error", err)
	}
}

// SoftDelete hides a settlement record from listings without destroying
// the underlying row.
func SoftDelete(w http.ResponseWriter, r *http.Request, service service) {
	if err := service.SoftDelete(r.Context(), chi.URLParam(r, "recordID")); err != nil {
		httperr.Write(w, err)
		slog.Error("Error deleting history record", "error", err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
