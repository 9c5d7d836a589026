package tables

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/corray333/pos-core/internal/service/models/table"
	"github.com/corray333/pos-core/internal/transport/http/httperr"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// service is an interface for the service layer.
type service interface {
	List() []table.Table
	Create(ctx context.Context, number string, seats int) (table.Table, error)
	Rename(ctx context.Context, tableID, newNumber string) (table.Table, error)
	Delete(ctx context.Context, tableID string, force bool) error
}

// List handles the table board listing.
func List(w http.ResponseWriter, r *http.Request, service service) {
	if err := json.NewEncoder(w).Encode(service.List()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response for list tables", "error", err)
	}
}

// createTableRequest represents a create table request.
type createTableRequest struct {
	Number string `json:"number" validate:"required"`
	Seats  int    `json:"seats"  validate:"gt=0"`
}

// Validate validates the create table request.
func (r *createTableRequest) Validate() error {
	return validator.New().Struct(r)
}

// Create handles the create table request.
func Create(w http.ResponseWriter, r *http.Request, service service) {
	req := createTableRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for create table", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for create table", "error", err)

		return
	}

	created, err := service.Create(r.Context(), req.Number, req.Seats)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error creating table", "error", err)

		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(created); err != nil {
		slog.Error("Error sending response for create table", "error", err)
	}
}

// renameTableRequest represents a rename table request.
type renameTableRequest struct {
	Number string `json:"number" validate:"required"`
}

// Rename handles the rename table request.
func Rename(w http.ResponseWriter, r *http.Request, service service) {
	req := renameTableRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for rename table", "error", err)

		return
	}

	if err := validator.New().Struct(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for rename table", "error", err)

		return
	}

	renamed, err := service.Rename(r.Context(), chi.URLParam(r, "tableID"), req.Number)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error renaming table", "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(renamed); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response for rename table", "error", err)
	}
}

// Delete handles the delete table request. The force query flag bypasses
// the occupied check and discards order data.
func Delete(w http.ResponseWriter, r *http.Request, service service) {
	force := r.URL.Query().Get("force") == "true"

	if err := service.Delete(r.Context(), chi.URLParam(r, "tableID"), force); err != nil {
		httperr.Write(w, err)
		slog.Error("Error deleting table", "error", err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
