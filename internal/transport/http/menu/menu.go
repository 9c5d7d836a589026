package menu

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/corray333/pos-core/internal/service/models/category"
	"github.com/corray333/pos-core/internal/service/models/menuitem"
	"github.com/corray333/pos-core/internal/transport/http/httperr"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
)

// service is an interface for the service layer.
type service interface {
	ListActive() []menuitem.MenuItem
	ListTrash() []menuitem.MenuItem
	ToggleAvailability(ctx context.Context, itemID string)
	SoftDelete(ctx context.Context, itemID string) error
	Restore(ctx context.Context, itemID string) error
	Create(ctx context.Context, model menuitem.CreateModel) (menuitem.MenuItem, error)
	Update(ctx context.Context, itemID string, patch menuitem.UpdateModel) (menuitem.MenuItem, error)
}

// listQuery represents the menu listing filter.
type listQuery struct {
	Trash bool `schema:"trash"`
}

// List returns active items by default, or the trash when ?trash=true.
func List(w http.ResponseWriter, r *http.Request, service service) {
	query := listQuery{}
	if err := schema.NewDecoder().Decode(&query, r.URL.Query()); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding query for list menu", "error", err)

		return
	}

	items := service.ListActive()
	if query.Trash {
		items = service.ListTrash()
	}

	if err := json.NewEncoder(w).Encode(items); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response for list menu", "error", err)
	}
}

// createItemRequest represents a create menu item request.
type createItemRequest struct {
	Name        string `json:"name"     validate:"required"`
	Price       int64  `json:"price"    validate:"gt=0"`
	Category    string `json:"category" validate:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// Create handles the create menu item request.
func Create(w http.ResponseWriter, r *http.Request, service service) {
	req := createItemRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for create menu item", "error", err)

		return
	}

	if err := validator.New().Struct(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for create menu item", "error", err)

		return
	}

	cat, err := category.ParseCategory(req.Category)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error parsing category for create menu item", "error", err)

		return
	}

	created, err := service.Create(r.Context(), menuitem.CreateModel{
		Name:        req.Name,
		Price:       req.Price,
		Category:    cat,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error creating menu item", "error", err)

		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(created); err != nil {
		slog.Error("Error sending response for create menu item", "error", err)
	}
}

// updateItemRequest represents a partial menu item update.
type updateItemRequest struct {
	Name        *string `json:"name"`
	Price       *int64  `json:"price"`
	Category    *string `json:"category"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
}

// Update handles the update menu item request.
func Update(w http.ResponseWriter, r *http.Request, service service) {
	req := updateItemRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for update menu item", "error", err)

		return
	}

	patch := menuitem.UpdateModel{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
	if req.Category != nil {
		cat, err := category.ParseCategory(*req.Category)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			slog.Error("Error parsing category for update menu item", "error", err)

			return
		}
		patch.Category = &cat
	}

	updated, err := service.Update(r.Context(), chi.URLParam(r, "itemID"), patch)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error updating menu item", "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(updated); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response for update menu item", "error", err)
	}
}

// Toggle flips the serving availability of an item.
func Toggle(w http.ResponseWriter, r *http.Request, service service) {
	service.ToggleAvailability(r.Context(), chi.URLParam(r, "itemID"))
	w.WriteHeader(http.StatusNoContent)
}

// SoftDelete moves the item into the trash.
func SoftDelete(w http.ResponseWriter, r *http.Request, service service) {
	if err := service.SoftDelete(r.Context(), chi.URLParam(r, "itemID")); err != nil {
		httperr.Write(w, err)
		slog.Error("Error deleting menu item", "error", err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Restore brings a trashed item back into the active catalog.
func Restore(w http.ResponseWriter, r *http.Request, service service) {
	if err := service.Restore(r.Context(), chi.URLParam(r, "itemID")); err != nil {
		httperr.Write(w, err)
		slog.Error("Error restoring menu item", "error", err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
