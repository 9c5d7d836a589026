package menuitem

import (
	"time"

	"github.com/corray333/pos-core/internal/service/models/category"
	"github.com/corray333/pos-core/internal/service/models/softdelete"
)

// MenuItem represents a sellable item on the menu.
//
// IsAvailable and the soft-delete mark are independent: an item can be
// temporarily suspended without being deleted, and a deleted item keeps its
// prior availability so a restore brings it back exactly as it was.
type MenuItem struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Price       int64             `json:"price"`
	Category    category.Category `json:"category"`
	Description string            `json:"description,omitempty"`
	ImageURL    string            `json:"imageUrl,omitempty"`
	IsAvailable bool              `json:"isAvailable"`
	softdelete.Mark
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Orderable reports whether the item can be added to a cart right now.
// Deletion always wins over the availability flag.
func (m MenuItem) Orderable() bool {
	return !m.IsDeleted && m.IsAvailable
}
