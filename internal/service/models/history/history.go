package history

import (
	"time"

	"github.com/corray333/pos-core/internal/service/models/orderline"
	"github.com/corray333/pos-core/internal/service/models/softdelete"
)

// Item is a settled line snapshot. The table and menu items may change or
// disappear later; the record keeps only captured values.
type Item struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
}

// Record is one completed settlement. Immutable after creation; soft delete
// only hides it from listings.
type Record struct {
	ID          string    `json:"id"`
	TableNumber string    `json:"tableNumber"`
	Items       []Item    `json:"items"`
	TotalAmount int64     `json:"totalAmount"`
	CompletedAt time.Time `json:"completedAt"`
	softdelete.Mark
}

// Snapshot builds the immutable items list from a table's confirmed lines.
func Snapshot(lines []orderline.Line) []Item {
	items := make([]Item, len(lines))
	for i, l := range lines {
		items[i] = Item{
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		}
	}

	return items
}

// Clone returns a copy with its own items slice.
func (r Record) Clone() Record {
	c := r
	if r.Items != nil {
		c.Items = make([]Item, len(r.Items))
		copy(c.Items, r.Items)
	}
	if r.DeletedAt != nil {
		at := *r.DeletedAt
		c.DeletedAt = &at
	}

	return c
}
