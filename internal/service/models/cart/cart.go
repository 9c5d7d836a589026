package cart

import (
	"fmt"

	"github.com/corray333/pos-core/internal/service/errs"
	"github.com/corray333/pos-core/internal/service/models/menuitem"
	"github.com/corray333/pos-core/internal/service/models/orderline"
)

// Catalog resolves the current state of a menu item. Add goes back to the
// catalog on every call because availability can change between menu load
// and add.
type Catalog interface {
	MenuItem(id string) (menuitem.MenuItem, bool)
}

// Cart accumulates order lines for one table's composition session. It is
// transient: nothing is persisted until the cart is confirmed into the
// table, and Clear drops it afterwards.
type Cart struct {
	catalog Catalog
	lines   []orderline.Line
}

func NewCart(catalog Catalog) *Cart {
	return &Cart{catalog: catalog}
}

// Add puts one unit of the item into the cart, merging with an existing
// line for the same item. The item is re-validated against the catalog's
// current state, not a snapshot taken at menu load.
func (c *Cart) Add(itemID string) error {
	item, ok := c.catalog.MenuItem(itemID)
	if !ok {
		return fmt.Errorf("add %q to cart: %w", itemID, errs.ErrNotFound)
	}
	if !item.Orderable() {
		return fmt.Errorf("add %q to cart: %w", itemID, errs.ErrUnavailable)
	}

	for i := range c.lines {
		if c.lines[i].ItemID == itemID {
			c.lines[i].Quantity++

			return nil
		}
	}

	c.lines = append(c.lines, orderline.Line{
		ItemID:    item.ID,
		Name:      item.Name,
		Category:  item.Category.String(),
		UnitPrice: item.Price,
		Quantity:  1,
	})

	return nil
}

// Remove takes one unit of the item out of the cart, dropping the line when
// its quantity reaches zero. Removing an absent item is a no-op.
func (c *Cart) Remove(itemID string) {
	for i := range c.lines {
		if c.lines[i].ItemID != itemID {
			continue
		}
		if c.lines[i].Quantity > 1 {
			c.lines[i].Quantity--
		} else {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
		}

		return
	}
}

// Total is the sum over all lines.
func (c *Cart) Total() int64 {
	return orderline.Total(c.lines)
}

// Lines returns a copy of the cart contents.
func (c *Cart) Lines() []orderline.Line {
	lines := make([]orderline.Line, len(c.lines))
	copy(lines, c.lines)

	return lines
}

// Empty reports whether there is anything to confirm.
func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

// Clear empties the cart after a successful confirm.
func (c *Cart) Clear() {
	c.lines = nil
}
