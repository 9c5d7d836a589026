package errs

import "errors"

// Error kinds surfaced by the services. Callers match with errors.Is.
var (
	// ErrValidation marks missing or invalid input: empty names, non-positive
	// prices, zero seats.
	ErrValidation = errors.New("validation error")

	// ErrConflict marks operations refused by current state: duplicate table
	// numbers, deleting an occupied table without force.
	ErrConflict = errors.New("conflict")

	// ErrNotFound marks an unknown table, menu item, or history record id.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable marks an attempt to order a deleted or suspended menu item.
	ErrUnavailable = errors.New("item unavailable")

	// ErrEmptyOrder marks a confirm with nothing in the cart.
	ErrEmptyOrder = errors.New("empty order")

	// ErrNoOrders marks a payment attempt on a table with no confirmed lines.
	ErrNoOrders = errors.New("no orders")
)
