package table

import (
	"database/sql/driver"
	"errors"
	"time"

	"github.com/corray333/pos-core/internal/service/models/orderline"
)

// Status is the table lifecycle state. There are no other states;
// reservation and cleaning are out of scope.
type Status string

const (
	StatusAvailable Status = "available"
	StatusOccupied  Status = "occupied"
)

var ErrInvalidStatus = errors.New("invalid table status")

func (s Status) String() string {
	return string(s)
}

func (s Status) Value() (driver.Value, error) {
	return s.String(), nil
}

func ParseStatus(s string) (Status, error) {
	switch s {
	case StatusAvailable.String():
		return StatusAvailable, nil
	case StatusOccupied.String():
		return StatusOccupied, nil
	default:
		return "", ErrInvalidStatus
	}
}

// Table represents a physical seating unit: the unit of occupancy and
// billing. Occupancy metadata (CustomerCount, OrderStartTime) is present
// iff Status is occupied.
type Table struct {
	ID             string           `json:"id"`
	Number         string           `json:"number"`
	Seats          int              `json:"seats"`
	Status         Status           `json:"status"`
	CustomerCount  int              `json:"customerCount,omitempty"`
	OrderStartTime *time.Time       `json:"orderStartTime,omitempty"`
	Orders         []orderline.Line `json:"orders"`
	TotalAmount    int64            `json:"totalAmount"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

// Occupied reports whether the table currently has guests.
func (t Table) Occupied() bool {
	return t.Status == StatusOccupied
}

// RecalcTotal restores the invariant TotalAmount == sum of line amounts.
func (t *Table) RecalcTotal() {
	t.TotalAmount = orderline.Total(t.Orders)
}

// Occupy merges lines into the confirmed orders and flips the table to
// occupied. The seating start time is set only on the first occupation so
// elapsed time reflects the original seating, not the latest addition.
func (t *Table) Occupy(lines []orderline.Line, now time.Time) {
	t.Orders = orderline.Merge(t.Orders, lines)
	t.RecalcTotal()
	if t.Status != StatusOccupied {
		t.Status = StatusOccupied
		t.CustomerCount = 1
		start := now
		t.OrderStartTime = &start
	}
	t.UpdatedAt = now
}

// Reset clears all occupancy state and returns the table to available.
func (t *Table) Reset(now time.Time) {
	t.Status = StatusAvailable
	t.CustomerCount = 0
	t.OrderStartTime = nil
	t.Orders = nil
	t.TotalAmount = 0
	t.UpdatedAt = now
}

// ElapsedMinutes is how long the current party has been seated.
func (t Table) ElapsedMinutes(now time.Time) int {
	if t.OrderStartTime == nil {
		return 0
	}

	return int(now.Sub(*t.OrderStartTime) / time.Minute)
}

// Clone returns a deep copy so callers can stage changes without aliasing
// the store's state.
func (t Table) Clone() Table {
	c := t
	if t.Orders != nil {
		c.Orders = make([]orderline.Line, len(t.Orders))
		copy(c.Orders, t.Orders)
	}
	if t.OrderStartTime != nil {
		start := *t.OrderStartTime
		c.OrderStartTime = &start
	}

	return c
}
