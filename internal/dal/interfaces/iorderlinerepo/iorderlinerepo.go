package iorderlinerepo

import (
	"context"

	"github.com/corray333/pos-core/internal/service/models/orderline"
)

// IOrderLineRepository is the remote persistence contract for confirmed
// order lines, keyed by table.
type IOrderLineRepository interface {
	ListByTable(ctx context.Context) (map[string][]orderline.Line, error)
	Insert(ctx context.Context, tableID string, lines []orderline.Line) error
	DeleteByTable(ctx context.Context, tableID string) error
}
