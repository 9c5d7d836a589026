package ihistoryrepo

import (
	"context"
	"time"

	"github.com/corray333/pos-core/internal/service/models/history"
)

// IHistoryRepository is the remote persistence contract for the settlement
// ledger.
type IHistoryRepository interface {
	List(ctx context.Context) ([]history.Record, error)
	Insert(ctx context.Context, record history.Record) error
	SoftDelete(ctx context.Context, recordID string, at time.Time) error
}
