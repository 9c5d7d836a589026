package itablerepo

import (
	"context"

	"github.com/corray333/pos-core/internal/service/models/table"
)

// ITableRepository is the remote persistence contract for tables.
type ITableRepository interface {
	List(ctx context.Context) ([]table.Table, error)
	Upsert(ctx context.Context, t table.Table) error
	Delete(ctx context.Context, tableID string) error
}
