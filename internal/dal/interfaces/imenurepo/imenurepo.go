package imenurepo

import (
	"context"

	"github.com/corray333/pos-core/internal/service/models/menuitem"
)

// IMenuRepository is the remote persistence contract for menu items.
// Soft delete travels as a flag on Upsert, matching the collaborator's
// update-by-flag contract.
type IMenuRepository interface {
	List(ctx context.Context) ([]menuitem.MenuItem, error)
	Upsert(ctx context.Context, item menuitem.MenuItem) error
}
