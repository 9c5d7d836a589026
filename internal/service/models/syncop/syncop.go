package syncop

import (
	"time"

	"github.com/corray333/pos-core/internal/service/models/history"
	"github.com/corray333/pos-core/internal/service/models/menuitem"
	"github.com/corray333/pos-core/internal/service/models/orderline"
	"github.com/corray333/pos-core/internal/service/models/table"
)

// Kind identifies the remote write an Op describes.
type Kind string

const (
	KindUpsertTable       Kind = "upsert_table"
	KindDeleteTable       Kind = "delete_table"
	KindUpsertMenuItem    Kind = "upsert_menu_item"
	KindInsertOrderLines  Kind = "insert_order_lines"
	KindDeleteOrderLines  Kind = "delete_order_lines"
	KindInsertHistory     Kind = "insert_history"
	KindSoftDeleteHistory Kind = "soft_delete_history"
	KindPublishSettlement Kind = "publish_settlement"
)

// Op is one queued write-through to the remote persistence collaborator (or
// the settlement event broker). The in-memory store commits first; ops are
// replayed in order by the syncer, with retries on failure.
type Op struct {
	Kind     Kind
	TableID  string
	RecordID string

	Table    *table.Table
	MenuItem *menuitem.MenuItem
	Lines    []orderline.Line
	Record   *history.Record

	RetryCount  int
	LastError   string
	EnqueuedAt  time.Time
	NextRetryAt time.Time
}
