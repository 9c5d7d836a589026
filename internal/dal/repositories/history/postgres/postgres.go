package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/pos-core/internal/dal/postgres"
	"github.com/corray333/pos-core/internal/service/models/history"
)

// RecordDal represents the order history data access layer model. Item
// snapshots are stored as a jsonb document; they are never queried
// field-by-field.
type RecordDal struct {
	ID          string
	TableNumber string
	Items       []byte
	TotalAmount int64
	CompletedAt time.Time
	IsDeleted   bool
	DeletedAt   sql.NullTime
}

// ToModel converts RecordDal to the service layer Record model.
func (d *RecordDal) ToModel() (*history.Record, error) {
	var items []history.Item
	if len(d.Items) > 0 {
		if err := json.Unmarshal(d.Items, &items); err != nil {
			return nil, fmt.Errorf("failed to unmarshal history items: %w", err)
		}
	}

	record := &history.Record{
		ID:          d.ID,
		TableNumber: d.TableNumber,
		Items:       items,
		TotalAmount: d.TotalAmount,
		CompletedAt: d.CompletedAt,
	}
	record.IsDeleted = d.IsDeleted
	if d.DeletedAt.Valid {
		at := d.DeletedAt.Time
		record.DeletedAt = &at
	}

	return record, nil
}

// HistoryRepository implements the settlement ledger repository for
// PostgreSQL.
type HistoryRepository struct {
	client *postgres.Client
}

// NewHistoryRepository creates a new history repository.
func NewHistoryRepository(client *postgres.Client) *HistoryRepository {
	return &HistoryRepository{
		client: client,
	}
}

// List retrieves all records, newest first, soft-deleted ones included.
func (r *HistoryRepository) List(ctx context.Context) ([]history.Record, error) {
	query, args, err := sq.Select(
		"id",
		"table_number",
		"items",
		"total_amount",
		"completed_at",
		"is_deleted",
		"deleted_at",
	).
		From("order_history").
		OrderBy("completed_at DESC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query order history: %w", err)
	}
	defer rows.Close()

	var result []history.Record
	for rows.Next() {
		var dal RecordDal
		err := rows.Scan(
			&dal.ID,
			&dal.TableNumber,
			&dal.Items,
			&dal.TotalAmount,
			&dal.CompletedAt,
			&dal.IsDeleted,
			&dal.DeletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history record: %w", err)
		}
		model, err := dal.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert history dal to model: %w", err)
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Insert appends a settlement record.
func (r *HistoryRepository) Insert(ctx context.Context, record history.Record) error {
	items, err := json.Marshal(record.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal history items: %w", err)
	}

	query, args, err := sq.Insert("order_history").
		Columns(
			"id",
			"table_number",
			"items",
			"total_amount",
			"completed_at",
			"is_deleted",
			"deleted_at",
		).
		Values(
			record.ID,
			record.TableNumber,
			items,
			record.TotalAmount,
			record.CompletedAt,
			record.IsDeleted,
			nil,
		).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.client.DB().ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert history record: %w", err)
	}

	return nil
}

// SoftDelete hides a record from listings without removing the row.
func (r *HistoryRepository) SoftDelete(ctx context.Context, recordID string, at time.Time) error {
	query, args, err := sq.Update("order_history").
		Set("is_deleted", true).
		Set("deleted_at", at).
		Where(sq.Eq{"id": recordID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	if _, err := r.client.DB().ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to soft delete history record: %w", err)
	}

	return nil
}
