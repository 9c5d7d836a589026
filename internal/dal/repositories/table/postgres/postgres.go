package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/pos-core/internal/dal/postgres"
	"github.com/corray333/pos-core/internal/service/models/table"
)

// TableDal represents the table data access layer model.
type TableDal struct {
	ID             string
	Number         string
	Seats          int
	Status         string
	CustomerCount  int
	OrderStartTime sql.NullTime
	TotalAmount    int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ToModel converts TableDal to the service layer Table model. Order lines
// live in their own table and are merged in by the loader.
func (d *TableDal) ToModel() (*table.Table, error) {
	status, err := table.ParseStatus(d.Status)
	if err != nil {
		return nil, err
	}

	t := &table.Table{
		ID:            d.ID,
		Number:        d.Number,
		Seats:         d.Seats,
		Status:        status,
		CustomerCount: d.CustomerCount,
		TotalAmount:   d.TotalAmount,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
	if d.OrderStartTime.Valid {
		start := d.OrderStartTime.Time
		t.OrderStartTime = &start
	}

	return t, nil
}

// TableRepository implements the table repository for PostgreSQL.
type TableRepository struct {
	client *postgres.Client
}

// NewTableRepository creates a new table repository.
func NewTableRepository(client *postgres.Client) *TableRepository {
	return &TableRepository{
		client: client,
	}
}

// List retrieves all tables ordered by display number.
func (r *TableRepository) List(ctx context.Context) ([]table.Table, error) {
	query, args, err := sq.Select(
		"id",
		"number",
		"seats",
		"status",
		"customer_count",
		"order_start_time",
		"total_amount",
		"created_at",
		"updated_at",
	).
		From("tables").
		OrderBy("number ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}
	defer rows.Close()

	var result []table.Table
	for rows.Next() {
		var dal TableDal
		err := rows.Scan(
			&dal.ID,
			&dal.Number,
			&dal.Seats,
			&dal.Status,
			&dal.CustomerCount,
			&dal.OrderStartTime,
			&dal.TotalAmount,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan table: %w", err)
		}
		model, err := dal.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert table dal to model: %w", err)
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Upsert inserts or replaces a table row.
func (r *TableRepository) Upsert(ctx context.Context, t table.Table) error {
	var start sql.NullTime
	if t.OrderStartTime != nil {
		start = sql.NullTime{Time: *t.OrderStartTime, Valid: true}
	}

	query, args, err := sq.Insert("tables").
		Columns(
			"id",
			"number",
			"seats",
			"status",
			"customer_count",
			"order_start_time",
			"total_amount",
			"created_at",
			"updated_at",
		).
		Values(
			t.ID,
			t.Number,
			t.Seats,
			t.Status.String(),
			t.CustomerCount,
			start,
			t.TotalAmount,
			t.CreatedAt,
			t.UpdatedAt,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			number = EXCLUDED.number,
			seats = EXCLUDED.seats,
			status = EXCLUDED.status,
			customer_count = EXCLUDED.customer_count,
			order_start_time = EXCLUDED.order_start_time,
			total_amount = EXCLUDED.total_amount,
			updated_at = EXCLUDED.updated_at`).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert query: %w", err)
	}

	if _, err := r.client.DB().ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to upsert table: %w", err)
	}

	return nil
}

// Delete removes a table row.
func (r *TableRepository) Delete(ctx context.Context, tableID string) error {
	query, args, err := sq.Delete("tables").
		Where(sq.Eq{"id": tableID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	if _, err := r.client.DB().ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete table: %w", err)
	}

	return nil
}
