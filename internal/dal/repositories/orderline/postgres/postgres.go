package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/pos-core/internal/dal/postgres"
	"github.com/corray333/pos-core/internal/service/models/orderline"
	"github.com/google/uuid"
)

// OrderLineRepository implements the confirmed order line repository for
// PostgreSQL. Lines are insert-only; settlement and force delete clear a
// table's lines wholesale.
type OrderLineRepository struct {
	client *postgres.Client
}

// NewOrderLineRepository creates a new order line repository.
func NewOrderLineRepository(client *postgres.Client) *OrderLineRepository {
	return &OrderLineRepository{
		client: client,
	}
}

// ListByTable retrieves all confirmed lines grouped by table id, in
// insertion order.
func (r *OrderLineRepository) ListByTable(ctx context.Context) (map[string][]orderline.Line, error) {
	query, args, err := sq.Select(
		"table_id",
		"item_id",
		"name",
		"category",
		"unit_price",
		"quantity",
	).
		From("order_lines").
		OrderBy("created_at ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query order lines: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]orderline.Line)
	for rows.Next() {
		var tableID string
		var line orderline.Line
		err := rows.Scan(
			&tableID,
			&line.ItemID,
			&line.Name,
			&line.Category,
			&line.UnitPrice,
			&line.Quantity,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order line: %w", err)
		}
		result[tableID] = append(result[tableID], line)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Insert appends confirmed lines for a table.
func (r *OrderLineRepository) Insert(ctx context.Context, tableID string, lines []orderline.Line) error {
	if len(lines) == 0 {
		return nil
	}

	builder := sq.Insert("order_lines").
		Columns(
			"id",
			"table_id",
			"item_id",
			"name",
			"category",
			"unit_price",
			"quantity",
			"created_at",
		).
		PlaceholderFormat(sq.Dollar)

	now := time.Now()
	for _, line := range lines {
		builder = builder.Values(
			uuid.NewString(),
			tableID,
			line.ItemID,
			line.Name,
			line.Category,
			line.UnitPrice,
			line.Quantity,
			now,
		)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.client.DB().ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert order lines: %w", err)
	}

	return nil
}

// DeleteByTable removes every line belonging to a table.
func (r *OrderLineRepository) DeleteByTable(ctx context.Context, tableID string) error {
	query, args, err := sq.Delete("order_lines").
		Where(sq.Eq{"table_id": tableID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	if _, err := r.client.DB().ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete order lines: %w", err)
	}

	return nil
}
