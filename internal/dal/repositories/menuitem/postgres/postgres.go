package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/pos-core/internal/dal/postgres"
	"github.com/corray333/pos-core/internal/service/models/category"
	"github.com/corray333/pos-core/internal/service/models/menuitem"
)

// MenuItemDal represents the menu item data access layer model.
type MenuItemDal struct {
	ID          string
	Name        string
	Price       int64
	Category    string
	Description sql.NullString
	ImageURL    sql.NullString
	IsAvailable bool
	IsDeleted   bool
	DeletedAt   sql.NullTime
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ToModel converts MenuItemDal to the service layer MenuItem model.
func (d *MenuItemDal) ToModel() (*menuitem.MenuItem, error) {
	cat, err := category.ParseCategory(d.Category)
	if err != nil {
		return nil, err
	}

	item := &menuitem.MenuItem{
		ID:          d.ID,
		Name:        d.Name,
		Price:       d.Price,
		Category:    cat,
		Description: d.Description.String,
		ImageURL:    d.ImageURL.String,
		IsAvailable: d.IsAvailable,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	item.IsDeleted = d.IsDeleted
	if d.DeletedAt.Valid {
		at := d.DeletedAt.Time
		item.DeletedAt = &at
	}

	return item, nil
}

// MenuRepository implements the menu item repository for PostgreSQL.
type MenuRepository struct {
	client *postgres.Client
}

// NewMenuRepository creates a new menu item repository.
func NewMenuRepository(client *postgres.Client) *MenuRepository {
	return &MenuRepository{
		client: client,
	}
}

// List retrieves all menu items, deleted ones included, ordered by category
// then name.
func (r *MenuRepository) List(ctx context.Context) ([]menuitem.MenuItem, error) {
	query, args, err := sq.Select(
		"id",
		"name",
		"price",
		"category",
		"description",
		"image_url",
		"is_available",
		"is_deleted",
		"deleted_at",
		"created_at",
		"updated_at",
	).
		From("menu_items").
		OrderBy("category ASC", "name ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query menu items: %w", err)
	}
	defer rows.Close()

	var result []menuitem.MenuItem
	for rows.Next() {
		var dal MenuItemDal
		err := rows.Scan(
			&dal.ID,
			&dal.Name,
			&dal.Price,
			&dal.Category,
			&dal.Description,
			&dal.ImageURL,
			&dal.IsAvailable,
			&dal.IsDeleted,
			&dal.DeletedAt,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		model, err := dal.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert menu item dal to model: %w", err)
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Upsert inserts or replaces a menu item row. Soft delete and restore both
// travel through here as flag updates.
func (r *MenuRepository) Upsert(ctx context.Context, item menuitem.MenuItem) error {
	var deletedAt sql.NullTime
	if item.DeletedAt != nil {
		deletedAt = sql.NullTime{Time: *item.DeletedAt, Valid: true}
	}

	query, args, err := sq.Insert("menu_items").
		Columns(
			"id",
			"name",
			"price",
			"category",
			"description",
			"image_url",
			"is_available",
			"is_deleted",
			"deleted_at",
			"created_at",
			"updated_at",
		).
		Values(
			item.ID,
			item.Name,
			item.Price,
			item.Category.String(),
			item.Description,
			item.ImageURL,
			item.IsAvailable,
			item.IsDeleted,
			deletedAt,
			item.CreatedAt,
			item.UpdatedAt,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			price = EXCLUDED.price,
			category = EXCLUDED.category,
			description = EXCLUDED.description,
			image_url = EXCLUDED.image_url,
			is_available = EXCLUDED.is_available,
			is_deleted = EXCLUDED.is_deleted,
			deleted_at = EXCLUDED.deleted_at,
			updated_at = EXCLUDED.updated_at`).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build upsert query: %w", err)
	}

	if _, err := r.client.DB().ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to upsert menu item: %w", err)
	}

	return nil
}
