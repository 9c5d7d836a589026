package menuitem

import "github.com/corray333/pos-core/internal/service/models/category"

// CreateModel is the input for creating a menu item.
type CreateModel struct {
	Name        string
	Price       int64
	Category    category.Category
	Description string
	ImageURL    string
}

// UpdateModel is a partial update; nil fields are left unchanged.
type UpdateModel struct {
	Name        *string
	Price       *int64
	Category    *category.Category
	Description *string
	ImageURL    *string
}
