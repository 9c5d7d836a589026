package category

import (
	"database/sql/driver"
	"errors"
)

// Category is the closed set of menu sections.
type Category string

const (
	CategorySetMeal Category = "set_meal"
	CategoryDrink   Category = "drink"
	CategoryDessert Category = "dessert"
)

var ErrInvalidCategory = errors.New("invalid category")

func (c Category) String() string {
	return string(c)
}

func (c Category) Value() (driver.Value, error) {
	return c.String(), nil
}

func ParseCategory(s string) (Category, error) {
	switch s {
	case CategorySetMeal.String():
		return CategorySetMeal, nil
	case CategoryDrink.String():
		return CategoryDrink, nil
	case CategoryDessert.String():
		return CategoryDessert, nil
	default:
		return "", ErrInvalidCategory
	}
}
