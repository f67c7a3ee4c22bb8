package category

import "context"

type Repository interface {
	ListCategories(context context.Context) ([]*Category, error)
	GetCategory(context context.Context, id int) (*Category, error)
	CreateCategory(context context.Context, c *Category) error
	UpdateCategory(context context.Context, c *Category) error
	DeleteCategory(context context.Context, id int) error
}

// ReferenceChecker reports whether any active classification still points at
// a category. It gates physical deletion; soft-deleted history never blocks.
type ReferenceChecker interface {
	ExistsActiveByCategoryID(context context.Context, categoryID int) (bool, error)
}
