package classification

import (
	"context"

	"github.com/kurgu/movielog/internal/catalog/category"
	"github.com/kurgu/movielog/internal/catalog/movie"
)

type Repository interface {
	// ListActive returns all classifications with StatusActive.
	ListActive(context context.Context) ([]*Classification, error)

	// GetActiveByID returns the classification only if it is active.
	GetActiveByID(context context.Context, id int) (*Classification, error)

	// GetByID returns the classification regardless of status.
	GetByID(context context.Context, id int) (*Classification, error)

	// FindActiveByPair returns the active classification holding the pair,
	// or (nil, nil) when the pair is free.
	FindActiveByPair(context context.Context, movieID, categoryID int) (*Classification, error)

	// Create inserts a new active classification and fills in the
	// store-assigned ID and assignment date.
	Create(context context.Context, c *Classification) error

	// UpdatePair overwrites the movie/category pair of an active row,
	// leaving status and assignment date untouched.
	UpdatePair(context context.Context, id, movieID, categoryID int) error

	// SoftDelete flips an active row to StatusSoftDeleted.
	SoftDelete(context context.Context, id int) error
}

// MovieResolver resolves movie references during validation and enrichment.
type MovieResolver interface {
	GetMovie(context context.Context, id int) (*movie.Movie, error)
}

// CategoryResolver resolves category references during validation and enrichment.
type CategoryResolver interface {
	GetCategory(context context.Context, id int) (*category.Category, error)
}
