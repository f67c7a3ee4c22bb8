package classification

import (
	"time"

	"github.com/kurgu/movielog/internal/catalog/category"
	"github.com/kurgu/movielog/internal/catalog/movie"
)

// Status is the lifecycle state of a classification.
//
// The transition is one-way: Active → SoftDeleted. Soft-deleted rows are
// retained as history, excluded from uniqueness checks and normal listings,
// and are never updated or resurrected.
type Status string

const (
	// StatusActive marks a classification that is currently in effect.
	StatusActive Status = "active"

	// StatusSoftDeleted marks a retired classification kept for history.
	StatusSoftDeleted Status = "soft_deleted"
)

// Classification links a movie to a category.
//
// At most one active classification may exist per (movie, category) pair;
// any number of soft-deleted rows for the same pair may coexist. The
// invariant is enforced by a partial unique index in the store, so two
// racing creates cannot both commit.
type Classification struct {
	ID         int       `json:"id"`
	MovieID    int       `json:"movie_id"`
	CategoryID int       `json:"category_id"`
	AssignedOn time.Time `json:"assigned_on"`
	Status     Status    `json:"status"`
}

// Input is the request payload for classification create and update calls.
type Input struct {
	MovieID    int `json:"movie_id"`
	CategoryID int `json:"category_id"`
}

// Enriched is the read model for classification responses: the link plus its
// resolved movie and category, assembled at read time. No denormalized copy
// is stored.
type Enriched struct {
	ClassificationID int                `json:"classification_id"`
	Movie            *movie.Movie       `json:"movie"`
	Category         *category.Category `json:"category"`
	AssignedOn       time.Time          `json:"assigned_on"`
}

// Global field names for validation
const (
	FieldMovieID    = "movie_id"
	FieldCategoryID = "category_id"
)
