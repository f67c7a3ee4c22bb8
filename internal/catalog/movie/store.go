package movie

import "context"

type Repository interface {
	ListMovies(context context.Context) ([]*Movie, error)
	GetMovie(context context.Context, id int) (*Movie, error)
	CreateMovie(context context.Context, m *Movie) error
	UpdateMovie(context context.Context, m *Movie) error
	DeleteMovie(context context.Context, id int) error
}

// ReferenceChecker reports whether any active classification still points at
// a movie. It gates physical deletion; soft-deleted history never blocks.
type ReferenceChecker interface {
	ExistsActiveByMovieID(context context.Context, movieID int) (bool, error)
}
