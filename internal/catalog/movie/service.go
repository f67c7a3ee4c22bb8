package movie

import (
	"context"
	"errors"
	"log/slog"

	"github.com/kurgu/movielog/internal/platform/apperr"
	"github.com/kurgu/movielog/internal/platform/dberr"
)

type Service struct {
	repo   Repository
	refs   ReferenceChecker
	logger *slog.Logger
}

func NewService(repo Repository, refs ReferenceChecker, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		refs:   refs,
		logger: logger,
	}
}

func (service *Service) ListMovies(context context.Context) ([]*Movie, error) {
	return service.repo.ListMovies(context)
}

func (service *Service) GetMovie(context context.Context, id int) (*Movie, error) {
	m, err := service.repo.GetMovie(context, id)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.NotFound("Movie")
		}
		return nil, err
	}
	return m, nil
}

// CreateMovie persists a new movie. Any caller-supplied ID is discarded; the
// store assigns identity.
func (service *Service) CreateMovie(context context.Context, m *Movie) error {
	m.ID = 0

	if err := service.repo.CreateMovie(context, m); err != nil {
		return err
	}

	service.logger.Info("movie_created", slog.Int("movie_id", m.ID))
	return nil
}

// UpdateMovie applies a partial overwrite: title and director only when
// supplied, year unconditionally.
func (service *Service) UpdateMovie(context context.Context, id int, input UpdateInput) (*Movie, error) {
	existing, err := service.repo.GetMovie(context, id)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.NotFound("Movie")
		}
		return nil, err
	}

	if input.Title != nil {
		existing.Title = input.Title
	}
	if input.Director != nil {
		existing.Director = input.Director
	}
	existing.Year = input.Year

	if err := service.repo.UpdateMovie(context, existing); err != nil {
		return nil, err
	}

	service.logger.Info("movie_updated", slog.Int("movie_id", id))
	return existing, nil
}

// DeleteMovie physically removes a movie unless an active classification
// still references it.
func (service *Service) DeleteMovie(context context.Context, id int) error {
	if _, err := service.repo.GetMovie(context, id); err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return apperr.NotFound("Movie")
		}
		return err
	}

	referenced, err := service.refs.ExistsActiveByMovieID(context, id)
	if err != nil {
		return err
	}
	if referenced {
		service.logger.Warn("movie_delete_blocked", slog.Int("movie_id", id))
		return apperr.Conflict("Movie is still classified in one or more categories")
	}

	if err := service.repo.DeleteMovie(context, id); err != nil {
		return err
	}

	service.logger.Warn("movie_deleted", slog.Int("movie_id", id))
	return nil
}
