package classification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kurgu/movielog/internal/catalog/category"
	"github.com/kurgu/movielog/internal/catalog/movie"
	"github.com/kurgu/movielog/internal/platform/apperr"
	"github.com/kurgu/movielog/internal/platform/dberr"
	"github.com/kurgu/movielog/internal/platform/validate"
)

// Service enforces the classification consistency rules: active-pair
// uniqueness, foreign-key resolution, and the one-way soft-delete lifecycle.
// All store handles are injected at construction time.
type Service struct {
	repo       Repository
	movies     MovieResolver
	categories CategoryResolver
	logger     *slog.Logger
}

func NewService(repo Repository, movies MovieResolver, categories CategoryResolver, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		movies:     movies,
		categories: categories,
		logger:     logger,
	}
}

// ListClassifications returns every active classification enriched with its
// movie and category. Rows whose references no longer resolve are skipped
// with a warning; history rows can dangle once their parents are deleted.
func (service *Service) ListClassifications(context context.Context) ([]*Enriched, error) {
	classifications, err := service.repo.ListActive(context)
	if err != nil {
		return nil, err
	}

	enriched := make([]*Enriched, 0, len(classifications))
	for _, c := range classifications {
		item, err := service.enrich(context, c)
		if err != nil {
			service.logger.Warn("classification_dangling_reference",
				slog.Int("classification_id", c.ID),
				slog.Int("movie_id", c.MovieID),
				slog.Int("category_id", c.CategoryID),
			)
			continue
		}
		enriched = append(enriched, item)
	}

	return enriched, nil
}

// GetClassification returns a single active classification, enriched.
// A dangling reference on a single get is a server error, not a skip.
func (service *Service) GetClassification(context context.Context, id int) (*Enriched, error) {
	c, err := service.repo.GetActiveByID(context, id)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.NotFound("Classification")
		}
		return nil, err
	}

	enriched, err := service.enrich(context, c)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("classification %d has a dangling reference: %w", c.ID, err))
	}

	return enriched, nil
}

// CreateClassification assigns a movie to a category.
//
// Order of checks: positive IDs, resolvable references, then active-pair
// uniqueness. The store's partial unique index backs the last check, so a
// racing create loses with CONFLICT rather than committing a duplicate.
func (service *Service) CreateClassification(context context.Context, input Input) (*Enriched, error) {
	validator := &validate.Validator{}
	validator.PositiveID(FieldMovieID, input.MovieID).PositiveID(FieldCategoryID, input.CategoryID)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	m, c, err := service.resolveRefs(context, input.MovieID, input.CategoryID)
	if err != nil {
		return nil, err
	}

	existing, err := service.repo.FindActiveByPair(context, input.MovieID, input.CategoryID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		service.logger.Warn("classification_pair_conflict",
			slog.Int("movie_id", input.MovieID),
			slog.Int("category_id", input.CategoryID),
			slog.Int("existing_id", existing.ID),
		)
		return nil, apperr.Conflict("This movie is already assigned to this category")
	}

	record := &Classification{
		MovieID:    input.MovieID,
		CategoryID: input.CategoryID,
	}
	if err := service.repo.Create(context, record); err != nil {
		return nil, err
	}

	service.logger.Info("classification_created",
		slog.Int("classification_id", record.ID),
		slog.Int("movie_id", record.MovieID),
		slog.Int("category_id", record.CategoryID),
	)

	return &Enriched{
		ClassificationID: record.ID,
		Movie:            m,
		Category:         c,
		AssignedOn:       record.AssignedOn,
	}, nil
}

// UpdateClassification re-points an active classification at a new
// movie/category pair. The assignment date and status never change here;
// soft-deleted rows are not updatable.
func (service *Service) UpdateClassification(context context.Context, id int, input Input) (*Enriched, error) {
	validator := &validate.Validator{}
	validator.PositiveID(FieldMovieID, input.MovieID).PositiveID(FieldCategoryID, input.CategoryID)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	record, err := service.repo.GetActiveByID(context, id)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.NotFound("Classification")
		}
		return nil, err
	}

	m, c, err := service.resolveRefs(context, input.MovieID, input.CategoryID)
	if err != nil {
		return nil, err
	}

	conflict, err := service.repo.FindActiveByPair(context, input.MovieID, input.CategoryID)
	if err != nil {
		return nil, err
	}
	if conflict != nil && conflict.ID != id {
		service.logger.Warn("classification_pair_conflict",
			slog.Int("movie_id", input.MovieID),
			slog.Int("category_id", input.CategoryID),
			slog.Int("existing_id", conflict.ID),
		)
		return nil, apperr.Conflict("This movie is already assigned to this category by another record")
	}

	if err := service.repo.UpdatePair(context, id, input.MovieID, input.CategoryID); err != nil {
		return nil, err
	}

	service.logger.Info("classification_updated",
		slog.Int("classification_id", id),
		slog.Int("movie_id", input.MovieID),
		slog.Int("category_id", input.CategoryID),
	)

	return &Enriched{
		ClassificationID: id,
		Movie:            m,
		Category:         c,
		AssignedOn:       record.AssignedOn,
	}, nil
}

// DeleteClassification soft-deletes a record. The transition is one-way and
// idempotent: deleting an already soft-deleted row succeeds with no effect,
// while an unknown ID is NotFound.
func (service *Service) DeleteClassification(context context.Context, id int) error {
	record, err := service.repo.GetByID(context, id)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return apperr.NotFound("Classification")
		}
		return err
	}

	if record.Status == StatusSoftDeleted {
		service.logger.Info("classification_already_deleted", slog.Int("classification_id", id))
		return nil
	}

	if err := service.repo.SoftDelete(context, id); err != nil {
		return err
	}

	service.logger.Info("classification_soft_deleted", slog.Int("classification_id", id))
	return nil
}

// resolveRefs looks up both foreign keys, translating missing rows into a
// validation failure. Store failures other than NotFound pass through.
func (service *Service) resolveRefs(context context.Context, movieID, categoryID int) (*movie.Movie, *category.Category, error) {
	m, err := service.movies.GetMovie(context, movieID)
	if err != nil && !errors.Is(err, dberr.ErrNotFound) {
		return nil, nil, err
	}

	c, err := service.categories.GetCategory(context, categoryID)
	if err != nil && !errors.Is(err, dberr.ErrNotFound) {
		return nil, nil, err
	}

	if m == nil || c == nil {
		details := make([]apperr.FieldError, 0, 2)
		if m == nil {
			details = append(details, apperr.FieldError{Field: FieldMovieID, Message: "Movie does not exist"})
		}
		if c == nil {
			details = append(details, apperr.FieldError{Field: FieldCategoryID, Message: "Category does not exist"})
		}
		return nil, nil, apperr.ValidationError("Invalid movie or category reference", details...)
	}

	return m, c, nil
}

// enrich resolves both sides of the link for read responses.
func (service *Service) enrich(context context.Context, c *Classification) (*Enriched, error) {
	m, err := service.movies.GetMovie(context, c.MovieID)
	if err != nil {
		return nil, err
	}

	cat, err := service.categories.GetCategory(context, c.CategoryID)
	if err != nil {
		return nil, err
	}

	return &Enriched{
		ClassificationID: c.ID,
		Movie:            m,
		Category:         cat,
		AssignedOn:       c.AssignedOn,
	}, nil
}
