package category

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/kurgu/movielog/internal/platform/apperr"
	"github.com/kurgu/movielog/internal/platform/dberr"
	"github.com/kurgu/movielog/internal/platform/validate"
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

func (service *Service) ListCategories(context context.Context) ([]*Category, error) {
	return service.repo.ListCategories(context)
}

func (service *Service) GetCategory(context context.Context, id int) (*Category, error) {
	c, err := service.repo.GetCategory(context, id)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.NotFound("Category")
		}
		return nil, err
	}
	return c, nil
}

// CreateCategory persists a new category. The caller-supplied ID is discarded
// and the name must be non-blank after trimming.
func (service *Service) CreateCategory(context context.Context, c *Category) error {
	c.ID = 0
	c.Name = normalizeName(c.Name)

	validator := &validate.Validator{}
	validator.Required(FieldName, c.Name).MaxLen(FieldName, c.Name, MaxNameLen)
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.CreateCategory(context, c); err != nil {
		return err
	}

	service.logger.Info("category_created", slog.Int("category_id", c.ID), slog.String("name", c.Name))
	return nil
}

// UpdateCategory overwrites the name only.
func (service *Service) UpdateCategory(context context.Context, id int, name string) (*Category, error) {
	existing, err := service.repo.GetCategory(context, id)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.NotFound("Category")
		}
		return nil, err
	}

	name = normalizeName(name)

	validator := &validate.Validator{}
	validator.Required(FieldName, name).MaxLen(FieldName, name, MaxNameLen)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	existing.Name = name
	if err := service.repo.UpdateCategory(context, existing); err != nil {
		return nil, err
	}

	service.logger.Info("category_updated", slog.Int("category_id", id))
	return existing, nil
}

// DeleteCategory physically removes a category unless an active
// classification still references it.
func (service *Service) DeleteCategory(context context.Context, id int) error {
	if _, err := service.repo.GetCategory(context, id); err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return apperr.NotFound("Category")
		}
		return err
	}

	referenced, err := service.refs.ExistsActiveByCategoryID(context, id)
	if err != nil {
		return err
	}
	if referenced {
		service.logger.Warn("category_delete_blocked", slog.Int("category_id", id))
		return apperr.Conflict("Category still has classified movies")
	}

	if err := service.repo.DeleteCategory(context, id); err != nil {
		return err
	}

	service.logger.Warn("category_deleted", slog.Int("category_id", id))
	return nil
}

// normalizeName trims surrounding whitespace and applies NFC so that
// visually identical names compare equal regardless of input encoding.
func normalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}
