package classification

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kurgu/movielog/internal/platform/database/schema"
	"github.com/kurgu/movielog/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListActive(context context.Context) ([]*Classification, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC
	`,
		schema.Classification.ID, schema.Classification.MovieID, schema.Classification.CategoryID,
		schema.Classification.AssignedOn, schema.Classification.Status,
		schema.Classification.Table, schema.Classification.Status, schema.Classification.ID,
	)

	rows, err := repository.db.Query(context, query, StatusActive)
	if err != nil {
		return nil, dberr.Wrap(err, "list_active_classifications")
	}
	defer rows.Close()

	classifications := make([]*Classification, 0)
	for rows.Next() {
		c := &Classification{}
		if err := rows.Scan(&c.ID, &c.MovieID, &c.CategoryID, &c.AssignedOn, &c.Status); err != nil {
			return nil, dberr.Wrap(err, "scan_classification")
		}
		classifications = append(classifications, c)
	}

	return classifications, nil
}

func (repository *PostgresRepository) GetActiveByID(context context.Context, id int) (*Classification, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = $2
	`,
		schema.Classification.ID, schema.Classification.MovieID, schema.Classification.CategoryID,
		schema.Classification.AssignedOn, schema.Classification.Status,
		schema.Classification.Table, schema.Classification.ID, schema.Classification.Status,
	)
	c := &Classification{}

	err := repository.db.QueryRow(context, query, id, StatusActive).Scan(
		&c.ID, &c.MovieID, &c.CategoryID, &c.AssignedOn, &c.Status,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_active_classification")
	}

	return c, nil
}

func (repository *PostgresRepository) GetByID(context context.Context, id int) (*Classification, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.Classification.ID, schema.Classification.MovieID, schema.Classification.CategoryID,
		schema.Classification.AssignedOn, schema.Classification.Status,
		schema.Classification.Table, schema.Classification.ID,
	)
	c := &Classification{}

	err := repository.db.QueryRow(context, query, id).Scan(
		&c.ID, &c.MovieID, &c.CategoryID, &c.AssignedOn, &c.Status,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_classification")
	}

	return c, nil
}

func (repository *PostgresRepository) FindActiveByPair(context context.Context, movieID, categoryID int) (*Classification, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = $2 AND %s = $3
	`,
		schema.Classification.ID, schema.Classification.MovieID, schema.Classification.CategoryID,
		schema.Classification.AssignedOn, schema.Classification.Status,
		schema.Classification.Table,
		schema.Classification.MovieID, schema.Classification.CategoryID, schema.Classification.Status,
	)
	c := &Classification{}

	err := repository.db.QueryRow(context, query, movieID, categoryID, StatusActive).Scan(
		&c.ID, &c.MovieID, &c.CategoryID, &c.AssignedOn, &c.Status,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dberr.Wrap(err, "find_active_pair")
	}

	return c, nil
}

func (repository *PostgresRepository) Create(context context.Context, c *Classification) error {
	// The partial unique index on (movie_id, category_id) WHERE status = 'active'
	// is the last word on pair uniqueness; dberr maps its violation to CONFLICT.
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, CURRENT_DATE, $3)
		RETURNING %s, %s
	`,
		schema.Classification.Table,
		schema.Classification.MovieID, schema.Classification.CategoryID,
		schema.Classification.AssignedOn, schema.Classification.Status,
		schema.Classification.ID, schema.Classification.AssignedOn,
	)

	c.Status = StatusActive
	err := repository.db.QueryRow(context, query, c.MovieID, c.CategoryID, c.Status).Scan(&c.ID, &c.AssignedOn)
	return dberr.Wrap(err, "create_classification")
}

func (repository *PostgresRepository) UpdatePair(context context.Context, id, movieID, categoryID int) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3
		WHERE %s = $1 AND %s = $4
	`,
		schema.Classification.Table,
		schema.Classification.MovieID, schema.Classification.CategoryID,
		schema.Classification.ID, schema.Classification.Status,
	)

	cmd, err := repository.db.Exec(context, query, id, movieID, categoryID, StatusActive)
	if err != nil {
		return dberr.Wrap(err, "update_classification_pair")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) SoftDelete(context context.Context, id int) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		schema.Classification.Table, schema.Classification.Status, schema.Classification.ID,
	)

	cmd, err := repository.db.Exec(context, query, id, StatusSoftDeleted)
	if err != nil {
		return dberr.Wrap(err, "soft_delete_classification")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// # Referential gating

// ExistsActiveByMovieID implements movie.ReferenceChecker.
func (repository *PostgresRepository) ExistsActiveByMovieID(context context.Context, movieID int) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		schema.Classification.Table, schema.Classification.MovieID, schema.Classification.Status,
	)

	var exists bool
	err := repository.db.QueryRow(context, query, movieID, StatusActive).Scan(&exists)
	if err != nil {
		return false, dberr.Wrap(err, "exists_active_by_movie")
	}

	return exists, nil
}

// ExistsActiveByCategoryID implements category.ReferenceChecker.
func (repository *PostgresRepository) ExistsActiveByCategoryID(context context.Context, categoryID int) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		schema.Classification.Table, schema.Classification.CategoryID, schema.Classification.Status,
	)

	var exists bool
	err := repository.db.QueryRow(context, query, categoryID, StatusActive).Scan(&exists)
	if err != nil {
		return false, dberr.Wrap(err, "exists_active_by_category")
	}

	return exists, nil
}
