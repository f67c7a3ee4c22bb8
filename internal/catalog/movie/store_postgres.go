package movie

import (
	"context"
	"fmt"

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

func (repository *PostgresRepository) ListMovies(context context.Context) ([]*Movie, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s ORDER BY %s ASC`,
		schema.Movie.ID, schema.Movie.Title, schema.Movie.Director, schema.Movie.Year,
		schema.Movie.Table, schema.Movie.ID,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_movies")
	}
	defer rows.Close()

	movies := make([]*Movie, 0)
	for rows.Next() {
		m := &Movie{}
		if err := rows.Scan(&m.ID, &m.Title, &m.Director, &m.Year); err != nil {
			return nil, dberr.Wrap(err, "scan_movie")
		}
		movies = append(movies, m)
	}

	return movies, nil
}

func (repository *PostgresRepository) GetMovie(context context.Context, id int) (*Movie, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s WHERE %s = $1`,
		schema.Movie.ID, schema.Movie.Title, schema.Movie.Director, schema.Movie.Year,
		schema.Movie.Table, schema.Movie.ID,
	)
	m := &Movie{}

	err := repository.db.QueryRow(context, query, id).Scan(&m.ID, &m.Title, &m.Director, &m.Year)
	if err != nil {
		return nil, dberr.Wrap(err, "get_movie")
	}

	return m, nil
}

func (repository *PostgresRepository) CreateMovie(context context.Context, m *Movie) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		RETURNING %s
	`,
		schema.Movie.Table, schema.Movie.Title, schema.Movie.Director, schema.Movie.Year,
		schema.Movie.ID,
	)

	err := repository.db.QueryRow(context, query, m.Title, m.Director, m.Year).Scan(&m.ID)
	return dberr.Wrap(err, "create_movie")
}

func (repository *PostgresRepository) UpdateMovie(context context.Context, m *Movie) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4
		WHERE %s = $1
	`,
		schema.Movie.Table,
		schema.Movie.Title, schema.Movie.Director, schema.Movie.Year,
		schema.Movie.ID,
	)

	cmd, err := repository.db.Exec(context, query, m.ID, m.Title, m.Director, m.Year)
	if err != nil {
		return dberr.Wrap(err, "update_movie")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) DeleteMovie(context context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Movie.Table, schema.Movie.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_movie")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
