package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Clark-Hu/moviemeter/internal/domain"
)

// MoviesRepository provides persistence helpers for movie entities.
type MoviesRepository struct {
	pool *pgxpool.Pool
}

const movieColumns = `
    id,
    title,
    release_year,
    poster_url,
    default_rating,
    created_at
`

// MovieCreateParams bundles the fields required to create a movie.
type MovieCreateParams struct {
	Title         string
	ReleaseYear   int
	PosterURL     string
	DefaultRating float64
}

// Create inserts a new movie row and returns the stored entity.
func (r *MoviesRepository) Create(ctx context.Context, params MovieCreateParams) (domain.Movie, error) {
	query := fmt.Sprintf(`
        INSERT INTO movies (id, title, release_year, poster_url, default_rating)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING %s
    `, movieColumns)

	row := r.pool.QueryRow(ctx, query, uuid.NewString(), params.Title, params.ReleaseYear, params.PosterURL, params.DefaultRating)
	return scanMovie(row)
}

// GetByID fetches a movie by its identifier.
func (r *MoviesRepository) GetByID(ctx context.Context, id string) (domain.Movie, error) {
	query := fmt.Sprintf(`SELECT %s FROM movies WHERE id = $1`, movieColumns)
	movie, err := scanMovie(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Movie{}, ErrNotFound
		}
		return domain.Movie{}, err
	}
	return movie, nil
}

// List returns the whole catalog in insertion order.
func (r *MoviesRepository) List(ctx context.Context) ([]domain.Movie, error) {
	query := fmt.Sprintf(`SELECT %s FROM movies ORDER BY created_at, seq`, movieColumns)
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.Movie, 0)
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, movie)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// ReplaceAll wipes the catalog and bulk-inserts the given movies in order.
// Ratings reference movies, so they are cleared as well.
func (r *MoviesRepository) ReplaceAll(ctx context.Context, movies []MovieCreateParams) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM ratings`); err != nil {
		return 0, fmt.Errorf("clear ratings: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM movies`); err != nil {
		return 0, fmt.Errorf("clear movies: %w", err)
	}

	rows := make([][]any, 0, len(movies))
	for _, m := range movies {
		rows = append(rows, []any{uuid.NewString(), m.Title, m.ReleaseYear, m.PosterURL, m.DefaultRating})
	}
	copied, err := tx.CopyFrom(ctx,
		pgx.Identifier{"movies"},
		[]string{"id", "title", "release_year", "poster_url", "default_rating"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return 0, fmt.Errorf("insert movies: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return int(copied), nil
}

func scanMovie(row pgx.Row) (domain.Movie, error) {
	var movie domain.Movie
	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.ReleaseYear,
		&movie.PosterURL,
		&movie.DefaultRating,
		&movie.CreatedAt,
	)
	if err != nil {
		return domain.Movie{}, err
	}
	return movie, nil
}
