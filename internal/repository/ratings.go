package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Clark-Hu/moviemeter/internal/domain"
)

// RatingsRepository provides helpers for movie ratings.
type RatingsRepository struct {
	pool *pgxpool.Pool
}

// RatingUpsertParams captures the payload required to upsert a rating.
type RatingUpsertParams struct {
	UserID  string
	MovieID string
	Value   int
}

// Upsert inserts or updates a rating and indicates whether it was newly created.
func (r *RatingsRepository) Upsert(ctx context.Context, params RatingUpsertParams) (domain.Rating, bool, error) {
	const query = `
        INSERT INTO ratings (id, user_id, movie_id, rating)
        VALUES ($1,$2,$3,$4)
        ON CONFLICT (user_id, movie_id)
        DO UPDATE SET rating = EXCLUDED.rating, updated_at = now()
        RETURNING id, user_id, movie_id, rating, created_at, updated_at, (xmax = 0) AS inserted
    `

	var rating domain.Rating
	var inserted bool
	err := r.pool.QueryRow(ctx, query, uuid.NewString(), params.UserID, params.MovieID, params.Value).Scan(
		&rating.ID,
		&rating.UserID,
		&rating.MovieID,
		&rating.Value,
		&rating.CreatedAt,
		&rating.UpdatedAt,
		&inserted,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return domain.Rating{}, false, ErrNotFound
		}
		return domain.Rating{}, false, err
	}

	return rating, inserted, nil
}

// Get retrieves the rating a user gave a movie.
func (r *RatingsRepository) Get(ctx context.Context, userID, movieID string) (domain.Rating, error) {
	const query = `
        SELECT id, user_id, movie_id, rating, created_at, updated_at
        FROM ratings
        WHERE user_id = $1 AND movie_id = $2
    `
	var rating domain.Rating
	err := r.pool.QueryRow(ctx, query, userID, movieID).Scan(
		&rating.ID,
		&rating.UserID,
		&rating.MovieID,
		&rating.Value,
		&rating.CreatedAt,
		&rating.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Rating{}, ErrNotFound
		}
		return domain.Rating{}, err
	}
	return rating, nil
}
